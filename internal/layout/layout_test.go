package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDwindleCoversFullArea(t *testing.T) {
	rects := Dwindle(3)
	assert.Len(t, rects, 3)
	assert.Equal(t, FloatRect{0, 0, 0.5, 1}, rects[0])
}

func TestMonoRepeatsFullArea(t *testing.T) {
	rects := Mono(4)
	for _, r := range rects {
		assert.Equal(t, FloatRect{0, 0, 1, 1}, r)
	}
}

func TestPlugRectMapsIntoWorkArea(t *testing.T) {
	work := PhysicalRect{Left: 100, Top: 100, Right: 1100, Bottom: 900}
	got := PlugRect(work, FloatRect{0, 0, 0.5, 1})
	assert.Equal(t, PhysicalRect{Left: 100, Top: 100, Right: 600, Bottom: 900}, got)
}

func TestStaticBigscreen8FallsBackAboveEight(t *testing.T) {
	rects := StaticBigscreen8(9)
	assert.Len(t, rects, 9)
}

// TestObsTilerSplitsTopBottom covers spec §4.6's obs-dwindle description:
// the first window holds the top strip alone; everything else dwindles
// the bottom strip.
func TestObsTilerSplitsTopBottom(t *testing.T) {
	work := PhysicalRect{Left: 0, Top: 0, Right: 1920, Bottom: 1000}
	tiler := ObsTiler(Dwindle, 0.5)

	two := tiler(work, 2)
	assert.Equal(t, PhysicalRect{Left: 0, Top: 0, Right: 1920, Bottom: 500}, two[0])
	assert.Equal(t, PhysicalRect{Left: 0, Top: 500, Right: 1920, Bottom: 1000}, two[1])

	three := tiler(work, 3)
	assert.Len(t, three, 3)
	assert.Equal(t, int32(500), three[0].Bottom)
	// the bottom strip's two windows dwindle-split it left/right.
	assert.Equal(t, int32(500), three[1].Top)
	assert.Equal(t, int32(500), three[2].Top)
}

func TestDirectTilerRotatesPortrait(t *testing.T) {
	landscape := PhysicalRect{0, 0, 1920, 1080}
	portrait := PhysicalRect{0, 0, 1080, 1920}
	tiler := DirectTiler(Dwindle)

	l := tiler(landscape, 2)
	p := tiler(portrait, 2)
	assert.Equal(t, int32(960), l[0].width())
	assert.Equal(t, int32(1080), p[0].width())
}
