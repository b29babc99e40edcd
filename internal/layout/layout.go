// Package layout computes tiling geometry: layouts operate in a
// normalized 0.0-1.0 FloatRect space, tilers plug the result into a
// physical work area, grounded on
// original_source/src/jigsawwm/tiler/layouts.py and tiler/tilers.py.
package layout

// Affinity carries the monitor attributes a Theme's AffinityIndex scores
// against: physical diagonal size and pixel aspect ratio (width/height),
// grounded on original_source/src/jigsawwm/wm/theme.py's ScreenInfo-keyed
// affinity_index lambdas.
type Affinity struct {
	Inches float64
	Ratio  float64
}

// BestTheme returns the theme with the highest AffinityIndex score for a,
// defaulting absent scorers to 0; ties go to the earlier entry in themes,
// per spec §4.6/§9's declaration-order tie-break.
func BestTheme(themes []Theme, a Affinity) Theme {
	best := themes[0]
	bestScore := -1
	for _, t := range themes {
		score := 0
		if t.AffinityIndex != nil {
			score = t.AffinityIndex(a)
		}
		if score > bestScore {
			bestScore = score
			best = t
		}
	}
	return best
}

// FloatRect is a layout-relative rectangle in [0,1] coordinates.
type FloatRect struct {
	Left, Top, Right, Bottom float64
}

// PhysicalRect is a work-area rectangle in device pixels.
type PhysicalRect struct {
	Left, Top, Right, Bottom int32
}

func (r PhysicalRect) width() int32  { return r.Right - r.Left }
func (r PhysicalRect) height() int32 { return r.Bottom - r.Top }

// Layout computes the FloatRect for each of n tiling areas.
type Layout func(n int) []FloatRect

// Mono places every window in the full area (only the top one is ever
// visible; the rest sit beneath it), grounded on layouts.py's `mono`.
func Mono(n int) []FloatRect {
	rects := make([]FloatRect, n)
	for i := range rects {
		rects[i] = FloatRect{0, 0, 1, 1}
	}
	return rects
}

// Stack splits the area into n equal horizontal bands, grounded on
// layouts.py's `stack`.
func Stack(n int) []FloatRect {
	if n == 0 {
		return nil
	}
	rects := make([]FloatRect, n)
	step := 1.0 / float64(n)
	for i := range rects {
		rects[i] = FloatRect{0, float64(i) * step, 1, float64(i+1) * step}
	}
	return rects
}

// Dwindle recursively halves the remaining area along alternating axes,
// each new window taking half of what's left - the classic "BSPWM"/dwm
// master-stack split, grounded on layouts.py's `dwindle`.
func Dwindle(n int) []FloatRect {
	return dwindleRect(n, FloatRect{0, 0, 1, 1}, true)
}

func dwindleRect(n int, area FloatRect, splitVertical bool) []FloatRect {
	if n <= 1 {
		return []FloatRect{area}
	}
	var first, rest FloatRect
	if splitVertical {
		mid := (area.Left + area.Right) / 2
		first = FloatRect{area.Left, area.Top, mid, area.Bottom}
		rest = FloatRect{mid, area.Top, area.Right, area.Bottom}
	} else {
		mid := (area.Top + area.Bottom) / 2
		first = FloatRect{area.Left, area.Top, area.Right, mid}
		rest = FloatRect{area.Left, mid, area.Right, area.Bottom}
	}
	return append([]FloatRect{first}, dwindleRect(n-1, rest, !splitVertical)...)
}

// WidescreenDwindle is Dwindle but the master window takes a vertical half
// and the stack dwindles horizontally-first within the remainder, better
// suited to ultra-wide monitors, grounded on layouts.py's
// `widescreen_dwindle`.
func WidescreenDwindle(n int) []FloatRect {
	if n <= 1 {
		return Dwindle(n)
	}
	master := FloatRect{0, 0, 0.5, 1}
	rest := dwindleRect(n-1, FloatRect{0.5, 0, 1, 1}, false)
	return append([]FloatRect{master}, rest...)
}

// staticBigscreen8Tables are hand-tuned FloatRect layouts for 1-8 windows
// on a large display, ported verbatim from layouts.py's
// `static_bigscreen_8`.
var staticBigscreen8Tables = map[int][]FloatRect{
	1: {{0, 0, 1, 1}},
	2: {{0, 0, 0.5, 1}, {0.5, 0, 1, 1}},
	3: {{0, 0, 0.5, 1}, {0.5, 0, 1, 0.5}, {0.5, 0.5, 1, 1}},
	4: {{0, 0, 0.5, 0.5}, {0.5, 0, 1, 0.5}, {0, 0.5, 0.5, 1}, {0.5, 0.5, 1, 1}},
	5: {
		{0, 0, 0.33, 0.5}, {0.33, 0, 0.67, 0.5}, {0.67, 0, 1, 0.5},
		{0, 0.5, 0.5, 1}, {0.5, 0.5, 1, 1},
	},
	6: {
		{0, 0, 0.33, 0.5}, {0.33, 0, 0.67, 0.5}, {0.67, 0, 1, 0.5},
		{0, 0.5, 0.33, 1}, {0.33, 0.5, 0.67, 1}, {0.67, 0.5, 1, 1},
	},
	7: {
		{0, 0, 0.25, 0.5}, {0.25, 0, 0.5, 0.5}, {0.5, 0, 0.75, 0.5}, {0.75, 0, 1, 0.5},
		{0, 0.5, 0.33, 1}, {0.33, 0.5, 0.67, 1}, {0.67, 0.5, 1, 1},
	},
	8: {
		{0, 0, 0.25, 0.5}, {0.25, 0, 0.5, 0.5}, {0.5, 0, 0.75, 0.5}, {0.75, 0, 1, 0.5},
		{0, 0.5, 0.25, 1}, {0.25, 0.5, 0.5, 1}, {0.5, 0.5, 0.75, 1}, {0.75, 0.5, 1, 1},
	},
}

// StaticBigscreen8 returns the hardcoded table for n in [1,8]; above 8 it
// falls back to Dwindle, matching the teacher's fallback behavior.
func StaticBigscreen8(n int) []FloatRect {
	if t, ok := staticBigscreen8Tables[n]; ok {
		return t
	}
	return Dwindle(n)
}

// PlugRect maps a FloatRect into a physical work area.
func PlugRect(work PhysicalRect, fr FloatRect) PhysicalRect {
	w, h := float64(work.width()), float64(work.height())
	return PhysicalRect{
		Left:   work.Left + int32(fr.Left*w),
		Top:    work.Top + int32(fr.Top*h),
		Right:  work.Left + int32(fr.Right*w),
		Bottom: work.Top + int32(fr.Bottom*h),
	}
}

// DirectTiler lays out n windows in the work area with Layout l,
// rotating the axes when the monitor is in portrait orientation so every
// layout still reads "wide master, narrow stack," grounded on tilers.py's
// `direct_tiler`.
func DirectTiler(l Layout) func(work PhysicalRect, n int) []PhysicalRect {
	return func(work PhysicalRect, n int) []PhysicalRect {
		portrait := work.height() > work.width()
		rects := l(n)
		out := make([]PhysicalRect, n)
		for i, fr := range rects {
			if portrait {
				fr = FloatRect{fr.Top, fr.Left, fr.Bottom, fr.Right}
			}
			out[i] = PlugRect(work, fr)
		}
		return out
	}
}

// ObsTiler splits the work area into a top strip - the scene a screen
// recorder is capturing - held by the first window alone, and a bottom
// strip where every other window dwindle-tiles with Layout l, grounded on
// tilers.py's `obs_tiler` (the "first window reserved, rest tile the
// remainder" shape, adapted to a top/bottom split per the obs-dwindle
// theme). Falls back to a single full-area rect for n<=1.
func ObsTiler(l Layout, topFraction float64) func(work PhysicalRect, n int) []PhysicalRect {
	direct := DirectTiler(l)
	mono := DirectTiler(Mono)
	return func(work PhysicalRect, n int) []PhysicalRect {
		if n <= 1 {
			return mono(work, n)
		}
		top := PlugRect(work, FloatRect{0, 0, 1, topFraction})
		bottom := PhysicalRect{Left: work.Left, Top: top.Bottom, Right: work.Right, Bottom: work.Bottom}
		rest := direct(bottom, n-1)
		return append([]PhysicalRect{top}, rest...)
	}
}
