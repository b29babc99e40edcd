package jmk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JigsawWM/internal/vk"
)

func newTestCore() (*Core, *[]vk.Vk) {
	c, sent, _ := newTestCoreWithClock()
	return c, sent
}

// newTestCoreWithClock also returns the clock so tests can advance time
// between events, exercising timer-driven transitions (CheckHold,
// ExpireQuickTap) rather than a clock frozen at 0.
func newTestCoreWithClock() (*Core, *[]vk.Vk, *int64) {
	var sent []vk.Vk
	clock := new(int64)
	c := New(func(v vk.Vk, pressed bool) {
		sent = append(sent, v)
	}, func() int64 { return *clock })
	return c, &sent, clock
}

func TestSendRemap(t *testing.T) {
	c, sent := newTestCore()
	base := NewLayer("base").Bind(vk.Capital, Send(vk.Escape))
	c.RegisterLayers(base)

	swallowed := c.Handle(Event{Vk: vk.Capital, Pressed: true})
	require.True(t, swallowed)
	assert.Equal(t, []vk.Vk{vk.Escape}, *sent)

	swallowed = c.Handle(Event{Vk: vk.Capital, Pressed: false})
	require.True(t, swallowed)
	assert.Equal(t, []vk.Vk{vk.Escape, vk.Escape}, *sent)
}

func TestUnboundKeyPassesThrough(t *testing.T) {
	c, _ := newTestCore()
	c.RegisterLayers(NewLayer("base"))
	assert.False(t, c.Handle(Event{Vk: vk.KeyA, Pressed: true}))
}

func TestHotkeyFiresOnceUntilReleased(t *testing.T) {
	c, _ := newTestCore()
	fired := 0
	c.Triggers().Register(vk.NewChord(vk.Control, vk.KeyJ), func() { fired++ })

	c.Handle(Event{Vk: vk.Control, Pressed: true})
	c.Handle(Event{Vk: vk.KeyJ, Pressed: true})
	assert.Equal(t, 1, fired)

	// holding both down must not re-fire.
	c.Handle(Event{Vk: vk.KeyJ, Pressed: true})
	assert.Equal(t, 1, fired)

	// releasing one constituent re-arms the trigger.
	c.Handle(Event{Vk: vk.KeyJ, Pressed: false})
	c.Handle(Event{Vk: vk.KeyJ, Pressed: true})
	assert.Equal(t, 2, fired)
}

func TestTapHoldRoundTripWithinTerm(t *testing.T) {
	c, sent := newTestCore()
	base := NewLayer("base").Bind(vk.Capital, Hold(TapHoldSpec{
		Tap: Send(vk.Escape), Hold: Send(vk.LControl), TermMS: 200,
	}))
	c.RegisterLayers(base)

	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: true}))
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: false}))
	assert.Equal(t, []vk.Vk{vk.Escape, vk.Escape}, *sent)
}

// TestUsedIsHold covers spec §4.3/§8 property 4 and scenario S2: a plain,
// unbound key pressed while a tap-hold key is PENDING resolves it to Hold
// (and the unbound key itself still passes through untouched).
func TestUsedIsHold(t *testing.T) {
	c, sent := newTestCore()
	base := NewLayer("base").Bind(vk.Capital, Hold(TapHoldSpec{
		Tap: Send(vk.Escape), Hold: Send(vk.LControl), TermMS: 200,
	}))
	c.RegisterLayers(base)

	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: true}))
	assert.False(t, c.Handle(Event{Vk: vk.KeyK, Pressed: true}))
	assert.False(t, c.Handle(Event{Vk: vk.KeyK, Pressed: false}))
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: false}))

	assert.Equal(t, []vk.Vk{vk.LControl, vk.LControl}, *sent)
}

func TestQuickTapRefiresWithoutArmingHold(t *testing.T) {
	c, sent := newTestCore()
	base := NewLayer("base").Bind(vk.Capital, Hold(TapHoldSpec{
		Tap: Send(vk.Escape), Hold: Send(vk.LControl), TermMS: 200, QuickTapMS: 150,
	}))
	c.RegisterLayers(base)

	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: true}))
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: false}))
	// second press lands inside the quick-tap window: re-fires Tap
	// immediately rather than arming Hold, regardless of how long it's held.
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: true}))
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: false}))

	assert.Equal(t, []vk.Vk{vk.Escape, vk.Escape, vk.Escape, vk.Escape}, *sent)
}

// TestQuickTapRefiresEvenWhenSecondPressIsHeld is the real case spec §8
// property 3 cares about: the second press lands inside the quick-tap
// window but is held well past TermMS before release. It must still
// resolve to Tap on press, never arming Hold, because the quick-tap state
// has to survive the release->press gap between the first and second
// press rather than being replaced by a fresh idle FSM.
func TestQuickTapRefiresEvenWhenSecondPressIsHeld(t *testing.T) {
	c, sent, clock := newTestCoreWithClock()
	base := NewLayer("base").Bind(vk.Capital, Hold(TapHoldSpec{
		Tap: Send(vk.Escape), Hold: Send(vk.LControl), TermMS: 200, QuickTapMS: 150,
	}))
	c.RegisterLayers(base)

	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: true}))
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: false}))

	// second press arrives 50ms later, well inside the 150ms quick-tap
	// window, and is held for 300ms - past TermMS - before release.
	*clock += 50
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: true}))
	*clock += 300
	c.Tick() // must not promote to Hold despite exceeding TermMS
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: false}))

	assert.Equal(t, []vk.Vk{vk.Escape, vk.Escape, vk.Escape, vk.Escape}, *sent)
}

// TestQuickTapWindowExpiresAfterIdle covers the other half of property 3:
// once QuickTapMS has actually elapsed with no second press, Tick must
// close the window so a later press starts a fresh tap-hold cycle instead
// of auto-repeating Tap indefinitely.
func TestQuickTapWindowExpiresAfterIdle(t *testing.T) {
	c, sent, clock := newTestCoreWithClock()
	base := NewLayer("base").Bind(vk.Capital, Hold(TapHoldSpec{
		Tap: Send(vk.Escape), Hold: Send(vk.LControl), TermMS: 200, QuickTapMS: 150,
	}))
	c.RegisterLayers(base)

	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: true}))
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: false}))

	*clock += 200 // past QuickTapMS with no second press
	c.Tick()

	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: true}))
	*clock += 250 // past TermMS
	c.Tick()
	require.True(t, c.Handle(Event{Vk: vk.Capital, Pressed: false}))

	assert.Equal(t, []vk.Vk{vk.Escape, vk.Escape, vk.LControl, vk.LControl}, *sent)
}

func TestSyntheticEventsPassThroughUntouched(t *testing.T) {
	c, sent := newTestCore()
	c.RegisterLayers(NewLayer("base").Bind(vk.Capital, Send(vk.Escape)))

	swallowed := c.Handle(Event{Vk: vk.Capital, Pressed: true, Synthetic: true})
	assert.False(t, swallowed)
	assert.Empty(t, *sent)
}
