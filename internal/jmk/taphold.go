package jmk

import "JigsawWM/internal/vk"

// tapHoldPhase is the FSM state for one physical key bound to Hold(...),
// grounded on original_source/src/jigsawwm/jmk/core.py's JmkTapHold.
type tapHoldPhase int

const (
	phaseIdle tapHoldPhase = iota
	phasePending
	phaseHeld
	phaseQuickTapPending
)

// tapHoldState runs one key's tap-hold state machine. It is not
// goroutine-safe; the owning Core serializes all events through one
// dispatch loop (spec §5, teacher's single-coarse-mutex model).
type tapHoldState struct {
	spec  TapHoldSpec
	key   vk.Vk
	phase tapHoldPhase

	downAt     int64
	quickTapAt int64 // time Up() entered phaseQuickTapPending, checked by ExpireQuickTap
	usedAsHold bool  // another key transitioned while this one was pending: "used-is-hold" heuristic

	send func(vk.Vk, bool)
	call func(Binding, bool)
	now  func() int64
}

func newTapHoldState(key vk.Vk, spec TapHoldSpec, send func(vk.Vk, bool), call func(Binding, bool), now func() int64) *tapHoldState {
	return &tapHoldState{key: key, spec: spec, send: send, call: call, now: now, phase: phaseIdle}
}

// Down handles the bound key itself being pressed.
func (t *tapHoldState) Down() {
	switch t.phase {
	case phaseIdle:
		t.phase = phasePending
		t.downAt = t.now()
		t.usedAsHold = false
	case phaseQuickTapPending:
		// a rapid second press within the quick-tap window re-fires Tap
		// immediately rather than re-arming Hold.
		t.call(t.spec.Tap, true)
		t.call(t.spec.Tap, false)
	}
}

// Up handles the bound key itself being released.
func (t *tapHoldState) Up() {
	switch t.phase {
	case phasePending:
		t.call(t.spec.Tap, true)
		t.call(t.spec.Tap, false)
		if t.spec.QuickTapMS > 0 {
			t.phase = phaseQuickTapPending
			t.quickTapAt = t.now()
		} else {
			t.phase = phaseIdle
		}
	case phaseHeld:
		t.call(t.spec.Hold, false)
		t.phase = phaseIdle
	}
}

// CheckHold is driven by a timer; when enough time has elapsed since Down
// without an intervening Up, the key transitions to Held.
func (t *tapHoldState) CheckHold() {
	if t.phase != phasePending {
		return
	}
	if t.now()-t.downAt >= t.spec.TermMS {
		t.phase = phaseHeld
		t.call(t.spec.Hold, true)
	}
}

// ExpireQuickTap is driven by a timer to close the quick-tap window once
// QuickTapMS has actually elapsed since the tap that opened it.
func (t *tapHoldState) ExpireQuickTap() {
	if t.phase == phaseQuickTapPending && t.now()-t.quickTapAt >= t.spec.QuickTapMS {
		t.phase = phaseIdle
	}
}

// OtherKeyActivity is called whenever any OTHER key transitions while this
// one is pending, implementing the "used-is-hold" heuristic: if another key
// is struck while we're still deciding, this key is being used as a
// modifier, so Hold is committed immediately and its next Up releases Hold
// instead of emitting Tap.
func (t *tapHoldState) OtherKeyActivity() {
	if t.phase == phasePending {
		t.usedAsHold = true
		t.phase = phaseHeld
		t.call(t.spec.Hold, true)
	}
}

// Active reports whether the bound Layer (if any) should currently be
// considered active.
func (t *tapHoldState) Active() bool {
	return t.phase == phaseHeld
}
