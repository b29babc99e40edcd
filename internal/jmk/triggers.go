package jmk

import (
	"fmt"
	"sort"
	"strings"

	"JigsawWM/internal/vk"
)

// Trigger is a registered hotkey/combo: it fires callback once per
// qualifying press of chord, and requires at least one constituent key to
// release before it can fire again, grounded on
// original_source/src/jigsawwm/jmk/core.py's JmkTriggers.check_comb.
type Trigger struct {
	Chord    vk.Chord
	Callback func()
	fired    bool
}

// Triggers tracks the currently-down key set and the registered chords,
// firing callbacks on qualifying presses and suppressing the press that
// triggered them.
type Triggers struct {
	down     map[vk.Vk]struct{}
	triggers []*Trigger
	send     func(vk.Vk, bool)
}

// NewTriggers creates an empty trigger table. send is the synthetic-output
// sink used to emit the modifier-cleanup burst on chord fire (§4.2.2).
func NewTriggers(send func(vk.Vk, bool)) *Triggers {
	return &Triggers{down: make(map[vk.Vk]struct{}), send: send}
}

// Register adds a chord->callback trigger and returns it so the caller can
// unregister it later.
func (t *Triggers) Register(chord vk.Chord, callback func()) *Trigger {
	tr := &Trigger{Chord: chord, Callback: callback}
	t.triggers = append(t.triggers, tr)
	return tr
}

// Unregister removes a previously registered trigger.
func (t *Triggers) Unregister(tr *Trigger) {
	for i, x := range t.triggers {
		if x == tr {
			t.triggers = append(t.triggers[:i], t.triggers[i+1:]...)
			return
		}
	}
}

// Handle feeds one event through the trigger table. It returns true if the
// event was the qualifying press of some chord and should be swallowed.
func (t *Triggers) Handle(e Event) bool {
	if e.Pressed {
		t.down[e.Vk] = struct{}{}
	} else {
		delete(t.down, e.Vk)
		// releasing any constituent key re-arms every trigger that used it.
		for _, tr := range t.triggers {
			if _, ok := tr.Chord[e.Vk]; ok {
				tr.fired = false
			}
		}
		return false
	}

	swallowed := false
	for _, tr := range t.triggers {
		if tr.fired || !t.chordSatisfied(tr.Chord) {
			continue
		}
		tr.fired = true
		t.releaseModifiers(tr.Chord)
		tr.Callback()
		swallowed = true
	}
	return swallowed
}

// releaseModifiers emits a synthetic release for every modifier key
// (vk.IsModifier) in chord that is currently held, before the callback's own
// input - otherwise the physical modifier is left logically down in the OS's
// eyes once the callback's keystrokes land, stranding it per §1/§4.2.2 (e.g.
// releasing LWin after a Win+J hotkey fires a Start-menu tap).
func (t *Triggers) releaseModifiers(chord vk.Chord) {
	for k := range chord {
		if _, ok := t.down[k]; ok && k.IsModifier() {
			t.send(k, false)
		}
	}
}

func (t *Triggers) chordSatisfied(c vk.Chord) bool {
	for k := range c {
		if _, ok := t.down[k]; !ok {
			return false
		}
	}
	return len(c) > 0
}

// Validate fails fast on two identically registered chords, which would
// otherwise fire both callbacks on the same press with no way to tell
// them apart in a diagnostic, per spec.md §7's "overlapping chord" check.
func (t *Triggers) Validate() error {
	seen := make(map[string]bool, len(t.triggers))
	for _, tr := range t.triggers {
		key := chordKey(tr.Chord)
		if seen[key] {
			return fmt.Errorf("jmk: duplicate chord registration: %s", key)
		}
		seen[key] = true
	}
	return nil
}

func chordKey(c vk.Chord) string {
	keys := make([]vk.Vk, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, "+")
}
