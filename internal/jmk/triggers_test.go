package jmk

import (
	"testing"

	"JigsawWM/internal/vk"

	"github.com/stretchr/testify/assert"
)

func TestTriggersValidateRejectsDuplicateChord(t *testing.T) {
	tr := NewTriggers(func(vk.Vk, bool) {})
	tr.Register(vk.NewChord(vk.LWin, vk.KeyJ), func() {})
	tr.Register(vk.NewChord(vk.KeyJ, vk.LWin), func() {}) // same keys, different insertion order

	err := tr.Validate()
	assert.Error(t, err)
}

func TestTriggersValidateAcceptsDistinctChords(t *testing.T) {
	tr := NewTriggers(func(vk.Vk, bool) {})
	tr.Register(vk.NewChord(vk.LWin, vk.KeyJ), func() {})
	tr.Register(vk.NewChord(vk.LWin, vk.KeyK), func() {})

	assert.NoError(t, tr.Validate())
}

// TestChordFireReleasesHeldModifiersBeforeCallback covers spec §8 scenario
// S5: firing a chord bound to a synthetic key combo must first release the
// chord's own modifier keys, so the OS is never left thinking a physical
// modifier is still down once the callback's keystrokes land.
func TestChordFireReleasesHeldModifiersBeforeCallback(t *testing.T) {
	var sent []vk.Vk
	send := func(v vk.Vk, pressed bool) { sent = append(sent, v) }
	tr := NewTriggers(send)
	tr.Register(vk.NewChord(vk.LWin, vk.KeyQ), func() {
		send(vk.LMenu, true)
		send(vk.F1, true)
		send(vk.F1, false)
		send(vk.LMenu, false)
	})

	assert.False(t, tr.Handle(Event{Vk: vk.LWin, Pressed: true}))
	assert.True(t, tr.Handle(Event{Vk: vk.KeyQ, Pressed: true}))

	assert.Equal(t, []vk.Vk{vk.LWin, vk.LMenu, vk.F1, vk.F1, vk.LMenu}, sent)
}
