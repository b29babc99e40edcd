package jmk

import "JigsawWM/internal/vk"

// Binding is a closed sum type for what a layer key does when struck,
// per Design Note §9 (avoid open polymorphism / raw function pointers):
// exactly three concrete, unexported implementations exist, and callers
// build one via the Send/SendFn/Hold constructors below.
type Binding interface {
	bindingTag()
}

type sendBinding struct {
	keys []vk.Vk
}

func (sendBinding) bindingTag() {}

// Send returns a Binding that re-emits keys verbatim (a remap), e.g.
// CapsLock -> Escape.
func Send(keys ...vk.Vk) Binding {
	return sendBinding{keys: keys}
}

type sendFnBinding struct {
	fn func()
}

func (sendFnBinding) bindingTag() {}

// SendFn returns a Binding that invokes an arbitrary action instead of
// emitting keys, e.g. launching a window-manager command.
func SendFn(fn func()) Binding {
	return sendFnBinding{fn: fn}
}

// TapHoldSpec configures a dual-role key: tapped it sends Tap, held past
// TermMS it activates Hold (optionally layering Layer), per spec §4.3.
type TapHoldSpec struct {
	Tap           Binding
	Hold          Binding
	Layer         string // layer to activate while held, "" if none
	TermMS        int64
	QuickTapMS    int64 // window after a tap during which a second press auto-repeats the tap instead of re-arming hold
}

type tapHoldBinding struct {
	spec TapHoldSpec
}

func (tapHoldBinding) bindingTag() {}

// Hold returns a tap-hold Binding.
func Hold(spec TapHoldSpec) Binding {
	return tapHoldBinding{spec: spec}
}
