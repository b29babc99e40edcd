// Package jmk implements the input-rewriting engine: layered key bindings,
// tap-hold keys and chord/hotkey triggers, fed by internal/hook and able to
// re-emit synthetic events through it.
package jmk

import "JigsawWM/internal/vk"

// Event is a single keyboard or mouse transition flowing through the
// engine. Time is monotonic milliseconds (elapsed since a fixed start
// instant, read from Go's monotonic clock on the hook thread), never
// wall-clock, so TapHold timing is immune to clock adjustments (spec §5).
type Event struct {
	Vk        vk.Vk
	Pressed   bool
	Synthetic bool
	Extra     uintptr
	Time      int64
}

// Same reports whether two events refer to the same physical transition
// (same key, same edge).
func (e Event) Same(o Event) bool {
	return e.Vk == o.Vk && e.Pressed == o.Pressed
}

// Handler consumes an Event and reports whether it swallowed it (stopping
// further propagation down the pipe).
type Handler func(Event) bool

// Pipe chains handlers so the first one to swallow an event stops the rest
// from seeing it, mirroring the teacher's JmkHandler.pipe composition.
func Pipe(handlers ...Handler) Handler {
	return func(e Event) bool {
		for _, h := range handlers {
			if h(e) {
				return true
			}
		}
		return false
	}
}
