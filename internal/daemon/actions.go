package daemon

import (
	"sync"

	"github.com/google/uuid"
)

// ActionID is an opaque handle for a registered callback, per spec.md
// Design Note §9 ("pass opaque action identifiers + a registry, not raw
// function pointers"). Diagnostic tooling (tray labels, log lines) can
// name a callback without ever holding the closure itself.
type ActionID uuid.UUID

func (a ActionID) String() string { return uuid.UUID(a).String() }

// ActionRegistry maps opaque ids to their callback and a human label.
type ActionRegistry struct {
	mu      sync.RWMutex
	actions map[ActionID]registeredAction
}

type registeredAction struct {
	label string
	fn    func()
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make(map[ActionID]registeredAction)}
}

// Register assigns a fresh ActionID to fn, labeled for diagnostics.
func (r *ActionRegistry) Register(label string, fn func()) ActionID {
	id := ActionID(uuid.New())
	r.mu.Lock()
	r.actions[id] = registeredAction{label: label, fn: fn}
	r.mu.Unlock()
	return id
}

// Unregister forgets an action.
func (r *ActionRegistry) Unregister(id ActionID) {
	r.mu.Lock()
	delete(r.actions, id)
	r.mu.Unlock()
}

// Invoke calls the action registered under id, if any.
func (r *ActionRegistry) Invoke(id ActionID) {
	r.mu.RLock()
	a, ok := r.actions[id]
	r.mu.RUnlock()
	if ok {
		a.fn()
	}
}

// Label returns the diagnostic label for id, or "" if unknown.
func (r *ActionRegistry) Label(id ActionID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.actions[id].label
}
