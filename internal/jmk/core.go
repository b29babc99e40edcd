package jmk

import (
	"sync"

	"JigsawWM/internal/vk"
)

// Layer is a named set of key bindings, analogous to a keyboard layer in
// QMK/kmonad terms and to JmkLayerKey's owning layer in the teacher.
type Layer struct {
	Name     string
	Bindings map[vk.Vk]Binding
}

// NewLayer creates an empty, named layer.
func NewLayer(name string) *Layer {
	return &Layer{Name: name, Bindings: make(map[vk.Vk]Binding)}
}

// Bind attaches a binding to a key on this layer.
func (l *Layer) Bind(key vk.Vk, b Binding) *Layer {
	l.Bindings[key] = b
	return l
}

// Core is the layer-stack engine: it owns an ordered stack of registered
// layers, an explicit active-set, a live routing table for currently-down
// keys (so releases always resolve through the binding that was active at
// press time, even if layers changed mid-press), and the Triggers table for
// chord hotkeys. Grounded on
// original_source/src/jigsawwm/jmk/core.py's JmkCore.
type Core struct {
	mu       sync.Mutex
	layers   []*Layer
	active   map[string]bool
	routes   map[vk.Vk]*routeEntry
	tapHolds map[vk.Vk]*tapHoldState // one persistent FSM per physical key, outliving any single press so quick-tap timing survives release->press
	triggers *Triggers

	send func(vk.Vk, bool)
	now  func() int64
}

type routeEntry struct {
	layer   *Layer
	binding Binding
	th      *tapHoldState
}

// New creates a Core. send is the synthetic-output sink (typically
// hook.SendKey); now returns monotonic milliseconds.
func New(send func(vk.Vk, bool), now func() int64) *Core {
	return &Core{
		active:   make(map[string]bool),
		routes:   make(map[vk.Vk]*routeEntry),
		tapHolds: make(map[vk.Vk]*tapHoldState),
		triggers: NewTriggers(send),
		send:     send,
		now:      now,
	}
}

// RegisterLayers pushes layers onto the top of the stack in declaration
// order (resolution searches top-down, last registered wins first).
func (c *Core) RegisterLayers(layers ...*Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers = append(c.layers, layers...)
}

// ActivateLayer turns a layer on by name.
func (c *Core) ActivateLayer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[name] = true
}

// DeactivateLayer turns a layer off by name.
func (c *Core) DeactivateLayer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, name)
}

// Triggers exposes the chord/hotkey table for registration.
func (c *Core) Triggers() *Triggers {
	return c.triggers
}

// findRoute searches layers top-down (most recently registered first),
// considering only active ones (the base/first-registered layer is always
// considered active), for a binding of key.
func (c *Core) findRoute(key vk.Vk) (*Layer, Binding) {
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		if i != 0 && !c.active[l.Name] {
			continue
		}
		if b, ok := l.Bindings[key]; ok {
			return l, b
		}
	}
	return nil, nil
}

// Handle is the single entry point fed by the hook: it returns true when
// the event should be swallowed (not passed to the OS).
func (c *Core) Handle(e Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.Synthetic {
		return false
	}

	// an in-flight route (key already down through some binding) always
	// resolves through the SAME binding on its release, even if the layer
	// stack changed in between.
	if !e.Pressed {
		if route, ok := c.routes[e.Vk]; ok {
			delete(c.routes, e.Vk)
			c.dispatchRelease(route)
			c.notifyOthers(e.Vk)
			c.triggers.Handle(e)
			return true
		}
	}

	if c.triggers.Handle(e) {
		return true
	}

	if !e.Pressed {
		return false
	}

	layer, binding := c.findRoute(e.Vk)
	if binding == nil {
		// unbound keys still pass straight through to the OS, but their
		// press is activity that can resolve any OTHER key's pending
		// tap-hold to a hold (the "used-is-hold" heuristic, spec §4.3).
		c.notifyOthers(e.Vk)
		return false
	}
	route := &routeEntry{layer: layer, binding: binding}
	c.routes[e.Vk] = route
	c.dispatchPress(e.Vk, binding, route)
	c.notifyOthers(e.Vk)
	return true
}

// notifyOthers drives the "used-is-hold" heuristic: any key transition
// counts as activity for every OTHER key's pending tap-hold state.
func (c *Core) notifyOthers(skip vk.Vk) {
	for k, route := range c.routes {
		if k == skip || route.th == nil {
			continue
		}
		route.th.OtherKeyActivity()
	}
}

func (c *Core) dispatchPress(key vk.Vk, b Binding, route *routeEntry) {
	switch v := b.(type) {
	case sendBinding:
		for _, k := range v.keys {
			c.send(k, true)
		}
	case sendFnBinding:
		v.fn()
	case tapHoldBinding:
		th := c.tapHolds[key]
		if th == nil {
			th = newTapHoldState(key, v.spec, c.send, c.callBinding, c.now)
			c.tapHolds[key] = th
		} else {
			th.spec = v.spec
		}
		route.th = th
		th.Down()
		if v.spec.Layer != "" && th.Active() {
			c.active[v.spec.Layer] = true
		}
	}
}

func (c *Core) dispatchRelease(route *routeEntry) {
	if route.th != nil {
		route.th.Up()
		if route.th.spec.Layer != "" {
			delete(c.active, route.th.spec.Layer)
		}
		return
	}
	if route.layer == nil {
		return
	}
	// a remap releases the keys it pressed; SendFn releases are absorbed.
	if v, ok := route.binding.(sendBinding); ok {
		for _, k := range v.keys {
			c.send(k, false)
		}
	}
}

// callBinding invokes a Tap/Hold leaf binding (Send or SendFn) with an
// explicit pressed edge, used by the TapHold FSM to fire its Tap/Hold
// actions.
func (c *Core) callBinding(b Binding, pressed bool) {
	switch v := b.(type) {
	case sendBinding:
		for _, k := range v.keys {
			c.send(k, pressed)
		}
	case sendFnBinding:
		if pressed {
			v.fn()
		}
	}
}

// Tick drives time-based transitions (hold-term expiry, quick-tap window
// expiry) for every physical key that has ever used a tap-hold binding, not
// just ones currently down - a key can sit in phaseQuickTapPending with no
// route at all. The daemon scheduler calls this periodically (e.g. every
// 10ms) rather than arming one timer per key, mirroring the teacher's
// single ThreadWorker loop.
func (c *Core) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, th := range c.tapHolds {
		th.CheckHold()
		th.ExpireQuickTap()
		if th.spec.Layer != "" && th.Active() {
			c.active[th.spec.Layer] = true
		}
	}
}
