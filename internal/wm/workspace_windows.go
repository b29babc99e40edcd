//go:build windows

package wm

import (
	"sort"

	"JigsawWM/internal/layout"
	"JigsawWM/internal/monitor"
	"JigsawWM/internal/window"
)

// Workspace holds one virtual desktop's worth of windows for one monitor:
// an ordered tiling list, a floating set, and the off-screen "alter rect"
// used to hide/show windows without minimizing them (preserving z-order
// and avoiding taskbar flicker), grounded on
// original_source/src/jigsawwm/wm/workspace_state.py.
type Workspace struct {
	Index     int
	Name      string
	Theme     layout.Theme
	prevTheme layout.Theme

	monitor   monitor.Monitor
	alterRect window.Rect

	windows          map[window.Window]struct{}
	tilingWindows    []window.Window
	floatingWindows  []window.Window
	minimizedWindows []window.Window

	showing          bool
	lastActiveWindow window.Window
	tilingAreas      []window.Rect
	preferredIndex   map[window.Window]int
	staticIndex      map[window.Window]int
	floated          map[window.Window]bool // explicitly toggled non-tilable, per toggle_tilable
	prevMasterIdx    int
}

// NewWorkspace creates an empty workspace bound to a monitor.
func NewWorkspace(index int, name string, m monitor.Monitor, alterRect window.Rect, theme layout.Theme) *Workspace {
	return &Workspace{
		Index:          index,
		Name:           name,
		Theme:          theme,
		monitor:        m,
		alterRect:      alterRect,
		windows:        make(map[window.Window]struct{}),
		preferredIndex: make(map[window.Window]int),
		staticIndex:    make(map[window.Window]int),
		floated:        make(map[window.Window]bool),
		prevMasterIdx:  1,
	}
}

// Add tracks a new window as a member of this workspace.
func (w *Workspace) Add(win window.Window) {
	w.windows[win] = struct{}{}
}

// Remove drops a window from this workspace's membership entirely.
func (w *Workspace) Remove(win window.Window) {
	delete(w.windows, win)
	delete(w.preferredIndex, win)
	delete(w.staticIndex, win)
	delete(w.floated, win)
}

// ToggleTilable flips win between tiling and floating, per
// virtdesk_state.py's `toggle_tilable`. A floated window keeps its own
// geometry and is skipped by layout computation (spec §4.6/§3).
func (w *Workspace) ToggleTilable(win window.Window) {
	w.floated[win] = !w.floated[win]
	w.Sync(true)
}

// Toggle shows or hides every window in the workspace via the alter-rect
// trick: moving off-screen instead of minimizing, per
// workspace_state.py's `toggle`.
func (w *Workspace) Toggle(show bool) {
	w.showing = show
	for win := range w.windows {
		w.toggleWindow(win, show)
	}
	if !show {
		return
	}
	active := w.lastActiveWindow
	if active == (window.Window{}) && len(w.tilingWindows) > 0 {
		active = w.tilingWindows[0]
	}
	if active != (window.Window{}) && active.Exists() {
		active.Activate()
	}
}

func (w *Workspace) toggleWindow(win window.Window, show bool) {
	srcRect := win.Rect()
	workRect := w.monitor.Work
	var destContainer, srcContainer window.Rect
	if show {
		destContainer, srcContainer = workRect, w.alterRect
	} else {
		destContainer, srcContainer = w.alterRect, workRect
	}
	dest := window.Rect{
		Left:   destContainer.Left + (srcRect.Left - srcContainer.Left),
		Top:    destContainer.Top + (srcRect.Top - srcContainer.Top),
		Right:  destContainer.Right - (srcContainer.Right - srcRect.Right),
		Bottom: destContainer.Bottom - (srcContainer.Bottom - srcRect.Bottom),
	}
	win.SetRect(dest)
	if show {
		win.Show()
	}
}

// SetTheme switches the active theme and forces a re-arrange.
func (w *Workspace) SetTheme(t layout.Theme) {
	w.Theme = t
	w.Sync(true)
}

// ToggleMono flips between the mono theme and whatever theme was active
// before it, per workspace_state.py's `toggle_mono_theme`.
func (w *Workspace) ToggleMono() {
	if w.Theme.Name == layout.MonoTheme.Name {
		if w.prevTheme.Name != "" {
			w.SetTheme(w.prevTheme)
		}
		return
	}
	w.prevTheme = w.Theme
	w.SetTheme(layout.MonoTheme)
}

// Sync regroups the workspace's windows into tiling/floating/minimized
// buckets and re-arranges if the tiling list actually changed (or
// forceArrange is set), per workspace_state.py's `sync_windows`.
func (w *Workspace) Sync(forceArrange bool) {
	tiling, floating, minimized := w.groupWindows()
	if w.Theme.StaticLayout {
		tiling = w.sortByStaticIndex(tiling)
	}
	w.floatingWindows, w.minimizedWindows = floating, minimized
	if forceArrange || !sameOrder(tiling, w.tilingWindows) {
		w.tilingWindows = tiling
		w.Arrange()
	}
}

func (w *Workspace) groupWindows() (tiling, floating, minimized []window.Window) {
	tilingSet, floatingSet, minimizedSet := map[window.Window]bool{}, map[window.Window]bool{}, map[window.Window]bool{}
	for win := range w.windows {
		switch {
		case win.IsIconic():
			minimizedSet[win] = true
		case w.floated[win]:
			floatingSet[win] = true
		default:
			tilingSet[win] = true
		}
	}
	tiling = w.updateListFromSet(w.tilingWindows, tilingSet)
	floating = w.updateListFromSet(w.floatingWindows, floatingSet)
	for win := range minimizedSet {
		minimized = append(minimized, win)
	}
	return
}

func (w *Workspace) updateListFromSet(prev []window.Window, set map[window.Window]bool) []window.Window {
	kept := make([]window.Window, 0, len(prev))
	for _, win := range prev {
		if set[win] {
			kept = append(kept, win)
			delete(set, win)
		}
	}
	var fresh []window.Window
	for win := range set {
		fresh = append(fresh, win)
	}
	sort.Slice(fresh, func(i, j int) bool {
		return w.preferredIndex[fresh[i]] < w.preferredIndex[fresh[j]]
	})
	if w.Theme.NewWindowAsMaster {
		return append(fresh, kept...)
	}
	return append(kept, fresh...)
}

// sortByStaticIndex lays tiling windows out against the static-N template's
// fixed slots. A window arriving to claim an already-occupied slot takes it,
// and the prior occupant moves to the first slot no window claimed; if no
// slot is free it joins the overflow (stacked onto the last rectangle by
// Arrange), as do windows without a pinned slot.
func (w *Workspace) sortByStaticIndex(tiling []window.Window) []window.Window {
	out := make([]window.Window, w.Theme.MaxTilingAreas)
	var overflow, bumped []window.Window
	for _, win := range tiling {
		idx, ok := w.staticIndex[win]
		if !ok || idx >= len(out) {
			overflow = append(overflow, win)
			continue
		}
		if prev := out[idx]; prev != (window.Window{}) {
			bumped = append(bumped, prev)
		}
		out[idx] = win
	}
	for _, prev := range bumped {
		placed := false
		for i := range out {
			if out[i] == (window.Window{}) {
				out[i], placed = prev, true
				break
			}
		}
		if !placed {
			overflow = append(overflow, prev)
		}
	}
	return append(out, overflow...)
}

// SetStaticIndex pins win to a fixed workspace slot, consulted by
// sortByStaticIndex whenever the active theme uses a static layout.
func (w *Workspace) SetStaticIndex(win window.Window, idx int) {
	w.staticIndex[win] = idx
}

func sameOrder(a, b []window.Window) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Arrange recomputes tiling areas and applies them to every tiling window,
// overflowing extras into a stacked cascade in the last area, per
// workspace_state.py's `arrange`/`_stack_the_rest`.
func (w *Workspace) Arrange() {
	for i, win := range w.tilingWindows {
		if win != (window.Window{}) {
			w.preferredIndex[win] = i
		}
	}
	n := len(w.tilingWindows)
	m := n
	if w.Theme.MaxTilingAreas > 0 && w.Theme.MaxTilingAreas < m {
		m = w.Theme.MaxTilingAreas
	}
	w.tilingAreas = w.generateTilingAreas(m)
	for i := 0; i < m-1; i++ {
		if w.tilingWindows[i] != (window.Window{}) {
			w.tilingWindows[i].SetRect(w.tilingAreas[i])
		}
	}
	switch {
	case n > m && m > 0:
		w.stackTheRest(w.tilingAreas[m-1])
	case n == m && n > 0:
		w.tilingWindows[n-1].SetRect(w.tilingAreas[m-1])
	}
}

// generateTilingAreas shrinks each tiler-produced rect by half of the
// configured gap on its INNER edges only - an edge that coincides with the
// work-area boundary is a screen edge, not a seam between two windows, and
// is left untouched.
func (w *Workspace) generateTilingAreas(n int) []window.Rect {
	work := w.monitor.Work
	physical := layout.PhysicalRect{Left: work.Left, Top: work.Top, Right: work.Right, Bottom: work.Bottom}
	areas := w.Theme.LayoutTiler(physical, n)
	half := w.Theme.Gap / 2
	out := make([]window.Rect, len(areas))
	for i, a := range areas {
		r := a
		if r.Left != work.Left {
			r.Left += half
		}
		if r.Top != work.Top {
			r.Top += half
		}
		if r.Right != work.Right {
			r.Right -= half
		}
		if r.Bottom != work.Bottom {
			r.Bottom -= half
		}
		out[i] = window.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
	}
	return out
}

func (w *Workspace) stackTheRest(bound window.Rect) {
	index := len(w.tilingAreas) - 1
	n := len(w.tilingWindows)
	numRest := n - index
	if numRest <= 0 {
		return
	}
	width := int32(float64(bound.Width()) * w.Theme.StackingWindowW)
	height := int32(float64(bound.Height()) * w.Theme.StackingWindowH)
	if numRest == 1 {
		if w.tilingWindows[index] != (window.Window{}) {
			w.tilingWindows[index].SetRect(window.Rect{Left: bound.Left, Top: bound.Top, Right: bound.Left + width, Bottom: bound.Top + height})
		}
		return
	}
	xStep := (bound.Width() - width) / int32(numRest-1)
	yStep := (bound.Height() - height) / int32(numRest-1)
	left, top := bound.Left, bound.Top
	for i := index; i < n; i++ {
		if w.tilingWindows[i] != (window.Window{}) {
			w.tilingWindows[i].SetRect(window.Rect{Left: left, Top: top, Right: left + width, Bottom: top + height})
		}
		left += xStep
		top += yStep
	}
}

// SwitchWindow moves the active-window cursor within the tiling list by
// delta, per workspace_state.py's `switch_window`.
func (w *Workspace) SwitchWindow(delta int) {
	if len(w.tilingWindows) == 0 {
		return
	}
	idx := -1
	for i, win := range w.tilingWindows {
		if win == w.lastActiveWindow {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+delta)%len(w.tilingWindows) + len(w.tilingWindows)) % len(w.tilingWindows)
	w.lastActiveWindow = w.tilingWindows[idx]
	if w.lastActiveWindow != (window.Window{}) {
		w.lastActiveWindow.Activate()
	}
}

// activeTilingIndex returns the tiling-list index of the last-activated
// window, falling back to 0, or -1 if the list is empty.
func (w *Workspace) activeTilingIndex() int {
	if len(w.tilingWindows) == 0 {
		return -1
	}
	for i, win := range w.tilingWindows {
		if win == w.lastActiveWindow {
			return i
		}
	}
	return 0
}

// SwapWindow swaps the active window with its sibling by offset and
// re-arranges, per virtdesk_state.py's `swap_window`.
func (w *Workspace) SwapWindow(delta int) {
	idx := w.activeTilingIndex()
	if idx < 0 || len(w.tilingWindows) < 2 {
		return
	}
	dst := ((idx+delta)%len(w.tilingWindows) + len(w.tilingWindows)) % len(w.tilingWindows)
	w.tilingWindows[idx], w.tilingWindows[dst] = w.tilingWindows[dst], w.tilingWindows[idx]
	w.Arrange()
	w.tilingWindows[dst].Activate()
}

// SetMaster swaps the active window with slot 0; if it's already slot 0,
// it swaps back to whichever slot it came from last time (so repeated
// calls toggle between master and the previous master), per
// virtdesk_state.py's `set_master`.
func (w *Workspace) SetMaster() {
	idx := w.activeTilingIndex()
	if idx < 0 || len(w.tilingWindows) < 2 {
		return
	}
	if idx == 0 {
		idx = w.prevMasterIdx
		if idx <= 0 || idx >= len(w.tilingWindows) {
			idx = 1
		}
	}
	w.tilingWindows[0], w.tilingWindows[idx] = w.tilingWindows[idx], w.tilingWindows[0]
	w.prevMasterIdx = idx
	w.Arrange()
	w.tilingWindows[0].Activate()
}

// RollWindow rotates the entire tiling list by one slot in the direction
// of delta, per virtdesk_state.py's `roll_window`.
func (w *Workspace) RollWindow(delta int) {
	n := len(w.tilingWindows)
	if n < 2 {
		return
	}
	if delta < 0 {
		first := w.tilingWindows[0]
		copy(w.tilingWindows, w.tilingWindows[1:])
		w.tilingWindows[n-1] = first
	} else {
		last := w.tilingWindows[n-1]
		copy(w.tilingWindows[1:], w.tilingWindows[:n-1])
		w.tilingWindows[0] = last
	}
	w.Arrange()
	w.tilingWindows[0].Activate()
}
