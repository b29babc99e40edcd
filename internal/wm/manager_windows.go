//go:build windows

package wm

import (
	"sync"

	"JigsawWM/internal/layout"
	"JigsawWM/internal/monitor"
	"JigsawWM/internal/window"
)

// Manager is the tiling controller: it owns one MonitorState per physical
// display, routes window-event notifications into the right workspace,
// and exposes the full user-facing command surface, grounded on
// original_source/src/jigsawwm/wm/manager.py's WindowManager.
type Manager struct {
	mu       sync.Mutex
	config   Config
	monitors []*MonitorState
	byHandle map[window.Handle]*monitorWorkspaceRef

	movingWindow window.Window
	moving       bool

	workspacesPerMonitor int
	defaultTheme         layout.Theme
}

type monitorWorkspaceRef struct {
	monitorIdx   int
	workspaceIdx int
}

// New creates a Manager with workspacesPerMonitor workspaces on every
// currently attached monitor. It validates config first and returns an
// error naming the offending rule rather than starting with an
// ambiguous configuration, per spec §7's "invalid configuration"
// taxonomy.
func New(config Config, workspacesPerMonitor int) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if workspacesPerMonitor <= 0 {
		workspacesPerMonitor = 1
	}
	theme := layout.DwindleTheme
	if len(layout.DefaultThemes) > 0 {
		theme = layout.DefaultThemes[0]
	}
	m := &Manager{
		config:               config,
		byHandle:             make(map[window.Handle]*monitorWorkspaceRef),
		workspacesPerMonitor: workspacesPerMonitor,
		defaultTheme:         theme,
	}
	m.refreshMonitors()
	return m, nil
}

func (m *Manager) refreshMonitors() {
	mons := monitor.Enumerate()
	m.monitors = m.monitors[:0]
	for _, mon := range mons {
		m.monitors = append(m.monitors, NewMonitorState(mon, m.workspacesPerMonitor, m.themeFor(mon)))
	}
}

// themeFor picks the highest-affinity theme for mon out of DefaultThemes,
// per spec §4.6's affinity_index selection, falling back to the
// Manager's configured default if DefaultThemes is empty.
func (m *Manager) themeFor(mon monitor.Monitor) layout.Theme {
	if len(layout.DefaultThemes) == 0 {
		return m.defaultTheme
	}
	info := mon.PhysicalSize()
	ratio := 0.0
	if h := mon.Rect.Height(); h != 0 {
		ratio = float64(mon.Rect.Width()) / float64(h)
	}
	return layout.BestTheme(layout.DefaultThemes, layout.Affinity{Inches: info.Inches, Ratio: ratio})
}

// monitorForCursor returns the MonitorState under the mouse cursor,
// falling back to the first monitor.
func (m *Manager) monitorForCursor() *MonitorState {
	cur, ok := monitor.FromCursor()
	if ok {
		for _, ms := range m.monitors {
			if ms.ID == cur.ID {
				return ms
			}
		}
	}
	if len(m.monitors) > 0 {
		return m.monitors[0]
	}
	return nil
}

func (m *Manager) monitorIndexOf(ms *MonitorState) int {
	for i, x := range m.monitors {
		if x == ms {
			return i
		}
	}
	return -1
}

// OnWindowShown registers a newly-visible manageable window onto the
// monitor/workspace resolved by the rule config, per manager.py's
// `on_event_show`.
func (m *Manager) OnWindowShown(win window.Window, exeName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	className := win.ClassName()
	if win.IsToolWindow() || !m.config.Allow(exeName, className) {
		return
	}
	rule := m.config.Resolve(exeName, win.Title(), className)
	if rule.Ignore {
		return
	}

	ms := m.monitorForCursor()
	if rule.PreferredMonitor >= 0 && rule.PreferredMonitor < len(m.monitors) {
		ms = m.monitors[rule.PreferredMonitor]
	}
	if ms == nil {
		return
	}
	wsIdx := ms.ActiveIdx
	if rule.PreferredWorkspace >= 0 && rule.PreferredWorkspace < len(ms.Workspaces) {
		wsIdx = rule.PreferredWorkspace
	}
	ws := ms.Workspaces[wsIdx]
	ws.Add(win)
	if rule.StaticIndex >= 0 {
		ws.SetStaticIndex(win, rule.StaticIndex)
	}
	if rule.Float {
		ws.floated[win] = true
	}
	m.byHandle[win.Handle] = &monitorWorkspaceRef{monitorIdx: m.monitorIndexOf(ms), workspaceIdx: wsIdx}
	ws.Sync(false)
}

// OnWindowHidden/Destroyed removes a window from its workspace, per
// manager.py's `on_event_hide`/`on_event_destroy`.
func (m *Manager) OnWindowHidden(win window.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeWindow(win)
}

func (m *Manager) removeWindow(win window.Window) {
	ref, ok := m.byHandle[win.Handle]
	if !ok {
		return
	}
	delete(m.byHandle, win.Handle)
	ws := m.monitors[ref.monitorIdx].Workspaces[ref.workspaceIdx]
	ws.Remove(win)
	ws.Sync(true)
}

// OnWindowLocationChanged re-syncs the owning workspace, ignoring changes
// while a drag is in flight (those are coalesced until the mouse is
// released), per manager.py's `handle_window_event` coalescing around
// EVENT_SYSTEM_MOVESIZESTART/END.
func (m *Manager) OnWindowLocationChanged(win window.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.moving && win.Handle == m.movingWindow.Handle {
		return
	}
	ref, ok := m.byHandle[win.Handle]
	if !ok {
		return
	}
	m.monitors[ref.monitorIdx].Workspaces[ref.workspaceIdx].Sync(false)
}

// OnMoveSizeStart marks a window as being interactively dragged so
// location-changed events on it are ignored until release, per
// manager.py's `on_move_size_start`.
func (m *Manager) OnMoveSizeStart(win window.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moving = true
	m.movingWindow = win
}

// OnMoveSizeEnd drops a dragged window onto the tiling area under the
// cursor and re-arranges, per manager.py's `check_moving_window`.
func (m *Manager) OnMoveSizeEnd(win window.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moving = false
	ref, ok := m.byHandle[win.Handle]
	if !ok {
		return
	}
	ws := m.monitors[ref.monitorIdx].Workspaces[ref.workspaceIdx]
	x, y := monitor.CursorPos()
	src := -1
	for i, t := range ws.tilingWindows {
		if t == win {
			src = i
			break
		}
	}
	if src >= 0 {
		for i, area := range ws.tilingAreas {
			if i != src && i < len(ws.tilingWindows) && area.Contains(x, y) {
				ws.tilingWindows[src], ws.tilingWindows[i] = ws.tilingWindows[i], ws.tilingWindows[src]
				break
			}
		}
	}
	ws.Sync(true)
}

// --- command surface, grounded on manager.py's command methods ---

// NextWindow activates the next window in the active workspace's tiling
// order and centers the cursor on it.
func (m *Manager) NextWindow() { m.switchActiveWindow(1) }

// PrevWindow activates the previous window and centers the cursor on it.
func (m *Manager) PrevWindow() { m.switchActiveWindow(-1) }

func (m *Manager) switchActiveWindow(delta int) {
	m.withActiveWorkspace(func(ws *Workspace) {
		ws.SwitchWindow(delta)
		centerCursorOn(ws.lastActiveWindow)
	})
}

// centerCursorOn warps the mouse cursor to the middle of win's rect, per
// manager_core.py's switch_window_splash contract (spec §4.7 "center
// cursor").
func centerCursorOn(win window.Window) {
	if win == (window.Window{}) {
		return
	}
	r := win.Rect()
	monitor.WarpCursor(r.Left+r.Width()/2, r.Top+r.Height()/2)
}

// SwapNext/SwapPrev swap the active window with its neighbor in the
// tiling list and re-layout.
func (m *Manager) SwapNext() { m.withActiveWorkspace(func(ws *Workspace) { ws.SwapWindow(1) }) }
func (m *Manager) SwapPrev() { m.withActiveWorkspace(func(ws *Workspace) { ws.SwapWindow(-1) }) }

// SetMaster swaps the active window into slot 0 (or back out of it).
func (m *Manager) SetMaster() { m.withActiveWorkspace(func(ws *Workspace) { ws.SetMaster() }) }

// RollNext/RollPrev rotate the entire tiling list by one slot.
func (m *Manager) RollNext() { m.withActiveWorkspace(func(ws *Workspace) { ws.RollWindow(1) }) }
func (m *Manager) RollPrev() { m.withActiveWorkspace(func(ws *Workspace) { ws.RollWindow(-1) }) }

// ToggleTilable flips the active window between tiling and floating.
func (m *Manager) ToggleTilable() {
	m.withActiveWorkspace(func(ws *Workspace) {
		if ws.lastActiveWindow != (window.Window{}) {
			ws.ToggleTilable(ws.lastActiveWindow)
		}
	})
}

// ToggleMonoTheme toggles the active workspace between mono and its
// previous theme.
func (m *Manager) ToggleMonoTheme() { m.withActiveWorkspace(func(ws *Workspace) { ws.ToggleMono() }) }

// SetTheme sets the active workspace's theme by name.
func (m *Manager) SetTheme(name string) {
	m.withActiveWorkspace(func(ws *Workspace) {
		for _, t := range layout.DefaultThemes {
			if t.Name == name {
				ws.SetTheme(t)
				return
			}
		}
	})
}

// NextTheme/PrevTheme cycle the active workspace through DefaultThemes.
func (m *Manager) NextTheme() { m.cycleTheme(1) }
func (m *Manager) PrevTheme() { m.cycleTheme(-1) }

func (m *Manager) cycleTheme(delta int) {
	m.withActiveWorkspace(func(ws *Workspace) {
		idx := 0
		for i, t := range layout.DefaultThemes {
			if t.Name == ws.Theme.Name {
				idx = i
				break
			}
		}
		idx = ((idx+delta)%len(layout.DefaultThemes) + len(layout.DefaultThemes)) % len(layout.DefaultThemes)
		ws.SetTheme(layout.DefaultThemes[idx])
	})
}

// SwitchToWorkspace switches the active monitor's visible workspace.
func (m *Manager) SwitchToWorkspace(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ms := m.monitorForCursor(); ms != nil {
		ms.SwitchTo(index)
	}
}

// MoveActiveWindowToWorkspace moves the last-activated window of the
// cursor's monitor to a different workspace on the same monitor.
func (m *Manager) MoveActiveWindowToWorkspace(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms := m.monitorForCursor()
	if ms == nil {
		return
	}
	ws := ms.Active()
	if ws.lastActiveWindow == (window.Window{}) {
		return
	}
	win := ws.lastActiveWindow
	ms.MoveWindowTo(win, index)
	m.byHandle[win.Handle] = &monitorWorkspaceRef{monitorIdx: m.monitorIndexOf(ms), workspaceIdx: index}
}

// NextMonitor/PrevMonitor move keyboard focus to the next/previous
// monitor's active workspace.
func (m *Manager) NextMonitor() { m.cycleMonitorFocus(1) }
func (m *Manager) PrevMonitor() { m.cycleMonitorFocus(-1) }

func (m *Manager) cycleMonitorFocus(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.monitorForCursor()
	if cur == nil || len(m.monitors) == 0 {
		return
	}
	idx := m.monitorIndexOf(cur)
	idx = ((idx+delta)%len(m.monitors) + len(m.monitors)) % len(m.monitors)
	dst := m.monitors[idx]
	ws := dst.Active()
	win := ws.lastActiveWindow
	if win == (window.Window{}) && len(ws.tilingWindows) > 0 {
		win = ws.tilingWindows[0]
	}
	if win != (window.Window{}) && win.Exists() {
		win.Activate()
		centerCursorOn(win)
		return
	}
	r := dst.Monitor.Rect
	monitor.WarpCursor(r.Left+r.Width()/2, r.Top+r.Height()/2)
}

// MoveActiveWindowToMonitor reassigns the active window of the cursor's
// monitor to the monitor offset by delta, and re-layouts both, per
// virtdesk_state.py's `move_to_monitor`.
func (m *Manager) MoveActiveWindowToMonitor(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.monitors) < 2 {
		return
	}
	src := m.monitorForCursor()
	if src == nil {
		return
	}
	win := src.Active().lastActiveWindow
	if win == (window.Window{}) {
		return
	}
	srcIdx := m.monitorIndexOf(src)
	dstIdx := ((srcIdx+delta)%len(m.monitors) + len(m.monitors)) % len(m.monitors)
	dst := m.monitors[dstIdx]

	srcWs := src.Active()
	srcWs.Remove(win)
	srcWs.Sync(true)

	dstWs := dst.Active()
	dstWs.Add(win)
	dstWs.Sync(true)
	m.byHandle[win.Handle] = &monitorWorkspaceRef{monitorIdx: dstIdx, workspaceIdx: dst.ActiveIdx}

	if len(srcWs.tilingWindows) > 0 {
		srcWs.tilingWindows[0].Activate()
	}
}

// MoveActiveWindowToPrevMonitor/MoveActiveWindowToNextMonitor are the
// ±1 convenience wrappers manager.py exposes as hotkey actions.
func (m *Manager) MoveActiveWindowToPrevMonitor() { m.MoveActiveWindowToMonitor(-1) }
func (m *Manager) MoveActiveWindowToNextMonitor() { m.MoveActiveWindowToMonitor(1) }

// ArrangeAllMonitors forces every monitor's active workspace to
// re-arrange, used after a display topology change.
func (m *Manager) ArrangeAllMonitors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshMonitors()
	for _, ms := range m.monitors {
		ms.Active().Sync(true)
	}
}

func (m *Manager) withActiveWorkspace(f func(*Workspace)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ms := m.monitorForCursor(); ms != nil {
		f(ms.Active())
	}
}
