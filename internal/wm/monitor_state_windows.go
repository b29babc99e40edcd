//go:build windows

package wm

import (
	"JigsawWM/internal/hook"
	"JigsawWM/internal/layout"
	"JigsawWM/internal/monitor"
	"JigsawWM/internal/window"
)

// MonitorState owns the workspace slice bound to one physical monitor and
// tracks which workspace is currently showing, grounded on
// original_source/src/jigsawwm/wm/monitor_state.py.
type MonitorState struct {
	ID         monitor.ID
	Monitor    monitor.Monitor
	Workspaces []*Workspace
	ActiveIdx  int
}

// NewMonitorState creates n workspaces on m, each starting with theme.
func NewMonitorState(m monitor.Monitor, numWorkspaces int, theme layout.Theme) *MonitorState {
	ms := &MonitorState{ID: m.ID, Monitor: m}
	for i := 0; i < numWorkspaces; i++ {
		ws := NewWorkspace(i, workspaceName(i), m, computeAlterRect(m, i), theme)
		ms.Workspaces = append(ms.Workspaces, ws)
	}
	if len(ms.Workspaces) > 0 {
		ms.Workspaces[0].showing = true
	}
	return ms
}

// alterRectX is the hidden-window x-origin: far enough negative (spec's
// (-32000,-32000)) that it never lands on any real monitor, including one
// placed to the left of the primary in a multi-monitor layout.
const alterRectX = -32000

// computeAlterRect returns the off-screen rect a hidden workspace's windows
// are moved into. Every workspace uses the same far-negative x but a y
// spread over workspaceIndex*height, so workspaces on the same monitor
// never collide with each other there either, per
// original_source/src/jigsawwm/wm/monitor_state.py's `compute_alter_rect`
// (which spreads per-index over the y axis; the x origin here is pinned to
// spec's (-32000,-32000) rather than the original's below-monitor offset,
// since real Y coordinates near a bottom monitor's Rect.Bottom can still
// land at x >= -10000).
func computeAlterRect(m monitor.Monitor, workspaceIndex int) window.Rect {
	height := m.Rect.Height()
	top := int32(alterRectX) + height*int32(workspaceIndex)
	width := m.Rect.Width()
	return window.Rect{
		Left: alterRectX, Top: top,
		Right: alterRectX + width, Bottom: top + height,
	}
}

func workspaceName(i int) string {
	names := []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}
	if i < len(names) {
		return names[i]
	}
	return workspaceName(i % len(names))
}

// Active returns the currently-showing workspace.
func (m *MonitorState) Active() *Workspace {
	return m.Workspaces[m.ActiveIdx]
}

// SwitchTo hides the current workspace and shows the one at index,
// per manager.py's `switch_to_workspace`. Input is blocked for the
// duration of the off-screen/on-screen window moves so a stray keypress
// can't land on the wrong workspace mid-switch.
func (m *MonitorState) SwitchTo(index int) {
	if index == m.ActiveIdx || index < 0 || index >= len(m.Workspaces) {
		return
	}
	hook.BlockInput(true)
	defer hook.BlockInput(false)
	m.Active().Toggle(false)
	m.ActiveIdx = index
	m.Active().Toggle(true)
}

// MoveWindowTo transfers win from the active workspace to the one at
// index, hiding it immediately since the destination isn't showing.
func (m *MonitorState) MoveWindowTo(win window.Window, index int) {
	if index < 0 || index >= len(m.Workspaces) || index == m.ActiveIdx {
		return
	}
	src := m.Active()
	src.Remove(win)
	src.Sync(true)
	dst := m.Workspaces[index]
	dst.Add(win)
	dst.toggleWindow(win, false)
	dst.Sync(true)
}
