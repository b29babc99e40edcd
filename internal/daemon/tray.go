//go:build windows

package daemon

import (
	"github.com/getlantern/systray"
)

// TrayItem is one contributed tray menu entry, per spec.md §6's tray
// contract: an iterable {label, enabled, checked, on_trigger} set
// contributed by registered services/tasks, generalized from
// lovlygod-Rewinder/internal/trayhotkey/manager_windows.go's fixed 5-item
// menu and grounded on original_source/app/daemon.py's
// `refresh_traymenu`.
type TrayItem struct {
	Label    string
	Enabled  bool
	Checked  bool
	Checkable bool
	OnTrigger func()
}

// Tray hosts the systray icon and builds its menu once, at startup, from a
// provider function; jobs registered after that do not appear in the menu.
type Tray struct {
	Tooltip string
	IconPNG []byte
	Items   func() []TrayItem
	OnQuit  func()

	items map[string]*systray.MenuItem
}

// Run blocks until the tray is asked to quit; call it from its own
// goroutine via systray.Run's callback-driven model (getlantern/systray
// owns the OS message loop on the calling goroutine, same as the
// teacher's Manager.Start).
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

func (t *Tray) onReady() {
	systray.SetTooltip(t.Tooltip)
	if len(t.IconPNG) > 0 {
		systray.SetIcon(t.IconPNG)
	}
	t.rebuild()
}

// rebuild constructs the menu once at startup from the current Items()
// snapshot. getlantern/systray (like the teacher's usage of it) builds its
// menu once in onReady rather than tearing down and recreating items, so
// toggling a service's checked state happens via the MenuItem handles
// captured in the closures below, not by rebuilding the tree.
func (t *Tray) rebuild() {
	t.items = make(map[string]*systray.MenuItem)
	for _, item := range t.Items() {
		mi := systray.AddMenuItem(item.Label, item.Label)
		if item.Checkable {
			if item.Checked {
				mi.Check()
			} else {
				mi.Uncheck()
			}
		}
		if !item.Enabled {
			mi.Disable()
		}
		t.items[item.Label] = mi
		trigger := item.OnTrigger
		go func(mi *systray.MenuItem, trigger func()) {
			for range mi.ClickedCh {
				if trigger != nil {
					trigger()
				}
			}
		}(mi, trigger)
	}
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Quit JigsawWM")
	go func() {
		<-quit.ClickedCh
		systray.Quit()
		if t.OnQuit != nil {
			t.OnQuit()
		}
	}()
}

// SetChecked updates a previously built checkable item's check mark by
// label, used by Service toggles to reflect running state without
// rebuilding the whole menu (systray has no reliable teardown), per
// app/daemon.py's `refresh_traymenu` intent.
func (t *Tray) SetChecked(label string, checked bool) {
	mi, ok := t.items[label]
	if !ok {
		return
	}
	if checked {
		mi.Check()
	} else {
		mi.Uncheck()
	}
}
