//go:build windows

package wm

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"JigsawWM/internal/window"
)

// EventWatcher installs a SetWinEventHook covering the window lifecycle and
// drag events the Manager needs, grounded verbatim on the teacher's
// lovlygod-Rewinder/internal/events/win_event_hook.go idiom
// (NewLazySystemDLL + NewProc + NewCallback + PeekMessageW pump), retargeted
// from app-usage tracking to tiling maintenance.
type EventWatcher struct {
	manager  *Manager
	hookProc uintptr
	stopCh   chan struct{}
}

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procSetWinEventHook  = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent   = user32.NewProc("UnhookWinEvent")
	procPeekMessageW     = user32.NewProc("PeekMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessageW = user32.NewProc("DispatchMessageW")
)

const (
	eventSystemForeground     = 0x0003
	eventSystemMoveSizeStart  = 0x000A
	eventSystemMoveSizeEnd    = 0x000B
	eventObjectShow           = 0x8002
	eventObjectHide           = 0x8003
	eventObjectDestroy        = 0x8001
	eventObjectLocationChange = 0x800B

	objidWindow = 0

	winEventOutOfContext  = 0x0000
	winEventSkipOwnThread = 0x0002

	pmRemove = 0x0001
)

type eventMsg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// NewEventWatcher creates a watcher feeding m.
func NewEventWatcher(m *Manager) *EventWatcher {
	return &EventWatcher{manager: m, stopCh: make(chan struct{})}
}

// Run installs the hook and pumps messages until Stop is called. Must run
// on its own dedicated goroutine, like internal/hook.Manager.Run.
func (e *EventWatcher) Run() {
	cb := windows.NewCallback(e.onEvent)
	h, _, _ := procSetWinEventHook.Call(
		eventSystemForeground, eventObjectLocationChange,
		0, cb, 0, 0, winEventOutOfContext|winEventSkipOwnThread,
	)
	e.hookProc = h
	defer procUnhookWinEvent.Call(e.hookProc)

	var m eventMsg
	for {
		select {
		case <-e.stopCh:
			return
		default:
		}
		ret, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if ret != 0 {
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
			procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
		} else {
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// Stop breaks the message loop.
func (e *EventWatcher) Stop() {
	close(e.stopCh)
}

func (e *EventWatcher) onEvent(hWinEventHook uintptr, event uint32, hwnd uintptr, idObject, idChild int32, idEventThread, dwmsEventTime uint32) uintptr {
	if idObject != objidWindow || hwnd == 0 {
		return 0
	}
	win := window.FromHandle(hwnd)
	switch event {
	case eventObjectShow, eventSystemForeground:
		e.manager.OnWindowShown(win, win.ProcessImagePath())
	case eventObjectHide, eventObjectDestroy:
		e.manager.OnWindowHidden(win)
	case eventObjectLocationChange:
		e.manager.OnWindowLocationChanged(win)
	case eventSystemMoveSizeStart:
		e.manager.OnMoveSizeStart(win)
	case eventSystemMoveSizeEnd:
		e.manager.OnMoveSizeEnd(win)
	}
	return 0
}
