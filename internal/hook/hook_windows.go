//go:build windows

// Package hook installs the low-level keyboard and mouse hooks that feed the
// jmk engine, and wraps SendInput for synthetic event injection.
package hook

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procSendInput           = user32.NewProc("SendInput")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	hcAction = 0

	wmQuit = 0x0012

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C

	llkhfInjected = 0x00000010

	inputKeyboard = 1
	inputMouse    = 0

	kEyeventfExtendedKey = 0x0001
	kEyeventfKeyUp       = 0x0002

	mouseeventfMove     = 0x0001
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
	mouseeventfWheel    = 0x0800
)

// InjectSentinel marks synthetic events this process itself generated via
// SendInput, so the hook callbacks can recognize and pass them through
// without re-processing them as user input (see clipboard_listener.go's
// dwExtraInfo idiom in the teacher).
const InjectSentinel uintptr = 0x4A4D4B00 // "JMK" tag

type kbdllhookstruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msllhookstruct struct {
	Pt          struct{ X, Y int32 }
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// KeyEvent is delivered for every non-injected keyboard transition.
type KeyEvent struct {
	VkCode   uint32
	ScanCode uint32
	Pressed  bool
}

// MouseEvent is delivered for every non-injected mouse transition the hook
// understands (buttons and wheel; plain moves are not forwarded).
type MouseEvent struct {
	VkCode   uint32 // synthetic vk.* code for the button/wheel direction
	Pressed  bool
	X, Y     int32
}

// Handler receives hook events on the hook's own OS thread and must return
// quickly; long work must be handed off to another goroutine. Returning
// true consumes ("swallows") the event from reaching the rest of the OS.
type Handler interface {
	OnKey(KeyEvent) (swallow bool)
	OnMouse(MouseEvent) (swallow bool)
}

// Manager owns the keyboard and mouse low-level hooks and the message pump
// thread required to keep them alive, grounded on
// lovlygod-Rewinder/internal/events/win_event_hook.go's SetWinEventHook +
// PeekMessageW idiom, generalized to SetWindowsHookExW.
type Manager struct {
	handler   Handler
	kbHook    uintptr
	mouseHook uintptr
	threadID  uint32
	stopOnce  sync.Once
	started   chan struct{}
	stopped   chan struct{}
}

// New creates a Manager that dispatches hook callbacks to handler.
func New(handler Handler) *Manager {
	return &Manager{
		handler: handler,
		started: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

var activeManager *Manager // the hook callback has no user-data slot, mirrors the teacher's package-level proc vars

// Run installs both hooks and pumps messages until Stop is called. It must
// run on a dedicated goroutine that is never used for anything else,
// because Windows delivers low-level hook callbacks on the thread that
// installed them.
func (m *Manager) Run() error {
	windowsLockOSThread()
	activeManager = m
	m.threadID = getCurrentThreadID()

	kbHook, _, err := procSetWindowsHookExW.Call(
		uintptr(whKeyboardLL),
		windows.NewCallback(lowLevelKeyboardProc),
		0, 0,
	)
	if kbHook == 0 {
		return err
	}
	m.kbHook = kbHook

	mouseHook, _, err := procSetWindowsHookExW.Call(
		uintptr(whMouseLL),
		windows.NewCallback(lowLevelMouseProc),
		0, 0,
	)
	if mouseHook == 0 {
		procUnhookWindowsHookEx.Call(m.kbHook)
		return err
	}
	m.mouseHook = mouseHook

	close(m.started)
	m.pumpMessages()
	close(m.stopped)
	return nil
}

func (m *Manager) pumpMessages() {
	var message msg
	for {
		ret, _, _ := procGetMessageW.Call(
			uintptr(unsafe.Pointer(&message)), 0, 0, 0,
		)
		if int32(ret) <= 0 {
			return
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&message)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&message)))
	}
}

// Stop unhooks both hooks and breaks the message pump. Safe to call once;
// subsequent calls are no-ops.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		<-m.started
		if m.kbHook != 0 {
			procUnhookWindowsHookEx.Call(m.kbHook)
		}
		if m.mouseHook != 0 {
			procUnhookWindowsHookEx.Call(m.mouseHook)
		}
		procPostThreadMessageW.Call(uintptr(m.threadID), wmQuit, 0, 0)
		<-m.stopped
	})
}

func lowLevelKeyboardProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode == hcAction && activeManager != nil {
		data := (*kbdllhookstruct)(unsafe.Pointer(lParam))
		if data.DwExtraInfo != InjectSentinel {
			pressed := wParam == wmKeyDown || wParam == wmSysKeyDown
			swallow := activeManager.handler.OnKey(KeyEvent{
				VkCode:   data.VkCode,
				ScanCode: data.ScanCode,
				Pressed:  pressed,
			})
			if swallow {
				return 1
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func lowLevelMouseProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode == hcAction && activeManager != nil {
		data := (*msllhookstruct)(unsafe.Pointer(lParam))
		if data.DwExtraInfo != InjectSentinel {
			swallow := false
			for _, ev := range translateMouseMessage(wParam, data) {
				if activeManager.handler.OnMouse(ev) {
					swallow = true
				}
			}
			if swallow {
				return 1
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// translateMouseMessage returns the sequence of MouseEvents a single Win32
// mouse message represents. A wheel tick has no OS-level release message of
// its own, so it is reported as a synthetic down-then-up pair rather than a
// single event, matching how every button transition is already reported.
func translateMouseMessage(wParam uintptr, data *msllhookstruct) []MouseEvent {
	base := MouseEvent{X: data.Pt.X, Y: data.Pt.Y}
	switch wParam {
	case wmLButtonDown, wmLButtonUp:
		base.VkCode, base.Pressed = 0x01, wParam == wmLButtonDown
	case wmRButtonDown, wmRButtonUp:
		base.VkCode, base.Pressed = 0x02, wParam == wmRButtonDown
	case wmMButtonDown, wmMButtonUp:
		base.VkCode, base.Pressed = 0x04, wParam == wmMButtonDown
	case wmXButtonDown, wmXButtonUp:
		button := uint32(data.MouseData >> 16)
		if button == 1 {
			base.VkCode = 0x05
		} else {
			base.VkCode = 0x06
		}
		base.Pressed = wParam == wmXButtonDown
	case wmMouseWheel:
		delta := int16(data.MouseData >> 16)
		base.VkCode = 0x1000 // vk.WheelUp
		if delta < 0 {
			base.VkCode = 0x1001 // vk.WheelDown
		}
		down, up := base, base
		down.Pressed, up.Pressed = true, false
		return []MouseEvent{down, up}
	default:
		return nil
	}
	return []MouseEvent{base}
}
