//go:build windows

package window

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	dwmapi   = windows.NewLazySystemDLL("dwmapi.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetWindowRect        = user32.NewProc("GetWindowRect")
	procSetWindowPos         = user32.NewProc("SetWindowPos")
	procGetWindowPlacement   = user32.NewProc("GetWindowPlacement")
	procShowWindow           = user32.NewProc("ShowWindow")
	procSetForegroundWindow  = user32.NewProc("SetForegroundWindow")
	procIsIconic             = user32.NewProc("IsIconic")
	procIsWindowVisible      = user32.NewProc("IsWindowVisible")
	procIsWindow             = user32.NewProc("IsWindow")
	procGetClassNameW        = user32.NewProc("GetClassNameW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLength  = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadPID   = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowLongPtrW    = user32.NewProc("GetWindowLongPtrW")
	procDwmGetWindowAttr     = dwmapi.NewProc("DwmGetWindowAttribute")

	procOpenProcess             = kernel32.NewProc("OpenProcess")
	procCloseHandle             = kernel32.NewProc("CloseHandle")
	procQueryFullProcessImageNm = kernel32.NewProc("QueryFullProcessImageNameW")
)

const processQueryLimitedInformation = 0x1000

const (
	swMinimize       = 6
	swShowNoActivate = 4
	swShowNA         = 8

	swpNoZOrder     = 0x0004
	swpNoActivate   = 0x0010
	swpFrameChanged = 0x0020

	gwlExStyle    = -20
	wsExToolwindow = 0x00000080

	dwmwaExtendedFrameBounds = 9
)

// Handle identifies a native window. It is the stable identity spec.md §3
// names: never compared by rect or title, only by handle value.
type Handle uintptr

// Window is a live handle to a top-level OS window plus the bound
// compensation (the gap between GetWindowRect and the DWM-visible frame)
// needed to place it precisely, grounded on
// original_source/src/jigsawwm/w32/window.py and
// lovlygod-Rewinder/internal/state/capture_engine_windows.go's proc-table
// idiom.
type Window struct {
	Handle Handle
}

// FromHandle wraps a raw HWND.
func FromHandle(h uintptr) Window { return Window{Handle: Handle(h)} }

// Exists reports whether the underlying HWND is still a valid window.
func (w Window) Exists() bool {
	ret, _, _ := procIsWindow.Call(uintptr(w.Handle))
	return ret != 0
}

// IsIconic reports whether the window is currently minimized.
func (w Window) IsIconic() bool {
	ret, _, _ := procIsIconic.Call(uintptr(w.Handle))
	return ret != 0
}

// IsVisible reports the raw OS visibility bit (distinct from tiling
// visibility, which also considers the workspace's alter-rect hide trick).
func (w Window) IsVisible() bool {
	ret, _, _ := procIsWindowVisible.Call(uintptr(w.Handle))
	return ret != 0
}

// ClassName returns the window class, used by window rules to match
// applications that change title frequently.
func (w Window) ClassName() string {
	buf := make([]uint16, 256)
	n, _, _ := procGetClassNameW.Call(
		uintptr(w.Handle), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)),
	)
	return syscall.UTF16ToString(buf[:n])
}

// Title returns the window's current caption text.
func (w Window) Title() string {
	length, _, _ := procGetWindowTextLength.Call(uintptr(w.Handle))
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	n, _, _ := procGetWindowTextW.Call(
		uintptr(w.Handle), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)),
	)
	return syscall.UTF16ToString(buf[:n])
}

// ProcessID returns the owning process id.
func (w Window) ProcessID() uint32 {
	var pid uint32
	procGetWindowThreadPID.Call(uintptr(w.Handle), uintptr(unsafe.Pointer(&pid)))
	return pid
}

// ProcessImagePath returns the full path of the executable owning this
// window, or "" if it cannot be determined (access denied, process gone),
// grounded on
// lovlygod-Rewinder/internal/state/capture_engine_windows.go's
// QueryFullProcessImageNameW usage.
func (w Window) ProcessImagePath() string {
	pid := w.ProcessID()
	if pid == 0 {
		return ""
	}
	h, _, _ := procOpenProcess.Call(processQueryLimitedInformation, 0, uintptr(pid))
	if h == 0 {
		return ""
	}
	defer procCloseHandle.Call(h)
	buf := make([]uint16, 512)
	size := uint32(len(buf))
	ret, _, _ := procQueryFullProcessImageNm.Call(
		h, 0, uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&size)),
	)
	if ret == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:size])
}

// IsToolWindow reports whether WS_EX_TOOLWINDOW is set, one of the signals
// used to decide manageability (spec §4.4 edge cases).
func (w Window) IsToolWindow() bool {
	style, _, _ := procGetWindowLongPtrW.Call(uintptr(w.Handle), uintptr(int32(gwlExStyle)))
	return style&wsExToolwindow != 0
}

// Rect returns the raw GetWindowRect geometry (includes the invisible
// resize border on modern Windows, before bound compensation).
func (w Window) Rect() Rect {
	var r Rect
	procGetWindowRect.Call(uintptr(w.Handle), uintptr(unsafe.Pointer(&r)))
	return r
}

// extendedFrameBounds returns the DWM-reported visually-meaningful bounds,
// used to compute the invisible-border compensation applied in SetRect.
func (w Window) extendedFrameBounds() (Rect, bool) {
	var r Rect
	ret, _, _ := procDwmGetWindowAttr.Call(
		uintptr(w.Handle), dwmwaExtendedFrameBounds,
		uintptr(unsafe.Pointer(&r)), unsafe.Sizeof(r),
	)
	return r, ret == 0
}

// SetRect moves/resizes the window so that its DWM-visible frame matches
// target exactly, compensating for the invisible resize border DWM adds
// around GetWindowRect's geometry (spec §4.4, original_source's
// w32/window.py bound-compensation logic).
func (w Window) SetRect(target Rect) {
	raw := w.Rect()
	visible, ok := w.extendedFrameBounds()
	var left, top, right, bottom int32 = target.Left, target.Top, target.Right, target.Bottom
	if ok {
		left -= visible.Left - raw.Left
		top -= visible.Top - raw.Top
		right += raw.Right - visible.Right
		bottom += raw.Bottom - visible.Bottom
	}
	procSetWindowPos.Call(
		uintptr(w.Handle), 0,
		uintptr(int32(left)), uintptr(int32(top)),
		uintptr(int32(right-left)), uintptr(int32(bottom-top)),
		swpNoZOrder|swpNoActivate|swpFrameChanged,
	)
}

// Activate brings the window to the foreground.
func (w Window) Activate() {
	procSetForegroundWindow.Call(uintptr(w.Handle))
}

// Minimize minimizes the window.
func (w Window) Minimize() {
	procShowWindow.Call(uintptr(w.Handle), swMinimize)
}

// Restore un-minimizes the window without activating it.
func (w Window) Restore() {
	procShowWindow.Call(uintptr(w.Handle), swShowNoActivate)
}

// Show makes the window visible without changing activation, used when a
// workspace toggles on (spec's alter-rect mechanism keeps windows mapped,
// so this is rarely needed, but matches the teacher's ShowWindow idiom).
func (w Window) Show() {
	procShowWindow.Call(uintptr(w.Handle), swShowNA)
}
