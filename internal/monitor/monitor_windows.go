//go:build windows

// Package monitor enumerates physical displays and exposes the per-monitor
// work area used to compute tiling areas, grounded on
// original_source/src/jigsawwm/w32/monitor.py.
package monitor

import (
	"math"
	"sort"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"JigsawWM/internal/window"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")

	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procMonitorFromWindow   = user32.NewProc("MonitorFromWindow")
	procMonitorFromPoint    = user32.NewProc("MonitorFromPoint")
	procGetCursorPos        = user32.NewProc("GetCursorPos")
	procSetCursorPos        = user32.NewProc("SetCursorPos")
	procCreateDCW           = gdi32.NewProc("CreateDCW")
	procDeleteDC            = gdi32.NewProc("DeleteDC")
	procGetDeviceCaps       = gdi32.NewProc("GetDeviceCaps")
)

const (
	monitorDefaultToNearest = 2
	horzsize                = 4
	vertsize                = 6
	ccheviceName            = 32
)

type point struct{ X, Y int32 }

type monitorInfoEx struct {
	CbSize    uint32
	RcMonitor window.Rect
	RcWork    window.Rect
	DwFlags   uint32
	SzDevice  [ccheviceName]uint16
}

// ID is a stable monitor identity (its GDI device name, e.g. `\\.\DISPLAY1`),
// used instead of back-pointers per Design Note §9.
type ID string

// Monitor is one physical display.
type Monitor struct {
	ID      ID
	Rect    window.Rect
	Work    window.Rect
	Primary bool
}

// ScreenInfo carries the physical size computed from GDI device
// capabilities, used to pick DPI-appropriate themes.
type ScreenInfo struct {
	WidthMM, HeightMM int32
	Inches            float64
}

// handle is the underlying HMONITOR, kept private: callers identify
// monitors by ID, not by the OS handle, per Design Note §9.
type handle uintptr

// Enumerate returns every active display, primary first.
func Enumerate() []Monitor {
	var handles []handle
	cb := windows.NewCallback(func(hMonitor uintptr, hdc uintptr, rect uintptr, lparam uintptr) uintptr {
		handles = append(handles, handle(hMonitor))
		return 1
	})
	procEnumDisplayMonitors.Call(0, 0, cb, 0)

	monitors := make([]Monitor, 0, len(handles))
	for _, h := range handles {
		m, ok := infoFor(h)
		if ok {
			monitors = append(monitors, m)
		}
	}
	sort.SliceStable(monitors, func(i, j int) bool {
		return monitors[i].Primary && !monitors[j].Primary
	})
	return monitors
}

func infoFor(h handle) (Monitor, bool) {
	var info monitorInfoEx
	info.CbSize = uint32(unsafe.Sizeof(info))
	ret, _, _ := procGetMonitorInfoW.Call(uintptr(h), uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return Monitor{}, false
	}
	const monitorinfofPrimary = 0x1
	return Monitor{
		ID:      ID(syscall.UTF16ToString(info.SzDevice[:])),
		Rect:    info.RcMonitor,
		Work:    info.RcWork,
		Primary: info.DwFlags&monitorinfofPrimary != 0,
	}, true
}

// FromWindow returns the monitor a window is mostly on.
func FromWindow(w window.Window) (Monitor, bool) {
	ret, _, _ := procMonitorFromWindow.Call(uintptr(w.Handle), monitorDefaultToNearest)
	if ret == 0 {
		return Monitor{}, false
	}
	return infoFor(handle(ret))
}

// FromCursor returns the monitor the mouse cursor currently sits on.
func FromCursor() (Monitor, bool) {
	var p point
	procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	ret, _, _ := procMonitorFromPoint.Call(uintptr(p.X), uintptr(p.Y), monitorDefaultToNearest)
	if ret == 0 {
		return Monitor{}, false
	}
	return infoFor(handle(ret))
}

// CursorPos returns the current cursor position, used to map a drag-drop
// onto a tiling area (spec §4.7).
func CursorPos() (x, y int32) {
	var p point
	procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	return p.X, p.Y
}

// WarpCursor moves the mouse cursor to (x, y), used after window-switch
// commands to center the cursor on the newly-activated window (spec §4.7).
func WarpCursor(x, y int32) {
	procSetCursorPos.Call(uintptr(x), uintptr(y))
}

// PhysicalSize computes the monitor's physical size in millimeters and
// diagonal inches via GDI device capabilities, grounded on
// original_source/src/jigsawwm/w32/monitor.py's get_screen_info
// (sqrt(width_mm**2 + height_mm**2) / 25.4).
func (m Monitor) PhysicalSize() ScreenInfo {
	name, _ := syscall.UTF16PtrFromString(string(m.ID))
	dc, _, _ := procCreateDCW.Call(uintptr(unsafe.Pointer(name)), uintptr(unsafe.Pointer(name)), 0, 0)
	if dc == 0 {
		return ScreenInfo{}
	}
	defer procDeleteDC.Call(dc)
	w, _, _ := procGetDeviceCaps.Call(dc, horzsize)
	h, _, _ := procGetDeviceCaps.Call(dc, vertsize)
	wmm, hmm := int32(w), int32(h)
	inches := math.Sqrt(float64(wmm)*float64(wmm)+float64(hmm)*float64(hmm)) / 25.4
	return ScreenInfo{WidthMM: wmm, HeightMM: hmm, Inches: inches}
}
