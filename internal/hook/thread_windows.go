//go:build windows

package hook

import (
	"runtime"

	"golang.org/x/sys/windows"
)

var (
	kernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procGetCurrentThreadID = kernel32.NewProc("GetCurrentThreadId")
)

// windowsLockOSThread pins the calling goroutine to its OS thread for the
// lifetime of the hook, matching the teacher's single-purpose event-pump
// goroutine in win_event_hook.go.
func windowsLockOSThread() {
	runtime.LockOSThread()
}

func getCurrentThreadID() uint32 {
	ret, _, _ := procGetCurrentThreadID.Call()
	return uint32(ret)
}
