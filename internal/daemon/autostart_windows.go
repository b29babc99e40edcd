//go:build windows

package daemon

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

const (
	autostartKey  = `SOFTWARE\Microsoft\Windows\CurrentVersion\Run`
	autostartName = "JigsawWM"
)

// AutostartEnabled reports whether JigsawWM is registered to launch at
// login, grounded on
// lovlygod-Rewinder/internal/services/autostart_windows.go.
func AutostartEnabled() bool {
	key, err := registry.OpenKey(registry.CURRENT_USER, autostartKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer key.Close()
	_, _, err = key.GetStringValue(autostartName)
	return err == nil
}

// SetAutostart enables or disables launch-at-login.
func SetAutostart(enabled bool) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, autostartKey, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()
	if !enabled {
		return key.DeleteValue(autostartName)
	}
	exePath, err := os.Executable()
	if err != nil {
		return err
	}
	return key.SetStringValue(autostartName, filepath.Clean(exePath))
}

// AutostartTask returns a ready-to-register Task toggling autostart,
// surfaced in the tray per the daemon's usual Job contract.
func AutostartTask() Task {
	return Task{
		Label: "Toggle start at login",
		Run: func() {
			SetAutostart(!AutostartEnabled())
		},
	}
}
