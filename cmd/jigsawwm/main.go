//go:build windows

// Command jigsawwm is a sample JigsawWM configuration: it plays the role
// original_source/jigsawwm/example.py plays for the Python implementation
// - a concrete, runnable configuration, not a scripting host. Go has no
// runtime script-eval equivalent to importing a .py/.pyw file, so a user
// who wants a different layout, theme set or hotkey table edits (or
// forks) this file and rebuilds, rather than pointing the binary at a
// separate config file.
package main

import (
	"time"

	"JigsawWM/internal/daemon"
	"JigsawWM/internal/hook"
	"JigsawWM/internal/jmk"
	"JigsawWM/internal/vk"
	"JigsawWM/internal/wm"
)

func main() {
	start := time.Now()
	core := jmk.New(hook.SendKey, func() int64 { return time.Since(start).Milliseconds() })
	base := jmk.NewLayer("base").
		// CapsLock doubles as Escape on a tap and Left Control on a hold,
		// the canonical JMK dual-role binding (spec §8 S1/S2).
		Bind(vk.Capital, jmk.Hold(jmk.TapHoldSpec{
			Tap:        jmk.Send(vk.Escape),
			Hold:       jmk.Send(vk.LControl),
			TermMS:     200,
			QuickTapMS: 150,
		}))
	core.RegisterLayers(base)

	manager, err := wm.New(wm.Config{
		IgnoredExeNames: []string{
			"7zFM.exe",
			"explorer.exe",
			"ApplicationFrameHost.exe",
		},
		Rules: []wm.Rule{
			{ExeRegex: `(?i)cmd\.exe$`, TitleRegex: `(?i)nvim`, StaticIndex: 0},
		},
	}, 4)
	if err != nil {
		panic(err)
	}

	triggers := core.Triggers()
	triggers.Register(vk.NewChord(vk.LWin, vk.KeyJ), manager.NextWindow)
	triggers.Register(vk.NewChord(vk.LWin, vk.KeyK), manager.PrevWindow)
	triggers.Register(vk.NewChord(vk.LWin, vk.Shift, vk.KeyJ), manager.SwapNext)
	triggers.Register(vk.NewChord(vk.LWin, vk.Shift, vk.KeyK), manager.SwapPrev)
	triggers.Register(vk.NewChord(vk.LWin, vk.Return), manager.SetMaster)
	triggers.Register(vk.NewChord(vk.LWin, vk.Control, vk.KeyJ), manager.RollNext)
	triggers.Register(vk.NewChord(vk.LWin, vk.Control, vk.KeyK), manager.RollPrev)
	triggers.Register(vk.NewChord(vk.LWin, vk.KeyT), manager.ToggleTilable)
	triggers.Register(vk.NewChord(vk.LWin, vk.KeyM), manager.ToggleMonoTheme)
	triggers.Register(vk.NewChord(vk.LWin, vk.KeyR), manager.ArrangeAllMonitors)
	triggers.Register(vk.NewChord(vk.LWin, vk.Space), manager.NextTheme)
	triggers.Register(vk.NewChord(vk.LWin, vk.Shift, vk.Space), manager.PrevTheme)
	triggers.Register(vk.NewChord(vk.LWin, vk.KeyH), manager.PrevMonitor)
	triggers.Register(vk.NewChord(vk.LWin, vk.KeyL), manager.NextMonitor)
	triggers.Register(vk.NewChord(vk.LWin, vk.Shift, vk.KeyH), manager.MoveActiveWindowToPrevMonitor)
	triggers.Register(vk.NewChord(vk.LWin, vk.Shift, vk.KeyL), manager.MoveActiveWindowToNextMonitor)
	triggers.Register(vk.NewChord(vk.LWin, vk.Key1), func() { manager.SwitchToWorkspace(0) })
	triggers.Register(vk.NewChord(vk.LWin, vk.Key2), func() { manager.SwitchToWorkspace(1) })
	triggers.Register(vk.NewChord(vk.LWin, vk.Key3), func() { manager.SwitchToWorkspace(2) })
	triggers.Register(vk.NewChord(vk.LWin, vk.Key4), func() { manager.SwitchToWorkspace(3) })
	triggers.Register(vk.NewChord(vk.LWin, vk.Shift, vk.Key1), func() { manager.MoveActiveWindowToWorkspace(0) })
	triggers.Register(vk.NewChord(vk.LWin, vk.Shift, vk.Key2), func() { manager.MoveActiveWindowToWorkspace(1) })
	triggers.Register(vk.NewChord(vk.LWin, vk.Shift, vk.Key3), func() { manager.MoveActiveWindowToWorkspace(2) })
	triggers.Register(vk.NewChord(vk.LWin, vk.Shift, vk.Key4), func() { manager.MoveActiveWindowToWorkspace(3) })

	d, err := daemon.New(daemon.Config{
		Core:      core,
		WmManager: manager,
		Tooltip:   "JigsawWM",
	})
	if err != nil {
		panic(err)
	}
	d.Register(daemon.Task{
		Label:   "Arrange all monitors",
		Autorun: true,
		Run:     manager.ArrangeAllMonitors,
	})
	d.Register(daemon.AutostartTask())

	if err := d.Start(); err != nil {
		panic(err)
	}
}

