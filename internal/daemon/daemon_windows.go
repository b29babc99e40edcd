//go:build windows

package daemon

import (
	"fmt"
	"sync"
	"time"

	"JigsawWM/internal/hook"
	"JigsawWM/internal/jmk"
	"JigsawWM/internal/wm"
)

// Daemon is the process entry point: it owns the hook manager, the jmk
// core, the wm event watcher/manager, the scheduler and the tray, and
// drives startup/shutdown ordering, grounded on
// original_source/src/jigsawwm/app/daemon.py's Daemon class.
type Daemon struct {
	Log *Logger

	scheduler *Scheduler
	actions   *ActionRegistry
	hookMgr   *hook.Manager
	watcher   *wm.EventWatcher
	core      *jmk.Core
	manager   *wm.Manager
	tray      *Tray

	jobs   []Job
	jobsMu sync.Mutex
}

// Config wires the pieces a caller's main package must supply: the jmk
// core is caller-configured with layers/triggers before New runs, and the
// wm manager is caller-configured with a Config (rules) (spec.md §6:
// "configuration is code").
type Config struct {
	Core      *jmk.Core
	WmManager *wm.Manager
	Tooltip   string
	IconPNG   []byte
}

// New builds a Daemon from caller-supplied, already-configured components.
// It fails fast on a duplicate hotkey chord, per spec.md §7; window rules
// (bad regexes, duplicate static index) are validated earlier, by wm.New.
func New(cfg Config) (*Daemon, error) {
	if err := cfg.Core.Triggers().Validate(); err != nil {
		return nil, fmt.Errorf("daemon: %w", err)
	}
	d := &Daemon{
		Log:     Default("daemon"),
		actions: NewActionRegistry(),
		core:    cfg.Core,
		manager: cfg.WmManager,
	}
	d.scheduler = NewScheduler(256, func(r any) {
		d.Log.Error("recovered panic in scheduled callback: %v", r)
	})
	d.hookMgr = hook.New(d)
	d.watcher = wm.NewEventWatcher(cfg.WmManager)
	d.tray = &Tray{
		Tooltip: cfg.Tooltip,
		IconPNG: cfg.IconPNG,
		Items:   d.trayItems,
		OnQuit:  d.Stop,
	}
	return d, nil
}

// Register adds a Job to be surfaced in the tray menu and, if it is a Task
// with Autorun set, launched at Start, per app/job.py/app/daemon.py.
func (d *Daemon) Register(j Job) {
	d.jobsMu.Lock()
	defer d.jobsMu.Unlock()
	d.jobs = append(d.jobs, j)
}

// Actions exposes the opaque action-identifier registry for callers that
// want diagnostic tooling (tray labels, log lines) to name a callback
// without holding the closure.
func (d *Daemon) Actions() *ActionRegistry { return d.actions }

// Start launches the hook, the wm event watcher, the scheduler's tick loop
// and the tray, then blocks until Stop is called (tray.Run blocks on the
// OS message loop, per getlantern/systray's model).
func (d *Daemon) Start() error {
	d.Log.Info("daemon starting")
	go func() {
		if err := d.hookMgr.Run(); err != nil {
			d.Log.Fatal("hook installation failed: %v", err)
		}
	}()
	go d.watcher.Run()
	go d.scheduler.Run()
	d.scheduler.Every(10*time.Millisecond, d.core.Tick)

	d.jobsMu.Lock()
	tasks := make([]Task, 0, len(d.jobs))
	for _, j := range d.jobs {
		if t, ok := j.(Task); ok && t.Autorun {
			tasks = append(tasks, t)
		}
	}
	d.jobsMu.Unlock()
	for _, t := range tasks {
		d.Log.Info("autorun %s", t.Name())
		d.scheduler.Post(t.Run)
	}

	d.tray.Run() // blocks until Quit
	return nil
}

// Stop shuts down every subsystem in reverse-dependency order.
func (d *Daemon) Stop() {
	d.Log.Info("daemon stopping")
	d.jobsMu.Lock()
	for _, j := range d.jobs {
		if s, ok := j.(Service); ok && s.Running() {
			s.Stop()
		}
	}
	d.jobsMu.Unlock()
	d.watcher.Stop()
	d.hookMgr.Stop()
	d.scheduler.Stop()
}

func (d *Daemon) trayItems() []TrayItem {
	d.jobsMu.Lock()
	defer d.jobsMu.Unlock()
	items := make([]TrayItem, 0, len(d.jobs))
	for _, j := range d.jobs {
		switch v := j.(type) {
		case Task:
			task := v
			items = append(items, TrayItem{
				Label:     task.Label,
				Enabled:   true,
				OnTrigger: func() { d.scheduler.Post(task.Run) },
			})
		case Service:
			svc := v
			items = append(items, TrayItem{
				Label:     fmt.Sprintf("%s (running)", svc.Name()),
				Enabled:   true,
				Checkable: true,
				Checked:   svc.Running(),
				OnTrigger: func() {
					d.scheduler.Post(func() {
						if svc.Running() {
							svc.Stop()
						} else {
							svc.Start()
						}
						d.tray.SetChecked(fmt.Sprintf("%s (running)", svc.Name()), svc.Running())
					})
				},
			})
		}
	}
	return items
}

// OnKey implements hook.Handler. jmk.Core.Handle must run synchronously on
// the hook thread to return swallow/pass-through before the OS hook proc
// returns, so it is called directly here rather than posted to the
// scheduler, grounded on w32/hook.py calling jmk's core synchronously from
// the hook callback.
func (d *Daemon) OnKey(e hook.KeyEvent) bool {
	return d.core.Handle(jmk.Event{
		Vk:      vkFromCode(e.VkCode),
		Pressed: e.Pressed,
		Time:    nowMillis(),
	})
}

// OnMouse implements hook.Handler.
func (d *Daemon) OnMouse(e hook.MouseEvent) bool {
	return d.core.Handle(jmk.Event{
		Vk:      vkFromCode(e.VkCode),
		Pressed: e.Pressed,
		Time:    nowMillis(),
	})
}

var startTime = time.Now()

// nowMillis returns milliseconds elapsed since process start on Go's
// monotonic clock.
func nowMillis() int64 {
	return time.Since(startTime).Milliseconds()
}
