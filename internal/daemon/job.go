package daemon

// Job is anything the daemon tracks and can surface in the tray menu,
// grounded on original_source/src/jigsawwm/app/job.py's Job/Service/Task.
type Job interface {
	Name() string
}

// Service is a long-running Job that can be toggled on/off from the tray,
// e.g. the jmk engine or the wm controller itself.
type Service interface {
	Job
	Start() error
	Stop()
	Running() bool
}

// Task is a one-shot Job launched on demand from the tray (or at startup
// when Autorun is set), e.g. "open config folder".
type Task struct {
	Label   string
	Autorun bool
	Run     func()
}

// Name implements Job.
func (t Task) Name() string { return t.Label }
