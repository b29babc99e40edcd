// Package daemon ties the hook, jmk and wm packages together into a single
// cooperative event loop with a tray icon, grounded on
// original_source/src/jigsawwm/worker.py (ThreadWorker) and
// app/job.py/app/daemon.py.
package daemon

import (
	"time"
)

// Scheduler is a single-consumer-goroutine work queue: every closure
// posted to it runs serially on the scheduler's own goroutine, so callers
// never need their own locks around shared daemon state, grounded on
// worker.py's `ThreadWorker` (SimpleQueue-backed single consumer).
type Scheduler struct {
	queue   chan func()
	ticker  *time.Ticker
	stopCh  chan struct{}
	onPanic func(any)
}

// NewScheduler creates a Scheduler with the given queue depth.
func NewScheduler(queueDepth int, onPanic func(any)) *Scheduler {
	return &Scheduler{
		queue:   make(chan func(), queueDepth),
		stopCh:  make(chan struct{}),
		onPanic: onPanic,
	}
}

// Post enqueues fn to run on the scheduler goroutine. It never blocks
// callers on hook threads for long: the queue is buffered and Post itself
// does no work beyond the channel send.
func (s *Scheduler) Post(fn func()) {
	select {
	case s.queue <- fn:
	case <-s.stopCh:
	}
}

// After schedules fn to run once, no sooner than d from now.
func (s *Scheduler) After(d time.Duration, fn func()) {
	timer := time.AfterFunc(d, func() { s.Post(fn) })
	go func() {
		<-s.stopCh
		timer.Stop()
	}()
}

// Every runs fn repeatedly on the scheduler goroutine at interval d until
// Stop is called, matching worker.py's `periodic_call`.
func (s *Scheduler) Every(d time.Duration, fn func()) {
	go func() {
		t := time.NewTicker(d)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.Post(fn)
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Run drains the queue until Stop is called. Must be invoked from the
// goroutine that will be treated as "the" scheduler thread.
func (s *Scheduler) Run() {
	for {
		select {
		case fn := <-s.queue:
			s.tryCall(fn)
		case <-s.stopCh:
			s.drain()
			return
		}
	}
}

func (s *Scheduler) drain() {
	for {
		select {
		case fn := <-s.queue:
			s.tryCall(fn)
		default:
			return
		}
	}
}

// tryCall invokes fn with panic recovery, grounded on worker.py's
// `try_call`: a callback's bug must never take down the whole daemon or
// unwind into an OS hook callback.
func (s *Scheduler) tryCall(fn func()) {
	defer func() {
		if r := recover(); r != nil && s.onPanic != nil {
			s.onPanic(r)
		}
	}()
	fn()
}

// Stop requests the run loop to exit after draining pending work.
func (s *Scheduler) Stop() {
	close(s.stopCh)
}
