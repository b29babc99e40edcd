package daemon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsPostedWork(t *testing.T) {
	s := NewScheduler(8, nil)
	go s.Run()
	defer s.Stop()

	done := make(chan struct{})
	s.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("posted work never ran")
	}
}

func TestSchedulerRecoversPanicsWithoutCrashing(t *testing.T) {
	var panicked any
	gotPanic := make(chan struct{})
	s := NewScheduler(8, func(r any) {
		panicked = r
		close(gotPanic)
	})
	go s.Run()
	defer s.Stop()

	s.Post(func() { panic("boom") })

	select {
	case <-gotPanic:
	case <-time.After(time.Second):
		t.Fatal("panic handler never invoked")
	}
	require.NotNil(t, panicked)
	assert.Equal(t, "boom", panicked)

	// the scheduler goroutine must still be alive after the panic.
	done := make(chan struct{})
	s.Post(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not survive the panic")
	}
}

func TestActionRegistryInvokesAndLabels(t *testing.T) {
	r := NewActionRegistry()
	called := false
	id := r.Register("test-action", func() { called = true })

	assert.Equal(t, "test-action", r.Label(id))
	r.Invoke(id)
	assert.True(t, called)

	r.Unregister(id)
	assert.Equal(t, "", r.Label(id))
}
