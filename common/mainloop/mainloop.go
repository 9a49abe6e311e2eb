// Package mainloop provides the single control goroutine that owns
// triage state outside of the terminal UI.
package mainloop

import (
	"context"
	"errors"
	"sync"
	"vincit.fi/photo-triage/common/logger"
)

var ErrStopped = errors.New("main loop stopped")

type Loop struct {
	queue      chan func()
	stopOnce   sync.Once
	stopped    chan struct{}
	finishOnce sync.Once
	finished   chan struct{}
}

func New(queueSize int) *Loop {
	return &Loop{
		queue:    make(chan func(), queueSize),
		stopped:  make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Dispatch queues fn to run on the goroutine executing Run.
// Functions dispatched after Stop or after Run has returned are dropped.
func (s *Loop) Dispatch(fn func()) {
	select {
	case <-s.stopped:
		logger.Warn.Print("Main loop stopped, dropping dispatched function")
	case <-s.finished:
		logger.Warn.Print("Main loop finished, dropping dispatched function")
	case s.queue <- fn:
	}
}

// Call runs fn on the loop and waits until it has returned. It fails with
// ErrStopped when the loop stops before fn gets to run.
func (s *Loop) Call(fn func()) error {
	done := make(chan struct{})
	s.Dispatch(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-s.stopped:
	case <-s.finished:
	}
	// fn may have completed right before the loop stopped.
	select {
	case <-done:
		return nil
	default:
		return ErrStopped
	}
}

// Run executes dispatched functions in order until Stop is called or
// ctx is done.
func (s *Loop) Run(ctx context.Context) error {
	logger.Debug.Print("Main loop started")
	defer logger.Debug.Print("Main loop finished")
	defer s.finishOnce.Do(func() {
		close(s.finished)
	})
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopped:
			return nil
		case fn := <-s.queue:
			fn()
		}
	}
}

// Finished is closed once Run has returned.
func (s *Loop) Finished() <-chan struct{} {
	return s.finished
}

func (s *Loop) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopped)
	})
}

// Immediate runs dispatched functions synchronously on the caller.
type Immediate struct{}

func (s Immediate) Dispatch(fn func()) {
	fn()
}
