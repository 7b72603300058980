package worker

import "errors"

var (
	ErrPoolNotStarted     = errors.New("worker pool not started")
	ErrPoolStopped        = errors.New("worker pool stopped")
	ErrPoolAlreadyStarted = errors.New("worker pool already started")

	// ErrQueueFull is returned by Submit when the queue is at capacity. The
	// item is dropped.
	ErrQueueFull = errors.New("worker pool queue full")

	ErrNilProcessor = errors.New("processor function cannot be nil")
	ErrStopTimeout  = errors.New("timeout waiting for workers to stop")

	// ErrPanic wraps a panic recovered from the processor.
	ErrPanic = errors.New("worker processor panicked")
)
