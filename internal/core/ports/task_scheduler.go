package ports

import "context"

// Task is a unit of background work. It receives a context detached from the
// HTTP request that scheduled it.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// TaskScheduler runs tasks after the caller has returned. Scheduling is
// non-blocking; a full queue is reported as an error.
type TaskScheduler interface {
	Schedule(task Task) error
}
