// Package pool provides the worker pools that execute item tasks for inorder
// operations. A pool lives for exactly one operation: tasks are scheduled with
// Go and Wait drains it for good.
package pool

import "errors"

// ErrStopped is returned by Go once Wait has been called.
var ErrStopped = errors.New("pool: stopped")

// Pool runs tasks concurrently.
type Pool interface {
	// Go schedules task for execution. It does not wait for the task to start,
	// but a bounded pool blocks while its queue is full.
	Go(task func()) error

	// Wait stops accepting tasks and blocks until every scheduled task returned.
	Wait()
}
