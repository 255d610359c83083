package pool

import (
	"fmt"

	"github.com/alitto/pond/v2"
)

// fixed runs at most capacity tasks at a time on a pond pool. Up to capacity
// more tasks wait in its queue; Go blocks while the queue is full.
type fixed struct {
	p pond.Pool
}

// NewFixed returns a pool running at most capacity tasks concurrently and
// queueing at most capacity more. A zero capacity is raised to 1.
func NewFixed(capacity uint) Pool {
	if capacity == 0 {
		capacity = 1
	}
	return &fixed{p: pond.NewPool(int(capacity), pond.WithQueueSize(int(capacity)))}
}

func (f *fixed) Go(task func()) error {
	if err := f.p.Go(task); err != nil {
		return fmt.Errorf("%w: %w", ErrStopped, err)
	}
	return nil
}

func (f *fixed) Wait() {
	f.p.StopAndWait()
}
