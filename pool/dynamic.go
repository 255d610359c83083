package pool

import "sync"

// dynamic starts one goroutine per task.
type dynamic struct {
	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDynamic returns a pool without a concurrency limit.
func NewDynamic() Pool {
	return &dynamic{}
}

func (p *dynamic) Go(task func()) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrStopped
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		task()
	}()
	return nil
}

func (p *dynamic) Wait() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.wg.Wait()
}
