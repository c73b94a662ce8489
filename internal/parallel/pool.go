package parallel

import (
	"runtime"
	"sync"
)

// WorkerPool runs batches of tasks on a fixed number of goroutines.
//
// WorkerPool is safe for concurrent use. A task must not submit work to
// the pool it runs on.
type WorkerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup

	// mu orders Run submissions against Close.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool starts a pool with the given number of workers.
// Zero or negative selects GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Run executes every task and returns once all of them have finished.
// On a closed pool the tasks run on the calling goroutine, so each task
// still runs exactly once.
func (p *WorkerPool) Run(tasks []func()) {
	if len(tasks) == 0 {
		return
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		for _, task := range tasks {
			task()
		}
		return
	}

	var done sync.WaitGroup
	done.Add(len(tasks))
	for _, task := range tasks {
		p.tasks <- func() {
			defer done.Done()
			task()
		}
	}
	p.mu.RUnlock()

	done.Wait()
}

// Close stops the workers after the queued tasks finish.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still dispatches to its workers.
func (p *WorkerPool) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}
