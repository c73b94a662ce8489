package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewWorkerPool(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{4, 4},
		{1, 1},
		{0, runtime.GOMAXPROCS(0)},
		{-5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		pool := NewWorkerPool(tt.in)
		if got := pool.Workers(); got != tt.want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", tt.in, got, tt.want)
		}
		if !pool.IsRunning() {
			t.Errorf("NewWorkerPool(%d) not running", tt.in)
		}
		pool.Close()
	}
}

func TestRunExecutesEveryTaskOnce(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const n = 257
	var hits [n]atomic.Int32
	tasks := make([]func(), n)
	for i := range tasks {
		tasks[i] = func() { hits[i].Add(1) }
	}

	pool.Run(tasks)

	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Fatalf("task %d ran %d times, want 1", i, got)
		}
	}
}

func TestRunWaitsForCompletion(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	out := make([]int, 64)
	tasks := make([]func(), len(out))
	for i := range tasks {
		tasks[i] = func() { out[i] = i * i }
	}
	pool.Run(tasks)

	// Reading without synchronization is safe only if Run joined every task.
	for i, v := range out {
		if v != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()
	pool.Run(nil)
	pool.Run([]func(){})
}

func TestRunAfterCloseRunsInline(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	if pool.IsRunning() {
		t.Fatal("pool still running after Close")
	}

	var count int
	pool.Run([]func(){func() { count++ }, func() { count++ }})
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestCloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Close()
	pool.Close()
}

func TestRunConcurrentCallers(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var total atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tasks := make([]func(), 50)
			for i := range tasks {
				tasks[i] = func() { total.Add(1) }
			}
			pool.Run(tasks)
		}()
	}
	wg.Wait()

	if got := total.Load(); got != 400 {
		t.Fatalf("total = %d, want 400", got)
	}
}

func TestCloseRacesWithRun(t *testing.T) {
	pool := NewWorkerPool(2)

	var total atomic.Int64
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tasks := make([]func(), 20)
			for i := range tasks {
				tasks[i] = func() { total.Add(1) }
			}
			pool.Run(tasks)
		}()
	}
	pool.Close()
	wg.Wait()

	if got := total.Load(); got != 80 {
		t.Fatalf("total = %d, want 80", got)
	}
}
