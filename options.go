package bitfx

import "time"

// PipelineOption configures a Pipeline during creation.
//
// Example:
//
//	p, err := bitfx.NewPipeline(metrics, face, rng,
//	    bitfx.WithWorkers(4),
//	    bitfx.WithObserver(func(i int, ts time.Duration) { bar.Add(1) }),
//	)
type PipelineOption func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	workers  int
	observer func(index int, ts time.Duration)
}

// defaultPipelineOptions returns the default pipeline options.
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		workers: 0, // GOMAXPROCS
	}
}

// WithWorkers sets the number of goroutines used for darkening.
// Zero or negative selects GOMAXPROCS.
func WithWorkers(n int) PipelineOption {
	return func(o *pipelineOptions) {
		o.workers = n
	}
}

// WithObserver registers a callback invoked after each frame is handed to
// the sink. It runs on the pipeline goroutine and must not block.
func WithObserver(fn func(index int, ts time.Duration)) PipelineOption {
	return func(o *pipelineOptions) {
		o.observer = fn
	}
}
