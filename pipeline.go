package bitfx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gogpu/bitfx/internal/parallel"
)

// Pipeline applies the overlay effect to frames, one at a time.
//
// Per frame it sizes the glyph grid from the frame dimensions, draws the
// grid bits from the shared BitSource, builds the darkened and blurred
// canvas, and composites the glyphs onto it. A still image is the
// single-frame case of the same procedure.
//
// A Pipeline is not safe for concurrent use: the BitSource state threads
// through frames in call order.
type Pipeline struct {
	metrics     FontMetrics
	drawer      GlyphDrawer
	src         BitSource
	pool        *parallel.WorkerPool
	transformer *Transformer
	observer    func(index int, ts time.Duration)
	logger      *slog.Logger
}

// NewPipeline creates a pipeline for the given cell metrics, glyph drawer
// and bit source. Degenerate metrics are a configuration error.
func NewPipeline(m FontMetrics, drawer GlyphDrawer, src BitSource, opts ...PipelineOption) (*Pipeline, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if drawer == nil {
		return nil, ErrNilDrawer
	}
	if src == nil {
		return nil, errors.New("bitfx: nil bit source")
	}

	o := defaultPipelineOptions()
	for _, opt := range opts {
		opt(&o)
	}

	pool := parallel.NewWorkerPool(o.workers)
	p := &Pipeline{
		metrics:     m,
		drawer:      drawer,
		src:         src,
		pool:        pool,
		transformer: NewTransformer(pool),
		observer:    o.observer,
		logger:      Logger(),
	}

	p.logger.Debug("bitfx: pipeline created",
		"char_width", m.CharWidth,
		"char_height", m.CharHeight,
		"baseline_offset", m.BaselineOffset,
		"workers", pool.Workers(),
	)
	return p, nil
}

// Metrics returns the cell metrics of the pipeline.
func (p *Pipeline) Metrics() FontMetrics {
	return p.metrics
}

// Close stops the darkening workers. Close is safe to call multiple times.
func (p *Pipeline) Close() {
	p.pool.Close()
}

// ProcessFrame applies the effect to one frame and returns a new canvas.
// The grid size is recomputed from the frame dimensions on every call, so
// consecutive frames may differ in size.
func (p *Pipeline) ProcessFrame(frame *Frame) (*Frame, error) {
	if frame == nil {
		return nil, ErrNilFrame
	}

	cols, rows := GridSize(frame.Width(), frame.Height(), p.metrics)
	grid := GenerateGrid(cols, rows, p.src)

	p.logger.Debug("bitfx: frame",
		"width", frame.Width(),
		"height", frame.Height(),
		"cols", cols,
		"rows", rows,
	)

	canvas, err := p.transformer.Transform(frame)
	if err != nil {
		return nil, err
	}
	return Composite(canvas, grid, frame, p.metrics, p.drawer)
}

// ProcessImage applies the effect to a single still image.
func (p *Pipeline) ProcessImage(frame *Frame) (*Frame, error) {
	out, err := p.ProcessFrame(frame)
	if err != nil {
		return nil, &StageError{Stage: StageComposite, Frame: 0, Err: err}
	}
	return out, nil
}

// Run pulls every frame from stream, processes it, and writes the result
// to sink with the frame's original timestamp, preserving decode order.
//
// The first error from any stage ends the run; frames already written to
// sink stay written. Cancellation of ctx is checked between frames. Run
// returns the number of frames written.
func (p *Pipeline) Run(ctx context.Context, stream FrameStream, sink FrameSink) (int, error) {
	written := 0
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		tf, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return written, &StageError{Stage: StageDecode, Frame: written, Err: err}
		}

		canvas, err := p.ProcessFrame(tf.Frame)
		if err != nil {
			return written, &StageError{Stage: StageComposite, Frame: written, Err: err}
		}

		if err := sink.WriteFrame(canvas, tf.Timestamp); err != nil {
			return written, &StageError{Stage: StageEncode, Frame: written, Err: err}
		}

		if p.observer != nil {
			p.observer(written, tf.Timestamp)
		}
		written++
	}

	p.logger.Info("bitfx: run finished", "frames", written)
	return written, nil
}
