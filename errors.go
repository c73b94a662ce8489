package bitfx

import (
	"errors"
	"strconv"
)

// Sentinel errors for the bitfx package.
var (
	// ErrDegenerateMetrics is returned when font metrics describe a cell
	// with zero or negative width or height.
	ErrDegenerateMetrics = errors.New("bitfx: degenerate font metrics")

	// ErrNilFrame is returned when a nil frame is passed to the pipeline.
	ErrNilFrame = errors.New("bitfx: nil frame")

	// ErrNilDrawer is returned when a pipeline is built without a glyph drawer.
	ErrNilDrawer = errors.New("bitfx: nil glyph drawer")
)

// Stage names used in StageError.
const (
	StageFont      = "font"
	StageLoad      = "load"
	StageDecode    = "decode"
	StageComposite = "composite"
	StageEncode    = "encode"
	StageSave      = "save"
)

// StageError identifies which stage of a run failed.
type StageError struct {
	Stage string
	Frame int // frame index, or -1 when not tied to a frame
	Err   error
}

func (e *StageError) Error() string {
	if e.Frame >= 0 {
		return e.Stage + " (frame " + strconv.Itoa(e.Frame) + "): " + e.Err.Error()
	}
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with a stage name. It returns nil for a nil err.
func NewStageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Frame: -1, Err: err}
}
