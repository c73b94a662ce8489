package bitfx

import (
	"io"
	"time"
)

// TimedFrame is a decoded frame with its presentation timestamp.
type TimedFrame struct {
	Frame     *Frame
	Timestamp time.Duration
	Index     int
}

// FrameStream is a lazy, finite, non-restartable sequence of frames in
// decode order.
//
// Next returns io.EOF after the last frame. After any error, every later
// call returns an error as well; consumption stops on the first one.
type FrameStream interface {
	Next() (TimedFrame, error)
}

// FrameSink receives processed frames in the order they are submitted.
type FrameSink interface {
	WriteFrame(frame *Frame, ts time.Duration) error
}

// SliceStream replays an in-memory list of frames.
type SliceStream struct {
	frames []TimedFrame
	pos    int
}

// NewSliceStream creates a stream over frames. Index fields are assigned
// from slice order.
func NewSliceStream(frames ...TimedFrame) *SliceStream {
	out := make([]TimedFrame, len(frames))
	for i, f := range frames {
		f.Index = i
		out[i] = f
	}
	return &SliceStream{frames: out}
}

// Next implements FrameStream.
func (s *SliceStream) Next() (TimedFrame, error) {
	if s.pos >= len(s.frames) {
		return TimedFrame{}, io.EOF
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}

// FrameCollector is a FrameSink that keeps every frame in memory.
type FrameCollector struct {
	Frames []TimedFrame
}

// WriteFrame implements FrameSink.
func (c *FrameCollector) WriteFrame(frame *Frame, ts time.Duration) error {
	c.Frames = append(c.Frames, TimedFrame{Frame: frame, Timestamp: ts, Index: len(c.Frames)})
	return nil
}
