package video

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gogpu/bitfx"
)

// FrameReader splits an rgb24 byte stream into frames of a fixed size.
// It implements bitfx.FrameStream.
type FrameReader struct {
	r      io.Reader
	width  int
	height int
	fps    float64
	index  int
	err    error
}

// NewFrameReader creates a reader for width x height rgb24 frames. Frame
// timestamps are index/fps.
func NewFrameReader(r io.Reader, width, height int, fps float64) *FrameReader {
	return &FrameReader{r: r, width: width, height: height, fps: fps}
}

// Next returns the next frame, or io.EOF when the stream ends on a frame
// boundary. A stream ending inside a frame yields ErrShortFrame. After any
// error, every later call returns the same error.
func (fr *FrameReader) Next() (bitfx.TimedFrame, error) {
	if fr.err != nil {
		return bitfx.TimedFrame{}, fr.err
	}
	if fr.width <= 0 || fr.height <= 0 {
		fr.err = fmt.Errorf("%w: %dx%d", ErrFrameSize, fr.width, fr.height)
		return bitfx.TimedFrame{}, fr.err
	}

	pix := make([]uint8, fr.width*fr.height*3)
	n, err := io.ReadFull(fr.r, pix)
	switch {
	case errors.Is(err, io.EOF):
		fr.err = io.EOF
		return bitfx.TimedFrame{}, fr.err
	case errors.Is(err, io.ErrUnexpectedEOF):
		fr.err = fmt.Errorf("%w: frame %d has %d of %d bytes", ErrShortFrame, fr.index, n, len(pix))
		return bitfx.TimedFrame{}, fr.err
	case err != nil:
		fr.err = fmt.Errorf("video: read frame %d: %w", fr.index, err)
		return bitfx.TimedFrame{}, fr.err
	}

	frame, err := bitfx.FrameFromRGB(fr.width, fr.height, pix)
	if err != nil {
		fr.err = err
		return bitfx.TimedFrame{}, err
	}

	tf := bitfx.TimedFrame{
		Frame:     frame,
		Timestamp: FrameTime(fr.index, fr.fps),
		Index:     fr.index,
	}
	fr.index++
	return tf, nil
}

// Frames returns the number of frames read so far.
func (fr *FrameReader) Frames() int {
	return fr.index
}

// FrameWriter writes frames as raw rgb24 bytes. It implements
// bitfx.FrameSink and enforces a fixed frame size and strictly increasing
// timestamps.
type FrameWriter struct {
	w       io.Writer
	width   int
	height  int
	last    time.Duration
	written int
}

// NewFrameWriter creates a writer for width x height frames.
func NewFrameWriter(w io.Writer, width, height int) *FrameWriter {
	return &FrameWriter{w: w, width: width, height: height}
}

// WriteFrame implements bitfx.FrameSink.
func (fw *FrameWriter) WriteFrame(frame *bitfx.Frame, ts time.Duration) error {
	if frame == nil {
		return bitfx.ErrNilFrame
	}
	if frame.Width() != fw.width || frame.Height() != fw.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize,
			frame.Width(), frame.Height(), fw.width, fw.height)
	}
	if fw.written > 0 && ts <= fw.last {
		return fmt.Errorf("%w: %v after %v", ErrTimestampOrder, ts, fw.last)
	}

	if _, err := fw.w.Write(frame.Pix()); err != nil {
		return fmt.Errorf("video: write frame %d: %w", fw.written, err)
	}
	fw.last = ts
	fw.written++
	return nil
}

// Frames returns the number of frames written so far.
func (fw *FrameWriter) Frames() int {
	return fw.written
}
