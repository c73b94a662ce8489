package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gogpu/bitfx"
)

// Encoder defaults.
const (
	DefaultCRF    = 23
	DefaultPreset = "medium"
)

// encoderWaitDelay bounds how long a canceled encoder may take to finish
// the file.
const encoderWaitDelay = 10 * time.Second

// DecoderOptions configures NewDecoder.
type DecoderOptions struct {
	// FFmpeg is the ffmpeg binary; empty means "ffmpeg" on PATH.
	FFmpeg string

	// Path is the input video.
	Path string

	// Info describes the input, usually from Probe.
	Info Info
}

// Decoder runs ffmpeg to decode a video into rgb24 frames.
// It implements bitfx.FrameStream.
type Decoder struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
	reader *FrameReader

	waitOnce sync.Once
	waitErr  error
}

// NewDecoder starts ffmpeg for opts.Path. The process is killed when ctx
// is canceled.
func NewDecoder(ctx context.Context, opts DecoderOptions) (*Decoder, error) {
	if opts.Info.Width <= 0 || opts.Info.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFrameSize, opts.Info.Width, opts.Info.Height)
	}
	if opts.Info.FPS <= 0 {
		return nil, ErrInvalidRate
	}

	// #nosec G204 -- binary and path are provided by the user
	cmd := exec.CommandContext(ctx, binaryOr(opts.FFmpeg, "ffmpeg"), DecodeArgs(opts.Path)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("video: decoder pipe: %w", err)
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("video: start decoder: %w", err)
	}

	bitfx.Logger().Debug("video: decoder started",
		"path", opts.Path,
		"width", opts.Info.Width,
		"height", opts.Info.Height,
		"rate", opts.Info.Rate,
	)

	return &Decoder{
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		reader: NewFrameReader(stdout, opts.Info.Width, opts.Info.Height, opts.Info.FPS),
	}, nil
}

// Next implements bitfx.FrameStream. At the end of the stream it waits
// for ffmpeg and reports a non-zero exit as an error instead of io.EOF.
func (d *Decoder) Next() (bitfx.TimedFrame, error) {
	tf, err := d.reader.Next()
	if errors.Is(err, io.EOF) {
		if werr := d.wait(); werr != nil {
			return bitfx.TimedFrame{}, werr
		}
	}
	return tf, err
}

// Frames returns the number of frames decoded so far.
func (d *Decoder) Frames() int {
	return d.reader.Frames()
}

// Close stops ffmpeg if it is still running and releases the pipe.
func (d *Decoder) Close() error {
	_ = d.stdout.Close()
	if d.cmd.ProcessState == nil && d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
	}
	_ = d.wait()
	return nil
}

func (d *Decoder) wait() error {
	d.waitOnce.Do(func() {
		if err := d.cmd.Wait(); err != nil {
			d.waitErr = fmt.Errorf("video: decoder: %w: %s", err, strings.TrimSpace(d.stderr.String()))
		}
	})
	return d.waitErr
}

// DecodeArgs returns the ffmpeg arguments that decode path's first video
// stream to rgb24 on stdout.
func DecodeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-map", "0:v:0",
		"-an", "-sn",
		"-fps_mode", "passthrough",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	}
}

// EncoderOptions configures NewEncoder.
type EncoderOptions struct {
	// FFmpeg is the ffmpeg binary; empty means "ffmpeg" on PATH.
	FFmpeg string

	// Path is the output video; an existing file is overwritten.
	Path string

	Width  int
	Height int

	// Rate is the output frame rate, e.g. "30000/1001".
	Rate string

	// CRF is the x264 constant rate factor; zero selects DefaultCRF.
	CRF int

	// Preset is the x264 preset; empty selects DefaultPreset.
	Preset string
}

// Encoder runs ffmpeg to encode rgb24 frames as H.264 (yuv420p).
// It implements bitfx.FrameSink.
type Encoder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *bytes.Buffer
	writer *FrameWriter

	closeOnce sync.Once
	closeErr  error
	closed    bool
}

// NewEncoder starts ffmpeg writing to opts.Path.
func NewEncoder(ctx context.Context, opts EncoderOptions) (*Encoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFrameSize, opts.Width, opts.Height)
	}
	if _, err := ParseRate(opts.Rate); err != nil {
		return nil, err
	}

	cmd, stdin, err := encoderCommand(ctx, opts)
	if err != nil {
		return nil, err
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("video: start encoder: %w", err)
	}

	bitfx.Logger().Debug("video: encoder started",
		"path", opts.Path,
		"width", opts.Width,
		"height", opts.Height,
		"rate", opts.Rate,
	)

	return &Encoder{
		cmd:    cmd,
		stdin:  stdin,
		stderr: stderr,
		writer: NewFrameWriter(stdin, opts.Width, opts.Height),
	}, nil
}

// encoderCommand prepares the ffmpeg encoder process. Canceling ctx closes
// its input instead of killing it, so ffmpeg still writes the container
// trailer for the frames it has. It is killed only if it has not exited
// encoderWaitDelay later.
func encoderCommand(ctx context.Context, opts EncoderOptions) (*exec.Cmd, io.WriteCloser, error) {
	// #nosec G204 -- binary and path are provided by the user
	cmd := exec.CommandContext(ctx, binaryOr(opts.FFmpeg, "ffmpeg"), EncodeArgs(opts)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("video: encoder pipe: %w", err)
	}
	cmd.Cancel = stdin.Close
	cmd.WaitDelay = encoderWaitDelay
	return cmd, stdin, nil
}

// WriteFrame implements bitfx.FrameSink.
func (e *Encoder) WriteFrame(frame *bitfx.Frame, ts time.Duration) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.writer.WriteFrame(frame, ts); err != nil {
		if errors.Is(err, ErrFrameSize) || errors.Is(err, ErrTimestampOrder) || errors.Is(err, bitfx.ErrNilFrame) {
			return err
		}
		// A broken pipe means ffmpeg exited; its exit status explains why.
		if cerr := e.Close(); cerr != nil {
			return cerr
		}
		return err
	}
	return nil
}

// Frames returns the number of frames written so far.
func (e *Encoder) Frames() int {
	return e.writer.Frames()
}

// Close flushes the input pipe and waits for ffmpeg to finish the file.
func (e *Encoder) Close() error {
	e.closeOnce.Do(func() {
		e.closed = true
		_ = e.stdin.Close()
		if err := e.cmd.Wait(); err != nil {
			e.closeErr = fmt.Errorf("video: encoder: %w: %s", err, strings.TrimSpace(e.stderr.String()))
		}
	})
	return e.closeErr
}

// EncodeArgs returns the ffmpeg arguments that read rgb24 frames from
// stdin and write H.264 to opts.Path. Odd dimensions are padded by one
// pixel, as yuv420p needs even sizes.
func EncodeArgs(opts EncoderOptions) []string {
	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}
	preset := strings.TrimSpace(opts.Preset)
	if preset == "" {
		preset = DefaultPreset
	}

	args := []string{
		"-v", "error",
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", strconv.Itoa(opts.Width) + "x" + strconv.Itoa(opts.Height),
		"-r", opts.Rate,
		"-i", "pipe:0",
	}
	if opts.Width%2 != 0 || opts.Height%2 != 0 {
		args = append(args, "-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2")
	}
	return append(args,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-preset", preset,
		"-crf", strconv.Itoa(crf),
		opts.Path,
	)
}

func binaryOr(binary, fallback string) string {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return fallback
	}
	return binary
}
