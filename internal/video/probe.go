package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Info describes the first video stream of a media file.
type Info struct {
	Width  int
	Height int

	// Rate is the frame rate as ffprobe reports it, e.g. "30000/1001".
	Rate string

	// FPS is Rate as a number of frames per second.
	FPS float64

	// Frames is the container's frame count, or 0 when unknown.
	Frames int

	// Duration is the stream duration, or 0 when unknown.
	Duration time.Duration
}

// FrameTime returns the presentation timestamp of the frame at index.
func (i Info) FrameTime(index int) time.Duration {
	return FrameTime(index, i.FPS)
}

// FrameTime returns index/fps as a duration. A non-positive fps gives 0.
func FrameTime(index int, fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(math.Round(float64(index) * float64(time.Second) / fps))
}

// probeResult mirrors the subset of ffprobe JSON that Probe reads.
type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NBFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

// Probe executes ffprobe against path and returns the first video stream.
func Probe(ctx context.Context, binary, path string) (Info, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Info{}, errors.New("video: probe: empty path")
	}

	// #nosec G204 -- binary and path are provided by the user
	cmd := exec.CommandContext(ctx, binary, ProbeArgs(path)...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Info{}, fmt.Errorf("video: probe: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Info{}, fmt.Errorf("video: probe: %w", err)
	}
	return ParseProbe(output)
}

// ProbeArgs returns the ffprobe arguments used by Probe.
func ProbeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-hide_banner",
		"-show_format",
		"-show_streams",
		"-of", "json",
		"--", path,
	}
}

// ParseProbe decodes ffprobe JSON output into Info.
func ParseProbe(data []byte) (Info, error) {
	var result probeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return Info{}, fmt.Errorf("video: probe parse: %w", err)
	}

	for _, s := range result.Streams {
		if !strings.EqualFold(s.CodecType, "video") {
			continue
		}
		if s.Width <= 0 || s.Height <= 0 {
			return Info{}, fmt.Errorf("video: invalid stream size %dx%d", s.Width, s.Height)
		}

		rate := s.RFrameRate
		fps, err := ParseRate(rate)
		if err != nil {
			rate = s.AvgFrameRate
			if fps, err = ParseRate(rate); err != nil {
				return Info{}, err
			}
		} else if avg, avgErr := ParseRate(s.AvgFrameRate); avgErr == nil && !sameRate(fps, avg) {
			return Info{}, fmt.Errorf("%w: r_frame_rate %s, avg_frame_rate %s",
				ErrVariableFrameRate, s.RFrameRate, s.AvgFrameRate)
		}

		info := Info{
			Width:  s.Width,
			Height: s.Height,
			Rate:   rate,
			FPS:    fps,
			Frames: parseInt(s.NBFrames),
		}
		seconds := parseFloat(s.Duration)
		if seconds <= 0 {
			seconds = parseFloat(result.Format.Duration)
		}
		if seconds > 0 {
			info.Duration = time.Duration(math.Round(seconds * float64(time.Second)))
		}
		return info, nil
	}
	return Info{}, ErrNoVideoStream
}

// rateTolerance is the relative gap between the base and average frame
// rates still treated as constant. Containers round the average, so
// 30000/1001 often averages to 2997/100.
const rateTolerance = 0.005

func sameRate(a, b float64) bool {
	return math.Abs(a-b) <= rateTolerance*math.Max(a, b)
}

// ParseRate parses an ffprobe rate such as "25/1", "30000/1001" or "24".
func ParseRate(rate string) (float64, error) {
	rate = strings.TrimSpace(rate)
	num, den, found := strings.Cut(rate, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRate, rate)
	}
	d := 1.0
	if found {
		if d, err = strconv.ParseFloat(den, 64); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidRate, rate)
		}
	}
	if n <= 0 || d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRate, rate)
	}
	return n / d, nil
}

func parseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
