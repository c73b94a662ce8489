package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/bitfx/internal/logging"
)

// progress is a frame counter on stderr. It is a no-op unless the writer
// is a terminal.
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(w io.Writer, total int, description string) *progress {
	if !logging.IsTerminal(w) {
		return &progress{}
	}
	limit := int64(total)
	if total <= 0 {
		limit = -1
	}
	bar := progressbar.NewOptions64(limit,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
	return &progress{bar: bar}
}

func (p *progress) add() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
