package bitfx

import (
	"log/slog"
	"sync/atomic"
)

// silent discards every record; Enabled is false, so no attrs are built.
var silent = slog.New(slog.DiscardHandler)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger sets the logger used by bitfx, text and the internal video
// helpers. The default is silent; nil restores it. SetLogger is safe for
// concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: cell metrics, grid size per frame, ffmpeg start
//   - [slog.LevelInfo]: run finished
//
// A Pipeline captures the logger when it is created.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set with SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}
