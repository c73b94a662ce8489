package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("hidden")
	logger.Info("frame", "index", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", lines[0], err)
	}
	if rec["msg"] != "frame" || rec["index"] != float64(3) {
		t.Errorf("record = %v", rec)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("metrics", "char_width", 12)
	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "char_width=12") {
		t.Errorf("console output = %q", out)
	}
	if !strings.Contains(out, "time=20") {
		t.Errorf("non-terminal writer should keep full timestamps: %q", out)
	}
}

func TestShortTime(t *testing.T) {
	ts := time.Date(2024, 5, 6, 13, 4, 5, 0, time.UTC)
	got := shortTime(nil, slog.Time(slog.TimeKey, ts))
	if got.Value.String() != "13:04:05" {
		t.Errorf("shortTime() = %q, want 13:04:05", got.Value.String())
	}

	other := slog.Int("frames", 3)
	if got := shortTime(nil, other); !got.Equal(other) {
		t.Errorf("shortTime() changed unrelated attr: %v", got)
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("New(xml) expected error")
	}
}

func TestIsTerminalNonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as terminal")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("nop logger should be disabled")
	}
}
