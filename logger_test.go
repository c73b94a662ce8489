package bitfx

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(t.Context(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)
	if Logger() != custom {
		t.Fatal("Logger() did not return the logger passed to SetLogger")
	}

	p := newTestPipeline(t, &recordingDrawer{})
	if _, err := p.ProcessFrame(NewFrame(36, 30)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"bitfx: pipeline created", "char_width=12", "cols=3", "rows=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
		}()
		go func() {
			defer wg.Done()
			_ = Logger()
		}()
	}
	wg.Wait()
}
