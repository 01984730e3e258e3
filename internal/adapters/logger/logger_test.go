package logger_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"go.trai.ch/incr/internal/adapters/logger"
)

// newBufferedLogger returns a logger writing into the returned buffer.
func newBufferedLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	lg, ok := logger.New().(*logger.Logger)
	if !ok {
		t.Fatal("New() did not return *logger.Logger")
	}
	var buf bytes.Buffer
	lg.SetOutput(&buf)
	return lg, &buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.Info("cache sweep finished")

	out := buf.String()
	if !strings.Contains(out, "cache sweep finished") {
		t.Errorf("expected output to contain message, got: %s", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("expected output to contain INFO, got: %s", out)
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.Warn("sweep skipped")

	out := buf.String()
	if !strings.Contains(out, "sweep skipped") {
		t.Errorf("expected output to contain message, got: %s", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("expected output to contain WARN, got: %s", out)
	}
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.Error(os.ErrPermission)

	out := buf.String()
	if !strings.Contains(out, "permission denied") {
		t.Errorf("expected output to contain error text, got: %s", out)
	}
	if !strings.Contains(out, "ERROR") {
		t.Errorf("expected output to contain ERROR, got: %s", out)
	}
}
