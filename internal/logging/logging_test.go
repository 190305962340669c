package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "ringside", "warn")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud", "round", 2)

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "round=2") {
		t.Errorf("warn line missing: %q", out)
	}
	if !strings.Contains(out, "ringside") {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "", "chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ringside.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := OpenFile(path, "test", "info")
		if err != nil {
			t.Fatalf("OpenFile() error: %v", err)
		}
		logger.Info(msg)
		if err := closer.Close(); err != nil {
			t.Fatalf("Close() error: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("log file missing lines: %q", data)
	}
}
