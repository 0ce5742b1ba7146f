package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	logger.Debug("hello", "x", 1)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "hello" {
		t.Errorf("Expected msg 'hello', got %v", rec["msg"])
	}
	if ts, _ := rec["time"].(string); !strings.HasSuffix(ts, "Z") {
		t.Errorf("Expected UTC RFC3339 time, got %v", rec["time"])
	}
}

func TestTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "trace", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	Trace(logger, "tick")

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("Expected TRACE level in output, got %q", buf.String())
	}
}

func TestTraceFilteredAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Options{Level: "info", Output: &buf})

	Trace(logger, "tick")
	logger.Debug("debug")

	if buf.Len() != 0 {
		t.Errorf("Expected no output below info, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"TRACE", LevelTrace},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("Expected error for unknown format")
	}
}
