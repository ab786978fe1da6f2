package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"verbose", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	Init("info", "json")
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden %d", 1)
	Info("loaded %d customers", 100)
	Warn("slow")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	var e struct {
		TS    string `json:"ts"`
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if e.Level != "INFO" || e.Msg != "loaded 100 customers" || e.TS == "" {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestTextOutput(t *testing.T) {
	Init("debug", "text")
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("cache %s", "invalidated")
	out := buf.String()
	if !strings.Contains(out, "[DEBUG] cache invalidated") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("text format should carry the caller's file: %q", out)
	}
}

func TestNoopBeforeInit(t *testing.T) {
	defaultLogger = nil
	Info("nothing happens")
	SetOutput(&bytes.Buffer{})
}
