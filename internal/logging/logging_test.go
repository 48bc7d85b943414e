package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	l.SetOutput(&buf)

	l.Debug("hidden %d", 1)
	l.Info("offset %d", -6)
	l.Warn("leap year %d", 2020)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message emitted at info level: %q", out)
	}
	for _, want := range []string{"offset -6", "leap year 2020", "INF", "WRN"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	buf.Reset()
	l.SetLevel(LevelDebug)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("debug message missing after SetLevel: %q", buf.String())
	}
}

func TestTimed(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	if err := l.Timed("Sun series", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Sun series took") {
		t.Errorf("Timed output = %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing %s", "here")
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not enable any level")
	}
	if LevelWarn.String() != "WARN" || Level(9).String() != "UNKNOWN" {
		t.Error("unexpected Level strings")
	}
}
