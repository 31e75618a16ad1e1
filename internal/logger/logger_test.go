package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func Test_toZapLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" INFO ", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"Error", zapcore.ErrorLevel},
		{"verbose", defaultZapLevel},
		{"", defaultZapLevel},
	}
	for _, c := range cases {
		if got := toZapLevel(c.in); got != c.want {
			t.Fatalf("toZapLevel(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestNew_Level(t *testing.T) {
	l := New(WarnLevel, "device")
	if l.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}
	if !l.Desugar().Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn must be enabled")
	}
}

func TestGet_ReturnsSameInstance(t *testing.T) {
	a := Get(DebugLevel)
	b := Get(ErrorLevel)
	if a != b {
		t.Fatalf("Get must return the process-wide logger")
	}
}
