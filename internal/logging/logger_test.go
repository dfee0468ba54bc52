package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for level, want := range cases {
		if got := parseLevel(level); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", level, got, want)
		}
	}
}

func TestNewReturnsNonNilLogger(t *testing.T) {
	l := New("debug")
	if l == nil {
		t.Fatal("New returned nil")
	}
	l.Info("smoke test")
}

func TestNopDiscardsOutput(t *testing.T) {
	l := Nop()
	if l == nil {
		t.Fatal("Nop returned nil")
	}
	l.Error("should not panic or print")
}
