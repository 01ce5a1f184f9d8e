package main

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  zapcore.Level
	}{
		{
			name:  "unset defaults to debug",
			value: "",
			want:  zapcore.DebugLevel,
		},
		{
			name:  "explicit level",
			value: "warn",
			want:  zapcore.WarnLevel,
		},
		{
			name:  "unparsable falls back to debug",
			value: "shouting",
			want:  zapcore.DebugLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)
			if got := logLevel().Level(); got != tt.want {
				t.Errorf("logLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
