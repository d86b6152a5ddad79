package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zapcore.Level
		wantOK bool
	}{
		{in: "debug", want: zapcore.DebugLevel, wantOK: true},
		{in: "warn", want: zapcore.WarnLevel, wantOK: true},
		{in: "error", want: zapcore.ErrorLevel, wantOK: true},
		{in: "verbose", want: zapcore.InfoLevel, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseLevel(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNopLoggerWith(t *testing.T) {
	log := Nop().With(String("component", "test"), Float64("score", 0.5), Bool("ok", true))
	log.Info("discarded", Int("n", 1))
	if err := log.Sync(); err != nil {
		t.Errorf("Sync() on nop logger returned %v", err)
	}
}
