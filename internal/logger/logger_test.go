package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kube-rca/tasks/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{in: "debug", want: zapcore.DebugLevel},
		{in: "INFO", want: zapcore.InfoLevel},
		{in: "warning", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "verbose", want: zapcore.InfoLevel},
		{in: "", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := levelFromString(tt.in); got != tt.want {
				t.Fatalf("levelFromString(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInitRespectsLevel(t *testing.T) {
	log, err := Init(config.LogConfig{Level: "warn"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn should be enabled at warn level")
	}
}

func TestInitWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "app_%Y%m%d.log")

	log, err := Init(config.LogConfig{Level: "info", FilePattern: pattern})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	log.Info("registered user")
	_ = log.Sync()

	matches, err := filepath.Glob(filepath.Join(dir, "app_*.log"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one log file, got %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "registered user") {
		t.Fatalf("log file missing entry: %s", data)
	}
}
