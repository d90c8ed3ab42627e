package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kube-rca/tasks/internal/config"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const fileMaxAge = 7 * 24 * time.Hour

func levelFromString(l string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Init - 콘솔 로거를 만들고, FilePattern이 있으면 일 단위 로그 파일에도 같이 기록한다
func Init(cfg config.LogConfig) (*zap.Logger, error) {
	lvl := levelFromString(cfg.Level)

	var consoleCore zapcore.Core
	if cfg.Dev {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		consoleCore = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stderr), lvl)
	} else {
		consoleCore = zapcore.NewCore(zapcore.NewJSONEncoder(productionEncoderConfig()), zapcore.AddSync(os.Stdout), lvl)
	}

	cores := []zapcore.Core{consoleCore}
	if cfg.FilePattern != "" {
		fileCore, err := newFileCore(cfg.FilePattern, lvl)
		if err != nil {
			return nil, err
		}
		cores = append(cores, fileCore)
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Dev {
		opts = append(opts, zap.Development())
	}
	return zap.New(zapcore.NewTee(cores...), opts...), nil
}

func productionEncoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return encoderCfg
}

// newFileCore writes JSON lines to a file rotated at midnight, e.g.
// logs/app_%Y%m%d.log.
func newFileCore(pattern string, lvl zapcore.Level) (zapcore.Core, error) {
	writer, err := rotatelogs.New(pattern,
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(fileMaxAge),
	)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", pattern, err)
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(productionEncoderConfig()), zapcore.AddSync(writer), lvl), nil
}
