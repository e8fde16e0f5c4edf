package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"metaharvest/internal/config"
)

// New builds the process logger from config. Logs go to stderr so command
// output on stdout stays clean.
func New(cfg config.Config) (*zap.Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoding := "json"
	if cfg.LogEnvironment == "development" {
		encoding = "console"
	}

	zcfg := zap.Config{
		Level:            levelFor(cfg.LogLevel),
		Development:      cfg.LogEnvironment == "development",
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	log, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("service", "metaharvest")), nil
}

// OrNop returns log, or a no-op logger when log is nil.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func levelFor(level string) zap.AtomicLevel {
	switch level {
	case "debug":
		return zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
}
