//go:build !tinygo

package hal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvVar overrides the host log level when the config leaves it empty.
const LogLevelEnvVar = "MACROPAD_LOG_LEVEL"

type hostLogger struct {
	z *zap.Logger
}

func newHostLogger(level string) (*hostLogger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "off" {
		return &hostLogger{z: zap.NewNop()}, nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "", "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		DisableCaller:    true,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &hostLogger{z: z}, nil
}

func (l *hostLogger) WriteLineString(s string) {
	l.z.Info(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.z.Info(string(b))
}

func (l *hostLogger) WriteLevel(level LogLevel, tag, msg string) {
	z := l.z.Named(tag)
	switch level {
	case LogDebug:
		z.Debug(msg)
	case LogWarn:
		z.Warn(msg)
	case LogError:
		z.Error(msg)
	default:
		z.Info(msg)
	}
}

func (l *hostLogger) sync() {
	_ = l.z.Sync()
}
