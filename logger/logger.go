package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is re-exported so the rest of the codebase never imports zap
// directly.
type Field = zap.Field

func String(key, val string) Field { return zap.String(key, val) }

func Int(key string, val int) Field { return zap.Int(key, val) }

func Float64(key string, v float64) Field { return zap.Float64(key, v) }

func Bool(key string, val bool) Field { return zap.Bool(key, val) }

func Err(err error) Field { return zap.Error(err) }

// Logger provides the three log levels we need throughout the codebase.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

type zapLogger struct {
	z *zap.Logger
}

func (l *zapLogger) Info(msg string, fields ...Field) { l.z.Info(msg, fields...) }

func (l *zapLogger) Warn(msg string, fields ...Field) { l.z.Warn(msg, fields...) }

func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, fields...) }

// NewZapLogger creates a production-ready logger (JSON encoding, level INFO).
func NewZapLogger() (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{z: z}, nil
}

// Nop returns a logger that discards everything. Used when callers pass nil.
func Nop() Logger {
	return &zapLogger{z: zap.NewNop()}
}
