// Package logger builds the process zap logger and adapts it to the
// key/value logger interface used by the upstream client.
package logger

import (
	"github.com/eshaffer321/bank-assistant-go/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the logging level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// New builds a logger with the specified configuration
func New(development bool, level LogLevel) (*zap.Logger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.Level = zap.NewAtomicLevelAt(level.zapLevel())

	return config.Build()
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Adapter satisfies types.Logger on top of a zap SugaredLogger
type Adapter struct {
	sugar *zap.SugaredLogger
}

var _ types.Logger = (*Adapter)(nil)

// NewAdapter wraps a zap logger
func NewAdapter(log *zap.Logger) *Adapter {
	return &Adapter{sugar: log.Sugar()}
}

func (a *Adapter) Debug(msg string, keysAndValues ...interface{}) {
	a.sugar.Debugw(msg, keysAndValues...)
}

func (a *Adapter) Info(msg string, keysAndValues ...interface{}) {
	a.sugar.Infow(msg, keysAndValues...)
}

func (a *Adapter) Warn(msg string, keysAndValues ...interface{}) {
	a.sugar.Warnw(msg, keysAndValues...)
}

func (a *Adapter) Error(msg string, keysAndValues ...interface{}) {
	a.sugar.Errorw(msg, keysAndValues...)
}
