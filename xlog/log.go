// Package xlog is the process wide logger. It is silent until SetLogger or
// Init installs a zap logger.
package xlog

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var std atomic.Pointer[zap.SugaredLogger]

func init() {
	std.Store(zap.NewNop().Sugar())
}

// SetLogger installs l; nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	std.Store(l.Sugar())
}

// Init installs a rotating file logger and returns its close func.
func Init(cfg FileConfig) func() error {
	l, closeFn := NewZapLogger(cfg)
	SetLogger(l)
	return closeFn
}

func Logger() *zap.SugaredLogger {
	return std.Load()
}

func Debugf(format string, v ...interface{}) {
	std.Load().Debugf(format, v...)
}

func Infof(format string, v ...interface{}) {
	std.Load().Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	std.Load().Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	std.Load().Errorf(format, v...)
}

// Warnw logs with structured key/value pairs.
func Warnw(msg string, keysAndValues ...interface{}) {
	std.Load().Warnw(msg, keysAndValues...)
}

func Sync() error {
	return std.Load().Sync()
}
