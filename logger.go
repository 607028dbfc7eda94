package weakref

import (
	"sync"

	"go.uber.org/zap"
)

var (
	loggerMu sync.RWMutex
	logger   *zap.Logger
)

// Logger returns the package logger. It is a no-op logger by default.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger overrides the package logger. Contract-violation diagnostics
// are logged through it right before the panic is raised.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}
