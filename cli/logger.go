package cli

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger conversions report their decisions to.
// Silent (no-op) unless SetLogger installed one.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs the conversion logger. Call it before the first
// conversion; the commands do this when --verbose is set.
func SetLogger(l *zap.Logger) {
	logger = l
}
