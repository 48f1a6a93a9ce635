package collector

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the collector package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the collector package's logger.
// Collectors created afterwards use it unless Options.Logger is set.
// It is not synchronized; call it during startup, before any collector
// runs.
func SetLogger(l *zap.Logger) {
	logger = l
}
