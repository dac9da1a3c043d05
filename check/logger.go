package check

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the checker's logger, a no-op logger unless SetLogger was
// called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger replaces the checker's logger. Passing nil restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
