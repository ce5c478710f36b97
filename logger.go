package hull

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// newNopLogger returns a logger that discards everything. Its level is set
// below Error so that the formatting work of debug calls is skipped.
func newNopLogger() *logrus.Logger {
	return &logrus.Logger{
		Out:       io.Discard,
		Formatter: new(logrus.TextFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.PanicLevel,
	}
}

var loggerPtr atomic.Pointer[logrus.Entry]

func init() {
	SetLogger(nil)
}

// SetLogger configures the logger used by the package. By default, nothing is
// logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - Debug: per cross-section segment counts, division curves, node splits
//   - Info: one summary per compiled surface and per flattening
//   - Warn: recoverable degeneracies, such as circles that fail to intersect
//     during trilateration or cutting planes that miss the surface
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(logrus.NewEntry(l).WithField("pkg", "hull"))
}

// Logger returns the current logger.
func Logger() *logrus.Entry {
	return loggerPtr.Load()
}
