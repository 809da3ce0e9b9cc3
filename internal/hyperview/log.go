package hyperview

import (
	"github.com/edaniels/golog"
	"go.uber.org/zap"
)

var logger golog.Logger = zap.NewNop().Sugar()

// SetLogger installs the package logger. A nil logger silences output.
func SetLogger(l golog.Logger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logger = l
}

// Logger returns the package logger.
func Logger() golog.Logger { return logger }

func DebugLog(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
