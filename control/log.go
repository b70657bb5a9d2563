package control

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var logger atomic.Pointer[logrus.Logger]

func init() {
	logger.Store(logrus.StandardLogger())
}

// SetLogger replaces the logger used by this package. A nil logger restores
// the logrus standard logger.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger.Store(l)
}

// Logger returns the logger used by this package. The audio package and
// the command line tool log through it as well.
func Logger() *logrus.Logger {
	return logger.Load()
}
