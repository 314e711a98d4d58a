package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func InitLogger() {
	InitLoggerWithLevel("info")
}

// InitLoggerWithLevel sets up both loggers. Unknown levels fall back to info.
func InitLoggerWithLevel(level string) {
	InfoLogger = newLogger(os.Stdout)
	ErrorLogger = newLogger(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		ErrorLogger.Warnf("unknown log level %q, using info", level)
	}
	InfoLogger.SetLevel(lvl)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}
