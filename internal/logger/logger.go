package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process-wide JSON logger. LOG_LEVEL accepts any level
// name logrus knows ("debug", "warn", ...); anything else falls back
// to info so a typo in the environment never silences the server.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})

	lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
