package cli

import (
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger builds the logger for one CLI invocation. Debug mode selects a
// human-readable text format with everything enabled; the default is InfoLevel
// JSON. Logs go to stderr so command output on stdout stays clean.
func newLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
