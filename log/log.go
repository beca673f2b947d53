// Package log provides logrus loggers for audiostream components.
package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv enables debug level for all loggers when set to a true value.
const DebugEnv = "AUDIOSTREAM_DEBUG"

var debug bool

// Logger is a minimal interface for audiostream loggers.
type Logger interface {
	Debug(...any)
	Info(...any)
	Warn(...any)
}

func init() {
	debug = parseDebug(os.Getenv(DebugEnv))
}

func parseDebug(v string) bool {
	d, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return d
}

// GetLogger returns a new logger instance.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Component returns a logger entry with component field set.
func Component(name string) *logrus.Entry {
	return GetLogger().WithField("component", name)
}
