// Package logging provides the thread-safe logger handle shared across
// sockets, proxies, and services: application code depends on the Logger
// interface, never on a concrete backend.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal structured-logging contract used throughout this
// module. A *logrus.Logger and a *logrus.Entry both satisfy it.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) *logrus.Entry
}

// NewStdout returns a Logger that writes human-readable lines to stdout at
// Info level, the default "UMPS::Logging::StdOut" equivalent.
func NewStdout() Logger {
	var l = logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// NewDiscard returns a Logger that drops everything; useful as a default
// when the caller passes no logger and tests that don't want noisy output.
func NewDiscard() Logger {
	var l = logrus.New()
	l.SetOutput(nil)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// WithName returns a logger that attaches a "component" field, following
// logrus's WithField("id", ...) convention.
func WithName(l Logger, name string) Logger {
	return l.WithField("component", name)
}
