// Package logger provides a lightweight, centralized logging facility
// with configurable verbosity levels.
//
// The API stays printf-style (Errorf, Warnf, Infof, Debugf, Tracef) so call
// sites carry no formatting logic; output is delegated to a shared logrus
// logger writing text lines to stderr.
//
// Verbosity levels (in increasing order):
//
//	Error < Info < Debug < Trace
//
// Example usage:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("pricing scenario")
//	logger.Debugf("spot=%f vol=%f", spot, vol)
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level represents a logging verbosity level.
// Higher values mean more verbose logging.
type Level int

const (
	Error Level = iota // Error logs only failures.
	Info               // Info logs high-level progress and warnings.
	Debug              // Debug logs detailed diagnostic information.
	Trace              // Trace logs per-iteration solver details.
)

var (
	current = Info
	log     = newLogrus()
)

func newLogrus() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetVerbosity sets the global logging verbosity. Values below Error are
// treated as Error and values above Trace as Trace.
func SetVerbosity(v int) {
	switch {
	case v < int(Error):
		current = Error
	case v > int(Trace):
		current = Trace
	default:
		current = Level(v)
	}
	log.SetLevel(current.logrusLevel())
}

// SetOutput redirects log output, e.g. to a buffer in tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Enabled reports whether messages at l would be written. Use it to skip
// building expensive arguments.
func Enabled(l Level) bool {
	return current >= l
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Error:
		return logrus.ErrorLevel
	case Debug:
		return logrus.DebugLevel
	case Trace:
		return logrus.TraceLevel
	}
	return logrus.InfoLevel
}

// Errorf logs a failure that requires attention.
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}

// Warnf logs a recoverable problem. Shown from Info verbosity upwards.
func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

// Infof logs major lifecycle events.
func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

// Debugf logs diagnostic output useful during development.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// Tracef logs very detailed execution traces.
// Use this sparingly due to high volume.
func Tracef(format string, args ...any) {
	log.Tracef(format, args...)
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields map[string]any) *logrus.Entry {
	return log.WithFields(logrus.Fields(fields))
}
