package headlessterm

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Logger receives diagnostic messages the engine wants surfaced to an
// operator: a malformed or unsupported escape sequence, a recoverable
// decode failure, anything worth seeing without interrupting processing.
// It is a narrow provider interface, the same shape as the other
// Provider types in providers.go, so callers can plug in whatever
// structured logger their host process already uses.
type Logger interface {
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

// NoopLogger discards everything. The default when no Logger is installed.
type NoopLogger struct{}

func (NoopLogger) Warnf(format string, args ...any)  {}
func (NoopLogger) Debugf(format string, args ...any) {}

// LogrusLogger adapts a *logrus.Logger to Logger.
type LogrusLogger struct {
	Entry *logrus.Entry
}

// NewLogrusLogger wraps l, tagging every entry with a "component=headlessterm" field.
func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{Entry: l.WithField("component", "headlessterm")}
}

func (l *LogrusLogger) Warnf(format string, args ...any)  { l.Entry.Warnf(format, args...) }
func (l *LogrusLogger) Debugf(format string, args ...any) { l.Entry.Debugf(format, args...) }

// processLogger is the module-level default installed with SetLogger. A
// Terminal without its own Logger (see WithLogger) falls back to this one,
// so a host process can wire logging once for every terminal it creates
// instead of threading a Logger through each constructor call.
var processLogger atomic.Pointer[Logger]

// SetLogger installs the process-wide default Logger used by terminals
// that were not given one of their own via WithLogger. Safe to call
// concurrently with terminal construction and operation.
func SetLogger(l Logger) {
	processLogger.Store(&l)
}

func defaultLogger() Logger {
	if p := processLogger.Load(); p != nil {
		return *p
	}
	return NoopLogger{}
}

// WithLogger installs the Logger used for diagnostic messages on this
// terminal specifically, overriding the process-wide default.
func WithLogger(l Logger) Option {
	return func(t *Terminal) {
		t.logger = l
	}
}

// logf reports a diagnostic message through the terminal's installed
// Logger, falling back to the process-wide default from SetLogger.
func (t *Terminal) logf(format string, args ...any) {
	logger := t.logger
	if logger == nil {
		logger = defaultLogger()
	}
	logger.Warnf(format, args...)
}
