// Package swptlog defines the logging interface used across the coordinator.
//
// It is intentionally a thin interface rather than a direct dependency on
// zap so handlers, services and tests can swap in a no-op or stub logger
// without pulling in the production backend.
package swptlog

// Logger is the common interface for log implementations used throughout
// the coordinator.
type Logger interface {
	Info(args ...any)
	Infof(format string, args ...any)
	Infoln(args ...any)

	Error(args ...any)
	Errorf(format string, args ...any)
	Errorln(args ...any)

	Warn(args ...any)
	Warnf(format string, args ...any)
	Warnln(args ...any)

	Debug(args ...any)
	Debugf(format string, args ...any)
	Debugln(args ...any)

	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Fatalln(args ...any)

	// WithFields returns a derived logger that attaches the given
	// key/value pairs to every subsequent log line.
	WithFields(fields ...any) Logger

	Sync() error
}

// NoneLogger is a no-op Logger used as the zero-value fallback when no
// logger has been attached to a context.
type NoneLogger struct{}

func (l *NoneLogger) Info(args ...any)                 {}
func (l *NoneLogger) Infof(format string, args ...any) {}
func (l *NoneLogger) Infoln(args ...any)                {}

func (l *NoneLogger) Error(args ...any)                 {}
func (l *NoneLogger) Errorf(format string, args ...any) {}
func (l *NoneLogger) Errorln(args ...any)                {}

func (l *NoneLogger) Warn(args ...any)                 {}
func (l *NoneLogger) Warnf(format string, args ...any) {}
func (l *NoneLogger) Warnln(args ...any)                {}

func (l *NoneLogger) Debug(args ...any)                 {}
func (l *NoneLogger) Debugf(format string, args ...any) {}
func (l *NoneLogger) Debugln(args ...any)                {}

func (l *NoneLogger) Fatal(args ...any)                 {}
func (l *NoneLogger) Fatalf(format string, args ...any) {}
func (l *NoneLogger) Fatalln(args ...any)                {}

//nolint:ireturn
func (l *NoneLogger) WithFields(fields ...any) Logger { return l }

func (l *NoneLogger) Sync() error { return nil }
