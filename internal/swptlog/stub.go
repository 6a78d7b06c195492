package swptlog

import (
	"fmt"
	"strings"
)

// Compile-time check that LoggerStub implements Logger.
var _ Logger = (*LoggerStub)(nil)

// LoggerStub captures log messages for verification in tests, in place
// of wiring a real ZapLogger. Use when a test needs to assert a
// specific line was logged; otherwise prefer NoneLogger.
type LoggerStub struct {
	Infos    []string
	Warnings []string
	Errors   []string
	Debugs   []string
	Fatals   []string
}

func (l *LoggerStub) Info(args ...any)                 { l.Infos = append(l.Infos, fmt.Sprint(args...)) }
func (l *LoggerStub) Infof(format string, args ...any) { l.Infos = append(l.Infos, fmt.Sprintf(format, args...)) }
func (l *LoggerStub) Infoln(args ...any)                { l.Infos = append(l.Infos, fmt.Sprintln(args...)) }

func (l *LoggerStub) Error(args ...any)                 { l.Errors = append(l.Errors, fmt.Sprint(args...)) }
func (l *LoggerStub) Errorf(format string, args ...any) { l.Errors = append(l.Errors, fmt.Sprintf(format, args...)) }
func (l *LoggerStub) Errorln(args ...any)                { l.Errors = append(l.Errors, fmt.Sprintln(args...)) }

func (l *LoggerStub) Warn(args ...any)                 { l.Warnings = append(l.Warnings, fmt.Sprint(args...)) }
func (l *LoggerStub) Warnf(format string, args ...any) { l.Warnings = append(l.Warnings, fmt.Sprintf(format, args...)) }
func (l *LoggerStub) Warnln(args ...any)                { l.Warnings = append(l.Warnings, fmt.Sprintln(args...)) }

func (l *LoggerStub) Debug(args ...any)                 { l.Debugs = append(l.Debugs, fmt.Sprint(args...)) }
func (l *LoggerStub) Debugf(format string, args ...any) { l.Debugs = append(l.Debugs, fmt.Sprintf(format, args...)) }
func (l *LoggerStub) Debugln(args ...any)                { l.Debugs = append(l.Debugs, fmt.Sprintln(args...)) }

func (l *LoggerStub) Fatal(args ...any)                 { l.Fatals = append(l.Fatals, fmt.Sprint(args...)) }
func (l *LoggerStub) Fatalf(format string, args ...any) { l.Fatals = append(l.Fatals, fmt.Sprintf(format, args...)) }
func (l *LoggerStub) Fatalln(args ...any)                { l.Fatals = append(l.Fatals, fmt.Sprintln(args...)) }

//nolint:ireturn
func (l *LoggerStub) WithFields(fields ...any) Logger { return l }

func (l *LoggerStub) Sync() error { return nil }

// HasError reports whether any captured error line contains substring.
func (l *LoggerStub) HasError(substring string) bool {
	return containsAny(l.Errors, substring)
}

// HasWarning reports whether any captured warning line contains substring.
func (l *LoggerStub) HasWarning(substring string) bool {
	return containsAny(l.Warnings, substring)
}

// HasInfo reports whether any captured info line contains substring.
func (l *LoggerStub) HasInfo(substring string) bool {
	return containsAny(l.Infos, substring)
}

func containsAny(lines []string, substring string) bool {
	for _, line := range lines {
		if strings.Contains(line, substring) {
			return true
		}
	}

	return false
}
