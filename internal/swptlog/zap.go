package swptlog

import (
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps an otelzap.SugaredLogger so log lines emitted while a
// span is active are correlated with that span's trace ID.
type ZapLogger struct {
	sugar *otelzap.SugaredLogger
}

// NewZapLogger builds a production zap logger at the given level and
// wraps it for trace correlation. level is parsed by zapcore.ParseLevel
// ("debug", "info", "warn", "error", "fatal" and the other zap level
// names); a value it rejects defaults to "info".
func NewZapLogger(level string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	wrapped := otelzap.New(base, otelzap.WithMinLevel(lvl))

	return &ZapLogger{sugar: wrapped.Sugar()}, nil
}

func (l *ZapLogger) Info(args ...any)                 { l.sugar.Info(args...) }
func (l *ZapLogger) Infof(format string, args ...any) { l.sugar.Infof(format, args...) }
func (l *ZapLogger) Infoln(args ...any)                { l.sugar.Info(args...) }

func (l *ZapLogger) Error(args ...any)                 { l.sugar.Error(args...) }
func (l *ZapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }
func (l *ZapLogger) Errorln(args ...any)                { l.sugar.Error(args...) }

func (l *ZapLogger) Warn(args ...any)                 { l.sugar.Warn(args...) }
func (l *ZapLogger) Warnf(format string, args ...any) { l.sugar.Warnf(format, args...) }
func (l *ZapLogger) Warnln(args ...any)                { l.sugar.Warn(args...) }

func (l *ZapLogger) Debug(args ...any)                 { l.sugar.Debug(args...) }
func (l *ZapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *ZapLogger) Debugln(args ...any)                { l.sugar.Debug(args...) }

func (l *ZapLogger) Fatal(args ...any)                 { l.sugar.Fatal(args...) }
func (l *ZapLogger) Fatalf(format string, args ...any) { l.sugar.Fatalf(format, args...) }
func (l *ZapLogger) Fatalln(args ...any)                { l.sugar.Fatal(args...) }

// WithFields returns a derived logger carrying the given key/value pairs.
//
//nolint:ireturn
func (l *ZapLogger) WithFields(fields ...any) Logger {
	return &ZapLogger{sugar: l.sugar.With(fields...)}
}

func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

var _ Logger = (*ZapLogger)(nil)

// NewFromEnv builds a ZapLogger honoring the LOG_LEVEL environment
// variable, defaulting to "info".
func NewFromEnv() (*ZapLogger, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	return NewZapLogger(level)
}
