package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dotse/slug"
	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
	slogmulti "github.com/samber/slog-multi"
)

type Level string

const (
	Debug Level = "debug"
	Info  Level = "info"
	Warn  Level = "warn"
	Error Level = "error"
)

const sentryFlushTimeout = 2 * time.Second

// ToSlogLevel maps our levels to the equivalent slog level.
func ToSlogLevel(level Level) slog.Level {
	switch level {
	case Debug:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// ParseLevel returns the level named by s, or an error for unknown names.
func ParseLevel(s string) (Level, error) {
	switch level := Level(s); level {
	case Debug, Info, Warn, Error:
		return level, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// MustCreateLogger creates and configures the default global log handler. Logs go to
// stderr, so rendered reports on stdout stay machine readable, or to logPath when set.
// A non-empty sentryDSN adds a sentry handler.
//
// Returns a cleanup function which should be called on program shutdown.
//
// Panics on failure to open log file for writing.
func MustCreateLogger(ctx context.Context, logPath string, level Level, sentryDSN string, version string) func() {
	var (
		closers []func()
		opts    = slug.HandlerOptions{
			HandlerOptions: slog.HandlerOptions{
				Level: ToSlogLevel(level),
			},
		}
		handlers []slog.Handler
	)

	if sentryDSN != "" {
		if _, errSentry := NewSentryClient(sentryDSN, version); errSentry != nil {
			panic(fmt.Sprintf("Failed to create sentry client: %v", errSentry))
		}

		handlers = append(handlers, sentryslog.Option{
			AddSource: true,
		}.NewSentryHandler(ctx))

		closers = append(closers, func() { sentry.Flush(sentryFlushTimeout) })
	}

	if logPath != "" {
		logFile, errLogFile := os.Create(logPath)
		if errLogFile != nil {
			panic(fmt.Sprintf("Failed to open logfile: %v", errLogFile))
		}

		closers = append(closers, func() {
			if errClose := logFile.Close(); errClose != nil {
				panic(fmt.Sprintf("Failed to close log file: %v", errClose))
			}
		})

		handlers = append(handlers, slug.NewHandler(opts, logFile))
	} else {
		handlers = append(handlers, slug.NewHandler(opts, os.Stderr))
	}

	defaultLogger := slog.New(slogmulti.Fanout(handlers...))

	if version != "" {
		defaultLogger = defaultLogger.With(slog.String("release", version))
	}

	slog.SetDefault(defaultLogger)

	return func() {
		for _, closer := range closers {
			closer()
		}
	}
}

// ErrAttr wraps an error as a slog attribute under the "error" key.
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}

func Closer(closer io.Closer) {
	if errClose := closer.Close(); errClose != nil {
		slog.Error("Failed to close", ErrAttr(errClose))
	}
}
