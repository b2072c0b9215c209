// Package logging configures the process logger and reports server-side defects.
package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// Configure sets the level and formatter of the standard logrus logger.
// format is "text" (default) or "json".
func Configure(level, format string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)

	switch strings.ToLower(format) {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return fmt.Errorf("invalid log format %q (expected text or json)", format)
	}
	return nil
}

// InitSentry enables defect reporting when dsn is set. The returned func flushes
// pending events and is safe to call when reporting is disabled.
func InitSentry(dsn, environment string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	}); err != nil {
		return func() {}, fmt.Errorf("failed to initialize sentry: %w", err)
	}
	logrus.Debug("sentry defect reporting enabled")
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// ReportDefect records a data-integrity fault: a relation that must always
// resolve did not. It is logged at error level and sent to Sentry when enabled.
func ReportDefect(err error, fields logrus.Fields) {
	logrus.WithFields(fields).WithError(err).Error("integrity fault")

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetContext("defect", sentry.Context(fields))
		sentry.CaptureException(err)
	})
}
