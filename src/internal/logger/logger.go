package logger

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const RequestIDKey ctxKey = "requestId"

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
}

// Setup applies a level name ("debug", "info", ...) and output to the
// standard logger. An unknown level leaves the current one in place.
func Setup(level string, out io.Writer) error {
	if out != nil {
		logrus.SetOutput(out)
	}
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}

// For returns an entry carrying the request id stored in ctx, if any.
func For(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.WithField("request_id", id)
}

func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// IDFrom returns the request id stored in ctx or "".
func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func NewID() string { return uuid.NewString() }

// Track logs msg with its duration when the returned func is called.
func Track(ctx context.Context, msg string) func() {
	start := time.Now()
	return func() {
		dur := time.Since(start)
		entry := For(ctx).WithField("duration", dur.String())
		if dur > 2*time.Second {
			entry.Warnf("%s completed (SLOW)", msg)
		} else {
			entry.Debugf("%s completed", msg)
		}
	}
}
