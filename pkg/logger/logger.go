// Package logger provides the process-wide structured logger built on log/slog.
//
// Request handlers should log through WithCtx so that every line carries the
// request_id attached by the logging middleware:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", "product_id", p.ID)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// L is the base logger. Setup replaces it.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Options controls how Setup builds the base logger.
type Options struct {
	// Production switches to JSON output at INFO level.
	Production bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Extra handlers receive every record in addition to the console handler.
	Extra []slog.Handler
}

var setupMu sync.Mutex

// Setup rebuilds L from opts and installs it as the slog default.
func Setup(opts Options) *slog.Logger {
	setupMu.Lock()
	defer setupMu.Unlock()

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler
	if opts.Production {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if len(opts.Extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, opts.Extra...)...)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return L
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored by InjectLogger, or L.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// InjectLogger stores log in ctx. Called by the request logging middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
