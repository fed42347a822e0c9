package toolbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/helioslabs/prodinfo/pkg/toolerr"
)

// Middleware wraps a tool handler, returning a new handler with added
// behaviour. The tool name is passed so wrappers can report which tool they
// are guarding.
type Middleware func(tool string, next Handler) Handler

// Recovery returns a Middleware that catches handler panics and converts them
// to internal errors. A tool call must never terminate the process.
func Recovery() Middleware {
	return func(tool string, next Handler) Handler {
		return func(ctx context.Context, args Args) (payload any, err error) {
			defer func() {
				if r := recover(); r != nil {
					payload = nil
					err = toolerr.Newf(toolerr.KindInternal, "tool %s panicked: %v", tool, r)
				}
			}()

			return next(ctx, args)
		}
	}
}

// Timeout returns a Middleware that bounds every handler with a context
// deadline, so one slow upstream cannot block the dispatcher indefinitely.
func Timeout(d time.Duration) Middleware {
	return func(_ string, next Handler) Handler {
		return func(ctx context.Context, args Args) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			return next(ctx, args)
		}
	}
}

// Logger returns a Middleware that logs each tool call with its duration and,
// on failure, the classified kind.
func Logger(l *slog.Logger) Middleware {
	return func(tool string, next Handler) Handler {
		return func(ctx context.Context, args Args) (any, error) {
			start := time.Now()
			payload, err := next(ctx, args)
			elapsed := time.Since(start)

			if err != nil {
				l.Warn("tool call failed",
					"tool", tool,
					"kind", string(toolerr.KindOf(err)),
					"duration", elapsed,
					"err", err,
				)

				return payload, err
			}

			l.Info("tool call", "tool", tool, "duration", elapsed)

			return payload, nil
		}
	}
}
