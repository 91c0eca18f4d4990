// Package logging configures the slog handler used by the command line tool.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	slogctx "github.com/veqryn/slog-context"
)

// Options controls the console handler.
type Options struct {
	Level   slog.Level
	NoColor bool
}

// Setup installs a tint console handler writing to w as the default logger and
// returns ctx carrying that logger.
func Setup(ctx context.Context, w io.Writer, opts Options) context.Context {
	tintHandler := tint.NewHandler(w, &tint.Options{
		Level:       opts.Level,
		TimeFormat:  "15:04:05.000",
		NoColor:     opts.NoColor,
		ReplaceAttr: formatErrors,
	})

	ctxHandler := slogctx.NewHandler(tintHandler, nil)

	logger := slog.New(ctxHandler)
	slog.SetDefault(logger)

	return slogctx.NewCtx(ctx, logger)
}

// SetupStderr is Setup for the process' standard error.
func SetupStderr(ctx context.Context, opts Options) context.Context {
	return Setup(ctx, os.Stderr, opts)
}

// Discard returns ctx carrying a logger that drops everything.
func Discard(ctx context.Context) context.Context {
	return slogctx.NewCtx(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// formatErrors renders error attributes by message only; the stack traces
// recorded by the errors package are noise on a console.
func formatErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	if err, ok := a.Value.Any().(error); ok {
		return slog.String(a.Key, err.Error())
	}
	return a
}
