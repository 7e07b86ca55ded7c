// Package nclog provides the library's package-level logger, discarding
// output by default so embedding applications never see log lines unless
// they opt in.
package nclog

import (
	"io"
	"log/slog"
	"os"
)

// L is the package-wide logger. Call Init to enable structured logging of
// C-layer error codes and define-mode transitions.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Enabled bool
	Level   slog.Level
	Handler slog.Handler // overrides Level/Enabled if set, for embedding apps with their own handler
}

// Init configures the package logger. Call before any library operation if
// logging is desired; the default is silence.
func Init(opts Options) {
	if opts.Handler != nil {
		L = slog.New(opts.Handler)
		return
	}
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	L = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opts.Level}))
}
