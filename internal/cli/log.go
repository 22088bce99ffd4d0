// Package cli implements the pandalearn command-line interface.
//
// This package provides commands for serving the lesson site, browsing and
// printing lessons in the terminal, managing the light/dark theme preference,
// and seeding lesson content into MongoDB. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the lesson site over HTTP
//   - browse: Interactive terminal lesson browser
//   - lessons: List and print lessons
//   - theme: Show or change the theme preference
//   - routes: List the site's pages
//   - content: Seed lessons into MongoDB
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The root
// command attaches the CLI's logger to the command context; helpers read it
// back with loggerFromContext. Theme managers built by the CLI log every
// resolved or changed preference at debug level.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pandalearn/pandalearn/pkg/config"
	"github.com/pandalearn/pandalearn/pkg/theme"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that filters
// messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took once it finishes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, e.g.
// "seed complete database=pandalearn topics=6 elapsed=412ms".
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logThemeChanges returns an observer that records every preference the
// manager settles on.
func logThemeChanges(l *log.Logger) theme.Observer {
	return func(p theme.Preference) {
		l.Debug("theme", "value", p, "dark", p.IsDark())
	}
}

// logServing records the settings `serve` starts with.
func logServing(l *log.Logger, cfg config.Config) {
	l.Info("serving",
		"addr", cfg.Server.Addr,
		"store", cfg.Store.Backend,
		"content", cfg.Content.Source,
		"pin", cfg.Theme.PinUserChoice,
		"tracing", cfg.Observability.Tracing,
	)
}
