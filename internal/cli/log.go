// Package cli implements the symwriter command-line interface.
//
// # Commands
//
// The main commands are:
//   - generate: write the units of a symbol file, plus go.mod and package.json
//   - imports: show what importing one symbol records
//   - graph: draw the symbol reference graph as DOT or SVG
//   - manifest: print the dependencies of the generated code
//   - cache: manage the generated output cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every import the writers record. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/symwriter/pkg/observability"
)

// newLogger creates the CLI logger. Timestamps look like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// enableVerbose switches the logger to debug level, which surfaces the import
// and dependency traces of every writer, and routes pipeline events to it.
func (c *CLI) enableVerbose() {
	c.SetLogLevel(LogDebug)
	observability.SetPipelineHooks(observability.NewLogPipelineHooks(c.Logger))
}

// progress times one command step.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time, e.g.
// "generated units=12 took=4ms".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or a
// logger that discards everything.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.New(io.Discard)
}
