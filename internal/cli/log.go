package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Laid out 42 items (1ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Log-backed hooks
// =============================================================================

type layoutLogHooks struct{ logger *log.Logger }

func (h layoutLogHooks) OnLayoutStart(_ context.Context, source string, itemCount int) {
	h.logger.Debug("layout started", "source", source, "items", itemCount)
}

func (h layoutLogHooks) OnLayoutComplete(_ context.Context, source string, passes int, d time.Duration) {
	h.logger.Debug("layout finished", "source", source, "passes", passes, "duration", d)
}

type documentLogHooks struct{ logger *log.Logger }

func (h documentLogHooks) OnImport(_ context.Context, path string, items, edges int, err error) {
	if err != nil {
		h.logger.Debug("document import failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("imported document", "path", path, "items", items, "edges", edges)
}

func (h documentLogHooks) OnExport(_ context.Context, path string, size int, err error) {
	if err != nil {
		h.logger.Debug("document export failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("exported document", "path", path, "bytes", size)
}

type httpLogHooks struct{ logger *log.Logger }

func (h httpLogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h httpLogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	l := h.logger.Info
	if status >= 500 {
		l = h.logger.Error
	}
	l("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}
