package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/negarit/ingest"
	"golang.org/x/time/rate"
)

// ProgressLogger turns batch progress events into log lines. Completed
// events are throttled to one line per interval.
type ProgressLogger struct {
	logger    *slog.Logger
	sometimes *rate.Sometimes
}

// NewProgressLogger creates a ProgressLogger. A non-positive interval logs
// every completed file.
func NewProgressLogger(logger *slog.Logger, interval time.Duration) *ProgressLogger {
	sometimes := &rate.Sometimes{Every: 1}
	if interval > 0 {
		sometimes = &rate.Sometimes{First: 1, Interval: interval}
	}
	return &ProgressLogger{logger: logger, sometimes: sometimes}
}

// Log records event. It satisfies ingest.ProgressFunc.
func (p *ProgressLogger) Log(event ingest.ProgressEvent) {
	switch event.Type {
	case ingest.ProgressStarted:
		p.logger.Info("processing started", "files", event.Total)
	case ingest.ProgressCompleted:
		p.sometimes.Do(func() {
			attrs := []any{
				"completed", event.Completed,
				"total", event.Total,
				"path", event.Path,
			}
			if doc := event.Document; doc != nil {
				attrs = append(attrs, "era", doc.Era.String(), "parts", len(doc.Record.Parts))
			}
			p.logger.Info("progress", attrs...)
		})
	case ingest.ProgressFinished:
		p.logger.Info("processing finished", "files", event.Total)
	}
}
