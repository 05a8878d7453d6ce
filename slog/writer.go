package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/negarit"
)

// Ensure LoggingRecordWriter implements negarit.RecordWriter.
var _ negarit.RecordWriter = (*LoggingRecordWriter)(nil)

// LoggingRecordWriter wraps a RecordWriter with logging.
type LoggingRecordWriter struct {
	next   negarit.RecordWriter
	logger *slog.Logger
}

// NewLoggingRecordWriter creates a new LoggingRecordWriter.
func NewLoggingRecordWriter(next negarit.RecordWriter, logger *slog.Logger) *LoggingRecordWriter {
	return &LoggingRecordWriter{next: next, logger: logger}
}

// WriteRecord delegates to the wrapped writer and logs the destination.
func (w *LoggingRecordWriter) WriteRecord(ctx context.Context, doc *negarit.Document) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("record written",
			"source", doc.SourcePath,
			"path", path,
			"parts", len(doc.Record.Parts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRecord(ctx, doc)
}
