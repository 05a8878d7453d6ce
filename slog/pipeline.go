// Package slog provides logging decorators for the gazette pipeline.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/negarit"
)

// Compile-time interface verification.
var (
	_ negarit.Normalizer = (*LoggingNormalizer)(nil)
	_ negarit.Extractor  = (*LoggingExtractor)(nil)
)

// LoggingNormalizer wraps a Normalizer with debug logging.
type LoggingNormalizer struct {
	next   negarit.Normalizer
	logger *slog.Logger
}

// NewLoggingNormalizer creates a new LoggingNormalizer.
func NewLoggingNormalizer(next negarit.Normalizer, logger *slog.Logger) *LoggingNormalizer {
	return &LoggingNormalizer{next: next, logger: logger}
}

// Normalize delegates to the wrapped normalizer and logs sizes.
func (n *LoggingNormalizer) Normalize(raw string) (cleaned string) {
	defer func(begin time.Time) {
		n.logger.Debug("normalize",
			"in_bytes", len(raw),
			"out_bytes", len(cleaned),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return n.next.Normalize(raw)
}

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   negarit.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next negarit.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what was recognized.
func (e *LoggingExtractor) Extract(cleaned string) (rec *negarit.Record) {
	defer func(begin time.Time) {
		e.logger.Debug("extract",
			"era", rec.Era.String(),
			"title", rec.Title,
			"parts", len(rec.Parts),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(cleaned)
}
