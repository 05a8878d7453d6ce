package mock

import (
	"context"

	"github.com/fwojciec/negarit"
)

// Compile-time interface verification.
var (
	_ negarit.SourceStore  = (*SourceStore)(nil)
	_ negarit.RecordWriter = (*RecordWriter)(nil)
)

// SourceStore is a mock implementation of negarit.SourceStore.
type SourceStore struct {
	DiscoverFn    func(ctx context.Context) ([]string, error)
	StageFn       func(ctx context.Context, path string) (*negarit.Source, error)
	SaveCleanedFn func(ctx context.Context, src *negarit.Source, cleaned string) error
}

func (s *SourceStore) Discover(ctx context.Context) ([]string, error) {
	return s.DiscoverFn(ctx)
}

func (s *SourceStore) Stage(ctx context.Context, path string) (*negarit.Source, error) {
	return s.StageFn(ctx, path)
}

func (s *SourceStore) SaveCleaned(ctx context.Context, src *negarit.Source, cleaned string) error {
	return s.SaveCleanedFn(ctx, src, cleaned)
}

// RecordWriter is a mock implementation of negarit.RecordWriter.
type RecordWriter struct {
	WriteRecordFn func(ctx context.Context, doc *negarit.Document) (string, error)
}

func (w *RecordWriter) WriteRecord(ctx context.Context, doc *negarit.Document) (string, error) {
	return w.WriteRecordFn(ctx, doc)
}
