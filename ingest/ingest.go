// Package ingest orchestrates batch processing of gazette files: staging,
// conversion, normalization, deduplication, extraction, serialization and
// indexing.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/bloom"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for cross-run deduplication.
const (
	// filterMinItems is the smallest expected item count the filter is sized for.
	filterMinItems = 10000
	// filterFalsePositiveRate is the acceptable false positive rate.
	filterFalsePositiveRate = 0.01
)

// Ingester runs gazette files through the processing pipeline.
// Converter, Documents and Logger are optional.
type Ingester struct {
	Sources     negarit.SourceStore
	Converter   negarit.Converter
	Normalizer  negarit.Normalizer
	Extractor   negarit.Extractor
	Records     negarit.RecordWriter
	Documents   negarit.DocumentService
	Logger      *slog.Logger
	Concurrency int

	// Force disables duplicate detection.
	Force bool

	mu     sync.Mutex
	dedupe *dedupe

	slugMu sync.Mutex
	slugs  map[string]slugOwner
}

// slugOwner identifies the document a record file name belongs to.
type slugOwner struct {
	hash   string
	source string
}

// Result holds the outcome of a batch run.
type Result struct {
	Processed int
	Skipped   int
	Failed    int
	Parts     int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Document  *negarit.Document
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// String returns the event type name.
func (t ProgressType) String() string {
	switch t {
	case ProgressStarted:
		return "started"
	case ProgressCompleted:
		return "completed"
	case ProgressSkipped:
		return "skipped"
	case ProgressFailed:
		return "failed"
	case ProgressFinished:
		return "finished"
	}
	return fmt.Sprintf("ProgressType(%d)", int(t))
}

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// fileResult holds the outcome of processing a single file.
type fileResult struct {
	path string
	doc  *negarit.Document
	err  error
}

// Run processes every source file the store discovers. A file that fails
// is counted and logged; it does not stop the batch. The progress
// callback, if provided, receives events as files complete.
func (in *Ingester) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	paths, err := in.Sources.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover sources: %w", err)
	}

	if _, err := in.dedupeState(ctx); err != nil {
		return nil, err
	}

	concurrency := in.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	total := len(paths)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan fileResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, path := range paths {
			path := path
			g.Go(func() error {
				doc, err := in.ProcessFile(gctx, path)
				resultCh <- fileResult{path: path, doc: doc, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var result Result
	completed := 0
	for r := range resultCh {
		completed++
		event := ProgressEvent{
			Completed: completed,
			Total:     total,
			Path:      r.path,
			Document:  r.doc,
			Error:     r.err,
		}

		switch {
		case r.err == nil:
			result.Processed++
			result.Parts += len(r.doc.Record.Parts)
			event.Type = ProgressCompleted
		case negarit.ErrorCode(r.err) == negarit.ECONFLICT:
			result.Skipped++
			event.Type = ProgressSkipped
			in.logger().Info("duplicate skipped", "path", r.path, "reason", negarit.ErrorMessage(r.err))
		default:
			result.Failed++
			event.Type = ProgressFailed
			in.logger().Error("processing failed", "path", r.path, "error", r.err)
		}

		if progress != nil {
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// ProcessFile runs one source file through the pipeline and returns the
// resulting document. Content already seen returns an ECONFLICT error
// unless Force is set.
func (in *Ingester) ProcessFile(ctx context.Context, path string) (*negarit.Document, error) {
	src, err := in.Sources.Stage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}

	text := src.Content
	if in.Converter != nil && src.IsMarkup() {
		text, err = in.Converter.Convert(text)
		if err != nil {
			return nil, fmt.Errorf("convert: %w", err)
		}
	}

	cleaned := in.Normalizer.Normalize(text)
	if err := in.Sources.SaveCleaned(ctx, src, cleaned); err != nil {
		return nil, fmt.Errorf("save cleaned text: %w", err)
	}

	hash := HashContent(cleaned)
	var state *dedupe
	if !in.Force {
		state, err = in.dedupeState(ctx)
		if err != nil {
			return nil, err
		}
		if err := state.claim(ctx, hash); err != nil {
			return nil, err
		}
	}

	doc, err := in.store(ctx, src, cleaned, hash)
	if err != nil {
		if state != nil {
			state.release(hash)
		}
		return nil, err
	}
	return doc, nil
}

// store extracts the record from cleaned text, writes it and indexes it.
func (in *Ingester) store(ctx context.Context, src *negarit.Source, cleaned, hash string) (*negarit.Document, error) {
	rec := in.Extractor.Extract(cleaned)

	doc := &negarit.Document{
		SourcePath:  src.Path,
		CleanedPath: src.StagedPath,
		ContentHash: hash,
		Era:         rec.Era,
		Record:      *rec,
	}
	slug, err := in.claimSlug(ctx, doc.FileSlug(), slugOwner{hash: hash, source: src.Path})
	if err != nil {
		return nil, err
	}
	doc.Slug = slug

	recordPath, err := in.Records.WriteRecord(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("write record: %w", err)
	}
	doc.RecordPath = recordPath

	if in.Documents == nil {
		doc.ProcessedAt = time.Now().UTC()
		return doc, nil
	}
	if err := in.Documents.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("index document: %w", err)
	}
	return doc, nil
}

// claimSlug returns the record file name for owner. A slug already taken by
// different content from a different source gets the content hash appended,
// so neither record overwrites the other.
func (in *Ingester) claimSlug(ctx context.Context, slug string, owner slugOwner) (string, error) {
	in.slugMu.Lock()
	defer in.slugMu.Unlock()

	if in.slugs == nil {
		in.slugs = make(map[string]slugOwner)
	}

	taken, err := in.slugTaken(ctx, slug, owner)
	if err != nil {
		return "", err
	}
	if taken {
		suffixed := slug + "_" + owner.hash[:min(8, len(owner.hash))]
		in.logger().Warn("slug collision", "slug", slug, "path", owner.source, "renamed", suffixed)
		slug = suffixed
	}
	in.slugs[slug] = owner
	return slug, nil
}

// slugTaken reports whether slug belongs to another document, in this run
// or in the index.
func (in *Ingester) slugTaken(ctx context.Context, slug string, owner slugOwner) (bool, error) {
	if prev, ok := in.slugs[slug]; ok {
		return prev.hash != owner.hash && prev.source != owner.source, nil
	}
	if in.Documents == nil {
		return false, nil
	}

	docs, err := in.Documents.FindDocuments(ctx, negarit.DocumentFilter{Slug: &slug})
	if err != nil {
		return false, fmt.Errorf("look up slug: %w", err)
	}
	for _, doc := range docs {
		if doc.Slug == slug && doc.ContentHash != owner.hash && doc.SourcePath != owner.source {
			return true, nil
		}
	}
	return false, nil
}

func (in *Ingester) logger() *slog.Logger {
	if in.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return in.Logger
}

// dedupeState returns the duplicate detector, seeding its Bloom filter from
// the document index on first use.
func (in *Ingester) dedupeState(ctx context.Context) (*dedupe, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.dedupe != nil {
		return in.dedupe, nil
	}

	var hashes []string
	if in.Documents != nil {
		docs, err := in.Documents.FindDocuments(ctx, negarit.DocumentFilter{})
		if err != nil {
			return nil, fmt.Errorf("load indexed documents: %w", err)
		}
		for _, doc := range docs {
			if doc.ContentHash != "" {
				hashes = append(hashes, doc.ContentHash)
			}
		}
	}

	in.dedupe = newDedupe(in.Documents, hashes)
	return in.dedupe, nil
}

// HashContent returns the xxHash of content as a 16-digit hex string.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// dedupe rejects content seen earlier in this process exactly, and content
// indexed by earlier runs via a Bloom filter guarding an index lookup.
type dedupe struct {
	documents negarit.DocumentService
	indexed   *bloom.Filter

	mu   sync.Mutex
	seen map[string]struct{}
}

func newDedupe(documents negarit.DocumentService, indexed []string) *dedupe {
	n := uint(2 * len(indexed))
	if n < filterMinItems {
		n = filterMinItems
	}
	f := bloom.NewFilter(n, filterFalsePositiveRate)
	for _, hash := range indexed {
		f.Add(hash)
	}
	return &dedupe{
		documents: documents,
		indexed:   f,
		seen:      make(map[string]struct{}),
	}
}

// claim reserves hash for the caller, or returns an ECONFLICT error when the
// content was already processed.
func (d *dedupe) claim(ctx context.Context, hash string) error {
	d.mu.Lock()
	if _, ok := d.seen[hash]; ok {
		d.mu.Unlock()
		return negarit.Errorf(negarit.ECONFLICT, "duplicate content %s", hash)
	}
	d.seen[hash] = struct{}{}
	d.mu.Unlock()

	if d.documents == nil || !d.indexed.Test(hash) {
		return nil
	}

	docs, err := d.documents.FindDocuments(ctx, negarit.DocumentFilter{ContentHash: &hash, Limit: 1})
	if err != nil {
		d.release(hash)
		return fmt.Errorf("look up content hash: %w", err)
	}
	if len(docs) > 0 {
		return negarit.Errorf(negarit.ECONFLICT, "duplicate content %s, already indexed as %s", hash, docs[0].Slug)
	}
	return nil
}

// release forgets a claimed hash whose processing failed.
func (d *dedupe) release(hash string) {
	d.mu.Lock()
	delete(d.seen, hash)
	d.mu.Unlock()
}
