package negarit

import (
	"context"
	"path/filepath"
	"strings"
)

// StagedSuffix is appended to a source file's base name when it is copied
// aside for in-place cleaning.
const StagedSuffix = "_duplicate_cleaned"

// Source is a gazette file staged for processing.
type Source struct {
	// Path is the original file.
	Path string

	// StagedPath is the working copy the cleaned text is written to.
	StagedPath string

	// Content is the raw text as read from disk.
	Content string
}

// Name returns the source's base name without extension.
func (s *Source) Name() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsMarkup reports whether the source is an HTML page that needs conversion
// to text before cleaning.
func (s *Source) IsMarkup() bool {
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// StagedName returns the staged file name for a source file name:
// "a.txt" → "a_duplicate_cleaned.txt", "a" → "a_duplicate_cleaned".
func StagedName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + StagedSuffix + ext
}

// IsStagedName reports whether name is already a staged copy.
func IsStagedName(name string) bool {
	return strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), StagedSuffix)
}

// SourceStore discovers and stages gazette source files.
type SourceStore interface {
	// Discover returns the paths of source files awaiting processing.
	Discover(ctx context.Context) ([]string, error)

	// Stage copies the file at path to its staged location and reads it.
	Stage(ctx context.Context, path string) (*Source, error)

	// SaveCleaned overwrites the staged copy with cleaned text.
	SaveCleaned(ctx context.Context, src *Source, cleaned string) error
}

// RecordWriter serializes extracted records.
type RecordWriter interface {
	// WriteRecord persists doc's record and returns where it was written.
	WriteRecord(ctx context.Context, doc *Document) (string, error)
}
