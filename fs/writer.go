// Package fs provides file-based storage for gazette sources and records.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/negarit"
)

// Ensure RecordWriter implements negarit.RecordWriter at compile time.
var _ negarit.RecordWriter = (*RecordWriter)(nil)

// RecordWriter writes records as indented JSON files named after the
// document slug.
type RecordWriter struct {
	dir string
}

// NewRecordWriter creates a RecordWriter that writes into dir.
func NewRecordWriter(dir string) *RecordWriter {
	return &RecordWriter{dir: dir}
}

// WriteRecord writes doc's record to <dir>/<slug>.json, replacing any
// previous file atomically.
func (w *RecordWriter) WriteRecord(ctx context.Context, doc *negarit.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}

	data, err := MarshalRecord(&doc.Record)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, doc.FileSlug()+".json")
	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// MarshalRecord encodes rec as two-space indented JSON with a trailing
// newline. A nil parts map is encoded as an empty object.
func MarshalRecord(rec *negarit.Record) ([]byte, error) {
	out := *rec
	if out.Parts == nil {
		out.Parts = map[string]string{}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, creating parent directories as needed.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// EnsureDirs creates each directory, and any missing parents, skipping
// empty names.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
