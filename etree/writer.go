// Package etree serializes gazette records as XML using etree.
package etree

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/fs"
)

// Ensure RecordWriter implements negarit.RecordWriter at compile time.
var _ negarit.RecordWriter = (*RecordWriter)(nil)

// RecordWriter writes records as XML files named after the document slug.
type RecordWriter struct {
	dir string
}

// NewRecordWriter creates a RecordWriter that writes into dir.
func NewRecordWriter(dir string) *RecordWriter {
	return &RecordWriter{dir: dir}
}

// WriteRecord writes doc's record to <dir>/<slug>.xml, replacing any
// previous file atomically.
func (w *RecordWriter) WriteRecord(ctx context.Context, doc *negarit.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}

	era := doc.Era
	if era == negarit.EraUnknown {
		era = doc.Record.Era
	}
	data, err := MarshalRecord(&doc.Record, era)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, doc.FileSlug()+".xml")
	if err := fs.WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// MarshalRecord encodes rec as an indented <proclamation> document with
// parts in reading order.
func MarshalRecord(rec *negarit.Record, era negarit.Era) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("proclamation")
	root.CreateAttr("era", era.String())
	root.CreateElement("title").SetText(rec.Title)
	root.CreateElement("description").SetText(rec.Description)

	parts := root.CreateElement("parts")
	for _, label := range negarit.PartLabels(rec.Parts) {
		part := parts.CreateElement("part")
		part.CreateAttr("label", label)
		part.SetText(rec.Parts[label])
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}
