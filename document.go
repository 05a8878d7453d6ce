package negarit

import (
	"context"
	"time"
)

// Document is a processed gazette file together with its extracted record.
type Document struct {
	ID          string    `json:"id"`
	SourcePath  string    `json:"sourcePath"`
	CleanedPath string    `json:"cleanedPath"`
	RecordPath  string    `json:"recordPath"`
	Slug        string    `json:"slug"`
	ContentHash string    `json:"contentHash"`
	Era         Era       `json:"era"`
	Record      Record    `json:"record"`
	ProcessedAt time.Time `json:"processedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourcePath == "" {
		return Errorf(EINVALID, "document source path required")
	}
	return nil
}

// FileSlug returns the slug used to name the document's output files.
// Falls back to the source file name when the title yields no slug.
func (d *Document) FileSlug() string {
	if d.Slug != "" {
		return d.Slug
	}
	if slug := Slug(d.Record.Title); slug != "" {
		return slug
	}
	src := Source{Path: d.SourcePath}
	if slug := Slug(src.Name()); slug != "" {
		return slug
	}
	return "untitled"
}

// DocumentService represents a service for managing processed documents.
type DocumentService interface {
	// CreateDocument stores a new document and its parts.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document and its parts.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID          *string `json:"id"`
	ContentHash *string `json:"contentHash"`
	Era         *Era    `json:"era"`
	Slug        *string `json:"slug"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
