package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/negarit"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ negarit.DocumentService = (*DocumentService)(nil)

// DocumentService implements negarit.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

const documentColumns = "id, source_path, cleaned_path, record_path, slug, content_hash, era, title, description, processed_at"

// hashRecord computes the xxHash of a record's text fields as a hex string.
// Used when the caller did not supply a content hash.
func hashRecord(rec *negarit.Record) string {
	d := xxhash.New()
	_, _ = d.WriteString(rec.Title)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(rec.Description)
	for _, label := range negarit.PartLabels(rec.Parts) {
		_, _ = d.WriteString("\x00" + label + "\x00" + rec.Parts[label])
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// CreateDocument stores a new document and its parts in one transaction.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *negarit.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.ProcessedAt = time.Now().UTC().Truncate(time.Second)
	if doc.Era == negarit.EraUnknown {
		doc.Era = doc.Record.Era
	}
	if doc.Slug == "" {
		doc.Slug = doc.FileSlug()
	}
	if doc.ContentHash == "" {
		doc.ContentHash = hashRecord(&doc.Record)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourcePath, doc.CleanedPath, doc.RecordPath, doc.Slug, doc.ContentHash,
		string(doc.Era), doc.Record.Title, doc.Record.Description,
		doc.ProcessedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, label := range negarit.PartLabels(doc.Record.Parts) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO parts (document_id, position, label, body)
			VALUES (?, ?, ?, ?)
		`, doc.ID, i, label, doc.Record.Parts[label]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindDocumentByID retrieves a document and its parts by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*negarit.Document, error) {
	docs, err := s.FindDocuments(ctx, negarit.DocumentFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, negarit.Errorf(negarit.ENOTFOUND, "document not found")
	}
	return docs[0], nil
}

// FindDocuments retrieves documents matching the filter, most recently
// processed first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter negarit.DocumentFilter) ([]*negarit.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}
	if filter.Era != nil {
		query.WriteString(" AND era = ?")
		args = append(args, string(*filter.Era))
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}

	query.WriteString(" ORDER BY processed_at DESC, slug ASC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	docs, err := s.queryDocuments(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := s.attachParts(ctx, doc); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (s *DocumentService) queryDocuments(ctx context.Context, query string, args ...any) ([]*negarit.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*negarit.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func scanDocument(rows *sql.Rows) (*negarit.Document, error) {
	var doc negarit.Document
	var era, processedAt string

	if err := rows.Scan(&doc.ID, &doc.SourcePath, &doc.CleanedPath, &doc.RecordPath, &doc.Slug,
		&doc.ContentHash, &era, &doc.Record.Title, &doc.Record.Description, &processedAt); err != nil {
		return nil, err
	}

	doc.Era = negarit.Era(era)
	doc.Record.Era = doc.Era

	var err error
	doc.ProcessedAt, err = parseRFC3339(processedAt, "processed_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// attachParts loads doc's parts.
func (s *DocumentService) attachParts(ctx context.Context, doc *negarit.Document) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT label, body FROM parts WHERE document_id = ? ORDER BY position ASC", doc.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	doc.Record.Parts = make(map[string]string)
	for rows.Next() {
		var label, body string
		if err := rows.Scan(&label, &body); err != nil {
			return err
		}
		doc.Record.Parts[label] = body
	}
	return rows.Err()
}

// DeleteDocument permanently removes a document. Its parts are removed by
// the foreign key cascade.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return negarit.Errorf(negarit.ENOTFOUND, "document not found")
	}

	return nil
}
