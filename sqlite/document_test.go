package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument(title string, era negarit.Era, parts map[string]string) *negarit.Document {
	return &negarit.Document{
		SourcePath:  "text_files/" + negarit.Slug(title) + ".txt",
		CleanedPath: "text_files/" + negarit.Slug(title) + "_duplicate_cleaned.txt",
		RecordPath:  "serialized_files/" + negarit.Slug(title) + ".json",
		Record: negarit.Record{
			Title:       title,
			Description: "it is necessary",
			Parts:       parts,
			Era:         era,
		},
	}
}

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("creates document with generated fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := newTestDocument("PROCLAMATION No 621 2009", negarit.EraPre2018, map[string]string{
			"PART ONE": "General",
		})

		err := svc.CreateDocument(ctx, doc)
		require.NoError(t, err)

		assert.NotEmpty(t, doc.ID, "ID should be generated")
		assert.Len(t, doc.ContentHash, 16, "ContentHash should be generated")
		assert.False(t, doc.ProcessedAt.IsZero(), "ProcessedAt should be set")
		assert.Equal(t, "proclamation_no_621_2009", doc.Slug)
		assert.Equal(t, negarit.EraPre2018, doc.Era)
	})

	t.Run("keeps a supplied content hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		doc := newTestDocument("T", negarit.EraUnknown, nil)
		doc.ContentHash = "abc"

		require.NoError(t, svc.CreateDocument(context.Background(), doc))

		assert.Equal(t, "abc", doc.ContentHash)
	})

	t.Run("hashes identical records identically", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		parts := map[string]string{"PART ONE": "a", "PART TWO": "b"}
		a := newTestDocument("Same", negarit.EraPre2018, parts)
		b := newTestDocument("Same", negarit.EraPre2018, parts)
		c := newTestDocument("Other", negarit.EraPre2018, parts)

		require.NoError(t, svc.CreateDocument(ctx, a))
		require.NoError(t, svc.CreateDocument(ctx, b))
		require.NoError(t, svc.CreateDocument(ctx, c))

		assert.Equal(t, a.ContentHash, b.ContentHash)
		assert.NotEqual(t, a.ContentHash, c.ContentHash)
	})

	t.Run("returns error for invalid document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		err := svc.CreateDocument(context.Background(), &negarit.Document{})

		require.Error(t, err)
		assert.Equal(t, negarit.EINVALID, negarit.ErrorCode(err))
	})
}

func TestDocumentService_FindDocumentByID(t *testing.T) {
	t.Parallel()

	t.Run("returns document with parts", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := newTestDocument("PROCLAMATION No 1156 2019", negarit.EraPost2018, map[string]string{
			"2 Definitions":          "In this Proclamation",
			"3 Scope of Application": "This Proclamation shall apply",
		})
		require.NoError(t, svc.CreateDocument(ctx, doc))

		found, err := svc.FindDocumentByID(ctx, doc.ID)

		require.NoError(t, err)
		assert.Equal(t, doc.ID, found.ID)
		assert.Equal(t, doc.SourcePath, found.SourcePath)
		assert.Equal(t, doc.CleanedPath, found.CleanedPath)
		assert.Equal(t, doc.RecordPath, found.RecordPath)
		assert.Equal(t, doc.Slug, found.Slug)
		assert.Equal(t, doc.ContentHash, found.ContentHash)
		assert.Equal(t, negarit.EraPost2018, found.Era)
		assert.Equal(t, doc.Record, found.Record)
		assert.True(t, doc.ProcessedAt.Equal(found.ProcessedAt))
	})

	t.Run("returns empty parts map for record without parts", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		doc := newTestDocument("Untitled", negarit.EraUnknown, nil)
		require.NoError(t, svc.CreateDocument(ctx, doc))

		found, err := svc.FindDocumentByID(ctx, doc.ID)

		require.NoError(t, err)
		require.NotNil(t, found.Record.Parts)
		assert.Empty(t, found.Record.Parts)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		_, err := svc.FindDocumentByID(context.Background(), "nonexistent")

		require.Error(t, err)
		assert.Equal(t, negarit.ENOTFOUND, negarit.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.DocumentService) []*negarit.Document {
		t.Helper()
		docs := []*negarit.Document{
			newTestDocument("Alpha", negarit.EraPre2018, map[string]string{"PART ONE": "a"}),
			newTestDocument("Beta", negarit.EraPost2018, map[string]string{"2 Definitions": "b"}),
			newTestDocument("Gamma", negarit.EraPost2018, nil),
		}
		for _, doc := range docs {
			require.NoError(t, svc.CreateDocument(context.Background(), doc))
		}
		return docs
	}

	t.Run("returns all documents without filter", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		seed(t, svc)

		docs, err := svc.FindDocuments(context.Background(), negarit.DocumentFilter{})

		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("filters by era", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		seed(t, svc)
		era := negarit.EraPost2018

		docs, err := svc.FindDocuments(context.Background(), negarit.DocumentFilter{Era: &era})

		require.NoError(t, err)
		require.Len(t, docs, 2)
		for _, doc := range docs {
			assert.Equal(t, negarit.EraPost2018, doc.Era)
		}
	})

	t.Run("filters by content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		seeded := seed(t, svc)

		docs, err := svc.FindDocuments(context.Background(), negarit.DocumentFilter{ContentHash: &seeded[1].ContentHash})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, seeded[1].ID, docs[0].ID)
		assert.Equal(t, map[string]string{"2 Definitions": "b"}, docs[0].Record.Parts)
	})

	t.Run("filters by slug", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		seed(t, svc)
		slug := "gamma"

		docs, err := svc.FindDocuments(context.Background(), negarit.DocumentFilter{Slug: &slug})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Gamma", docs[0].Record.Title)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		seed(t, svc)
		ctx := context.Background()

		first, err := svc.FindDocuments(ctx, negarit.DocumentFilter{Limit: 2})
		require.NoError(t, err)
		rest, err := svc.FindDocuments(ctx, negarit.DocumentFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)

		require.Len(t, first, 2)
		require.Len(t, rest, 1)
		ids := map[string]bool{first[0].ID: true, first[1].ID: true, rest[0].ID: true}
		assert.Len(t, ids, 3)
	})

	t.Run("returns empty result when nothing matches", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))
		seed(t, svc)
		slug := "missing"

		docs, err := svc.FindDocuments(context.Background(), negarit.DocumentFilter{Slug: &slug})

		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	t.Parallel()

	t.Run("deletes document and its parts", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		doc := newTestDocument("Doomed", negarit.EraPre2018, map[string]string{
			"PART ONE": "a",
			"PART TWO": "b",
		})
		require.NoError(t, svc.CreateDocument(ctx, doc))

		err := svc.DeleteDocument(ctx, doc.ID)
		require.NoError(t, err)

		_, err = svc.FindDocumentByID(ctx, doc.ID)
		assert.Equal(t, negarit.ENOTFOUND, negarit.ErrorCode(err))

		var partCount int
		require.NoError(t, db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM parts WHERE document_id = ?", doc.ID).Scan(&partCount))
		assert.Zero(t, partCount)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(setupTestDB(t))

		err := svc.DeleteDocument(context.Background(), "nonexistent")

		require.Error(t, err)
		assert.Equal(t, negarit.ENOTFOUND, negarit.ErrorCode(err))
	})
}

func TestDocumentService_PartOrder(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewDocumentService(db)
	ctx := context.Background()
	parts := make(map[string]string)
	for i := 12; i >= 2; i-- {
		parts[fmt.Sprintf("%d Section", i)] = fmt.Sprintf("body %d", i)
	}
	doc := newTestDocument("Ordered", negarit.EraPost2018, parts)
	require.NoError(t, svc.CreateDocument(ctx, doc))

	rows, err := db.QueryContext(ctx, "SELECT label FROM parts WHERE document_id = ? ORDER BY position", doc.ID)
	require.NoError(t, err)
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		require.NoError(t, rows.Scan(&label))
		labels = append(labels, label)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, negarit.PartLabels(parts), labels)
	assert.Equal(t, "2 Section", labels[0])
	assert.Equal(t, "12 Section", labels[len(labels)-1])
}
