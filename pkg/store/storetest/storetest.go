// Package storetest holds the behavior checks every store.Store implementation
// must pass.
package storetest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealblocks/pkg/models"
	"github.com/surrealdb/surrealblocks/pkg/store"
)

// Run exercises a store created fresh by newStore for each subtest.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("documents", func(t *testing.T) { testDocuments(t, newStore(t)) })
	t.Run("ordering", func(t *testing.T) { testOrdering(t, newStore(t)) })
	t.Run("assets", func(t *testing.T) { testAssets(t, newStore(t)) })
}

func testDocuments(t *testing.T, s store.Store) {
	ctx := context.Background()

	missing, err := s.GetDocument(ctx, models.NewDocumentID())
	require.NoError(t, err)
	assert.Nil(t, missing)

	doc := models.NewDocument("Primero", 1, time.Now().Add(-time.Hour))
	doc.Blocks = []models.Block{{
		ID: "b1", Type: models.BlockTypeText,
		Content: json.RawMessage(`{"text":"hola"}`), Params: models.Params{},
	}}
	before := doc.Metadata.UpdatedAt
	require.NoError(t, s.SaveDocument(ctx, doc))
	assert.True(t, doc.Metadata.UpdatedAt.After(before))

	got, err := s.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "Primero", got.Metadata.Title)
	require.Len(t, got.Blocks, 1)
	assert.JSONEq(t, `{"text":"hola"}`, string(got.Blocks[0].Content))

	doc.Metadata.Title = "Renombrado"
	require.NoError(t, s.SaveDocument(ctx, doc))

	list, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Renombrado", list[0].Title)
	assert.Equal(t, doc.ID.String()+".json", list[0].Filename)

	require.NoError(t, s.DeleteDocument(ctx, doc.ID))
	require.NoError(t, s.DeleteDocument(ctx, doc.ID))

	got, err = s.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err = s.ListDocuments(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func testOrdering(t *testing.T, s store.Store) {
	ctx := context.Background()

	next, err := s.NextOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	for _, order := range []int{3, 1, 2} {
		require.NoError(t, s.SaveDocument(ctx, models.NewDocument("doc", order, time.Now())))
	}

	list, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, summary := range list {
		assert.Equal(t, i+1, summary.Order)
	}

	next, err = s.NextOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
}

func testAssets(t *testing.T, s store.Store) {
	ctx := context.Background()
	docA, docB := models.NewDocumentID(), models.NewDocumentID()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	older := &models.Asset{DocumentID: docA, Name: "a.png", Type: models.AssetTypeImage, URL: "/assets/a.png", UploadedAt: base}
	newer := &models.Asset{DocumentID: docA, Name: "b.pdf", Type: models.AssetTypeDocument, URL: "/assets/b.pdf", UploadedAt: base.Add(time.Minute)}
	other := &models.Asset{DocumentID: docB, Name: "c.zip", Type: models.AssetTypeArchive, URL: "/assets/c.zip", UploadedAt: base}
	for _, a := range []*models.Asset{older, newer, other} {
		require.NoError(t, s.SaveAsset(ctx, a))
		require.False(t, a.ID.IsZero())
	}

	list, err := s.ListAssets(ctx, docA)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	older.Metadata.Alt = "logo"
	require.NoError(t, s.SaveAsset(ctx, older))
	got, err := s.GetAsset(ctx, older.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "logo", got.Metadata.Alt)
	assert.True(t, base.Equal(got.UploadedAt))

	require.NoError(t, s.DeleteAsset(ctx, older.ID))
	got, err = s.GetAsset(ctx, older.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err = s.ListAssets(ctx, docA)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = s.ListAssets(ctx, models.NewDocumentID())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	// Neither document was ever saved; their assets are still listed.
	all, err := s.ListAllAssets(ctx)
	require.NoError(t, err)
	seen := map[models.AssetID]bool{}
	for _, a := range all {
		seen[a.ID] = true
	}
	assert.True(t, seen[newer.ID])
	assert.True(t, seen[other.ID])
	assert.False(t, seen[older.ID])
}
