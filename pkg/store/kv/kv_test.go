package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealblocks/pkg/models"
	"github.com/surrealdb/surrealblocks/pkg/store"
	"github.com/surrealdb/surrealblocks/pkg/store/kv"
	"github.com/surrealdb/surrealblocks/pkg/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return kv.NewMemoryStore()
	})
}

func TestKeyLayout(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := kv.New(backend, kv.WithClock(func() time.Time { return now }))

	doc := models.NewDocument("Claves", 1, now.Add(-time.Hour))
	require.NoError(t, s.SaveDocument(ctx, doc))
	assert.Equal(t, now, doc.Metadata.UpdatedAt)

	_, ok, err := backend.Get(ctx, "mastering-lovable-"+doc.ID.String())
	require.NoError(t, err)
	assert.True(t, ok)

	index, ok, err := backend.Get(ctx, "mastering-lovable-articles-index")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(index), `"filename":"`+doc.ID.String()+`.json"`)

	asset := &models.Asset{DocumentID: doc.ID, Name: "x.png"}
	require.NoError(t, s.SaveAsset(ctx, asset))
	ids, ok, err := backend.Get(ctx, "files-index")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["`+asset.ID.String()+`"]`, string(ids))
}

func TestReadOnlyStore(t *testing.T) {
	ctx := context.Background()
	readOnly := true
	s := store.NewReadOnlyStore(kv.NewMemoryStore(), func() bool { return readOnly })

	doc := models.NewDocument("Bloqueado", 1, time.Now())
	assert.ErrorIs(t, s.SaveDocument(ctx, doc), store.ErrReadOnly)
	assert.ErrorIs(t, s.DeleteDocument(ctx, doc.ID), store.ErrReadOnly)
	assert.ErrorIs(t, s.SaveAsset(ctx, &models.Asset{}), store.ErrReadOnly)
	assert.ErrorIs(t, s.DeleteAsset(ctx, models.NewAssetID()), store.ErrReadOnly)

	list, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	readOnly = false
	require.NoError(t, s.SaveDocument(ctx, doc))
}
