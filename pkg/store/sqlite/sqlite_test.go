package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealblocks/pkg/models"
	"github.com/surrealdb/surrealblocks/pkg/store"
	"github.com/surrealdb/surrealblocks/pkg/store/sqlite"
	"github.com/surrealdb/surrealblocks/pkg/store/storetest"
)

func newStore(t *testing.T, path string) store.Store {
	t.Helper()
	s, err := sqlite.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s := newStore(t, filepath.Join(t.TempDir(), "blocks.db"))
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blocks.db")

	first := newStore(t, path)
	doc := models.NewDocument("Persistente", 1, time.Now())
	require.NoError(t, first.SaveDocument(ctx, doc))
	require.NoError(t, first.Close())

	second := newStore(t, path)
	defer second.Close()

	got, err := second.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Persistente", got.Title)

	next, err := second.NextOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}
