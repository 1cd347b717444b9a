package surrealdb_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealblocks/pkg/store"
	"github.com/surrealdb/surrealblocks/pkg/store/storetest"
	"github.com/surrealdb/surrealblocks/pkg/store/surrealdb"
)

// TestSurrealStore runs against the server named by SURREALDB_URL, using a
// fresh database per subtest.
func TestSurrealStore(t *testing.T) {
	endpoint := os.Getenv("SURREALDB_URL")
	if endpoint == "" {
		t.Skip("SURREALDB_URL not set")
	}
	user := getEnv("SURREALDB_USER", "root")
	pass := getEnv("SURREALDB_PASS", "root")

	storetest.Run(t, func(t *testing.T) store.Store {
		database := "test_" + uuid.NewString()[:8]
		s, err := surrealdb.NewSurrealStore(endpoint, "surrealblocks_test", database, user, pass)
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		require.NoError(t, s.Migrate(context.Background()))
		return s
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
