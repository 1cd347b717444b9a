package surrealblocks

import (
	"context"
	"fmt"
)

// Migrate prepares the schema of the configured store.
//
// SQLite creates its key-value table, PostgreSQL runs GORM AutoMigrate and
// SurrealDB defines its tables and indexes. The in-memory store needs nothing.
// Running it again on a prepared store changes nothing and keeps all data.
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	a.log.Info().Str("store", a.config.Store).Msg("Running store migrations...")
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	a.log.Info().Msg("Migrations completed successfully")
	return nil
}
