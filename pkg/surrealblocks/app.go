package surrealblocks

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/surrealdb/surrealblocks/pkg/assets"
	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/generate"
	"github.com/surrealdb/surrealblocks/pkg/logger"
	"github.com/surrealdb/surrealblocks/pkg/store"
	"github.com/surrealdb/surrealblocks/pkg/store/kv"
	"github.com/surrealdb/surrealblocks/pkg/store/postgres"
	"github.com/surrealdb/surrealblocks/pkg/store/sqlite"
	"github.com/surrealdb/surrealblocks/pkg/store/surrealdb"
)

// App holds the application state.
type App struct {
	store    store.Store
	config   *Config
	readOnly atomic.Bool // Runtime read-only state (can be toggled)

	registry  *blocks.Registry
	renderer  *blocks.Renderer
	assets    *assets.Service
	generator *generate.Generator

	logData *logger.LogData
	log     zerolog.Logger
	now     func() time.Time
}

// New creates the logger and the configured store, then the application.
func New(config *Config) (*App, error) {
	logData, err := logger.New().
		FromPath(config.LogFile).
		WithLevel(config.LogLevel).
		Make()
	if err != nil {
		return nil, err
	}
	log := logData.Logger

	appStore, err := openStore(config, log)
	if err != nil {
		_ = logData.Close()
		return nil, err
	}

	app := NewWithStore(config, appStore, log)
	app.logData = logData
	return app, nil
}

func openStore(config *Config, log zerolog.Logger) (store.Store, error) {
	switch config.Store {
	case StoreMemory:
		log.Info().Msg("Using in-memory store")
		return kv.NewMemoryStore(), nil
	case StoreSQLite:
		s, err := sqlite.NewSQLiteStore(config.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store: %w", err)
		}
		log.Info().Str("path", config.SQLitePath).Msg("Opened SQLite store")
		return s, nil
	case StorePostgres:
		s, err := postgres.NewPostgresStore(config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info().Msg("Connected to PostgreSQL")
		return s, nil
	case StoreSurrealDB:
		s, err := surrealdb.NewSurrealStore(
			config.SurrealDBURL,
			config.SurrealDBNS,
			config.SurrealDBDB,
			config.SurrealDBUser,
			config.SurrealDBPass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
		}
		log.Info().Str("url", config.SurrealDBURL).Msg("Connected to SurrealDB")
		return s, nil
	default:
		return nil, fmt.Errorf("invalid store: %s", config.Store)
	}
}

// NewWithStore builds the application around an already opened store. The
// store is wrapped with read-only protection.
func NewWithStore(config *Config, appStore store.Store, log zerolog.Logger) *App {
	registry := blocks.NewCatalogRegistry()
	app := &App{
		config:   config,
		registry: registry,
		renderer: blocks.NewRenderer(registry),
		log:      log,
		now:      time.Now,
	}
	app.readOnly.Store(config.ReadOnly)
	app.store = store.NewReadOnlyStore(appStore, app.IsReadOnly)

	app.assets = assets.NewService(app.store, config.AssetsDir, config.AssetsBaseURL,
		assets.WithLogger(log.With().Str("component", "assets").Logger()))
	app.generator = generate.New(registry, config.Generation,
		generate.WithLogger(log.With().Str("component", "generate").Logger()))
	return app
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var err error
	if a.store != nil {
		err = multierr.Append(err, a.store.Close())
	}
	if a.logData != nil {
		err = multierr.Append(err, a.logData.Close())
	}
	return err
}

// Store returns the read-only guarded store.
func (a *App) Store() store.Store {
	return a.store
}

// Registry returns the block registry shared by every component.
func (a *App) Registry() *blocks.Registry {
	return a.registry
}

// SetReadOnly toggles read-only mode at runtime.
func (a *App) SetReadOnly(readOnly bool) {
	a.readOnly.Store(readOnly)
	a.log.Info().Bool("read_only", readOnly).Msg("Read-only mode changed")
}

func (a *App) IsReadOnly() bool {
	return a.readOnly.Load()
}
