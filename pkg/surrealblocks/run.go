package surrealblocks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// Run prepares the store, seeds the sample document when enabled, and serves
// the HTTP API until ctx is cancelled.
//
// # API Endpoints
//
// Health and catalog:
//
//	GET    /health                                         - Service health status
//	GET    /api/health                                     - Service health status
//	GET    /api/blocks/types                               - Block catalog grouped by category
//
// Documents:
//
//	GET    /api/documents                                  - Document index, sorted by order
//	POST   /api/documents                                  - Create an empty document {title}
//	GET    /api/documents/{id}                             - Get document
//	PUT    /api/documents/{id}                             - Save a full document
//	DELETE /api/documents/{id}                             - Delete document
//	GET    /api/documents/{id}/render                      - Rendered HTML
//	GET    /api/documents/{id}/export                      - Export file download
//	GET    /api/documents/{id}/live                        - Websocket editor session
//
// Blocks (chapterId and pageId in the body or query target a page):
//
//	POST   /api/documents/{id}/blocks                      - Add block {type, afterId}
//	PATCH  /api/documents/{id}/blocks/{blockId}            - Partial update {id, content, params}
//	DELETE /api/documents/{id}/blocks/{blockId}            - Delete block
//	POST   /api/documents/{id}/blocks/{blockId}/move       - Move block {direction}
//	POST   /api/documents/{id}/blocks/{blockId}/retype     - Change block type {type}
//	GET    /api/documents/{id}/blocks/{blockId}/form       - Edit form of a block
//
// Chapters and pages:
//
//	POST   /api/documents/{id}/chapters                                    - Add chapter {title}
//	PATCH  /api/documents/{id}/chapters/{chapterId}                        - Update chapter
//	DELETE /api/documents/{id}/chapters/{chapterId}                        - Delete chapter
//	POST   /api/documents/{id}/chapters/{chapterId}/move                   - Move chapter {direction}
//	POST   /api/documents/{id}/chapters/{chapterId}/pages                  - Add page {title}
//	PATCH  /api/documents/{id}/chapters/{chapterId}/pages/{pageId}         - Update page
//	DELETE /api/documents/{id}/chapters/{chapterId}/pages/{pageId}         - Delete page
//	POST   /api/documents/{id}/chapters/{chapterId}/pages/{pageId}/move    - Move page {direction}
//
// Import and generation:
//
//	POST   /api/import                                     - Save an export file as a new document
//	POST   /api/generate                                   - Generate and save a document
//
// Assets:
//
//	POST   /api/documents/{id}/assets                      - Upload files (multipart field "files")
//	GET    /api/documents/{id}/assets                      - List document assets
//	PATCH  /api/assets/{assetId}/metadata                  - Merge asset metadata
//	DELETE /api/assets/{assetId}                           - Delete asset
//	GET    /api/assets/export                              - Asset index backup
//	GET    /assets/...                                     - Blob and thumbnail files
//
// Administration:
//
//	GET    /api/admin/read-only                            - Current read-only state
//	POST   /api/admin/read-only                            - Toggle read-only mode {readOnly}
//
// The method blocks until the context is cancelled or a fatal server error
// occurs. On shutdown, active requests get up to 5 seconds to complete.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to prepare store: %w", err)
	}
	if a.config.SeedSample && !a.IsReadOnly() {
		if _, err := a.SeedSample(ctx); err != nil {
			a.log.Warn().Err(err).Msg("Sample document not saved")
		}
	}

	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.log.Info().
		Str("addr", addr).
		Str("store", a.config.Store).
		Bool("read_only", a.IsReadOnly()).
		Bool("generation", a.generator.Configured()).
		Msg("Starting surrealblocks server")

	server := &http.Server{
		Addr:    addr,
		Handler: a.Router(),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

// Router returns the HTTP handler with every route registered.
func (a *App) Router() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", a.handleHealth).Methods("GET")
	api.HandleFunc("/blocks/types", a.handleCatalog).Methods("GET")

	// Document routes
	api.HandleFunc("/documents", a.handleListDocuments).Methods("GET")
	api.HandleFunc("/documents", a.handleCreateDocument).Methods("POST")
	api.HandleFunc("/documents/{id}", a.handleGetDocument).Methods("GET")
	api.HandleFunc("/documents/{id}", a.handleSaveDocument).Methods("PUT")
	api.HandleFunc("/documents/{id}", a.handleDeleteDocument).Methods("DELETE")
	api.HandleFunc("/documents/{id}/render", a.handleRenderDocument).Methods("GET")
	api.HandleFunc("/documents/{id}/export", a.handleExportDocument).Methods("GET")
	api.HandleFunc("/documents/{id}/live", a.handleLive).Methods("GET")

	// Block routes
	api.HandleFunc("/documents/{id}/blocks", a.handleAddBlock).Methods("POST")
	api.HandleFunc("/documents/{id}/blocks/{blockId}", a.handleUpdateBlock).Methods("PATCH")
	api.HandleFunc("/documents/{id}/blocks/{blockId}", a.handleDeleteBlock).Methods("DELETE")
	api.HandleFunc("/documents/{id}/blocks/{blockId}/move", a.handleMoveBlock).Methods("POST")
	api.HandleFunc("/documents/{id}/blocks/{blockId}/retype", a.handleRetypeBlock).Methods("POST")
	api.HandleFunc("/documents/{id}/blocks/{blockId}/form", a.handleBlockForm).Methods("GET")

	// Chapter and page routes
	api.HandleFunc("/documents/{id}/chapters", a.handleAddChapter).Methods("POST")
	api.HandleFunc("/documents/{id}/chapters/{chapterId}", a.handleUpdateChapter).Methods("PATCH")
	api.HandleFunc("/documents/{id}/chapters/{chapterId}", a.handleDeleteChapter).Methods("DELETE")
	api.HandleFunc("/documents/{id}/chapters/{chapterId}/move", a.handleMoveChapter).Methods("POST")
	api.HandleFunc("/documents/{id}/chapters/{chapterId}/pages", a.handleAddPage).Methods("POST")
	api.HandleFunc("/documents/{id}/chapters/{chapterId}/pages/{pageId}", a.handleUpdatePage).Methods("PATCH")
	api.HandleFunc("/documents/{id}/chapters/{chapterId}/pages/{pageId}", a.handleDeletePage).Methods("DELETE")
	api.HandleFunc("/documents/{id}/chapters/{chapterId}/pages/{pageId}/move", a.handleMovePage).Methods("POST")

	api.HandleFunc("/import", a.handleImport).Methods("POST")
	api.HandleFunc("/generate", a.handleGenerate).Methods("POST")

	// Asset routes
	api.HandleFunc("/documents/{id}/assets", a.handleUploadAssets).Methods("POST")
	api.HandleFunc("/documents/{id}/assets", a.handleListAssets).Methods("GET")
	api.HandleFunc("/assets/export", a.handleExportAssets).Methods("GET")
	api.HandleFunc("/assets/{assetId}/metadata", a.handleUpdateAssetMetadata).Methods("PATCH")
	api.HandleFunc("/assets/{assetId}", a.handleDeleteAsset).Methods("DELETE")

	// Admin routes
	api.HandleFunc("/admin/read-only", a.handleGetReadOnly).Methods("GET")
	api.HandleFunc("/admin/read-only", a.handleSetReadOnly).Methods("POST")

	// Health check route (outside of /api prefix)
	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	prefix := "/" + strings.Trim(a.config.AssetsBaseURL, "/") + "/"
	router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, a.assets.Handler())).Methods("GET")

	return router
}
