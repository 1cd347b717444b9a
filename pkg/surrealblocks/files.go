package surrealblocks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/surrealdb/surrealblocks/pkg/exchange"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

// Export writes the document cmd.ID into cmd.OutDir under its export file name.
func (a *App) Export(ctx context.Context, cmd *ExportCommand) error {
	id, err := models.ParseDocumentID(cmd.ID)
	if err != nil {
		return fmt.Errorf("invalid document ID: %w", err)
	}
	doc, err := a.store.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document %s not found", id)
	}

	data, err := exchange.Export(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cmd.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cmd.OutDir, exchange.Filename(doc.Metadata.Title))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.log.Info().Str("document_id", id.String()).Str("path", path).Msg("Document exported")
	return nil
}

// Import saves the file at cmd.Path as a new document and prints its ID.
func (a *App) Import(ctx context.Context, cmd *ImportCommand) error {
	return a.importFile(ctx, cmd.Path, os.Stdout)
}

func (a *App) importFile(ctx context.Context, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := exchange.Import(data, a.now())
	if err != nil {
		return err
	}
	if err := a.store.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	a.log.Info().Str("document_id", doc.ID.String()).Str("path", path).Msg("Document imported")
	_, err = fmt.Fprintln(out, doc.ID)
	return err
}

// Catalog prints the registered block types grouped by category.
func (a *App) Catalog(ctx context.Context, cmd *CatalogCommand) error {
	return a.writeCatalog(os.Stdout)
}

func (a *App) writeCatalog(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(a.registry.ByCategory())
}
