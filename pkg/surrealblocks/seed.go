package surrealblocks

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/surrealdb/surrealblocks/pkg/exchange"
)

//go:embed sample/welcome.json
var sampleDocument []byte

// SeedSample saves the bundled sample document when the store holds no
// documents. It reports whether a document was saved.
func (a *App) SeedSample(ctx context.Context) (bool, error) {
	summaries, err := a.store.ListDocuments(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list documents: %w", err)
	}
	if len(summaries) > 0 {
		return false, nil
	}

	doc, err := exchange.Import(sampleDocument, a.now())
	if err != nil {
		return false, fmt.Errorf("failed to load sample document: %w", err)
	}
	doc.Metadata.CreatedAt = doc.Metadata.UpdatedAt
	if err := a.store.SaveDocument(ctx, doc); err != nil {
		return false, fmt.Errorf("failed to save sample document: %w", err)
	}
	a.log.Info().Str("document_id", doc.ID.String()).Msg("Sample document saved")
	return true, nil
}
