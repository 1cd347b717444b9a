// Package store provides the persistence layer for documents and assets.
//
// The [Store] interface hides the backend. Three implementations exist:
//
//   - [github.com/surrealdb/surrealblocks/pkg/store/kv.Store]: documents as
//     JSON values under string keys, with a summary index, over a pluggable
//     key-value backend (in-memory or SQLite)
//   - [github.com/surrealdb/surrealblocks/pkg/store/postgres.PostgresStore]:
//     GORM tables with the document body in a JSONB column
//   - [github.com/surrealdb/surrealblocks/pkg/store/surrealdb.SurrealStore]:
//     SurrealDB records addressed by typed record IDs
//
// A document is handed to the store as an opaque value; stores never look at
// block contents.
//
// Get methods return nil without error for missing entities. List methods
// return empty slices for no results, never nil.
package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

// ErrReadOnly is returned by write operations while the application is read-only.
var ErrReadOnly = errors.New("operation denied: application is in read-only mode")

// Store defines the persistence operations used by the application.
type Store interface {
	// Migrate prepares the backend schema. It is safe to run repeatedly.
	Migrate(ctx context.Context) error
	Close() error

	// GetDocument returns the document with the given ID, or nil.
	GetDocument(ctx context.Context, id models.DocumentID) (*models.Document, error)
	// SaveDocument inserts or replaces doc, refreshing its updatedAt and its
	// index entry.
	SaveDocument(ctx context.Context, doc *models.Document) error
	// DeleteDocument removes the document and its index entry. Deleting a
	// missing document is not an error.
	DeleteDocument(ctx context.Context, id models.DocumentID) error
	// ListDocuments returns the index entries sorted by order.
	ListDocuments(ctx context.Context) ([]*models.Summary, error)
	// NextOrder returns one more than the highest order in the index, or 1.
	NextOrder(ctx context.Context) (int, error)

	SaveAsset(ctx context.Context, asset *models.Asset) error
	GetAsset(ctx context.Context, id models.AssetID) (*models.Asset, error)
	// ListAssets returns the assets of a document, newest first.
	ListAssets(ctx context.Context, documentID models.DocumentID) ([]*models.Asset, error)
	// ListAllAssets returns every stored asset, including assets whose
	// document no longer exists, newest first.
	ListAllAssets(ctx context.Context) ([]*models.Asset, error)
	DeleteAsset(ctx context.Context, id models.AssetID) error
}

// Touch stamps doc as updated at now.
func Touch(doc *models.Document, now time.Time) {
	doc.Metadata.UpdatedAt = now
	if doc.Metadata.CreatedAt.IsZero() {
		doc.Metadata.CreatedAt = now
	}
}

// SortSummaries orders index entries by order, then by creation time.
func SortSummaries(summaries []*models.Summary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Order != summaries[j].Order {
			return summaries[i].Order < summaries[j].Order
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
}

// NextOrder returns one more than the highest order among summaries, or 1.
func NextOrder(summaries []*models.Summary) int {
	highest := 0
	for _, s := range summaries {
		if s.Order > highest {
			highest = s.Order
		}
	}
	return highest + 1
}

// SortAssets orders assets newest first.
func SortAssets(assets []*models.Asset) {
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].UploadedAt.After(assets[j].UploadedAt)
	})
}
