package store

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

// ReadOnlyStore wraps a Store and rejects writes while isReadOnly reports true.
//
// The read-only state is evaluated on every call, so the application can
// toggle it without recreating the store. Reads always pass through.
type ReadOnlyStore struct {
	Store
	isReadOnly func() bool
}

// NewReadOnlyStore creates a read-only guard around store.
func NewReadOnlyStore(store Store, isReadOnly func() bool) Store {
	return &ReadOnlyStore{
		Store:      store,
		isReadOnly: isReadOnly,
	}
}

// Unwrap returns the underlying store
func (r *ReadOnlyStore) Unwrap() Store {
	return r.Store
}

// deny reports ErrReadOnly, tagged with op, while writes are blocked.
func (r *ReadOnlyStore) deny(op string) error {
	if r.isReadOnly() {
		return fmt.Errorf("%s: %w", op, ErrReadOnly)
	}
	return nil
}

func (r *ReadOnlyStore) SaveDocument(ctx context.Context, doc *models.Document) error {
	if err := r.deny("save document"); err != nil {
		return err
	}
	return r.Store.SaveDocument(ctx, doc)
}

func (r *ReadOnlyStore) DeleteDocument(ctx context.Context, id models.DocumentID) error {
	if err := r.deny("delete document"); err != nil {
		return err
	}
	return r.Store.DeleteDocument(ctx, id)
}

func (r *ReadOnlyStore) SaveAsset(ctx context.Context, asset *models.Asset) error {
	if err := r.deny("save asset"); err != nil {
		return err
	}
	return r.Store.SaveAsset(ctx, asset)
}

func (r *ReadOnlyStore) DeleteAsset(ctx context.Context, id models.AssetID) error {
	if err := r.deny("delete asset"); err != nil {
		return err
	}
	return r.Store.DeleteAsset(ctx, id)
}
