// Package kv implements [store.Store] over a plain key-value backend.
//
// Documents are stored as JSON under "<prefix><id>" and listed through a
// summary index kept under "<prefix>articles-index". Assets are stored under
// "files-<id>" with their IDs listed in "files-index".
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/surrealdb/surrealblocks/pkg/models"
	"github.com/surrealdb/surrealblocks/pkg/store"
)

const (
	// DefaultPrefix is the key prefix of documents and the document index.
	DefaultPrefix = "mastering-lovable-"

	documentIndexKey = "articles-index"
	assetPrefix      = "files-"
	assetIndexKey    = "files-index"
)

// Backend is a string-keyed byte store.
type Backend interface {
	// Get returns the value under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Migrate(ctx context.Context) error
	Close() error
}

// Store keeps documents and assets in a Backend.
type Store struct {
	backend Backend
	prefix  string
	now     func() time.Time

	// mu serializes index read-modify-write cycles.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix of documents.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithClock sets the time source for updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store over backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		prefix:  DefaultPrefix,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemoryStore returns a Store over a fresh in-memory backend.
func NewMemoryStore(opts ...Option) store.Store {
	return New(NewMemory(), opts...)
}

func (s *Store) documentKey(id models.DocumentID) string {
	return s.prefix + id.String()
}

func (s *Store) documentIndex() string {
	return s.prefix + documentIndexKey
}

func assetKey(id models.AssetID) string {
	return assetPrefix + id.String()
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.backend.Migrate(ctx)
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// getJSON decodes the value under key into target and reports whether it existed.
func (s *Store) getJSON(ctx context.Context, key string, target any) (bool, error) {
	data, ok, err := s.backend.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.backend.Set(ctx, key, data)
}

func (s *Store) GetDocument(ctx context.Context, id models.DocumentID) (*models.Document, error) {
	var doc models.Document
	ok, err := s.getJSON(ctx, s.documentKey(id), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (s *Store) SaveDocument(ctx context.Context, doc *models.Document) error {
	if doc.ID.IsZero() {
		doc.ID = models.NewDocumentID()
	}
	store.Touch(doc, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setJSON(ctx, s.documentKey(doc.ID), doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	index, err := s.readDocumentIndex(ctx)
	if err != nil {
		return err
	}
	summary := doc.Summary()
	if i := slices.IndexFunc(index, func(e *models.Summary) bool { return e.ID == doc.ID }); i >= 0 {
		index[i] = summary
	} else {
		index = append(index, summary)
	}
	return s.writeDocumentIndex(ctx, index)
}

func (s *Store) DeleteDocument(ctx context.Context, id models.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, s.documentKey(id)); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	index, err := s.readDocumentIndex(ctx)
	if err != nil {
		return err
	}
	index = slices.DeleteFunc(index, func(e *models.Summary) bool { return e.ID == id })
	return s.writeDocumentIndex(ctx, index)
}

func (s *Store) ListDocuments(ctx context.Context) ([]*models.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.readDocumentIndex(ctx)
	if err != nil {
		return nil, err
	}
	store.SortSummaries(index)
	return index, nil
}

func (s *Store) NextOrder(ctx context.Context) (int, error) {
	index, err := s.ListDocuments(ctx)
	if err != nil {
		return 0, err
	}
	return store.NextOrder(index), nil
}

func (s *Store) readDocumentIndex(ctx context.Context) ([]*models.Summary, error) {
	index := []*models.Summary{}
	if _, err := s.getJSON(ctx, s.documentIndex(), &index); err != nil {
		return nil, fmt.Errorf("failed to read document index: %w", err)
	}
	if index == nil {
		index = []*models.Summary{}
	}
	return index, nil
}

func (s *Store) writeDocumentIndex(ctx context.Context, index []*models.Summary) error {
	if err := s.setJSON(ctx, s.documentIndex(), index); err != nil {
		return fmt.Errorf("failed to write document index: %w", err)
	}
	return nil
}

func (s *Store) SaveAsset(ctx context.Context, asset *models.Asset) error {
	if asset.ID.IsZero() {
		asset.ID = models.NewAssetID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setJSON(ctx, assetKey(asset.ID), asset); err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}
	ids, err := s.readAssetIndex(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(ids, asset.ID.String()) {
		ids = append(ids, asset.ID.String())
	}
	return s.setJSON(ctx, assetIndexKey, ids)
}

func (s *Store) GetAsset(ctx context.Context, id models.AssetID) (*models.Asset, error) {
	var asset models.Asset
	ok, err := s.getJSON(ctx, assetKey(id), &asset)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &asset, nil
}

func (s *Store) ListAssets(ctx context.Context, documentID models.DocumentID) ([]*models.Asset, error) {
	return s.listAssets(ctx, func(a *models.Asset) bool { return a.DocumentID == documentID })
}

func (s *Store) ListAllAssets(ctx context.Context) ([]*models.Asset, error) {
	return s.listAssets(ctx, func(*models.Asset) bool { return true })
}

// listAssets loads the indexed assets that keep reports true for.
func (s *Store) listAssets(ctx context.Context, keep func(*models.Asset) bool) ([]*models.Asset, error) {
	s.mu.Lock()
	ids, err := s.readAssetIndex(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	assets := []*models.Asset{}
	for _, raw := range ids {
		id, err := models.ParseAssetID(raw)
		if err != nil {
			continue
		}
		asset, err := s.GetAsset(ctx, id)
		if err != nil {
			return nil, err
		}
		if asset != nil && keep(asset) {
			assets = append(assets, asset)
		}
	}
	store.SortAssets(assets)
	return assets, nil
}

func (s *Store) DeleteAsset(ctx context.Context, id models.AssetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, assetKey(id)); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	ids, err := s.readAssetIndex(ctx)
	if err != nil {
		return err
	}
	ids = slices.DeleteFunc(ids, func(e string) bool { return e == id.String() })
	return s.setJSON(ctx, assetIndexKey, ids)
}

func (s *Store) readAssetIndex(ctx context.Context) ([]string, error) {
	ids := []string{}
	if _, err := s.getJSON(ctx, assetIndexKey, &ids); err != nil {
		return nil, fmt.Errorf("failed to read asset index: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
