// Package surrealdb provides a SurrealDB implementation of
// [github.com/surrealdb/surrealblocks/pkg/store.Store].
//
// Documents and assets are records in the documents and assets tables,
// addressed by the RecordID of their typed ID. The connection uses the
// surrealcbor codec so that time.Time values and typed IDs reach the server
// in its native CBOR format.
//
// Queries are always parameterized; IDs are passed as RecordID values,
// never interpolated into SurrealQL.
//
// # Usage Example
//
//	s, err := surrealdb.NewSurrealStore(
//		"ws://localhost:8000/rpc",
//		"blocks", "blocks", "root", "root",
//	)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
package surrealdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/surrealdb/surrealblocks/pkg/models"
	"github.com/surrealdb/surrealblocks/pkg/store"
)

const (
	documentsTable = "documents"
	assetsTable    = "assets"
)

// documentRecord is the stored shape of a document. The listing fields are
// lifted out of the body so that the index query does not load blocks.
type documentRecord struct {
	ID        models.DocumentID `json:"id"`
	Order     int               `json:"order"`
	CreatedAt time.Time         `json:"created_at"`
	Summary   *models.Summary   `json:"summary"`
	Body      *models.Document  `json:"body"`
}

// SurrealStore implements the Store interface on SurrealDB.
type SurrealStore struct {
	db  *surrealdb.DB
	now func() time.Time
}

// NewSurrealStore connects to wsURL, signs in when credentials are given and
// selects namespace and database.
func NewSurrealStore(wsURL, namespace, database, username, password string) (store.Store, error) {
	ctx := context.Background()

	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	conf := connection.NewConfig(u)
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	db, err := surrealdb.FromConnection(ctx, gorillaws.New(conf))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if username != "" && password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": username,
			"pass": password,
		}); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &SurrealStore{db: db, now: time.Now}, nil
}

// Migrate defines the tables and the listing index. SurrealDB creates tables
// on first write, so this only adds what a first write cannot.
func (s *SurrealStore) Migrate(ctx context.Context) error {
	queries := []string{
		"DEFINE TABLE IF NOT EXISTS " + documentsTable + " SCHEMALESS",
		"DEFINE TABLE IF NOT EXISTS " + assetsTable + " SCHEMALESS",
		"DEFINE INDEX IF NOT EXISTS assets_document ON " + assetsTable + " FIELDS documentId",
	}
	for _, q := range queries {
		if _, err := surrealdb.Query[any](ctx, s.db, q, nil); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}

// handleNotFound maps the errors SurrealDB reports for missing records to nil.
func handleNotFound(err error) error {
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
			strings.Contains(errStr, "cannot unmarshal array into Go value") {
			return nil
		}
	}
	return err
}

func (s *SurrealStore) GetDocument(ctx context.Context, id models.DocumentID) (*models.Document, error) {
	record, err := surrealdb.Select[documentRecord](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if record == nil || record.Body == nil {
		return nil, nil
	}
	return record.Body, nil
}

func (s *SurrealStore) SaveDocument(ctx context.Context, doc *models.Document) error {
	if doc.ID.IsZero() {
		doc.ID = models.NewDocumentID()
	}
	store.Touch(doc, s.now())

	record := documentRecord{
		ID:        doc.ID,
		Order:     doc.Metadata.Order,
		CreatedAt: doc.Metadata.CreatedAt,
		Summary:   doc.Summary(),
		Body:      doc,
	}
	if _, err := surrealdb.Upsert[documentRecord](ctx, s.db, doc.ID.RecordID(), record); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteDocument(ctx context.Context, id models.DocumentID) error {
	_, err := surrealdb.Delete[documentRecord](ctx, s.db, id.RecordID())
	if handleNotFound(err) != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *SurrealStore) ListDocuments(ctx context.Context) ([]*models.Summary, error) {
	query := "SELECT summary, order, created_at FROM " + documentsTable + " ORDER BY order, created_at"
	result, err := surrealdb.Query[[]documentRecord](ctx, s.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	summaries := []*models.Summary{}
	if result == nil || len(*result) == 0 {
		return summaries, nil
	}
	for _, record := range (*result)[0].Result {
		if record.Summary != nil {
			summaries = append(summaries, record.Summary)
		}
	}
	return summaries, nil
}

func (s *SurrealStore) NextOrder(ctx context.Context) (int, error) {
	query := "RETURN math::max((SELECT VALUE order FROM " + documentsTable + ") ?? [0]) ?? 0"
	result, err := surrealdb.Query[int](ctx, s.db, query, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next order: %w", err)
	}
	if result == nil || len(*result) == 0 {
		return 1, nil
	}
	return (*result)[0].Result + 1, nil
}

func (s *SurrealStore) SaveAsset(ctx context.Context, asset *models.Asset) error {
	if asset.ID.IsZero() {
		asset.ID = models.NewAssetID()
	}
	if _, err := surrealdb.Upsert[models.Asset](ctx, s.db, asset.ID.RecordID(), asset); err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetAsset(ctx context.Context, id models.AssetID) (*models.Asset, error) {
	asset, err := surrealdb.Select[models.Asset](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

func (s *SurrealStore) ListAssets(ctx context.Context, documentID models.DocumentID) ([]*models.Asset, error) {
	query := "SELECT * FROM " + assetsTable + " WHERE documentId = $document_id ORDER BY uploadedAt DESC"
	return s.queryAssets(ctx, query, map[string]any{
		"document_id": documentID,
	})
}

func (s *SurrealStore) ListAllAssets(ctx context.Context) ([]*models.Asset, error) {
	return s.queryAssets(ctx, "SELECT * FROM "+assetsTable+" ORDER BY uploadedAt DESC", map[string]any{})
}

func (s *SurrealStore) queryAssets(ctx context.Context, query string, vars map[string]any) ([]*models.Asset, error) {
	result, err := surrealdb.Query[[]models.Asset](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	assets := []*models.Asset{}
	if result == nil || len(*result) == 0 {
		return assets, nil
	}
	for i := range (*result)[0].Result {
		assets = append(assets, &(*result)[0].Result[i])
	}
	store.SortAssets(assets)
	return assets, nil
}

func (s *SurrealStore) DeleteAsset(ctx context.Context, id models.AssetID) error {
	_, err := surrealdb.Delete[models.Asset](ctx, s.db, id.RecordID())
	if handleNotFound(err) != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}
