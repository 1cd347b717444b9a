package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

const (
	documentsTable = "documents"
	assetsTable    = "assets"

	// recordIDTag is the CBOR tag SurrealDB uses for record identifiers.
	recordIDTag = 8
)

// DocumentID is a typed ID for documents
type DocumentID struct {
	uuid uuid.UUID
}

func NewDocumentID() DocumentID {
	return DocumentID{uuid: uuid.New()}
}

func ParseDocumentID(s string) (DocumentID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return DocumentID{}, fmt.Errorf("invalid document ID: %w", err)
	}
	return DocumentID{uuid: id}, nil
}

func (d DocumentID) UUID() uuid.UUID { return d.uuid }
func (d DocumentID) String() string  { return d.uuid.String() }
func (d DocumentID) IsZero() bool    { return d.uuid == uuid.Nil }

func (d DocumentID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: documentsTable,
		ID:    d.uuid.String(),
	}
}

func (d DocumentID) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.uuid.String())
}

func (d *DocumentID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &d.uuid)
}

func (d DocumentID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID(documentsTable, d.uuid)
}

func (d *DocumentID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, documentsTable, &d.uuid)
}

func (d DocumentID) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.uuid.String(), nil
}

func (d *DocumentID) Scan(value any) error {
	return scanUUID(value, &d.uuid)
}

func (DocumentID) GormDataType() string { return "uuid" }

// AssetID is a typed ID for uploaded assets
type AssetID struct {
	uuid uuid.UUID
}

func NewAssetID() AssetID {
	return AssetID{uuid: uuid.New()}
}

func ParseAssetID(s string) (AssetID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AssetID{}, fmt.Errorf("invalid asset ID: %w", err)
	}
	return AssetID{uuid: id}, nil
}

func (a AssetID) UUID() uuid.UUID { return a.uuid }
func (a AssetID) String() string  { return a.uuid.String() }
func (a AssetID) IsZero() bool    { return a.uuid == uuid.Nil }

func (a AssetID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: assetsTable,
		ID:    a.uuid.String(),
	}
}

func (a AssetID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.uuid.String())
}

func (a *AssetID) UnmarshalJSON(data []byte) error {
	return unmarshalJSONID(data, &a.uuid)
}

func (a AssetID) MarshalCBOR() ([]byte, error) {
	return marshalCBORID(assetsTable, a.uuid)
}

func (a *AssetID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, assetsTable, &a.uuid)
}

func (a AssetID) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	return a.uuid.String(), nil
}

func (a *AssetID) Scan(value any) error {
	return scanUUID(value, &a.uuid)
}

func (AssetID) GormDataType() string { return "uuid" }

// NewBlockID returns a fresh identifier for a block, chapter or page.
func NewBlockID() string {
	return uuid.NewString()
}

func unmarshalJSONID(data []byte, target *uuid.UUID) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*target = uuid.Nil
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = id
	return nil
}

func scanUUID(value any, target *uuid.UUID) error {
	if value == nil {
		*target = uuid.Nil
		return nil
	}

	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*target = id
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return err
		}
		*target = id
	default:
		return fmt.Errorf("cannot scan type %T into UUID", value)
	}
	return nil
}

func marshalCBORID(table string, id uuid.UUID) ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  recordIDTag,
		Content: []any{table, id.String()},
	})
}

// unmarshalCBORID decodes a SurrealDB RecordID, encoded as tag 8 around [table, id].
func unmarshalCBORID(data []byte, expectedTable string, target *uuid.UUID) error {
	if len(data) == 0 {
		return fmt.Errorf("empty CBOR data")
	}

	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("failed to unmarshal CBOR tag: %w", err)
	}
	if tag.Number != recordIDTag {
		return fmt.Errorf("expected RecordID tag (%d), got %d", recordIDTag, tag.Number)
	}

	arr, ok := tag.Content.([]any)
	if !ok || len(arr) != 2 {
		return fmt.Errorf("invalid RecordID format: expected [table, id] array")
	}
	table, ok := arr[0].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: table name must be string")
	}
	if table != expectedTable {
		return fmt.Errorf("expected table %s, got %s", expectedTable, table)
	}
	idStr, ok := arr[1].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: ID must be string")
	}

	parsed, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid UUID in RecordID: %w", err)
	}
	*target = parsed
	return nil
}
