package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

func TestNewDocumentDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	doc := models.NewDocument("Guía", 3, now)

	require.False(t, doc.ID.IsZero())
	assert.Equal(t, "Guía", doc.Title)
	assert.Equal(t, "Guía", doc.Metadata.Title)
	assert.Equal(t, models.DefaultCategory, doc.Category)
	assert.Equal(t, models.DefaultAuthor, doc.Metadata.Author)
	assert.Equal(t, 3, doc.Metadata.Order)
	assert.Equal(t, now, doc.Metadata.CreatedAt)
	assert.Equal(t, now, doc.Metadata.UpdatedAt)
	assert.False(t, doc.Metadata.Published)
	assert.NotNil(t, doc.Blocks)
	assert.Empty(t, doc.Blocks)
	require.NotNil(t, doc.Branding)
	assert.Equal(t, models.ThemeModern, doc.Branding.Theme)
	assert.Equal(t, "#f59e0b", doc.Branding.AccentColor)
	require.NotNil(t, doc.GlobalBranding)
	assert.Equal(t, "Inter", doc.GlobalBranding.FontFamily)
}

func TestDocumentIDJSON(t *testing.T) {
	id := models.NewDocumentID()

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(data))

	var decoded models.DocumentID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	var bad models.DocumentID
	assert.Error(t, json.Unmarshal([]byte(`"not-a-uuid"`), &bad))
}

func TestDocumentIDRecordID(t *testing.T) {
	id := models.NewDocumentID()

	rid := id.RecordID()
	assert.Equal(t, "documents", rid.Table)
	assert.Equal(t, id.String(), rid.ID)

	data, err := id.MarshalCBOR()
	require.NoError(t, err)

	var tag cbor.Tag
	require.NoError(t, cbor.Unmarshal(data, &tag))
	assert.Equal(t, uint64(8), tag.Number)

	var decoded models.DocumentID
	require.NoError(t, decoded.UnmarshalCBOR(data))
	assert.Equal(t, id, decoded)

	var wrongTable models.AssetID
	assert.Error(t, wrongTable.UnmarshalCBOR(data))
}

func TestDocumentIDScan(t *testing.T) {
	id := models.NewDocumentID()

	value, err := id.Value()
	require.NoError(t, err)

	var scanned models.DocumentID
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	zero, err := models.DocumentID{}.Value()
	require.NoError(t, err)
	assert.Nil(t, zero)
}

func TestParamsMerge(t *testing.T) {
	base := models.Params{"a": 1, "b": 2}
	merged := base.Merge(models.Params{"b": 3})

	assert.Equal(t, models.Params{"a": 1, "b": 3}, merged)
	assert.Equal(t, models.Params{"a": 1, "b": 2}, base)

	var empty models.Params
	assert.Equal(t, models.Params{}, empty.Clone())
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := models.NewDocument("Original", 1, time.Now())
	doc.Blocks = append(doc.Blocks, models.Block{
		ID:      "b1",
		Type:    models.BlockTypeText,
		Content: json.RawMessage(`{"text":"hola"}`),
		Params:  models.Params{"k": "v"},
	})
	doc.Chapters = []models.Chapter{{ID: "c1", Pages: []models.Page{{ID: "p1", Blocks: []models.Block{{ID: "x"}}}}}}

	clone := doc.Clone()
	clone.Blocks[0].Params["k"] = "changed"
	clone.Blocks[0].Content[2] = 'T'
	clone.Chapters[0].Pages[0].Blocks[0].ID = "y"
	clone.Branding.Theme = models.ThemeBold

	assert.Equal(t, "v", doc.Blocks[0].Params["k"])
	assert.JSONEq(t, `{"text":"hola"}`, string(doc.Blocks[0].Content))
	assert.Equal(t, "x", doc.Chapters[0].Pages[0].Blocks[0].ID)
	assert.Equal(t, models.ThemeModern, doc.Branding.Theme)
}

func TestSummary(t *testing.T) {
	doc := models.NewDocument("Índice", 2, time.Now())
	doc.Metadata.Tags = []string{"go"}

	s := doc.Summary()
	assert.Equal(t, doc.ID, s.ID)
	assert.Equal(t, "Índice", s.Title)
	assert.Equal(t, 2, s.Order)
	assert.Equal(t, []string{"go"}, s.Tags)
	assert.Equal(t, doc.ID.String()+".json", s.Filename)
}

func TestAssetMetadataMerge(t *testing.T) {
	base := models.AssetMetadata{Width: 10, Height: 20, Alt: "old"}
	merged := base.Merge(models.AssetMetadata{Alt: "new", Description: "desc"})

	assert.Equal(t, models.AssetMetadata{Width: 10, Height: 20, Alt: "new", Description: "desc"}, merged)
}
