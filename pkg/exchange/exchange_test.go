package exchange_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealblocks/pkg/exchange"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

func sampleDocument() *models.Document {
	doc := models.NewDocument("Guía de Go", 2, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	doc.Metadata.Tags = []string{"go", "tutorial"}
	doc.Blocks = []models.Block{
		{ID: "h", Type: models.BlockTypeHeader1, Content: json.RawMessage(`{"text":"Hola"}`), Params: models.Params{}},
		{ID: "l", Type: models.BlockTypeList, Content: json.RawMessage(`{"items":["a","b"]}`), Params: models.Params{"style": "number"}},
	}
	doc.Chapters = []models.Chapter{{
		ID: "c1", Title: "Uno", Order: 1,
		Pages: []models.Page{{ID: "p1", Title: "Intro", Order: 1, Blocks: []models.Block{
			{ID: "t", Type: models.BlockTypeText, Content: json.RawMessage(`{"text":"x"}`), Params: models.Params{}},
		}}},
	}}
	return doc
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDocument()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	data, err := exchange.Export(doc)
	require.NoError(t, err)

	imported, err := exchange.Import(data, now)
	require.NoError(t, err)

	assert.NotEqual(t, doc.ID, imported.ID)
	assert.Equal(t, now, imported.Metadata.UpdatedAt)
	assert.Equal(t, doc.Metadata.Title, imported.Metadata.Title)
	assert.True(t, doc.Metadata.CreatedAt.Equal(imported.Metadata.CreatedAt))
	assert.Equal(t, doc.Metadata.Tags, imported.Metadata.Tags)

	wantBlocks, err := json.Marshal(doc.Blocks)
	require.NoError(t, err)
	gotBlocks, err := json.Marshal(imported.Blocks)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantBlocks), string(gotBlocks))

	wantChapters, err := json.Marshal(doc.Chapters)
	require.NoError(t, err)
	gotChapters, err := json.Marshal(imported.Chapters)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantChapters), string(gotChapters))
}

func TestExportIsIndentedCamelCase(t *testing.T) {
	data, err := exchange.Export(sampleDocument())
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  \"metadata\": {")
	assert.Contains(t, string(data), `"updatedAt"`)
	assert.Contains(t, string(data), `"globalBranding"`)
}

func TestImportRequiresFields(t *testing.T) {
	cases := map[string]string{
		"not json":     `{`,
		"no id":        `{"metadata":{},"blocks":[]}`,
		"no metadata":  `{"id":"x","blocks":[]}`,
		"no blocks":    `{"id":"x","metadata":{}}`,
		"null blocks":  `{"id":"x","metadata":{},"blocks":null}`,
		"empty id":     `{"id":"","metadata":{},"blocks":[]}`,
		"null id":      `{"id":null,"metadata":{},"blocks":[]}`,
		"bad metadata": `{"id":"00000000-0000-0000-0000-000000000001","metadata":[],"blocks":[]}`,
	}
	for name, input := range cases {
		_, err := exchange.Import([]byte(input), time.Now())
		assert.ErrorIs(t, err, exchange.ErrInvalidDocument, name)
	}
}

func TestImportKeepsUnknownTypes(t *testing.T) {
	input := `{"id":"00000000-0000-0000-0000-000000000001","metadata":{"title":"T"},
		"blocks":[{"id":"a","type":"carousel","content":{}},{"id":"a","type":"text","content":{}}]}`

	doc, err := exchange.Import([]byte(input), time.Now())
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, models.BlockType("carousel"), doc.Blocks[0].Type)
	assert.Equal(t, "a-2", doc.Blocks[1].ID)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000001", doc.ID.String())
	assert.NotNil(t, doc.Metadata.Tags)
}

func TestImportAcceptsAnyID(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := `{"id":"sample-article","title":"Ejemplo",
		"metadata":{"title":"Ejemplo","author":"Ana","tags":["demo"]},
		"blocks":[{"id":"b1","type":"text","content":{"text":"Hola"}}]}`

	doc, err := exchange.Import([]byte(input), now)
	require.NoError(t, err)
	assert.False(t, doc.ID.IsZero())
	assert.Equal(t, "Ejemplo", doc.Title)
	assert.Equal(t, "Ana", doc.Metadata.Author)
	assert.Equal(t, now, doc.Metadata.UpdatedAt)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "b1", doc.Blocks[0].ID)

	numeric := `{"id":1712345678901,"metadata":{"title":"N"},"blocks":[]}`
	doc, err = exchange.Import([]byte(numeric), now)
	require.NoError(t, err)
	assert.False(t, doc.ID.IsZero())
}

func TestDecode(t *testing.T) {
	id := models.NewDocumentID()
	doc, err := exchange.Decode([]byte(`{"id":"` + id.String() + `","title":"A","metadata":{},"blocks":null}`))
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.NotNil(t, doc.Blocks)
	assert.NotNil(t, doc.Metadata.Tags)

	doc, err = exchange.Decode([]byte(`{"id":"sample-article","title":"B","blocks":[]}`))
	require.NoError(t, err)
	assert.True(t, doc.ID.IsZero(), "foreign ids are left for the caller")
	assert.Equal(t, "B", doc.Title)

	_, err = exchange.Decode([]byte(`{"blocks":{}}`))
	assert.ErrorIs(t, err, exchange.ErrInvalidDocument)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "gu_a_de_go.json", exchange.Filename("Guía de Go"))
	assert.Equal(t, "react_2024.json", exchange.Filename("React-2024"))
	assert.Equal(t, "a__b.json", exchange.Filename("a😀b"))
	assert.Equal(t, ".json", exchange.Filename(""))
}

func TestExportAssets(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	asset := &models.Asset{ID: models.NewAssetID(), Name: "logo_1.png", Type: models.AssetTypeImage}

	data, err := exchange.ExportAssets([]*models.Asset{asset}, now)
	require.NoError(t, err)

	var backup exchange.AssetBackup
	require.NoError(t, json.Unmarshal(data, &backup))
	assert.Equal(t, "1.0", backup.Version)
	assert.True(t, now.Equal(backup.ExportedAt))
	require.Len(t, backup.Files, 1)
	assert.Equal(t, asset.ID, backup.Files[0].ID)

	empty, err := exchange.ExportAssets(nil, now)
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"files": []`)
}
