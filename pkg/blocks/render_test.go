package blocks_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

func TestRenderUnknownType(t *testing.T) {
	r := blocks.NewRenderer(blocks.NewCatalogRegistry())

	out := r.Render(models.Block{ID: "x", Type: "carousel"})
	assert.Contains(t, string(out), "block-error")
	assert.Contains(t, string(out), "carousel")
}

func TestRenderEveryDefault(t *testing.T) {
	reg := blocks.NewCatalogRegistry()
	r := blocks.NewRenderer(reg)

	for _, bt := range reg.Types() {
		b, ok := reg.NewInstance(bt)
		require.True(t, ok)
		out := string(r.Render(b))
		assert.NotEmpty(t, out, bt)
		assert.NotContains(t, out, "block-error", bt)
	}
}

func TestRenderEscapesContent(t *testing.T) {
	r := blocks.NewRenderer(blocks.NewCatalogRegistry())

	out := r.Render(models.Block{
		ID:      "t",
		Type:    models.BlockTypeText,
		Content: json.RawMessage(`{"text":"<script>alert(1)</script>"}`),
	})
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "&lt;script&gt;")
}

func TestRenderBrokenContent(t *testing.T) {
	r := blocks.NewRenderer(blocks.NewCatalogRegistry())

	out := r.Render(models.Block{ID: "t", Type: models.BlockTypeText, Content: json.RawMessage(`{"text":7}`)})
	assert.Contains(t, string(out), "block-error")
}

func TestRenderListParams(t *testing.T) {
	r := blocks.NewRenderer(blocks.NewCatalogRegistry())
	b := models.Block{
		ID:      "l",
		Type:    models.BlockTypeList,
		Content: json.RawMessage(`{"items":["a","b"]}`),
		Params:  models.Params{"style": "number", "color": "teal"},
	}

	out := string(r.Render(b))
	assert.Contains(t, out, "<ol")
	assert.Contains(t, out, "color-gray")
}

func TestEmbedURL(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=abc123&t=10": "https://www.youtube.com/embed/abc123",
		"https://youtu.be/xyz?si=1":                   "https://www.youtube.com/embed/xyz",
		"https://vimeo.com/7654":                      "https://player.vimeo.com/video/7654",
		"https://example.com/video.mp4":               "https://example.com/video.mp4",
	}
	for in, want := range cases {
		assert.Equal(t, want, blocks.EmbedURL(in), in)
	}
}

func TestRenderDocument(t *testing.T) {
	reg := blocks.NewCatalogRegistry()
	r := blocks.NewRenderer(reg)

	doc := models.NewDocument("Manual", 1, time.Now())
	doc.Blocks = []models.Block{
		{ID: "h", Type: models.BlockTypeHeader1, Content: json.RawMessage(`{"text":"Bienvenida"}`)},
		{ID: "u", Type: "carousel"},
	}
	doc.Chapters = []models.Chapter{{
		ID: "c1", Title: "Primeros pasos", Order: 1,
		Pages: []models.Page{{
			ID: "p1", Title: "Instalación", Order: 1,
			Blocks: []models.Block{{ID: "t", Type: models.BlockTypeText, Content: json.RawMessage(`{"text":"Paso uno"}`)}},
		}},
	}}

	out, err := r.RenderDocument(doc)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Bienvenida")
	assert.Contains(t, html, "block-error")
	assert.Contains(t, html, `id="primeros-pasos"`)
	assert.Contains(t, html, `id="primeros-pasos-instalacion"`)
	assert.Contains(t, html, "Paso uno")
	assert.Contains(t, html, `data-block-id="h"`)
}

func TestRenderDocumentAnchorsAreUnique(t *testing.T) {
	r := blocks.NewRenderer(blocks.NewCatalogRegistry())
	doc := models.NewDocument("Anclas", 1, time.Now())
	for i, title := range []string{"A", "A", "A 2", "", ""} {
		doc.Chapters = append(doc.Chapters, models.Chapter{ID: fmt.Sprintf("c%d", i), Title: title, Order: i + 1})
	}

	out, err := r.RenderDocument(doc)
	require.NoError(t, err)

	html := string(out)
	for _, id := range []string{"a", "a-2", "a-2-2", "section", "section-2"} {
		assert.Equal(t, 1, strings.Count(html, `id="`+id+`"`), id)
	}
}
