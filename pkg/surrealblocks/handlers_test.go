package surrealblocks_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/client"
	"github.com/surrealdb/surrealblocks/pkg/models"
	"github.com/surrealdb/surrealblocks/pkg/store/kv"
	"github.com/surrealdb/surrealblocks/pkg/surrealblocks"
)

type testServer struct {
	app    *surrealblocks.App
	server *httptest.Server
	client *client.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	config := surrealblocks.DefaultConfig()
	config.Store = surrealblocks.StoreMemory
	config.AssetsDir = t.TempDir()
	config.Generation.APIKey = ""

	app := surrealblocks.NewWithStore(config, kv.NewMemoryStore(), zerolog.Nop())
	server := httptest.NewServer(app.Router())
	t.Cleanup(func() {
		server.Close()
		_ = app.Close()
	})
	return &testServer{app: app, server: server, client: client.NewClient(server.URL)}
}

func (ts *testServer) do(t *testing.T, method, path, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, ts.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	health, err := ts.client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health["status"])

	resp, _ := ts.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalog(t *testing.T) {
	ts := newTestServer(t)
	groups, err := ts.client.Catalog(context.Background())
	require.NoError(t, err)

	total := 0
	for _, g := range groups {
		total += len(g.Types)
	}
	assert.Equal(t, len(ts.app.Registry().Types()), total)
}

func TestDocumentLifecycle(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	first, err := ts.client.CreateDocument(ctx, "Primero")
	require.NoError(t, err)
	second, err := ts.client.CreateDocument(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Metadata.Order)
	assert.Equal(t, 2, second.Metadata.Order)
	assert.Equal(t, "Nuevo Documento", second.Title)

	list, err := ts.client.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	got, err := ts.client.GetDocument(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primero", got.Metadata.Title)
	assert.Equal(t, models.DefaultAccentColor, got.Branding.AccentColor)

	got.Metadata.Title = "Renombrado"
	saved, err := ts.client.SaveDocument(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", saved.Metadata.Title)

	require.NoError(t, ts.client.DeleteDocument(ctx, second.ID))
	_, err = ts.client.GetDocument(ctx, second.ID)
	assert.ErrorContains(t, err, "status=404")

	list, err = ts.client.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Renombrado", list[0].Title)
}

func TestInvalidDocumentID(t *testing.T) {
	ts := newTestServer(t)
	resp, body := ts.do(t, http.MethodGet, "/api/documents/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Invalid document ID"}`, body)
}

func TestBlockOperations(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	doc, err := ts.client.CreateDocument(ctx, "Bloques")
	require.NoError(t, err)

	res, err := ts.client.AddBlock(ctx, doc.ID, client.AddBlock{Type: models.BlockTypeText})
	require.NoError(t, err)
	text, err := res.Block()
	require.NoError(t, err)
	assert.Equal(t, models.BlockTypeText, text.Type)

	res, err = ts.client.AddBlock(ctx, doc.ID, client.AddBlock{Type: models.BlockTypeImage})
	require.NoError(t, err)
	img, err := res.Block()
	require.NoError(t, err)
	require.Len(t, res.Document.Blocks, 2)

	res, err = ts.client.UpdateBlock(ctx, doc.ID, text.ID, client.UpdateBlock{
		Update: blocks.Update{Content: blocks.Patch{"text": "Hola"}},
	})
	require.NoError(t, err)
	updated, err := res.Block()
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"Hola"}`, string(updated.Content))

	res, err = ts.client.MoveBlock(ctx, doc.ID, img.ID, "up", client.Target{})
	require.NoError(t, err)
	assert.Equal(t, img.ID, res.Document.Blocks[0].ID)
	assert.JSONEq(t, `{"moved":true}`, string(res.Result))

	res, err = ts.client.MoveBlock(ctx, doc.ID, img.ID, "up", client.Target{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"moved":false}`, string(res.Result))

	res, err = ts.client.RetypeBlock(ctx, doc.ID, text.ID, models.BlockTypeQuote, client.Target{})
	require.NoError(t, err)
	retyped, err := res.Block()
	require.NoError(t, err)
	assert.Equal(t, text.ID, retyped.ID)
	assert.Equal(t, models.BlockTypeQuote, retyped.Type)

	form, err := ts.client.BlockForm(ctx, doc.ID, text.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BlockTypeQuote, form.Type)
	assert.NotEmpty(t, form.Fields)

	res, err = ts.client.DeleteBlock(ctx, doc.ID, img.ID, client.Target{})
	require.NoError(t, err)
	require.Len(t, res.Document.Blocks, 1)

	stored, err := ts.client.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, stored.Blocks, 1)
	assert.Equal(t, models.BlockTypeQuote, stored.Blocks[0].Type)
}

func TestBlockErrors(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	doc, err := ts.client.CreateDocument(ctx, "Errores")
	require.NoError(t, err)
	a, err := ts.client.AddBlock(ctx, doc.ID, client.AddBlock{Type: models.BlockTypeText})
	require.NoError(t, err)
	b, err := ts.client.AddBlock(ctx, doc.ID, client.AddBlock{Type: models.BlockTypeText})
	require.NoError(t, err)
	first, _ := a.Block()
	second, _ := b.Block()

	base := "/api/documents/" + doc.ID.String()
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown type", http.MethodPost, base + "/blocks", `{"type":"carousel"}`, http.StatusBadRequest},
		{"duplicate id", http.MethodPatch, base + "/blocks/" + second.ID, `{"id":"` + first.ID + `"}`, http.StatusConflict},
		{"unknown field", http.MethodPatch, base + "/blocks/" + first.ID, `{"content":{"nope":1}}`, http.StatusBadRequest},
		{"missing block", http.MethodDelete, base + "/blocks/missing", "", http.StatusNotFound},
		{"bad direction", http.MethodPost, base + "/blocks/" + first.ID + "/move", `{"direction":"left"}`, http.StatusBadRequest},
		{"missing page", http.MethodPost, base + "/blocks?chapterId=c&pageId=p", `{"type":"text"}`, http.StatusNotFound},
		{"missing document", http.MethodPost, "/api/documents/" + models.NewDocumentID().String() + "/blocks", `{"type":"text"}`, http.StatusNotFound},
		{"bad payload", http.MethodPost, base + "/blocks", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	stored, err := ts.client.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, stored.Blocks, 2)
	assert.Equal(t, first.ID, stored.Blocks[0].ID)
	assert.Equal(t, second.ID, stored.Blocks[1].ID)
}

func TestChaptersAndPages(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	doc, err := ts.client.CreateDocument(ctx, "Libro")
	require.NoError(t, err)

	res, err := ts.client.AddChapter(ctx, doc.ID, "")
	require.NoError(t, err)
	var chapter models.Chapter
	require.NoError(t, json.Unmarshal(res.Result, &chapter))
	assert.Equal(t, "Nuevo Capítulo", chapter.Title)

	res, err = ts.client.AddPage(ctx, doc.ID, chapter.ID, "Introducción")
	require.NoError(t, err)
	var page models.Page
	require.NoError(t, json.Unmarshal(res.Result, &page))

	target := client.Target{ChapterID: chapter.ID, PageID: page.ID}
	res, err = ts.client.AddBlock(ctx, doc.ID, client.AddBlock{Target: target, Type: models.BlockTypeCode})
	require.NoError(t, err)
	assert.Empty(t, res.Document.Blocks)
	require.Len(t, res.Document.Chapters[0].Pages[0].Blocks, 1)
	assert.Equal(t, models.BlockTypeCode, res.Document.Chapters[0].Pages[0].Blocks[0].Type)

	base := "/api/documents/" + doc.ID.String() + "/chapters/" + chapter.ID
	resp, _ := ts.do(t, http.MethodPatch, base, `{"title":"Capítulo 1","description":"Inicio"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodPatch, base+"/pages/"+page.ID, `{"title":"Intro"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = ts.client.AddChapter(ctx, doc.ID, "Segundo")
	require.NoError(t, err)
	resp, _ = ts.do(t, http.MethodPost, base+"/move", `{"direction":"down"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := ts.client.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, stored.Chapters, 2)
	assert.Equal(t, "Segundo", stored.Chapters[0].Title)
	assert.Equal(t, 1, stored.Chapters[0].Order)
	moved := stored.Chapters[1]
	assert.Equal(t, "Capítulo 1", moved.Title)
	assert.Equal(t, "Inicio", moved.Description)
	assert.Equal(t, 2, moved.Order)
	assert.Equal(t, "Intro", moved.Pages[0].Title)

	resp, _ = ts.do(t, http.MethodDelete, base+"/pages/"+page.ID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodDelete, base+"/pages/"+page.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	res, err = ts.client.DeleteChapter(ctx, doc.ID, chapter.ID)
	require.NoError(t, err)
	assert.Len(t, res.Document.Chapters, 1)
}

func TestRenderAndExport(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	doc, err := ts.client.CreateDocument(ctx, "Mi Guía")
	require.NoError(t, err)
	res, err := ts.client.AddBlock(ctx, doc.ID, client.AddBlock{Type: models.BlockTypeText})
	require.NoError(t, err)
	text, _ := res.Block()
	_, err = ts.client.UpdateBlock(ctx, doc.ID, text.ID, client.UpdateBlock{
		Update: blocks.Update{Content: blocks.Patch{"text": "Contenido <b>seguro</b>"}},
	})
	require.NoError(t, err)

	html, err := ts.client.Render(ctx, doc.ID)
	require.NoError(t, err)
	assert.Contains(t, html, "Contenido &lt;b&gt;seguro&lt;/b&gt;")

	resp, body := ts.do(t, http.MethodGet, "/api/documents/"+doc.ID.String()+"/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="mi_gu_a.json"`, resp.Header.Get("Content-Disposition"))

	imported, err := ts.client.Import(ctx, []byte(body))
	require.NoError(t, err)
	assert.NotEqual(t, doc.ID, imported.ID)
	require.Len(t, imported.Blocks, 1)
	assert.Equal(t, text.ID, imported.Blocks[0].ID)

	list, err := ts.client.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	resp, _ = ts.do(t, http.MethodPost, "/api/import", `{"id":"x","metadata":{}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestForeignDocumentIDs(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	resp, body := ts.do(t, http.MethodPost, "/api/import",
		`{"id":"sample-article","metadata":{"title":"Ejemplo"},"blocks":[{"id":"b1","type":"text","content":{"text":"Hola"}}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	var imported models.Document
	require.NoError(t, json.Unmarshal([]byte(body), &imported))
	assert.False(t, imported.ID.IsZero())
	require.Len(t, imported.Blocks, 1)

	resp, body = ts.do(t, http.MethodPut, "/api/documents/"+imported.ID.String(),
		`{"id":"sample-article","title":"Editado","metadata":{"title":"Editado"},"blocks":[]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	stored, err := ts.client.GetDocument(ctx, imported.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Editado", stored.Title)
	assert.Empty(t, stored.Blocks)
}

func TestReadOnlyMode(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	doc, err := ts.client.CreateDocument(ctx, "Bloqueado")
	require.NoError(t, err)

	readOnly, err := ts.client.SetReadOnly(ctx, true)
	require.NoError(t, err)
	assert.True(t, readOnly)

	_, err = ts.client.CreateDocument(ctx, "Otro")
	assert.ErrorContains(t, err, "status=403")

	// The rejected edit still comes back so the client keeps it.
	resp, body := ts.do(t, http.MethodPost, "/api/documents/"+doc.ID.String()+"/blocks", `{"type":"divider"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var failure struct {
		Error    string           `json:"error"`
		Document *models.Document `json:"document"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &failure))
	assert.Contains(t, failure.Error, "read-only")
	require.NotNil(t, failure.Document)
	require.Len(t, failure.Document.Blocks, 1)
	assert.Equal(t, models.BlockTypeDivider, failure.Document.Blocks[0].Type)

	_, err = ts.client.GetDocument(ctx, doc.ID)
	require.NoError(t, err, "reads are allowed")

	readOnly, err = ts.client.SetReadOnly(ctx, false)
	require.NoError(t, err)
	assert.False(t, readOnly)
	_, err = ts.client.CreateDocument(ctx, "Otro")
	assert.NoError(t, err)
}

func TestGenerateNotConfigured(t *testing.T) {
	ts := newTestServer(t)
	_, err := ts.client.Generate(context.Background(), client.GenerateRequest{Topic: "Go"})
	assert.ErrorContains(t, err, "status=503")

	resp, _ := ts.do(t, http.MethodPost, "/api/generate", `nope`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAssets(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	doc, err := ts.client.CreateDocument(ctx, "Galería")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 300, 150))))

	uploaded, err := ts.client.UploadAssets(ctx, doc.ID, []client.File{
		{Name: "Foto.png", Data: buf.Bytes()},
		{Name: "notas.txt", Data: []byte("hola")},
	})
	require.NoError(t, err)
	require.Len(t, uploaded, 2)
	photo := uploaded[0]
	assert.Equal(t, models.AssetTypeImage, photo.Type)
	assert.Equal(t, 300, photo.Metadata.Width)
	assert.True(t, strings.HasPrefix(photo.URL, "/assets/"))
	assert.Equal(t, models.AssetTypeDocument, uploaded[1].Type)

	resp, body := ts.do(t, http.MethodGet, photo.URL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, buf.String(), body)
	resp, _ = ts.do(t, http.MethodGet, photo.ThumbnailURL, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = ts.do(t, http.MethodPatch, "/api/assets/"+photo.ID.String()+"/metadata", `{"alt":"Una foto"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"alt":"Una foto"`)

	resp, body = ts.do(t, http.MethodGet, "/api/assets/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var backup struct {
		Files   []*models.Asset `json:"files"`
		Version string          `json:"version"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &backup))
	assert.Len(t, backup.Files, 2)
	assert.Equal(t, "1.0", backup.Version)

	require.NoError(t, ts.client.DeleteAsset(ctx, photo.ID))
	list, err := ts.client.ListAssets(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uploaded[1].ID, list[0].ID)

	err = ts.client.DeleteAsset(ctx, photo.ID)
	assert.ErrorContains(t, err, "status=404")

	resp, _ = ts.do(t, http.MethodPost, "/api/documents/"+doc.ID.String()+"/assets", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
