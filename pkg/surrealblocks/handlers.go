package surrealblocks

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/surrealdb/surrealblocks/pkg/assets"
	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/editor"
	"github.com/surrealdb/surrealblocks/pkg/exchange"
	"github.com/surrealdb/surrealblocks/pkg/generate"
	"github.com/surrealdb/surrealblocks/pkg/models"
	"github.com/surrealdb/surrealblocks/pkg/store"
)

// maxImportSize bounds import and document bodies.
const maxImportSize = 10 << 20

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (a *App) handleCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.registry.ByCategory())
}

func (a *App) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.store.ListDocuments(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

type createDocumentRequest struct {
	Title string `json:"title"`
}

// handleCreateDocument saves an empty document placed after every existing one.
//
// Response:
//   - 201 Created: the new document
//   - 400 Bad Request: invalid JSON payload
//   - 403 Forbidden: read-only mode
func (a *App) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := decodeOptional(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Title == "" {
		req.Title = "Nuevo Documento"
	}

	ctx := r.Context()
	order, err := a.store.NextOrder(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	doc := models.NewDocument(req.Title, order, a.now())
	if err := a.store.SaveDocument(ctx, doc); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

func (a *App) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.loadDocument(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// handleSaveDocument replaces the stored document with the request body.
// The identifier in the path wins over the one in the body. Colliding block,
// chapter and page identifiers are renamed before saving.
func (a *App) handleSaveDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	doc, err := exchange.Decode(data)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	doc.ID = id
	if doc.Title == "" {
		doc.Title = doc.Metadata.Title
	}
	editor.NormalizeIDs(doc)

	if err := a.store.SaveDocument(r.Context(), doc); err != nil {
		a.respondSaveFailure(w, doc, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

func (a *App) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}
	if err := a.store.DeleteDocument(r.Context(), id); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleRenderDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.loadDocument(w, r)
	if !ok {
		return
	}
	html, err := a.renderer.RenderDocument(doc)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, string(html))
}

func (a *App) handleExportDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.loadDocument(w, r)
	if !ok {
		return
	}
	data, err := exchange.Export(doc)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exchange.Filename(doc.Metadata.Title)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImport saves an export file, sent as the request body, under a new
// document identifier.
func (a *App) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	doc, err := exchange.Import(data, a.now())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if err := a.store.SaveDocument(r.Context(), doc); err != nil {
		a.respondSaveFailure(w, doc, err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

// handleGenerate drafts a document with the completion service and saves it.
//
// Response:
//   - 201 Created: the generated document
//   - 400 Bad Request: missing topic or unknown content type
//   - 502 Bad Gateway: the completion service failed
//   - 503 Service Unavailable: no API key configured
func (a *App) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	doc, err := a.generator.Generate(ctx, req)
	if err != nil {
		a.log.Error().Err(err).Str("topic", req.Topic).Msg("Generation failed")
		respondError(w, statusFor(err), err.Error())
		return
	}
	if err := a.store.SaveDocument(ctx, doc); err != nil {
		a.respondSaveFailure(w, doc, err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

type readOnlyState struct {
	ReadOnly bool `json:"readOnly"`
}

func (a *App) handleGetReadOnly(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, readOnlyState{ReadOnly: a.IsReadOnly()})
}

func (a *App) handleSetReadOnly(w http.ResponseWriter, r *http.Request) {
	var req readOnlyState
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	a.SetReadOnly(req.ReadOnly)
	respondJSON(w, http.StatusOK, readOnlyState{ReadOnly: a.IsReadOnly()})
}

// documentID parses the {id} route variable, answering 400 when it is invalid.
func documentID(w http.ResponseWriter, r *http.Request) (models.DocumentID, bool) {
	id, err := models.ParseDocumentID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid document ID")
		return models.DocumentID{}, false
	}
	return id, true
}

// loadDocument fetches the document named by the {id} route variable. It
// writes the error response itself and reports false when there is none.
func (a *App) loadDocument(w http.ResponseWriter, r *http.Request) (*models.Document, bool) {
	id, ok := documentID(w, r)
	if !ok {
		return nil, false
	}
	doc, err := a.store.GetDocument(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if doc == nil {
		respondError(w, http.StatusNotFound, "Document not found")
		return nil, false
	}
	return doc, true
}

// saveFailure is returned when a change was applied but could not be stored.
// The document is the in-memory result so the client keeps the edit.
type saveFailure struct {
	Error    string           `json:"error"`
	Document *models.Document `json:"document"`
}

func (a *App) respondSaveFailure(w http.ResponseWriter, doc *models.Document, err error) {
	a.log.Error().Err(err).Str("document_id", doc.ID.String()).Msg("Failed to save document")
	respondJSON(w, statusFor(err), saveFailure{Error: err.Error(), Document: doc})
}

// statusFor maps an error from the editing stack to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrReadOnly):
		return http.StatusForbidden
	case errors.Is(err, editor.ErrDuplicateBlockID):
		return http.StatusConflict
	case errors.Is(err, editor.ErrBlockNotFound),
		errors.Is(err, editor.ErrChapterNotFound),
		errors.Is(err, editor.ErrPageNotFound),
		errors.Is(err, assets.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, blocks.ErrUnknownBlockType),
		errors.Is(err, blocks.ErrUnknownField),
		errors.Is(err, blocks.ErrInvalidValue),
		errors.Is(err, exchange.ErrInvalidDocument),
		errors.Is(err, generate.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, generate.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, generate.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeOptional decodes a JSON body into v. An empty body leaves v unchanged.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
