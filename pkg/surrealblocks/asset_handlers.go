package surrealblocks

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/surrealdb/surrealblocks/pkg/assets"
	"github.com/surrealdb/surrealblocks/pkg/exchange"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

// maxUploadMemory is the part of a multipart upload kept in memory; the rest
// spills to temporary files.
const maxUploadMemory = 32 << 20

// handleUploadAssets stores every file of the multipart field "files" for
// the document.
//
// Response:
//   - 201 Created: the new asset records, in upload order
//   - 400 Bad Request: not a multipart body, or no files
//   - 404 Not Found: unknown document
func (a *App) handleUploadAssets(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.loadDocument(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	uploads := make([]assets.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		uploads = append(uploads, assets.Upload{Filename: fh.Filename, Data: data})
	}

	created, err := a.assets.UploadMany(r.Context(), doc.ID, uploads)
	if err != nil {
		a.log.Error().Err(err).Str("document_id", doc.ID.String()).Int("uploaded", len(created)).Msg("Asset upload failed")
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (a *App) handleListAssets(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}
	list, err := a.assets.List(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func assetID(w http.ResponseWriter, r *http.Request) (models.AssetID, bool) {
	id, err := models.ParseAssetID(mux.Vars(r)["assetId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid asset ID")
		return models.AssetID{}, false
	}
	return id, true
}

func (a *App) handleUpdateAssetMetadata(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var patch models.AssetMetadata
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	asset, err := a.assets.UpdateMetadata(r.Context(), id, patch)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

func (a *App) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	if err := a.assets.Delete(r.Context(), id); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// handleExportAssets downloads the asset index backup. With ?documentId=
// only that document's assets are listed.
func (a *App) handleExportAssets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		list []*models.Asset
		err  error
	)
	if raw := r.URL.Query().Get("documentId"); raw != "" {
		id, perr := models.ParseDocumentID(raw)
		if perr != nil {
			respondError(w, http.StatusBadRequest, "Invalid document ID")
			return
		}
		list, err = a.assets.List(ctx, id)
	} else {
		list, err = a.assets.All(ctx)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, err := exchange.ExportAssets(list, a.now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="files-index.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
