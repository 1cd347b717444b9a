package surrealblocks

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/editor"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

// target names the block sequence an operation applies to: a page when both
// fields are set, the top-level blocks otherwise.
type target struct {
	ChapterID string `json:"chapterId,omitempty"`
	PageID    string `json:"pageId,omitempty"`
}

// resolve fills empty fields from the query string.
func (t *target) resolve(r *http.Request) {
	q := r.URL.Query()
	if t.ChapterID == "" {
		t.ChapterID = q.Get("chapterId")
	}
	if t.PageID == "" {
		t.PageID = q.Get("pageId")
	}
}

// editResult is the response to a successful edit.
type editResult struct {
	Document *models.Document `json:"document"`
	Result   any              `json:"result,omitempty"`
}

// edit loads the document, applies op to an editor over it and saves the
// result. op returns the value reported next to the document.
func (a *App) edit(w http.ResponseWriter, r *http.Request, t target, op func(ed *editor.Editor) (any, error)) {
	doc, ok := a.loadDocument(w, r)
	if !ok {
		return
	}

	ed := editor.New(a.registry, doc, editor.WithLogger(a.log.With().Str("document_id", doc.ID.String()).Logger()))
	if t.ChapterID != "" || t.PageID != "" {
		if err := ed.Focus(t.ChapterID, t.PageID); err != nil {
			respondError(w, statusFor(err), err.Error())
			return
		}
	}

	result, err := op(ed)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	updated := ed.Document()
	if err := a.store.SaveDocument(r.Context(), updated); err != nil {
		a.respondSaveFailure(w, updated, err)
		return
	}
	respondJSON(w, http.StatusOK, editResult{Document: updated, Result: result})
}

func findBlock(ed *editor.Editor, id string) (models.Block, error) {
	for _, b := range ed.Blocks() {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Block{}, fmt.Errorf("%w: %s", editor.ErrBlockNotFound, id)
}

type addBlockRequest struct {
	target
	Type    models.BlockType `json:"type"`
	AfterID string           `json:"afterId,omitempty"`
}

func (a *App) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	var req addBlockRequest
	if err := decodeOptional(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.resolve(r)

	a.edit(w, r, req.target, func(ed *editor.Editor) (any, error) {
		b, ok := ed.AddBlock(req.Type, req.AfterID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", blocks.ErrUnknownBlockType, req.Type)
		}
		return b, nil
	})
}

type updateBlockRequest struct {
	target
	blocks.Update
}

func (a *App) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	var req updateBlockRequest
	if err := decodeOptional(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.resolve(r)
	blockID := mux.Vars(r)["blockId"]

	a.edit(w, r, req.target, func(ed *editor.Editor) (any, error) {
		if err := ed.UpdateBlock(blockID, req.Update); err != nil {
			return nil, err
		}
		id := blockID
		if req.Update.ID != "" {
			id = req.Update.ID
		}
		return findBlock(ed, id)
	})
}

func (a *App) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	var t target
	if err := decodeOptional(r, &t); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	t.resolve(r)
	blockID := mux.Vars(r)["blockId"]

	a.edit(w, r, t, func(ed *editor.Editor) (any, error) {
		if !ed.DeleteBlock(blockID) {
			return nil, fmt.Errorf("%w: %s", editor.ErrBlockNotFound, blockID)
		}
		return nil, nil
	})
}

type moveRequest struct {
	target
	Direction string `json:"direction"`
}

// decodeMove reads a move request; it answers 400 itself on bad input.
func decodeMove(w http.ResponseWriter, r *http.Request) (moveRequest, editor.Direction, bool) {
	var req moveRequest
	if err := decodeOptional(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return req, "", false
	}
	req.resolve(r)
	dir, err := editor.ParseDirection(req.Direction)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return req, "", false
	}
	return req, dir, true
}

// moved reports whether a move changed the order. Moving past either end is
// not an error.
type moved struct {
	Moved bool `json:"moved"`
}

func (a *App) handleMoveBlock(w http.ResponseWriter, r *http.Request) {
	req, dir, ok := decodeMove(w, r)
	if !ok {
		return
	}
	blockID := mux.Vars(r)["blockId"]

	a.edit(w, r, req.target, func(ed *editor.Editor) (any, error) {
		if _, err := findBlock(ed, blockID); err != nil {
			return nil, err
		}
		return moved{Moved: ed.MoveBlock(blockID, dir)}, nil
	})
}

type retypeRequest struct {
	target
	Type models.BlockType `json:"type"`
}

func (a *App) handleRetypeBlock(w http.ResponseWriter, r *http.Request) {
	var req retypeRequest
	if err := decodeOptional(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.resolve(r)
	blockID := mux.Vars(r)["blockId"]

	a.edit(w, r, req.target, func(ed *editor.Editor) (any, error) {
		if err := ed.RetypeBlock(blockID, req.Type); err != nil {
			return nil, err
		}
		return findBlock(ed, blockID)
	})
}

// handleBlockForm returns the edit form of a block. Nothing is saved.
func (a *App) handleBlockForm(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.loadDocument(w, r)
	if !ok {
		return
	}
	var t target
	t.resolve(r)

	ed := editor.New(a.registry, doc)
	if t.ChapterID != "" || t.PageID != "" {
		if err := ed.Focus(t.ChapterID, t.PageID); err != nil {
			respondError(w, statusFor(err), err.Error())
			return
		}
	}
	form, err := ed.Form(mux.Vars(r)["blockId"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, form)
}

type titleRequest struct {
	Title string `json:"title"`
}

func (a *App) handleAddChapter(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if err := decodeOptional(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	a.edit(w, r, target{}, func(ed *editor.Editor) (any, error) {
		return ed.AddChapter(req.Title), nil
	})
}

func (a *App) handleUpdateChapter(w http.ResponseWriter, r *http.Request) {
	var u editor.OutlineUpdate
	if err := decodeOptional(r, &u); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	chapterID := mux.Vars(r)["chapterId"]

	a.edit(w, r, target{}, func(ed *editor.Editor) (any, error) {
		return nil, ed.UpdateChapter(chapterID, u)
	})
}

func (a *App) handleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	chapterID := mux.Vars(r)["chapterId"]
	a.edit(w, r, target{}, func(ed *editor.Editor) (any, error) {
		if !ed.DeleteChapter(chapterID) {
			return nil, fmt.Errorf("%w: %s", editor.ErrChapterNotFound, chapterID)
		}
		return nil, nil
	})
}

func (a *App) handleMoveChapter(w http.ResponseWriter, r *http.Request) {
	_, dir, ok := decodeMove(w, r)
	if !ok {
		return
	}
	chapterID := mux.Vars(r)["chapterId"]

	a.edit(w, r, target{}, func(ed *editor.Editor) (any, error) {
		if !hasChapter(ed, chapterID) {
			return nil, fmt.Errorf("%w: %s", editor.ErrChapterNotFound, chapterID)
		}
		return moved{Moved: ed.MoveChapter(chapterID, dir)}, nil
	})
}

func hasChapter(ed *editor.Editor, id string) bool {
	for _, ch := range ed.Chapters() {
		if ch.ID == id {
			return true
		}
	}
	return false
}

func (a *App) handleAddPage(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if err := decodeOptional(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	chapterID := mux.Vars(r)["chapterId"]

	a.edit(w, r, target{}, func(ed *editor.Editor) (any, error) {
		return ed.AddPage(chapterID, req.Title)
	})
}

func (a *App) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	var u editor.OutlineUpdate
	if err := decodeOptional(r, &u); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	vars := mux.Vars(r)

	a.edit(w, r, target{}, func(ed *editor.Editor) (any, error) {
		return nil, ed.UpdatePage(vars["chapterId"], vars["pageId"], u)
	})
}

func (a *App) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	a.edit(w, r, target{}, func(ed *editor.Editor) (any, error) {
		if !ed.DeletePage(vars["chapterId"], vars["pageId"]) {
			return nil, fmt.Errorf("%w: %s", editor.ErrPageNotFound, vars["pageId"])
		}
		return nil, nil
	})
}

func (a *App) handleMovePage(w http.ResponseWriter, r *http.Request) {
	_, dir, ok := decodeMove(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	a.edit(w, r, target{}, func(ed *editor.Editor) (any, error) {
		// Focus validates both identifiers.
		if err := ed.Focus(vars["chapterId"], vars["pageId"]); err != nil {
			return nil, err
		}
		ed.FocusDocument()
		return moved{Moved: ed.MovePage(vars["chapterId"], vars["pageId"], dir)}, nil
	})
}
