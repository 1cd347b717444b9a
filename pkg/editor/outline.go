package editor

import (
	"fmt"
	"slices"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

const (
	defaultChapterTitle = "Nuevo Capítulo"
	defaultPageTitle    = "Nueva Página"
)

// OutlineUpdate changes the title or description of a chapter or page.
// Nil fields are left as they are.
type OutlineUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (u OutlineUpdate) apply(title, description *string) {
	if u.Title != nil {
		*title = *u.Title
	}
	if u.Description != nil {
		*description = *u.Description
	}
}

func (e *Editor) chapterIndex(id string) int {
	return slices.IndexFunc(e.doc.Chapters, func(c models.Chapter) bool { return c.ID == id })
}

func (e *Editor) chapter(id string) *models.Chapter {
	if i := e.chapterIndex(id); i >= 0 {
		return &e.doc.Chapters[i]
	}
	return nil
}

func pageIndex(ch *models.Chapter, id string) int {
	return slices.IndexFunc(ch.Pages, func(p models.Page) bool { return p.ID == id })
}

func (e *Editor) page(chapterID, pageID string) *models.Page {
	ch := e.chapter(chapterID)
	if ch == nil {
		return nil
	}
	if i := pageIndex(ch, pageID); i >= 0 {
		return &ch.Pages[i]
	}
	return nil
}

// Chapters returns a copy of the chapter outline.
func (e *Editor) Chapters() []models.Chapter {
	return e.doc.Clone().Chapters
}

// AddChapter appends a chapter. An empty title gets the default one.
func (e *Editor) AddChapter(title string) models.Chapter {
	if title == "" {
		title = defaultChapterTitle
	}
	ch := models.Chapter{
		ID:    e.uniqueID(func(id string) bool { return e.chapterIndex(id) >= 0 }),
		Title: title,
		Order: len(e.doc.Chapters) + 1,
		Pages: []models.Page{},
	}
	e.doc.Chapters = append(e.doc.Chapters, ch)
	return ch
}

// UpdateChapter applies u to the chapter id.
func (e *Editor) UpdateChapter(id string, u OutlineUpdate) error {
	ch := e.chapter(id)
	if ch == nil {
		return fmt.Errorf("%w: %s", ErrChapterNotFound, id)
	}
	u.apply(&ch.Title, &ch.Description)
	return nil
}

// DeleteChapter removes the chapter id and renumbers the rest. Focus on the
// chapter falls back to the document.
func (e *Editor) DeleteChapter(id string) bool {
	i := e.chapterIndex(id)
	if i < 0 {
		return false
	}
	if e.focus.chapterID == id {
		e.FocusDocument()
	}
	e.doc.Chapters = slices.Delete(e.doc.Chapters, i, i+1)
	renumberChapters(e.doc.Chapters)
	return true
}

// MoveChapter swaps the chapter id with its neighbour and renumbers.
func (e *Editor) MoveChapter(id string, dir Direction) bool {
	if !move(e.doc.Chapters, e.chapterIndex(id), dir) {
		return false
	}
	renumberChapters(e.doc.Chapters)
	return true
}

func renumberChapters(chapters []models.Chapter) {
	for i := range chapters {
		chapters[i].Order = i + 1
	}
}

func renumberPages(pages []models.Page) {
	for i := range pages {
		pages[i].Order = i + 1
	}
}

// AddPage appends a page to the chapter. An empty title gets the default one.
func (e *Editor) AddPage(chapterID, title string) (models.Page, error) {
	ch := e.chapter(chapterID)
	if ch == nil {
		return models.Page{}, fmt.Errorf("%w: %s", ErrChapterNotFound, chapterID)
	}
	if title == "" {
		title = defaultPageTitle
	}
	p := models.Page{
		ID:     e.uniqueID(func(id string) bool { return pageIndex(ch, id) >= 0 }),
		Title:  title,
		Order:  len(ch.Pages) + 1,
		Blocks: []models.Block{},
	}
	ch.Pages = append(ch.Pages, p)
	return p, nil
}

// UpdatePage applies u to a page.
func (e *Editor) UpdatePage(chapterID, pageID string, u OutlineUpdate) error {
	if e.chapter(chapterID) == nil {
		return fmt.Errorf("%w: %s", ErrChapterNotFound, chapterID)
	}
	p := e.page(chapterID, pageID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrPageNotFound, pageID)
	}
	u.apply(&p.Title, &p.Description)
	return nil
}

// DeletePage removes a page and renumbers its siblings.
func (e *Editor) DeletePage(chapterID, pageID string) bool {
	ch := e.chapter(chapterID)
	if ch == nil {
		return false
	}
	i := pageIndex(ch, pageID)
	if i < 0 {
		return false
	}
	if e.focus.pageID == pageID && e.focus.chapterID == chapterID {
		e.FocusDocument()
	}
	ch.Pages = slices.Delete(ch.Pages, i, i+1)
	renumberPages(ch.Pages)
	return true
}

// MovePage swaps a page with its neighbour within the chapter and renumbers.
func (e *Editor) MovePage(chapterID, pageID string, dir Direction) bool {
	ch := e.chapter(chapterID)
	if ch == nil {
		return false
	}
	if !move(ch.Pages, pageIndex(ch, pageID), dir) {
		return false
	}
	renumberPages(ch.Pages)
	return true
}

// Focus points block operations at the blocks of a page. The selection is
// cleared.
func (e *Editor) Focus(chapterID, pageID string) error {
	if e.chapter(chapterID) == nil {
		return fmt.Errorf("%w: %s", ErrChapterNotFound, chapterID)
	}
	if e.page(chapterID, pageID) == nil {
		return fmt.Errorf("%w: %s", ErrPageNotFound, pageID)
	}
	e.focus = focus{chapterID: chapterID, pageID: pageID}
	e.selected = ""
	return nil
}

// FocusDocument points block operations back at the top-level blocks.
func (e *Editor) FocusDocument() {
	e.focus = focus{}
	e.selected = ""
}

// Focused returns the focused chapter and page; both are empty when the
// top-level blocks are focused.
func (e *Editor) Focused() (chapterID, pageID string) {
	return e.focus.chapterID, e.focus.pageID
}
