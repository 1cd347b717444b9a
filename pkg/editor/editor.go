// Package editor applies block, chapter and page mutations to an in-memory
// document.
//
// An Editor is owned by a single actor (one HTTP request or one websocket
// session) and is not safe for concurrent use. Persistence is a separate step
// performed by the caller with the document returned by Document.
package editor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

var (
	ErrBlockNotFound    = errors.New("block not found")
	ErrDuplicateBlockID = errors.New("duplicate block id")
	ErrChapterNotFound  = errors.New("chapter not found")
	ErrPageNotFound     = errors.New("page not found")
)

// Direction is the way a block, chapter or page moves among its siblings.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down:
		return d, nil
	}
	return "", fmt.Errorf("invalid direction %q: must be %q or %q", s, Up, Down)
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for non-fatal editor events.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Editor) { e.log = log }
}

// WithIDGenerator replaces the identifier source for new blocks, chapters and pages.
func WithIDGenerator(newID func() string) Option {
	return func(e *Editor) { e.newID = newID }
}

// Editor holds the working copy of one document together with the block
// selection and the chapter/page focus.
type Editor struct {
	registry *blocks.Registry
	doc      *models.Document
	selected string
	focus    focus
	newID    func() string
	log      zerolog.Logger
}

type focus struct {
	chapterID string
	pageID    string
}

// New returns an Editor working on a copy of doc. Colliding identifiers in
// doc are renamed.
func New(registry *blocks.Registry, doc *models.Document, opts ...Option) *Editor {
	e := &Editor{
		registry: registry,
		newID:    models.NewBlockID,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.load(doc)
	return e
}

func (e *Editor) load(doc *models.Document) {
	e.doc = doc.Clone()
	if e.doc.Blocks == nil {
		e.doc.Blocks = []models.Block{}
	}
	if renamed := NormalizeIDs(e.doc); renamed > 0 {
		e.log.Warn().Str("document", e.doc.ID.String()).Int("renamed", renamed).Msg("renamed colliding identifiers")
	}
	e.selected = ""
	e.focus = focus{}
}

// Document returns a copy of the working document.
func (e *Editor) Document() *models.Document {
	return e.doc.Clone()
}

// ReplaceDocument swaps the working document, as after an import or a
// generation. Selection and focus are cleared.
func (e *Editor) ReplaceDocument(doc *models.Document) {
	e.load(doc)
}

// Blocks returns a copy of the focused block sequence.
func (e *Editor) Blocks() []models.Block {
	seq := e.sequence()
	out := make([]models.Block, len(*seq))
	for i, b := range *seq {
		out[i] = b.Clone()
	}
	return out
}

// sequence returns the block sequence that block operations target: the
// focused page, or the document's top-level blocks.
func (e *Editor) sequence() *[]models.Block {
	if e.focus.pageID != "" {
		if p := e.page(e.focus.chapterID, e.focus.pageID); p != nil {
			return &p.Blocks
		}
	}
	return &e.doc.Blocks
}

func indexOf(seq []models.Block, id string) int {
	return slices.IndexFunc(seq, func(b models.Block) bool { return b.ID == id })
}

// uniqueID draws identifiers until one is not taken.
func (e *Editor) uniqueID(taken func(string) bool) string {
	for {
		if id := e.newID(); id != "" && !taken(id) {
			return id
		}
	}
}

// AddBlock inserts a default block of type t after the block afterID, or at
// the end when afterID is empty or absent. The new block is selected. It
// reports false and changes nothing when t is unknown.
func (e *Editor) AddBlock(t models.BlockType, afterID string) (models.Block, bool) {
	b, ok := e.registry.NewInstance(t)
	if !ok {
		e.log.Warn().Str("type", string(t)).Msg("cannot add block of unknown type")
		return models.Block{}, false
	}

	seq := e.sequence()
	b.ID = e.uniqueID(func(id string) bool { return indexOf(*seq, id) >= 0 })

	at := len(*seq)
	if afterID != "" {
		if i := indexOf(*seq, afterID); i >= 0 {
			at = i + 1
		}
	}
	*seq = slices.Insert(*seq, at, b)
	e.selected = b.ID
	return b.Clone(), true
}

// UpdateBlock merges u into the block id. A new identifier in u replaces the
// old one and must not be used by a sibling.
func (e *Editor) UpdateBlock(id string, u blocks.Update) error {
	seq := e.sequence()
	i := indexOf(*seq, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	if u.ID != "" && u.ID != id && indexOf(*seq, u.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateBlockID, u.ID)
	}

	updated, err := e.registry.Apply((*seq)[i], u)
	if err != nil {
		return err
	}
	if u.ID != "" {
		updated.ID = u.ID
		if e.selected == id {
			e.selected = u.ID
		}
	}
	(*seq)[i] = updated
	return nil
}

// DeleteBlock removes the block id, clearing the selection if it was selected.
func (e *Editor) DeleteBlock(id string) bool {
	seq := e.sequence()
	i := indexOf(*seq, id)
	if i < 0 {
		return false
	}
	*seq = slices.Delete(*seq, i, i+1)
	if e.selected == id {
		e.selected = ""
	}
	return true
}

// MoveBlock swaps the block id with its neighbour. Moving past either end is
// a no-op that reports false.
func (e *Editor) MoveBlock(id string, dir Direction) bool {
	seq := e.sequence()
	return move(*seq, indexOf(*seq, id), dir)
}

func move[T any](seq []T, i int, dir Direction) bool {
	if i < 0 {
		return false
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(seq) {
		return false
	}
	seq[i], seq[j] = seq[j], seq[i]
	return true
}

// RetypeBlock replaces the block's content and params with the defaults of
// t, keeping its identifier. An unknown t leaves the block unchanged.
func (e *Editor) RetypeBlock(id string, t models.BlockType) error {
	seq := e.sequence()
	i := indexOf(*seq, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	b, ok := e.registry.NewInstance(t)
	if !ok {
		return fmt.Errorf("%w: %q", blocks.ErrUnknownBlockType, t)
	}
	b.ID = id
	(*seq)[i] = b
	return nil
}

// Select marks the block id as the one being edited.
func (e *Editor) Select(id string) error {
	if indexOf(*e.sequence(), id) < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	e.selected = id
	return nil
}

// ClearSelection drops the selection.
func (e *Editor) ClearSelection() {
	e.selected = ""
}

// Selected returns the selected block.
func (e *Editor) Selected() (models.Block, bool) {
	if e.selected == "" {
		return models.Block{}, false
	}
	seq := *e.sequence()
	i := indexOf(seq, e.selected)
	if i < 0 {
		return models.Block{}, false
	}
	return seq[i].Clone(), true
}

// Form returns the edit form of the block id. Changes made through the form
// are merged into the working document.
func (e *Editor) Form(id string) (*blocks.Form, error) {
	seq := *e.sequence()
	i := indexOf(seq, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	current := id
	return e.registry.Edit(seq[i], func(u blocks.Update) error {
		if err := e.UpdateBlock(current, u); err != nil {
			e.log.Warn().Err(err).Str("block", current).Msg("form change rejected")
			return err
		}
		if u.ID != "" {
			current = u.ID
		}
		return nil
	}), nil
}

// ChangeField sets one form field of the block id.
func (e *Editor) ChangeField(id, key string, value any) error {
	seq := *e.sequence()
	i := indexOf(seq, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	form := e.registry.Edit(seq[i], func(u blocks.Update) error {
		return e.UpdateBlock(id, u)
	})
	return form.Change(key, value)
}
