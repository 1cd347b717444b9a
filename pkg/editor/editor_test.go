package editor_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/editor"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

func newEditor(t *testing.T, opts ...editor.Option) *editor.Editor {
	t.Helper()
	return editor.New(blocks.NewCatalogRegistry(), models.NewDocument("Prueba", 1, time.Now()), opts...)
}

func ids(bs []models.Block) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestAddThenDeleteRestoresSequence(t *testing.T) {
	e := newEditor(t)
	hero, ok := e.AddBlock(models.BlockTypeHero, "")
	require.True(t, ok)
	_, ok = e.AddBlock(models.BlockTypeText, hero.ID)
	require.True(t, ok)
	before := e.Blocks()

	added, ok := e.AddBlock(models.BlockTypeImage, hero.ID)
	require.True(t, ok)
	assert.Len(t, e.Blocks(), 3)

	require.True(t, e.DeleteBlock(added.ID))
	assert.Equal(t, before, e.Blocks())
}

func TestAddBlockPlacement(t *testing.T) {
	e := newEditor(t)
	a, _ := e.AddBlock(models.BlockTypeText, "")
	b, _ := e.AddBlock(models.BlockTypeText, "")
	c, _ := e.AddBlock(models.BlockTypeText, a.ID)
	d, _ := e.AddBlock(models.BlockTypeText, "missing")

	assert.Equal(t, []string{a.ID, c.ID, b.ID, d.ID}, ids(e.Blocks()))

	sel, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, d.ID, sel.ID)
}

func TestAddBlockUnknownType(t *testing.T) {
	e := newEditor(t)
	_, ok := e.AddBlock("carousel", "")
	assert.False(t, ok)
	assert.Empty(t, e.Blocks())
}

func TestAddBlockSkipsTakenIDs(t *testing.T) {
	seq := []string{"a", "a", "a", "b"}
	next := 0
	e := newEditor(t, editor.WithIDGenerator(func() string {
		id := seq[next]
		next++
		return id
	}))

	first, _ := e.AddBlock(models.BlockTypeText, "")
	second, _ := e.AddBlock(models.BlockTypeText, "")
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestMoveBoundariesAreNoOps(t *testing.T) {
	e := newEditor(t)
	a, _ := e.AddBlock(models.BlockTypeText, "")
	b, _ := e.AddBlock(models.BlockTypeText, "")
	before := ids(e.Blocks())

	assert.False(t, e.MoveBlock(a.ID, editor.Up))
	assert.False(t, e.MoveBlock(b.ID, editor.Down))
	assert.False(t, e.MoveBlock("missing", editor.Up))
	assert.Equal(t, before, ids(e.Blocks()))

	assert.True(t, e.MoveBlock(a.ID, editor.Down))
	assert.Equal(t, []string{b.ID, a.ID}, ids(e.Blocks()))
}

func TestImageMovesBeforeText(t *testing.T) {
	e := newEditor(t)
	hero, _ := e.AddBlock(models.BlockTypeHero, "")
	text, _ := e.AddBlock(models.BlockTypeText, "")
	image, _ := e.AddBlock(models.BlockTypeImage, text.ID)

	require.True(t, e.MoveBlock(image.ID, editor.Up))
	assert.Equal(t, []string{hero.ID, image.ID, text.ID}, ids(e.Blocks()))
}

func TestRetypeDiscardsContent(t *testing.T) {
	e := newEditor(t)
	hero, _ := e.AddBlock(models.BlockTypeHero, "")
	require.NoError(t, e.UpdateBlock(hero.ID, blocks.Update{Content: blocks.Patch{"title": "Personalizado"}}))

	require.NoError(t, e.RetypeBlock(hero.ID, models.BlockTypeText))

	reg := blocks.NewCatalogRegistry()
	want, ok := reg.NewInstance(models.BlockTypeText)
	require.True(t, ok)
	want.ID = hero.ID
	assert.Equal(t, []models.Block{want}, e.Blocks())

	assert.ErrorIs(t, e.RetypeBlock(hero.ID, "carousel"), blocks.ErrUnknownBlockType)
	assert.ErrorIs(t, e.RetypeBlock("missing", models.BlockTypeText), editor.ErrBlockNotFound)
	assert.Equal(t, []models.Block{want}, e.Blocks())
}

func TestUpdateBlockMerges(t *testing.T) {
	e := newEditor(t)
	q, _ := e.AddBlock(models.BlockTypeQuote, "")

	require.NoError(t, e.UpdateBlock(q.ID, blocks.Update{Content: blocks.Patch{"author": "Ada"}}))

	got := e.Blocks()[0]
	var content map[string]any
	require.NoError(t, json.Unmarshal(got.Content, &content))
	assert.Equal(t, "Ada", content["author"])
	assert.Equal(t, "modern", content["style"])
	assert.Equal(t, "Esta es una cita inspiradora que destaca información importante.", content["text"])
}

func TestUpdateBlockIDs(t *testing.T) {
	e := newEditor(t)
	a, _ := e.AddBlock(models.BlockTypeText, "")
	b, _ := e.AddBlock(models.BlockTypeText, "")

	err := e.UpdateBlock(b.ID, blocks.Update{ID: a.ID})
	assert.ErrorIs(t, err, editor.ErrDuplicateBlockID)

	require.NoError(t, e.UpdateBlock(b.ID, blocks.Update{ID: "intro"}))
	assert.Equal(t, []string{a.ID, "intro"}, ids(e.Blocks()))

	sel, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, "intro", sel.ID)

	assert.ErrorIs(t, e.UpdateBlock("missing", blocks.Update{}), editor.ErrBlockNotFound)
}

func TestDeleteClearsSelection(t *testing.T) {
	e := newEditor(t)
	a, _ := e.AddBlock(models.BlockTypeText, "")
	b, _ := e.AddBlock(models.BlockTypeText, "")

	require.NoError(t, e.Select(a.ID))
	require.True(t, e.DeleteBlock(b.ID))
	_, ok := e.Selected()
	assert.True(t, ok)

	require.True(t, e.DeleteBlock(a.ID))
	_, ok = e.Selected()
	assert.False(t, ok)
	assert.False(t, e.DeleteBlock(a.ID))
}

func TestChangeField(t *testing.T) {
	e := newEditor(t)
	btn, _ := e.AddBlock(models.BlockTypeButton, "")

	require.NoError(t, e.ChangeField(btn.ID, "text", "Comprar"))
	assert.ErrorIs(t, e.ChangeField(btn.ID, "style", "neon"), blocks.ErrInvalidValue)

	form, err := e.Form(btn.ID)
	require.NoError(t, err)
	field, ok := form.Field("text")
	require.True(t, ok)
	assert.Equal(t, "Comprar", field.Value)

	require.NoError(t, form.Change("id", "cta"))
	require.NoError(t, form.Change("size", "large"))
	assert.Equal(t, []string{"cta"}, ids(e.Blocks()))
	assert.JSONEq(t,
		`{"text":"Comprar","url":"#","style":"primary","size":"large","alignment":"center"}`,
		string(e.Blocks()[0].Content))
}

func TestFormReportsDuplicateID(t *testing.T) {
	e := newEditor(t)
	a, _ := e.AddBlock(models.BlockTypeText, "")
	b, _ := e.AddBlock(models.BlockTypeQuote, a.ID)

	form, err := e.Form(b.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, form.Change("id", a.ID), editor.ErrDuplicateBlockID)
	assert.Equal(t, []string{a.ID, b.ID}, ids(e.Blocks()))

	assert.ErrorIs(t, e.ChangeField(b.ID, "id", a.ID), editor.ErrDuplicateBlockID)
	require.NoError(t, form.Change("id", "cita"))
	assert.Equal(t, []string{a.ID, "cita"}, ids(e.Blocks()))
}

func TestDocumentIsACopy(t *testing.T) {
	e := newEditor(t)
	e.AddBlock(models.BlockTypeText, "")

	doc := e.Document()
	doc.Blocks = nil
	assert.Len(t, e.Blocks(), 1)
}

func TestReplaceDocument(t *testing.T) {
	e := newEditor(t)
	a, _ := e.AddBlock(models.BlockTypeText, "")
	require.NoError(t, e.Select(a.ID))

	doc := models.NewDocument("Nuevo", 1, time.Now())
	doc.Blocks = []models.Block{
		{ID: "x", Type: models.BlockTypeText},
		{ID: "x", Type: models.BlockTypeText},
		{ID: "", Type: models.BlockTypeText},
	}
	e.ReplaceDocument(doc)

	got := ids(e.Blocks())
	assert.Equal(t, "x", got[0])
	assert.Equal(t, "x-2", got[1])
	assert.NotEmpty(t, got[2])
	_, ok := e.Selected()
	assert.False(t, ok)
	assert.Equal(t, "Nuevo", e.Document().Title)
}

func TestNormalizeIDs(t *testing.T) {
	doc := models.NewDocument("Ids", 1, time.Now())
	doc.Blocks = []models.Block{{ID: "a"}, {ID: "a"}, {ID: "a"}}
	doc.Chapters = []models.Chapter{
		{ID: "c", Pages: []models.Page{{ID: "p", Blocks: []models.Block{{ID: "a"}}}, {ID: "p"}}},
		{ID: "c"},
	}

	assert.Equal(t, 4, editor.NormalizeIDs(doc))
	assert.Equal(t, []string{"a", "a-2", "a-3"}, ids(doc.Blocks))
	assert.Equal(t, "c-2", doc.Chapters[1].ID)
	assert.Equal(t, "p-2", doc.Chapters[0].Pages[1].ID)
	assert.Equal(t, "a", doc.Chapters[0].Pages[0].Blocks[0].ID)
	assert.Zero(t, editor.NormalizeIDs(doc))
}

func TestParseDirection(t *testing.T) {
	d, err := editor.ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, editor.Down, d)

	_, err = editor.ParseDirection("left")
	assert.Error(t, err)
}

func ExampleEditor_MoveBlock() {
	e := editor.New(blocks.NewCatalogRegistry(), models.NewDocument("Demo", 1, time.Now()))
	text, _ := e.AddBlock(models.BlockTypeText, "")
	image, _ := e.AddBlock(models.BlockTypeImage, text.ID)

	e.MoveBlock(image.ID, editor.Up)
	for _, b := range e.Blocks() {
		fmt.Println(b.Type)
	}
	// Output:
	// image
	// text
}
