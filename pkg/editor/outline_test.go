package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealblocks/pkg/editor"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

func TestChapterLifecycle(t *testing.T) {
	e := newEditor(t)
	one := e.AddChapter("")
	two := e.AddChapter("Dos")
	three := e.AddChapter("Tres")

	assert.Equal(t, "Nuevo Capítulo", one.Title)
	assert.Equal(t, 3, three.Order)

	require.True(t, e.MoveChapter(three.ID, editor.Up))
	chapters := e.Chapters()
	assert.Equal(t, []string{one.ID, three.ID, two.ID}, []string{chapters[0].ID, chapters[1].ID, chapters[2].ID})
	for i, ch := range chapters {
		assert.Equal(t, i+1, ch.Order)
	}
	assert.False(t, e.MoveChapter(one.ID, editor.Up))

	title := "Uno"
	require.NoError(t, e.UpdateChapter(one.ID, editor.OutlineUpdate{Title: &title}))
	assert.Equal(t, "Uno", e.Chapters()[0].Title)
	assert.ErrorIs(t, e.UpdateChapter("missing", editor.OutlineUpdate{}), editor.ErrChapterNotFound)

	require.True(t, e.DeleteChapter(one.ID))
	chapters = e.Chapters()
	require.Len(t, chapters, 2)
	assert.Equal(t, 1, chapters[0].Order)
	assert.Equal(t, 2, chapters[1].Order)
	assert.False(t, e.DeleteChapter(one.ID))
}

func TestPageLifecycle(t *testing.T) {
	e := newEditor(t)
	ch := e.AddChapter("Capítulo")

	p1, err := e.AddPage(ch.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Nueva Página", p1.Title)
	p2, err := e.AddPage(ch.ID, "Segunda")
	require.NoError(t, err)
	assert.Equal(t, 2, p2.Order)

	_, err = e.AddPage("missing", "x")
	assert.ErrorIs(t, err, editor.ErrChapterNotFound)

	require.True(t, e.MovePage(ch.ID, p2.ID, editor.Up))
	pages := e.Chapters()[0].Pages
	assert.Equal(t, p2.ID, pages[0].ID)
	assert.Equal(t, 1, pages[0].Order)

	desc := "Detalle"
	require.NoError(t, e.UpdatePage(ch.ID, p1.ID, editor.OutlineUpdate{Description: &desc}))
	assert.ErrorIs(t, e.UpdatePage(ch.ID, "missing", editor.OutlineUpdate{}), editor.ErrPageNotFound)

	require.True(t, e.DeletePage(ch.ID, p2.ID))
	pages = e.Chapters()[0].Pages
	require.Len(t, pages, 1)
	assert.Equal(t, "Detalle", pages[0].Description)
	assert.Equal(t, 1, pages[0].Order)
}

func TestFocusTargetsPageBlocks(t *testing.T) {
	e := newEditor(t)
	top, _ := e.AddBlock(models.BlockTypeText, "")
	ch := e.AddChapter("")
	p, err := e.AddPage(ch.ID, "")
	require.NoError(t, err)

	require.NoError(t, e.Focus(ch.ID, p.ID))
	_, ok := e.Selected()
	assert.False(t, ok)
	assert.Empty(t, e.Blocks())

	inPage, ok := e.AddBlock(models.BlockTypeCode, "")
	require.True(t, ok)
	assert.Len(t, e.Blocks(), 1)
	assert.False(t, e.DeleteBlock(top.ID))

	doc := e.Document()
	assert.Equal(t, inPage.ID, doc.Chapters[0].Pages[0].Blocks[0].ID)
	assert.Len(t, doc.Blocks, 1)

	chapterID, pageID := e.Focused()
	assert.Equal(t, ch.ID, chapterID)
	assert.Equal(t, p.ID, pageID)

	require.True(t, e.DeleteChapter(ch.ID))
	chapterID, pageID = e.Focused()
	assert.Empty(t, chapterID)
	assert.Empty(t, pageID)
	assert.Equal(t, []string{top.ID}, ids(e.Blocks()))

	assert.ErrorIs(t, e.Focus("missing", "x"), editor.ErrChapterNotFound)
}
