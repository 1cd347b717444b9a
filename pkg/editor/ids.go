package editor

import (
	"fmt"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

// NormalizeIDs makes identifiers unique within their containing sequence:
// top-level blocks, chapters, the pages of a chapter and the blocks of a
// page. Empty identifiers get a fresh one and repeats get a numeric suffix
// ("intro", "intro-2", "intro-3"). It returns how many identifiers changed.
func NormalizeIDs(doc *models.Document) int {
	renamed := normalizeBlocks(doc.Blocks)
	chapters := newIDSet()
	for i := range doc.Chapters {
		ch := &doc.Chapters[i]
		if chapters.claim(&ch.ID) {
			renamed++
		}
		pages := newIDSet()
		for j := range ch.Pages {
			p := &ch.Pages[j]
			if pages.claim(&p.ID) {
				renamed++
			}
			renamed += normalizeBlocks(p.Blocks)
		}
	}
	return renamed
}

func normalizeBlocks(seq []models.Block) int {
	renamed := 0
	ids := newIDSet()
	for i := range seq {
		if ids.claim(&seq[i].ID) {
			renamed++
		}
	}
	return renamed
}

type idSet map[string]struct{}

func newIDSet() idSet { return make(idSet) }

// claim records *id, rewriting it first when empty or already taken. It
// reports whether *id changed.
func (s idSet) claim(id *string) bool {
	original := *id
	if original == "" {
		*id = models.NewBlockID()
	} else if _, taken := s[original]; taken {
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s-%d", original, n)
			if _, taken := s[candidate]; !taken {
				*id = candidate
				break
			}
		}
	}
	s[*id] = struct{}{}
	return *id != original
}
