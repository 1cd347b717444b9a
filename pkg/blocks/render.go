package blocks

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/gosimple/slug"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

//go:embed views/*.tmpl
var viewFS embed.FS

var views = template.Must(template.New("blocks").Funcs(template.FuncMap{
	"choose":   choose,
	"param":    paramString,
	"embedURL": EmbedURL,
	"inc":      func(i int) int { return i + 1 },
}).ParseFS(viewFS, "views/*.tmpl"))

type viewData struct {
	Content any
	Params  models.Params
}

// view executes the template named after the block type.
func view(t models.BlockType, c Content, params models.Params) (template.HTML, error) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, string(t), viewData{Content: c, Params: params}); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", t, err)
	}
	return template.HTML(buf.String()), nil
}

// choose returns value when it is one of allowed, and fallback otherwise.
func choose(value, fallback string, allowed ...string) string {
	if slices.Contains(allowed, value) {
		return value
	}
	return fallback
}

// EmbedURL converts a YouTube or Vimeo watch URL to its player URL. Other
// URLs are returned unchanged.
func EmbedURL(url string) string {
	if i := strings.Index(url, "youtube.com/watch?v="); i >= 0 {
		id := url[i+len("youtube.com/watch?v="):]
		id, _, _ = strings.Cut(id, "&")
		return "https://www.youtube.com/embed/" + id
	}
	if i := strings.Index(url, "youtu.be/"); i >= 0 {
		id := url[i+len("youtu.be/"):]
		id, _, _ = strings.Cut(id, "?")
		return "https://www.youtube.com/embed/" + id
	}
	if i := strings.Index(url, "vimeo.com/"); i >= 0 {
		id := url[i+len("vimeo.com/"):]
		return "https://player.vimeo.com/video/" + id
	}
	return url
}

// Renderer dispatches blocks to the view of their type.
type Renderer struct {
	registry *Registry
}

// NewRenderer returns a Renderer over the given registry.
func NewRenderer(registry *Registry) *Renderer {
	return &Renderer{registry: registry}
}

// Render returns the view of b. It never fails: an unknown type or broken
// content renders as an error element for this block only.
func (r *Renderer) Render(b models.Block) template.HTML {
	d, ok := r.registry.Lookup(b.Type)
	if !ok {
		return errorView(fmt.Sprintf("block type %q not found", b.Type))
	}
	content, err := d.Decode(b.Content)
	if err != nil {
		return errorView(err.Error())
	}
	params := d.DefaultParams().Merge(b.Params)
	out, err := content.Render(params)
	if err != nil {
		return errorView(err.Error())
	}
	return out
}

// RenderBlocks renders a block sequence in order.
func (r *Renderer) RenderBlocks(blocks []models.Block) template.HTML {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(string(r.blockView(b)))
	}
	return template.HTML(sb.String())
}

func (r *Renderer) blockView(b models.Block) template.HTML {
	var buf bytes.Buffer
	err := views.ExecuteTemplate(&buf, "block", renderedBlock{ID: b.ID, Type: b.Type, HTML: r.Render(b)})
	if err != nil {
		return errorView(err.Error())
	}
	return template.HTML(buf.String())
}

type renderedBlock struct {
	ID   string
	Type models.BlockType
	HTML template.HTML
}

type renderedPage struct {
	Anchor      string
	Title       string
	Description string
	Blocks      template.HTML
}

type renderedChapter struct {
	Anchor      string
	Title       string
	Description string
	Pages       []renderedPage
}

type documentView struct {
	Document *models.Document
	Blocks   template.HTML
	Chapters []renderedChapter
}

// RenderDocument renders the whole document: branding, top-level blocks and
// the chapter outline with its pages.
func (r *Renderer) RenderDocument(doc *models.Document) (template.HTML, error) {
	used := make(map[string]bool)
	anchor := func(title string) string {
		base := slug.Make(title)
		if base == "" {
			base = "section"
		}
		s := base
		for n := 2; used[s]; n++ {
			s = fmt.Sprintf("%s-%d", base, n)
		}
		used[s] = true
		return s
	}

	data := documentView{Document: doc, Blocks: r.RenderBlocks(doc.Blocks)}
	for _, ch := range doc.Chapters {
		rc := renderedChapter{Anchor: anchor(ch.Title), Title: ch.Title, Description: ch.Description}
		for _, p := range ch.Pages {
			rc.Pages = append(rc.Pages, renderedPage{
				Anchor:      anchor(ch.Title + " " + p.Title),
				Title:       p.Title,
				Description: p.Description,
				Blocks:      r.RenderBlocks(p.Blocks),
			})
		}
		data.Chapters = append(data.Chapters, rc)
	}

	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, "document", data); err != nil {
		return "", fmt.Errorf("failed to render document %s: %w", doc.ID, err)
	}
	return template.HTML(buf.String()), nil
}

func errorView(message string) template.HTML {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, "block-error", message); err != nil {
		return template.HTML(`<div class="block-error" role="alert">Error: ` + template.HTMLEscapeString(message) + `</div>`)
	}
	return template.HTML(buf.String())
}
