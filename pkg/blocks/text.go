package blocks

import (
	"html/template"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

// textModule registers the text and header block types.
type textModule struct{}

func (textModule) Register(r *Registry) {
	r.Register(define(Info{
		Type: models.BlockTypeHeader1, Name: "Título Principal", Description: "Título de nivel 1",
		Icon: "Type", Category: CategoryText,
	}, func() Header1 { return Header1{Text: "Nuevo Título Principal"} }))

	r.Register(define(Info{
		Type: models.BlockTypeHeader2, Name: "Subtítulo", Description: "Título de nivel 2",
		Icon: "Type", Category: CategoryText,
	}, func() Header2 { return Header2{Text: "Nuevo Subtítulo"} }))

	r.Register(define(Info{
		Type: models.BlockTypeText, Name: "Texto", Description: "Párrafo de texto normal",
		Icon: "AlignLeft", Category: CategoryText,
	}, func() Text { return Text{Text: "Nuevo párrafo de texto..."} }))

	r.Register(define(Info{
		Type: models.BlockTypeQuote, Name: "Cita", Description: "Cita destacada con autor",
		Icon: "Quote", Category: CategoryText,
	}, func() Quote {
		return Quote{
			Text:   "Esta es una cita inspiradora que destaca información importante.",
			Author: "Autor de la cita",
			Style:  "modern",
		}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeTextHighlight, Name: "Texto Destacado", Description: "Texto con fondo destacado",
		Icon: "Highlighter", Category: CategoryText,
	}, func() TextHighlight {
		return TextHighlight{
			Text:            "Texto destacado importante",
			BackgroundColor: "bg-yellow-100",
			TextColor:       "text-yellow-800",
			BorderColor:     "border-yellow-200",
		}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeTitleLarge, Name: "Título Grande", Description: "Título de gran tamaño",
		Icon: "Heading1", Category: CategoryHeaders,
	}, func() TitleLarge {
		return TitleLarge{Text: "Título Grande", Alignment: "center", Color: "text-gray-900"}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeSubtitle, Name: "Subtítulo", Description: "Subtítulo descriptivo",
		Icon: "Heading2", Category: CategoryHeaders,
	}, func() Subtitle {
		return Subtitle{Text: "Subtítulo", Size: "text-xl", Color: "text-gray-600"}
	}))
}

var alignments = []string{"left", "center", "right"}

type Header1 struct {
	Text string `json:"text"`
}

func (c Header1) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeHeader1, c, params)
}

func (c Header1) Fields(models.Params) []Field {
	return []Field{textField("text", "Texto", c.Text)}
}

type Header2 struct {
	Text string `json:"text"`
}

func (c Header2) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeHeader2, c, params)
}

func (c Header2) Fields(models.Params) []Field {
	return []Field{textField("text", "Texto", c.Text)}
}

type Text struct {
	Text string `json:"text"`
}

func (c Text) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeText, c, params)
}

func (c Text) Fields(models.Params) []Field {
	return []Field{textareaField("text", "Texto", c.Text)}
}

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Style  string `json:"style"`
}

func (c Quote) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeQuote, c, params)
}

func (c Quote) Fields(models.Params) []Field {
	return []Field{
		textareaField("text", "Cita", c.Text),
		textField("author", "Autor", c.Author),
		selectField("style", "Estilo", c.Style, "modern", "classic"),
	}
}

type TextHighlight struct {
	Text            string `json:"text"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	BorderColor     string `json:"borderColor"`
}

func (c TextHighlight) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeTextHighlight, c, params)
}

func (c TextHighlight) Fields(models.Params) []Field {
	return []Field{
		textareaField("text", "Texto", c.Text),
		textField("backgroundColor", "Color de fondo", c.BackgroundColor),
		textField("textColor", "Color de texto", c.TextColor),
		textField("borderColor", "Color de borde", c.BorderColor),
	}
}

type TitleLarge struct {
	Text      string `json:"text"`
	Alignment string `json:"alignment"`
	Color     string `json:"color"`
}

func (c TitleLarge) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeTitleLarge, c, params)
}

func (c TitleLarge) Fields(models.Params) []Field {
	return []Field{
		textField("text", "Texto", c.Text),
		selectField("alignment", "Alineación", c.Alignment, alignments...),
		selectField("color", "Color", c.Color, "text-gray-900", "text-blue-600", "text-purple-600", "text-green-600", "text-red-600"),
	}
}

type Subtitle struct {
	Text  string `json:"text"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

func (c Subtitle) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeSubtitle, c, params)
}

func (c Subtitle) Fields(models.Params) []Field {
	return []Field{
		textField("text", "Texto", c.Text),
		selectField("size", "Tamaño", c.Size, "text-lg", "text-xl", "text-2xl"),
		selectField("color", "Color", c.Color, "text-gray-600", "text-gray-900", "text-blue-600", "text-purple-600"),
	}
}
