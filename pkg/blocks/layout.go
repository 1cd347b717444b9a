package blocks

import (
	"html/template"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

// layoutModule registers cards, separators and the button.
type layoutModule struct{}

func (layoutModule) Register(r *Registry) {
	r.Register(define(Info{
		Type: models.BlockTypeCard, Name: "Tarjeta", Description: "Tarjeta con contenido",
		Icon: "CreditCard", Category: CategoryLayout,
	}, func() Card {
		return Card{
			Title:       "Título de la Tarjeta",
			Description: "Descripción de la tarjeta con información relevante.",
			ImageURL:    sampleImageURL,
			ButtonText:  "Leer más",
			ButtonURL:   "#",
		}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeDivider, Name: "Separador", Description: "Línea separadora",
		Icon: "Minus", Category: CategoryLayout,
	}, func() Divider { return Divider{Style: "solid", Color: "gray", Thickness: "thin"} }))

	r.Register(define(Info{
		Type: models.BlockTypeSpacer, Name: "Espaciador", Description: "Espacio en blanco",
		Icon: "Space", Category: CategoryLayout,
	}, func() Spacer { return Spacer{Height: "medium"} }))

	r.Register(define(Info{
		Type: models.BlockTypeButton, Name: "Botón", Description: "Botón de acción",
		Icon: "MousePointer", Category: CategoryInteractive,
	}, func() Button {
		return Button{Text: "Botón de Acción", URL: "#", Style: "primary", Size: "medium", Alignment: "center"}
	}))
}

type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ButtonText  string `json:"buttonText"`
	ButtonURL   string `json:"buttonUrl"`
}

func (c Card) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeCard, c, params)
}

func (c Card) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textareaField("description", "Descripción", c.Description),
		urlField("imageUrl", "URL de la imagen", c.ImageURL),
		textField("buttonText", "Texto del botón", c.ButtonText),
		urlField("buttonUrl", "URL del botón", c.ButtonURL),
	}
}

type Divider struct {
	Style     string `json:"style"`
	Color     string `json:"color"`
	Thickness string `json:"thickness"`
}

func (c Divider) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeDivider, c, params)
}

func (c Divider) Fields(models.Params) []Field {
	return []Field{
		selectField("style", "Estilo", c.Style, "solid", "dashed", "dotted"),
		selectField("color", "Color", c.Color, "gray", "blue", "purple", "green"),
		selectField("thickness", "Grosor", c.Thickness, "thin", "medium", "thick"),
	}
}

type Spacer struct {
	Height string `json:"height"`
}

func (c Spacer) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeSpacer, c, params)
}

func (c Spacer) Fields(models.Params) []Field {
	return []Field{selectField("height", "Altura", c.Height, "small", "medium", "large", "xlarge")}
}

type Button struct {
	Text      string `json:"text"`
	URL       string `json:"url"`
	Style     string `json:"style"`
	Size      string `json:"size"`
	Alignment string `json:"alignment"`
}

func (c Button) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeButton, c, params)
}

func (c Button) Fields(models.Params) []Field {
	return []Field{
		textField("text", "Texto", c.Text),
		urlField("url", "URL", c.URL),
		selectField("style", "Estilo", c.Style, "primary", "secondary", "outline"),
		selectField("size", "Tamaño", c.Size, "small", "medium", "large"),
		selectField("alignment", "Alineación", c.Alignment, alignments...),
	}
}
