package blocks

import (
	"html/template"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

// contentModule registers lists, tips, code and the structured content blocks.
type contentModule struct{}

func (contentModule) Register(r *Registry) {
	r.Register(define(Info{
		Type: models.BlockTypeList, Name: "Lista", Description: "Lista con bullets o números",
		Icon: "List", Category: CategoryContent,
	}, func() List {
		return List{Items: []string{"Elemento 1", "Elemento 2", "Elemento 3"}}
	}).withParams(models.Params{"style": "bullet", "color": "indigo"}))

	r.Register(define(Info{
		Type: models.BlockTypePromptExample, Name: "Ejemplo de Prompt", Description: "Caja destacada para ejemplos",
		Icon: "MessageSquare", Category: CategoryContent,
	}, func() PromptExample {
		return PromptExample{Title: "Ejemplo de Prompt:", Text: "Escribe aquí tu ejemplo..."}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeProTip, Name: "Pro Tip", Description: "Consejo destacado con icono",
		Icon: "Lightbulb", Category: CategoryContent,
	}, func() ProTip {
		return ProTip{Title: "Pro Tip:", Text: "Escribe aquí tu consejo...", Icon: "Lightbulb"}
	}).withParams(models.Params{"color": "yellow"}))

	r.Register(define(Info{
		Type: models.BlockTypeCode, Name: "Código", Description: "Bloque de código con sintaxis",
		Icon: "Code", Category: CategoryContent,
	}, func() Code {
		return Code{Code: `console.log("Hello World");`, Language: "javascript", Title: "Código de ejemplo"}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeDownload, Name: "Descarga", Description: "Sección de archivos descargables",
		Icon: "Download", Category: CategoryContent,
	}, func() Download {
		return Download{Title: "Descargas", Description: "Archivos disponibles", Files: []DownloadFile{}}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeKeyComponents, Name: "Componentes Clave", Description: "Lista de componentes importantes",
		Icon: "Package", Category: CategoryContent,
	}, func() KeyComponents {
		return KeyComponents{Title: "Componentes Clave", Components: []Component{}}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeFeatureCards, Name: "Cards de Características", Description: "Grid de cards con iconos",
		Icon: "Grid3X3", Category: CategoryContent,
	}, func() FeatureCards { return FeatureCards{Cards: []FeatureCard{}} }))
}

type List struct {
	Items []string `json:"items"`
}

func (c List) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeList, c, params)
}

func (c List) Fields(params models.Params) []Field {
	return []Field{
		listField("items", "Elementos", c.Items),
		paramSelect(params, "style", "Estilo", "bullet", "bullet", "number"),
		paramSelect(params, "color", "Color", "indigo", "indigo", "purple", "blue", "green", "yellow", "red", "gray"),
	}
}

type PromptExample struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (c PromptExample) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypePromptExample, c, params)
}

func (c PromptExample) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textareaField("text", "Ejemplo", c.Text),
	}
}

type ProTip struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Icon  string `json:"icon"`
}

func (c ProTip) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeProTip, c, params)
}

func (c ProTip) Fields(params models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textareaField("text", "Consejo", c.Text),
		selectField("icon", "Icono", c.Icon, "Lightbulb", "Eye", "Star", "Zap"),
		paramSelect(params, "color", "Color", "yellow", "yellow", "blue", "green"),
	}
}

type Code struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Title    string `json:"title"`
}

func (c Code) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeCode, c, params)
}

func (c Code) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		selectField("language", "Lenguaje", c.Language, "javascript", "typescript", "html", "css", "json", "python"),
		textareaField("code", "Código", c.Code),
	}
}

type DownloadFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Download struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Files       []DownloadFile `json:"files"`
}

func (c Download) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeDownload, c, params)
}

func (c Download) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textareaField("description", "Descripción", c.Description),
		jsonField("files", "Archivos", c.Files),
	}
}

type Component struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Props       []string `json:"props"`
}

type KeyComponents struct {
	Title      string      `json:"title"`
	Components []Component `json:"components"`
}

func (c KeyComponents) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeKeyComponents, c, params)
}

func (c KeyComponents) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		jsonField("components", "Componentes", c.Components),
	}
}

type FeatureCard struct {
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type FeatureCards struct {
	Cards []FeatureCard `json:"cards"`
}

func (c FeatureCards) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeFeatureCards, c, params)
}

func (c FeatureCards) Fields(models.Params) []Field {
	return []Field{jsonField("cards", "Tarjetas", c.Cards)}
}
