package blocks

import (
	"html/template"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

const (
	sampleImageURL  = "https://images.pexels.com/photos/3184291/pexels-photo-3184291.jpeg"
	sampleImage2URL = "https://images.pexels.com/photos/3184292/pexels-photo-3184292.jpeg"
	heroImageURL    = "https://images.pexels.com/photos/1714208/pexels-photo-1714208.jpeg"
	heroVideoURL    = "https://www.w3schools.com/html/mov_bbb.mp4"
)

// heroModule registers the hero block types.
type heroModule struct{}

func (heroModule) Register(r *Registry) {
	r.Register(define(Info{
		Type: models.BlockTypeHero, Name: "Hero", Description: "Sección hero con gradiente y título",
		Icon: "Image", Category: CategoryLayout,
	}, func() Hero { return Hero{Title: "Nuevo Hero", Gradient: "from-indigo-500 to-purple-500"} }))

	r.Register(define(Info{
		Type: models.BlockTypeHeroGradient, Name: "Hero Gradiente", Description: "Hero con gradiente personalizable",
		Icon: "Palette", Category: CategoryHeroes,
	}, func() HeroGradient {
		return HeroGradient{Title: "Título Hero", Subtitle: "Subtítulo descriptivo", Gradient: "from-blue-600 to-purple-600"}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeHeroImage, Name: "Hero con Imagen", Description: "Hero con imagen de fondo",
		Icon: "ImageIcon", Category: CategoryHeroes,
	}, func() HeroImage {
		return HeroImage{Title: "Título Hero", Subtitle: "Subtítulo descriptivo", ImageURL: heroImageURL, Overlay: "dark"}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeHeroVideo, Name: "Hero con Video", Description: "Hero con video de fondo",
		Icon: "Video", Category: CategoryHeroes,
	}, func() HeroVideo {
		return HeroVideo{Title: "Título Hero", Subtitle: "Subtítulo descriptivo", VideoURL: heroVideoURL, Autoplay: true, Muted: true}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeHeroSplit, Name: "Hero Dividido", Description: "Hero con contenido dividido en dos columnas",
		Icon: "Columns", Category: CategoryHeroes,
	}, func() HeroSplit {
		return HeroSplit{
			Title:       "Título Principal",
			Subtitle:    "Subtítulo descriptivo",
			Description: "Descripción más detallada del contenido",
			ImageURL:    sampleImageURL,
			ButtonText:  "Comenzar",
			ButtonURL:   "#",
		}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeHeroMinimal, Name: "Hero Minimalista", Description: "Hero simple y limpio",
		Icon: "Minus", Category: CategoryHeroes,
	}, func() HeroMinimal {
		return HeroMinimal{Title: "Título Minimalista", Subtitle: "Subtítulo elegante", BackgroundColor: "bg-gray-50"}
	}))
}

type Hero struct {
	Title    string `json:"title"`
	Gradient string `json:"gradient"`
}

func (c Hero) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeHero, c, params)
}

func (c Hero) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		selectField("gradient", "Gradiente", c.Gradient,
			"from-indigo-500 to-purple-500", "from-blue-500 to-cyan-500", "from-purple-500 to-pink-500",
			"from-green-500 to-blue-500", "from-yellow-500 to-red-500", "from-pink-500 to-orange-500"),
	}
}

type HeroGradient struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Gradient string `json:"gradient"`
}

func (c HeroGradient) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeHeroGradient, c, params)
}

func (c HeroGradient) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textField("subtitle", "Subtítulo", c.Subtitle),
		selectField("gradient", "Gradiente", c.Gradient,
			"from-blue-600 to-purple-600", "from-purple-600 to-pink-600", "from-green-600 to-blue-600",
			"from-yellow-600 to-red-600", "from-indigo-600 to-cyan-600", "from-gray-900 to-gray-600"),
	}
}

type HeroImage struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
	Overlay  string `json:"overlay"`
}

func (c HeroImage) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeHeroImage, c, params)
}

func (c HeroImage) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textField("subtitle", "Subtítulo", c.Subtitle),
		urlField("imageUrl", "URL de la imagen", c.ImageURL),
		selectField("overlay", "Superposición", c.Overlay, "dark", "light", "gradient"),
	}
}

type HeroVideo struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	VideoURL string `json:"videoUrl"`
	Autoplay bool   `json:"autoplay"`
	Muted    bool   `json:"muted"`
}

func (c HeroVideo) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeHeroVideo, c, params)
}

func (c HeroVideo) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textField("subtitle", "Subtítulo", c.Subtitle),
		urlField("videoUrl", "URL del video", c.VideoURL),
		checkboxField("autoplay", "Reproducción automática", c.Autoplay),
		checkboxField("muted", "Silenciado", c.Muted),
	}
}

type HeroSplit struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ButtonText  string `json:"buttonText"`
	ButtonURL   string `json:"buttonUrl"`
}

func (c HeroSplit) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeHeroSplit, c, params)
}

func (c HeroSplit) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textField("subtitle", "Subtítulo", c.Subtitle),
		textareaField("description", "Descripción", c.Description),
		urlField("imageUrl", "URL de la imagen", c.ImageURL),
		textField("buttonText", "Texto del botón", c.ButtonText),
		urlField("buttonUrl", "URL del botón", c.ButtonURL),
	}
}

type HeroMinimal struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundColor string `json:"backgroundColor"`
}

func (c HeroMinimal) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeHeroMinimal, c, params)
}

func (c HeroMinimal) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textField("subtitle", "Subtítulo", c.Subtitle),
		selectField("backgroundColor", "Fondo", c.BackgroundColor,
			"bg-gray-50", "bg-white", "bg-blue-50", "bg-green-50", "bg-purple-50", "bg-yellow-50"),
	}
}
