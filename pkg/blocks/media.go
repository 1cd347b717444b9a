package blocks

import (
	"html/template"

	"github.com/surrealdb/surrealblocks/pkg/models"
)

// mediaModule registers the multimedia and file block types.
type mediaModule struct{}

func (mediaModule) Register(r *Registry) {
	r.Register(define(Info{
		Type: models.BlockTypeImage, Name: "Imagen", Description: "Imagen con caption",
		Icon: "ImageIcon", Category: CategoryMultimedia,
	}, func() Image {
		return Image{URL: sampleImageURL, Alt: "Imagen descriptiva", Caption: "Caption de la imagen", Size: "large"}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeVideoEmbed, Name: "Video Embebido", Description: "Video de YouTube o Vimeo",
		Icon: "Video", Category: CategoryMultimedia,
	}, func() VideoEmbed {
		return VideoEmbed{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Title: "Video embebido", AspectRatio: "16:9"}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeGallery, Name: "Galería", Description: "Galería de imágenes",
		Icon: "Images", Category: CategoryMultimedia,
	}, func() Gallery {
		return Gallery{
			Images: []GalleryImage{
				{URL: sampleImageURL, Alt: "Imagen 1", Caption: "Primera imagen"},
				{URL: sampleImage2URL, Alt: "Imagen 2", Caption: "Segunda imagen"},
			},
			Columns: 2,
		}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeFileDownload, Name: "Descarga de Archivo", Description: "Archivo descargable",
		Icon: "Download", Category: CategoryFiles,
	}, func() FileDownload {
		return FileDownload{
			FileName:    "documento.pdf",
			FileSize:    "2.5 MB",
			Description: "Documento importante para descargar",
			FileType:    "pdf",
		}
	}))

	r.Register(define(Info{
		Type: models.BlockTypeFileUpload, Name: "Zona de Subida", Description: "Zona de arrastrar y soltar para subir archivos",
		Icon: "Upload", Category: CategoryFiles,
	}, func() FileUpload {
		return FileUpload{
			Title:         "Subir Archivos",
			Description:   "Arrastra y suelta tus archivos aquí",
			AcceptedTypes: "image/*,video/*,audio/*,.pdf,.doc,.docx",
			MaxFiles:      5,
			ShowPreview:   true,
		}
	}))
}

type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
	Size    string `json:"size"`
}

func (c Image) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeImage, c, params)
}

func (c Image) Fields(models.Params) []Field {
	return []Field{
		urlField("url", "URL de la imagen", c.URL),
		textField("alt", "Texto alternativo", c.Alt),
		textField("caption", "Caption", c.Caption),
		selectField("size", "Tamaño", c.Size, "small", "medium", "large"),
	}
}

type VideoEmbed struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	AspectRatio string `json:"aspectRatio"`
}

func (c VideoEmbed) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeVideoEmbed, c, params)
}

func (c VideoEmbed) Fields(models.Params) []Field {
	return []Field{
		urlField("url", "URL del video", c.URL),
		textField("title", "Título", c.Title),
		selectField("aspectRatio", "Proporción", c.AspectRatio, "16:9", "4:3"),
	}
}

type GalleryImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type Gallery struct {
	Images  []GalleryImage `json:"images"`
	Columns int            `json:"columns"`
}

func (c Gallery) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeGallery, c, params)
}

func (c Gallery) Fields(models.Params) []Field {
	return []Field{
		jsonField("images", "Imágenes", c.Images),
		numberField("columns", "Columnas", c.Columns),
	}
}

type FileDownload struct {
	FileName    string `json:"fileName"`
	FileSize    string `json:"fileSize"`
	Description string `json:"description"`
	FileType    string `json:"fileType"`
}

func (c FileDownload) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeFileDownload, c, params)
}

func (c FileDownload) Fields(models.Params) []Field {
	return []Field{
		textField("fileName", "Nombre del archivo", c.FileName),
		textField("fileSize", "Tamaño", c.FileSize),
		textareaField("description", "Descripción", c.Description),
		selectField("fileType", "Tipo", c.FileType, "pdf", "doc", "jpg", "mp4", "mp3", "zip"),
	}
}

type FileUpload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	AcceptedTypes string `json:"acceptedTypes"`
	MaxFiles      int    `json:"maxFiles"`
	ShowPreview   bool   `json:"showPreview"`
}

func (c FileUpload) Render(params models.Params) (template.HTML, error) {
	return view(models.BlockTypeFileUpload, c, params)
}

func (c FileUpload) Fields(models.Params) []Field {
	return []Field{
		textField("title", "Título", c.Title),
		textareaField("description", "Descripción", c.Description),
		textField("acceptedTypes", "Tipos aceptados", c.AcceptedTypes),
		numberField("maxFiles", "Máximo de archivos", c.MaxFiles),
		checkboxField("showPreview", "Mostrar vista previa", c.ShowPreview),
	}
}
