package models

import (
	"encoding/json"
	"time"
)

// BlockType is the tag that selects a block's descriptor in the registry.
type BlockType string

const (
	BlockTypeHeader1       BlockType = "header1"
	BlockTypeHeader2       BlockType = "header2"
	BlockTypeText          BlockType = "text"
	BlockTypeList          BlockType = "list"
	BlockTypePromptExample BlockType = "prompt-example"
	BlockTypeProTip        BlockType = "pro-tip"
	BlockTypeCode          BlockType = "code"
	BlockTypeDownload      BlockType = "download"
	BlockTypeKeyComponents BlockType = "key-components"
	BlockTypeFeatureCards  BlockType = "feature-cards"
	BlockTypeHero          BlockType = "hero"
	BlockTypeHeroGradient  BlockType = "hero-gradient"
	BlockTypeHeroImage     BlockType = "hero-image"
	BlockTypeHeroVideo     BlockType = "hero-video"
	BlockTypeHeroSplit     BlockType = "hero-split"
	BlockTypeHeroMinimal   BlockType = "hero-minimal"
	BlockTypeTitleLarge    BlockType = "title-large"
	BlockTypeSubtitle      BlockType = "subtitle"
	BlockTypeTextHighlight BlockType = "text-highlight"
	BlockTypeQuote         BlockType = "quote"
	BlockTypeImage         BlockType = "image"
	BlockTypeVideoEmbed    BlockType = "video-embed"
	BlockTypeGallery       BlockType = "gallery"
	BlockTypeButton        BlockType = "button"
	BlockTypeCard          BlockType = "card"
	BlockTypeDivider       BlockType = "divider"
	BlockTypeSpacer        BlockType = "spacer"
	BlockTypeFileDownload  BlockType = "file-download"
	BlockTypeFileUpload    BlockType = "file-upload"
)

// Params holds type-specific secondary settings of a block.
type Params map[string]any

// Clone returns a shallow copy. A nil map clones to an empty one.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a copy of p with every key of patch overwritten.
func (p Params) Merge(patch Params) Params {
	out := p.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Block is one typed, parameterized record in a document's block sequence.
type Block struct {
	ID      string          `json:"id"`
	Type    BlockType       `json:"type"`
	Content json.RawMessage `json:"content"`
	Params  Params          `json:"params"`
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := b
	if b.Content != nil {
		out.Content = append(json.RawMessage(nil), b.Content...)
	}
	if b.Params != nil {
		out.Params = b.Params.Clone()
	}
	return out
}

// Metadata describes a document for listings and publishing.
type Metadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tags        []string  `json:"tags"`
	Order       int       `json:"order"`
	Published   bool      `json:"published"`
}

// Theme names the visual theme of a document.
type Theme string

const (
	ThemeModern  Theme = "modern"
	ThemeClassic Theme = "classic"
	ThemeMinimal Theme = "minimal"
	ThemeBold    Theme = "bold"
	ThemeElegant Theme = "elegant"
)

// Branding holds per-document presentation settings.
type Branding struct {
	AccentColor string `json:"accentColor,omitempty"`
	HeaderImage string `json:"headerImage,omitempty"`
	Theme       Theme  `json:"theme,omitempty"`
}

// GlobalBranding holds site-wide presentation settings carried with the document.
type GlobalBranding struct {
	LogoURL        string `json:"logoUrl,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	FontFamily     string `json:"fontFamily,omitempty"`
}

// Page is an ordered block sequence inside a chapter.
type Page struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Order       int     `json:"order"`
	Blocks      []Block `json:"blocks"`
}

// Chapter groups pages of a document.
type Chapter struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
	Pages       []Page `json:"pages"`
}

// Document is the unit of editing, rendering and persistence.
type Document struct {
	ID             DocumentID      `json:"id"`
	Title          string          `json:"title"`
	Category       string          `json:"category"`
	Metadata       Metadata        `json:"metadata"`
	Branding       *Branding       `json:"branding,omitempty"`
	GlobalBranding *GlobalBranding `json:"globalBranding,omitempty"`
	Blocks         []Block         `json:"blocks"`
	Chapters       []Chapter       `json:"chapters,omitempty"`
}

// Document defaults for newly created documents.
const (
	DefaultCategory       = "general"
	DefaultAuthor         = "Usuario"
	DefaultAccentColor    = "#f59e0b"
	DefaultPrimaryColor   = "#6366f1"
	DefaultSecondaryColor = "#8b5cf6"
	DefaultFontFamily     = "Inter"
)

// NewDocument returns an empty document with default metadata and branding.
func NewDocument(title string, order int, now time.Time) *Document {
	return &Document{
		ID:       NewDocumentID(),
		Title:    title,
		Category: DefaultCategory,
		Metadata: Metadata{
			Title:     title,
			Author:    DefaultAuthor,
			CreatedAt: now,
			UpdatedAt: now,
			Tags:      []string{},
			Order:     order,
		},
		Branding: &Branding{
			AccentColor: DefaultAccentColor,
			Theme:       ThemeModern,
		},
		GlobalBranding: &GlobalBranding{
			PrimaryColor:   DefaultPrimaryColor,
			SecondaryColor: DefaultSecondaryColor,
			FontFamily:     DefaultFontFamily,
		},
		Blocks: []Block{},
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	out.Metadata.Tags = append([]string(nil), d.Metadata.Tags...)
	if d.Branding != nil {
		b := *d.Branding
		out.Branding = &b
	}
	if d.GlobalBranding != nil {
		g := *d.GlobalBranding
		out.GlobalBranding = &g
	}
	out.Blocks = cloneBlocks(d.Blocks)
	if d.Chapters != nil {
		out.Chapters = make([]Chapter, len(d.Chapters))
		for i, ch := range d.Chapters {
			out.Chapters[i] = ch
			out.Chapters[i].Pages = make([]Page, len(ch.Pages))
			for j, p := range ch.Pages {
				out.Chapters[i].Pages[j] = p
				out.Chapters[i].Pages[j].Blocks = cloneBlocks(p.Blocks)
			}
		}
	}
	return &out
}

func cloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// Summary is the lightweight index entry kept for each stored document.
type Summary struct {
	ID          DocumentID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Author      string     `json:"author"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Tags        []string   `json:"tags"`
	Order       int        `json:"order"`
	Published   bool       `json:"published"`
	Filename    string     `json:"filename"`
}

// Summary builds the index entry for the document.
func (d *Document) Summary() *Summary {
	return &Summary{
		ID:          d.ID,
		Title:       d.Metadata.Title,
		Description: d.Metadata.Description,
		Author:      d.Metadata.Author,
		CreatedAt:   d.Metadata.CreatedAt,
		UpdatedAt:   d.Metadata.UpdatedAt,
		Tags:        d.Metadata.Tags,
		Order:       d.Metadata.Order,
		Published:   d.Metadata.Published,
		Filename:    d.ID.String() + ".json",
	}
}
