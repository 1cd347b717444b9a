// Package generate drafts documents with an OpenAI-compatible
// chat-completions API.
//
// Generation runs in two steps. The first call asks for the outline of the
// document. The second step asks for the blocks: one call per page when the
// request wants chapters, or a single call for an article. Replies are turned
// into a [models.Document] through the block registry, so every generated
// block starts from its type's defaults and unknown types are dropped.
//
// Nothing is retried. A failed outline call fails the generation; a failed
// page call is logged and that page is left empty.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("API Key de OpenAI no configurada")
	// ErrInvalidRequest is returned for requests without a topic or with an
	// unknown content type.
	ErrInvalidRequest = errors.New("invalid generation request")
	// ErrUpstream wraps failures of the completion service.
	ErrUpstream = errors.New("generation service error")
)

// ContentType is the kind of document to draft.
type ContentType string

const (
	ContentTypeArticle       ContentType = "article"
	ContentTypeTutorial      ContentType = "tutorial"
	ContentTypeGuide         ContentType = "guide"
	ContentTypeDocumentation ContentType = "documentation"
)

const (
	// DefaultChaptersCount is used when a request with chapters leaves the count unset.
	DefaultChaptersCount = 3

	generatedCategory = "generated"
	generatedAuthor   = "AI Generator"
	generatedTag      = "ai-generated"
)

// Request describes the document to draft.
type Request struct {
	Topic           string      `json:"topic"`
	Description     string      `json:"description,omitempty"`
	TargetAudience  string      `json:"targetAudience,omitempty"`
	ContentType     ContentType `json:"contentType"`
	IncludeChapters bool        `json:"includeChapters"`
	ChaptersCount   int         `json:"chaptersCount,omitempty"`
}

func (r Request) normalize() (Request, error) {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		return r, fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	switch r.ContentType {
	case "":
		r.ContentType = ContentTypeArticle
	case ContentTypeArticle, ContentTypeTutorial, ContentTypeGuide, ContentTypeDocumentation:
	default:
		return r, fmt.Errorf("%w: unknown content type %q", ErrInvalidRequest, r.ContentType)
	}
	if r.IncludeChapters && r.ChaptersCount <= 0 {
		r.ChaptersCount = DefaultChaptersCount
	}
	return r, nil
}

// Settings configures the completion service.
type Settings struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	PageDelay   time.Duration `yaml:"page_delay"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4",
		Temperature: 0.7,
		MaxTokens:   2000,
		PageDelay:   time.Second,
	}
}

// Generator drafts documents.
type Generator struct {
	settings   Settings
	registry   *blocks.Registry
	httpClient *http.Client
	now        func() time.Time
	log        zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithHTTPClient replaces the HTTP client used for completion calls.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Generator) { g.httpClient = c }
}

func WithLogger(log zerolog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New returns a Generator that builds blocks from registry.
func New(registry *blocks.Registry, settings Settings, opts ...Option) *Generator {
	g := &Generator{
		settings: settings,
		registry: registry,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		now: time.Now,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configured reports whether an API key is set.
func (g *Generator) Configured() bool {
	return g.settings.APIKey != ""
}

// generatedBlock is a block as described by the completion service.
type generatedBlock struct {
	Type    models.BlockType `json:"type"`
	Content json.RawMessage  `json:"content"`
}

type blocksReply struct {
	Blocks []generatedBlock `json:"blocks"`
}

// pageReply is a page's content; a title or description it carries replaces
// the outline's.
type pageReply struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Blocks      []generatedBlock `json:"blocks"`
}

type outlinePage struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	blocks      []generatedBlock
}

type outlineChapter struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Order       int           `json:"order"`
	Pages       []outlinePage `json:"pages"`
}

type outline struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Chapters    []outlineChapter `json:"chapters"`
	blocks      []generatedBlock
}

// Generate drafts a document for req.
func (g *Generator) Generate(ctx context.Context, req Request) (*models.Document, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}
	req, err := req.normalize()
	if err != nil {
		return nil, err
	}

	var out outline
	if err := g.complete(ctx, structureSystem, structurePrompt(req), &out); err != nil {
		return nil, fmt.Errorf("failed to generate structure: %w", err)
	}

	if req.IncludeChapters && len(out.Chapters) > 0 {
		if err := g.fillPages(ctx, req, &out); err != nil {
			return nil, err
		}
	} else {
		var reply blocksReply
		if err := g.complete(ctx, articleSystem, contentPrompt(out.Title, out.Description, req), &reply); err != nil {
			g.log.Warn().Err(err).Str("topic", req.Topic).Msg("article content generation failed")
		}
		out.blocks = reply.Blocks
	}

	return g.convert(out, req), nil
}

// fillPages requests the blocks of every page in turn, pausing between calls.
func (g *Generator) fillPages(ctx context.Context, req Request, out *outline) error {
	first := true
	for i := range out.Chapters {
		for j := range out.Chapters[i].Pages {
			if !first {
				if err := g.pause(ctx); err != nil {
					return err
				}
			}
			first = false

			page := &out.Chapters[i].Pages[j]
			var reply pageReply
			if err := g.complete(ctx, pageSystem, contentPrompt(page.Title, page.Description, req), &reply); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				g.log.Warn().Err(err).
					Str("chapter", out.Chapters[i].Title).
					Str("page", page.Title).
					Msg("page content generation failed")
				continue
			}
			page.blocks = reply.Blocks
			if title := strings.TrimSpace(reply.Title); title != "" {
				page.Title = title
			}
			if desc := strings.TrimSpace(reply.Description); desc != "" {
				page.Description = desc
			}
		}
	}
	return nil
}

func (g *Generator) pause(ctx context.Context) error {
	if g.settings.PageDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.settings.PageDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// convert builds the document for a completed outline.
func (g *Generator) convert(out outline, req Request) *models.Document {
	doc := models.NewDocument(out.Title, 1, g.now())
	doc.Category = generatedCategory
	doc.Metadata.Description = out.Description
	doc.Metadata.Author = generatedAuthor
	doc.Metadata.Tags = []string{string(req.ContentType), generatedTag}

	if req.IncludeChapters && len(out.Chapters) > 0 {
		doc.Chapters = make([]models.Chapter, 0, len(out.Chapters))
		for _, ch := range out.Chapters {
			chapter := models.Chapter{
				ID:          models.NewBlockID(),
				Title:       ch.Title,
				Description: ch.Description,
				Order:       ch.Order,
				Pages:       make([]models.Page, 0, len(ch.Pages)),
			}
			for _, p := range ch.Pages {
				chapter.Pages = append(chapter.Pages, models.Page{
					ID:          models.NewBlockID(),
					Title:       p.Title,
					Description: p.Description,
					Order:       p.Order,
					Blocks:      g.convertBlocks(p.blocks),
				})
			}
			doc.Chapters = append(doc.Chapters, chapter)
		}
		return doc
	}

	doc.Blocks = g.convertBlocks(out.blocks)
	return doc
}

func (g *Generator) convertBlocks(generated []generatedBlock) []models.Block {
	out := make([]models.Block, 0, len(generated))
	for _, gb := range generated {
		b, err := g.registry.Overlay(gb.Type, gb.Content)
		if err != nil {
			g.log.Warn().Err(err).Str("block_type", string(gb.Type)).Msg("dropping generated block")
			continue
		}
		b.ID = models.NewBlockID()
		out = append(out, b)
	}
	return out
}
