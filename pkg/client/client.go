// Package client provides a Go HTTP client for the surrealblocks API.
//
// Methods mirror the server routes listed at
// [github.com/surrealdb/surrealblocks/pkg/surrealblocks.App.Run] and use the
// same [github.com/surrealdb/surrealblocks/pkg/models] types. Every error for
// a 4xx or 5xx response includes the status code and body.
//
//	c := client.NewClient("http://localhost:8080")
//	doc, err := c.CreateDocument(ctx, "Mi guía")
//	if err != nil {
//		return err
//	}
//	res, err := c.AddBlock(ctx, doc.ID, client.AddBlock{Type: models.BlockTypeText})
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/surrealdb/surrealblocks/pkg/blocks"
	"github.com/surrealdb/surrealblocks/pkg/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}
	return c.send(ctx, method, path, "application/json", bodyReader)
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.httpClient.Do(req)
}

func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// call sends a JSON request and decodes the JSON response into target.
func (c *Client) call(ctx context.Context, method, path string, body, target any) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeResponse(resp, target)
}

func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	if err := c.call(ctx, http.MethodGet, "/health", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CatalogGroup is one category of the block catalog. Default contents are
// left undecoded.
type CatalogGroup struct {
	Category blocks.Category `json:"category"`
	Types    []CatalogEntry  `json:"types"`
}

type CatalogEntry struct {
	blocks.Info
	DefaultContent json.RawMessage `json:"defaultContent"`
	DefaultParams  models.Params   `json:"defaultParams"`
}

// Catalog returns the block types grouped by category.
func (c *Client) Catalog(ctx context.Context) ([]CatalogGroup, error) {
	var result []CatalogGroup
	if err := c.call(ctx, http.MethodGet, "/api/blocks/types", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Documents

func (c *Client) ListDocuments(ctx context.Context) ([]*models.Summary, error) {
	var result []*models.Summary
	if err := c.call(ctx, http.MethodGet, "/api/documents", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateDocument(ctx context.Context, title string) (*models.Document, error) {
	var result models.Document
	if err := c.call(ctx, http.MethodPost, "/api/documents", map[string]string{"title": title}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetDocument(ctx context.Context, id models.DocumentID) (*models.Document, error) {
	var result models.Document
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/documents/%s", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SaveDocument(ctx context.Context, doc *models.Document) (*models.Document, error) {
	var result models.Document
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/api/documents/%s", doc.ID), doc, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteDocument(ctx context.Context, id models.DocumentID) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/documents/%s", id), nil, nil)
}

// Render returns the HTML of the document.
func (c *Client) Render(ctx context.Context, id models.DocumentID) (string, error) {
	return c.raw(ctx, fmt.Sprintf("/api/documents/%s/render", id))
}

// Export returns the export file of the document.
func (c *Client) Export(ctx context.Context, id models.DocumentID) ([]byte, error) {
	s, err := c.raw(ctx, fmt.Sprintf("/api/documents/%s/export", id))
	return []byte(s), err
}

func (c *Client) raw(ctx context.Context, path string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("API error: status=%d, body=%s", resp.StatusCode, string(body))
	}
	return string(body), nil
}

// Import saves an export file as a new document.
func (c *Client) Import(ctx context.Context, data []byte) (*models.Document, error) {
	resp, err := c.send(ctx, http.MethodPost, "/api/import", "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var result models.Document
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateRequest mirrors the generation request of the server.
type GenerateRequest struct {
	Topic           string `json:"topic"`
	Description     string `json:"description,omitempty"`
	TargetAudience  string `json:"targetAudience,omitempty"`
	ContentType     string `json:"contentType,omitempty"`
	IncludeChapters bool   `json:"includeChapters"`
	ChaptersCount   int    `json:"chaptersCount,omitempty"`
}

func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*models.Document, error) {
	var result models.Document
	if err := c.call(ctx, http.MethodPost, "/api/generate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Blocks

// Target directs block operations at a page. The zero value targets the
// top-level blocks.
type Target struct {
	ChapterID string `json:"chapterId,omitempty"`
	PageID    string `json:"pageId,omitempty"`
}

// EditResult is the response to an edit: the saved document and the value
// produced by the operation, such as the added block.
type EditResult struct {
	Document *models.Document `json:"document"`
	Result   json.RawMessage  `json:"result,omitempty"`
}

// Block decodes Result as a block.
func (r *EditResult) Block() (models.Block, error) {
	var b models.Block
	err := json.Unmarshal(r.Result, &b)
	return b, err
}

type AddBlock struct {
	Target
	Type    models.BlockType `json:"type"`
	AfterID string           `json:"afterId,omitempty"`
}

func (c *Client) AddBlock(ctx context.Context, id models.DocumentID, req AddBlock) (*EditResult, error) {
	return c.edit(ctx, http.MethodPost, fmt.Sprintf("/api/documents/%s/blocks", id), req)
}

type UpdateBlock struct {
	Target
	blocks.Update
}

func (c *Client) UpdateBlock(ctx context.Context, id models.DocumentID, blockID string, req UpdateBlock) (*EditResult, error) {
	return c.edit(ctx, http.MethodPatch, fmt.Sprintf("/api/documents/%s/blocks/%s", id, blockID), req)
}

func (c *Client) DeleteBlock(ctx context.Context, id models.DocumentID, blockID string, t Target) (*EditResult, error) {
	return c.edit(ctx, http.MethodDelete, fmt.Sprintf("/api/documents/%s/blocks/%s", id, blockID), t)
}

type moveRequest struct {
	Target
	Direction string `json:"direction"`
}

func (c *Client) MoveBlock(ctx context.Context, id models.DocumentID, blockID, direction string, t Target) (*EditResult, error) {
	return c.edit(ctx, http.MethodPost, fmt.Sprintf("/api/documents/%s/blocks/%s/move", id, blockID),
		moveRequest{Target: t, Direction: direction})
}

type retypeRequest struct {
	Target
	Type models.BlockType `json:"type"`
}

func (c *Client) RetypeBlock(ctx context.Context, id models.DocumentID, blockID string, t models.BlockType, target Target) (*EditResult, error) {
	return c.edit(ctx, http.MethodPost, fmt.Sprintf("/api/documents/%s/blocks/%s/retype", id, blockID),
		retypeRequest{Target: target, Type: t})
}

func (c *Client) BlockForm(ctx context.Context, id models.DocumentID, blockID string) (*blocks.Form, error) {
	var result blocks.Form
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/documents/%s/blocks/%s/form", id, blockID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Chapters and pages

func (c *Client) AddChapter(ctx context.Context, id models.DocumentID, title string) (*EditResult, error) {
	return c.edit(ctx, http.MethodPost, fmt.Sprintf("/api/documents/%s/chapters", id), map[string]string{"title": title})
}

func (c *Client) DeleteChapter(ctx context.Context, id models.DocumentID, chapterID string) (*EditResult, error) {
	return c.edit(ctx, http.MethodDelete, fmt.Sprintf("/api/documents/%s/chapters/%s", id, chapterID), nil)
}

func (c *Client) AddPage(ctx context.Context, id models.DocumentID, chapterID, title string) (*EditResult, error) {
	return c.edit(ctx, http.MethodPost, fmt.Sprintf("/api/documents/%s/chapters/%s/pages", id, chapterID), map[string]string{"title": title})
}

func (c *Client) edit(ctx context.Context, method, path string, body any) (*EditResult, error) {
	var result EditResult
	if err := c.call(ctx, method, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Assets

// File is one file to upload.
type File struct {
	Name string
	Data []byte
}

// UploadAssets sends files as the multipart field "files".
func (c *Client) UploadAssets(ctx context.Context, id models.DocumentID, files []File) ([]*models.Asset, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to build upload: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to build upload: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, fmt.Sprintf("/api/documents/%s/assets", id), mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	var result []*models.Asset
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListAssets(ctx context.Context, id models.DocumentID) ([]*models.Asset, error) {
	var result []*models.Asset
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/documents/%s/assets", id), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id models.AssetID) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/assets/%s", id), nil, nil)
}

// Administration

type readOnlyState struct {
	ReadOnly bool `json:"readOnly"`
}

func (c *Client) ReadOnly(ctx context.Context) (bool, error) {
	var result readOnlyState
	err := c.call(ctx, http.MethodGet, "/api/admin/read-only", nil, &result)
	return result.ReadOnly, err
}

func (c *Client) SetReadOnly(ctx context.Context, readOnly bool) (bool, error) {
	var result readOnlyState
	err := c.call(ctx, http.MethodPost, "/api/admin/read-only", readOnlyState{ReadOnly: readOnly}, &result)
	return result.ReadOnly, err
}
