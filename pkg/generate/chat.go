package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete sends one chat-completions request and decodes the JSON object
// in the reply into target.
func (g *Generator) complete(ctx context.Context, system, prompt string, target any) error {
	body, err := json.Marshal(chatRequest{
		Model: g.settings.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: g.settings.Temperature,
		MaxTokens:   g.settings.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	endpoint := strings.TrimSuffix(g.settings.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.settings.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status=%d, body=%s", ErrUpstream, resp.StatusCode, string(data))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrUpstream, err)
	}
	if len(decoded.Choices) == 0 {
		return fmt.Errorf("%w: response has no choices", ErrUpstream)
	}

	reply := stripFences(decoded.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(reply), target); err != nil {
		return fmt.Errorf("%w: reply is not valid JSON: %v", ErrUpstream, err)
	}
	return nil
}

// stripFences removes a Markdown code fence around a reply.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
