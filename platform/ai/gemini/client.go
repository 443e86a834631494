// Package gemini wraps the Google GenAI SDK behind the narrow surface the
// analysis pipeline needs: one prompt (optionally with an inline image) in,
// raw response text out.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultModel = "gemini-1.5-flash"

// Config for the Gemini client.
type Config struct {
	APIKey string
	Model  string
	// Timeout bounds a single GenerateContent call. Zero means 90s.
	Timeout time.Duration
}

// Client calls the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// New creates a Gemini client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Image is an inline image attached to a prompt.
type Image struct {
	MIMEType string // e.g. "image/jpeg", "image/png"
	Data     []byte
}

// Generate sends the prompt (and optional image) to the model and returns the
// raw response text. One call per invocation; retrying is the caller's job.
func (c *Client) Generate(ctx context.Context, prompt string, image *Image) (string, error) {
	parts := make([]*genai.Part, 0, 2)
	if image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: image.MIMEType,
				Data:     image.Data,
			},
		})
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	contents := []*genai.Content{{
		Role:  "user",
		Parts: parts,
	}}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(callCtx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := collectText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var output string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			output += part.Text
		}
	}
	return output
}
