// Package agent contains the model-facing pipeline: prompt construction,
// response cleanup, and the bounded retry controller around the generator.
package agent

import (
	"context"

	"solar_feasibility_backend/platform/ai/gemini"
)

// Image is an inline image forwarded to the model alongside the prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request is a single generation request: a prompt, optionally with an image.
type Request struct {
	Prompt string
	Image  *Image
}

// Generator produces one raw text response per call. Implementations make
// exactly one model invocation; retrying is the pipeline's responsibility.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeminiGenerator adapts the platform Gemini client to the Generator port.
type GeminiGenerator struct {
	client *gemini.Client
}

// NewGeminiGenerator wraps a Gemini client.
func NewGeminiGenerator(client *gemini.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	var img *gemini.Image
	if req.Image != nil {
		img = &gemini.Image{MIMEType: req.Image.MIMEType, Data: req.Image.Data}
	}
	return g.client.Generate(ctx, req.Prompt, img)
}

var _ Generator = (*GeminiGenerator)(nil)
