package domain

import "context"

// Generator is the text generation contract shared by all LLM provider
// adapters. The prompt is a single fully rendered string; the response is
// the raw model output, fences and all. Callers own prompt construction
// and output parsing.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
