package normalize

import "context"

// Generator produces raw text from a prompt. Satisfied by any of the
// provider adapters (openai, huggingface, ollama).
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
