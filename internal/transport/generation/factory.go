// Package generation selects the configured generation provider.
package generation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tindahan-labs/tindahan/internal/domain"
	"github.com/tindahan-labs/tindahan/internal/transport/huggingface"
	"github.com/tindahan-labs/tindahan/internal/transport/ollama"
	"github.com/tindahan-labs/tindahan/internal/transport/openai"
)

// Config holds the provider-independent generation settings.
type Config struct {
	Provider    string // openai, huggingface, ollama
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Logger      *zap.Logger
}

// New builds the generation provider named by cfg.Provider.
func New(cfg *Config) (domain.Generator, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewGenerator(&openai.GeneratorConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Logger:      cfg.Logger,
		}), nil
	case "huggingface":
		return huggingface.NewGenerator(&huggingface.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Logger:      cfg.Logger,
		}), nil
	case "ollama":
		return ollama.NewGenerator(&ollama.Config{
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Logger:      cfg.Logger,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}
}
