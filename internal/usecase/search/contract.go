package search

import (
	"context"

	"github.com/tindahan-labs/tindahan/internal/domain"
	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
	"github.com/tindahan-labs/tindahan/internal/domain/search/spec"
	"github.com/tindahan-labs/tindahan/internal/usecase/normalize"
)

// Normalizer turns a raw query into a search spec. Never fails.
type Normalizer interface {
	Normalize(ctx context.Context, raw string) spec.Spec
	NormalizeContextual(ctx context.Context, raw string) normalize.ContextualResult
}

// Embedder vectorizes the semantic query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// CatalogReader reads the catalog snapshot the ranker scores against.
type CatalogReader interface {
	List(ctx context.Context) ([]catalog.Item, error)
}
