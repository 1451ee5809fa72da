package indexer

import (
	"context"

	"github.com/tindahan-labs/tindahan/internal/domain"
	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
)

// CatalogStore reads the catalog and writes item embeddings. Embedding
// updates are the only catalog writes this core is allowed to make.
type CatalogStore interface {
	List(ctx context.Context) ([]catalog.Item, error)
	UpdateEmbedding(ctx context.Context, id string, vector []float32) error
}

// Embedder vectorizes item description text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
