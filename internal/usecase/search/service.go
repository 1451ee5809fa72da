// Package search orchestrates the query pipeline: normalize the raw query,
// embed its semantic phrase, and rank a catalog snapshot against the
// resulting spec.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tindahan-labs/tindahan/internal/domain/search/spec"
	"github.com/tindahan-labs/tindahan/internal/usecase/normalize"
)

// Service handles natural-language catalog search.
type Service struct {
	normalizer Normalizer
	embedder   Embedder
	catalog    CatalogReader
	logger     *zap.Logger
}

// New creates a search service.
func New(normalizer Normalizer, embedder Embedder, catalog CatalogReader, logger *zap.Logger) *Service {
	return &Service{normalizer: normalizer, embedder: embedder, catalog: catalog, logger: logger}
}

// Search runs the full pipeline for a literal query. The search spec is returned
// alongside the results so callers can expose what the query resolved to.
// Normalization cannot fail (it falls back internally); embedding failure
// fails the whole search, there is no safe fallback vector.
func (s *Service) Search(ctx context.Context, raw string) ([]Ranked, spec.Spec, error) {
	sp := s.normalizer.Normalize(ctx, raw)
	results, err := s.run(ctx, sp)
	return results, sp, err
}

// Suggest runs the pairing/completion pipeline: the search spec's semantic phrase
// is the inferred need, not the literal query.
func (s *Service) Suggest(ctx context.Context, raw string) ([]Ranked, normalize.ContextualResult, error) {
	res := s.normalizer.NormalizeContextual(ctx, raw)
	results, err := s.run(ctx, res.Spec)
	return results, res, err
}

func (s *Service) run(ctx context.Context, sp spec.Spec) ([]Ranked, error) {
	emb, err := s.embedder.Embed(ctx, sp.SemanticQuery)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	ranked := Rank(sp, emb.Embedding, items)
	s.logger.Debug("ranked catalog candidates",
		zap.String("semantic_query", sp.SemanticQuery),
		zap.Int("catalog_size", len(items)),
		zap.Int("results", len(ranked)),
	)
	return ranked, nil
}
