// Package indexer is the offline re-embedding job: it rebuilds the stored
// embedding of every catalog item with a bounded worker pool. Re-running it
// is safe, prior embeddings are simply overwritten.
package indexer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
	"github.com/tindahan-labs/tindahan/internal/metrics"
)

// DefaultWorkers bounds concurrency against the embedding provider and the
// catalog store. The job must never fan out unbounded over the catalog.
const DefaultWorkers = 4

// Result is the outcome of one reindex run.
type Result struct {
	Processed int
	Failed    int
	Duration  time.Duration
}

// Service runs bulk catalog re-embedding.
type Service struct {
	store    CatalogStore
	embedder Embedder
	workers  int
	logger   *zap.Logger
}

// New creates an indexer service.
func New(store CatalogStore, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{store: store, embedder: embedder, workers: DefaultWorkers, logger: logger}
}

// WithWorkers configures the worker pool size.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// Reindex re-embeds every catalog item. A failure on one item is logged,
// counted, and skipped; the batch always runs to completion. Only a failure
// to read the catalog itself aborts the run.
func (s *Service) Reindex(ctx context.Context) (Result, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list catalog: %w", err)
	}

	start := time.Now()

	jobs := make(chan catalog.Item)
	var wg sync.WaitGroup
	var processed, failed atomic.Int64

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				if err := s.reindexItem(ctx, item); err != nil {
					failed.Add(1)
					metrics.ReindexItemsTotal.WithLabelValues("failed").Inc()
					s.logger.Warn("skipping item, re-embedding failed",
						zap.String("item_id", item.ID),
						zap.Error(err),
					)
					continue
				}
				processed.Add(1)
				metrics.ReindexItemsTotal.WithLabelValues("ok").Inc()
			}
		}()
	}

	for _, item := range items {
		select {
		case <-ctx.Done():
			// Stop feeding; in-flight items finish.
		case jobs <- item:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()

	result := Result{
		Processed: int(processed.Load()),
		Failed:    int(failed.Load()),
		Duration:  time.Since(start),
	}
	s.logger.Info("catalog reindex finished",
		zap.Int("processed", result.Processed),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", result.Duration),
	)
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("reindex interrupted: %w", err)
	}
	return result, nil
}

func (s *Service) reindexItem(ctx context.Context, item catalog.Item) error {
	emb, err := s.embedder.Embed(ctx, BuildItemText(item))
	if err != nil {
		return fmt.Errorf("embed item: %w", err)
	}
	if err := s.store.UpdateEmbedding(ctx, item.ID, emb.Embedding); err != nil {
		return fmt.Errorf("store embedding: %w", err)
	}
	return nil
}
