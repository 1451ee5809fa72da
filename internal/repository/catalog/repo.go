// Package catalog persists item documents as RedisJSON values under
// tindahan:item:{id}. The storefront CRUD layer owns these documents; this
// repository reads them and writes nothing except the embedding field.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/tindahan-labs/tindahan/internal/db"
	"github.com/tindahan-labs/tindahan/internal/domain"
	domcat "github.com/tindahan-labs/tindahan/internal/domain/catalog"
)

// store is the consumer interface for item documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the catalog read and embedding-write contracts of the
// search, indexer, and pricing use cases.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns an item by ID.
func (r *Repo) Get(ctx context.Context, id string) (domcat.Item, error) {
	key := itemKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcat.Item{}, domain.ErrItemNotFound
		}
		return domcat.Item{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseJSONGetResult(raw)
}

// List returns the full catalog snapshot sorted by ID. Documents that fail
// to parse abort the read: a corrupt item is a data bug, not a condition to
// silently rank around.
func (r *Repo) List(ctx context.Context) ([]domcat.Item, error) {
	keys, err := r.store.Scan(ctx, itemKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}
	if len(keys) == 0 {
		return []domcat.Item{}, nil
	}

	payloads, err := r.store.JSONGetMulti(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("json.get multi items: %w", err)
	}

	items := make([]domcat.Item, 0, len(payloads))
	for i, raw := range payloads {
		if raw == nil {
			continue // key deleted between SCAN and fetch
		}
		item, err := parseJSONGetResult(raw)
		if err != nil {
			return nil, fmt.Errorf("parse item %s: %w", keys[i], err)
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	return items, nil
}

// UpdateEmbedding overwrites the stored embedding of an existing item.
func (r *Repo) UpdateEmbedding(ctx context.Context, id string, vector []float32) error {
	key := itemKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}

	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$.embedding", data); err != nil {
		return fmt.Errorf("json.set %s embedding: %w", key, err)
	}
	return nil
}

// Redis key pattern: tindahan:item:{id}

func itemKey(id string) string {
	return fmt.Sprintf("%sitem:%s", domain.KeyPrefix, id)
}
