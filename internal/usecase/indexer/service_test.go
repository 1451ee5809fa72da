package indexer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/tindahan-labs/tindahan/internal/domain"
	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
)

// --- Mocks ---

type mockStore struct {
	mu       sync.Mutex
	items    []catalog.Item
	listErr  error
	saveErr  map[string]error
	saved    map[string][]float32
	saveHits int
}

func (m *mockStore) List(_ context.Context) ([]catalog.Item, error) {
	return m.items, m.listErr
}

func (m *mockStore) UpdateEmbedding(_ context.Context, id string, vector []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.saveErr[id]; err != nil {
		return err
	}
	if m.saved == nil {
		m.saved = make(map[string][]float32)
	}
	m.saved[id] = vector
	m.saveHits++
	return nil
}

type mockEmbedder struct {
	mu      sync.Mutex
	failFor map[string]error
	texts   []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	if err := m.failFor[text]; err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.5, 0.5}}, nil
}

func threeItems() []catalog.Item {
	return []catalog.Item{
		{ID: "a", Name: "Chair A"},
		{ID: "b", Name: "Chair B"},
		{ID: "c", Name: "Chair C"},
	}
}

// --- Tests ---

func TestReindexAllItems(t *testing.T) {
	store := &mockStore{items: threeItems()}
	svc := New(store, &mockEmbedder{}, zap.NewNop()).WithWorkers(2)

	res, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Processed != 3 || res.Failed != 0 {
		t.Errorf("result = %+v, want 3 processed", res)
	}
	if len(store.saved) != 3 {
		t.Errorf("saved %d embeddings, want 3", len(store.saved))
	}
}

func TestReindexSkipsFailingItemAndContinues(t *testing.T) {
	store := &mockStore{items: threeItems()}
	emb := &mockEmbedder{failFor: map[string]error{
		"Chair B": domain.ErrEmbeddingProviderError,
	}}
	svc := New(store, emb, zap.NewNop()).WithWorkers(1)

	res, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("per-item failure must not abort the batch: %v", err)
	}
	if res.Processed != 2 || res.Failed != 1 {
		t.Errorf("result = %+v, want 2 processed / 1 failed", res)
	}
	if _, ok := store.saved["b"]; ok {
		t.Error("failed item must not be written")
	}
}

func TestReindexStoreFailureCountsAsFailed(t *testing.T) {
	store := &mockStore{
		items:   threeItems(),
		saveErr: map[string]error{"c": errors.New("write refused")},
	}
	svc := New(store, &mockEmbedder{}, zap.NewNop()).WithWorkers(1)

	res, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Processed != 2 || res.Failed != 1 {
		t.Errorf("result = %+v, want 2 processed / 1 failed", res)
	}
}

func TestReindexListFailureAborts(t *testing.T) {
	store := &mockStore{listErr: errors.New("conn refused")}
	svc := New(store, &mockEmbedder{}, zap.NewNop())

	if _, err := svc.Reindex(context.Background()); err == nil {
		t.Fatal("expected catalog read error")
	}
}

func TestReindexRerunOverwrites(t *testing.T) {
	store := &mockStore{items: threeItems()}
	svc := New(store, &mockEmbedder{}, zap.NewNop()).WithWorkers(1)

	if _, err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if store.saveHits != 6 {
		t.Errorf("saveHits = %d, want 6 (idempotent overwrite)", store.saveHits)
	}
	if len(store.saved) != 3 {
		t.Errorf("saved %d embeddings, want 3", len(store.saved))
	}
}

func TestBuildItemText(t *testing.T) {
	item := catalog.Item{
		Name:           "Mesa Grande",
		FurnitureType:  "dining table",
		Description:    "  solid narra,\n two-tone finish  ",
		Categories:     []string{"Dining", "Tables"},
		IsBestseller:   true,
		IsPackage:      false,
		IsCustomizable: true,
	}
	got := BuildItemText(item)
	want := "Mesa Grande dining table solid narra, two-tone finish Dining Tables bestseller customizable"
	if got != want {
		t.Errorf("BuildItemText =\n %q\nwant\n %q", got, want)
	}
}

func TestBuildItemTextNoFlags(t *testing.T) {
	got := BuildItemText(catalog.Item{Name: "Plain Stool", FurnitureType: "stool"})
	if got != "Plain Stool stool" {
		t.Errorf("BuildItemText = %q", got)
	}
}
