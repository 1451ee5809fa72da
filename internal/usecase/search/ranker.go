package search

import (
	"math"
	"sort"
	"strings"

	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
	"github.com/tindahan-labs/tindahan/internal/domain/search/spec"
)

// Ranked is a catalog item with its semantic similarity score.
type Ranked struct {
	Item  catalog.Item
	Score float64
}

// Rank filters, scores, and orders catalog items against a search spec.
// Filters are conjunctive and never relaxed; surviving items are scored by
// cosine similarity to the query vector. An explicit sort field orders the
// results primarily, with similarity as the tie-break; otherwise ordering
// is purely by descending similarity. The result is truncated to the
// spec's effective limit. Zero survivors is a valid empty result.
func Rank(s spec.Spec, queryVector []float32, items []catalog.Item) []Ranked {
	ranked := make([]Ranked, 0, len(items))
	for _, item := range items {
		if !matchesFilters(item, s.Filters) {
			continue
		}
		if len(item.Embedding) == 0 {
			// Not indexed yet, cannot be scored.
			continue
		}
		ranked = append(ranked, Ranked{Item: item, Score: cosine(queryVector, item.Embedding)})
	}

	if s.HasSort() {
		sortByField(ranked, s.SortBy, s.SortOrder)
	} else {
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})
	}

	if limit := s.EffectiveLimit(); len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// matchesFilters applies every present constraint; absent constraints
// never exclude anything.
func matchesFilters(item catalog.Item, f spec.Filters) bool {
	if f.MaxPrice != nil && item.Price > *f.MaxPrice {
		return false
	}
	if f.MinPrice != nil && item.Price < *f.MinPrice {
		return false
	}
	if f.MaxLength != nil && item.Dimensions.Length > *f.MaxLength {
		return false
	}
	if f.MaxWidth != nil && item.Dimensions.Width > *f.MaxWidth {
		return false
	}
	if f.MaxHeight != nil && item.Dimensions.Height > *f.MaxHeight {
		return false
	}
	if len(f.Materials) > 0 && !containsAny(item.Materials, f.Materials) {
		return false
	}
	if len(f.Styles) > 0 && !containsAny(item.Styles, f.Styles) {
		return false
	}
	if f.IsBestseller != nil && item.IsBestseller != *f.IsBestseller {
		return false
	}
	if f.IsCustomizable != nil && item.IsCustomizable != *f.IsCustomizable {
		return false
	}
	if f.IsPackage != nil && item.IsPackage != *f.IsPackage {
		return false
	}
	return true
}

// containsAny reports whether have and want share at least one entry,
// case-insensitively.
func containsAny(have, want []string) bool {
	for _, h := range have {
		h = strings.ToLower(h)
		for _, w := range want {
			if h == strings.ToLower(w) {
				return true
			}
		}
	}
	return false
}

// sortByField orders by the explicit sort field, breaking ties by
// descending similarity.
func sortByField(ranked []Ranked, field spec.SortField, order spec.SortOrder) {
	key := func(r Ranked) float64 {
		switch field {
		case spec.SortPrice:
			return r.Item.Price
		case spec.SortSales:
			return float64(r.Item.SalesCount)
		case spec.SortCreatedAt:
			return float64(r.Item.CreatedAt.UnixNano())
		}
		return 0
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		ki, kj := key(ranked[i]), key(ranked[j])
		if ki != kj {
			if order == spec.Asc {
				return ki < kj
			}
			return ki > kj
		}
		return ranked[i].Score > ranked[j].Score
	})
}

// cosine computes cosine similarity, 0 for mismatched or zero vectors.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
