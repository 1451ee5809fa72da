// Package spec defines the normalized search specification produced by the
// query normalizer and consumed by the candidate ranker. Optional fields
// carry an explicit presence flag (pointer or zero-value sentinel) so that
// "unset" is distinguishable from "false"/"zero".
package spec

import "strings"

// Result count bounds.
const (
	// DefaultLimit is the result count when the query states none.
	DefaultLimit = 12
	// MaxLimit caps explicit result counts.
	MaxLimit = 50
)

// SortField is a catalog field the results can be ordered by.
type SortField string

// Sort fields recognized by the ranker.
const (
	SortPrice     SortField = "price"
	SortSales     SortField = "sales"
	SortCreatedAt SortField = "createdAt"
)

// IsValid reports whether the sort field is one of the recognized values.
func (f SortField) IsValid() bool {
	switch f {
	case SortPrice, SortSales, SortCreatedAt:
		return true
	}
	return false
}

// SortOrder is the direction of an explicit sort.
type SortOrder string

// Sort directions.
const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// IsValid reports whether the sort order is asc or desc.
func (o SortOrder) IsValid() bool { return o == Asc || o == Desc }

// Filters are the hard constraints extracted from a query. Every field is
// optional: a nil pointer or empty set means the constraint was never
// stated, and the ranker must not apply it. Numeric bounds are PHP for
// prices and cm for dimensions.
type Filters struct {
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxLength *float64 `json:"maxLength,omitempty"`
	MaxWidth  *float64 `json:"maxWidth,omitempty"`
	MaxHeight *float64 `json:"maxHeight,omitempty"`

	// Materials and Styles are lowercase singular nouns.
	Materials []string `json:"materials,omitempty"`
	Styles    []string `json:"styles,omitempty"`

	// Tri-state flags: nil means the query did not mention the trait.
	IsBestseller   *bool `json:"isBestseller,omitempty"`
	IsCustomizable *bool `json:"isCustomizable,omitempty"`
	IsPackage      *bool `json:"isPackage,omitempty"`
}

// IsEmpty reports whether no constraint is present.
func (f Filters) IsEmpty() bool {
	return f.MaxPrice == nil && f.MinPrice == nil &&
		f.MaxLength == nil && f.MaxWidth == nil && f.MaxHeight == nil &&
		len(f.Materials) == 0 && len(f.Styles) == 0 &&
		f.IsBestseller == nil && f.IsCustomizable == nil && f.IsPackage == nil
}

// Spec is the normalized form of a raw query.
type Spec struct {
	// SemanticQuery is the residual product-intent phrase: commands,
	// numbers, comparatives and intent keywords stripped.
	SemanticQuery string `json:"semanticQuery"`

	// Limit is the explicit result count, 0 when unset.
	Limit int `json:"limit,omitempty"`

	// SortBy/SortOrder are set together, empty when the query holds no
	// comparative language.
	SortBy    SortField `json:"sortBy,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`

	Filters Filters `json:"filters"`
}

// Fallback is the deterministic spec used whenever normalization cannot
// produce a structured result: the raw query searched literally.
func Fallback(raw string) Spec {
	return Spec{SemanticQuery: strings.TrimSpace(raw), Limit: DefaultLimit}
}

// EffectiveLimit resolves the result count: the explicit limit clamped to
// MaxLimit, or DefaultLimit when unset.
func (s Spec) EffectiveLimit() int {
	if s.Limit <= 0 {
		return DefaultLimit
	}
	if s.Limit > MaxLimit {
		return MaxLimit
	}
	return s.Limit
}

// HasSort reports whether an explicit sort pair is present.
func (s Spec) HasSort() bool {
	return s.SortBy.IsValid() && s.SortOrder.IsValid()
}

// Float returns a pointer to v. Helper for building filter literals.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v. Helper for building tri-state flags.
func Bool(v bool) *bool { return &v }
