package normalize

import (
	"reflect"
	"testing"

	"github.com/tindahan-labs/tindahan/internal/domain/search/spec"
)

func extract(t *testing.T, raw string) ruleResult {
	t.Helper()
	return extractRules(raw, DefaultBands())
}

func TestRulesFullScenario(t *testing.T) {
	r := extract(t, "show me 2 of the newest customizable Narra dining tables under 60000 php")
	s := r.Spec

	if s.SemanticQuery != "Narra dining tables" {
		t.Errorf("SemanticQuery = %q, want %q", s.SemanticQuery, "Narra dining tables")
	}
	if s.Limit != 2 {
		t.Errorf("Limit = %d, want 2", s.Limit)
	}
	if s.SortBy != spec.SortCreatedAt || s.SortOrder != spec.Desc {
		t.Errorf("sort = %s/%s, want createdAt/desc", s.SortBy, s.SortOrder)
	}
	f := s.Filters
	if f.MaxPrice == nil || *f.MaxPrice != 60000 {
		t.Errorf("MaxPrice = %v, want 60000", f.MaxPrice)
	}
	if !r.ExplicitMaxPrice {
		t.Error("literal 60000 should be flagged explicit")
	}
	if f.IsCustomizable == nil || !*f.IsCustomizable {
		t.Errorf("IsCustomizable = %v, want true", f.IsCustomizable)
	}
	if !reflect.DeepEqual(f.Materials, []string{"narra"}) {
		t.Errorf("Materials = %v, want [narra]", f.Materials)
	}
}

func TestRulesDimensionCeiling(t *testing.T) {
	r := extract(t, "i need a wardrobe that is not more than 180cm tall")
	s := r.Spec

	if s.SemanticQuery != "wardrobe" {
		t.Errorf("SemanticQuery = %q, want %q", s.SemanticQuery, "wardrobe")
	}
	if s.Filters.MaxHeight == nil || *s.Filters.MaxHeight != 180 {
		t.Errorf("MaxHeight = %v, want 180", s.Filters.MaxHeight)
	}
	if s.Filters.MaxPrice != nil {
		t.Errorf("MaxPrice = %v, want unset", s.Filters.MaxPrice)
	}
	if s.HasSort() || s.Limit != 0 {
		t.Errorf("unexpected sort/limit: %+v", s)
	}
}

func TestRulesLimitNeedsCountIntent(t *testing.T) {
	tests := []struct {
		raw   string
		limit int
	}{
		{"3 seater sofa", 0},
		{"2 door wardrobe in oak", 0},
		{"show me 2 of the newest sofas", 2},
		{"top 5 bestselling beds", 5},
		{"first 4 of your bookshelves", 4},
	}
	for _, tc := range tests {
		if got := extract(t, tc.raw).Spec.Limit; got != tc.limit {
			t.Errorf("%q: Limit = %d, want %d", tc.raw, got, tc.limit)
		}
	}
}

func TestRulesAxisKeywords(t *testing.T) {
	tests := []struct {
		raw   string
		check func(f spec.Filters) (got *float64, name string)
	}{
		{"sofa less than 200cm long", func(f spec.Filters) (*float64, string) { return f.MaxLength, "MaxLength" }},
		{"desk under 120 cm wide", func(f spec.Filters) (*float64, string) { return f.MaxWidth, "MaxWidth" }},
		{"shelf below 150cm high", func(f spec.Filters) (*float64, string) { return f.MaxHeight, "MaxHeight" }},
		{"cabinet at most 45cm deep", func(f spec.Filters) (*float64, string) { return f.MaxLength, "MaxLength" }},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := extract(t, tt.raw)
			got, name := tt.check(r.Spec.Filters)
			if got == nil {
				t.Fatalf("%s not set", name)
			}
		})
	}
}

func TestRulesExplicitOverridesSubjective(t *testing.T) {
	r := extract(t, "cheap dining table under 10000")
	f := r.Spec.Filters
	if f.MaxPrice == nil || *f.MaxPrice != 10000 {
		t.Fatalf("MaxPrice = %v, want literal 10000, not the cheap band", f.MaxPrice)
	}
	if !r.ExplicitMaxPrice {
		t.Error("literal ceiling should be flagged explicit")
	}
}

func TestRulesSubjectiveBands(t *testing.T) {
	bands := Bands{CheapMaxPrice: 7500, PremiumMinPrice: 50000}

	r := extractRules("affordable bookshelf", bands)
	if f := r.Spec.Filters; f.MaxPrice == nil || *f.MaxPrice != 7500 {
		t.Errorf("cheap band MaxPrice = %v, want 7500", r.Spec.Filters.MaxPrice)
	}
	if r.ExplicitMaxPrice {
		t.Error("band-derived ceiling must not be flagged explicit")
	}

	r = extractRules("premium leather sofa", bands)
	if f := r.Spec.Filters; f.MinPrice == nil || *f.MinPrice != 50000 {
		t.Errorf("premium band MinPrice = %v, want 50000", r.Spec.Filters.MinPrice)
	}
}

func TestRulesCheapestPremiumTable(t *testing.T) {
	r := extract(t, "cheapest premium table")
	s := r.Spec

	if s.SortBy != spec.SortPrice || s.SortOrder != spec.Asc {
		t.Errorf("sort = %s/%s, want price/asc", s.SortBy, s.SortOrder)
	}
	if s.Filters.MinPrice == nil || *s.Filters.MinPrice != DefaultBands().PremiumMinPrice {
		t.Errorf("MinPrice = %v, want premium band", s.Filters.MinPrice)
	}
	if s.SemanticQuery != "table" {
		t.Errorf("SemanticQuery = %q, want %q", s.SemanticQuery, "table")
	}
}

func TestRulesComparatives(t *testing.T) {
	tests := []struct {
		raw   string
		field spec.SortField
		order spec.SortOrder
	}{
		{"cheapest office chairs", spec.SortPrice, spec.Asc},
		{"most expensive bed frames", spec.SortPrice, spec.Desc},
		{"most popular sofas today", spec.SortSales, spec.Desc},
		{"top selling coffee tables", spec.SortSales, spec.Desc},
		{"latest arrivals for the bedroom", spec.SortCreatedAt, spec.Desc},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s := extract(t, tt.raw).Spec
			if s.SortBy != tt.field || s.SortOrder != tt.order {
				t.Errorf("sort = %s/%s, want %s/%s", s.SortBy, s.SortOrder, tt.field, tt.order)
			}
		})
	}
}

func TestRulesBareDescriptorPassesThrough(t *testing.T) {
	for _, raw := range []string{"narra", "rustic shelf", "Narra"} {
		t.Run(raw, func(t *testing.T) {
			s := extract(t, raw).Spec
			if s.SemanticQuery != raw {
				t.Errorf("SemanticQuery = %q, want raw %q", s.SemanticQuery, raw)
			}
		})
	}
}

func TestRulesMaterialStaysInPhrase(t *testing.T) {
	r := extract(t, "solid narra coffee table for the living room")
	s := r.Spec
	if !reflect.DeepEqual(s.Filters.Materials, []string{"narra"}) {
		t.Errorf("Materials = %v, want [narra]", s.Filters.Materials)
	}
	if want := "solid narra coffee table living room"; s.SemanticQuery != want {
		t.Errorf("SemanticQuery = %q, want %q", s.SemanticQuery, want)
	}
}

func TestRulesMaterialsSingularized(t *testing.T) {
	s := extract(t, "chairs made of oak or rattans for the patio").Spec
	if !reflect.DeepEqual(s.Filters.Materials, []string{"oak", "rattan"}) {
		t.Errorf("Materials = %v, want [oak rattan]", s.Filters.Materials)
	}
}

func TestRulesUnknownVocabularyOmitted(t *testing.T) {
	s := extract(t, "a vibranium floating chair").Spec
	if len(s.Filters.Materials) != 0 || len(s.Filters.Styles) != 0 {
		t.Errorf("unknown vocabulary must be omitted, got %v / %v",
			s.Filters.Materials, s.Filters.Styles)
	}
}

func TestRulesBooleanFlagsTriState(t *testing.T) {
	s := extract(t, "bestseller sofa set for the living room").Spec
	f := s.Filters
	if f.IsBestseller == nil || !*f.IsBestseller {
		t.Errorf("IsBestseller = %v, want true", f.IsBestseller)
	}
	if f.IsPackage == nil || !*f.IsPackage {
		t.Errorf("IsPackage = %v, want true", f.IsPackage)
	}
	// Unmentioned trait stays unset, not false.
	if f.IsCustomizable != nil {
		t.Errorf("IsCustomizable = %v, want unset", f.IsCustomizable)
	}
}

func TestRulesFloorPrice(t *testing.T) {
	r := extract(t, "dining tables over 30,000")
	if f := r.Spec.Filters; f.MinPrice == nil || *f.MinPrice != 30000 {
		t.Errorf("MinPrice = %v, want 30000", r.Spec.Filters.MinPrice)
	}
	if !r.ExplicitMinPrice {
		t.Error("literal floor should be flagged explicit")
	}
}

func TestRulesSemanticNeverCarriesNumbers(t *testing.T) {
	s := extract(t, "give me 5 oak bar stools around 4000").Spec
	for _, w := range []string{"5", "4000"} {
		if containsWord(s.SemanticQuery, w) {
			t.Errorf("SemanticQuery %q carries numeral %q", s.SemanticQuery, w)
		}
	}
}

func containsWord(phrase, w string) bool {
	for _, f := range splitWords(phrase) {
		if f == w {
			return true
		}
	}
	return false
}

func splitWords(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == ' ' {
			if cur != "" {
				out = append(out, cur)
			}
			cur = ""
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
