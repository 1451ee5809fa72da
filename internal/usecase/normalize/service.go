// Package normalize turns a raw natural-language furniture query into a
// structured search spec. The language model does the heavy lifting; a
// deterministic lexical pass enforces the literal-over-subjective rules on
// its output, and any provider failure degrades to the literal-text
// fallback spec instead of an error.
package normalize

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tindahan-labs/tindahan/internal/domain/search/spec"
	"github.com/tindahan-labs/tindahan/internal/metrics"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 10 * time.Second

// Config holds normalizer tuning.
type Config struct {
	Bands   Bands
	Timeout time.Duration
}

// Service is the query normalizer.
type Service struct {
	gen    Generator
	cfg    Config
	logger *zap.Logger
}

// New creates a normalizer service.
func New(gen Generator, cfg Config, logger *zap.Logger) *Service {
	if cfg.Bands.CheapMaxPrice <= 0 || cfg.Bands.PremiumMinPrice <= 0 {
		cfg.Bands = DefaultBands()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Service{gen: gen, cfg: cfg, logger: logger}
}

// Normalize converts a raw query into a search spec. It never returns an
// error: provider failure, timeout, or unparseable output all degrade to
// spec.Fallback(raw), observable via the log and the fallback counter.
func (s *Service) Normalize(ctx context.Context, raw string) spec.Spec {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return spec.Fallback(raw)
	}

	text, err := s.generate(ctx, buildPrompt(raw, s.cfg.Bands))
	if err != nil {
		return s.fallback(raw, "literal", err)
	}

	var dto specDTO
	if err := decodeSpecJSON(text, &dto); err != nil {
		return s.fallback(raw, "literal", err)
	}

	out := s.merge(raw, dto.toSpec())
	metrics.NormalizeTotal.WithLabelValues("literal", "ok").Inc()
	return out
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	return s.gen.Generate(ctx, prompt)
}

// fallback degrades to literal-text search. Not an error: search stays
// available while the provider is down.
func (s *Service) fallback(raw, mode string, cause error) spec.Spec {
	metrics.NormalizeTotal.WithLabelValues(mode, "fallback").Inc()
	s.logger.Warn("query normalization fell back to literal search",
		zap.String("mode", mode),
		zap.String("query", raw),
		zap.Error(cause),
	)
	return spec.Fallback(raw)
}

// merge reconciles the model's spec with the deterministic lexical pass
// over the raw query. Literal numeric constraints found lexically always
// win; everything else fills gaps the model left.
func (s *Service) merge(raw string, llm spec.Spec) spec.Spec {
	r := extractRules(raw, s.cfg.Bands)
	out := llm
	f := &out.Filters
	rf := r.Spec.Filters

	if r.ExplicitMaxPrice || f.MaxPrice == nil {
		if rf.MaxPrice != nil {
			f.MaxPrice = rf.MaxPrice
		}
	}
	if r.ExplicitMinPrice || f.MinPrice == nil {
		if rf.MinPrice != nil {
			f.MinPrice = rf.MinPrice
		}
	}
	// Dimension bounds from the lexical pass are literal by construction.
	if rf.MaxLength != nil {
		f.MaxLength = rf.MaxLength
	}
	if rf.MaxWidth != nil {
		f.MaxWidth = rf.MaxWidth
	}
	if rf.MaxHeight != nil {
		f.MaxHeight = rf.MaxHeight
	}

	f.Materials = unionVocab(f.Materials, rf.Materials, materialVocab)
	f.Styles = unionVocab(f.Styles, rf.Styles, styleVocab)

	if rf.IsBestseller != nil {
		f.IsBestseller = rf.IsBestseller
	}
	if rf.IsCustomizable != nil {
		f.IsCustomizable = rf.IsCustomizable
	}
	if rf.IsPackage != nil {
		f.IsPackage = rf.IsPackage
	}

	// Comparative language maps deterministically; trust the lexical pass
	// over the model when both disagree.
	if r.Spec.HasSort() {
		out.SortBy = r.Spec.SortBy
		out.SortOrder = r.Spec.SortOrder
	} else if !out.HasSort() {
		out.SortBy = ""
		out.SortOrder = ""
	}

	if r.Spec.Limit > 0 {
		out.Limit = r.Spec.Limit
	}

	out.SemanticQuery = s.semanticPhrase(raw, llm.SemanticQuery, r)
	return out
}

// semanticPhrase picks the residual product phrase. The model's phrase is
// scrubbed through the same lexical pass so no filter token survives in it;
// short bare descriptors pass through verbatim.
func (s *Service) semanticPhrase(raw, llmPhrase string, r ruleResult) string {
	if len(strings.Fields(raw)) <= 2 {
		return raw
	}
	phrase := strings.TrimSpace(llmPhrase)
	if phrase != "" {
		phrase = extractRules(phrase, s.cfg.Bands).Spec.SemanticQuery
	}
	if phrase == "" {
		phrase = r.Spec.SemanticQuery
	}
	if phrase == "" {
		phrase = raw
	}
	return phrase
}

// unionVocab merges two word lists, normalizing against the vocabulary and
// preserving first-seen order. Words outside the vocabulary are dropped:
// the model is not allowed to invent materials or styles.
func unionVocab(a, b []string, vocab map[string]struct{}) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, w := range append(append([]string{}, a...), b...) {
		norm := singularize(strings.ToLower(strings.TrimSpace(w)), vocab)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

// specDTO is the loosely-typed shape the model returns. Pointers keep
// "absent" distinguishable from zero before conversion.
type specDTO struct {
	SemanticQuery string     `json:"semanticQuery"`
	Limit         *int       `json:"limit"`
	SortBy        string     `json:"sortBy"`
	SortOrder     string     `json:"sortOrder"`
	Filters       filtersDTO `json:"filters"`
}

type filtersDTO struct {
	MaxPrice       *float64 `json:"maxPrice"`
	MinPrice       *float64 `json:"minPrice"`
	MaxLength      *float64 `json:"maxLength"`
	MaxWidth       *float64 `json:"maxWidth"`
	MaxHeight      *float64 `json:"maxHeight"`
	Materials      []string `json:"materials"`
	Styles         []string `json:"styles"`
	IsBestseller   *bool    `json:"isBestseller"`
	IsCustomizable *bool    `json:"isCustomizable"`
	IsPackage      *bool    `json:"isPackage"`
}

// toSpec converts the model output into a validated spec: bad enum values
// and non-positive numbers are dropped rather than propagated.
func (d specDTO) toSpec() spec.Spec {
	out := spec.Spec{SemanticQuery: strings.TrimSpace(d.SemanticQuery)}

	if d.Limit != nil && *d.Limit > 0 {
		out.Limit = *d.Limit
	}

	sortBy := spec.SortField(d.SortBy)
	sortOrder := spec.SortOrder(d.SortOrder)
	if sortBy.IsValid() && sortOrder.IsValid() {
		out.SortBy = sortBy
		out.SortOrder = sortOrder
	}

	f := &out.Filters
	f.MaxPrice = positive(d.Filters.MaxPrice)
	f.MinPrice = positive(d.Filters.MinPrice)
	f.MaxLength = positive(d.Filters.MaxLength)
	f.MaxWidth = positive(d.Filters.MaxWidth)
	f.MaxHeight = positive(d.Filters.MaxHeight)
	f.Materials = d.Filters.Materials
	f.Styles = d.Filters.Styles
	f.IsBestseller = d.Filters.IsBestseller
	f.IsCustomizable = d.Filters.IsCustomizable
	f.IsPackage = d.Filters.IsPackage
	return out
}

func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}
