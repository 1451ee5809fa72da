package normalize

import (
	"context"
	"errors"
	"strings"

	"github.com/tindahan-labs/tindahan/internal/domain/search/spec"
	"github.com/tindahan-labs/tindahan/internal/metrics"
)

var errEmptyNeed = errors.New("model returned no inferred need")

// Recommendation classifies how the inferred need relates to what the
// shopper already has.
type Recommendation string

// Recommendation kinds.
const (
	Pairing     Recommendation = "pairing"
	Completion  Recommendation = "completion"
	Replacement Recommendation = "replacement"
	Upgrade     Recommendation = "upgrade"
)

// IsValid reports whether the recommendation is a known kind.
func (r Recommendation) IsValid() bool {
	switch r {
	case Pairing, Completion, Replacement, Upgrade:
		return true
	}
	return false
}

// ContextualResult is a normalized spec plus the furniture-relationship
// context inferred from a query that names no product directly.
type ContextualResult struct {
	Spec           spec.Spec
	Room           string
	Recommendation Recommendation
}

// NormalizeContextual is the pairing/completion normalizer mode: the
// semantic phrase carries the inferred need ("office chairs" for a shopper
// who just bought an office table) rather than the literal noun phrase.
// Shares the fallback guarantee with Normalize.
func (s *Service) NormalizeContextual(ctx context.Context, raw string) ContextualResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ContextualResult{Spec: spec.Fallback(raw)}
	}

	text, err := s.generate(ctx, buildContextualPrompt(raw, s.cfg.Bands))
	if err != nil {
		return ContextualResult{Spec: s.fallback(raw, "contextual", err)}
	}

	var dto contextualDTO
	if err := decodeSpecJSON(text, &dto); err != nil {
		return ContextualResult{Spec: s.fallback(raw, "contextual", err)}
	}

	out := dto.specDTO.toSpec()
	// The inferred need replaces the literal phrase; only scrub it, never
	// substitute the raw query back in.
	if phrase := extractRules(out.SemanticQuery, s.cfg.Bands).Spec.SemanticQuery; phrase != "" {
		out.SemanticQuery = phrase
	}
	if out.SemanticQuery == "" {
		return ContextualResult{Spec: s.fallback(raw, "contextual", errEmptyNeed)}
	}
	out.Filters.Materials = unionVocab(out.Filters.Materials, nil, materialVocab)
	out.Filters.Styles = unionVocab(out.Filters.Styles, nil, styleVocab)

	rec := Recommendation(strings.ToLower(strings.TrimSpace(dto.Recommendation)))
	if !rec.IsValid() {
		rec = ""
	}

	metrics.NormalizeTotal.WithLabelValues("contextual", "ok").Inc()
	return ContextualResult{
		Spec:           out,
		Room:           strings.TrimSpace(dto.Room),
		Recommendation: rec,
	}
}

type contextualDTO struct {
	specDTO
	Room           string `json:"room"`
	Recommendation string `json:"recommendation"`
}
