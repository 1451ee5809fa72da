package normalize

import (
	"strconv"
	"strings"

	"github.com/tindahan-labs/tindahan/internal/domain/search/spec"
)

// Bands are the subjective price adjective thresholds (PHP). They only
// apply when the query states no literal price; literal numbers always win.
type Bands struct {
	CheapMaxPrice   float64
	PremiumMinPrice float64
}

// DefaultBands are the canonical adjective thresholds.
func DefaultBands() Bands {
	return Bands{CheapMaxPrice: 15000, PremiumMinPrice: 40000}
}

// ruleResult is the outcome of the deterministic lexical pass over a raw
// query. Explicit* record that a price bound came from a literal number in
// the query, not from an adjective band: literal bounds override whatever
// the language model extracted.
type ruleResult struct {
	Spec             spec.Spec
	ExplicitMaxPrice bool
	ExplicitMinPrice bool
}

// token is one whitespace-delimited word of the query. low is the
// lowercased, punctuation-trimmed form used for matching; orig keeps the
// user's casing for the residual semantic phrase.
type token struct {
	orig     string
	low      string
	consumed bool
}

// extractRules runs the deterministic normalization rules over a raw query:
// comparative sort phrases, literal numeric constraints, subjective price
// adjectives, boolean intent words, known material/style vocabulary, and
// the residual product-intent phrase.
func extractRules(raw string, bands Bands) ruleResult {
	raw = strings.TrimSpace(raw)
	tokens := tokenize(raw)

	var res ruleResult
	f := &res.Spec.Filters

	extractSort(tokens, &res.Spec)
	extractNumericConstraints(tokens, &res, bands)
	extractSubjectivePrice(tokens, &res, bands)
	extractFlags(tokens, f)
	extractLimit(tokens, &res.Spec)
	// Material/style nouns are part of the product phrase; they populate
	// the filter sets without being consumed.
	f.Materials = extractVocab(tokens, materialVocab)
	f.Styles = extractVocab(tokens, styleVocab)

	res.Spec.SemanticQuery = residual(raw, tokens)
	return res
}

func tokenize(raw string) []token {
	fields := strings.Fields(raw)
	tokens := make([]token, len(fields))
	for i, w := range fields {
		tokens[i] = token{
			orig: w,
			low:  strings.Trim(strings.ToLower(w), ".,!?;:()\"'"),
		}
	}
	return tokens
}

// Comparative phrases mapped to sort pairs. Longest phrases first so
// "most expensive" wins over any single-token interpretation.
var sortPhrases = []struct {
	words []string
	field spec.SortField
	order spec.SortOrder
}{
	{[]string{"most", "expensive"}, spec.SortPrice, spec.Desc},
	{[]string{"most", "popular"}, spec.SortSales, spec.Desc},
	{[]string{"most", "recent"}, spec.SortCreatedAt, spec.Desc},
	{[]string{"highest", "price"}, spec.SortPrice, spec.Desc},
	{[]string{"highest", "priced"}, spec.SortPrice, spec.Desc},
	{[]string{"lowest", "price"}, spec.SortPrice, spec.Asc},
	{[]string{"lowest", "priced"}, spec.SortPrice, spec.Asc},
	{[]string{"top", "selling"}, spec.SortSales, spec.Desc},
	{[]string{"best", "selling"}, spec.SortSales, spec.Desc},
	{[]string{"cheapest"}, spec.SortPrice, spec.Asc},
	{[]string{"priciest"}, spec.SortPrice, spec.Desc},
	{[]string{"top-selling"}, spec.SortSales, spec.Desc},
	{[]string{"best-selling"}, spec.SortSales, spec.Desc},
	{[]string{"bestselling"}, spec.SortSales, spec.Desc},
	{[]string{"newest"}, spec.SortCreatedAt, spec.Desc},
	{[]string{"latest"}, spec.SortCreatedAt, spec.Desc},
}

func extractSort(tokens []token, s *spec.Spec) {
	for i := range tokens {
		if tokens[i].consumed {
			continue
		}
		for _, p := range sortPhrases {
			if matchPhrase(tokens, i, p.words) {
				consume(tokens, i, len(p.words))
				if !s.HasSort() {
					s.SortBy = p.field
					s.SortOrder = p.order
				}
				break
			}
		}
	}
}

// Ceiling/floor comparator phrases. Ceilings are checked first so that
// "not more than" is never read as the floor phrase "more than".
var (
	ceilingPhrases = [][]string{
		{"not", "more", "than"}, {"no", "more", "than"},
		{"less", "than"}, {"at", "most"}, {"up", "to"}, {"cheaper", "than"},
		{"under"}, {"below"}, {"within"}, {"max"}, {"maximum"},
	}
	floorPhrases = [][]string{
		{"more", "than"}, {"at", "least"}, {"starting", "at"},
		{"over"}, {"above"}, {"minimum"},
	}
)

// Axis keywords mapped to the dimension they bound.
var axisWords = map[string]string{
	"tall": "height", "high": "height", "height": "height",
	"wide": "width", "width": "width",
	"long": "length", "longer": "length", "length": "length",
	"deep": "length", "deeper": "length", "depth": "length",
}

var currencyWords = map[string]struct{}{
	"php": {}, "peso": {}, "pesos": {}, "₱": {},
}

func extractNumericConstraints(tokens []token, res *ruleResult, _ Bands) {
	f := &res.Spec.Filters
	for i := range tokens {
		if tokens[i].consumed {
			continue
		}
		ceiling, n := matchComparator(tokens, i, ceilingPhrases)
		if n == 0 {
			_, n = matchComparator(tokens, i, floorPhrases)
			ceiling = false
			if n == 0 {
				continue
			}
		}

		// Find the literal number within the next couple of tokens.
		numIdx := -1
		var value float64
		var isCM bool
		for k := i + n; k < len(tokens) && k <= i+n+1; k++ {
			if tokens[k].consumed {
				continue
			}
			if v, cm, ok := parseNumber(tokens[k].low); ok {
				numIdx, value, isCM = k, v, cm
				break
			}
		}
		if numIdx < 0 {
			continue
		}

		consume(tokens, i, n)
		tokens[numIdx].consumed = true

		// Trailing unit/currency tokens belong to the constraint.
		if next := numIdx + 1; next < len(tokens) && !tokens[next].consumed {
			if tokens[next].low == "cm" {
				isCM = true
				tokens[next].consumed = true
			} else if _, ok := currencyWords[tokens[next].low]; ok {
				tokens[next].consumed = true
			}
		}

		if isCM {
			// Dimension bound: only ceilings map to a filter, and only when
			// an axis keyword anchors the number. Anything else is dropped,
			// never guessed.
			axis := consumeAxisWord(tokens, numIdx)
			if !ceiling || axis == "" {
				continue
			}
			switch axis {
			case "height":
				f.MaxHeight = spec.Float(value)
			case "width":
				f.MaxWidth = spec.Float(value)
			case "length":
				f.MaxLength = spec.Float(value)
			}
			continue
		}

		if ceiling {
			f.MaxPrice = spec.Float(value)
			res.ExplicitMaxPrice = true
		} else {
			f.MinPrice = spec.Float(value)
			res.ExplicitMinPrice = true
		}
	}
}

// consumeAxisWord looks for an axis keyword near the number ("180cm tall",
// "tall … 180cm") and consumes it.
func consumeAxisWord(tokens []token, numIdx int) string {
	for _, k := range []int{numIdx + 1, numIdx + 2, numIdx - 1, numIdx - 2} {
		if k < 0 || k >= len(tokens) || tokens[k].consumed {
			continue
		}
		if axis, ok := axisWords[tokens[k].low]; ok {
			tokens[k].consumed = true
			return axis
		}
	}
	return ""
}

var (
	cheapWords = map[string]struct{}{
		"cheap": {}, "affordable": {}, "budget": {}, "inexpensive": {},
	}
	premiumWords = map[string]struct{}{
		"premium": {}, "expensive": {}, "luxury": {}, "luxurious": {},
		"high-end": {}, "upscale": {},
	}
)

// extractSubjectivePrice maps price adjectives to their configured bands.
// Runs after the literal pass: an explicit number always wins.
func extractSubjectivePrice(tokens []token, res *ruleResult, bands Bands) {
	f := &res.Spec.Filters
	for i := range tokens {
		if tokens[i].consumed {
			continue
		}
		if _, ok := cheapWords[tokens[i].low]; ok {
			tokens[i].consumed = true
			if !res.ExplicitMaxPrice && f.MaxPrice == nil {
				f.MaxPrice = spec.Float(bands.CheapMaxPrice)
			}
			continue
		}
		if _, ok := premiumWords[tokens[i].low]; ok {
			tokens[i].consumed = true
			if !res.ExplicitMinPrice && f.MinPrice == nil {
				f.MinPrice = spec.Float(bands.PremiumMinPrice)
			}
		}
	}
}

var (
	bestsellerWords = map[string]struct{}{
		"bestseller": {}, "bestsellers": {}, "best-seller": {}, "best-sellers": {},
	}
	customizableWords = map[string]struct{}{
		"customizable": {}, "customisable": {}, "custom-made": {},
	}
	packageWords = map[string]struct{}{
		"package": {}, "packages": {}, "set": {}, "sets": {},
		"bundle": {}, "bundles": {},
	}
)

func extractFlags(tokens []token, f *spec.Filters) {
	for i := range tokens {
		if tokens[i].consumed {
			continue
		}
		if _, ok := bestsellerWords[tokens[i].low]; ok {
			tokens[i].consumed = true
			f.IsBestseller = spec.Bool(true)
			continue
		}
		if _, ok := customizableWords[tokens[i].low]; ok {
			tokens[i].consumed = true
			f.IsCustomizable = spec.Bool(true)
			continue
		}
		if _, ok := packageWords[tokens[i].low]; ok {
			tokens[i].consumed = true
			f.IsPackage = spec.Bool(true)
		}
	}
}

// Words that mark the following integer as a result count.
var limitCues = map[string]struct{}{
	"top": {}, "first": {}, "show": {}, "me": {}, "give": {},
	"list": {}, "find": {}, "get": {}, "display": {},
}

// extractLimit reads a bare integer as an explicit result count only in a
// count-intent context: preceded by a cue word ("show me 2 …", "top 5 …")
// or followed by "of" ("2 of the newest …"). A number that is part of the
// product phrase ("3 seater sofa") is left alone.
func extractLimit(tokens []token, s *spec.Spec) {
	for i := range tokens {
		if tokens[i].consumed {
			continue
		}
		v, isCM, ok := parseNumber(tokens[i].low)
		if !ok || isCM {
			continue
		}
		if !countIntent(tokens, i) {
			continue
		}
		tokens[i].consumed = true
		if s.Limit == 0 && v == float64(int(v)) && v >= 1 && v <= 100 {
			s.Limit = int(v)
		}
	}
}

func countIntent(tokens []token, i int) bool {
	if i+1 < len(tokens) && tokens[i+1].low == "of" {
		return true
	}
	if i > 0 {
		if _, cue := limitCues[tokens[i-1].low]; cue {
			return true
		}
	}
	return false
}

// Known material vocabulary, singular lowercase.
var materialVocab = map[string]struct{}{
	"narra": {}, "acacia": {}, "mahogany": {}, "oak": {}, "teak": {},
	"walnut": {}, "pine": {}, "mango": {}, "gmelina": {},
	"rattan": {}, "bamboo": {}, "abaca": {},
	"metal": {}, "steel": {}, "aluminum": {}, "iron": {},
	"glass": {}, "marble": {}, "stone": {},
	"leather": {}, "velvet": {}, "fabric": {}, "linen": {}, "plastic": {},
}

// Known style vocabulary, singular lowercase.
var styleVocab = map[string]struct{}{
	"modern": {}, "minimalist": {}, "rustic": {}, "industrial": {},
	"scandinavian": {}, "contemporary": {}, "traditional": {},
	"classic": {}, "vintage": {}, "farmhouse": {}, "japandi": {},
	"bohemian": {}, "boho": {}, "mid-century": {}, "midcentury": {},
}

// extractVocab collects known vocabulary words in query order, deduplicated
// and singularized. Unknown words are omitted, never guessed.
func extractVocab(tokens []token, vocab map[string]struct{}) []string {
	var out []string
	seen := make(map[string]struct{})
	for i := range tokens {
		if tokens[i].consumed {
			continue
		}
		w := singularize(tokens[i].low, vocab)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// singularize returns the vocabulary's singular form of w, or "" when w is
// not in the vocabulary.
func singularize(w string, vocab map[string]struct{}) string {
	if _, ok := vocab[w]; ok {
		return w
	}
	if trimmed := strings.TrimSuffix(w, "s"); trimmed != w {
		if _, ok := vocab[trimmed]; ok {
			return trimmed
		}
	}
	return ""
}

// Command and filler words stripped from the residual phrase.
var stopwords = map[string]struct{}{
	"i": {}, "i'm": {}, "we": {}, "me": {}, "my": {}, "our": {}, "you": {},
	"a": {}, "an": {}, "the": {}, "of": {}, "that": {}, "this": {},
	"which": {}, "is": {}, "are": {}, "it": {}, "its": {},
	"show": {}, "find": {}, "give": {}, "get": {}, "list": {}, "top": {},
	"first": {}, "need": {}, "needs": {}, "want": {}, "wants": {},
	"would": {}, "like": {}, "looking": {}, "for": {}, "please": {},
	"can": {}, "could": {}, "some": {}, "any": {}, "do": {}, "you've": {},
	"have": {}, "there": {}, "cm": {}, "php": {}, "peso": {}, "pesos": {},
}

// residual rebuilds the product-intent phrase from the unconsumed tokens.
// Defaults to the raw query for short bare descriptors (1-2 words) and
// whenever nothing survives the rules.
func residual(raw string, tokens []token) string {
	if len(tokens) <= 2 {
		return raw
	}
	var kept []string
	for i := range tokens {
		if tokens[i].consumed {
			continue
		}
		if _, stop := stopwords[tokens[i].low]; stop {
			continue
		}
		if strings.ContainsAny(tokens[i].low, "0123456789") {
			continue
		}
		kept = append(kept, strings.Trim(tokens[i].orig, ".,!?;:()\"'"))
	}
	if len(kept) == 0 {
		return raw
	}
	return strings.Join(kept, " ")
}

func matchPhrase(tokens []token, i int, words []string) bool {
	if i+len(words) > len(tokens) {
		return false
	}
	for j, w := range words {
		if tokens[i+j].consumed || tokens[i+j].low != w {
			return false
		}
	}
	return true
}

// matchComparator reports whether any of the phrases starts at i, returning
// its length. Phrases are ordered longest-first within each group.
func matchComparator(tokens []token, i int, phrases [][]string) (bool, int) {
	for _, p := range phrases {
		if matchPhrase(tokens, i, p) {
			return true, len(p)
		}
	}
	return false, 0
}

func consume(tokens []token, i, n int) {
	for j := i; j < i+n && j < len(tokens); j++ {
		tokens[j].consumed = true
	}
}

// parseNumber parses a literal numeric token, tolerating thousands commas,
// a currency prefix, and an attached cm unit ("180cm", "php60,000", "₱8k").
func parseNumber(tok string) (value float64, isCM bool, ok bool) {
	t := strings.TrimPrefix(tok, "₱")
	t = strings.TrimPrefix(t, "php")
	if strings.HasSuffix(t, "cm") {
		isCM = true
		t = strings.TrimSuffix(t, "cm")
	}
	mult := 1.0
	if strings.HasSuffix(t, "k") {
		mult = 1000
		t = strings.TrimSuffix(t, "k")
	}
	t = strings.ReplaceAll(t, ",", "")
	if t == "" {
		return 0, false, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || v < 0 {
		return 0, false, false
	}
	return v * mult, isCM, true
}
