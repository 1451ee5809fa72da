package normalize

import (
	"fmt"
	"strings"
)

// buildPrompt renders the strict-schema extraction prompt. The schema and
// worked examples live in the prompt because the contract with the provider
// is plain text out; the fallback path assumes nothing about compliance.
func buildPrompt(raw string, bands Bands) string {
	var b strings.Builder
	b.WriteString(`You convert a furniture shopper's query into one JSON object. Respond with ONLY the JSON object, no prose, no code fences.

Schema (omit every key you cannot justify from the query; never invent values):
{
  "semanticQuery": string,   // the product phrase, stripped of commands, numbers, and filter words
  "limit": int,              // only when an explicit result count is stated
  "sortBy": "price"|"sales"|"createdAt",
  "sortOrder": "asc"|"desc",
  "filters": {
    "maxPrice": number, "minPrice": number,        // PHP
    "maxLength": number, "maxWidth": number, "maxHeight": number,  // cm
    "materials": [string], "styles": [string],     // lowercase singular
    "isBestseller": bool, "isCustomizable": bool, "isPackage": bool
  }
}

Rules:
- A literal number ("under 10000", "less than 180cm tall") always overrides a subjective word when both appear.
`)
	fmt.Fprintf(&b, "- \"cheap\"/\"affordable\" means maxPrice %.0f; \"premium\"/\"expensive\" means minPrice %.0f — only without a literal number.\n",
		bands.CheapMaxPrice, bands.PremiumMinPrice)
	b.WriteString(`- "cheapest" means sortBy price asc; "most expensive" price desc; "most popular"/"top selling" sales desc; "newest"/"latest" createdAt desc.
- "long"/"deep" bounds maxLength, "wide" maxWidth, "tall"/"high" maxHeight, in cm.
- "bestseller", "customizable", "package"/"set" set their boolean to true. Leave unmentioned booleans out entirely.
- Unknown materials or styles are omitted, never guessed.

Examples:
Query: show me 2 of the newest customizable Narra dining tables under 60000 php
{"semanticQuery":"Narra dining tables","limit":2,"sortBy":"createdAt","sortOrder":"desc","filters":{"isCustomizable":true,"materials":["narra"],"maxPrice":60000}}

Query: i need a wardrobe that is not more than 180cm tall
{"semanticQuery":"wardrobe","filters":{"maxHeight":180}}

Query: narra
{"semanticQuery":"narra","filters":{"materials":["narra"]}}

Query: `)
	b.WriteString(raw)
	b.WriteString("\n")
	return b.String()
}

// buildContextualPrompt renders the pairing/completion prompt: instead of a
// literal product phrase it asks the model to infer what the shopper's room
// still needs, using furniture relationships (an office table pairs with
// office chairs, a bed frame completes with a mattress and nightstands).
func buildContextualPrompt(raw string, bands Bands) string {
	var b strings.Builder
	b.WriteString(`You are a furniture advisor. The shopper describes a situation rather than naming a product. Infer what their room needs next and respond with ONLY one JSON object, no prose, no code fences.

Schema:
{
  "semanticQuery": string,       // the inferred need as a product phrase, e.g. "office chairs"
  "room": string,                // target room, e.g. "home office", "dining room"
  "recommendation": "pairing"|"completion"|"replacement"|"upgrade",
  "limit": int,
  "sortBy": "price"|"sales"|"createdAt", "sortOrder": "asc"|"desc",
  "filters": { same keys and rules as a literal search }
}

Relationship guide: tables pair with chairs; beds complete with mattresses, nightstands and wardrobes; sofas pair with coffee tables and shelves; desks pair with office chairs and drawers. "worn out"/"broken" means replacement; "nicer"/"better" means upgrade.
`)
	fmt.Fprintf(&b, "Price words map as in literal search: cheap means maxPrice %.0f, premium means minPrice %.0f, literal numbers win.\n\n",
		bands.CheapMaxPrice, bands.PremiumMinPrice)
	b.WriteString(`Example:
Query: i just bought an office table for my home office
{"semanticQuery":"office chairs","room":"home office","recommendation":"pairing","filters":{}}

Query: `)
	b.WriteString(raw)
	b.WriteString("\n")
	return b.String()
}
