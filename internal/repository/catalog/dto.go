package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	domcat "github.com/tindahan-labs/tindahan/internal/domain/catalog"
)

// itemDoc mirrors the storefront's JSON layout for an item document.
// Field names follow the storefront API's camelCase convention.
type itemDoc struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	FurnitureType  string               `json:"furnitureType"`
	Categories     []string             `json:"categories,omitempty"`
	Materials      []string             `json:"materials,omitempty"`
	Styles         []string             `json:"styles,omitempty"`
	Dimensions     domcat.Dimensions    `json:"dimensions"`
	Price          float64              `json:"price"`
	IsBestseller   bool                 `json:"isBestseller"`
	IsCustomizable bool                 `json:"isCustomizable"`
	IsPackage      bool                 `json:"isPackage"`
	SalesCount     int                  `json:"salesCount"`
	CreatedAt      string               `json:"createdAt,omitempty"`
	Embedding      []float32            `json:"embedding,omitempty"`
	Pricing        *domcat.PricingRules `json:"pricing,omitempty"`
}

func docToItem(d itemDoc) (domcat.Item, error) {
	item := domcat.Item{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		FurnitureType:  d.FurnitureType,
		Categories:     d.Categories,
		Materials:      d.Materials,
		Styles:         d.Styles,
		Dimensions:     d.Dimensions,
		Price:          d.Price,
		IsBestseller:   d.IsBestseller,
		IsCustomizable: d.IsCustomizable,
		IsPackage:      d.IsPackage,
		SalesCount:     d.SalesCount,
		Embedding:      d.Embedding,
		Pricing:        d.Pricing,
	}
	if d.CreatedAt != "" {
		ts, err := time.Parse(time.RFC3339, d.CreatedAt)
		if err != nil {
			return domcat.Item{}, fmt.Errorf("parse createdAt %q: %w", d.CreatedAt, err)
		}
		item.CreatedAt = ts
	}
	return item, nil
}

// parseJSONGetResult decodes a JSON.GET "$" payload, which RedisJSON wraps
// in a one-element array.
func parseJSONGetResult(raw []byte) (domcat.Item, error) {
	var docs []itemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return domcat.Item{}, fmt.Errorf("unmarshal item: %w", err)
	}
	if len(docs) == 0 {
		return domcat.Item{}, fmt.Errorf("empty item payload")
	}
	return docToItem(docs[0])
}
