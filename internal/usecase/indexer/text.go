package indexer

import (
	"strings"

	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
)

// BuildItemText assembles the text block an item is embedded from: name,
// furniture type, description, and category names, with flag phrases
// appended only for traits the item actually has. Whitespace is collapsed
// so formatting noise in descriptions never reaches the model.
func BuildItemText(item catalog.Item) string {
	parts := []string{item.Name, item.FurnitureType, item.Description}
	parts = append(parts, item.Categories...)

	if item.IsBestseller {
		parts = append(parts, "bestseller")
	}
	if item.IsPackage {
		parts = append(parts, "furniture package set")
	}
	if item.IsCustomizable {
		parts = append(parts, "customizable")
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
