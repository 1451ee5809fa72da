// Package catalog defines the read-only view of a storefront item that the
// search and pricing pipeline consumes. Items are owned by the storefront
// CRUD layer; this core only ever reads them and rewrites their embedding.
package catalog

import "time"

// Customization axes. Keys of PricingRules.Axes and PriceRequest fields.
const (
	AxisLength = "length"
	AxisWidth  = "width"
	AxisHeight = "height"
)

// Item is a catalog item document. Dimensions are in cm, prices in PHP.
type Item struct {
	ID             string
	Name           string
	Description    string
	FurnitureType  string
	Categories     []string
	Materials      []string
	Styles         []string
	Dimensions     Dimensions
	Price          float64
	IsBestseller   bool
	IsCustomizable bool
	IsPackage      bool
	SalesCount     int
	CreatedAt      time.Time

	// Embedding is the stored description vector, empty until indexed.
	Embedding []float32

	// Pricing holds the item's customization pricing rules.
	// Nil when the item is not customizable.
	Pricing *PricingRules
}

// Dimensions is an item's base size in cm.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Axis returns the dimension along the named axis, 0 for unknown names.
func (d Dimensions) Axis(name string) float64 {
	switch name {
	case AxisLength:
		return d.Length
	case AxisWidth:
		return d.Width
	case AxisHeight:
		return d.Height
	}
	return 0
}

// PricingRules is the per-item customization price configuration. The
// calculator evaluates these as opaque data: nothing in here is a global
// constant, every item carries its own rates and bounds.
type PricingRules struct {
	// BasePrice is the price of the item at its base dimensions with its
	// default materials.
	BasePrice float64 `json:"basePrice"`
	// Axes maps an axis name to its customization rule. Axes absent from
	// the map cannot be customized on this item.
	Axes map[string]AxisRule `json:"axes"`
	// FrameMaterials maps allowed legs/frame materials (lowercase) to their
	// price adjustments.
	FrameMaterials map[string]MaterialRate `json:"frameMaterials"`
	// TopMaterials maps allowed tabletop/surface materials (lowercase) to
	// their price adjustments.
	TopMaterials map[string]MaterialRate `json:"topMaterials"`
}

// AxisRule bounds one customizable axis and prices deviation from its base.
type AxisRule struct {
	Base      float64 `json:"base"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	RatePerCM float64 `json:"ratePerCm"`
}

// MaterialRate adjusts the price for a selected material: a flat surcharge
// plus an optional multiplier applied to the dimension-adjusted price.
// A zero Multiplier means no multiplicative adjustment.
type MaterialRate struct {
	Surcharge  float64 `json:"surcharge"`
	Multiplier float64 `json:"multiplier"`
}

// AllowedFrameMaterials returns the list of frame material names, for
// error reporting.
func (r *PricingRules) AllowedFrameMaterials() []string {
	return materialNames(r.FrameMaterials)
}

// AllowedTopMaterials returns the list of tabletop material names.
func (r *PricingRules) AllowedTopMaterials() []string {
	return materialNames(r.TopMaterials)
}

func materialNames(m map[string]MaterialRate) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}
