// Package pricing computes the price of a customized catalog item. The
// calculation is a pure function of the item's pricing rules and the
// request: no clock, no store, no provider calls.
package pricing

import (
	"math"
	"strings"

	"github.com/tindahan-labs/tindahan/internal/domain"
	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
)

// Request is a customer's customization of one cart/order line item.
// Dimensions are cm, matching the item's base dimensions.
type Request struct {
	Length        float64
	Width         float64
	Height        float64
	FrameMaterial string
	TopMaterial   string
	Quantity      int
}

// Quote is the priced result of a customization request.
type Quote struct {
	UnitPrice float64
	Quantity  int
	Subtotal  float64
}

// Compute prices a customization request against the item's pricing rules.
// Fails with domain.ErrInvalidDimension when a requested dimension is
// non-positive or outside the item's configured bounds, and with
// domain.ErrInvalidMaterial when a requested material is not in the item's
// allowed set. Out-of-bounds input is rejected, never clamped.
func Compute(item catalog.Item, req Request) (Quote, error) {
	if !item.IsCustomizable || item.Pricing == nil {
		return Quote{}, domain.ErrNotCustomizable
	}
	rules := item.Pricing

	price := rules.BasePrice

	for _, axis := range []struct {
		name  string
		value float64
	}{
		{catalog.AxisLength, req.Length},
		{catalog.AxisWidth, req.Width},
		{catalog.AxisHeight, req.Height},
	} {
		rule, ok := rules.Axes[axis.name]
		if !ok {
			// Axis not customizable on this item: only its base value passes.
			if axis.value != item.Dimensions.Axis(axis.name) {
				return Quote{}, domain.NewDimensionError(
					axis.name, axis.value,
					item.Dimensions.Axis(axis.name), item.Dimensions.Axis(axis.name),
				)
			}
			continue
		}
		if axis.value <= 0 || axis.value < rule.Min || axis.value > rule.Max {
			return Quote{}, domain.NewDimensionError(axis.name, axis.value, rule.Min, rule.Max)
		}
		price += rule.RatePerCM * (axis.value - rule.Base)
	}

	multiplier := 1.0

	if req.FrameMaterial != "" {
		rate, ok := rules.FrameMaterials[strings.ToLower(req.FrameMaterial)]
		if !ok {
			return Quote{}, domain.NewMaterialError(
				"legs/frame", req.FrameMaterial, rules.AllowedFrameMaterials(),
			)
		}
		price += rate.Surcharge
		if rate.Multiplier > 0 {
			multiplier *= rate.Multiplier
		}
	}

	if req.TopMaterial != "" {
		rate, ok := rules.TopMaterials[strings.ToLower(req.TopMaterial)]
		if !ok {
			return Quote{}, domain.NewMaterialError(
				"tabletop", req.TopMaterial, rules.AllowedTopMaterials(),
			)
		}
		price += rate.Surcharge
		if rate.Multiplier > 0 {
			multiplier *= rate.Multiplier
		}
	}

	unit := roundCentavo(price * multiplier)

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	return Quote{
		UnitPrice: unit,
		Quantity:  qty,
		Subtotal:  roundCentavo(unit * float64(qty)),
	}, nil
}

// roundCentavo rounds to two decimal places.
func roundCentavo(v float64) float64 {
	return math.Round(v*100) / 100
}
