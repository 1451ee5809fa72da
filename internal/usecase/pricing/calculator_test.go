package pricing

import (
	"errors"
	"testing"

	"github.com/tindahan-labs/tindahan/internal/domain"
	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
)

func customizableTable(t *testing.T) catalog.Item {
	t.Helper()
	return catalog.Item{
		ID:             "tbl-1",
		Name:           "Solid Narra Dining Table",
		IsCustomizable: true,
		Price:          24000,
		Dimensions:     catalog.Dimensions{Length: 180, Width: 90, Height: 75},
		Pricing: &catalog.PricingRules{
			BasePrice: 24000,
			Axes: map[string]catalog.AxisRule{
				catalog.AxisLength: {Base: 180, Min: 120, Max: 240, RatePerCM: 150},
				catalog.AxisWidth:  {Base: 90, Min: 70, Max: 110, RatePerCM: 120},
				catalog.AxisHeight: {Base: 75, Min: 70, Max: 80, RatePerCM: 80},
			},
			FrameMaterials: map[string]catalog.MaterialRate{
				"narra": {Surcharge: 0},
				"steel": {Surcharge: 2500},
			},
			TopMaterials: map[string]catalog.MaterialRate{
				"narra":  {Surcharge: 0},
				"marble": {Surcharge: 6000, Multiplier: 1.1},
			},
		},
	}
}

func baseRequest() Request {
	return Request{Length: 180, Width: 90, Height: 75, Quantity: 1}
}

func TestComputeBaseConfiguration(t *testing.T) {
	q, err := Compute(customizableTable(t), baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.UnitPrice != 24000 {
		t.Errorf("UnitPrice = %g, want 24000", q.UnitPrice)
	}
	if q.Subtotal != 24000 {
		t.Errorf("Subtotal = %g, want 24000", q.Subtotal)
	}
}

func TestComputeDimensionDeltas(t *testing.T) {
	req := baseRequest()
	req.Length = 200 // +20cm * 150
	req.Width = 80   // -10cm * 120

	q, err := Compute(customizableTable(t), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 24000.0 + 20*150 - 10*120
	if q.UnitPrice != want {
		t.Errorf("UnitPrice = %g, want %g", q.UnitPrice, want)
	}
}

func TestComputeMaterialSurchargeAndMultiplier(t *testing.T) {
	req := baseRequest()
	req.FrameMaterial = "Steel" // case-insensitive lookup
	req.TopMaterial = "marble"
	req.Quantity = 2

	q, err := Compute(customizableTable(t), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (24000.0 + 2500 + 6000) * 1.1
	if q.UnitPrice != want {
		t.Errorf("UnitPrice = %g, want %g", q.UnitPrice, want)
	}
	if q.Subtotal != want*2 {
		t.Errorf("Subtotal = %g, want %g", q.Subtotal, want*2)
	}
}

func TestComputeIdempotent(t *testing.T) {
	item := customizableTable(t)
	req := baseRequest()
	req.Length = 220
	req.TopMaterial = "marble"

	first, err := Compute(item, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compute(item, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("identical inputs priced differently: %+v vs %+v", first, second)
	}
}

func TestComputeRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero height", func(r *Request) { r.Height = 0 }},
		{"negative length", func(r *Request) { r.Length = -180 }},
		{"above max", func(r *Request) { r.Length = 241 }},
		{"below min", func(r *Request) { r.Width = 69 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			_, err := Compute(customizableTable(t), req)
			if !errors.Is(err, domain.ErrInvalidDimension) {
				t.Errorf("err = %v, want ErrInvalidDimension", err)
			}
		})
	}
}

func TestComputeRejectsUnknownMaterial(t *testing.T) {
	req := baseRequest()
	req.TopMaterial = "glass"

	_, err := Compute(customizableTable(t), req)
	if !errors.Is(err, domain.ErrInvalidMaterial) {
		t.Fatalf("err = %v, want ErrInvalidMaterial", err)
	}

	var matErr *domain.MaterialError
	if !errors.As(err, &matErr) {
		t.Fatalf("err = %v, want *domain.MaterialError", err)
	}
	if matErr.Part != "tabletop" || matErr.Material != "glass" {
		t.Errorf("unexpected detail: %+v", matErr)
	}
}

func TestComputeFixedAxisOnlyAcceptsBaseValue(t *testing.T) {
	item := customizableTable(t)
	delete(item.Pricing.Axes, catalog.AxisHeight)

	req := baseRequest() // height 75 == base, passes
	if _, err := Compute(item, req); err != nil {
		t.Fatalf("base value on fixed axis rejected: %v", err)
	}

	req.Height = 80
	if _, err := Compute(item, req); !errors.Is(err, domain.ErrInvalidDimension) {
		t.Errorf("customized fixed axis: err = %v, want ErrInvalidDimension", err)
	}
}

func TestComputeNotCustomizable(t *testing.T) {
	item := customizableTable(t)
	item.IsCustomizable = false

	_, err := Compute(item, baseRequest())
	if !errors.Is(err, domain.ErrNotCustomizable) {
		t.Errorf("err = %v, want ErrNotCustomizable", err)
	}
}
