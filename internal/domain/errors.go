package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrItemNotFound signals a missing catalog item.
	ErrItemNotFound = errors.New("catalog item not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a text generation provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrInvalidDimension signals a custom dimension outside the item's bounds.
	ErrInvalidDimension = errors.New("invalid customization dimension")
	// ErrInvalidMaterial signals a material outside the item's allowed set.
	ErrInvalidMaterial = errors.New("invalid customization material")
	// ErrNotCustomizable signals a customization request against a fixed item.
	ErrNotCustomizable = errors.New("item is not customizable")
)

// DimensionError wraps ErrInvalidDimension with the offending axis and bounds.
type DimensionError struct {
	Axis  string
	Value float64
	Min   float64
	Max   float64
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s %g outside [%g, %g] cm",
		ErrInvalidDimension.Error(), e.Axis, e.Value, e.Min, e.Max)
}

func (e *DimensionError) Unwrap() error { return ErrInvalidDimension }

// NewDimensionError creates a dimension bounds violation error.
func NewDimensionError(axis string, value, min, max float64) error {
	return &DimensionError{Axis: axis, Value: value, Min: min, Max: max}
}

// MaterialError wraps ErrInvalidMaterial with the offending part and the allowed set.
type MaterialError struct {
	Part     string
	Material string
	Allowed  []string
}

func (e *MaterialError) Error() string {
	return fmt.Sprintf("%s: %q not available for %s (allowed: %s)",
		ErrInvalidMaterial.Error(), e.Material, e.Part, strings.Join(e.Allowed, ", "))
}

func (e *MaterialError) Unwrap() error { return ErrInvalidMaterial }

// NewMaterialError creates a material rejection error.
func NewMaterialError(part, material string, allowed []string) error {
	return &MaterialError{Part: part, Material: material, Allowed: allowed}
}
