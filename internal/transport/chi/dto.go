package chi

import (
	"time"

	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
	"github.com/tindahan-labs/tindahan/internal/domain/search/spec"
	searchuc "github.com/tindahan-labs/tindahan/internal/usecase/search"
)

// errorCode values returned in error responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeItemNotFound     errorCode = "item_not_found"
	codeInvalidDimension errorCode = "invalid_dimension"
	codeInvalidMaterial  errorCode = "invalid_material"
	codeNotCustomizable  errorCode = "not_customizable"
	codeProviderError    errorCode = "provider_error"
	codeInternalError    errorCode = "internal_error"
	codeUnauthorized     errorCode = "unauthorized"
)

// errorResponse is the uniform error payload.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// dimensionsDTO mirrors catalog.Dimensions for responses.
type dimensionsDTO struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// searchItemDTO is one ranked catalog item in a search response.
type searchItemDTO struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	FurnitureType  string        `json:"furnitureType"`
	Price          float64       `json:"price"`
	Materials      []string      `json:"materials,omitempty"`
	Styles         []string      `json:"styles,omitempty"`
	Dimensions     dimensionsDTO `json:"dimensions"`
	IsBestseller   bool          `json:"isBestseller"`
	IsCustomizable bool          `json:"isCustomizable"`
	IsPackage      bool          `json:"isPackage"`
	SalesCount     int           `json:"salesCount"`
	CreatedAt      *time.Time    `json:"createdAt,omitempty"`
	Score          float64       `json:"score"`
}

// searchResponse is the GET /v1/search payload. Spec echoes what the query
// resolved to, so storefront clients can render active filter chips.
type searchResponse struct {
	Items []searchItemDTO `json:"items"`
	Total int             `json:"total"`
	Spec  spec.Spec       `json:"spec"`
}

// suggestResponse is the GET /v1/search/suggest payload.
type suggestResponse struct {
	Items          []searchItemDTO `json:"items"`
	Total          int             `json:"total"`
	Spec           spec.Spec       `json:"spec"`
	Room           string          `json:"room,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
}

// quoteRequest is the POST /v1/quote body.
type quoteRequest struct {
	ItemID        string  `json:"itemId" validate:"required"`
	Length        float64 `json:"length" validate:"gt=0"`
	Width         float64 `json:"width" validate:"gt=0"`
	Height        float64 `json:"height" validate:"gt=0"`
	FrameMaterial string  `json:"frameMaterial"`
	TopMaterial   string  `json:"topMaterial"`
	Quantity      int     `json:"quantity" validate:"omitempty,min=1,max=100"`
}

// quoteResponse is the POST /v1/quote payload. Prices are PHP.
type quoteResponse struct {
	ItemID    string  `json:"itemId"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Currency  string  `json:"currency"`
}

// reindexResponse is the POST /v1/admin/reindex payload.
type reindexResponse struct {
	Processed  int   `json:"processed"`
	Failed     int   `json:"failed"`
	DurationMs int64 `json:"durationMs"`
}

// healthResponse is the GET /health payload.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func rankedToDTO(results []searchuc.Ranked) []searchItemDTO {
	items := make([]searchItemDTO, len(results))
	for i, r := range results {
		items[i] = itemToDTO(r.Item, r.Score)
	}
	return items
}

func itemToDTO(item catalog.Item, score float64) searchItemDTO {
	dto := searchItemDTO{
		ID:            item.ID,
		Name:          item.Name,
		FurnitureType: item.FurnitureType,
		Price:         item.Price,
		Materials:     item.Materials,
		Styles:        item.Styles,
		Dimensions: dimensionsDTO{
			Length: item.Dimensions.Length,
			Width:  item.Dimensions.Width,
			Height: item.Dimensions.Height,
		},
		IsBestseller:   item.IsBestseller,
		IsCustomizable: item.IsCustomizable,
		IsPackage:      item.IsPackage,
		SalesCount:     item.SalesCount,
		Score:          score,
	}
	if !item.CreatedAt.IsZero() {
		t := item.CreatedAt
		dto.CreatedAt = &t
	}
	return dto
}
