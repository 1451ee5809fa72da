// Package chi is the HTTP transport: route registration, request decoding
// and validation, and domain-error-to-status mapping.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tindahan-labs/tindahan/internal/domain"
	"github.com/tindahan-labs/tindahan/internal/domain/catalog"
	"github.com/tindahan-labs/tindahan/internal/domain/search/spec"
	healthuc "github.com/tindahan-labs/tindahan/internal/usecase/health"
	indexeruc "github.com/tindahan-labs/tindahan/internal/usecase/indexer"
	"github.com/tindahan-labs/tindahan/internal/usecase/normalize"
	"github.com/tindahan-labs/tindahan/internal/usecase/pricing"
	searchuc "github.com/tindahan-labs/tindahan/internal/usecase/search"
)

// Searcher runs the query pipeline.
type Searcher interface {
	Search(ctx context.Context, raw string) ([]searchuc.Ranked, spec.Spec, error)
	Suggest(ctx context.Context, raw string) ([]searchuc.Ranked, normalize.ContextualResult, error)
}

// ItemGetter reads single catalog items for quoting.
type ItemGetter interface {
	Get(ctx context.Context, id string) (catalog.Item, error)
}

// Reindexer rebuilds catalog embeddings.
type Reindexer interface {
	Reindex(ctx context.Context) (indexeruc.Result, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers for the storefront search API.
type Server struct {
	search        Searcher
	items         ItemGetter
	indexer       Reindexer
	health        HealthChecker
	validate      *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	items ItemGetter,
	indexer Reindexer,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		items:    items,
		indexer:  indexer,
		health:   health,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		dimensionHandler,
		materialHandler,
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, codeItemNotFound),
		sentinelHandler(domain.ErrNotCustomizable, http.StatusBadRequest, codeNotCustomizable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrGenerationProviderError, http.StatusBadGateway, codeProviderError),
	}
	return s
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/search", s.SearchCatalog)
		r.Get("/search/suggest", s.SuggestItems)
		r.Post("/quote", s.QuoteCustomization)
		r.Post("/admin/reindex", s.ReindexCatalog)
	})
}

// SearchCatalog handles GET /v1/search?q=...
func (s *Server) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter q is required")
		return
	}

	results, sp, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Items: rankedToDTO(results),
		Total: len(results),
		Spec:  sp,
	})
}

// SuggestItems handles GET /v1/search/suggest?q=...
func (s *Server) SuggestItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter q is required")
		return
	}

	results, res, err := s.search.Suggest(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestResponse{
		Items:          rankedToDTO(results),
		Total:          len(results),
		Spec:           res.Spec,
		Room:           res.Room,
		Recommendation: string(res.Recommendation),
	})
}

// QuoteCustomization handles POST /v1/quote.
func (s *Server) QuoteCustomization(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	item, err := s.items.Get(r.Context(), req.ItemID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	quote, err := pricing.Compute(item, pricing.Request{
		Length:        req.Length,
		Width:         req.Width,
		Height:        req.Height,
		FrameMaterial: req.FrameMaterial,
		TopMaterial:   req.TopMaterial,
		Quantity:      req.Quantity,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		ItemID:    req.ItemID,
		UnitPrice: quote.UnitPrice,
		Quantity:  quote.Quantity,
		Subtotal:  quote.Subtotal,
		Currency:  "PHP",
	})
}

// ReindexCatalog handles POST /v1/admin/reindex.
func (s *Server) ReindexCatalog(w http.ResponseWriter, r *http.Request) {
	result, err := s.indexer.Reindex(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reindexResponse{
		Processed:  result.Processed,
		Failed:     result.Failed,
		DurationMs: result.Duration.Milliseconds(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrItemNotFound,
		domain.ErrNotCustomizable,
		domain.ErrEmbeddingProviderError,
		domain.ErrGenerationProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

// dimensionHandler handles ErrInvalidDimension with the offending axis and bounds.
func dimensionHandler(w http.ResponseWriter, err error) bool {
	var de *domain.DimensionError
	if !errors.As(err, &de) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"code":    codeInvalidDimension,
		"message": de.Error(),
		"axis":    de.Axis,
		"min":     de.Min,
		"max":     de.Max,
	})
	return true
}

// materialHandler handles ErrInvalidMaterial with the allowed material set.
func materialHandler(w http.ResponseWriter, err error) bool {
	var me *domain.MaterialError
	if !errors.As(err, &me) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"code":    codeInvalidMaterial,
		"message": me.Error(),
		"part":    me.Part,
		"allowed": me.Allowed,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
