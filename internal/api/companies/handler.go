package companies

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/johnwards/hublens/internal/api"
	"github.com/johnwards/hublens/internal/domain"
	"github.com/johnwards/hublens/internal/hubspot"
	"github.com/johnwards/hublens/internal/queryparse"
	"github.com/johnwards/hublens/internal/translate"
)

// CompanyClient is the HubSpot surface the handlers need.
type CompanyClient interface {
	SearchCompanies(ctx context.Context, filters []domain.Filter, properties []string, limit int) (*hubspot.SearchResult, error)
	GetCompany(ctx context.Context, id string, properties []string) (*domain.Company, error)
	ListCompanies(ctx context.Context, limit int, after string, properties []string) (*hubspot.SearchResult, error)
}

// Limits bounds the result sizes callers may request.
type Limits struct {
	Default int
	Max     int
}

// Handler serves the company endpoints.
type Handler struct {
	client     CompanyClient
	parser     *queryparse.Parser
	translator *translate.Translator
	limits     Limits
}

// NewHandler builds a company handler backed by the given HubSpot client.
func NewHandler(client CompanyClient, parser *queryparse.Parser, translator *translate.Translator, limits Limits) *Handler {
	if limits.Default <= 0 {
		limits.Default = 100
	}
	if limits.Max <= 0 {
		limits.Max = 200
	}
	return &Handler{client: client, parser: parser, translator: translator, limits: limits}
}

// SearchRequest is the body of POST /companies/search.
type SearchRequest struct {
	Query      string            `json:"query"`
	Filters    []queryparse.Hint `json:"filters,omitempty"`
	Properties []string          `json:"properties,omitempty"`
	Limit      int               `json:"limit,omitempty"`
}

// SearchResponse is the translated search result plus parse metadata the
// assistant uses to explain what it did (and did not) understand.
type SearchResponse struct {
	Companies    []domain.DisplayCompany `json:"companies"`
	Total        int                     `json:"total"`
	Filters      []domain.Filter         `json:"filters"`
	Truncated    bool                    `json:"truncated"`
	Unrecognized []string                `json:"unrecognized,omitempty"`
	Ambiguities  []queryparse.Ambiguity  `json:"ambiguities,omitempty"`
	DroppedHints int                     `json:"droppedHints,omitempty"`
}

// ListResponse is the translated company list.
type ListResponse struct {
	Companies []domain.DisplayCompany `json:"companies"`
	Total     int                     `json:"total"`
	After     string                  `json:"after,omitempty"`
}

// Search handles POST /companies/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	parsed := h.parser.Parse(req.Query, req.Filters)

	limit := h.clampLimit(req.Limit)
	if parsed.Limit > 0 && req.Limit == 0 {
		limit = h.clampLimit(parsed.Limit)
	}

	result, err := h.client.SearchCompanies(r.Context(), parsed.Filters, req.Properties, limit)
	if err != nil {
		h.writeUpstreamError(w, corrID, err)
		return
	}

	resp := SearchResponse{
		Companies:    h.translateAll(result.Results, req.Properties),
		Total:        result.Total,
		Filters:      parsed.Filters,
		Truncated:    parsed.Truncated,
		Unrecognized: parsed.Unrecognized,
		Ambiguities:  parsed.Ambiguities,
		DroppedHints: parsed.DroppedHints,
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

// Get handles GET /companies/{companyId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	id := r.PathValue("companyId")

	properties := splitProperties(r.URL.Query().Get("properties"))
	company, err := h.client.GetCompany(r.Context(), id, properties)
	if err != nil {
		if errors.Is(err, hubspot.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Company not found", corrID))
			return
		}
		h.writeUpstreamError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, h.translator.TranslateCompany(company, properties))
}

// List handles GET /companies.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	q := r.URL.Query()

	limit := h.limits.Default
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			api.WriteError(w, http.StatusBadRequest, api.NewValidationError("limit must be a positive integer", corrID, nil))
			return
		}
		limit = h.clampLimit(n)
	}

	properties := splitProperties(q.Get("properties"))
	result, err := h.client.ListCompanies(r.Context(), limit, q.Get("after"), properties)
	if err != nil {
		h.writeUpstreamError(w, corrID, err)
		return
	}

	resp := ListResponse{
		Companies: h.translateAll(result.Results, properties),
		Total:     result.Total,
	}
	if result.Paging != nil {
		resp.After = result.Paging.Next.After
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) translateAll(companies []domain.Company, order []string) []domain.DisplayCompany {
	out := make([]domain.DisplayCompany, 0, len(companies))
	for i := range companies {
		out = append(out, h.translator.TranslateCompany(&companies[i], order))
	}
	return out
}

func (h *Handler) clampLimit(limit int) int {
	if limit <= 0 {
		return h.limits.Default
	}
	if limit > h.limits.Max {
		return h.limits.Max
	}
	return limit
}

func (h *Handler) writeUpstreamError(w http.ResponseWriter, corrID string, err error) {
	if errors.Is(err, hubspot.ErrUnauthorized) {
		api.WriteError(w, http.StatusBadGateway, api.NewUpstreamError("HubSpot rejected the access token", corrID))
		return
	}
	api.WriteError(w, http.StatusBadGateway, api.NewUpstreamError(err.Error(), corrID))
}

func splitProperties(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	props := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			props = append(props, p)
		}
	}
	return props
}
