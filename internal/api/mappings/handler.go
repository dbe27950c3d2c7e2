package mappings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/johnwards/hublens/internal/api"
	"github.com/johnwards/hublens/internal/catalog"
)

// CatalogSource rebuilds the property catalog from the upstream portal.
type CatalogSource interface {
	BuildCatalog(ctx context.Context) ([]catalog.PropertyDef, error)
}

// Handler serves the mapping inspection and refresh endpoints.
type Handler struct {
	store  *catalog.Store
	source CatalogSource
}

// SearchResponse lists property mappings matching a search term.
type SearchResponse struct {
	Term    string                `json:"term"`
	Results catalog.SearchMatches `json:"results"`
}

// RefreshResponse reports the catalog size after a successful refresh.
type RefreshResponse struct {
	Refreshed bool          `json:"refreshed"`
	Stats     catalog.Stats `json:"stats"`
}

// Stats handles GET /mappings/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.store.Stats())
}

// Search handles GET /mappings/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	term := r.URL.Query().Get("term")
	if term == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("term query parameter is required", corrID, nil))
		return
	}

	api.WriteJSON(w, http.StatusOK, SearchResponse{
		Term:    term,
		Results: h.store.Search(term),
	})
}

// Refresh handles POST /mappings/refresh. On failure the previously loaded
// catalog stays in place.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	if h.source == nil {
		api.WriteError(w, http.StatusBadGateway, api.NewUpstreamError("No HubSpot access token configured; refresh unavailable", corrID))
		return
	}

	defs, err := h.source.BuildCatalog(r.Context())
	if err != nil {
		slog.Error("catalog rebuild failed", "error", err, "correlationId", corrID)
		api.WriteError(w, http.StatusBadGateway, api.NewUpstreamError("Failed to fetch property definitions from HubSpot", corrID))
		return
	}
	if err := h.store.Refresh(defs); err != nil {
		slog.Error("catalog refresh failed", "error", err, "correlationId", corrID)
		api.WriteError(w, http.StatusBadGateway, api.NewUpstreamError("Failed to refresh mappings from HubSpot", corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, RefreshResponse{Refreshed: true, Stats: h.store.Stats()})
}
