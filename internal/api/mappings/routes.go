package mappings

import (
	"net/http"

	"github.com/johnwards/hublens/internal/catalog"
)

// RegisterRoutes adds the mapping endpoints to the given mux. source may be
// nil when no HubSpot credentials are configured; refresh then reports an
// upstream error and the seeded catalog keeps serving.
func RegisterRoutes(mux *http.ServeMux, store *catalog.Store, source CatalogSource) {
	h := &Handler{store: store, source: source}

	mux.HandleFunc("GET /mappings/stats", h.Stats)
	mux.HandleFunc("GET /mappings/search", h.Search)
	mux.HandleFunc("POST /mappings/refresh", h.Refresh)
}
