package companies

import (
	"net/http"

	"github.com/johnwards/hublens/internal/queryparse"
	"github.com/johnwards/hublens/internal/translate"
)

// RegisterRoutes adds all company endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, client CompanyClient, parser *queryparse.Parser, translator *translate.Translator, limits Limits) {
	h := NewHandler(client, parser, translator, limits)

	mux.HandleFunc("POST /companies/search", h.Search)
	mux.HandleFunc("GET /companies", h.List)
	mux.HandleFunc("GET /companies/{companyId}", h.Get)
}
