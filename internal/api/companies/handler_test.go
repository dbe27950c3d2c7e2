package companies_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnwards/hublens/internal/api/companies"
	"github.com/johnwards/hublens/internal/domain"
	"github.com/johnwards/hublens/internal/hubspot"
	"github.com/johnwards/hublens/internal/queryparse"
	"github.com/johnwards/hublens/internal/testhelpers"
	"github.com/johnwards/hublens/internal/translate"
)

// fakeClient records the filters it was asked for and serves canned results.
type fakeClient struct {
	lastFilters []domain.Filter
	lastLimit   int
	companies   []domain.Company
	err         error
}

func (f *fakeClient) SearchCompanies(ctx context.Context, filters []domain.Filter, properties []string, limit int) (*hubspot.SearchResult, error) {
	f.lastFilters = filters
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return &hubspot.SearchResult{Total: len(f.companies), Results: f.companies}, nil
}

func (f *fakeClient) GetCompany(ctx context.Context, id string, properties []string) (*domain.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.companies {
		if f.companies[i].ID == id {
			return &f.companies[i], nil
		}
	}
	return nil, fmt.Errorf("company %s: %w", id, hubspot.ErrNotFound)
}

func (f *fakeClient) ListCompanies(ctx context.Context, limit int, after string, properties []string) (*hubspot.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &hubspot.SearchResult{Total: len(f.companies), Results: f.companies}, nil
}

func newMux(t *testing.T, client companies.CompanyClient) *http.ServeMux {
	t.Helper()
	store := testhelpers.NewCatalogStore(t)
	mux := http.NewServeMux()
	companies.RegisterRoutes(mux, client,
		queryparse.New(store, queryparse.Config{}),
		translate.New(store),
		companies.Limits{Default: 100, Max: 200},
	)
	return mux
}

func acmeCompany() domain.Company {
	return domain.Company{
		ID: "101",
		Properties: map[string]domain.Value{
			"name":           domain.String("Acme Corp"),
			"annualrevenue":  domain.String("250000000"),
			"account_status": domain.String("cancelled"),
		},
	}
}

func TestSearchTranslatesQueryAndResults(t *testing.T) {
	client := &fakeClient{companies: []domain.Company{acmeCompany()}}
	mux := newMux(t, client)

	body := strings.NewReader(`{"query": "technology companies with high revenue"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies/search", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp companies.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(client.lastFilters) != 2 {
		t.Errorf("expected 2 filters sent upstream, got %+v", client.lastFilters)
	}
	if resp.Total != 1 || len(resp.Companies) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if client.lastLimit != 100 {
		t.Errorf("limit = %d, want default 100", client.lastLimit)
	}

	// The response carries display labels and formatted values.
	raw := rec.Body.String()
	for _, want := range []string{`"Company Name":"Acme Corp"`, `"Annual Revenue":"250.0M"`, `"Account Status":"Pending Cancellation"`} {
		if !strings.Contains(raw, want) {
			t.Errorf("response missing %s in %s", want, raw)
		}
	}
}

func TestSearchQueryLimit(t *testing.T) {
	client := &fakeClient{}
	mux := newMux(t, client)

	body := strings.NewReader(`{"query": "top 50 technology companies"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies/search", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if client.lastLimit != 50 {
		t.Errorf("limit = %d, want 50 from query text", client.lastLimit)
	}

	// An explicit body limit beats the parsed one and is clamped to the max.
	body = strings.NewReader(`{"query": "top 50 technology companies", "limit": 1000}`)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies/search", body))
	if client.lastLimit != 200 {
		t.Errorf("limit = %d, want clamped 200", client.lastLimit)
	}
}

func TestSearchSurfacesParseMetadata(t *testing.T) {
	client := &fakeClient{}
	mux := newMux(t, client)

	body := strings.NewReader(`{
		"query": "purple companies",
		"filters": [{"property": "no_such_thing", "operator": "EQUALS", "value": "x"}]
	}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies/search", body))

	var resp companies.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DroppedHints != 1 {
		t.Errorf("droppedHints = %d, want 1", resp.DroppedHints)
	}
	if len(resp.Unrecognized) != 1 || resp.Unrecognized[0] != "purple" {
		t.Errorf("unrecognized = %v, want [purple]", resp.Unrecognized)
	}
}

func TestSearchRejectsBadJSON(t *testing.T) {
	mux := newMux(t, &fakeClient{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies/search", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	mux := newMux(t, &fakeClient{err: hubspot.ErrUnauthorized})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies/search", strings.NewReader(`{"query": ""}`)))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestGetCompany(t *testing.T) {
	mux := newMux(t, &fakeClient{companies: []domain.Company{acmeCompany()}})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/101", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"Company Name":"Acme Corp"`) {
		t.Errorf("expected translated properties, got %s", rec.Body)
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	mux := newMux(t, &fakeClient{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "OBJECT_NOT_FOUND") {
		t.Errorf("expected OBJECT_NOT_FOUND category, got %s", rec.Body)
	}
}

func TestListCompanies(t *testing.T) {
	mux := newMux(t, &fakeClient{companies: []domain.Company{acmeCompany()}})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies?limit=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp companies.ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestListRejectsBadLimit(t *testing.T) {
	mux := newMux(t, &fakeClient{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies?limit=banana", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
