package hubspot

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/johnwards/hublens/internal/domain"
)

const (
	companiesPath = "/crm/v3/objects/companies"
	searchPath    = "/crm/v3/objects/companies/search"
)

// DefaultCompanyProperties are requested when the caller does not name any.
var DefaultCompanyProperties = []string{
	"name", "domain", "industry", "city", "state", "country",
	"numberofemployees", "annualrevenue", "createdate",
	"hs_lastmodifieddate", "account_status", "lifecyclestage",
	"hubspot_owner_id",
}

// wireFilter is a filter clause in HubSpot search API form.
type wireFilter struct {
	PropertyName string   `json:"propertyName"`
	Operator     string   `json:"operator"`
	Value        string   `json:"value,omitempty"`
	HighValue    string   `json:"highValue,omitempty"`
	Values       []string `json:"values,omitempty"`
}

type filterGroup struct {
	Filters []wireFilter `json:"filters"`
}

type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties,omitempty"`
	Limit        int           `json:"limit,omitempty"`
	After        string        `json:"after,omitempty"`
}

// Paging holds the cursor for the next page of results.
type Paging struct {
	Next struct {
		After string `json:"after"`
	} `json:"next"`
}

// SearchResult is a page of companies from a search or list call.
type SearchResult struct {
	Total   int              `json:"total"`
	Results []domain.Company `json:"results"`
	Paging  *Paging          `json:"paging,omitempty"`
}

// toWire converts domain filters to HubSpot search API filters, combined
// into a single AND group.
func toWire(filters []domain.Filter) []filterGroup {
	if len(filters) == 0 {
		return []filterGroup{}
	}
	wf := make([]wireFilter, 0, len(filters))
	for _, f := range filters {
		wf = append(wf, wireFilter{
			PropertyName: f.Property,
			Operator:     f.Operator.HubSpot(),
			Value:        f.Value,
			HighValue:    f.HighValue,
			Values:       f.Values,
		})
	}
	return []filterGroup{{Filters: wf}}
}

// SearchCompanies executes a filtered company search.
func (c *Client) SearchCompanies(ctx context.Context, filters []domain.Filter, properties []string, limit int) (*SearchResult, error) {
	if len(properties) == 0 {
		properties = DefaultCompanyProperties
	}
	req := searchRequest{
		FilterGroups: toWire(filters),
		Properties:   properties,
		Limit:        limit,
	}
	var result SearchResult
	if err := c.do(ctx, http.MethodPost, searchPath, nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCompany fetches one company by ID. Returns ErrNotFound (wrapped) when
// the company does not exist.
func (c *Client) GetCompany(ctx context.Context, id string, properties []string) (*domain.Company, error) {
	if len(properties) == 0 {
		properties = DefaultCompanyProperties
	}
	query := url.Values{"properties": {strings.Join(properties, ",")}}

	var company domain.Company
	if err := c.do(ctx, http.MethodGet, companiesPath+"/"+url.PathEscape(id), query, nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// ListCompanies fetches a page of companies.
func (c *Client) ListCompanies(ctx context.Context, limit int, after string, properties []string) (*SearchResult, error) {
	if len(properties) == 0 {
		properties = DefaultCompanyProperties
	}
	query := url.Values{
		"properties": {strings.Join(properties, ",")},
		"limit":      {strconv.Itoa(limit)},
	}
	if after != "" {
		query.Set("after", after)
	}

	var result SearchResult
	if err := c.do(ctx, http.MethodGet, companiesPath, query, nil, &result); err != nil {
		return nil, err
	}
	result.Total = len(result.Results)
	return &result, nil
}
