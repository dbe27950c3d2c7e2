package hubspot

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/johnwards/hublens/internal/catalog"
)

const (
	propertiesPath = "/crm/v3/properties/companies"
	ownersPath     = "/crm/v3/owners"

	propertiesCacheKey = "properties/companies"
	ownersCacheKey     = "owners"
)

// Discovery fetches property and owner definitions from HubSpot and converts
// them into catalog input. Raw fetch results are cached with a TTL so a
// burst of refresh requests does not hammer the portal.
type Discovery struct {
	client *Client
	cache  *gocache.Cache
}

// NewDiscovery creates a Discovery around client with the given cache TTL.
func NewDiscovery(client *Client, ttl time.Duration) *Discovery {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Discovery{
		client: client,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

// propertyDefinition is a HubSpot property definition as returned by the
// properties API.
type propertyDefinition struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	FieldType string `json:"fieldType"`
	GroupName string `json:"groupName"`
	Options   []struct {
		Label  string `json:"label"`
		Value  string `json:"value"`
		Hidden bool   `json:"hidden"`
	} `json:"options"`
}

// FetchPropertyDefinitions fetches the company property definitions and
// converts them into catalog property defs with human-readable labels.
func (d *Discovery) FetchPropertyDefinitions(ctx context.Context) ([]catalog.PropertyDef, error) {
	if cached, ok := d.cache.Get(propertiesCacheKey); ok {
		return cached.([]catalog.PropertyDef), nil
	}

	var resp struct {
		Results []propertyDefinition `json:"results"`
	}
	if err := d.client.do(ctx, http.MethodGet, propertiesPath, nil, nil, &resp); err != nil {
		return nil, err
	}

	defs := make([]catalog.PropertyDef, 0, len(resp.Results))
	labels := make(map[string]string, len(resp.Results))
	for _, p := range resp.Results {
		if p.Name == "" {
			continue
		}
		label := readableName(p.Name, p.Label)
		if prev, ok := labels[strings.ToLower(label)]; ok {
			// Two properties with colliding labels would make the reverse
			// lookup ambiguous; keep the first and fall back to the raw
			// name for the rest.
			slog.Warn("property label collision, using internal name",
				"property", p.Name, "label", label, "conflictsWith", prev)
			label = p.Name
		}
		labels[strings.ToLower(label)] = p.Name

		def := catalog.PropertyDef{Name: p.Name, Label: label, Type: p.Type}
		if hasOptions(p) {
			for _, opt := range p.Options {
				if opt.Hidden || opt.Label == "" || opt.Value == "" {
					continue
				}
				def.Values = append(def.Values, catalog.ValueDef{Raw: opt.Value, Display: opt.Label})
			}
		}
		defs = append(defs, def)
	}

	d.cache.Set(propertiesCacheKey, defs, gocache.DefaultExpiration)
	return defs, nil
}

func hasOptions(p propertyDefinition) bool {
	if len(p.Options) == 0 {
		return false
	}
	switch p.Type {
	case "enumeration":
		return true
	}
	switch p.FieldType {
	case "select", "radio", "checkbox":
		return true
	}
	return false
}

// owner is a HubSpot owner record.
type owner struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FetchOwners fetches the portal's owners as value mappings for the
// hubspot_owner_id property: display name (or email when unnamed) to owner
// ID. Partial name matches ("tyler" -> "Tyler Beagley") are handled by the
// catalog's substring lookup, so only one entry per owner is needed.
func (d *Discovery) FetchOwners(ctx context.Context) ([]catalog.ValueDef, error) {
	if cached, ok := d.cache.Get(ownersCacheKey); ok {
		return cached.([]catalog.ValueDef), nil
	}

	var resp struct {
		Results []owner `json:"results"`
	}
	if err := d.client.do(ctx, http.MethodGet, ownersPath, nil, nil, &resp); err != nil {
		return nil, err
	}

	values := make([]catalog.ValueDef, 0, len(resp.Results))
	seen := make(map[string]bool, len(resp.Results))
	for _, o := range resp.Results {
		if o.ID == "" {
			continue
		}
		display := strings.TrimSpace(o.FirstName + " " + o.LastName)
		if display == "" {
			display = o.Email
		}
		if display == "" {
			continue
		}
		if seen[strings.ToLower(display)] {
			slog.Warn("duplicate owner name, skipping", "owner", display, "id", o.ID)
			continue
		}
		seen[strings.ToLower(display)] = true
		values = append(values, catalog.ValueDef{Raw: o.ID, Display: display})
	}

	d.cache.Set(ownersCacheKey, values, gocache.DefaultExpiration)
	return values, nil
}

// BuildCatalog fetches property definitions and owners concurrently and
// merges the owners into the hubspot_owner_id property's value table.
func (d *Discovery) BuildCatalog(ctx context.Context) ([]catalog.PropertyDef, error) {
	var (
		defs   []catalog.PropertyDef
		owners []catalog.ValueDef
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		defs, err = d.FetchPropertyDefinitions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		owners, err = d.FetchOwners(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The fetched slices live in the cache and are shared between calls, so
	// merge into a copy instead of writing through.
	out := make([]catalog.PropertyDef, len(defs))
	copy(out, defs)

	if len(owners) > 0 {
		merged := false
		for i := range out {
			if out[i].Name == "hubspot_owner_id" {
				out[i].Values = owners
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, catalog.PropertyDef{
				Name:   "hubspot_owner_id",
				Label:  "Owner ID",
				Type:   "enumeration",
				Values: owners,
			})
		}
	}

	return out, nil
}

// readableName picks a human-readable label for a property: the portal's
// label when it already reads well, otherwise the internal name humanized.
func readableName(internalName, label string) string {
	label = strings.TrimSpace(label)
	if isCleanLabel(label) {
		return cleanLabel(label)
	}
	return humanizeInternalName(internalName)
}

// isCleanLabel reports whether a portal label is already presentable:
// spaced, mixed case, no snake_case, sane length.
func isCleanLabel(label string) bool {
	if label == "" {
		return false
	}
	hasSpace := strings.Contains(label, " ")
	hasUpper := label != strings.ToLower(label)
	noUnderscore := !strings.Contains(label, "_")
	saneLength := len(label) >= 3 && len(label) <= 50
	return hasSpace && hasUpper && noUnderscore && saneLength
}

func cleanLabel(label string) string {
	if label[1:] == strings.ToLower(label[1:]) {
		return titleWords(label)
	}
	return label
}

// humanizeInternalName converts an internal property name like
// "hs_lead_status" or "annualRevenue" into "Lead Status" / "Annual Revenue".
func humanizeInternalName(name string) string {
	if name == "" {
		return ""
	}
	name = strings.TrimPrefix(name, "hs_")

	if strings.Contains(name, "_") {
		return titleWords(strings.ReplaceAll(name, "_", " "))
	}
	if name[1:] != strings.ToLower(name[1:]) {
		return titleWords(splitCamel(name))
	}
	return titleWords(strings.ReplaceAll(name, "-", " "))
}

func splitCamel(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		for j := 1; j < len(r); j++ {
			r[j] = unicode.ToLower(r[j])
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
