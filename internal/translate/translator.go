// Package translate converts raw CRM records into display form and
// human-entered filter values back into raw CRM codes.
package translate

import (
	"errors"
	"sort"
	"strings"

	"github.com/johnwards/hublens/internal/catalog"
	"github.com/johnwards/hublens/internal/domain"
	"github.com/johnwards/hublens/internal/format"
)

// Translator resolves records and filter values against the catalog store.
type Translator struct {
	store *catalog.Store
}

// New creates a Translator reading from store.
func New(store *catalog.Store) *Translator {
	return &Translator{store: store}
}

// TranslateRecord converts a raw record into a DisplayRecord. Every field
// degrades independently: an unmapped property keeps its internal name as the
// label, an unmapped value passes through raw. Field order follows the given
// property order; properties missing from order (and all properties when
// order is empty) are appended in sorted name order so the result is a pure
// function of (record, catalog snapshot).
func (t *Translator) TranslateRecord(props map[string]domain.Value, order []string) domain.DisplayRecord {
	snap := t.store.Snapshot()
	record := make(domain.DisplayRecord, 0, len(props))

	seen := make(map[string]bool, len(props))
	for _, name := range order {
		v, ok := props[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		record = append(record, translateField(snap, name, v))
	}

	rest := make([]string, 0, len(props))
	for name := range props {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		record = append(record, translateField(snap, name, props[name]))
	}

	return record
}

// TranslateCompany converts a raw company into display form, ordering
// properties by the caller's requested property list.
func (t *Translator) TranslateCompany(c *domain.Company, order []string) domain.DisplayCompany {
	return domain.DisplayCompany{
		ID:         c.ID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Archived:   c.Archived,
		Properties: t.TranslateRecord(c.Properties, order),
	}
}

// TranslateFilterValue resolves a human-entered filter value to the raw code
// the CRM expects. It surfaces catalog.ErrUnknownValue and
// catalog.AmbiguousValueError unchanged; the caller decides between passing
// the human value through and dropping the clause.
func (t *Translator) TranslateFilterValue(internalName, humanValue string) (string, error) {
	return t.store.LookupRawValue(internalName, humanValue)
}

func translateField(snap *catalog.Catalog, name string, v domain.Value) domain.DisplayField {
	label, err := snap.LookupLabel(name)
	if err != nil {
		label = name
	}

	display := v.Text()
	if !v.IsNull() {
		if mapped, err := snap.LookupDisplayValue(name, display); err == nil {
			display = mapped
		}
		display = formatValue(snap, name, display)
	}

	return domain.DisplayField{Label: label, Value: display}
}

// formatValue applies display formatting based on the property's catalog
// type. Unmapped properties whose name mentions a date still get date
// formatting, matching how raw portal exports name their date fields.
func formatValue(snap *catalog.Catalog, name, value string) string {
	switch snap.PropertyType(name) {
	case "number":
		return format.Number(value)
	case "date", "datetime":
		return format.Date(value)
	case "":
		if strings.Contains(strings.ToLower(name), "date") {
			return format.Date(value)
		}
	}
	return value
}

// IsAmbiguous reports whether err is an ambiguous-value resolution failure
// and returns the candidate list when it is.
func IsAmbiguous(err error) (*catalog.AmbiguousValueError, bool) {
	var ambErr *catalog.AmbiguousValueError
	if errors.As(err, &ambErr) {
		return ambErr, true
	}
	return nil, false
}
