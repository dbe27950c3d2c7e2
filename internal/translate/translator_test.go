package translate_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/johnwards/hublens/internal/catalog"
	"github.com/johnwards/hublens/internal/domain"
	"github.com/johnwards/hublens/internal/testhelpers"
	"github.com/johnwards/hublens/internal/translate"
)

func TestTranslateRecordLabelsAndValues(t *testing.T) {
	tr := translate.New(testhelpers.NewCatalogStore(t))

	record := tr.TranslateRecord(map[string]domain.Value{
		"name":           domain.String("Acme Corp"),
		"annualrevenue":  domain.String("250000000"),
		"lifecyclestage": domain.String("salesqualifiedlead"),
		"createdate":     domain.String("1717200000000"),
	}, nil)

	checks := []struct{ label, want string }{
		{"Company Name", "Acme Corp"},
		{"Annual Revenue", "250.0M"},
		{"Lifecycle Stage", "Sales Qualified Lead"},
		{"Created Date", "2024-06-01"},
	}
	for _, c := range checks {
		got, ok := record.Get(c.label)
		if !ok {
			t.Errorf("missing field %q", c.label)
			continue
		}
		if got != c.want {
			t.Errorf("field %q = %q, want %q", c.label, got, c.want)
		}
	}
}

func TestTranslateRecordDegradesGracefully(t *testing.T) {
	tr := translate.New(testhelpers.NewCatalogStore(t))

	record := tr.TranslateRecord(map[string]domain.Value{
		"some_custom_field": domain.String("whatever"),
		"account_status":    domain.String("made_up_status"),
		"industry":          domain.Null,
	}, nil)

	// Unmapped property keeps its internal name as the label, value raw.
	if got, _ := record.Get("some_custom_field"); got != "whatever" {
		t.Errorf("unmapped property value = %q, want raw passthrough", got)
	}
	// Mapped property with an unmapped value passes the value through.
	if got, _ := record.Get("Account Status"); got != "made_up_status" {
		t.Errorf("unmapped value = %q, want raw passthrough", got)
	}
	// Null renders as empty.
	if got, _ := record.Get("Industry"); got != "" {
		t.Errorf("null value = %q, want empty", got)
	}
}

func TestTranslateRecordDateHeuristic(t *testing.T) {
	tr := translate.New(testhelpers.NewCatalogStore(t))

	// Properties absent from the catalog but named like dates still get
	// date formatting.
	record := tr.TranslateRecord(map[string]domain.Value{
		"legacy_signup_date": domain.String("1717200000000"),
	}, nil)

	if got, _ := record.Get("legacy_signup_date"); got != "2024-06-01" {
		t.Errorf("date-named property = %q, want 2024-06-01", got)
	}
}

func TestTranslateRecordOrder(t *testing.T) {
	tr := translate.New(testhelpers.NewCatalogStore(t))

	props := map[string]domain.Value{
		"name":          domain.String("Acme"),
		"annualrevenue": domain.String("1000"),
		"city":          domain.String("Leeds"),
		"domain":        domain.String("acme.test"),
	}
	record := tr.TranslateRecord(props, []string{"annualrevenue", "name", "annualrevenue", "missing"})

	labels := make([]string, 0, len(record))
	for _, f := range record {
		labels = append(labels, f.Label)
	}
	// Requested order first, then the rest sorted by internal name.
	want := []string{"Annual Revenue", "Company Name", "City", "Website Domain"}
	if strings.Join(labels, "|") != strings.Join(want, "|") {
		t.Errorf("field order = %v, want %v", labels, want)
	}

	// The order survives JSON encoding.
	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var prev int
	for _, label := range want {
		i := strings.Index(string(data), `"`+label+`"`)
		if i < prev {
			t.Fatalf("label %q out of order in %s", label, data)
		}
		prev = i
	}
}

func TestTranslateCompany(t *testing.T) {
	tr := translate.New(testhelpers.NewCatalogStore(t))

	c := &domain.Company{
		ID:        "12345",
		CreatedAt: "2024-06-01T00:00:00Z",
		Properties: map[string]domain.Value{
			"name": domain.String("Acme"),
		},
	}

	got := tr.TranslateCompany(c, nil)
	if got.ID != "12345" {
		t.Errorf("ID = %q, want 12345", got.ID)
	}
	if got.CreatedAt != c.CreatedAt {
		t.Errorf("CreatedAt = %q, want %q", got.CreatedAt, c.CreatedAt)
	}
	if v, _ := got.Properties.Get("Company Name"); v != "Acme" {
		t.Errorf("translated name = %q, want Acme", v)
	}
}

func TestTranslateFilterValue(t *testing.T) {
	tr := translate.New(testhelpers.NewCatalogStore(t))

	raw, err := tr.TranslateFilterValue("account_status", "Pending Cancellation")
	if err != nil {
		t.Fatalf("translate filter value: %v", err)
	}
	if raw != "cancelled" {
		t.Errorf("expected cancelled, got %q", raw)
	}

	_, err = tr.TranslateFilterValue("account_status", "no such value")
	if !errors.Is(err, catalog.ErrUnknownValue) {
		t.Errorf("expected ErrUnknownValue, got %v", err)
	}
	if _, ok := translate.IsAmbiguous(err); ok {
		t.Error("unknown value must not report as ambiguous")
	}
}

func TestIsAmbiguous(t *testing.T) {
	c, err := catalog.New([]catalog.PropertyDef{
		{
			Name: "plan", Label: "Plan", Type: "enumeration",
			Values: []catalog.ValueDef{
				{Raw: "plan_a", Display: "Plan A Gold"},
				{Raw: "plan_b", Display: "Plan B Gold"},
			},
		},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	tr := translate.New(catalog.NewStore(c))

	_, err = tr.TranslateFilterValue("plan", "gold")
	ambErr, ok := translate.IsAmbiguous(err)
	if !ok {
		t.Fatalf("expected ambiguous error, got %v", err)
	}
	if len(ambErr.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %v", ambErr.Candidates)
	}
}
