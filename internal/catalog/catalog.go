package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PropertyDef is the input for building a catalog entry: one CRM property
// with its display label, value type, and optional enumerated value table.
type PropertyDef struct {
	Name   string
	Label  string
	Type   string // "string", "number", "date", "datetime", "enumeration"
	Values []ValueDef
}

// ValueDef maps one raw enumerated code to its display value.
type ValueDef struct {
	Raw     string
	Display string
}

// Stats describes a catalog snapshot for diagnostics.
type Stats struct {
	PropertyCount     int       `json:"propertyCount"`
	ValueMappingCount int       `json:"valueMappingCount"`
	LastRefreshed     time.Time `json:"lastRefreshed"`
}

// valueTable holds the bidirectional value indexes for one property.
type valueTable struct {
	displayByRaw map[string]string // folded raw code -> display value
	rawByDisplay map[string]string // folded display value -> raw code
	displays     []string          // display values in definition order
}

// Catalog is an immutable snapshot of all property and value mappings.
// All lookups are pure reads; a refresh builds a whole new Catalog.
type Catalog struct {
	labelByName map[string]string
	typeByName  map[string]string
	nameByLabel map[string]string // folded label -> internal name
	values      map[string]*valueTable
	valueCount  int
	refreshedAt time.Time
}

// fold normalizes a string for case-insensitive matching.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// New builds a catalog from property definitions. It fails when two internal
// names claim the same display label, or when a property's value table maps
// two raw codes to the same display value: both reverse lookups must stay
// unique.
func New(defs []PropertyDef) (*Catalog, error) {
	c := &Catalog{
		labelByName: make(map[string]string, len(defs)),
		typeByName:  make(map[string]string, len(defs)),
		nameByLabel: make(map[string]string, len(defs)),
		values:      make(map[string]*valueTable),
		refreshedAt: time.Now().UTC(),
	}

	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			continue
		}
		if _, ok := c.labelByName[name]; ok {
			return nil, fmt.Errorf("duplicate property %q", name)
		}

		label := strings.TrimSpace(def.Label)
		if label == "" {
			label = name
		}
		if prev, ok := c.nameByLabel[fold(label)]; ok {
			return nil, fmt.Errorf("display label %q claimed by both %q and %q", label, prev, name)
		}

		c.labelByName[name] = label
		c.nameByLabel[fold(label)] = name
		if def.Type != "" {
			c.typeByName[name] = def.Type
		}

		if len(def.Values) == 0 {
			continue
		}
		vt := &valueTable{
			displayByRaw: make(map[string]string, len(def.Values)),
			rawByDisplay: make(map[string]string, len(def.Values)),
		}
		for _, v := range def.Values {
			raw := strings.TrimSpace(v.Raw)
			display := strings.TrimSpace(v.Display)
			if raw == "" || display == "" {
				continue
			}
			if _, ok := vt.displayByRaw[fold(raw)]; ok {
				return nil, fmt.Errorf("property %q: duplicate raw value %q", name, raw)
			}
			if _, ok := vt.rawByDisplay[fold(display)]; ok {
				return nil, fmt.Errorf("property %q: display value %q maps to multiple raw values", name, display)
			}
			vt.displayByRaw[fold(raw)] = display
			vt.rawByDisplay[fold(display)] = raw
			vt.displays = append(vt.displays, display)
			c.valueCount++
		}
		if len(vt.displays) > 0 {
			c.values[name] = vt
		}
	}

	return c, nil
}

// LookupLabel returns the display label for an internal property name.
func (c *Catalog) LookupLabel(internalName string) (string, error) {
	label, ok := c.labelByName[internalName]
	if !ok {
		return "", fmt.Errorf("property %q: %w", internalName, ErrUnknownProperty)
	}
	return label, nil
}

// LookupInternalName resolves a display label (case-insensitive, whitespace
// trimmed) back to the internal property name.
func (c *Catalog) LookupInternalName(displayLabel string) (string, error) {
	name, ok := c.nameByLabel[fold(displayLabel)]
	if !ok {
		return "", fmt.Errorf("label %q: %w", displayLabel, ErrUnknownProperty)
	}
	return name, nil
}

// PropertyType returns the value type recorded for a property, or "" when
// the property is unmapped or untyped.
func (c *Catalog) PropertyType(internalName string) string {
	return c.typeByName[internalName]
}

// LookupDisplayValue returns the display value for a property's raw
// enumerated code.
func (c *Catalog) LookupDisplayValue(internalName, rawValue string) (string, error) {
	vt, ok := c.values[internalName]
	if !ok {
		return "", fmt.Errorf("property %q has no value mappings: %w", internalName, ErrUnknownValue)
	}
	display, ok := vt.displayByRaw[fold(rawValue)]
	if !ok {
		return "", fmt.Errorf("property %q value %q: %w", internalName, rawValue, ErrUnknownValue)
	}
	return display, nil
}

// LookupRawValue resolves a human-entered value back to the raw code the CRM
// expects. Resolution is staged: exact display match, then exact raw-code
// match (users sometimes type the CRM code itself), then substring match
// over display values. A single substring candidate wins; among several the
// strictly shortest display wins; length ties return AmbiguousValueError
// with every candidate.
func (c *Catalog) LookupRawValue(internalName, displayValue string) (string, error) {
	vt, ok := c.values[internalName]
	if !ok {
		return "", fmt.Errorf("property %q has no value mappings: %w", internalName, ErrUnknownValue)
	}
	q := fold(displayValue)
	if q == "" {
		return "", fmt.Errorf("property %q empty value: %w", internalName, ErrUnknownValue)
	}

	if raw, ok := vt.rawByDisplay[q]; ok {
		return raw, nil
	}
	if display, ok := vt.displayByRaw[q]; ok {
		return vt.rawByDisplay[fold(display)], nil
	}

	var candidates []string
	for _, display := range vt.displays {
		if strings.Contains(fold(display), q) {
			candidates = append(candidates, display)
		}
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("property %q value %q: %w", internalName, displayValue, ErrUnknownValue)
	case 1:
		return vt.rawByDisplay[fold(candidates[0])], nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) < len(candidates[j])
	})
	if len(candidates[0]) < len(candidates[1]) {
		return vt.rawByDisplay[fold(candidates[0])], nil
	}
	return "", &AmbiguousValueError{
		Property:   internalName,
		Query:      displayValue,
		Candidates: candidates,
	}
}

// Stats returns catalog size and freshness counters.
func (c *Catalog) Stats() Stats {
	return Stats{
		PropertyCount:     len(c.labelByName),
		ValueMappingCount: c.valueCount,
		LastRefreshed:     c.refreshedAt,
	}
}

// SearchMatches holds the result of a mapping search: matching property
// mappings (internal name -> label) and matching value mappings
// (internal name -> display value -> raw code).
type SearchMatches struct {
	Properties map[string]string            `json:"properties"`
	Values     map[string]map[string]string `json:"values"`
}

// Search returns every property and value mapping whose name, label, or
// display value contains term, case-insensitively.
func (c *Catalog) Search(term string) SearchMatches {
	q := fold(term)
	matches := SearchMatches{
		Properties: make(map[string]string),
		Values:     make(map[string]map[string]string),
	}
	if q == "" {
		return matches
	}

	for name, label := range c.labelByName {
		if strings.Contains(fold(name), q) || strings.Contains(fold(label), q) {
			matches.Properties[name] = label
		}
	}
	for name, vt := range c.values {
		var hits map[string]string
		for _, display := range vt.displays {
			if strings.Contains(fold(display), q) {
				if hits == nil {
					hits = make(map[string]string)
				}
				hits[display] = vt.rawByDisplay[fold(display)]
			}
		}
		if hits != nil {
			matches.Values[name] = hits
		}
	}
	return matches
}
