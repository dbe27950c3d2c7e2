// Package queryparse turns free-text company queries and structured filter
// hints into ordered filter clauses, resolving property names and values
// against the mapping catalog. It is a best-effort keyword heuristic:
// unrecognized text is reported, never an error.
package queryparse

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/johnwards/hublens/internal/catalog"
	"github.com/johnwards/hublens/internal/domain"
	"github.com/johnwards/hublens/internal/translate"
)

// Config holds the parser's tunable thresholds.
type Config struct {
	MaxFilters            int    // cap on the clause list
	RevenueThreshold      string // "high revenue" cutoff
	LargeCompanyEmployees string // "large companies" cutoff
	SmallCompanyEmployees string // "small companies" cutoff
	RecentWindowDays      int    // "recently created" window
}

func (c Config) withDefaults() Config {
	if c.MaxFilters <= 0 {
		c.MaxFilters = 8
	}
	if c.RevenueThreshold == "" {
		c.RevenueThreshold = "1000000"
	}
	if c.LargeCompanyEmployees == "" {
		c.LargeCompanyEmployees = "1000"
	}
	if c.SmallCompanyEmployees == "" {
		c.SmallCompanyEmployees = "100"
	}
	if c.RecentWindowDays <= 0 {
		c.RecentWindowDays = 30
	}
	return c
}

// Hint is a structured filter clause supplied alongside free text. Property
// may be an internal name or a display label.
type Hint struct {
	Property  string          `json:"property"`
	Operator  domain.Operator `json:"operator"`
	Value     string          `json:"value,omitempty"`
	HighValue string          `json:"highValue,omitempty"`
	Values    []string        `json:"values,omitempty"`
}

// Ambiguity reports a filter value that matched several catalog display
// values; the clause is omitted and the candidates surfaced for the caller
// to clarify.
type Ambiguity struct {
	Property   string   `json:"property"`
	Value      string   `json:"value"`
	Candidates []string `json:"candidates"`
}

// Result is the outcome of parsing one query.
type Result struct {
	Filters      []domain.Filter `json:"filters"`
	Truncated    bool            `json:"truncated"`
	Unrecognized []string        `json:"unrecognized,omitempty"`
	Ambiguities  []Ambiguity     `json:"ambiguities,omitempty"`
	DroppedHints int             `json:"droppedHints,omitempty"`
	Limit        int             `json:"limit,omitempty"`
}

// Parser converts queries into filters using the catalog store.
type Parser struct {
	store   *catalog.Store
	tr      *translate.Translator
	cfg     Config
	phrases []compiledPhrase
	now     func() time.Time
}

// New creates a Parser reading from store.
func New(store *catalog.Store, cfg Config) *Parser {
	return &Parser{
		store:   store,
		tr:      translate.New(store),
		cfg:     cfg.withDefaults(),
		phrases: compilePhrases(phraseRules()),
		now:     time.Now,
	}
}

// span is a half-open byte range of the query text claimed by a match.
type span struct{ start, end int }

func overlaps(spans []span, s span) bool {
	for _, c := range spans {
		if s.start < c.end && c.start < s.end {
			return true
		}
	}
	return false
}

// match is one clause candidate with its position in the scan order. Hints
// come first; free-text clauses follow in text order.
type match struct {
	pos    int
	filter domain.Filter
}

// Parse converts free text plus optional structured hints into an ordered
// filter list. Hints with unknown properties or operators are dropped with a
// warning; ambiguous values surface as Ambiguities instead of clauses;
// clauses deduplicate on (property, operator) with the later match winning;
// the final list is capped at the configured maximum.
func (p *Parser) Parse(text string, hints []Hint) Result {
	snap := p.store.Snapshot()
	res := Result{}

	var matches []match
	pos := 0
	for i := range hints {
		if f, ok := p.resolveHint(snap, &hints[i], &res); ok {
			matches = append(matches, match{pos: pos, filter: f})
			pos++
		}
	}

	lowered := strings.ToLower(text)
	var claimed []span
	base := pos

	matches = append(matches, p.matchExpressions(snap, lowered, base, &claimed, &res)...)
	matches = append(matches, p.matchPhrases(lowered, base, &claimed)...)

	if m := limitRe.FindStringSubmatchIndex(lowered); m != nil {
		s := span{m[0], m[1]}
		if !overlaps(claimed, s) {
			claimed = append(claimed, s)
			if n, err := strconv.Atoi(lowered[m[2]:m[3]]); err == nil {
				res.Limit = n
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })
	res.Filters = dedupe(matches)

	if len(res.Filters) > p.cfg.MaxFilters {
		res.Filters = res.Filters[:p.cfg.MaxFilters]
		res.Truncated = true
	}

	res.Unrecognized = unrecognizedTokens(lowered, claimed)
	return res
}

// resolveHint validates one structured hint against the catalog. Invalid
// hints are dropped, not fatal: partial filters are preferred over failing
// the whole parse.
func (p *Parser) resolveHint(snap *catalog.Catalog, h *Hint, res *Result) (domain.Filter, bool) {
	prop, ok := resolveProperty(snap, h.Property)
	if !ok {
		slog.Warn("dropping filter hint with unknown property", "property", h.Property)
		res.DroppedHints++
		return domain.Filter{}, false
	}
	if !h.Operator.Valid() {
		slog.Warn("dropping filter hint with unknown operator",
			"property", h.Property, "operator", string(h.Operator))
		res.DroppedHints++
		return domain.Filter{}, false
	}

	f := domain.Filter{Property: prop, Operator: h.Operator}
	switch h.Operator {
	case domain.OpIn:
		for _, v := range h.Values {
			mapped, amb := p.mapValue(prop, v)
			if amb != nil {
				res.Ambiguities = append(res.Ambiguities, *amb)
				return domain.Filter{}, false
			}
			f.Values = append(f.Values, mapped)
		}
	case domain.OpBetween:
		low, amb := p.mapValue(prop, h.Value)
		if amb != nil {
			res.Ambiguities = append(res.Ambiguities, *amb)
			return domain.Filter{}, false
		}
		high, amb := p.mapValue(prop, h.HighValue)
		if amb != nil {
			res.Ambiguities = append(res.Ambiguities, *amb)
			return domain.Filter{}, false
		}
		f.Value, f.HighValue = low, high
	default:
		mapped, amb := p.mapValue(prop, h.Value)
		if amb != nil {
			res.Ambiguities = append(res.Ambiguities, *amb)
			return domain.Filter{}, false
		}
		f.Value = mapped
	}
	return f, true
}

// matchPhrases scans the text with the phrase table, longest phrase first,
// claiming each matched region.
func (p *Parser) matchPhrases(text string, base int, claimed *[]span) []match {
	var out []match
	for _, cp := range p.phrases {
		for _, m := range cp.re.FindAllStringIndex(text, -1) {
			s := span{m[0], m[1]}
			if overlaps(*claimed, s) {
				continue
			}
			*claimed = append(*claimed, s)
			out = append(out, match{pos: base + s.start, filter: cp.clause(p)})
		}
	}
	return out
}

// matchExpressions extracts explicit comparisons ("annual revenue > 1000000",
// "industry is technology", "customer tier in (basic, standard)"). The lazy
// property group can swallow leading filler, so resolution retries with
// leading words stripped until the catalog recognizes the remainder.
func (p *Parser) matchExpressions(snap *catalog.Catalog, text string, base int, claimed *[]span, res *Result) []match {
	var out []match

	for _, m := range compareRe.FindAllStringSubmatchIndex(text, -1) {
		propText := text[m[2]:m[3]]
		opText := text[m[4]:m[5]]
		valText := trimQuotes(text[m[6]:m[7]])

		prop, offset, ok := resolvePropertyLoose(snap, propText)
		if !ok {
			continue
		}
		s := span{m[2] + offset, m[1]}
		if overlaps(*claimed, s) {
			continue
		}
		op, ok := textOperators[opText]
		if !ok {
			continue
		}
		*claimed = append(*claimed, s)

		mapped, amb := p.mapValue(prop, valText)
		if amb != nil {
			res.Ambiguities = append(res.Ambiguities, *amb)
			continue
		}
		out = append(out, match{pos: base + s.start, filter: domain.Filter{
			Property: prop, Operator: op, Value: mapped,
		}})
	}

	for _, m := range inListRe.FindAllStringSubmatchIndex(text, -1) {
		propText := text[m[2]:m[3]]
		prop, offset, ok := resolvePropertyLoose(snap, propText)
		if !ok {
			continue
		}
		s := span{m[2] + offset, m[1]}
		if overlaps(*claimed, s) {
			continue
		}
		*claimed = append(*claimed, s)

		f := domain.Filter{Property: prop, Operator: domain.OpIn}
		ambiguous := false
		for _, part := range strings.Split(text[m[4]:m[5]], ",") {
			v := trimQuotes(strings.TrimSpace(part))
			if v == "" {
				continue
			}
			mapped, amb := p.mapValue(prop, v)
			if amb != nil {
				res.Ambiguities = append(res.Ambiguities, *amb)
				ambiguous = true
				break
			}
			f.Values = append(f.Values, mapped)
		}
		if ambiguous || len(f.Values) == 0 {
			continue
		}
		out = append(out, match{pos: base + s.start, filter: f})
	}

	for _, m := range betweenRe.FindAllStringSubmatchIndex(text, -1) {
		propText := text[m[2]:m[3]]
		prop, offset, ok := resolvePropertyLoose(snap, propText)
		if !ok {
			continue
		}
		s := span{m[2] + offset, m[1]}
		if overlaps(*claimed, s) {
			continue
		}
		*claimed = append(*claimed, s)

		out = append(out, match{pos: base + s.start, filter: domain.Filter{
			Property:  prop,
			Operator:  domain.OpBetween,
			Value:     text[m[4]:m[5]],
			HighValue: text[m[6]:m[7]],
		}})
	}

	return out
}

// mapValue translates a human-entered value to its raw code. Unknown values
// pass through unchanged (the CRM may still match them verbatim); ambiguous
// matches return the candidate list instead of a value.
func (p *Parser) mapValue(prop, value string) (string, *Ambiguity) {
	value = strings.TrimSpace(value)
	mapped, err := p.tr.TranslateFilterValue(prop, value)
	if err == nil {
		return mapped, nil
	}
	if amb, ok := translate.IsAmbiguous(err); ok {
		return "", &Ambiguity{Property: prop, Value: value, Candidates: amb.Candidates}
	}
	return value, nil
}

// resolveProperty resolves a property reference that may be an internal name
// or a display label, trying the common spacing variations.
func resolveProperty(snap *catalog.Catalog, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	variants := []string{
		ref,
		strings.ReplaceAll(ref, " ", "_"),
		strings.ReplaceAll(ref, "_", " "),
		strings.ReplaceAll(ref, " ", ""),
	}
	for _, v := range variants {
		if _, err := snap.LookupLabel(v); err == nil {
			return v, true
		}
		if name, err := snap.LookupInternalName(v); err == nil {
			return name, true
		}
	}
	return "", false
}

// resolvePropertyLoose resolves a property phrase by dropping leading words
// until the remainder resolves, returning the byte offset of the first word
// that was used.
func resolvePropertyLoose(snap *catalog.Catalog, phrase string) (name string, offset int, ok bool) {
	rest := phrase
	for {
		if name, ok := resolveProperty(snap, rest); ok {
			return name, len(phrase) - len(rest), true
		}
		i := strings.IndexAny(rest, " _")
		if i < 0 {
			return "", 0, false
		}
		rest = strings.TrimLeft(rest[i+1:], " _")
		if rest == "" {
			return "", 0, false
		}
	}
}

func trimQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// dedupe keeps the later clause for each (property, operator) pair,
// preserving the scan order of the surviving clauses.
func dedupe(matches []match) []domain.Filter {
	type key struct {
		prop string
		op   domain.Operator
	}
	last := make(map[key]int, len(matches))
	for i, m := range matches {
		last[key{m.filter.Property, m.filter.Operator}] = i
	}
	filters := make([]domain.Filter, 0, len(last))
	for i, m := range matches {
		if last[key{m.filter.Property, m.filter.Operator}] == i {
			filters = append(filters, m.filter)
		}
	}
	return filters
}

// unrecognizedTokens lists the words covered by no match and absent from the
// stopword list, in text order without duplicates.
func unrecognizedTokens(text string, claimed []span) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range tokenRe.FindAllStringIndex(text, -1) {
		s := span{m[0], m[1]}
		if overlaps(claimed, s) {
			continue
		}
		tok := text[s.start:s.end]
		if stopwords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
