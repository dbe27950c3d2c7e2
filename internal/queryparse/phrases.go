package queryparse

import (
	"regexp"
	"strconv"

	"github.com/johnwards/hublens/internal/domain"
)

// phraseRule maps keyword phrases to a filter clause. This is deliberately a
// lookup table, not a grammar: phrases the table does not know are ignored.
type phraseRule struct {
	phrases []string
	clause  func(p *Parser) domain.Filter
}

func phraseRules() []phraseRule {
	return []phraseRule{
		{
			phrases: []string{"technology companies", "tech companies"},
			clause: func(p *Parser) domain.Filter {
				return domain.Filter{Property: "industry", Operator: domain.OpEquals, Value: "technology"}
			},
		},
		{
			phrases: []string{"high revenue", "enterprise"},
			clause: func(p *Parser) domain.Filter {
				return domain.Filter{Property: "annualrevenue", Operator: domain.OpGreaterThan, Value: p.cfg.RevenueThreshold}
			},
		},
		{
			phrases: []string{"large companies", "big companies"},
			clause: func(p *Parser) domain.Filter {
				return domain.Filter{Property: "numberofemployees", Operator: domain.OpGreaterThan, Value: p.cfg.LargeCompanyEmployees}
			},
		},
		{
			phrases: []string{"small companies"},
			clause: func(p *Parser) domain.Filter {
				return domain.Filter{Property: "numberofemployees", Operator: domain.OpLessThan, Value: p.cfg.SmallCompanyEmployees}
			},
		},
		{
			phrases: []string{"active customers", "active companies"},
			clause: func(p *Parser) domain.Filter {
				return domain.Filter{Property: "account_status", Operator: domain.OpEquals, Value: "active"}
			},
		},
		{
			phrases: []string{"trial accounts", "trial companies", "on trial"},
			clause: func(p *Parser) domain.Filter {
				return domain.Filter{Property: "account_status", Operator: domain.OpEquals, Value: "trial"}
			},
		},
		{
			phrases: []string{"cancelled", "canceled"},
			clause: func(p *Parser) domain.Filter {
				return domain.Filter{Property: "account_status", Operator: domain.OpIn, Values: []string{"cancelled"}}
			},
		},
		{
			phrases: []string{"high churn risk"},
			clause: func(p *Parser) domain.Filter {
				return domain.Filter{Property: "churn_risk", Operator: domain.OpEquals, Value: "high"}
			},
		},
		{
			phrases: []string{"low churn risk"},
			clause: func(p *Parser) domain.Filter {
				return domain.Filter{Property: "churn_risk", Operator: domain.OpEquals, Value: "low"}
			},
		},
		{
			phrases: []string{"recently created", "recent"},
			clause: func(p *Parser) domain.Filter {
				cutoff := p.now().AddDate(0, 0, -p.cfg.RecentWindowDays).UnixMilli()
				return domain.Filter{
					Property: "createdate",
					Operator: domain.OpGreaterThan,
					Value:    strconv.FormatInt(cutoff, 10),
				}
			},
		},
	}
}

// compiledPhrase is one phrase from a rule with its word-boundary matcher.
type compiledPhrase struct {
	phrase string
	re     *regexp.Regexp
	clause func(p *Parser) domain.Filter
}

// compilePhrases flattens the rule table into matchers ordered longest
// phrase first, so "recently created" claims its words before "recent" can.
func compilePhrases(rules []phraseRule) []compiledPhrase {
	var out []compiledPhrase
	for _, rule := range rules {
		for _, phrase := range rule.phrases {
			out = append(out, compiledPhrase{
				phrase: phrase,
				re:     regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`),
				clause: rule.clause,
			})
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j].phrase) > len(out[j-1].phrase); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Free-text expression patterns. The operator alternatives are limited to
// what the clause enum can represent.
var (
	compareRe = regexp.MustCompile(`\b([a-z][a-z0-9_ ]*?)\s+(equals|is|greater than|less than|contains|includes|has|==|=|>|<)\s+("[^"]+"|'[^']+'|[a-z0-9_.@-]+)`)
	inListRe  = regexp.MustCompile(`\b([a-z][a-z0-9_ ]*?)\s+in\s*[(\[]([^)\]]+)[)\]]`)
	betweenRe = regexp.MustCompile(`\b([a-z][a-z0-9_ ]*?)\s+between\s+([a-z0-9_.-]+)\s+and\s+([a-z0-9_.-]+)`)
	limitRe   = regexp.MustCompile(`\b(?:limit|top|first|show)\s+(\d+)\b`)
	tokenRe   = regexp.MustCompile(`[a-z0-9_'@.-]+`)
)

var textOperators = map[string]domain.Operator{
	"equals":       domain.OpEquals,
	"is":           domain.OpEquals,
	"=":            domain.OpEquals,
	"==":           domain.OpEquals,
	"greater than": domain.OpGreaterThan,
	">":            domain.OpGreaterThan,
	"less than":    domain.OpLessThan,
	"<":            domain.OpLessThan,
	"contains":     domain.OpContains,
	"includes":     domain.OpContains,
	"has":          domain.OpContains,
}

// stopwords are filler words that never become unrecognized tokens.
var stopwords = map[string]bool{
	"a": true, "an": true, "all": true, "and": true, "are": true, "at": true,
	"by": true, "companies": true, "company": true, "customers": true,
	"find": true, "for": true, "get": true, "give": true, "having": true,
	"i": true, "in": true, "list": true, "me": true, "my": true, "of": true,
	"on": true, "or": true, "our": true, "please": true, "show": true,
	"that": true, "the": true, "their": true, "them": true, "to": true,
	"us": true, "want": true, "we": true, "what": true, "which": true,
	"who": true, "with": true,
}
