package domain

// Operator identifies a filter comparison. The values here are the
// middleware's own vocabulary; HubSpot() converts to the CRM search API's
// operator names.
type Operator string

const (
	OpEquals      Operator = "EQUALS"
	OpContains    Operator = "CONTAINS"
	OpGreaterThan Operator = "GREATER_THAN"
	OpLessThan    Operator = "LESS_THAN"
	OpBetween     Operator = "BETWEEN"
	OpIn          Operator = "IN"
)

// Valid reports whether op is one of the supported operators.
func (op Operator) Valid() bool {
	switch op {
	case OpEquals, OpContains, OpGreaterThan, OpLessThan, OpBetween, OpIn:
		return true
	}
	return false
}

// HubSpot returns the operator name used by the HubSpot search API.
func (op Operator) HubSpot() string {
	switch op {
	case OpEquals:
		return "EQ"
	case OpContains:
		return "CONTAINS_TOKEN"
	case OpGreaterThan:
		return "GT"
	case OpLessThan:
		return "LT"
	case OpBetween:
		return "BETWEEN"
	case OpIn:
		return "IN"
	}
	return string(op)
}

// Filter is a single property filter clause. Value carries the operand for
// single-value operators, HighValue the upper bound for BETWEEN, and Values
// the operand list for IN.
type Filter struct {
	Property  string   `json:"property"`
	Operator  Operator `json:"operator"`
	Value     string   `json:"value,omitempty"`
	HighValue string   `json:"highValue,omitempty"`
	Values    []string `json:"values,omitempty"`
}
