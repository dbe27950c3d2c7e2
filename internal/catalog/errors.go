package catalog

import (
	"fmt"
	"strings"
)

// ErrUnknownProperty is returned when a property has no mapping entry.
var ErrUnknownProperty = fmt.Errorf("unknown property")

// ErrUnknownValue is returned when a property has no value table or the
// requested value is unmapped.
var ErrUnknownValue = fmt.Errorf("unknown value")

// ErrRefreshFailed is returned when a catalog refresh could not be applied.
// The store keeps serving the previous catalog.
var ErrRefreshFailed = fmt.Errorf("catalog refresh failed")

// AmbiguousValueError is returned when a reverse value lookup matches
// several display values and no single best candidate exists. Candidates
// are listed shortest display first.
type AmbiguousValueError struct {
	Property   string
	Query      string
	Candidates []string
}

func (e *AmbiguousValueError) Error() string {
	return fmt.Sprintf("value %q is ambiguous for property %q: matches %s",
		e.Query, e.Property, strings.Join(e.Candidates, ", "))
}
