package catalog

import (
	"fmt"
	"sync/atomic"
)

// Store holds the process-wide catalog behind an atomic pointer. Reads are
// lock-free and always see one complete snapshot; Refresh builds a new
// catalog and swaps it wholesale.
type Store struct {
	cur atomic.Pointer[Catalog]
}

// NewStore creates a store serving the given initial catalog.
func NewStore(initial *Catalog) *Store {
	s := &Store{}
	s.cur.Store(initial)
	return s
}

// Snapshot returns the current catalog. Callers that perform several related
// lookups should do them all against one snapshot.
func (s *Store) Snapshot() *Catalog {
	return s.cur.Load()
}

// Refresh builds a catalog from defs and swaps it in atomically. On failure
// the previous catalog keeps serving and the error wraps ErrRefreshFailed.
func (s *Store) Refresh(defs []PropertyDef) error {
	c, err := New(defs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	s.cur.Store(c)
	return nil
}

// LookupLabel resolves an internal property name to its display label.
func (s *Store) LookupLabel(internalName string) (string, error) {
	return s.Snapshot().LookupLabel(internalName)
}

// LookupInternalName resolves a display label to the internal property name.
func (s *Store) LookupInternalName(displayLabel string) (string, error) {
	return s.Snapshot().LookupInternalName(displayLabel)
}

// LookupDisplayValue resolves a raw enumerated code to its display value.
func (s *Store) LookupDisplayValue(internalName, rawValue string) (string, error) {
	return s.Snapshot().LookupDisplayValue(internalName, rawValue)
}

// LookupRawValue resolves a human-entered value to the raw code.
func (s *Store) LookupRawValue(internalName, displayValue string) (string, error) {
	return s.Snapshot().LookupRawValue(internalName, displayValue)
}

// Search returns mappings matching term in the current catalog.
func (s *Store) Search(term string) SearchMatches {
	return s.Snapshot().Search(term)
}

// Stats returns the current catalog's counters.
func (s *Store) Stats() Stats {
	return s.Snapshot().Stats()
}
