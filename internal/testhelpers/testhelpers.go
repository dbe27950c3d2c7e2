package testhelpers

import (
	"testing"

	"github.com/johnwards/hublens/internal/catalog"
	"github.com/johnwards/hublens/internal/seed"
)

// NewCatalogStore returns a catalog store loaded with the seeded property
// mappings, the same set production starts from.
func NewCatalogStore(t *testing.T) *catalog.Store {
	t.Helper()

	c, err := catalog.New(seed.Properties())
	if err != nil {
		t.Fatalf("build seed catalog: %v", err)
	}
	return catalog.NewStore(c)
}
