package data

import (
	"slices"

	"github.com/herdsim/herdsim/internal/component"
)

// Catalog is the set of asset kinds a scenario may use.
type Catalog struct {
	kinds map[component.AssetKind]struct{}
}

// NewCatalog returns the built-in kinds.
func NewCatalog() *Catalog {
	c := &Catalog{kinds: make(map[component.AssetKind]struct{}, 8)}
	c.Extend(component.Apple, component.Banana, component.Orange)
	return c
}

// Extend adds kinds. Known kinds are ignored.
func (c *Catalog) Extend(kinds ...component.AssetKind) {
	for _, k := range kinds {
		c.kinds[k] = struct{}{}
	}
}

func (c *Catalog) Has(kind component.AssetKind) bool {
	_, ok := c.kinds[kind]
	return ok
}

// Kinds returns every kind in sorted order.
func (c *Catalog) Kinds() []component.AssetKind {
	out := make([]component.AssetKind, 0, len(c.kinds))
	for k := range c.kinds {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Count returns the number of known kinds.
func (c *Catalog) Count() int {
	return len(c.kinds)
}
