package component

import (
	"maps"
	"slices"
)

// Inventory holds the assets an entity has collected, summed per kind.
// The zero value is an empty inventory ready to use.
type Inventory struct {
	assets map[AssetKind]uint64
}

func NewInventory() Inventory {
	return Inventory{assets: make(map[AssetKind]uint64)}
}

// Add merges a into the inventory by summation.
func (inv *Inventory) Add(a Asset) {
	if inv.assets == nil {
		inv.assets = make(map[AssetKind]uint64)
	}
	inv.assets[a.Kind] += a.Amount
}

// Amount returns the held amount of kind, zero if none.
func (inv *Inventory) Amount(kind AssetKind) uint64 {
	return inv.assets[kind]
}

// Total returns the summed amount over all kinds.
func (inv *Inventory) Total() uint64 {
	var n uint64
	for _, v := range inv.assets {
		n += v
	}
	return n
}

// Kinds returns the held kinds in sorted order.
func (inv *Inventory) Kinds() []AssetKind {
	return slices.Sorted(maps.Keys(inv.assets))
}

func (inv *Inventory) Len() int { return len(inv.assets) }
