package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionArithmetic(t *testing.T) {
	a := Position{X: 2, Y: 4}
	b := Position{X: -1, Y: 7}
	assert.Equal(t, Position{X: 1, Y: 11}, a.Add(b))
	assert.Equal(t, Position{X: 3, Y: -3}, a.Sub(b))
	assert.Equal(t, a, a.Add(b).Sub(b))
}

func TestInventoryMergesBySum(t *testing.T) {
	var inv Inventory
	assert.Equal(t, uint64(0), inv.Amount(Apple))

	inv.Add(Asset{Kind: Apple, Amount: 5})
	assert.Equal(t, uint64(5), inv.Amount(Apple), "first deposit is not doubled")

	inv.Add(Asset{Kind: Apple, Amount: 3})
	inv.Add(Asset{Kind: Orange, Amount: 1})
	assert.Equal(t, uint64(8), inv.Amount(Apple))
	assert.Equal(t, uint64(9), inv.Total())
	assert.Equal(t, []AssetKind{Apple, Orange}, inv.Kinds())
	assert.Equal(t, 2, inv.Len())
}

func TestInventoryAcceptsUnknownKinds(t *testing.T) {
	inv := NewInventory()
	inv.Add(Asset{Kind: "pear", Amount: 2})
	assert.Equal(t, uint64(2), inv.Amount("pear"))
}

func TestWorldMapRemove(t *testing.T) {
	m := NewWorldMap()
	pos := Position{X: 2, Y: 4}
	require.NoError(t, m.Place(pos, Asset{Kind: Apple, Amount: 5}))

	a, ok := m.Remove(pos)
	require.True(t, ok)
	assert.Equal(t, Asset{Kind: Apple, Amount: 5}, a)

	_, ok = m.Remove(pos)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestWorldMapPlace(t *testing.T) {
	var m WorldMap
	pos := Position{X: 1, Y: 1}
	require.NoError(t, m.Place(pos, Asset{Kind: Banana, Amount: 2}))
	require.NoError(t, m.Place(pos, Asset{Kind: Banana, Amount: 3}))
	a, ok := m.Get(pos)
	require.True(t, ok)
	assert.Equal(t, uint64(5), a.Amount)

	err := m.Place(pos, Asset{Kind: Apple, Amount: 1})
	require.Error(t, err)
	a, _ = m.Get(pos)
	assert.Equal(t, Banana, a.Kind)

	require.NoError(t, m.Place(Position{X: -3}, Asset{Kind: Orange, Amount: 4}))
	assert.Equal(t, uint64(9), m.Total())

	n := 0
	m.Each(func(Position, Asset) { n++ })
	assert.Equal(t, 2, n)
}
