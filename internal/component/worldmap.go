package component

import "fmt"

// WorldMap is the world resource holding assets lying on the ground, at most
// one asset per position.
type WorldMap struct {
	assets map[Position]Asset
}

func NewWorldMap() WorldMap {
	return WorldMap{assets: make(map[Position]Asset)}
}

// Place puts a at pos. Placing the same kind again adds to the amount there;
// a different kind is rejected.
func (m *WorldMap) Place(pos Position, a Asset) error {
	if m.assets == nil {
		m.assets = make(map[Position]Asset)
	}
	if cur, ok := m.assets[pos]; ok {
		if cur.Kind != a.Kind {
			return fmt.Errorf("place %s at (%d,%d): already holds %s", a.Kind, pos.X, pos.Y, cur.Kind)
		}
		a.Amount += cur.Amount
	}
	m.assets[pos] = a
	return nil
}

// Get returns the asset at pos.
func (m *WorldMap) Get(pos Position) (Asset, bool) {
	a, ok := m.assets[pos]
	return a, ok
}

// Remove takes the asset at pos off the map.
func (m *WorldMap) Remove(pos Position) (Asset, bool) {
	a, ok := m.assets[pos]
	if ok {
		delete(m.assets, pos)
	}
	return a, ok
}

func (m *WorldMap) Len() int { return len(m.assets) }

// Total returns the summed amount of every asset on the map.
func (m *WorldMap) Total() uint64 {
	var n uint64
	for _, a := range m.assets {
		n += a.Amount
	}
	return n
}

// Each calls fn for every asset on the map in unspecified order.
func (m *WorldMap) Each(fn func(Position, Asset)) {
	for pos, a := range m.assets {
		fn(pos, a)
	}
}
