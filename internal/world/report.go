package world

import (
	"cmp"
	"slices"

	"github.com/herdsim/herdsim/internal/component"
	"github.com/herdsim/herdsim/internal/core/ecs"
)

// EntityReport is the end-of-run state of one entity.
type EntityReport struct {
	ID        ecs.EntityID
	Name      string
	Position  component.Position
	Target    component.Position
	Inventory map[component.AssetKind]uint64
}

// MapAsset is an asset still lying on the world map.
type MapAsset struct {
	Position component.Position
	Asset    component.Asset
}

// Report describes the world between ticks.
type Report struct {
	Entities []EntityReport
	Assets   []MapAsset
}

// Snapshot reads the world into a Report. Entities come in index order and map
// assets sorted by position.
// It must not run concurrently with a dispatch.
func Snapshot(w *ecs.World) (*Report, error) {
	names, err := ecs.StorageOf[component.Name](w)
	if err != nil {
		return nil, err
	}
	current, err := ecs.StorageOf[component.CurrentPosition](w)
	if err != nil {
		return nil, err
	}
	targets, err := ecs.StorageOf[component.TargetPosition](w)
	if err != nil {
		return nil, err
	}
	inventories, err := ecs.StorageOf[component.Inventory](w)
	if err != nil {
		return nil, err
	}
	worldMap, err := ecs.ResourceOf[component.WorldMap](w)
	if err != nil {
		return nil, err
	}

	r := &Report{}
	for id := range w.Entities() {
		er := EntityReport{ID: id}
		if n, ok := names.Get(id); ok {
			er.Name = string(n)
		}
		if p, ok := current.Get(id); ok {
			er.Position = p.Position
		}
		if t, ok := targets.Get(id); ok {
			er.Target = t.Position
		}
		if inv, ok := inventories.GetMut(id); ok {
			er.Inventory = make(map[component.AssetKind]uint64, inv.Len())
			for _, k := range inv.Kinds() {
				er.Inventory[k] = inv.Amount(k)
			}
		}
		r.Entities = append(r.Entities, er)
	}

	worldMap.Each(func(pos component.Position, a component.Asset) {
		r.Assets = append(r.Assets, MapAsset{Position: pos, Asset: a})
	})
	slices.SortFunc(r.Assets, func(a, b MapAsset) int {
		return cmp.Or(cmp.Compare(a.Position.X, b.Position.X), cmp.Compare(a.Position.Y, b.Position.Y))
	})
	return r, nil
}

// TotalAssets sums the world map and every inventory in the report.
func (r *Report) TotalAssets() uint64 {
	var n uint64
	for _, a := range r.Assets {
		n += a.Asset.Amount
	}
	for _, e := range r.Entities {
		for _, v := range e.Inventory {
			n += v
		}
	}
	return n
}
