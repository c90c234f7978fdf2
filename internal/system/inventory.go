package system

import (
	"github.com/herdsim/herdsim/internal/component"
	"github.com/herdsim/herdsim/internal/core/ecs"
	"github.com/herdsim/herdsim/internal/core/event"
	coresys "github.com/herdsim/herdsim/internal/core/system"
	"go.uber.org/zap"
)

// PickupSystem moves a world map asset into the inventory of an entity
// standing on it. Runs after MovementSystem.
//
// The map is written by this system alone, so each position is claimed at most
// once per tick: when several entities share a position the first one visited
// takes the asset and the rest find the position empty. Visit order is
// unspecified.
type PickupSystem struct {
	bus *event.Bus
	log *zap.Logger
}

// NewPickupSystem creates the system. bus may be nil.
func NewPickupSystem(bus *event.Bus, log *zap.Logger) *PickupSystem {
	return &PickupSystem{bus: bus, log: log}
}

func (s *PickupSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []ecs.Key{
			ecs.Component[component.CurrentPosition](),
		},
		Writes: []ecs.Key{
			ecs.Component[component.Inventory](),
			ecs.Resource[component.WorldMap](),
		},
	}
}

func (s *PickupSystem) Run(ctx *coresys.Context) error {
	positions, err := coresys.Read[component.CurrentPosition](ctx)
	if err != nil {
		return err
	}
	inventories, err := coresys.Write[component.Inventory](ctx)
	if err != nil {
		return err
	}
	worldMap, err := coresys.ResourceMut[component.WorldMap](ctx)
	if err != nil {
		return err
	}
	if worldMap.Len() == 0 {
		return nil
	}

	ecs.Each2[component.CurrentPosition, component.Inventory](positions, inventories, func(id ecs.EntityID, pos *component.CurrentPosition, inv *component.Inventory) {
		asset, ok := worldMap.Remove(pos.Position)
		if !ok {
			return
		}
		inv.Add(asset)
		s.log.Debug("asset picked up",
			zap.Uint64("entity", uint64(id)),
			zap.Int64("x", pos.X),
			zap.Int64("y", pos.Y),
			zap.String("kind", string(asset.Kind)),
			zap.Uint64("amount", asset.Amount))
		event.Emit(s.bus, event.AssetPickedUp{EntityID: id, Position: pos.Position, Asset: asset})
	})
	return nil
}
