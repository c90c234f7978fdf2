package world

import (
	"fmt"

	"github.com/herdsim/herdsim/internal/component"
	"github.com/herdsim/herdsim/internal/core/ecs"
	"github.com/herdsim/herdsim/internal/data"
)

// Register creates the storage of every component the simulation uses.
func Register(w *ecs.World) {
	ecs.Register[component.Name](w)
	ecs.Register[component.CurrentPosition](w)
	ecs.Register[component.TargetPosition](w)
	ecs.Register[component.Speed](w)
	ecs.Register[component.Inventory](w)
}

// New builds a world holding the scenario's entities and world map.
func New(s *data.Scenario) (*ecs.World, error) {
	w := ecs.NewWorld()
	Register(w)
	if err := Populate(w, s); err != nil {
		return nil, err
	}
	return w, nil
}

// Populate inserts the world map resource and spawns every scenario entity.
func Populate(w *ecs.World, s *data.Scenario) error {
	m := component.NewWorldMap()
	for _, a := range s.Assets {
		if err := m.Place(a.Position, component.Asset{Kind: a.Kind, Amount: a.Amount}); err != nil {
			return fmt.Errorf("populate world map: %w", err)
		}
	}
	ecs.InsertResource(w, m)

	for _, e := range s.Entities {
		if _, err := Spawn(w, e); err != nil {
			return fmt.Errorf("spawn %q: %w", e.Name, err)
		}
	}
	return nil
}

// Spawn creates one entity with all of its components attached at once.
// An entry without a target is spawned at rest.
func Spawn(w *ecs.World, e data.EntityEntry) (ecs.EntityID, error) {
	target := e.Position
	if e.Target != nil {
		target = *e.Target
	}
	b := w.NewEntity().
		With(component.CurrentPosition{Position: e.Position}).
		With(component.TargetPosition{Position: target}).
		With(e.Speed)
	if e.Name != "" {
		b.With(component.Name(e.Name))
	}
	if e.Inventory {
		b.With(component.NewInventory())
	}
	return b.Build()
}
