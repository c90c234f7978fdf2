package event

import (
	"github.com/herdsim/herdsim/internal/component"
	"github.com/herdsim/herdsim/internal/core/ecs"
)

// AssetPickedUp is emitted when an entity takes a world map asset.
type AssetPickedUp struct {
	EntityID ecs.EntityID
	Position component.Position
	Asset    component.Asset
}

// EntityArrived is emitted when a move lands an entity exactly on its target.
type EntityArrived struct {
	EntityID ecs.EntityID
	Position component.Position
}
