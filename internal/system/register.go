package system

import (
	"github.com/herdsim/herdsim/internal/core/event"
	coresys "github.com/herdsim/herdsim/internal/core/system"
	"go.uber.org/zap"
)

// Names under which RegisterAll adds the simulation systems.
const (
	MovementName = "movement"
	PickupName   = "pickup"
	AuditName    = "audit"
)

// Deps holds what the simulation systems share.
type Deps struct {
	Bus *event.Bus // may be nil
	Log *zap.Logger

	// Audit adds the conservation audit. AssetTotal is the amount of assets
	// the world starts with; the audit checks every tick against it.
	Audit      bool
	AssetTotal uint64
}

// RegisterAll adds the simulation systems to b: movement, then pickup, then
// the optional conservation audit.
func RegisterAll(b *coresys.Builder, deps *Deps) {
	b.Add(MovementName, NewMovementSystem(deps.Bus, deps.Log))
	b.Add(PickupName, NewPickupSystem(deps.Bus, deps.Log), MovementName)
	if deps.Audit {
		b.Add(AuditName, NewAuditSystem(deps.AssetTotal, deps.Log), PickupName)
	}
}
