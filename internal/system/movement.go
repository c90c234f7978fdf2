package system

import (
	"github.com/herdsim/herdsim/internal/component"
	"github.com/herdsim/herdsim/internal/core/ecs"
	"github.com/herdsim/herdsim/internal/core/event"
	coresys "github.com/herdsim/herdsim/internal/core/system"
	"go.uber.org/zap"
)

// MovementSystem steps every entity's current position toward its target.
//
// Each axis with a non-zero delta moves by the full speed in the direction of
// the target. The step is not clamped: a speed larger than the remaining
// distance overshoots and the entity oscillates around the target instead of
// settling on it. A zero speed leaves that axis where it is.
type MovementSystem struct {
	bus *event.Bus
	log *zap.Logger
}

// NewMovementSystem creates the system. bus may be nil.
func NewMovementSystem(bus *event.Bus, log *zap.Logger) *MovementSystem {
	return &MovementSystem{bus: bus, log: log}
}

func (s *MovementSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []ecs.Key{
			ecs.Component[component.TargetPosition](),
			ecs.Component[component.Speed](),
		},
		Writes: []ecs.Key{
			ecs.Component[component.CurrentPosition](),
		},
	}
}

func (s *MovementSystem) Run(ctx *coresys.Context) error {
	current, err := coresys.Write[component.CurrentPosition](ctx)
	if err != nil {
		return err
	}
	targets, err := coresys.Read[component.TargetPosition](ctx)
	if err != nil {
		return err
	}
	speeds, err := coresys.Read[component.Speed](ctx)
	if err != nil {
		return err
	}

	ecs.Each3[component.CurrentPosition, component.TargetPosition, component.Speed](current, targets, speeds, func(id ecs.EntityID, cur *component.CurrentPosition, tgt *component.TargetPosition, spd *component.Speed) {
		delta := tgt.Sub(cur.Position)
		if delta.X == 0 && delta.Y == 0 {
			return
		}
		cur.X = stepAxis(cur.X, delta.X, spd.X)
		cur.Y = stepAxis(cur.Y, delta.Y, spd.Y)
		if cur.Position == tgt.Position {
			s.log.Debug("entity arrived",
				zap.Uint64("entity", uint64(id)),
				zap.Int64("x", cur.X),
				zap.Int64("y", cur.Y))
			event.Emit(s.bus, event.EntityArrived{EntityID: id, Position: cur.Position})
			return
		}
		if after := tgt.Sub(cur.Position); overshot(delta.X, after.X) || overshot(delta.Y, after.Y) {
			s.log.Debug("entity overshot target",
				zap.Uint64("entity", uint64(id)),
				zap.Int64("x", cur.X),
				zap.Int64("y", cur.Y),
				zap.Int64("target_x", tgt.X),
				zap.Int64("target_y", tgt.Y))
		}
	})
	return nil
}

// stepAxis moves pos by speed toward the sign of delta.
func stepAxis(pos, delta int64, speed uint64) int64 {
	switch {
	case delta > 0:
		return pos + int64(speed)
	case delta < 0:
		return pos - int64(speed)
	}
	return pos
}

// overshot reports whether a step turned the remaining distance on an axis
// from one side of the target to the other.
func overshot(before, after int64) bool {
	return (before > 0 && after < 0) || (before < 0 && after > 0)
}
