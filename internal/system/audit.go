package system

import (
	"errors"
	"fmt"

	"github.com/herdsim/herdsim/internal/component"
	"github.com/herdsim/herdsim/internal/core/ecs"
	coresys "github.com/herdsim/herdsim/internal/core/system"
	"go.uber.org/zap"
)

// ErrAssetLeak is returned when assets appear or vanish between ticks.
var ErrAssetLeak = errors.New("asset total changed")

// AuditSystem checks that the amount of assets on the world map plus in all
// inventories always equals the amount the world started with.
type AuditSystem struct {
	baseline uint64
	log      *zap.Logger
}

// NewAuditSystem creates the system. baseline is the world's asset total
// before the first tick.
func NewAuditSystem(baseline uint64, log *zap.Logger) *AuditSystem {
	return &AuditSystem{baseline: baseline, log: log}
}

func (s *AuditSystem) Access() ecs.Access {
	return ecs.Access{
		Reads: []ecs.Key{
			ecs.Component[component.Inventory](),
			ecs.Resource[component.WorldMap](),
		},
	}
}

func (s *AuditSystem) Run(ctx *coresys.Context) error {
	total, err := AssetTotal(ctx)
	if err != nil {
		return err
	}
	if total != s.baseline {
		return fmt.Errorf("%w: expected %d, found %d", ErrAssetLeak, s.baseline, total)
	}
	s.log.Debug("asset total conserved",
		zap.Uint64("tick", ctx.Tick()),
		zap.Uint64("total", total))
	return nil
}

// AssetTotal sums the world map and every inventory. ctx must grant shared
// access to both.
func AssetTotal(ctx *coresys.Context) (uint64, error) {
	inventories, err := coresys.Read[component.Inventory](ctx)
	if err != nil {
		return 0, err
	}
	worldMap, err := coresys.Resource[component.WorldMap](ctx)
	if err != nil {
		return 0, err
	}
	total := worldMap.Total()
	for _, inv := range inventories.Iter() {
		total += inv.Total()
	}
	return total, nil
}
