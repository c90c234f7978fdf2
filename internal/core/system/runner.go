package system

import (
	"context"
	"fmt"
	"time"

	"github.com/herdsim/herdsim/internal/core/ecs"
	"github.com/herdsim/herdsim/internal/core/event"
	"go.uber.org/zap"
)

// Runner drives one World through one Dispatcher tick by tick. A tick never
// starts before the previous one has fully completed.
type Runner struct {
	world      *ecs.World
	dispatcher *Dispatcher
	bus        *event.Bus
	log        *zap.Logger
	ticks      uint64
}

// NewRunner ties the pieces together. bus may be nil.
func NewRunner(w *ecs.World, d *Dispatcher, bus *event.Bus, log *zap.Logger) *Runner {
	return &Runner{world: w, dispatcher: d, bus: bus, log: log}
}

// Ticks returns how many ticks have been run.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Tick delivers last tick's events, then runs exactly one tick.
func (r *Runner) Tick() error {
	r.Flush()
	r.ticks++
	if err := r.dispatcher.Dispatch(r.world); err != nil {
		r.log.Error("tick failed", zap.Uint64("tick", r.ticks), zap.Error(err))
		return fmt.Errorf("tick %d: %w", r.ticks, err)
	}
	return nil
}

// Flush delivers every event emitted so far.
func (r *Runner) Flush() {
	if r.bus == nil {
		return
	}
	r.bus.SwapBuffers()
	r.bus.DispatchAll()
}

// Run runs ticks ticks, or until ctx is done when ticks <= 0. A positive rate
// paces ticks with a ticker. The first failing tick stops the run.
func (r *Runner) Run(ctx context.Context, ticks int, rate time.Duration) error {
	var pace <-chan time.Time
	if rate > 0 {
		ticker := time.NewTicker(rate)
		defer ticker.Stop()
		pace = ticker.C
	}
	defer r.Flush()

	for n := 0; ticks <= 0 || n < ticks; n++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Tick(); err != nil {
			return err
		}
	}
	return nil
}
