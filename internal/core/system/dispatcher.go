package system

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/herdsim/herdsim/internal/core/ecs"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type entry struct {
	name   string
	sys    System
	access ecs.Access
	deps   []string
	preds  []int
}

// Builder collects named systems and their predecessors.
type Builder struct {
	log     *zap.Logger
	entries []entry
	workers int
}

func NewBuilder(log *zap.Logger) *Builder {
	return &Builder{
		log:     log,
		entries: make([]entry, 0, 16),
		workers: runtime.GOMAXPROCS(0),
	}
}

// Workers caps how many systems of one stage run at the same time.
func (b *Builder) Workers(n int) *Builder {
	if n > 0 {
		b.workers = n
	}
	return b
}

// Add registers sys under name. It runs after every system named in deps.
func (b *Builder) Add(name string, sys System, deps ...string) *Builder {
	b.entries = append(b.entries, entry{
		name:   name,
		sys:    sys,
		access: sys.Access(),
		deps:   deps,
	})
	return b
}

// Build checks names, predecessors and access declarations and computes the
// execution plan. No system runs before Build succeeds.
func (b *Builder) Build() (*Dispatcher, error) {
	n := len(b.entries)
	systems := make([]entry, n)
	copy(systems, b.entries)

	index := make(map[string]int, n)
	for i, e := range systems {
		if _, dup := index[e.name]; dup {
			return nil, fmt.Errorf("%w: %q", ecs.ErrDuplicateSystem, e.name)
		}
		index[e.name] = i
	}

	for i := range systems {
		e := &systems[i]
		if err := e.access.Validate(); err != nil {
			return nil, fmt.Errorf("system %q: %w", e.name, err)
		}
		e.preds = make([]int, 0, len(e.deps))
		for _, dep := range e.deps {
			p, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("%w: system %q depends on %q", ecs.ErrUnknownDependency, e.name, dep)
			}
			e.preds = append(e.preds, p)
		}
	}

	order, err := topoSort(systems)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		log:     b.log,
		systems: systems,
		stages:  plan(systems, order),
		workers: b.workers,
	}
	d.log.Debug("dispatcher built",
		zap.Int("systems", n),
		zap.Int("workers", d.workers),
		zap.Strings("stages", d.describe()))
	return d, nil
}

// topoSort orders systems so every predecessor comes first. Ties keep
// registration order.
func topoSort(systems []entry) ([]int, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(systems))
	order := make([]int, 0, len(systems))
	stack := make([]int, 0, len(systems))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			// stack holds the path from the first visit of i down to here
			start := 0
			for k, s := range stack {
				if s == i {
					start = k
					break
				}
			}
			names := make([]string, 0, len(stack)-start+1)
			for _, s := range stack[start:] {
				names = append(names, systems[s].name)
			}
			names = append(names, systems[i].name)
			return fmt.Errorf("%w: %s", ecs.ErrCyclicDependency, strings.Join(names, " -> "))
		}
		state[i] = visiting
		stack = append(stack, i)
		for _, p := range systems[i].preds {
			if err := visit(p); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[i] = done
		order = append(order, i)
		return nil
	}

	for i := range systems {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// plan groups systems into stages. A system is placed after all of its
// predecessors and after every earlier system whose access conflicts with it,
// so two systems sharing a stage never conflict.
func plan(systems []entry, order []int) [][]int {
	stage := make([]int, len(systems))
	var stages [][]int
	for k, i := range order {
		s := 0
		for _, p := range systems[i].preds {
			s = max(s, stage[p]+1)
		}
		for _, j := range order[:k] {
			if systems[i].access.ConflictsWith(systems[j].access) {
				s = max(s, stage[j]+1)
			}
		}
		stage[i] = s
		for len(stages) <= s {
			stages = append(stages, nil)
		}
		stages[s] = append(stages[s], i)
	}
	return stages
}

// Dispatcher runs a fixed set of systems once per Dispatch call.
type Dispatcher struct {
	log     *zap.Logger
	systems []entry
	stages  [][]int
	workers int
	tick    uint64
}

// Stages returns the system names of each stage in execution order.
func (d *Dispatcher) Stages() [][]string {
	out := make([][]string, len(d.stages))
	for s, stage := range d.stages {
		for _, i := range stage {
			out[s] = append(out[s], d.systems[i].name)
		}
	}
	return out
}

func (d *Dispatcher) describe() []string {
	stages := d.Stages()
	out := make([]string, len(stages))
	for i, names := range stages {
		out[i] = strings.Join(names, ",")
	}
	return out
}

// Dispatch runs one tick. Systems of a stage run concurrently; stages run in
// order. A failed system's dependents are skipped for this tick while
// independent systems still run. All failures are returned combined.
func (d *Dispatcher) Dispatch(w *ecs.World) error {
	d.tick++
	errs := make([]error, len(d.systems))
	failed := make([]bool, len(d.systems))

	for _, stage := range d.stages {
		runnable := make([]int, 0, len(stage))
		for _, i := range stage {
			if p, blocked := d.blockedBy(i, failed); blocked {
				failed[i] = true
				d.log.Warn("system skipped",
					zap.String("system", d.systems[i].name),
					zap.String("failed_predecessor", d.systems[p].name),
					zap.Uint64("tick", d.tick))
				continue
			}
			runnable = append(runnable, i)
		}

		if len(runnable) == 1 {
			errs[runnable[0]] = d.runOne(w, runnable[0])
		} else {
			var g errgroup.Group
			g.SetLimit(d.workers)
			for _, i := range runnable {
				g.Go(func() error {
					errs[i] = d.runOne(w, i)
					return nil
				})
			}
			_ = g.Wait()
		}

		for _, i := range runnable {
			if errs[i] != nil {
				failed[i] = true
			}
		}
	}

	w.Maintain()
	return multierr.Combine(errs...)
}

func (d *Dispatcher) blockedBy(i int, failed []bool) (int, bool) {
	for _, p := range d.systems[i].preds {
		if failed[p] {
			return p, true
		}
	}
	return 0, false
}

func (d *Dispatcher) runOne(w *ecs.World, i int) error {
	e := d.systems[i]
	if err := execute(w, e.name, e.sys, e.access, d.tick); err != nil {
		return &SystemError{System: e.name, Tick: d.tick, Err: err}
	}
	return nil
}
