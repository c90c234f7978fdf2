package system

import (
	"fmt"

	"github.com/herdsim/herdsim/internal/core/ecs"
)

// System is the interface every ECS system implements. Access is the static
// declaration the dispatcher plans with; Run is called once per tick.
type System interface {
	Access() ecs.Access
	Run(ctx *Context) error
}

// SystemError wraps the failure of one system during one tick.
type SystemError struct {
	System string
	Tick   uint64
	Err    error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("system %q (tick %d): %v", e.System, e.Tick, e.Err)
}

func (e *SystemError) Unwrap() error { return e.Err }

// Context is what a running system sees of the world. Every fetch is checked
// against the system's declared access.
type Context struct {
	world  *ecs.World
	name   string
	access ecs.Access
	tick   uint64
}

// Name returns the name the system was registered under.
func (c *Context) Name() string { return c.name }

// Tick returns the number of the tick being run, starting at 1.
func (c *Context) Tick() uint64 { return c.tick }

// Destroy queues id for destruction once every system of the tick has run.
// Until then the entity and its components stay visible to later stages.
func (c *Context) Destroy(id ecs.EntityID) {
	c.world.MarkForDestruction(id)
}

func (c *Context) check(k ecs.Key, m ecs.Mode) error {
	if !c.access.Allows(k, m) {
		return fmt.Errorf("%w: system %q fetched %s without declaring %s access",
			ecs.ErrAccessConflict, c.name, k, m)
	}
	return nil
}

// Read returns a shared view of the T storage.
func Read[T any](c *Context) (ecs.ReadStorage[T], error) {
	if err := c.check(ecs.Component[T](), ecs.Shared); err != nil {
		return ecs.ReadStorage[T]{}, err
	}
	s, err := ecs.StorageOf[T](c.world)
	if err != nil {
		return ecs.ReadStorage[T]{}, err
	}
	return ecs.ReadOnly(s), nil
}

// Write returns the T storage for exclusive use.
func Write[T any](c *Context) (*ecs.Storage[T], error) {
	if err := c.check(ecs.Component[T](), ecs.Exclusive); err != nil {
		return nil, err
	}
	return ecs.StorageOf[T](c.world)
}

// Resource returns the T resource for shared use. Callers must not modify it.
func Resource[T any](c *Context) (*T, error) {
	if err := c.check(ecs.Resource[T](), ecs.Shared); err != nil {
		return nil, err
	}
	return ecs.ResourceOf[T](c.world)
}

// ResourceMut returns the T resource for exclusive use.
func ResourceMut[T any](c *Context) (*T, error) {
	if err := c.check(ecs.Resource[T](), ecs.Exclusive); err != nil {
		return nil, err
	}
	return ecs.ResourceOf[T](c.world)
}

// execute runs sys while holding its declared borrows.
func execute(w *ecs.World, name string, sys System, access ecs.Access, tick uint64) error {
	release, err := w.Acquire(access)
	if err != nil {
		return err
	}
	defer release()
	return sys.Run(&Context{world: w, name: name, access: access, tick: tick})
}

// RunNow runs a single system against w outside of any dispatcher, then
// flushes the destructions it queued.
func RunNow(w *ecs.World, name string, sys System) error {
	access := sys.Access()
	if err := access.Validate(); err != nil {
		return fmt.Errorf("system %q: %w", name, err)
	}
	err := execute(w, name, sys, access, 0)
	w.Maintain()
	if err != nil {
		return &SystemError{System: name, Err: err}
	}
	return nil
}
