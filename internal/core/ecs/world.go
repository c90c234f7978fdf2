package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"sync"
)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the global resources and a deferred destruction queue flushed by
// Maintain at the end of each tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	resources    map[reflect.Type]any
	borrows      *borrowTable
	destroyMu    sync.Mutex // systems of one stage queue destructions concurrently
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		resources:    make(map[reflect.Type]any, 8),
		borrows:      newBorrowTable(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool { return w.pool }

// Register creates the storage for component type T. Registering twice keeps
// the existing storage.
func Register[T any](w *World) *Storage[T] {
	return register[T](w.registry)
}

// StorageOf returns the storage for T, or ErrUnregisteredComponent.
func StorageOf[T any](w *World) (*Storage[T], error) {
	s, ok := lookup[T](w.registry)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredComponent, typeKey[T]())
	}
	return s, nil
}

// Insert attaches c to a live entity.
func Insert[T any](w *World, id EntityID, c T) error {
	s, err := StorageOf[T](w)
	if err != nil {
		return err
	}
	if !w.pool.Alive(id) {
		return fmt.Errorf("insert %s: entity %d is not alive", typeKey[T](), id)
	}
	s.Insert(id, c)
	return nil
}

// InsertResource stores v as the world's single resource of type T,
// replacing any previous one.
func InsertResource[T any](w *World, v T) {
	w.resources[typeKey[T]()] = &v
}

// ResourceOf returns the world's resource of type T.
func ResourceOf[T any](w *World) (*T, error) {
	r, ok := w.resources[typeKey[T]()]
	if !ok {
		return nil, fmt.Errorf("%w: resource %s", ErrUnregisteredComponent, typeKey[T]())
	}
	return r.(*T), nil
}

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

// NewEntity starts an entity whose components are attached together by Build.
func (w *World) NewEntity() *EntityBuilder {
	return &EntityBuilder{world: w}
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Entities yields every live entity.
func (w *World) Entities() iter.Seq[EntityID] {
	return w.pool.Live()
}

// DestroyEntity removes id from every storage and releases it. It must not be
// called while a dispatch is running; systems queue through Context.Destroy.
func (w *World) DestroyEntity(id EntityID) bool {
	if !w.pool.Alive(id) {
		return false
	}
	w.registry.RemoveAll(id)
	return w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
// Safe to call from concurrently running systems.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyMu.Lock()
	w.destroyQueue = append(w.destroyQueue, id)
	w.destroyMu.Unlock()
}

// Maintain destroys all queued entities and clears their components.
// The dispatcher calls it once every stage of a tick has finished.
func (w *World) Maintain() {
	w.destroyMu.Lock()
	queue := w.destroyQueue
	w.destroyQueue = nil
	w.destroyMu.Unlock()

	for _, id := range queue {
		w.DestroyEntity(id)
	}
}

// Acquire takes the borrows declared by a. The returned func releases them.
func (w *World) Acquire(a Access) (func(), error) {
	if err := w.borrows.acquire(a); err != nil {
		return nil, err
	}
	return func() { w.borrows.release(a) }, nil
}

// EntityBuilder collects the initial components of a new entity.
type EntityBuilder struct {
	world      *World
	components []any
}

// With adds one component value. The value's dynamic type selects the storage.
func (b *EntityBuilder) With(c any) *EntityBuilder {
	b.components = append(b.components, c)
	return b
}

// Build creates the entity and attaches every component, or creates nothing
// if any component type is unregistered.
func (b *EntityBuilder) Build() (EntityID, error) {
	stores := make([]erasedStore, len(b.components))
	for i, c := range b.components {
		t := reflect.TypeOf(c)
		s, ok := b.world.registry.erased(t)
		if !ok {
			return NilEntity, fmt.Errorf("%w: %v", ErrUnregisteredComponent, t)
		}
		stores[i] = s
	}
	id := b.world.pool.Create()
	for i, c := range b.components {
		if err := stores[i].insertAny(id, c); err != nil {
			b.world.DestroyEntity(id)
			return NilEntity, err
		}
	}
	return id, nil
}
