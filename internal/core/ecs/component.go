package ecs

import (
	"fmt"
	"iter"
)

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// erasedStore lets the entity builder attach values whose type is only known
// at runtime.
type erasedStore interface {
	Removable
	insertAny(id EntityID, v any) error
}

// Source is a component store a join can iterate. It is implemented by
// *Storage and ReadStorage only. A *Storage hands the join pointers into the
// store; a ReadStorage hands it pointers to copies, so writes through them
// never reach the store.
type Source[T any] interface {
	Len() int
	lookup(id EntityID) (*T, bool)
	each(fn func(EntityID, *T) bool)
}

// Storage is a generic typed map store for one component type. It owns the
// values; callers get pointers into it through GetMut and Iter.
type Storage[T any] struct {
	data map[EntityID]*T
}

func NewStorage[T any]() *Storage[T] {
	return &Storage[T]{
		data: make(map[EntityID]*T, 256),
	}
}

// Insert attaches c to id, replacing any previous value.
func (s *Storage[T]) Insert(id EntityID, c T) {
	s.data[id] = &c
}

// Get returns a copy of the component attached to id.
func (s *Storage[T]) Get(id EntityID) (T, bool) {
	c, ok := s.data[id]
	if !ok {
		var zero T
		return zero, false
	}
	return *c, true
}

// GetMut returns the stored component so it can be changed in place.
func (s *Storage[T]) GetMut(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

// Take detaches and returns the component attached to id.
func (s *Storage[T]) Take(id EntityID) (T, bool) {
	c, ok := s.data[id]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.data, id)
	return *c, true
}

func (s *Storage[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *Storage[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Storage[T]) Len() int {
	return len(s.data)
}

// Iter yields every (entity, component) pair. Order is unspecified and each
// call starts a fresh pass.
func (s *Storage[T]) Iter() iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		s.each(yield)
	}
}

func (s *Storage[T]) lookup(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Storage[T]) each(fn func(EntityID, *T) bool) {
	for id, c := range s.data {
		if !fn(id, c) {
			return
		}
	}
}

func (s *Storage[T]) insertAny(id EntityID, v any) error {
	c, ok := v.(T)
	if !ok {
		return fmt.Errorf("store %s: cannot hold %T", typeKey[T](), v)
	}
	s.Insert(id, c)
	return nil
}

// ReadStorage is a shared view over a Storage. It hands out copies only.
type ReadStorage[T any] struct {
	s *Storage[T]
}

// ReadOnly wraps s in a shared view.
func ReadOnly[T any](s *Storage[T]) ReadStorage[T] {
	return ReadStorage[T]{s: s}
}

func (r ReadStorage[T]) Get(id EntityID) (T, bool) { return r.s.Get(id) }
func (r ReadStorage[T]) Has(id EntityID) bool      { return r.s.Has(id) }
func (r ReadStorage[T]) Len() int                  { return r.s.Len() }

// Iter yields copies of every (entity, component) pair.
func (r ReadStorage[T]) Iter() iter.Seq2[EntityID, T] {
	return func(yield func(EntityID, T) bool) {
		r.s.each(func(id EntityID, c *T) bool {
			return yield(id, *c)
		})
	}
}

func (r ReadStorage[T]) lookup(id EntityID) (*T, bool) {
	c, ok := r.s.lookup(id)
	if !ok {
		return nil, false
	}
	v := *c
	return &v, true
}

func (r ReadStorage[T]) each(fn func(EntityID, *T) bool) {
	r.s.each(func(id EntityID, c *T) bool {
		v := *c
		return fn(id, &v)
	})
}
