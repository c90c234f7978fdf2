package ecs

import "reflect"

// Registry tracks all component stores and supports bulk cleanup on entity destroy.
type Registry struct {
	stores map[reflect.Type]erasedStore
	order  []erasedStore
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[reflect.Type]erasedStore, 16),
		order:  make([]erasedStore, 0, 16),
	}
}

// register adds a store for T unless one exists and returns the live store.
func register[T any](r *Registry) *Storage[T] {
	t := typeKey[T]()
	if s, ok := r.stores[t]; ok {
		return s.(*Storage[T])
	}
	s := NewStorage[T]()
	r.stores[t] = s
	r.order = append(r.order, s)
	return s
}

func lookup[T any](r *Registry) (*Storage[T], bool) {
	s, ok := r.stores[typeKey[T]()]
	if !ok {
		return nil, false
	}
	return s.(*Storage[T]), true
}

func (r *Registry) erased(t reflect.Type) (erasedStore, bool) {
	s, ok := r.stores[t]
	return s, ok
}

// Len returns the number of registered component types.
func (r *Registry) Len() int { return len(r.order) }

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.order {
		s.Remove(id)
	}
}
