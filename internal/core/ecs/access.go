package ecs

import (
	"fmt"
	"reflect"
	"sync"
)

type keyKind uint8

const (
	componentKey keyKind = iota
	resourceKey
)

// Key names one component storage or one resource for access checks.
type Key struct {
	kind keyKind
	typ  reflect.Type
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Component returns the key of the storage holding components of type T.
func Component[T any]() Key { return Key{kind: componentKey, typ: typeKey[T]()} }

// Resource returns the key of the world resource of type T.
func Resource[T any]() Key { return Key{kind: resourceKey, typ: typeKey[T]()} }

func (k Key) String() string {
	if k.kind == resourceKey {
		return "resource " + k.typ.String()
	}
	return "component " + k.typ.String()
}

// Mode is the kind of access a system holds on a key.
type Mode uint8

const (
	Shared Mode = iota
	Exclusive
)

func (m Mode) String() string {
	if m == Exclusive {
		return "exclusive"
	}
	return "shared"
}

// Access is the static declaration of what a system reads and writes.
type Access struct {
	Reads  []Key
	Writes []Key
}

// Validate rejects a declaration that asks for shared and exclusive access to
// the same key.
func (a Access) Validate() error {
	writes := make(map[Key]struct{}, len(a.Writes))
	for _, k := range a.Writes {
		writes[k] = struct{}{}
	}
	for _, k := range a.Reads {
		if _, ok := writes[k]; ok {
			return fmt.Errorf("%w: %s requested both shared and exclusive", ErrAccessConflict, k)
		}
	}
	return nil
}

// Allows reports whether the declaration covers access to k in mode m.
// A declared write also covers reads.
func (a Access) Allows(k Key, m Mode) bool {
	for _, w := range a.Writes {
		if w == k {
			return true
		}
	}
	if m == Exclusive {
		return false
	}
	for _, r := range a.Reads {
		if r == k {
			return true
		}
	}
	return false
}

// ConflictsWith reports whether a and b may not run at the same time: one of
// them writes a key the other reads or writes.
func (a Access) ConflictsWith(b Access) bool {
	for _, w := range a.Writes {
		if b.Allows(w, Shared) {
			return true
		}
	}
	for _, w := range b.Writes {
		if a.Allows(w, Shared) {
			return true
		}
	}
	return false
}

// borrowTable is the runtime side of the access rule. Every system holds its
// declared keys for the whole of its run.
type borrowTable struct {
	mu      sync.Mutex
	readers map[Key]int
	writers map[Key]bool
}

func newBorrowTable() *borrowTable {
	return &borrowTable{
		readers: make(map[Key]int),
		writers: make(map[Key]bool),
	}
}

// acquire takes every key of a or none of them.
func (b *borrowTable) acquire(a Access) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range a.Writes {
		if b.writers[k] || b.readers[k] > 0 {
			return fmt.Errorf("%w: %s is already borrowed", ErrAccessConflict, k)
		}
	}
	for _, k := range a.Reads {
		if b.writers[k] {
			return fmt.Errorf("%w: %s is exclusively borrowed", ErrAccessConflict, k)
		}
	}
	for _, k := range a.Writes {
		b.writers[k] = true
	}
	for _, k := range a.Reads {
		b.readers[k]++
	}
	return nil
}

func (b *borrowTable) release(a Access) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range a.Writes {
		delete(b.writers, k)
	}
	for _, k := range a.Reads {
		if b.readers[k]--; b.readers[k] <= 0 {
			delete(b.readers, k)
		}
	}
}
