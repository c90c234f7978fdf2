package ecs

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type health struct{ HP int }

func TestStorageInsertGet(t *testing.T) {
	s := NewStorage[health]()
	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Insert(1, health{HP: 10})
	h, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 10, h.HP)

	// one value per entity: insert replaces
	s.Insert(1, health{HP: 20})
	assert.Equal(t, 1, s.Len())
	h, _ = s.Get(1)
	assert.Equal(t, 20, h.HP)
}

func TestStorageGetReturnsCopy(t *testing.T) {
	s := NewStorage[health]()
	s.Insert(1, health{HP: 10})
	h, _ := s.Get(1)
	h.HP = 99
	got, _ := s.Get(1)
	assert.Equal(t, 10, got.HP)
}

func TestStorageGetMut(t *testing.T) {
	s := NewStorage[health]()
	s.Insert(1, health{HP: 10})
	h, ok := s.GetMut(1)
	require.True(t, ok)
	h.HP = 5
	got, _ := s.Get(1)
	assert.Equal(t, 5, got.HP)

	_, ok = s.GetMut(2)
	assert.False(t, ok)
}

func TestStorageTakeAndRemove(t *testing.T) {
	s := NewStorage[health]()
	s.Insert(1, health{HP: 10})
	s.Insert(2, health{HP: 20})

	h, ok := s.Take(1)
	require.True(t, ok)
	assert.Equal(t, 10, h.HP)
	assert.False(t, s.Has(1))

	_, ok = s.Take(1)
	assert.False(t, ok)

	s.Remove(2)
	assert.Equal(t, 0, s.Len())
}

func TestStorageIterRestartable(t *testing.T) {
	s := NewStorage[health]()
	s.Insert(1, health{HP: 1})
	s.Insert(2, health{HP: 2})
	s.Insert(3, health{HP: 3})

	collect := func() map[EntityID]int {
		out := map[EntityID]int{}
		for id, h := range s.Iter() {
			out[id] = h.HP
		}
		return out
	}
	want := map[EntityID]int{1: 1, 2: 2, 3: 3}
	assert.Equal(t, want, collect())
	assert.Equal(t, want, collect())

	for _, h := range s.Iter() {
		h.HP *= 10
	}
	assert.Equal(t, map[EntityID]int{1: 10, 2: 20, 3: 30}, collect())
}

func TestReadStorageYieldsCopies(t *testing.T) {
	s := NewStorage[health]()
	s.Insert(1, health{HP: 1})
	r := ReadOnly(s)

	for _, h := range r.Iter() {
		h.HP = 100
	}
	got, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1, got.HP)
	assert.True(t, r.Has(1))
	assert.Equal(t, 1, r.Len())
	assert.Len(t, maps.Collect(r.Iter()), 1)
}

func TestStorageInsertAnyRejectsWrongType(t *testing.T) {
	s := NewStorage[health]()
	require.Error(t, s.insertAny(1, "not health"))
	require.NoError(t, s.insertAny(1, health{HP: 3}))
	assert.True(t, s.Has(1))
}
