package ecs

import "iter"

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
type EntityID uint64

// NilEntity is never issued by an EntityPool.
const NilEntity EntityID = 0

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == NilEntity }

// EntityPool manages entity allocation with generational indices and a free list.
// Index 0 is reserved so that the zero EntityID never names a live entity.
type EntityPool struct {
	generations []uint32
	alive       []bool
	freeList    []uint32
	nextIndex   uint32
	live        int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 1, 1024),
		alive:       make([]bool, 1, 1024),
		freeList:    make([]uint32, 0, 256),
		nextIndex:   1,
	}
}

func (p *EntityPool) Create() EntityID {
	var idx uint32
	if len(p.freeList) > 0 {
		idx = p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
	} else {
		idx = p.nextIndex
		p.nextIndex++
		p.generations = append(p.generations, 0)
		p.alive = append(p.alive, false)
	}
	p.alive[idx] = true
	p.live++
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.alive[idx] && p.generations[idx] == id.Generation()
}

// Destroy releases the id. A released index is handed out again with a bumped
// generation, so the old id never compares equal to a new one.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false // already destroyed (stale reference)
	}
	idx := id.Index()
	p.generations[idx]++
	p.alive[idx] = false
	p.freeList = append(p.freeList, idx)
	p.live--
	return true
}

// Len returns the number of live entities.
func (p *EntityPool) Len() int { return p.live }

// Live yields every live entity in index order.
func (p *EntityPool) Live() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for idx := uint32(1); idx < p.nextIndex; idx++ {
			if !p.alive[idx] {
				continue
			}
			if !yield(NewEntityID(idx, p.generations[idx])) {
				return
			}
		}
	}
}
