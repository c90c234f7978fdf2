package ecs

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityPoolNeverIssuesZero(t *testing.T) {
	p := NewEntityPool()
	id := p.Create()
	assert.False(t, id.IsZero())
	assert.Equal(t, uint32(1), id.Index())
	assert.False(t, p.Alive(NilEntity))
}

func TestEntityPoolReuseBumpsGeneration(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a, b)
	assert.Equal(t, a.Generation()+1, b.Generation())
	assert.True(t, p.Alive(b))
	assert.False(t, p.Alive(a), "stale id must stay dead")
}

func TestEntityPoolDestroyStaleIsNoop(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.True(t, p.Destroy(a))
	assert.False(t, p.Destroy(a))
	assert.Equal(t, 0, p.Len())
}

func TestEntityPoolLive(t *testing.T) {
	p := NewEntityPool()
	a, b, c := p.Create(), p.Create(), p.Create()
	p.Destroy(b)

	assert.Equal(t, []EntityID{a, c}, slices.Collect(p.Live()))
	// each call starts over
	assert.Equal(t, []EntityID{a, c}, slices.Collect(p.Live()))
	assert.Equal(t, 2, p.Len())

	for id := range p.Live() {
		assert.Equal(t, a, id)
		break
	}
}
