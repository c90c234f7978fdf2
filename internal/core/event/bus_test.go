package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ping struct{ N int }
type pong struct{ S string }

func TestBusDeliversAfterSwap(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(p ping) { got = append(got, p.N) })

	Emit(b, ping{N: 1})
	Emit(b, ping{N: 2})
	b.DispatchAll()
	assert.Empty(t, got, "emitted events wait for the next swap")
	assert.Equal(t, 2, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, b.Pending())

	// front is not redelivered after the following swap
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got)
}

func TestBusRoutesByType(t *testing.T) {
	b := NewBus()
	var pings, pongs int
	Subscribe(b, func(ping) { pings++ })
	Subscribe(b, func(pong) { pongs++ })

	Emit(b, ping{})
	Emit(b, pong{})
	Emit(b, pong{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 1, pings)
	assert.Equal(t, 2, pongs)
}

func TestBusConcurrentEmit(t *testing.T) {
	b := NewBus()
	total := 0
	Subscribe(b, func(p ping) { total += p.N })

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				Emit(b, ping{N: 1})
			}
		}()
	}
	wg.Wait()
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 800, total)
}

func TestEmitOnNilBusIsDropped(t *testing.T) {
	assert.NotPanics(t, func() { Emit[ping](nil, ping{N: 1}) })
}
