package cdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHullInsertInitialAndLiveness(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	t0 := m.addTriangle(0, 1, 2)

	h := newHull(m, Vec2[float64]{X: 1, Y: 1}, 3)
	h.insertInitial(0, 1, 2, t0, t0+1, t0+2)

	assert.True(t, h.isLive(0))
	assert.True(t, h.isLive(1))
	assert.True(t, h.isLive(2))
	assert.Equal(t, int32(1), h.next[0])
	assert.Equal(t, int32(2), h.next[1])
	assert.Equal(t, int32(0), h.next[2])

	h.remove(1)
	assert.False(t, h.isLive(1))
	assert.True(t, h.isLive(0))
}

func TestHullInsertAfterSplices(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}, {X: 2, Y: -2},
	}
	t0 := m.addTriangle(0, 1, 2)
	h := newHull(m, Vec2[float64]{X: 1, Y: 1}, 4)
	h.insertInitial(0, 1, 2, t0, t0+1, t0+2)

	h.insertAfter(0, 3, t0)
	assert.Equal(t, int32(3), h.next[0])
	assert.Equal(t, int32(1), h.next[3])
	assert.Equal(t, int32(0), h.prev[3])
	assert.Equal(t, int32(3), h.prev[1])
}

func TestHullFindVisibleStartReturnsLiveVertex(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	t0 := m.addTriangle(0, 1, 2)
	h := newHull(m, Vec2[float64]{X: 1, Y: 1}, 3)
	h.insertInitial(0, 1, 2, t0, t0+1, t0+2)

	v := h.findVisibleStart(Vec2[float64]{X: 10, Y: 10})
	require.NotEqual(t, int32(-1), v)
	assert.True(t, h.isLive(v))
}

func TestHullFindVisibleStartFallsBackWhenHashMisses(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	t0 := m.addTriangle(0, 1, 2)
	h := newHull(m, Vec2[float64]{X: 1, Y: 1}, 3)
	h.insertInitial(0, 1, 2, t0, t0+1, t0+2)

	for i := range h.hash {
		h.hash[i] = -1
	}
	v := h.findVisibleStart(Vec2[float64]{X: 10, Y: 10})
	assert.NotEqual(t, int32(-1), v)
}
