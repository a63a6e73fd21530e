package cdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPrev(t *testing.T) {
	assert.Equal(t, int32(1), next(0))
	assert.Equal(t, int32(2), next(1))
	assert.Equal(t, int32(0), next(2))
	assert.Equal(t, int32(2), prev(0))
	assert.Equal(t, int32(0), prev(1))
	assert.Equal(t, int32(1), prev(2))
}

func TestTriangleOf(t *testing.T) {
	assert.Equal(t, int32(0), triangleOf(0))
	assert.Equal(t, int32(0), triangleOf(2))
	assert.Equal(t, int32(1), triangleOf(3))
	assert.Equal(t, int32(3), triangleOf(11))
}

func TestFlipDiagonal(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{
		{X: 0, Y: 0}, // 0
		{X: 2, Y: 0}, // 1
		{X: 2, Y: 2}, // 2
		{X: 0, Y: 2}, // 3
	}
	// Two clockwise triangles sharing the diagonal 0-2.
	t0 := m.addTriangle(0, 1, 2) // h0=0->1 h1=1->2 h2=2->0
	t1 := m.addTriangle(0, 2, 3) // h3=0->2 h4=2->3 h5=3->0
	m.link(t0+2, t1)             // 2->0 twin 0->2

	before := m.TriangleCount()
	m.flipDiagonal(t0+2, nil)
	after := m.TriangleCount()
	assert.Equal(t, before, after)

	// The diagonal should now run 1-3 instead of 0-2.
	found13 := false
	for h := int32(0); h < int32(len(m.Triangles)); h++ {
		a, b := m.origin(h), m.destination(h)
		if (a == 1 && b == 3) || (a == 3 && b == 1) {
			found13 = true
		}
	}
	assert.True(t, found13)
}

func TestAddTriangleAndLink(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	h := m.addTriangle(0, 1, 2)
	require.Equal(t, int32(0), h)
	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, int32(-1), m.Halfedges[h])
	assert.Equal(t, Unconstrained, m.Constrained[h])
}

func TestSetConstrainedPropagatesToTwin(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	t0 := m.addTriangle(0, 1, 2)
	t1 := m.addTriangle(1, 3, 2)
	m.link(t0+1, t1+2)

	m.setConstrained(t0+1, Constrained)
	assert.Equal(t, Constrained, m.Constrained[t0+1])
	assert.Equal(t, Constrained, m.Constrained[t1+2])
}

func TestHalfedgeStateDominance(t *testing.T) {
	assert.Equal(t, Constrained, Unconstrained.max(Constrained))
	assert.Equal(t, ConstrainedAndHoleBoundary, Constrained.max(ConstrainedAndHoleBoundary))
	assert.Equal(t, ConstrainedAndHoleBoundary, ConstrainedAndHoleBoundary.max(Unconstrained))
}
