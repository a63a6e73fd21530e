package cdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickSeedTriangleNonDegenerate(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 2, Y: 2},
	}
	i0, i1, i2, ok := m.pickSeedTriangle()
	require.True(t, ok)
	assert.NotEqual(t, i0, i1)
	assert.NotEqual(t, i1, i2)
	assert.NotEqual(t, i0, i2)
	assert.NotEqual(t, 0.0, m.cap.Orient2D(m.position(i0), m.position(i1), m.position(i2)))
}

func TestBuildDelaunayTriangleCountIsEulerConsistent(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
		{X: 5, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5}, {X: 2, Y: 7}, {X: 8, Y: 3},
	}
	st := m.buildDelaunay()
	require.True(t, st.IsOk(), st)

	n := len(m.Positions)
	// A triangulation of n points in general position with h points on the
	// convex hull has 2n - h - 2 triangles.
	boundary := 0
	for _, o := range m.Halfedges {
		if o == -1 {
			boundary++
		}
	}
	wantTriangles := 2*n - boundary - 2
	assert.Equal(t, wantTriangles, m.TriangleCount())
}

func TestBuildDelaunayIsLegal(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{
		{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 6}, {X: 0, Y: 6},
		{X: 3, Y: 1}, {X: 5, Y: 3}, {X: 3, Y: 5}, {X: 1, Y: 3}, {X: 3, Y: 3},
	}
	require.True(t, m.buildDelaunay().IsOk())

	for h := int32(0); h < int32(len(m.Halfedges)); h++ {
		o := m.Halfedges[h]
		if o == -1 || o < h {
			continue
		}
		p0 := m.position(m.apex(h))
		pr := m.position(m.origin(h))
		pl := m.position(m.destination(h))
		p1 := m.position(m.apex(o))
		assert.NotEqual(t, Positive, m.cap.InCircle(p0, pr, pl, p1), "halfedge %d violates the Delaunay condition", h)
	}
}

func TestBuildDelaunayRejectsTooFewPoints(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 1}}
	st := m.buildDelaunay()
	require.False(t, st.IsOk())
	_, ok := st.(StatusDegenerateInput)
	assert.True(t, ok)
}

func TestBuildDelaunaySkipsDuplicatePoints(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 4},
	}
	st := m.buildDelaunay()
	require.True(t, st.IsOk(), st)
	assert.Equal(t, 2, m.TriangleCount())
}
