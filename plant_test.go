package cdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSquareWithHole(t *testing.T) *Mesh[float64] {
	t.Helper()
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6},
	}
	require.True(t, m.buildDelaunay().IsOk())

	loop := [][2]int32{{4, 5}, {5, 6}, {6, 7}, {7, 4}}
	for _, e := range loop {
		st := m.insertConstraint(e[0], e[1], ConstrainedAndHoleBoundary, 1000)
		require.True(t, st.IsOk(), st)
	}
	return m
}

func TestFloodFillStopsAtWall(t *testing.T) {
	m := buildSquareWithHole(t)
	start, ok := m.anyHullTriangle()
	require.True(t, ok)

	visited := m.floodFill(start, isHoleBoundaryWall[float64])

	for tIdx, v := range visited {
		if !v {
			continue
		}
		a := m.position(m.Triangles[tIdx*3])
		b := m.position(m.Triangles[tIdx*3+1])
		c := m.position(m.Triangles[tIdx*3+2])
		centroid := Vec2[float64]{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
		inHole := centroid.X > 4 && centroid.X < 6 && centroid.Y > 4 && centroid.Y < 6
		assert.False(t, inHole, "flood fill from outside the hole should never cross its boundary")
	}
}

func TestRemoveRegionsHoleSeed(t *testing.T) {
	m := buildSquareWithHole(t)
	st := m.removeRegions(Settings{}, []Vec2[float64]{{X: 5, Y: 5}})
	require.True(t, st.IsOk(), st)

	for tIdx := 0; tIdx < m.TriangleCount(); tIdx++ {
		a := m.position(m.Triangles[tIdx*3])
		b := m.position(m.Triangles[tIdx*3+1])
		c := m.position(m.Triangles[tIdx*3+2])
		centroid := Vec2[float64]{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
		inHole := centroid.X > 4 && centroid.X < 6 && centroid.Y > 4 && centroid.Y < 6
		assert.False(t, inHole)
	}
}

func TestAutoParityRemovalDropsOutside(t *testing.T) {
	m := buildSquareWithHole(t)
	remove := m.autoParityRemoval()

	foundOutside, foundInside := false, false
	for tIdx, r := range remove {
		a := m.position(m.Triangles[tIdx*3])
		b := m.position(m.Triangles[tIdx*3+1])
		c := m.position(m.Triangles[tIdx*3+2])
		centroid := Vec2[float64]{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
		inHole := centroid.X > 4 && centroid.X < 6 && centroid.Y > 4 && centroid.Y < 6
		// Only the inner square is a hole-boundary loop, so the band between
		// the hull and that loop is outside (even depth) and its interior is
		// inside (odd depth).
		if inHole {
			assert.False(t, r)
			foundInside = true
		} else {
			assert.True(t, r)
			foundOutside = true
		}
	}
	assert.True(t, foundOutside)
	assert.True(t, foundInside)
}

func TestRemoveTrianglesCompactsAndRemapsHalfedges(t *testing.T) {
	m := NewMesh[float64](Float64Capability{})
	m.Positions = []Vec2[float64]{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2},
	}
	t0 := m.addTriangle(0, 1, 2)
	t1 := m.addTriangle(0, 2, 3)
	m.link(t0+2, t1)

	remove := make([]bool, 2)
	remove[t1/3] = true
	m.removeTriangles(remove)

	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, int32(-1), m.Halfedges[t0+2])
}
