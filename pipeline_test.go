package cdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangulateSingleTriangle(t *testing.T) {
	in := Input[float64]{
		Positions: []Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
	}
	out := TriangulateFloat64(in, DefaultSettings())
	require.True(t, out.Status.IsOk(), out.Status)
	assert.Len(t, out.Triangles, 3)
	assert.Len(t, out.Halfedges, 3)
	for _, h := range out.Halfedges {
		assert.Equal(t, int32(-1), h)
	}
}

func TestTriangulateUnitSquare(t *testing.T) {
	in := Input[float64]{
		Positions: []Vec2[float64]{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
	}
	out := TriangulateFloat64(in, DefaultSettings())
	require.True(t, out.Status.IsOk(), out.Status)
	assert.Equal(t, 2, len(out.Triangles)/3)

	cap := Float64Capability{}
	for ti := 0; ti < len(out.Triangles)/3; ti++ {
		a := out.Positions[out.Triangles[ti*3]]
		b := out.Positions[out.Triangles[ti*3+1]]
		c := out.Positions[out.Triangles[ti*3+2]]
		assert.LessOrEqual(t, cap.Orient2D(a, b, c), 0.0)
	}
}

func TestTriangulateConstrainedCrossing(t *testing.T) {
	in := Input[float64]{
		Positions: []Vec2[float64]{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
			{X: 1, Y: 2}, {X: 3, Y: 2},
		},
		ConstraintEdges: []int{4, 5},
	}
	settings := DefaultSettings()
	settings.ValidateInput = true
	out := TriangulateFloat64(in, settings)
	require.True(t, out.Status.IsOk(), out.Status)

	found := false
	for h := int32(0); h < int32(len(out.Constrained)); h++ {
		if out.Constrained[h] == Unconstrained {
			continue
		}
		tri := out.Triangles
		next := h + 1
		if h%3 == 2 {
			next = h - 2
		}
		a, b := tri[h], tri[next]
		if (a == 4 && b == 5) || (a == 5 && b == 4) {
			found = true
		}
	}
	assert.True(t, found, "expected the requested constraint edge to survive in the mesh")
}

func TestTriangulateHoleExtraction(t *testing.T) {
	in := Input[float64]{
		Positions: []Vec2[float64]{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
			{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6},
		},
		ConstraintEdges: []int{4, 5, 5, 6, 6, 7, 7, 4},
		HoleSeeds:       []Vec2[float64]{{X: 5, Y: 5}},
	}
	settings := DefaultSettings()
	out := TriangulateFloat64(in, settings)
	require.True(t, out.Status.IsOk(), out.Status)

	for tIdx := 0; tIdx < len(out.Triangles)/3; tIdx++ {
		a := out.Positions[out.Triangles[tIdx*3]]
		b := out.Positions[out.Triangles[tIdx*3+1]]
		c := out.Positions[out.Triangles[tIdx*3+2]]
		centroid := Vec2[float64]{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
		inHole := centroid.X > 4 && centroid.X < 6 && centroid.Y > 4 && centroid.Y < 6
		assert.False(t, inHole, "triangle %d centroid %v falls inside the removed hole", tIdx, centroid)
	}
}

func TestTriangulateRefinementQuality(t *testing.T) {
	in := Input[float64]{
		Positions: []Vec2[float64]{
			{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20},
		},
	}
	settings := DefaultSettings()
	settings.RefineMesh = true
	settings.Refinement = RefinementSettings{Area: 5, Angle: 20 * (3.141592653589793 / 180)}
	out := TriangulateFloat64(in, settings)
	require.True(t, out.Status.IsOk(), out.Status)

	cap := Float64Capability{}
	for tIdx := 0; tIdx < len(out.Triangles)/3; tIdx++ {
		a := out.Positions[out.Triangles[tIdx*3]]
		b := out.Positions[out.Triangles[tIdx*3+1]]
		c := out.Positions[out.Triangles[tIdx*3+2]]
		area := cap.Orient2D(a, b, c)
		if area < 0 {
			area = -area
		}
		area /= 2
		assert.LessOrEqual(t, area, settings.Refinement.Area*1.5)
	}
}

func TestTriangulateRejectsTooFewPositions(t *testing.T) {
	in := Input[float64]{Positions: []Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	settings := DefaultSettings()
	settings.ValidateInput = true
	out := TriangulateFloat64(in, settings)
	require.False(t, out.Status.IsOk())
	_, ok := out.Status.(StatusPositionsLengthLessThan3)
	assert.True(t, ok)
}

func TestTriangulateRejectsIntersectingConstraints(t *testing.T) {
	in := Input[float64]{
		Positions: []Vec2[float64]{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		},
		ConstraintEdges: []int{0, 2, 1, 3},
	}
	settings := DefaultSettings()
	settings.ValidateInput = true
	out := TriangulateFloat64(in, settings)
	require.False(t, out.Status.IsOk())
	_, ok := out.Status.(StatusConstraintIntersection)
	assert.True(t, ok)
}

func TestTriangulateIntegersRejectRefinement(t *testing.T) {
	in := Input[int32]{
		Positions: []Vec2[int32]{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}},
	}
	settings := DefaultSettings()
	settings.RefineMesh = true
	out := Triangulate[int32](IntegerCapability[int32]{}, in, settings)
	require.False(t, out.Status.IsOk())
	_, ok := out.Status.(StatusIntegersDoNotSupportMeshRefinement)
	assert.True(t, ok)
}
