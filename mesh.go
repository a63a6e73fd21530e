package cdt

// Mesh is a halfedge triangulation: three parallel dense arrays indexed by
// halfedge id h in [0, 3T), where T is the current triangle count. It is
// the one mutable representation every stage of the pipeline reads and
// writes.
type Mesh[T Coordinate] struct {
	Triangles   []int32
	Halfedges   []int32
	Constrained []HalfedgeState
	Positions   []Vec2[T]

	cap Capability[T]
}

// NewMesh creates an empty mesh driven by the given arithmetic capability.
func NewMesh[T Coordinate](cap Capability[T]) *Mesh[T] {
	return &Mesh[T]{cap: cap}
}

// TriangleCount returns the current number of triangles.
func (m *Mesh[T]) TriangleCount() int {
	return len(m.Triangles) / 3
}

// next returns the next halfedge within the same triangle, walking
// h -> next(h) -> next(next(h)) -> h.
func next(h int32) int32 {
	if h%3 == 2 {
		return h - 2
	}
	return h + 1
}

// prev returns the previous halfedge within the same triangle.
func prev(h int32) int32 {
	if h%3 == 0 {
		return h + 2
	}
	return h - 1
}

// triangleOf returns the triangle id owning halfedge h.
func triangleOf(h int32) int32 {
	return h / 3
}

// addTriangle appends a new triangle (three halfedges) with the given
// origin vertices (clockwise) and returns the id of its first halfedge.
// halfedges/constrained for the new triangle start as unset (-1 /
// Unconstrained); the caller is responsible for linking twins.
func (m *Mesh[T]) addTriangle(v0, v1, v2 int32) int32 {
	h := int32(len(m.Triangles))
	m.Triangles = append(m.Triangles, v0, v1, v2)
	m.Halfedges = append(m.Halfedges, -1, -1, -1)
	m.Constrained = append(m.Constrained, Unconstrained, Unconstrained, Unconstrained)
	return h
}

// link sets h and its twin o to point at each other. Pass -1 for o to mark
// h as a boundary halfedge.
func (m *Mesh[T]) link(h, o int32) {
	m.Halfedges[h] = o
	if o != -1 {
		m.Halfedges[o] = h
	}
}

// origin returns the vertex index at the start of halfedge h.
func (m *Mesh[T]) origin(h int32) int32 {
	return m.Triangles[h]
}

// destination returns the vertex index at the end of halfedge h.
func (m *Mesh[T]) destination(h int32) int32 {
	return m.Triangles[next(h)]
}

// apex returns the third vertex of the triangle owning h (opposite it).
func (m *Mesh[T]) apex(h int32) int32 {
	return m.Triangles[prev(h)]
}

// setConstrained sets the constraint state on h and its twin (if any) so
// they always agree, per the mesh invariant.
func (m *Mesh[T]) setConstrained(h int32, state HalfedgeState) {
	m.Constrained[h] = state
	if o := m.Halfedges[h]; o != -1 {
		m.Constrained[o] = state
	}
}

// markConstrainedMax sets h (and its twin) to the dominance-max of their
// current state and state: where two constraint markings overlap the same
// halfedge, the stronger one wins.
func (m *Mesh[T]) markConstrainedMax(h int32, state HalfedgeState) {
	m.setConstrained(h, m.Constrained[h].max(state))
}

// position returns the coordinate of vertex v.
func (m *Mesh[T]) position(v int32) Vec2[T] {
	return m.Positions[v]
}

// doubledArea returns twice the signed area of triangle t (h = 3t), using
// the capability's Orient2D so every coordinate type agrees with the mesh's
// clockwise-positive convention.
func (m *Mesh[T]) doubledArea(t int32) float64 {
	h := t * 3
	a := m.position(m.Triangles[h])
	b := m.position(m.Triangles[h+1])
	c := m.position(m.Triangles[h+2])
	return m.cap.Orient2D(a, b, c)
}

// isDegenerate reports whether triangle t's three vertices are collinear.
func (m *Mesh[T]) isDegenerate(t int32) bool {
	return m.doubledArea(t) == 0
}

// flipDiagonal performs the topological flip of halfedge a against its
// twin, swapping the shared edge of the two triangles straddling it for
// the other diagonal of their quadrilateral. onHullFix, if non-nil, is
// called when the flip relocates a halfedge a live hull still references.
// Returns br, the halfedge now incident to what was a's triangle, exposed
// on the far side of the new diagonal for the caller to re-examine.
func (m *Mesh[T]) flipDiagonal(a int32, onHullFix func(old, replacement int32)) int32 {
	b := m.Halfedges[a]
	ar := prev(a)
	bl := prev(b)

	p0 := m.Triangles[ar]
	p1 := m.Triangles[bl]

	m.Triangles[a] = p1
	m.Triangles[b] = p0

	hbl := m.Halfedges[bl]
	if hbl == -1 && onHullFix != nil {
		onHullFix(bl, a)
	}

	m.link(a, hbl)
	m.link(b, m.Halfedges[ar])
	m.link(ar, bl)

	return next(b)
}

// findHalfedge returns a halfedge whose origin is u and destination is v,
// by scanning every triangle. O(T); acceptable for the one-off lookups
// constrained-edge insertion needs.
func (m *Mesh[T]) findHalfedge(u, v int32) (int32, bool) {
	for h := int32(0); h < int32(len(m.Triangles)); h++ {
		if m.Triangles[h] == u && m.Triangles[next(h)] == v {
			return h, true
		}
	}
	return -1, false
}

// firstHalfedgeAt returns some halfedge whose origin is v. O(T).
func (m *Mesh[T]) firstHalfedgeAt(v int32) int32 {
	for h := int32(0); h < int32(len(m.Triangles)); h++ {
		if m.Triangles[h] == v {
			return h
		}
	}
	return -1
}

// aroundVertex returns every halfedge with origin v, one per incident
// triangle, ordered by rotating around v.
func (m *Mesh[T]) aroundVertex(v int32) []int32 {
	start := m.firstHalfedgeAt(v)
	if start == -1 {
		return nil
	}
	out := []int32{start}
	h := start
	for {
		t := m.Halfedges[prev(h)]
		if t == -1 {
			break
		}
		h = t
		if h == start {
			return out
		}
		out = append(out, h)
	}
	// Boundary vertex: the forward rotation hit the hull before closing the
	// loop, so sweep the other direction from start as well.
	h = start
	for {
		t := m.Halfedges[h]
		if t == -1 {
			break
		}
		h = next(t)
		out = append(out, h)
	}
	return out
}
