package cdt

import "math"

// hull is the transient convex-hull state used only during Delaunay
// construction: a circular doubly-linked list of hull vertices, a map from
// hull vertex to one of its incident halfedges, and a pseudoangle-bucket
// hash table for O(1)-expected visible-edge lookup.
type hull[T Coordinate] struct {
	mesh *Mesh[T]

	next map[int32]int32 // hullNext
	prev map[int32]int32 // hullPrev
	tri  map[int32]int32 // hullTri: hull vertex -> incident halfedge

	hash   []int32 // bucket -> hull vertex, or -1
	size   int
	center Vec2[T]
}

func newHull[T Coordinate](mesh *Mesh[T], center Vec2[T], n int) *hull[T] {
	size := int(math.Ceil(math.Sqrt(float64(n))))
	if size < 1 {
		size = 1
	}
	h := &hull[T]{
		mesh:   mesh,
		next:   make(map[int32]int32, n),
		prev:   make(map[int32]int32, n),
		tri:    make(map[int32]int32, n),
		hash:   make([]int32, size),
		size:   size,
		center: center,
	}
	for i := range h.hash {
		h.hash[i] = -1
	}
	return h
}

func (h *hull[T]) keyFor(v int32) int {
	cx, cy := h.mesh.cap.ToFloat64(h.center)
	px, py := h.mesh.cap.ToFloat64(h.mesh.position(v))
	return h.mesh.cap.HashKey(px-cx, py-cy, h.size)
}

// hashEdge rehashes the bucket for hull vertex v to point at v.
func (h *hull[T]) hashEdge(v int32) {
	h.hash[h.keyFor(v)] = v
}

// insertInitial seeds the hull with the three vertices of the seed
// triangle, already in clockwise order i0, i1, i2.
func (h *hull[T]) insertInitial(i0, i1, i2 int32, heI0I1, heI1I2, heI2I0 int32) {
	h.next[i0] = i1
	h.next[i1] = i2
	h.next[i2] = i0
	h.prev[i1] = i0
	h.prev[i2] = i1
	h.prev[i0] = i2

	h.tri[i0] = heI0I1
	h.tri[i1] = heI1I2
	h.tri[i2] = heI2I0

	h.hashEdge(i0)
	h.hashEdge(i1)
	h.hashEdge(i2)
}

// findVisibleStart starts at the bucket for p and walks forward (following
// hullNext) until it finds a live hull vertex, then returns it: the start
// of the probe used to find the first hull edge visible from p.
func (h *hull[T]) findVisibleStart(p Vec2[T]) int32 {
	cx, cy := h.mesh.cap.ToFloat64(h.center)
	px, py := h.mesh.cap.ToFloat64(p)
	key := h.mesh.cap.HashKey(px-cx, py-cy, h.size)
	for j := 0; j < h.size; j++ {
		idx := (key + j) % h.size
		v := h.hash[idx]
		if v != -1 && h.isLive(v) {
			return v
		}
	}
	// Degenerate: every bucket empty or stale. Fall back to any live vertex.
	for v := range h.next {
		if h.isLive(v) {
			return v
		}
	}
	return -1
}

// isLive reports whether v is still on the hull. A removed hull vertex is
// marked by pointing its own next entry back at itself.
func (h *hull[T]) isLive(v int32) bool {
	n, ok := h.next[v]
	return ok && n != v
}

// remove marks v as removed from the hull (soft delete).
func (h *hull[T]) remove(v int32) {
	h.next[v] = v
}

// insertAfter splices a new hull vertex v in between a and its current
// hull-next neighbor, pointing at halfedge he for its incident triangle.
func (h *hull[T]) insertAfter(a, v int32, he int32) {
	b := h.next[a]
	h.next[a] = v
	h.prev[v] = a
	h.next[v] = b
	h.prev[b] = v
	h.tri[v] = he
}
