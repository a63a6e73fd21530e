package cdt

import (
	"math"

	"github.com/archhalf/cdt/internal/queue"
)

// refineState holds the mesh, the refinement settings and the per-vertex
// shell radii for one refine() call.
type refineState[T Coordinate] struct {
	mesh     *Mesh[T]
	settings RefinementSettings
	shellR   map[int32]float64
}

// refine runs Ruppert's algorithm: repeatedly split encroached constrained
// segments, then repeatedly split triangles that fail the angle/area
// bound (deferring a split that would itself encroach a segment, in which
// case that segment is split first and the triangle is requeued).
func (m *Mesh[T]) refine(settings RefinementSettings) Status {
	if _, ok := m.cap.Alpha(1, 1); !ok {
		return StatusIntegersDoNotSupportMeshRefinement{}
	}

	rs := &refineState[T]{mesh: m, settings: settings, shellR: make(map[int32]float64)}

	var segQueue queue.Queue[int32]
	rs.enqueueEncroached(&segQueue)
	for !segQueue.Empty() {
		h, _ := segQueue.Pop()
		if h >= int32(len(m.Constrained)) || m.Constrained[h] == Unconstrained {
			continue // stale reference from before an earlier split.
		}
		if st := rs.splitSegment(h); !st.IsOk() {
			return st
		}
		rs.enqueueEncroached(&segQueue)
	}

	var triQueue queue.Queue[int32]
	rs.enqueueBad(&triQueue)
	for !triQueue.Empty() {
		t, _ := triQueue.Pop()
		if int(t) >= m.TriangleCount() {
			continue
		}
		if !rs.isBad(t) {
			continue
		}
		center, ok := m.cap.CircumCenter(m.position(m.Triangles[t*3]), m.position(m.Triangles[t*3+1]), m.position(m.Triangles[t*3+2]))
		if !ok {
			continue
		}

		if h, ok := rs.firstEncroachedBy(center); ok {
			if st := rs.splitSegment(h); !st.IsOk() {
				return st
			}
			rs.enqueueEncroached(&segQueue)
			for !segQueue.Empty() {
				h, _ := segQueue.Pop()
				if h >= int32(len(m.Constrained)) || m.Constrained[h] == Unconstrained {
					continue
				}
				if st := rs.splitSegment(h); !st.IsOk() {
					return st
				}
				rs.enqueueEncroached(&segQueue)
			}
			rs.enqueueBad(&triQueue)
			continue
		}

		wall := func(tm *Mesh[T], h int32) bool { return tm.Constrained[h] != Unconstrained }
		seeds := []int32{t}
		m.insertSteinerPoint(center, seeds, wall)
		rs.enqueueBad(&triQueue)
	}

	return StatusOk
}

func (rs *refineState[T]) enqueueEncroached(q *queue.Queue[int32]) {
	m := rs.mesh
	seen := make(map[int32]bool)
	for h := int32(0); h < int32(len(m.Constrained)); h++ {
		if m.Constrained[h] == Unconstrained {
			continue
		}
		key := h
		if o := m.Halfedges[h]; o != -1 && o < h {
			key = o
		}
		if seen[key] {
			continue
		}
		if rs.segmentEncroached(h) {
			seen[key] = true
			q.Push(h)
		}
	}
}

func (rs *refineState[T]) segmentEncroached(h int32) bool {
	m := rs.mesh
	a, b := m.origin(h), m.destination(h)
	for v := int32(0); v < int32(len(m.Positions)); v++ {
		if v == a || v == b {
			continue
		}
		if rs.pointEncroaches(a, b, v) {
			return true
		}
	}
	return false
}

func (rs *refineState[T]) firstEncroachedBy(p Vec2[T]) (int32, bool) {
	m := rs.mesh
	for h := int32(0); h < int32(len(m.Constrained)); h++ {
		if m.Constrained[h] == Unconstrained {
			continue
		}
		a, b := m.origin(h), m.destination(h)
		pa := m.cap.Sub(p, m.position(a))
		pb := m.cap.Sub(p, m.position(b))
		if m.cap.Dot(pa, pb) < 0 {
			return h, true
		}
	}
	return -1, false
}

func (rs *refineState[T]) pointEncroaches(a, b, v int32) bool {
	m := rs.mesh
	pa := m.cap.Sub(m.position(v), m.position(a))
	pb := m.cap.Sub(m.position(v), m.position(b))
	return m.cap.Dot(pa, pb) < 0
}

func (rs *refineState[T]) enqueueBad(q *queue.Queue[int32]) {
	m := rs.mesh
	for t := 0; t < m.TriangleCount(); t++ {
		if rs.isBad(int32(t)) {
			q.Push(int32(t))
		}
	}
}

// isBad reports whether triangle t violates the maximum-area or
// minimum-angle bound.
func (rs *refineState[T]) isBad(t int32) bool {
	m := rs.mesh
	a := m.position(m.Triangles[t*3])
	b := m.position(m.Triangles[t*3+1])
	c := m.position(m.Triangles[t*3+2])

	area := math.Abs(m.cap.Orient2D(a, b, c)) / 2
	if area > rs.settings.Area {
		return true
	}
	return triangleMinAngle(m.cap, a, b, c) < rs.settings.Angle
}

func triangleMinAngle[T Coordinate](cap Capability[T], a, b, c Vec2[T]) float64 {
	angle := func(p, q, r Vec2[T]) float64 {
		pq := cap.Sub(q, p)
		pr := cap.Sub(r, p)
		dot := cap.Dot(pq, pr)
		lp := math.Sqrt(cap.Length2(pq))
		lr := math.Sqrt(cap.Length2(pr))
		if lp == 0 || lr == 0 {
			return 0
		}
		cosTheta := dot / (lp * lr)
		if cosTheta > 1 {
			cosTheta = 1
		}
		if cosTheta < -1 {
			cosTheta = -1
		}
		return math.Acos(cosTheta)
	}
	angleA := angle(a, b, c)
	angleB := angle(b, c, a)
	angleC := math.Pi - angleA - angleB
	return math.Min(angleA, math.Min(angleB, angleC))
}

// splitSegment replaces the constrained edge h with two constrained edges
// meeting at a concentric-shell Steiner point, and retriangulates the
// cavity of triangles whose circumcircle no longer excludes it.
func (rs *refineState[T]) splitSegment(h int32) Status {
	m := rs.mesh
	a, b := m.origin(h), m.destination(h)
	state := m.Constrained[h]

	d2 := m.cap.Distance2(m.position(a), m.position(b))
	d := math.Sqrt(d2)

	near := a
	if _, ok := rs.shellR[a]; !ok {
		if _, okB := rs.shellR[b]; okB {
			near = b
		}
	}
	R, ok := rs.shellR[near]
	if !ok {
		R = d
		rs.shellR[near] = R
	}

	alpha, ok := m.cap.Alpha(R, d2)
	if !ok {
		alpha = 0.5
	}
	if near == b {
		alpha = 1 - alpha
	}

	mid, lerpOk := m.cap.Lerp(m.position(a), m.position(b), alpha)
	if !lerpOk {
		return StatusIntegersDoNotSupportMeshRefinement{}
	}

	o := m.Halfedges[h]
	seeds := []int32{triangleOf(h)}
	if o != -1 {
		seeds = append(seeds, triangleOf(o))
	}
	wall := func(tm *Mesh[T], he int32) bool { return tm.Constrained[he] != Unconstrained }

	midVertex := m.insertSteinerPoint(mid, seeds, wall)

	if ha, ok := m.findHalfedge(a, midVertex); ok {
		m.markConstrainedMax(ha, state)
	} else if ha, ok := m.findHalfedge(midVertex, a); ok {
		m.markConstrainedMax(ha, state)
	}
	if hb, ok := m.findHalfedge(midVertex, b); ok {
		m.markConstrainedMax(hb, state)
	} else if hb, ok := m.findHalfedge(b, midVertex); ok {
		m.markConstrainedMax(hb, state)
	}

	return StatusOk
}

// insertSteinerPoint appends pos as a new vertex and retriangulates the
// cavity of triangles, starting from seeds, whose circumcircle contains
// it; wall reports edges the cavity must not expand across (the
// constrained segment being split, or every constrained edge when
// splitting a bad triangle). Returns the new vertex's index.
func (m *Mesh[T]) insertSteinerPoint(pos Vec2[T], seeds []int32, wall func(m *Mesh[T], h int32) bool) int32 {
	newVertex := int32(len(m.Positions))
	m.Positions = append(m.Positions, pos)

	n := m.TriangleCount()
	inCavity := make([]bool, n)
	var pending []int32
	for _, t := range seeds {
		if !inCavity[t] {
			inCavity[t] = true
			pending = append(pending, t)
		}
	}

	for len(pending) > 0 {
		t := pending[0]
		pending = pending[1:]
		for k := int32(0); k < 3; k++ {
			h := t*3 + k
			if wall(m, h) {
				continue
			}
			o := m.Halfedges[h]
			if o == -1 {
				continue
			}
			nt := triangleOf(o)
			if inCavity[nt] {
				continue
			}
			a := m.position(m.Triangles[nt*3])
			b := m.position(m.Triangles[nt*3+1])
			c := m.position(m.Triangles[nt*3+2])
			if m.cap.InCircle(a, b, c, pos) == Positive {
				inCavity[nt] = true
				pending = append(pending, nt)
			}
		}
	}

	type boundaryEdge struct {
		a, b  int32
		twin  int32
		state HalfedgeState
	}
	var edges []boundaryEdge
	for t := 0; t < n; t++ {
		if !inCavity[int32(t)] {
			continue
		}
		for k := int32(0); k < 3; k++ {
			h := int32(t)*3 + k
			o := m.Halfedges[h]
			if o != -1 && inCavity[triangleOf(o)] {
				continue
			}
			a, b := m.origin(h), m.destination(h)
			edges = append(edges, boundaryEdge{a: a, b: b, twin: o, state: m.Constrained[h]})
		}
	}

	remove := make([]bool, 0, n)
	for t := 0; t < n; t++ {
		remove = append(remove, inCavity[int32(t)])
	}

	// The cavity boundary is usually a single polygon, but a vertex whose
	// fan is split between the cavity and a walled-off neighbor produces an
	// amphitheater: two boundary loops that pinch together at that vertex.
	// Index candidate continuations by origin vertex, rather than assuming
	// one edge per origin, so a pinch point is handled by picking whichever
	// unused edge continues the loop instead of overwriting the other.
	byOrigin := make(map[int32][]int, len(edges))
	for i, e := range edges {
		byOrigin[e.a] = append(byOrigin[e.a], i)
	}
	used := make([]bool, len(edges))

	type fanTriangle struct {
		t     int32
		h1    int32
		twin  int32
		state HalfedgeState
	}
	for i := range edges {
		if used[i] {
			continue
		}
		start := edges[i].a
		var loop []fanTriangle
		cur := i
		for {
			used[cur] = true
			e := edges[cur]
			t := m.addTriangle(e.a, newVertex, e.b)
			loop = append(loop, fanTriangle{t: t, h1: t + 1, twin: e.twin, state: e.state})
			m.link(t+2, e.twin)
			if e.twin != -1 {
				m.setConstrained(t+2, e.state)
			} else {
				m.Constrained[t+2] = e.state
			}
			if e.b == start {
				break
			}
			next := -1
			for _, idx := range byOrigin[e.b] {
				if !used[idx] {
					next = idx
					break
				}
			}
			if next == -1 {
				break
			}
			cur = next
		}
		for j, f := range loop {
			nextF := loop[(j+1)%len(loop)]
			m.link(f.h1, nextF.t)
		}
	}

	for len(remove) < m.TriangleCount() {
		remove = append(remove, false)
	}
	m.removeTriangles(remove)

	return newVertex
}
