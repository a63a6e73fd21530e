package cdt

import "sort"

// legalizeStackCap bounds the fixed-size flip-recursion stack used during
// legalization: depth cap min(3*maxTriangles, 512).
func legalizeStackCap(maxTriangles int) int {
	cap := 3 * maxTriangles
	if cap > 512 {
		cap = 512
	}
	if cap < 16 {
		cap = 16
	}
	return cap
}

// legalize walks the edge a (and any edges newly exposed by flipping it)
// testing each against the InCircle predicate, flipping illegal ones, using
// an explicit fixed-size stack instead of recursion. onHullFix, if
// non-nil, is called when a flip moves a hull-tracked halfedge reference
// from old to replacement, the rare case where the flip lands on an edge
// the live hull still points at. It returns the halfedge ultimately
// incident to the original apex vertex.
func (m *Mesh[T]) legalize(a int32, stack []int32, onHullFix func(old, replacement int32)) int32 {
	i := 0
	ar := a
	for {
		b := m.Halfedges[a]
		ar = prev(a)

		if b == -1 {
			if i == 0 {
				break
			}
			i--
			a = stack[i]
			continue
		}

		al := next(a)
		bl := prev(b)

		p0 := m.Triangles[ar]
		pr := m.Triangles[a]
		pl := m.Triangles[al]
		p1 := m.Triangles[bl]

		illegal := m.cap.InCircle(m.position(p0), m.position(pr), m.position(pl), m.position(p1)) == Positive

		if !illegal {
			if i == 0 {
				break
			}
			i--
			a = stack[i]
			continue
		}

		br := m.flipDiagonal(a, onHullFix)
		if i < len(stack) {
			stack[i] = br
			i++
		}
		// Loop continues re-examining halfedge a against its new neighbor.
	}
	return ar
}

// buildDelaunay constructs the initial Delaunay triangulation of every
// point in m.Positions: incremental Bowyer-Watson insertion driven by a
// hull-hash visible-edge search and InCircle-based legalization.
func (m *Mesh[T]) buildDelaunay() Status {
	n := len(m.Positions)
	if n < 3 {
		return StatusDegenerateInput{}
	}

	i0, i1, i2, ok := m.pickSeedTriangle()
	if !ok {
		return StatusDegenerateInput{}
	}

	// Orient the seed clockwise: orient2d(p0,p1,p2) <= 0.
	if m.cap.Orient2D(m.position(i0), m.position(i1), m.position(i2)) > 0 {
		i1, i2 = i2, i1
	}

	center, ok := m.cap.CircumCenter(m.position(i0), m.position(i1), m.position(i2))
	if !ok {
		return StatusDegenerateInput{}
	}

	order := make([]int32, 0, n)
	for v := int32(0); v < int32(n); v++ {
		if v == i0 || v == i1 || v == i2 {
			continue
		}
		order = append(order, v)
	}
	dist := make([]float64, n)
	for _, v := range order {
		dist[v] = m.cap.Distance2(m.position(v), center)
	}
	sort.Slice(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })

	t0 := m.addTriangle(i0, i1, i2)

	h := newHull(m, center, n)
	h.insertInitial(i0, i1, i2, t0, t0+1, t0+2)

	maxTriangles := 2*n + 8
	stack := make([]int32, legalizeStackCap(maxTriangles))

	onHullFix := func(old, replacement int32) {
		for v, he := range h.tri {
			if he == old {
				h.tri[v] = replacement
				break
			}
		}
	}

	var prevX, prevY float64
	havePrev := false
	for _, p := range order {
		px, py := m.cap.ToFloat64(m.position(p))
		if havePrev && px == prevX && py == prevY {
			// Exact duplicate of the previously-inserted point: skip it to
			// avoid degenerate hull-visibility probing. (Validate, when
			// enabled, reports duplicates as an error before this stage
			// ever runs; this is just a refusal to hang on malformed
			// input when validation was skipped.)
			continue
		}
		havePrev, prevX, prevY = true, px, py
		m.insertPoint(h, p, stack, onHullFix)
	}

	return StatusOk
}

// pickSeedTriangle selects i0 closest to the bounding-box center, i1
// closest to i0, and i2 minimizing the circumradius of (i0,i1,i2).
func (m *Mesh[T]) pickSeedTriangle() (i0, i1, i2 int32, ok bool) {
	n := len(m.Positions)
	minX, minY := m.cap.ToFloat64(m.position(0))
	maxX, maxY := minX, minY
	for v := 1; v < n; v++ {
		x, y := m.cap.ToFloat64(m.position(int32(v)))
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	i0 = 0
	best := sqDist(cx, cy, m, 0)
	for v := int32(1); v < int32(n); v++ {
		d := sqDist(cx, cy, m, v)
		if d < best {
			best, i0 = d, v
		}
	}

	i1 = -1
	best = 0
	for v := int32(0); v < int32(n); v++ {
		if v == i0 {
			continue
		}
		d := m.cap.Distance2(m.position(v), m.position(i0))
		if i1 == -1 || d < best {
			best, i1 = d, v
		}
	}
	if i1 == -1 {
		return 0, 0, 0, false
	}

	i2 = -1
	bestRadius := 0.0
	for v := int32(0); v < int32(n); v++ {
		if v == i0 || v == i1 {
			continue
		}
		center, okc := m.cap.CircumCenter(m.position(i0), m.position(i1), m.position(v))
		if !okc {
			continue
		}
		r := m.cap.Distance2(center, m.position(i0))
		if i2 == -1 || r < bestRadius {
			bestRadius, i2 = r, v
		}
	}
	if i2 == -1 {
		return 0, 0, 0, false
	}
	return i0, i1, i2, true
}

func sqDist[T Coordinate](cx, cy float64, m *Mesh[T], v int32) float64 {
	x, y := m.cap.ToFloat64(m.position(v))
	dx, dy := x-cx, y-cy
	return dx*dx + dy*dy
}

// visible reports whether the directed hull edge from->to is visible from
// p: p lies strictly outside the mesh's clockwise-wound interior across
// that edge.
func (m *Mesh[T]) visible(from, to, p int32) bool {
	return m.cap.Orient2D(m.position(from), m.position(to), m.position(p)) > 0
}

// insertPoint implements one Bowyer-Watson incremental insertion step
// against the live hull.
func (m *Mesh[T]) insertPoint(h *hull[T], p int32, stack []int32, onHullFix func(old, replacement int32)) {
	start := h.findVisibleStart(m.position(p))
	if start == -1 {
		return
	}

	e := start
	for {
		q := h.next[e]
		if m.visible(e, q, p) {
			break
		}
		e = q
		if e == start {
			return // p is not visible from anywhere on the hull: degenerate/duplicate.
		}
	}
	q := h.next[e]

	// First fan triangle (e, p, q), replacing the old boundary edge e->q.
	t0 := m.addTriangle(e, p, q)
	m.link(t0+2, h.tri[e])

	// Forward walk: consume hull vertices whose outward edge is also
	// visible from p, fanning a new triangle at each step. A flip during
	// legalize can move the p->q edge off t+1, so the halfedge legalize
	// returns is the one carrying it.
	openForward := m.legalize(t0+2, stack, onHullFix) // the p->q edge, twin for the next forward triangle's a->p edge.
	a := q
	for {
		b := h.next[a]
		if !m.visible(a, b, p) {
			break
		}
		t := m.addTriangle(a, p, b)
		m.link(t, openForward)
		m.link(t+2, h.tri[a])
		openForward = m.legalize(t+2, stack, onHullFix)
		h.remove(a)
		a = b
	}
	finalForward := a

	// Backward walk: same thing on the other side of the initial edge.
	openBackward := t0 // the e->p edge, twin for the next backward triangle's p->b edge.
	b2 := e
	for {
		a2 := h.prev[b2]
		if !m.visible(a2, b2, p) {
			break
		}
		t := m.addTriangle(a2, p, b2)
		m.link(t+1, openBackward)
		m.link(t+2, h.tri[a2])
		m.legalize(t+2, stack, onHullFix)
		h.remove(b2)
		openBackward = t
		b2 = a2
	}
	finalBackward := b2

	// Splice p into the hull between finalBackward and finalForward.
	h.next[finalBackward] = p
	h.prev[p] = finalBackward
	h.next[p] = finalForward
	h.prev[finalForward] = p

	h.tri[p] = openForward
	h.tri[finalBackward] = openBackward
	h.hashEdge(p)
	h.hashEdge(finalBackward)
}
