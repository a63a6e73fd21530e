package cdt

// insertConstraint threads segment (u,v) into the mesh, following Sloan's
// method: if the edge already exists it is simply marked, otherwise every
// edge the open segment properly crosses is flipped in turn (a "tunnel" of
// triangles collapsing onto the segment) until the diagonal u-v itself
// appears. Flips here are purely topological: they resolve the crossing,
// not the Delaunay condition, which is why the mesh is not guaranteed
// Delaunay again until a caller re-legalizes the non-constrained edges
// this insertion disturbed.
func (m *Mesh[T]) insertConstraint(u, v int32, state HalfedgeState, maxIters int) Status {
	if h, ok := m.findHalfedge(u, v); ok {
		m.markConstrainedMax(h, state)
		return StatusOk
	}
	if h, ok := m.findHalfedge(v, u); ok {
		m.markConstrainedMax(h, state)
		return StatusOk
	}

	if w, ok := m.collinearNeighbor(u, v); ok {
		if h, ok2 := m.findHalfedge(u, w); ok2 {
			m.markConstrainedMax(h, state)
		} else if h, ok2 := m.findHalfedge(w, u); ok2 {
			m.markConstrainedMax(h, state)
		}
		return m.insertConstraint(w, v, state, maxIters)
	}

	first, ok := m.firstCrossedEdge(u, v)
	if !ok {
		return StatusDegenerateInput{}
	}

	unresolved := []int32{first}
	iters := 0
	for len(unresolved) > 0 {
		iters++
		if iters > maxIters {
			return StatusSloanMaxItersExceeded{}
		}

		h := unresolved[0]
		unresolved = unresolved[1:]

		if m.Halfedges[h] == -1 {
			continue
		}
		if !m.quadIsConvex(h) {
			unresolved = append(unresolved, h)
			continue
		}

		m.flipDiagonal(h, nil)

		a, b := m.origin(h), m.destination(h)
		if (a == u && b == v) || (a == v && b == u) {
			m.setConstrained(h, state)
			continue
		}
		if segmentsProperlyCross(m.cap, m.position(u), m.position(v), m.position(a), m.position(b)) {
			unresolved = append(unresolved, h)
		}
	}

	return StatusOk
}

// collinearNeighbor reports a vertex w, already connected to u by a mesh
// edge, that lies exactly on the open segment (u, v). A valid triangulation
// of collinear points always connects consecutive ones directly (no
// triangle may have a vertex strictly inside one of its own edges), so if
// such a w exists it is necessarily one of u's immediate neighbors, and the
// constraint must be split into u-w and w-v rather than tunnel-flipped
// through, since Sloan's crossing test assumes a proper transversal.
func (m *Mesh[T]) collinearNeighbor(u, v int32) (int32, bool) {
	up, vp := m.position(u), m.position(v)
	uv := m.cap.Sub(vp, up)
	uvLen2 := m.cap.Dot(uv, uv)
	for _, h := range m.aroundVertex(u) {
		// Each fan triangle holds two of u's neighbours; at a hull vertex the
		// last one is never the destination of a halfedge leaving u.
		for _, w := range [2]int32{m.destination(h), m.apex(h)} {
			if w == v {
				continue
			}
			wp := m.position(w)
			if m.cap.Orient2D(up, wp, vp) != 0 {
				continue
			}
			uw := m.cap.Sub(wp, up)
			along := m.cap.Dot(uw, uv)
			if along <= 0 || along >= uvLen2 {
				continue // not strictly between u and v
			}
			return w, true
		}
	}
	return -1, false
}

// firstCrossedEdge finds the halfedge opposite u in whichever triangle of
// u's fan the ray toward v passes through: the first edge segment u-v
// properly crosses.
func (m *Mesh[T]) firstCrossedEdge(u, v int32) (int32, bool) {
	for _, h := range m.aroundVertex(u) {
		w1 := m.destination(h)
		w2 := m.apex(h)
		if w1 == v || w2 == v {
			continue // segment ends exactly on this triangle's other vertex, not a proper crossing.
		}
		d1 := m.cap.Orient2D(m.position(u), m.position(w1), m.position(v))
		d2 := m.cap.Orient2D(m.position(w2), m.position(u), m.position(v))
		if d1 <= 0 && d2 <= 0 {
			return next(h), true
		}
	}
	return -1, false
}

// quadIsConvex reports whether the quadrilateral formed by the two
// triangles sharing halfedge h is strictly convex, the precondition for a
// flip to produce a valid mesh.
func (m *Mesh[T]) quadIsConvex(h int32) bool {
	o := m.Halfedges[h]
	if o == -1 {
		return false
	}
	a := m.apex(h)
	b := m.apex(o)
	p0 := m.origin(h)
	p1 := m.destination(h)

	d1 := m.cap.Orient2D(m.position(p0), m.position(a), m.position(b))
	d2 := m.cap.Orient2D(m.position(a), m.position(p1), m.position(b))
	return d1 < 0 && d2 < 0
}
