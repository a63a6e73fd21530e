package cdt

import "github.com/archhalf/cdt/internal/queue"

// removeRegions runs the configured region-removal policy over the mesh
// after constrained-edge insertion: hole-seed removal, outer-boundary
// restoration, or fully-automatic even-odd classification. Only
// ConstrainedAndHoleBoundary halfedges act as walls/parity toggles; plain
// Constrained edges are internal features and never block a flood fill.
func (m *Mesh[T]) removeRegions(settings Settings, holeSeeds []Vec2[T]) Status {
	if settings.AutoHolesAndBoundary {
		m.removeTriangles(m.autoParityRemoval())
		return StatusOk
	}

	remove := make([]bool, m.TriangleCount())

	if settings.RestoreBoundary {
		// Every hull triangle whose outer edge is not a hole/boundary
		// constraint lies outside the outer loop and seeds a flood.
		for h := int32(0); h < int32(len(m.Halfedges)); h++ {
			if m.Halfedges[h] != -1 || m.Constrained[h] == ConstrainedAndHoleBoundary || remove[triangleOf(h)] {
				continue
			}
			for t, v := range m.floodFill(triangleOf(h), isHoleBoundaryWall[T]) {
				if v {
					remove[t] = true
				}
			}
		}
	}

	for _, seed := range holeSeeds {
		t, ok := m.triangleContaining(seed)
		if !ok {
			continue
		}
		for t, v := range m.floodFill(t, isHoleBoundaryWall[T]) {
			if v {
				remove[t] = true
			}
		}
	}

	m.removeTriangles(remove)
	return StatusOk
}

func isHoleBoundaryWall[T Coordinate](m *Mesh[T], h int32) bool {
	return m.Constrained[h] == ConstrainedAndHoleBoundary
}

// floodFill marks every triangle reachable from start without crossing a
// wall edge (as reported by wall), returning a per-triangle visited mask.
func (m *Mesh[T]) floodFill(start int32, wall func(m *Mesh[T], h int32) bool) []bool {
	n := m.TriangleCount()
	visited := make([]bool, n)
	visited[start] = true

	var q queue.Queue[int32]
	q.Push(start)
	for !q.Empty() {
		t, _ := q.Pop()
		for k := int32(0); k < 3; k++ {
			h := t*3 + k
			o := m.Halfedges[h]
			if o == -1 || wall(m, h) {
				continue
			}
			nt := triangleOf(o)
			if visited[nt] {
				continue
			}
			visited[nt] = true
			q.Push(nt)
		}
	}
	return visited
}

// autoParityRemoval classifies every triangle as inside/outside by
// even-odd crossing count from a known-outside hull triangle, returning a
// remove mask covering the "outside" (even-depth) triangles.
func (m *Mesh[T]) autoParityRemoval() []bool {
	n := m.TriangleCount()
	remove := make([]bool, n)
	start, ok := m.anyHullTriangle()
	if !ok {
		return remove
	}

	visited := make([]bool, n)
	depth := make([]int, n)
	visited[start] = true

	var q queue.Queue[int32]
	q.Push(start)
	for !q.Empty() {
		t, _ := q.Pop()
		for k := int32(0); k < 3; k++ {
			h := t*3 + k
			o := m.Halfedges[h]
			if o == -1 {
				continue
			}
			nt := triangleOf(o)
			if visited[nt] {
				continue
			}
			visited[nt] = true
			d := depth[t]
			if m.Constrained[h] == ConstrainedAndHoleBoundary {
				d++
			}
			depth[nt] = d
			q.Push(nt)
		}
	}

	for t := 0; t < n; t++ {
		remove[t] = depth[t]%2 == 0
	}
	return remove
}

// anyHullTriangle returns a triangle with at least one boundary halfedge.
func (m *Mesh[T]) anyHullTriangle() (int32, bool) {
	for h := int32(0); h < int32(len(m.Halfedges)); h++ {
		if m.Halfedges[h] == -1 {
			return triangleOf(h), true
		}
	}
	return -1, false
}

// triangleContaining linearly scans for a triangle containing p.
func (m *Mesh[T]) triangleContaining(p Vec2[T]) (int32, bool) {
	n := m.TriangleCount()
	for t := int32(0); t < int32(n); t++ {
		a := m.position(m.Triangles[t*3])
		b := m.position(m.Triangles[t*3+1])
		c := m.position(m.Triangles[t*3+2])
		if m.cap.PointInTriangle(p, a, b, c) {
			return t, true
		}
	}
	return -1, false
}

// removeTriangles drops every triangle marked in remove, compacting
// Triangles/Halfedges/Constrained and remapping halfedge cross-references
// to the new, denser triangle indices. Positions is left untouched: its
// indices remain valid regardless of which triangles reference them.
func (m *Mesh[T]) removeTriangles(remove []bool) {
	n := m.TriangleCount()
	newTriIndex := make([]int32, n)
	kept := int32(0)
	for t := 0; t < n; t++ {
		if remove[t] {
			newTriIndex[t] = -1
			continue
		}
		newTriIndex[t] = kept
		kept++
	}

	newTriangles := make([]int32, 0, kept*3)
	newHalfedges := make([]int32, 0, kept*3)
	newConstrained := make([]HalfedgeState, 0, kept*3)

	for t := 0; t < n; t++ {
		if remove[t] {
			continue
		}
		for k := int32(0); k < 3; k++ {
			h := int32(t)*3 + k
			newTriangles = append(newTriangles, m.Triangles[h])
			newConstrained = append(newConstrained, m.Constrained[h])
			o := m.Halfedges[h]
			if o == -1 || remove[triangleOf(o)] {
				newHalfedges = append(newHalfedges, -1)
			} else {
				newHalfedges = append(newHalfedges, newTriIndex[triangleOf(o)]*3+o%3)
			}
		}
	}

	m.Triangles = newTriangles
	m.Halfedges = newHalfedges
	m.Constrained = newConstrained
}
