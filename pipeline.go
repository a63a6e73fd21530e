package cdt

import "github.com/archhalf/cdt/internal/throw"

// Triangulate runs the full pipeline over in under the given capability and
// settings: optional preprocessing, input validation, Delaunay
// construction, constrained-edge insertion, region removal, and optional
// Ruppert refinement. A non-ok Output.Status means every later stage was
// skipped; Output.Positions/Triangles/Halfedges/Constrained are only
// meaningful when Status.IsOk().
func Triangulate[T Coordinate](cap Capability[T], in Input[T], settings Settings) Output[T] {
	var out Output[T]
	func() {
		defer func() {
			if cause, ok := throw.Recover(recover()); ok {
				out = Output[T]{Status: cause.(Status)}
			}
		}()

		if st := validateSettings(cap, settings); !st.IsOk() {
			out.Status = st
			return
		}
		transform := planPreprocess(cap, in.Positions, settings.Preprocessor)
		positions := applyTransform(cap, transform, in.Positions)
		holeSeeds := applyTransform(cap, transform, in.HoleSeeds)

		if settings.ValidateInput {
			local := Input[T]{Positions: positions, ConstraintEdges: in.ConstraintEdges, ConstraintEdgeTypes: in.ConstraintEdgeTypes, HoleSeeds: holeSeeds}
			if st := validateInput(cap, local, settings); !st.IsOk() {
				out.Status = st
				return
			}
		}
		if len(in.ConstraintEdges) == 0 {
			holeSeeds = nil
		}

		m := NewMesh(cap)
		m.Positions = append([]Vec2[T]{}, positions...)

		if st := m.buildDelaunay(); !st.IsOk() {
			out.Status = st
			return
		}

		pairCount := len(in.ConstraintEdges) / 2
		for i := 0; i < pairCount; i++ {
			u := int32(in.ConstraintEdges[2*i])
			v := int32(in.ConstraintEdges[2*i+1])
			state := ConstraintTypeHoleBoundary.halfedgeState()
			if in.ConstraintEdgeTypes != nil {
				state = in.ConstraintEdgeTypes[i].halfedgeState()
			}
			if st := m.insertConstraint(u, v, state, settings.SloanMaxIters); !st.IsOk() {
				out.Status = st
				return
			}
		}

		if settings.AutoHolesAndBoundary || settings.RestoreBoundary || len(holeSeeds) > 0 {
			if st := m.removeRegions(settings, holeSeeds); !st.IsOk() {
				out.Status = st
				return
			}
		}

		if settings.RefineMesh {
			if st := m.refine(settings.Refinement); !st.IsOk() {
				out.Status = st
				return
			}
		}

		invertTransform(cap, transform, m.Positions)

		out.Positions = m.Positions
		out.Triangles = m.Triangles
		out.Halfedges = m.Halfedges
		out.Constrained = m.Constrained
		out.Status = StatusOk
	}()
	return out
}

// TriangulateFloat64 is the common case: float64 coordinates, default
// capability.
func TriangulateFloat64(in Input[float64], settings Settings) Output[float64] {
	return Triangulate[float64](Float64Capability{}, in, settings)
}
