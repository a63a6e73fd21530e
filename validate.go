package cdt

// validateInput runs every ordered precondition check over in, short
// circuiting on the first violation. It only runs when Settings.ValidateInput
// is set; skipping it is the caller's choice to trade safety for speed on
// input already known to be well-formed.
func validateInput[T Coordinate](cap Capability[T], in Input[T], settings Settings) Status {
	if len(in.Positions) < 3 {
		return StatusPositionsLengthLessThan3{N: len(in.Positions)}
	}
	for i, p := range in.Positions {
		if !cap.IsFinite(p) {
			return StatusPositionsMustBeFinite{Index: i}
		}
	}
	if st := checkDuplicatePositions(cap, in.Positions); !st.IsOk() {
		return st
	}

	if len(in.ConstraintEdges)%2 != 0 {
		return StatusConstraintsLengthNotDivisibleBy2{N: len(in.ConstraintEdges)}
	}
	pairCount := len(in.ConstraintEdges) / 2
	if in.ConstraintEdgeTypes != nil && len(in.ConstraintEdgeTypes) != pairCount {
		return StatusConstraintArrayLengthMismatch{}
	}

	if st := checkConstraintBoundsAndLoops(in, pairCount, len(in.Positions)); !st.IsOk() {
		return st
	}
	if st := checkDuplicateConstraints(in, pairCount); !st.IsOk() {
		return st
	}
	if st := checkConstraintIntersections(cap, in, pairCount); !st.IsOk() {
		return st
	}

	if len(in.HoleSeeds) > 0 && pairCount == 0 {
		return StatusRedundantHolesArray{}
	}
	for i, p := range in.HoleSeeds {
		if !cap.IsFinite(p) {
			return StatusHoleMustBeFinite{Index: i}
		}
	}

	if settings.AutoHolesAndBoundary && pairCount == 0 {
		return StatusConstraintEdgesMissingForAutoHolesAndBoundary{}
	}
	if settings.RestoreBoundary && pairCount == 0 {
		return StatusConstraintEdgesMissingForRestoreBoundary{}
	}

	return StatusOk
}

// validateSettings checks the parts of Settings that don't depend on Input,
// run unconditionally (even when ValidateInput is false: these are
// programmer errors, not data-quality issues).
func validateSettings[T Coordinate](cap Capability[T], settings Settings) Status {
	if settings.SloanMaxIters <= 0 {
		return StatusSloanMaxItersMustBePositive{N: settings.SloanMaxIters}
	}
	if settings.RefineMesh {
		if settings.Refinement.Area <= 0 {
			return StatusRefinementThresholdAreaMustBePositive{}
		}
		if settings.Refinement.Angle < 0 || settings.Refinement.Angle > quarterPi {
			return StatusRefinementThresholdAngleOutOfRange{}
		}
		if _, ok := cap.Alpha(1, 1); !ok {
			return StatusIntegersDoNotSupportMeshRefinement{}
		}
	}
	return StatusOk
}

const quarterPi = 3.141592653589793 / 4

func checkDuplicatePositions[T Coordinate](cap Capability[T], positions []Vec2[T]) Status {
	seen := make(map[[2]float64]int, len(positions))
	for i, p := range positions {
		x, y := cap.ToFloat64(p)
		key := [2]float64{x, y}
		if _, dup := seen[key]; dup {
			return StatusDuplicatePosition{Index: i}
		}
		seen[key] = i
	}
	return StatusOk
}

func checkConstraintBoundsAndLoops[T Coordinate](in Input[T], pairCount, n int) Status {
	for i := 0; i < pairCount; i++ {
		a, b := in.ConstraintEdges[2*i], in.ConstraintEdges[2*i+1]
		if a < 0 || a >= n || b < 0 || b >= n {
			return StatusConstraintOutOfBounds{Index: i, Pair: [2]int{a, b}, Count: n}
		}
		if a == b {
			return StatusConstraintSelfLoop{Index: i, Pair: [2]int{a, b}}
		}
	}
	return StatusOk
}

func constraintKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func checkDuplicateConstraints[T Coordinate](in Input[T], pairCount int) Status {
	seen := make(map[[2]int]int, pairCount)
	for i := 0; i < pairCount; i++ {
		key := constraintKey(in.ConstraintEdges[2*i], in.ConstraintEdges[2*i+1])
		if j, dup := seen[key]; dup {
			return StatusDuplicateConstraint{I: j, J: i}
		}
		seen[key] = i
	}
	return StatusOk
}

// checkConstraintIntersections detects proper crossings between distinct
// constraint segments (segments that only touch at a shared endpoint are
// legal). This is an O(pairCount^2) pass, acceptable since it only runs
// when ValidateInput is requested.
func checkConstraintIntersections[T Coordinate](cap Capability[T], in Input[T], pairCount int) Status {
	for i := 0; i < pairCount; i++ {
		a0, a1 := in.ConstraintEdges[2*i], in.ConstraintEdges[2*i+1]
		pa0, pa1 := in.Positions[a0], in.Positions[a1]
		for j := i + 1; j < pairCount; j++ {
			b0, b1 := in.ConstraintEdges[2*j], in.ConstraintEdges[2*j+1]
			if a0 == b0 || a0 == b1 || a1 == b0 || a1 == b1 {
				continue // shared endpoint: not a proper crossing.
			}
			pb0, pb1 := in.Positions[b0], in.Positions[b1]
			if segmentsProperlyCross(cap, pa0, pa1, pb0, pb1) {
				return StatusConstraintIntersection{I: i, J: j}
			}
		}
	}
	return StatusOk
}

func segmentsProperlyCross[T Coordinate](cap Capability[T], a0, a1, b0, b1 Vec2[T]) bool {
	d1 := cap.Orient2D(a0, a1, b0)
	d2 := cap.Orient2D(a0, a1, b1)
	d3 := cap.Orient2D(b0, b1, a0)
	d4 := cap.Orient2D(b0, b1, a1)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
