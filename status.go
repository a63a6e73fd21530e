package cdt

import "fmt"

// Status is a single accumulated result value: the first error set during
// a stage short-circuits every later stage. It is a sum type: each variant
// implements the unexported statusTypeHint method, which prevents anything
// but the enumerated variants from satisfying the interface, and Error/IsOk
// give a uniform way to consume the result.
type Status interface {
	error
	IsOk() bool
	statusTypeHint()
}

type statusOk struct{}

func (statusOk) Error() string    { return "ok" }
func (statusOk) IsOk() bool       { return true }
func (statusOk) statusTypeHint()  {}

// StatusOk is the successful terminal status.
var StatusOk Status = statusOk{}

// baseStatus provides IsOk()==false and the type hint for every error
// variant below, so each variant only needs to implement Error().
type baseStatus struct{}

func (baseStatus) IsOk() bool          { return false }
func (baseStatus) statusTypeHint()     {}

// StatusDegenerateInput: the seed triangle was collinear, or n < 3.
type StatusDegenerateInput struct{ baseStatus }

func (StatusDegenerateInput) Error() string { return "degenerate input" }

// StatusPositionsLengthLessThan3 reports fewer than 3 input positions.
type StatusPositionsLengthLessThan3 struct {
	baseStatus
	N int
}

func (s StatusPositionsLengthLessThan3) Error() string {
	return fmt.Sprintf("positions length %d is less than 3", s.N)
}

// StatusPositionsMustBeFinite reports a non-finite position.
type StatusPositionsMustBeFinite struct {
	baseStatus
	Index int
}

func (s StatusPositionsMustBeFinite) Error() string {
	return fmt.Sprintf("position %d is not finite", s.Index)
}

// StatusDuplicatePosition reports a duplicated position.
type StatusDuplicatePosition struct {
	baseStatus
	Index int
}

func (s StatusDuplicatePosition) Error() string {
	return fmt.Sprintf("position %d duplicates an earlier position", s.Index)
}

// StatusConstraintsLengthNotDivisibleBy2 reports an odd ConstraintEdges length.
type StatusConstraintsLengthNotDivisibleBy2 struct {
	baseStatus
	N int
}

func (s StatusConstraintsLengthNotDivisibleBy2) Error() string {
	return fmt.Sprintf("constraint edges length %d is not divisible by 2", s.N)
}

// StatusConstraintArrayLengthMismatch reports ConstraintEdgeTypes length
// mismatching the number of constraint pairs.
type StatusConstraintArrayLengthMismatch struct{ baseStatus }

func (StatusConstraintArrayLengthMismatch) Error() string {
	return "constraint edge types length does not match constraint edge pair count"
}

// StatusConstraintOutOfBounds reports an out-of-range endpoint index.
type StatusConstraintOutOfBounds struct {
	baseStatus
	Index int
	Pair  [2]int
	Count int
}

func (s StatusConstraintOutOfBounds) Error() string {
	return fmt.Sprintf("constraint %d (%v) has an endpoint out of bounds for %d positions", s.Index, s.Pair, s.Count)
}

// StatusConstraintSelfLoop reports a constraint whose endpoints are equal.
type StatusConstraintSelfLoop struct {
	baseStatus
	Index int
	Pair  [2]int
}

func (s StatusConstraintSelfLoop) Error() string {
	return fmt.Sprintf("constraint %d (%v) is a self loop", s.Index, s.Pair)
}

// StatusDuplicateConstraint reports two constraints with the same endpoint set.
type StatusDuplicateConstraint struct {
	baseStatus
	I, J int
}

func (s StatusDuplicateConstraint) Error() string {
	return fmt.Sprintf("constraints %d and %d are duplicates", s.I, s.J)
}

// StatusConstraintIntersection reports two constraints that properly cross.
type StatusConstraintIntersection struct {
	baseStatus
	I, J int
}

func (s StatusConstraintIntersection) Error() string {
	return fmt.Sprintf("constraints %d and %d intersect", s.I, s.J)
}

// StatusRedundantHolesArray reports hole seeds given without constraints.
type StatusRedundantHolesArray struct{ baseStatus }

func (StatusRedundantHolesArray) Error() string {
	return "hole seeds were given but there are no constraint edges"
}

// StatusHoleMustBeFinite reports a non-finite hole seed.
type StatusHoleMustBeFinite struct {
	baseStatus
	Index int
}

func (s StatusHoleMustBeFinite) Error() string {
	return fmt.Sprintf("hole seed %d is not finite", s.Index)
}

// StatusConstraintEdgesMissingForAutoHolesAndBoundary reports the flag set
// without any constraints.
type StatusConstraintEdgesMissingForAutoHolesAndBoundary struct{ baseStatus }

func (StatusConstraintEdgesMissingForAutoHolesAndBoundary) Error() string {
	return "AutoHolesAndBoundary requires constraint edges"
}

// StatusConstraintEdgesMissingForRestoreBoundary reports the flag set
// without any constraints.
type StatusConstraintEdgesMissingForRestoreBoundary struct{ baseStatus }

func (StatusConstraintEdgesMissingForRestoreBoundary) Error() string {
	return "RestoreBoundary requires constraint edges"
}

// StatusSloanMaxItersMustBePositive reports a non-positive SloanMaxIters.
type StatusSloanMaxItersMustBePositive struct {
	baseStatus
	N int
}

func (s StatusSloanMaxItersMustBePositive) Error() string {
	return fmt.Sprintf("SloanMaxIters must be positive, got %d", s.N)
}

// StatusRefinementThresholdAreaMustBePositive reports Area <= 0.
type StatusRefinementThresholdAreaMustBePositive struct{ baseStatus }

func (StatusRefinementThresholdAreaMustBePositive) Error() string {
	return "refinement area threshold must be positive"
}

// StatusRefinementThresholdAngleOutOfRange reports Angle outside [0, pi/4].
type StatusRefinementThresholdAngleOutOfRange struct{ baseStatus }

func (StatusRefinementThresholdAngleOutOfRange) Error() string {
	return "refinement angle threshold must be in [0, pi/4]"
}

// StatusSloanMaxItersExceeded reports that constrained-edge insertion did
// not converge within the configured iteration cap.
type StatusSloanMaxItersExceeded struct{ baseStatus }

func (StatusSloanMaxItersExceeded) Error() string {
	return "Sloan constrained-edge insertion exceeded its iteration limit"
}

// StatusIntegersDoNotSupportMeshRefinement reports that integer coordinates
// were combined with RefineMesh.
type StatusIntegersDoNotSupportMeshRefinement struct{ baseStatus }

func (StatusIntegersDoNotSupportMeshRefinement) Error() string {
	return "integer coordinates do not support mesh refinement"
}
