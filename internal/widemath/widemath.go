// Package widemath provides widened-precision helpers for the integer and
// fixed-point arithmetic capabilities. The InCircle determinant on int64
// coordinates multiplies squared distances by cross products, which can
// overflow 64 bits well within the legal input range; routing it through
// math/big gets an exact result without hand-rolling 128-bit carries.
package widemath

import "math/big"

// Sign is the result of a widened comparison: -1, 0, or 1.
type Sign int

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

func signOfBig(b *big.Int) Sign {
	switch b.Sign() {
	case -1:
		return Negative
	case 1:
		return Positive
	default:
		return Zero
	}
}

func newInt(v int64) *big.Int { return big.NewInt(v) }

// Orient2DSign returns the sign of the shoelace determinant
//
//	| bx-ax  by-ay |
//	| cx-ax  cy-ay |
//
// widened to arbitrary precision: positive for a counter-clockwise turn
// (a,b,c), negative for clockwise, zero if collinear.
func Orient2DSign(ax, ay, bx, by, cx, cy int64) Sign {
	abx := newInt(bx - ax)
	aby := newInt(by - ay)
	acx := newInt(cx - ax)
	acy := newInt(cy - ay)

	left := new(big.Int).Mul(abx, acy)
	right := new(big.Int).Mul(aby, acx)
	det := left.Sub(left, right)
	return signOfBig(det)
}

// InCircleSign returns the sign of the InCircle determinant of point p
// against the circle through a, b, c, widened to arbitrary precision.
// Positive means p lies strictly inside the circumcircle of the
// clockwise-wound triangle (a,b,c); negative means strictly outside.
func InCircleSign(ax, ay, bx, by, cx, cy, px, py int64) Sign {
	adx := newInt(ax - px)
	ady := newInt(ay - py)
	bdx := newInt(bx - px)
	bdy := newInt(by - py)
	cdx := newInt(cx - px)
	cdy := newInt(cy - py)

	adSq := new(big.Int).Add(new(big.Int).Mul(adx, adx), new(big.Int).Mul(ady, ady))
	bdSq := new(big.Int).Add(new(big.Int).Mul(bdx, bdx), new(big.Int).Mul(bdy, bdy))
	cdSq := new(big.Int).Add(new(big.Int).Mul(cdx, cdx), new(big.Int).Mul(cdy, cdy))

	// Expansion by cofactors of the 3x3 determinant
	//   | adx ady adSq |
	//   | bdx bdy bdSq |
	//   | cdx cdy cdSq |
	m00 := new(big.Int).Sub(new(big.Int).Mul(bdx, cdy), new(big.Int).Mul(bdy, cdx))
	m01 := new(big.Int).Sub(new(big.Int).Mul(adx, cdy), new(big.Int).Mul(ady, cdx))
	m02 := new(big.Int).Sub(new(big.Int).Mul(adx, bdy), new(big.Int).Mul(ady, bdx))

	t0 := new(big.Int).Mul(adSq, m00)
	t1 := new(big.Int).Mul(bdSq, m01)
	t2 := new(big.Int).Mul(cdSq, m02)

	det := new(big.Int).Sub(t0, t1)
	det.Add(det, t2)
	// The raw determinant is positive-inside for a counter-clockwise
	// (a,b,c); this mesh's triangles are clockwise, so negate it.
	det.Neg(det)
	return signOfBig(det)
}
