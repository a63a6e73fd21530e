package cdt

import (
	"math"

	"github.com/archhalf/cdt/internal/widemath"
)

// Sign is the exact result of an orientation or in-circle test: it must be
// exact (not epsilon-compared) because legalization correctness depends on
// it, unlike magnitude-based checks which use an epsilon.
type Sign int

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

func signOf(f float64) Sign {
	switch {
	case f < 0:
		return Negative
	case f > 0:
		return Positive
	default:
		return Zero
	}
}

func signOfWide(s widemath.Sign) Sign {
	return Sign(s)
}

// Capability is the arithmetic capability interface: every geometric
// predicate the core needs, expressed against a coordinate type T, so the
// same pipeline code runs unmodified over float64, float32, int32, int64,
// and Fixed coordinates.
type Capability[T Coordinate] interface {
	Add(a, b Vec2[T]) Vec2[T]
	Sub(a, b Vec2[T]) Vec2[T]
	Min(a, b Vec2[T]) Vec2[T]
	Max(a, b Vec2[T]) Vec2[T]
	Abs(a Vec2[T]) Vec2[T]

	Dot(a, b Vec2[T]) float64
	Distance2(a, b Vec2[T]) float64
	Length2(a Vec2[T]) float64

	// Orient2D returns the doubled signed area of (a,b,c): positive for a
	// counter-clockwise turn, negative for clockwise, zero if collinear.
	// Every triangle this mesh stores is clockwise-wound, so a valid
	// triangle (v0,v1,v2) always has Orient2D(v0,v1,v2) <= 0.
	Orient2D(a, b, c Vec2[T]) float64
	// InCircle returns Positive if p lies strictly inside the circumcircle
	// of the clockwise-wound triangle (a,b,c), Negative if strictly
	// outside, Zero if cocircular.
	InCircle(a, b, c, p Vec2[T]) Sign
	// CircumCenter returns the circumcenter of (a,b,c), or ok=false if the
	// three points are collinear (degenerate determinant).
	CircumCenter(a, b, c Vec2[T]) (Vec2[T], bool)

	IsFinite(v Vec2[T]) bool
	ToFloat64(v Vec2[T]) (float64, float64)
	FromFloat64(x, y float64) Vec2[T]

	PseudoAngle(dx, dy float64) float64
	HashKey(dx, dy float64, hashSize int) int

	PointInTriangle(p, a, b, c Vec2[T]) bool

	// Lerp linearly interpolates from a to b by alpha in [0,1]. ok is false
	// for coordinate types that cannot represent fractional positions
	// (plain integers).
	Lerp(a, b Vec2[T], alpha float64) (Vec2[T], bool)

	Cos(radians float64) float64

	// Alpha computes the concentric-shell split parameter for a segment of
	// length sqrt(d2) relative to reference shell radius R. ok is false for
	// coordinate types that cannot support refinement.
	Alpha(R, d2 float64) (alpha float64, ok bool)
}

// pseudoAngle is a monotone atan2 proxy, cheaper than a real arctangent and
// sufficient for bucketing directions: shared by every coordinate type's
// capability since it is defined purely in terms of float64 deltas.
func pseudoAngle(dx, dy float64) float64 {
	p := dx / (math.Abs(dx) + math.Abs(dy))
	if dy > 0 {
		p = 3 - p
	} else {
		p = 1 + p
	}
	return p / 4
}

// hashKeyFor buckets a pseudoangle into [0, hashSize).
func hashKeyFor(dx, dy float64, hashSize int) int {
	key := int(math.Floor(pseudoAngle(dx, dy) * float64(hashSize)))
	if key < 0 {
		key = 0
	}
	if key >= hashSize {
		key = hashSize - 1
	}
	return key
}

// ============================== float64 ==============================

// Float64Capability implements Capability[float64] directly against IEEE
// double precision; this is the reference, exact-enough-in-practice
// instantiation.
type Float64Capability struct{}

func (Float64Capability) Add(a, b Vec2[float64]) Vec2[float64] { return Vec2[float64]{a.X + b.X, a.Y + b.Y} }
func (Float64Capability) Sub(a, b Vec2[float64]) Vec2[float64] { return Vec2[float64]{a.X - b.X, a.Y - b.Y} }
func (Float64Capability) Min(a, b Vec2[float64]) Vec2[float64] {
	return Vec2[float64]{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}
func (Float64Capability) Max(a, b Vec2[float64]) Vec2[float64] {
	return Vec2[float64]{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}
func (Float64Capability) Abs(a Vec2[float64]) Vec2[float64] {
	return Vec2[float64]{math.Abs(a.X), math.Abs(a.Y)}
}
func (Float64Capability) Dot(a, b Vec2[float64]) float64 { return a.X*b.X + a.Y*b.Y }
func (Float64Capability) Distance2(a, b Vec2[float64]) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
func (Float64Capability) Length2(a Vec2[float64]) float64 { return a.X*a.X + a.Y*a.Y }

func (Float64Capability) Orient2D(a, b, c Vec2[float64]) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func (Float64Capability) InCircle(a, b, c, p Vec2[float64]) Sign {
	adx, ady := a.X-p.X, a.Y-p.Y
	bdx, bdy := b.X-p.X, b.Y-p.Y
	cdx, cdy := c.X-p.X, c.Y-p.Y

	adSq := adx*adx + ady*ady
	bdSq := bdx*bdx + bdy*bdy
	cdSq := cdx*cdx + cdy*cdy

	// The standard lifted-paraboloid determinant is positive-inside for a
	// counter-clockwise (a,b,c); this mesh's triangles are clockwise, so
	// the sign is negated to keep Positive meaning "inside" for callers.
	det := adSq*(bdx*cdy-bdy*cdx) - bdSq*(adx*cdy-ady*cdx) + cdSq*(adx*bdy-ady*bdx)
	return signOf(-det)
}

func (Float64Capability) CircumCenter(a, b, c2 Vec2[float64]) (Vec2[float64], bool) {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c2.X-a.X, c2.Y-a.Y

	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		return Vec2[float64]{}, false
	}
	bLen2 := bx*bx + by*by
	cLen2 := cx*cx + cy*cy
	ux := (bLen2*cy - cLen2*by) / d
	uy := (cLen2*bx - bLen2*cx) / d
	return Vec2[float64]{X: a.X + ux, Y: a.Y + uy}, true
}

func (Float64Capability) IsFinite(v Vec2[float64]) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (Float64Capability) ToFloat64(v Vec2[float64]) (float64, float64) { return v.X, v.Y }
func (Float64Capability) FromFloat64(x, y float64) Vec2[float64]       { return Vec2[float64]{X: x, Y: y} }

func (Float64Capability) PseudoAngle(dx, dy float64) float64       { return pseudoAngle(dx, dy) }
func (Float64Capability) HashKey(dx, dy float64, n int) int        { return hashKeyFor(dx, dy, n) }

func (c Float64Capability) PointInTriangle(p, a, b, v2 Vec2[float64]) bool {
	return pointInTriangleByOrient(c, p, a, b, v2)
}

func (Float64Capability) Lerp(a, b Vec2[float64], alpha float64) (Vec2[float64], bool) {
	return Vec2[float64]{
		X: a.X + (b.X-a.X)*alpha,
		Y: a.Y + (b.Y-a.Y)*alpha,
	}, true
}

func (Float64Capability) Cos(radians float64) float64 { return math.Cos(radians) }

func (Float64Capability) Alpha(R, d2 float64) (float64, bool) {
	return shellAlpha(R, d2), true
}

// shellAlpha computes the concentric-shell split parameter: alpha = R/d *
// 2^k, k = round(log2(d/(2R))), so repeated splitting of an encroached
// segment converges onto one of finitely many nested shell radii instead
// of drifting arbitrarily close to an endpoint.
func shellAlpha(R, d2 float64) float64 {
	d := math.Sqrt(d2)
	k := math.Round(math.Log2(d / (2 * R)))
	return R / d * math.Pow(2, k)
}

// pointInTriangleByOrient is the shared signed-area point-in-triangle
// test, expressed generically against any Capability whose Orient2D
// matches the mesh's clockwise convention: p is inside or on triangle
// (a,b,c) iff it is not strictly "outside" any edge under that
// convention.
func pointInTriangleByOrient[T Coordinate](cap Capability[T], p, a, b, c Vec2[T]) bool {
	d1 := cap.Orient2D(a, b, p)
	d2 := cap.Orient2D(b, c, p)
	d3 := cap.Orient2D(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// ============================== float32 ==============================

// Float32Capability implements Capability[float32] by widening to float64
// for every computation and narrowing results back; single-precision
// inputs still get double-precision predicate evaluation.
type Float32Capability struct{}

func f32to64(v Vec2[float32]) Vec2[float64] { return Vec2[float64]{X: float64(v.X), Y: float64(v.Y)} }
func f64to32(v Vec2[float64]) Vec2[float32] { return Vec2[float32]{X: float32(v.X), Y: float32(v.Y)} }

func (Float32Capability) Add(a, b Vec2[float32]) Vec2[float32] {
	return f64to32(Float64Capability{}.Add(f32to64(a), f32to64(b)))
}
func (Float32Capability) Sub(a, b Vec2[float32]) Vec2[float32] {
	return f64to32(Float64Capability{}.Sub(f32to64(a), f32to64(b)))
}
func (Float32Capability) Min(a, b Vec2[float32]) Vec2[float32] {
	return f64to32(Float64Capability{}.Min(f32to64(a), f32to64(b)))
}
func (Float32Capability) Max(a, b Vec2[float32]) Vec2[float32] {
	return f64to32(Float64Capability{}.Max(f32to64(a), f32to64(b)))
}
func (Float32Capability) Abs(a Vec2[float32]) Vec2[float32] {
	return f64to32(Float64Capability{}.Abs(f32to64(a)))
}
func (Float32Capability) Dot(a, b Vec2[float32]) float64 {
	return Float64Capability{}.Dot(f32to64(a), f32to64(b))
}
func (Float32Capability) Distance2(a, b Vec2[float32]) float64 {
	return Float64Capability{}.Distance2(f32to64(a), f32to64(b))
}
func (Float32Capability) Length2(a Vec2[float32]) float64 {
	return Float64Capability{}.Length2(f32to64(a))
}
func (Float32Capability) Orient2D(a, b, c Vec2[float32]) float64 {
	return Float64Capability{}.Orient2D(f32to64(a), f32to64(b), f32to64(c))
}
func (Float32Capability) InCircle(a, b, c, p Vec2[float32]) Sign {
	return Float64Capability{}.InCircle(f32to64(a), f32to64(b), f32to64(c), f32to64(p))
}
func (Float32Capability) CircumCenter(a, b, c Vec2[float32]) (Vec2[float32], bool) {
	center, ok := Float64Capability{}.CircumCenter(f32to64(a), f32to64(b), f32to64(c))
	return f64to32(center), ok
}
func (Float32Capability) IsFinite(v Vec2[float32]) bool {
	return Float64Capability{}.IsFinite(f32to64(v))
}
func (Float32Capability) ToFloat64(v Vec2[float32]) (float64, float64) { return float64(v.X), float64(v.Y) }
func (Float32Capability) FromFloat64(x, y float64) Vec2[float32] {
	return Vec2[float32]{X: float32(x), Y: float32(y)}
}
func (Float32Capability) PseudoAngle(dx, dy float64) float64 { return pseudoAngle(dx, dy) }
func (Float32Capability) HashKey(dx, dy float64, n int) int  { return hashKeyFor(dx, dy, n) }
func (c Float32Capability) PointInTriangle(p, a, b, v2 Vec2[float32]) bool {
	return pointInTriangleByOrient[float32](c, p, a, b, v2)
}
func (Float32Capability) Lerp(a, b Vec2[float32], alpha float64) (Vec2[float32], bool) {
	v, ok := Float64Capability{}.Lerp(f32to64(a), f32to64(b), alpha)
	return f64to32(v), ok
}
func (Float32Capability) Cos(radians float64) float64 { return math.Cos(radians) }
func (Float32Capability) Alpha(R, d2 float64) (float64, bool) { return shellAlpha(R, d2), true }

// ============================== integers ==============================

// Integer is the subset of Coordinate representing whole-number storage;
// both int32 and int64 share a single generic capability because every
// predicate below only ever needs int64-widened intermediates.
type Integer interface {
	~int32 | ~int64
}

// IntegerCapability implements Capability[T] for plain integer coordinates.
// InCircle is computed with widened intermediate products (via math/big);
// Orient2D is computed in float64 (see its comment below); Lerp and Alpha are
// unsupported, since a plain integer grid cannot represent the fractional
// split points refinement needs — this is the capability that returns
// IntegersDoNotSupportMeshRefinement at the pipeline level.
type IntegerCapability[T Integer] struct{}

func (IntegerCapability[T]) Add(a, b Vec2[T]) Vec2[T] { return Vec2[T]{a.X + b.X, a.Y + b.Y} }
func (IntegerCapability[T]) Sub(a, b Vec2[T]) Vec2[T] { return Vec2[T]{a.X - b.X, a.Y - b.Y} }
func (IntegerCapability[T]) Min(a, b Vec2[T]) Vec2[T] {
	x, y := a.X, a.Y
	if b.X < x {
		x = b.X
	}
	if b.Y < y {
		y = b.Y
	}
	return Vec2[T]{x, y}
}
func (IntegerCapability[T]) Max(a, b Vec2[T]) Vec2[T] {
	x, y := a.X, a.Y
	if b.X > x {
		x = b.X
	}
	if b.Y > y {
		y = b.Y
	}
	return Vec2[T]{x, y}
}
func (IntegerCapability[T]) Abs(a Vec2[T]) Vec2[T] {
	x, y := a.X, a.Y
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	return Vec2[T]{x, y}
}
func (IntegerCapability[T]) Dot(a, b Vec2[T]) float64 {
	return float64(a.X)*float64(b.X) + float64(a.Y)*float64(b.Y)
}
func (IntegerCapability[T]) Distance2(a, b Vec2[T]) float64 {
	dx, dy := float64(a.X)-float64(b.X), float64(a.Y)-float64(b.Y)
	return dx*dx + dy*dy
}
func (IntegerCapability[T]) Length2(a Vec2[T]) float64 {
	return float64(a.X)*float64(a.X) + float64(a.Y)*float64(a.Y)
}
// Orient2D returns the doubled area as a float64 (callers need the
// magnitude, not just the sign, for area-based checks); InCircle below is
// the one predicate whose sign alone drives correctness, so it is the one
// computed with widened integer arithmetic.
func (IntegerCapability[T]) Orient2D(a, b, c Vec2[T]) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	cx, cy := float64(c.X), float64(c.Y)
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}
func (IntegerCapability[T]) InCircle(a, b, c, p Vec2[T]) Sign {
	sign := widemath.InCircleSign(int64(a.X), int64(a.Y), int64(b.X), int64(b.Y), int64(c.X), int64(c.Y), int64(p.X), int64(p.Y))
	return signOfWide(sign)
}
func (IntegerCapability[T]) CircumCenter(a, b, c Vec2[T]) (Vec2[T], bool) {
	center, ok := Float64Capability{}.CircumCenter(
		Vec2[float64]{X: float64(a.X), Y: float64(a.Y)},
		Vec2[float64]{X: float64(b.X), Y: float64(b.Y)},
		Vec2[float64]{X: float64(c.X), Y: float64(c.Y)},
	)
	if !ok {
		return Vec2[T]{}, false
	}
	return Vec2[T]{X: T(center.X), Y: T(center.Y)}, true
}
func (IntegerCapability[T]) IsFinite(v Vec2[T]) bool { return true }
func (IntegerCapability[T]) ToFloat64(v Vec2[T]) (float64, float64) {
	return float64(v.X), float64(v.Y)
}
func (IntegerCapability[T]) FromFloat64(x, y float64) Vec2[T] {
	return Vec2[T]{X: T(x), Y: T(y)}
}
func (IntegerCapability[T]) PseudoAngle(dx, dy float64) float64 { return pseudoAngle(dx, dy) }
func (IntegerCapability[T]) HashKey(dx, dy float64, n int) int  { return hashKeyFor(dx, dy, n) }
func (c IntegerCapability[T]) PointInTriangle(p, a, b, v2 Vec2[T]) bool {
	return pointInTriangleByOrient[T](c, p, a, b, v2)
}
func (IntegerCapability[T]) Lerp(a, b Vec2[T], alpha float64) (Vec2[T], bool) {
	return Vec2[T]{}, false
}
func (IntegerCapability[T]) Cos(radians float64) float64 { return math.Cos(radians) }
func (IntegerCapability[T]) Alpha(R, d2 float64) (float64, bool) {
	return 0, false
}

// ============================== fixed point ==============================

// FixedCapability implements Capability[Fixed] over Q32.32 fixed-point
// coordinates. Unlike plain integers, Fixed has fractional precision, so
// it supports Lerp and Alpha and can participate in refinement.
type FixedCapability struct{}

func (FixedCapability) Add(a, b Vec2[Fixed]) Vec2[Fixed] { return Vec2[Fixed]{a.X + b.X, a.Y + b.Y} }
func (FixedCapability) Sub(a, b Vec2[Fixed]) Vec2[Fixed] { return Vec2[Fixed]{a.X - b.X, a.Y - b.Y} }
func (FixedCapability) Min(a, b Vec2[Fixed]) Vec2[Fixed] {
	x, y := a.X, a.Y
	if b.X < x {
		x = b.X
	}
	if b.Y < y {
		y = b.Y
	}
	return Vec2[Fixed]{x, y}
}
func (FixedCapability) Max(a, b Vec2[Fixed]) Vec2[Fixed] {
	x, y := a.X, a.Y
	if b.X > x {
		x = b.X
	}
	if b.Y > y {
		y = b.Y
	}
	return Vec2[Fixed]{x, y}
}
func (FixedCapability) Abs(a Vec2[Fixed]) Vec2[Fixed] {
	x, y := a.X, a.Y
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	return Vec2[Fixed]{x, y}
}
func (FixedCapability) Dot(a, b Vec2[Fixed]) float64 {
	return a.X.Float64()*b.X.Float64() + a.Y.Float64()*b.Y.Float64()
}
func (FixedCapability) Distance2(a, b Vec2[Fixed]) float64 {
	dx, dy := a.X.Float64()-b.X.Float64(), a.Y.Float64()-b.Y.Float64()
	return dx*dx + dy*dy
}
func (FixedCapability) Length2(a Vec2[Fixed]) float64 {
	return a.X.Float64()*a.X.Float64() + a.Y.Float64()*a.Y.Float64()
}
func (FixedCapability) Orient2D(a, b, c Vec2[Fixed]) float64 {
	ax, ay := a.X.Float64(), a.Y.Float64()
	bx, by := b.X.Float64(), b.Y.Float64()
	cx, cy := c.X.Float64(), c.Y.Float64()
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}
func (FixedCapability) InCircle(a, b, c, p Vec2[Fixed]) Sign {
	sign := widemath.InCircleSign(int64(a.X), int64(a.Y), int64(b.X), int64(b.Y), int64(c.X), int64(c.Y), int64(p.X), int64(p.Y))
	return signOfWide(sign)
}
func (FixedCapability) CircumCenter(a, b, c Vec2[Fixed]) (Vec2[Fixed], bool) {
	center, ok := Float64Capability{}.CircumCenter(
		Vec2[float64]{X: a.X.Float64(), Y: a.Y.Float64()},
		Vec2[float64]{X: b.X.Float64(), Y: b.Y.Float64()},
		Vec2[float64]{X: c.X.Float64(), Y: c.Y.Float64()},
	)
	if !ok {
		return Vec2[Fixed]{}, false
	}
	return Vec2[Fixed]{X: FixedFromFloat64(center.X), Y: FixedFromFloat64(center.Y)}, true
}
func (FixedCapability) IsFinite(v Vec2[Fixed]) bool { return true }
func (FixedCapability) ToFloat64(v Vec2[Fixed]) (float64, float64) {
	return v.X.Float64(), v.Y.Float64()
}
func (FixedCapability) FromFloat64(x, y float64) Vec2[Fixed] {
	return Vec2[Fixed]{X: FixedFromFloat64(x), Y: FixedFromFloat64(y)}
}
func (FixedCapability) PseudoAngle(dx, dy float64) float64 { return pseudoAngle(dx, dy) }
func (FixedCapability) HashKey(dx, dy float64, n int) int  { return hashKeyFor(dx, dy, n) }
func (c FixedCapability) PointInTriangle(p, a, b, v2 Vec2[Fixed]) bool {
	return pointInTriangleByOrient[Fixed](c, p, a, b, v2)
}
func (FixedCapability) Lerp(a, b Vec2[Fixed], alpha float64) (Vec2[Fixed], bool) {
	return Vec2[Fixed]{
		X: FixedFromFloat64(a.X.Float64() + (b.X.Float64()-a.X.Float64())*alpha),
		Y: FixedFromFloat64(a.Y.Float64() + (b.Y.Float64()-a.Y.Float64())*alpha),
	}, true
}
func (FixedCapability) Cos(radians float64) float64 { return math.Cos(radians) }
func (FixedCapability) Alpha(R, d2 float64) (float64, bool) { return shellAlpha(R, d2), true }
