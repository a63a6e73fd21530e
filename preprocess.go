package cdt

import "math"

// preprocessTransform records the forward transform applied to Input
// positions and hole seeds so Triangulate can invert it on the way out:
// callers see Output coordinates in their original frame regardless of
// which Preprocessor ran.
type preprocessTransform struct {
	kind     Preprocessor
	centroid [2]float64
	cos, sin float64 // rotation applied by PCA; identity (1,0) for COM/None.
}

// planPreprocess inspects positions and produces the transform to apply,
// without mutating anything yet.
func planPreprocess[T Coordinate](cap Capability[T], positions []Vec2[T], kind Preprocessor) preprocessTransform {
	t := preprocessTransform{kind: kind, cos: 1, sin: 0}
	if kind == PreprocessorNone || len(positions) == 0 {
		return t
	}

	var sx, sy float64
	for _, p := range positions {
		x, y := cap.ToFloat64(p)
		sx += x
		sy += y
	}
	n := float64(len(positions))
	t.centroid = [2]float64{sx / n, sy / n}

	if kind != PreprocessorPCA {
		return t
	}

	var sxx, sxy, syy float64
	for _, p := range positions {
		x, y := cap.ToFloat64(p)
		dx, dy := x-t.centroid[0], y-t.centroid[1]
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	sxx /= n
	sxy /= n
	syy /= n

	// Principal axis of the 2x2 symmetric covariance matrix
	// [[sxx, sxy], [sxy, syy]], via the closed-form eigenvector angle.
	theta := 0.5 * math.Atan2(2*sxy, sxx-syy)
	t.cos, t.sin = math.Cos(theta), math.Sin(theta)
	return t
}

// applyTransform centers (and, for PCA, rotates into the
// principal-component frame) every position, returning a new slice.
func applyTransform[T Coordinate](cap Capability[T], t preprocessTransform, positions []Vec2[T]) []Vec2[T] {
	if t.kind == PreprocessorNone {
		return positions
	}
	out := make([]Vec2[T], len(positions))
	for i, p := range positions {
		x, y := cap.ToFloat64(p)
		x -= t.centroid[0]
		y -= t.centroid[1]
		if t.kind == PreprocessorPCA {
			x, y = x*t.cos+y*t.sin, -x*t.sin+y*t.cos
		}
		out[i] = cap.FromFloat64(x, y)
	}
	return out
}

// invertTransform reverses applyTransform on output positions.
func invertTransform[T Coordinate](cap Capability[T], t preprocessTransform, positions []Vec2[T]) {
	if t.kind == PreprocessorNone {
		return
	}
	for i, p := range positions {
		x, y := cap.ToFloat64(p)
		if t.kind == PreprocessorPCA {
			x, y = x*t.cos-y*t.sin, x*t.sin+y*t.cos
		}
		x += t.centroid[0]
		y += t.centroid[1]
		positions[i] = cap.FromFloat64(x, y)
	}
}
