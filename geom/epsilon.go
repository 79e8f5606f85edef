// Package geom provides the 2D value types and epsilon-aware comparisons
// shared by the sweepline engine: points, axis-aligned boxes, segments and
// triangles.
package geom

// Epsilon is the tolerance used for every sign-sensitive geometric decision
// in the engine (breakpoint search, circle-orientation tests, finalizer
// side-selection, degenerate-edge detection).
const Epsilon = 1e-9

// CircleOrientationEpsilon is the stricter threshold used only by the
// circle-event orientation test, to suppress false positives on nearly
// collinear site triples.
const CircleOrientationEpsilon = -2e-12

// Eq reports whether a and b are equal within eps.
func Eq(a, b, eps float64) bool {
	d := a - b
	return d < eps && d > -eps
}

// Less reports whether a is strictly less than b within eps (b-a > eps).
func Less(a, b, eps float64) bool {
	return b-a > eps
}

// Greater reports whether a is strictly greater than b within eps (a-b > eps).
func Greater(a, b, eps float64) bool {
	return a-b > eps
}

// LessOrEq reports whether a is not strictly greater than b.
func LessOrEq(a, b, eps float64) bool {
	return !Greater(a, b, eps)
}

// GreaterOrEq reports whether a is not strictly less than b.
func GreaterOrEq(a, b, eps float64) bool {
	return !Less(a, b, eps)
}
