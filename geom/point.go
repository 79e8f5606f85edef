package geom

import "math"

// Point is a 2D coordinate. It is a pure value type: no identity, no
// allocation required to pass it around.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z-component of the 3D cross product of p and q,
// treating both as vectors from the origin.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Equal reports whether p and q are equal within Epsilon on both axes.
func (p Point) Equal(q Point) bool {
	return Eq(p.X, q.X, Epsilon) && Eq(p.Y, q.Y, Epsilon)
}

// Midpoint returns the midpoint of p and q.
func Midpoint(p, q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// SiteOrder reports whether p sorts before q in the reverse-lexicographic
// order the sweep uses throughout: y descending, then x descending. It
// returns true when p must be processed/ordered ahead of q.
func SiteOrder(p, q Point) bool {
	if !Eq(p.Y, q.Y, Epsilon) {
		return Greater(p.Y, q.Y, Epsilon)
	}
	return Greater(p.X, q.X, Epsilon)
}
