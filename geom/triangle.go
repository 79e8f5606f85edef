package geom

import (
	"errors"
	"math"
)

// ErrCollinear is returned by Circumcenter when the three points are
// (within Epsilon) collinear and so have no finite circumcenter.
var ErrCollinear = errors.New("geom: points are collinear, no circumcenter")

// Triangle is three points in no particular winding order.
type Triangle struct {
	A, B, C Point
}

// SignedArea returns the signed area of the triangle: positive when A, B, C
// wind counter-clockwise, negative when clockwise.
func (t Triangle) SignedArea() float64 {
	return 0.5 * ((t.B.X-t.A.X)*(t.C.Y-t.A.Y) - (t.C.X-t.A.X)*(t.B.Y-t.A.Y))
}

// Centroid returns the arithmetic mean of the triangle's vertices.
func (t Triangle) Centroid() Point {
	return Point{
		X: (t.A.X + t.B.X + t.C.X) / 3,
		Y: (t.A.Y + t.B.Y + t.C.Y) / 3,
	}
}

// Circumcenter returns the center of the circle passing through all three
// vertices. Returns ErrCollinear if the points are (within Epsilon)
// collinear.
func (t Triangle) Circumcenter() (Point, error) {
	d := 2 * (t.A.X*(t.B.Y-t.C.Y) + t.B.X*(t.C.Y-t.A.Y) + t.C.X*(t.A.Y-t.B.Y))
	if Eq(d, 0, Epsilon) {
		return Point{}, ErrCollinear
	}
	a2 := t.A.X*t.A.X + t.A.Y*t.A.Y
	b2 := t.B.X*t.B.X + t.B.Y*t.B.Y
	c2 := t.C.X*t.C.X + t.C.Y*t.C.Y

	ux := (a2*(t.B.Y-t.C.Y) + b2*(t.C.Y-t.A.Y) + c2*(t.A.Y-t.B.Y)) / d
	uy := (a2*(t.C.X-t.B.X) + b2*(t.A.X-t.C.X) + c2*(t.B.X-t.A.X)) / d
	return Point{ux, uy}, nil
}

// CircumRadius returns the distance from the circumcenter to any vertex.
func (t Triangle) CircumRadius(center Point) float64 {
	return center.DistanceTo(t.A)
}

// BisectorIntersection returns the point where the perpendicular bisector
// of segment p-q meets the perpendicular bisector of segment q-r: this is
// exactly the circumcenter of the triangle p, q, r, so it delegates to
// Circumcenter; the name lets callers that already think in terms of
// "bisector of this pair of sites" read naturally.
func BisectorIntersection(p, q, r Point) (Point, error) {
	return Triangle{p, q, r}.Circumcenter()
}

// PerpendicularBisector returns the slope and y-intercept of the
// perpendicular bisector of segment p-q, for the non-vertical case
// (p.Y != q.Y). ok is false when the bisector is vertical.
func PerpendicularBisector(p, q Point) (slope, intercept float64, ok bool) {
	if Eq(p.Y, q.Y, Epsilon) {
		return 0, 0, false
	}
	mid := Midpoint(p, q)
	slope = -(q.X - p.X) / (q.Y - p.Y)
	intercept = mid.Y - slope*mid.X
	return slope, intercept, true
}

// Abs is a small helper kept local to avoid pulling math.Abs call sites
// into every file that only needs a float absolute value.
func Abs(x float64) float64 { return math.Abs(x) }
