package geom

// AABB is an axis-aligned bounding box with Min.X < Max.X and Min.Y < Max.Y.
type AABB struct {
	Min, Max Point
}

// Valid reports whether the box has positive width and height.
func (b AABB) Valid() bool {
	return Greater(b.Max.X, b.Min.X, Epsilon) && Greater(b.Max.Y, b.Min.Y, Epsilon)
}

// Width returns the box width.
func (b AABB) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the box height.
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }

// Area returns the box area.
func (b AABB) Area() float64 { return b.Width() * b.Height() }

// Perimeter returns the box perimeter.
func (b AABB) Perimeter() float64 { return 2 * (b.Width() + b.Height()) }

// Contains reports whether p lies inside b, within Epsilon.
func (b AABB) Contains(p Point) bool {
	return GreaterOrEq(p.X, b.Min.X, Epsilon) && LessOrEq(p.X, b.Max.X, Epsilon) &&
		GreaterOrEq(p.Y, b.Min.Y, Epsilon) && LessOrEq(p.Y, b.Max.Y, Epsilon)
}

// ExpandToInclude returns the smallest AABB containing both b and p.
func (b AABB) ExpandToInclude(p Point) AABB {
	out := b
	if p.X < out.Min.X {
		out.Min.X = p.X
	}
	if p.X > out.Max.X {
		out.Max.X = p.X
	}
	if p.Y < out.Min.Y {
		out.Min.Y = p.Y
	}
	if p.Y > out.Max.Y {
		out.Max.Y = p.Y
	}
	return out
}
