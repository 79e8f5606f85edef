package voronoi

import (
	"math"

	"github.com/sweepline/voronoi/geom"
	"github.com/sweepline/voronoi/internal/slab"
	"github.com/sweepline/voronoi/rbtree"
)

// arc is one beach-arc node: a portion of the parabola focused at site,
// directrix the sweepline's current y. edge is the edge
// currently being traced by this arc's left breakpoint (the edge between
// this arc and its predecessor); it has at most one endpoint set while
// both arcs remain on the beachline (invariant I2).
type arc struct {
	site  *Site
	node  *rbtree.Node[*arc]
	edge  *Edge
	event slab.Handle // weak reference to this arc's pending circle event
	self  slab.Handle // this arc's own slot in the sweep's arc arena
}

// beachline is the ordered tree of arc, specialized to a dynamic range
// key: no key is ever stored, only recomputed from a node's neighbors
// and the current directrix at query time.
type beachline struct {
	tree    *rbtree.Tree[*arc]
	epsilon float64
}

func newBeachline(epsilon float64) *beachline {
	return &beachline{tree: &rbtree.Tree[*arc]{}, epsilon: epsilon}
}

func (b *beachline) isEmpty() bool { return b.tree.Len() == 0 }

// insertAfter wraps a in a tree node, inserts it after anchor, and keeps
// a.node pointed at its own tree node so callers holding only an *arc can
// still reach its beachline neighbors.
func (b *beachline) insertAfter(anchor *rbtree.Node[*arc], a *arc) *rbtree.Node[*arc] {
	n := rbtree.NewNode(a)
	b.tree.InsertAfter(anchor, n)
	a.node = n
	return n
}

// remove detaches a's tree node from the beachline.
func (b *beachline) remove(a *arc) {
	b.tree.Remove(a.node)
	a.node = nil
}

// prevArc returns a's left neighbor on the beachline, or nil.
func prevArc(a *arc) *arc {
	if a == nil || a.node.Prev() == nil {
		return nil
	}
	return a.node.Prev().Value
}

// nextArc returns a's right neighbor on the beachline, or nil.
func nextArc(a *arc) *arc {
	if a == nil || a.node.Next() == nil {
		return nil
	}
	return a.node.Next().Value
}

// breakpointX solves for the x-coordinate where the parabolas focused at
// left and right (left site is the arc to the left) intersect, given the
// current directrix. Setting the
// two parabola equations equal yields a quadratic a*x^2+b*x+c=0; we solve
// it and return the root where left's arc gives way to right's: the larger
// root when left's focus is nearer the directrix, the smaller otherwise.
// That root can lie on either side of the left focus.
func breakpointX(left, right geom.Point, directrix, eps float64) float64 {
	switch {
	case geom.Eq(left.Y, directrix, eps):
		return left.X
	case geom.Eq(right.Y, directrix, eps):
		return right.X
	case geom.Eq(left.Y, right.Y, eps):
		return (left.X + right.X) / 2
	}

	d1 := 2 * (left.Y - directrix)
	d2 := 2 * (right.Y - directrix)
	a := 1/d1 - 1/d2
	b := -2*left.X/d1 + 2*right.X/d2
	c := (left.X*left.X+left.Y*left.Y-directrix*directrix)/d1 -
		(right.X*right.X+right.Y*right.Y-directrix*directrix)/d2

	disc := b*b - 4*a*c
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)
	x1 := (-b + sq) / (2 * a)
	x2 := (-b - sq) / (2 * a)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	// The two roots correspond to the two intersections of the parabolas;
	// the one bordering the arcs in the beachline is picked by which focus
	// currently sits closer to the sweepline.
	if left.Y < right.Y {
		return x2
	}
	return x1
}

// leftBreakpoint returns n's left boundary under directrix, or -Inf if n
// is the leftmost arc.
func leftBreakpoint(n *rbtree.Node[*arc], directrix, eps float64) float64 {
	prev := n.Prev()
	if prev == nil {
		return math.Inf(-1)
	}
	return breakpointX(prev.Value.site.Point, n.Value.site.Point, directrix, eps)
}

// rightBreakpoint returns n's right boundary under directrix, or +Inf if
// n is the rightmost arc.
func rightBreakpoint(n *rbtree.Node[*arc], directrix, eps float64) float64 {
	next := n.Next()
	if next == nil {
		return math.Inf(1)
	}
	return breakpointX(n.Value.site.Point, next.Value.site.Point, directrix, eps)
}

// arcAt performs a top-down search: descend comparing
// leftBreakpoint(node)-x and x-rightBreakpoint(node) as signed distances,
// returning the arc node whose range contains x. Returns nil if the
// beachline is empty.
func (b *beachline) arcAt(x, directrix float64) *rbtree.Node[*arc] {
	node := b.tree.Root()
	for node != nil {
		lb := leftBreakpoint(node, directrix, b.epsilon)
		if geom.Less(x, lb, b.epsilon) {
			node = node.Left()
			continue
		}
		rb := rightBreakpoint(node, directrix, b.epsilon)
		if geom.Greater(x, rb, b.epsilon) {
			node = node.Right()
			continue
		}
		return node
	}
	return nil
}

