package voronoi

import (
	"github.com/sweepline/voronoi/geom"
	"github.com/sweepline/voronoi/internal/slab"
	"github.com/sweepline/voronoi/rbtree"
)

// circleEvent predicts the collapse of the arc focused at middle, once
// the sweepline reaches point.Y — the bottom of the circumcircle through
// middle's two neighbors and middle itself. ycenter is
// the circle's actual center y, used for the resulting vertex; point.Y is
// deliberately the lower, later value the driver compares events against.
type circleEvent struct {
	point   geom.Point
	ycenter float64
	middle  *Site

	arcRef slab.Handle // weak back-reference to the arc that will collapse
	node   *rbtree.Node[*circleEvent]
}

// eventQueue is an ordered tree keyed by (y, x)
// descending: the event that fires first (largest y, then largest x) is
// always the tree's first (leftmost) node.
type eventQueue struct {
	tree    *rbtree.Tree[*circleEvent]
	epsilon float64
}

func newEventQueue(epsilon float64) *eventQueue {
	return &eventQueue{tree: &rbtree.Tree[*circleEvent]{}, epsilon: epsilon}
}

func (q *eventQueue) isEmpty() bool { return q.tree.Len() == 0 }

// first returns the event with the greatest y (then x), or nil if empty.
func (q *eventQueue) first() *circleEvent {
	n := q.tree.First()
	if n == nil {
		return nil
	}
	return n.Value
}

// eventBefore reports whether a must sort ahead of b in the queue's
// in-order sequence, i.e. a fires no later than b.
func eventBefore(a, b *circleEvent, eps float64) bool {
	if !geom.Eq(a.point.Y, b.point.Y, eps) {
		return geom.Greater(a.point.Y, b.point.Y, eps)
	}
	return geom.Greater(a.point.X, b.point.X, eps)
}

// insert places e into the queue via a top-down predecessor search, since
// (unlike the beachline) this tree's key is static and can be compared
// directly at each visited node.
func (q *eventQueue) insert(e *circleEvent) {
	node := rbtree.NewNode(e)
	root := q.tree.Root()
	if root == nil {
		q.tree.InsertAfter(nil, node)
		e.node = node
		return
	}
	cur := root
	for {
		if eventBefore(e, cur.Value, q.epsilon) {
			if cur.Left() == nil {
				q.tree.InsertAfter(cur.Prev(), node)
				break
			}
			cur = cur.Left()
		} else {
			if cur.Right() == nil {
				q.tree.InsertAfter(cur, node)
				break
			}
			cur = cur.Right()
		}
	}
	e.node = node
}

// remove detaches e from the queue.
func (q *eventQueue) remove(e *circleEvent) {
	q.tree.Remove(e.node)
	e.node = nil
}
