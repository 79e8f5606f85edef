package voronoi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweepline/voronoi/geom"
)

// edgeConnects reports whether e's site pair matches {a, b} in either order.
func edgeConnects(e *Edge, a, b *Site) bool {
	return (e.Left == a && e.Right == b) || (e.Left == b && e.Right == a)
}

// Two sites sharing a y-coordinate produce arcs whose breakpoint is fixed at
// the midpoint x for every directrix (breakpointX's equal-Y branch), not
// just momentarily. A third site placed exactly on that midpoint x therefore
// lands on the shared breakpoint rather than strictly inside either arc,
// driving addArc into twoArcCase instead of splitArcCase.
func TestAddArcTwoArcCaseOnSharedBreakpoint(t *testing.T) {
	cfg := DefaultConfig()
	diagram := &Diagram{cfg: cfg}
	sw := newSweep(diagram, cfg)

	siteB := &Site{ID: 0, Point: geom.Point{X: 300, Y: 300}}
	siteA := &Site{ID: 1, Point: geom.Point{X: 100, Y: 300}}
	siteC := &Site{ID: 2, Point: geom.Point{X: 200, Y: 100}}
	diagram.Sites = append(diagram.Sites, siteB, siteA, siteC)

	// SiteOrder processes the larger x first on a y tie, so B lands before A.
	sw.addArc(siteB)
	sw.addArc(siteA)
	require.True(t, sw.queue.isEmpty(), "two colinear sites must not register a circle event")
	require.Equal(t, 1, len(diagram.Edges))

	node := sw.beach.arcAt(siteC.Point.X, siteC.Point.Y)
	require.NotNil(t, node)
	lb := leftBreakpoint(node, siteC.Point.Y, sw.cfg.Epsilon)
	rb := rightBreakpoint(node, siteC.Point.Y, sw.cfg.Epsilon)
	require.True(t,
		geom.Eq(siteC.Point.X, lb, sw.cfg.Epsilon) || geom.Eq(siteC.Point.X, rb, sw.cfg.Epsilon),
		"site C must land exactly on the breakpoint shared by the A/B arcs")

	sw.addArc(siteC)

	require.Equal(t, 3, len(diagram.Edges), "twoArcCase must terminate the A-B edge and open two new ones")

	var abEdge, acEdge, cbEdge *Edge
	for _, e := range diagram.Edges {
		switch {
		case edgeConnects(e, siteA, siteB):
			abEdge = e
		case edgeConnects(e, siteA, siteC):
			acEdge = e
		case edgeConnects(e, siteC, siteB):
			cbEdge = e
		}
	}
	require.NotNil(t, abEdge, "original A-B edge must survive, now terminated")
	require.NotNil(t, acEdge, "twoArcCase must open a fresh A-C edge")
	require.NotNil(t, cbEdge, "twoArcCase must open a fresh C-B edge")

	require.NotNil(t, abEdge.Start)
	require.Same(t, abEdge.Start, acEdge.Start)
	require.Same(t, abEdge.Start, cbEdge.Start)

	tri := geom.Triangle{A: siteA.Point, B: siteC.Point, C: siteB.Point}
	want, err := tri.Circumcenter()
	require.NoError(t, err)
	require.InDelta(t, want.X, abEdge.Start.Point.X, 1e-6)
	require.InDelta(t, want.Y, abEdge.Start.Point.Y, 1e-6)
}
