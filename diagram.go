// Package voronoi computes 2D Voronoi diagrams with Fortune's sweepline
// algorithm: a beachline of parabolic arcs and a circle-event queue, both
// held in red-black trees, interleaved until every site has been swept
// and every predicted arc collapse has fired, then clipped and closed
// against a caller-supplied bounding box.
package voronoi

import (
	"math"
	"time"

	"github.com/sweepline/voronoi/geom"
)

// Site is an input point, augmented once processing begins with a
// back-reference to its Cell. Identity matters: two Sites with
// equal coordinates are distinct until dedup drops one of them in the
// sweep driver.
type Site struct {
	ID    int
	Point geom.Point
	cell  *Cell
}

// Cell returns the Cell owning this Site, or nil before the sweep has
// allocated one.
func (s *Site) Cell() *Cell { return s.cell }

// Vertex is a point that is either a genuine intersection of three or
// more Voronoi edges, or a fabricated point on the bounding box used for
// closure.
type Vertex struct {
	Point geom.Point

	incident []*Edge
}

// Incident returns the edges meeting at v.
func (v *Vertex) Incident() []*Edge { return v.incident }

func (v *Vertex) addIncident(e *Edge) { v.incident = append(v.incident, e) }

// Edge is an unordered pair of Sites plus two Vertex endpoints, filled in
// as the sweep progresses. Right is nil for box-closure edges fabricated
// by the finalizer.
type Edge struct {
	Left, Right *Site
	Start, End  *Vertex
	fabricated  bool
}

// Length returns the Euclidean length of the edge, or 0 if either
// endpoint is unset.
func (e *Edge) Length() float64 {
	if e.Start == nil || e.End == nil {
		return 0
	}
	return e.segment().Length()
}

// segment returns the edge's endpoints as a geom.Segment, oriented
// Start->End.
func (e *Edge) segment() geom.Segment {
	return geom.Segment{A: e.Start.Point, B: e.End.Point}
}

// setStart claims an endpoint for the bisector between left and right: if
// neither endpoint is set, claim Start and remember which site is "left"
// for this edge. Otherwise the slot follows the orientation the edge
// already recorded: End if the edge's Left is right (the pair arrives
// swapped), Start if not. If that slot is already set, that's the
// NumericCollapse case: the caller logs and counts it rather than
// overwriting (see DESIGN.md open question 1), leaving the edge as it was.
func (e *Edge) setStart(left, right *Site, v *Vertex) (ok bool) {
	switch {
	case e.Start == nil && e.End == nil:
		e.Start = v
		e.Left, e.Right = left, right
		return true
	case e.Left == right:
		if e.End != nil {
			return false
		}
		e.End = v
		return true
	default:
		if e.Start != nil {
			return false
		}
		e.Start = v
		return true
	}
}

// setEnd is setStart with left/right swapped.
func (e *Edge) setEnd(left, right *Site, v *Vertex) (ok bool) {
	return e.setStart(right, left, v)
}

// CellEdge is a Site-oriented view of an Edge: its Start/End are derived
// on access (never cached) so they always reflect the owning Site's
// orientation around its Cell.
type CellEdge struct {
	site  *Site
	edge  *Edge
	angle float64
}

// Site returns the Cell-owning Site this half-edge is oriented around.
func (c *CellEdge) Site() *Site { return c.site }

// SharedEdge returns the underlying Edge.
func (c *CellEdge) SharedEdge() *Edge { return c.edge }

// Angle returns the cached sort key used by the finalizer's
// counter-clockwise ordering.
func (c *CellEdge) Angle() float64 { return c.angle }

// Start returns this half-edge's start point in the site's
// counter-clockwise orientation.
func (c *CellEdge) Start() geom.Point {
	if c.edge.Left == c.site {
		return c.edge.Start.Point
	}
	return c.edge.End.Point
}

// End returns this half-edge's end point in the site's counter-clockwise
// orientation.
func (c *CellEdge) End() geom.Point {
	if c.edge.Left == c.site {
		return c.edge.End.Point
	}
	return c.edge.Start.Point
}

// Length returns the Euclidean length of the half-edge.
func (c *CellEdge) Length() float64 { return c.Start().DistanceTo(c.End()) }

func cellEdgeAngle(site *Site, e *Edge) float64 {
	other := e.Right
	if other == site {
		other = e.Left
	}
	if other != nil {
		return math.Atan2(other.Point.Y-site.Point.Y, other.Point.X-site.Point.X)
	}
	// Border edge with no opposite site: angle from the site to the
	// midpoint of the edge's own endpoints.
	if e.Start != nil && e.End != nil {
		mid := geom.Midpoint(e.Start.Point, e.End.Point)
		return math.Atan2(mid.Y-site.Point.Y, mid.X-site.Point.X)
	}
	return 0
}

// Cell owns one Site and an ordered, counter-clockwise sequence of
// CellEdges.
type Cell struct {
	Site  *Site
	Edges []*CellEdge

	closed bool
}

// Closed reports whether the finalizer successfully closed this cell
// into a simple counter-clockwise polygon.
func (c *Cell) Closed() bool { return c.closed }

// Perimeter returns the sum of the cell's half-edge lengths.
func (c *Cell) Perimeter() float64 {
	var p float64
	for _, e := range c.Edges {
		p += e.Length()
	}
	return p
}

// Area returns the signed area of the cell's polygon (positive for a
// closed, counter-clockwise cell).
func (c *Cell) Area() float64 {
	var sum float64
	for _, e := range c.Edges {
		a, b := e.Start(), e.End()
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Centroid returns the polygon centroid, computed as the area-weighted
// average of fan-triangle centroids (site, edge.Start, edge.End).
func (c *Cell) Centroid() geom.Point {
	var cx, cy, totalArea float64
	for _, e := range c.Edges {
		tri := geom.Triangle{A: c.Site.Point, B: e.Start(), C: e.End()}
		area := tri.SignedArea()
		centroid := tri.Centroid()
		cx += centroid.X * area
		cy += centroid.Y * area
		totalArea += area
	}
	if geom.Eq(totalArea, 0, geom.Epsilon) {
		return c.Site.Point
	}
	return geom.Point{X: cx / totalArea, Y: cy / totalArea}
}

// Neighbors returns the sites across each of the cell's interior edges
// (box-closure edges contribute no neighbor).
func (c *Cell) Neighbors() []*Site {
	var out []*Site
	for _, ce := range c.Edges {
		other := ce.edge.Right
		if other == c.Site {
			other = ce.edge.Left
		}
		if other != nil && other != c.Site {
			out = append(out, other)
		}
	}
	return out
}

// BoundingAABB returns the axis-aligned bounding box of the cell's
// vertices.
func (c *Cell) BoundingAABB() geom.AABB {
	if len(c.Edges) == 0 {
		return geom.AABB{Min: c.Site.Point, Max: c.Site.Point}
	}
	first := c.Edges[0].Start()
	box := geom.AABB{Min: first, Max: first}
	for _, e := range c.Edges {
		box = box.ExpandToInclude(e.Start())
		box = box.ExpandToInclude(e.End())
	}
	return box
}

// Contains reports whether p lies inside the cell's polygon, via a
// standard even-odd ray cast over its (closed) half-edge loop.
func (c *Cell) Contains(p geom.Point) bool {
	inside := false
	n := len(c.Edges)
	for i := 0; i < n; i++ {
		a := c.Edges[i].Start()
		b := c.Edges[i].End()
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xint := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xint {
				inside = !inside
			}
		}
	}
	return inside
}

// Diagnostics collects the silent-drop and degenerate-case counters that
// make the engine's failure semantics observable.
type Diagnostics struct {
	DroppedCells       int
	DroppedCellSiteIDs []int
	ClosureCapHits     int
	AbsorbedCollapses  int
}

// Violation is one property failure reported by Diagram.Validate.
type Violation struct {
	Property   string // e.g. "P2", "P3"
	Detail     string
	CellSiteID int
}

// Diagram is the top-level output aggregate: sites, vertices, edges,
// cells, plus execution-time telemetry.
type Diagram struct {
	Sites    []*Site
	Vertices []*Vertex
	Edges    []*Edge
	Cells    []*Cell

	Bounds      geom.AABB
	ExecTime    time.Duration
	RunID       string
	Diagnostics Diagnostics

	finished bool
	cfg      Config
}

func (d *Diagram) newVertex(p geom.Point) *Vertex {
	v := &Vertex{Point: p}
	d.Vertices = append(d.Vertices, v)
	return v
}

func (d *Diagram) newEdge(left, right *Site) *Edge {
	e := &Edge{Left: left, Right: right}
	d.Edges = append(d.Edges, e)
	return e
}

// Validate checks the diagram's structural invariants against the
// current diagram state and returns every violation found (nil if none).
// It's meant to be cheap enough to call from a request handler in debug
// mode, not just from tests.
func (d *Diagram) Validate() []Violation {
	var out []Violation

	seen := make(map[int]int, len(d.Sites))
	for _, c := range d.Cells {
		seen[c.Site.ID]++
	}
	for _, s := range d.Sites {
		if n := seen[s.ID]; n != 1 {
			out = append(out, Violation{Property: "P1", Detail: "site does not have exactly one cell", CellSiteID: s.ID})
		}
	}

	for _, c := range d.Cells {
		if len(c.Edges) < 3 || !c.closed {
			continue
		}
		n := len(c.Edges)
		for i := 0; i < n; i++ {
			a := c.Edges[i].End()
			b := c.Edges[(i+1)%n].Start()
			if !a.Equal(b) {
				out = append(out, Violation{Property: "P2", Detail: "half-edge loop is not closed", CellSiteID: c.Site.ID})
				break
			}
		}
		if c.Area() <= 0 {
			out = append(out, Violation{Property: "P3", Detail: "cell polygon is not counter-clockwise", CellSiteID: c.Site.ID})
		}
		box := d.Bounds
		for _, e := range c.Edges {
			if !box.Contains(e.Start()) || !box.Contains(e.End()) {
				out = append(out, Violation{Property: "P4", Detail: "edge endpoint outside bounding box", CellSiteID: c.Site.ID})
				break
			}
		}
	}

	return out
}
