package voronoi

import (
	"sort"

	"github.com/sweepline/voronoi/geom"
)

// wall identifies one side of the bounding box. The closure walk visits the
// walls counter-clockwise: min-y, max-x, max-y, min-x, back to min-y.
type wall int

const (
	wallNone wall = iota - 1
	wallMinX
	wallMaxY
	wallMaxX
	wallMinY
)

// wallOf reports which box wall p lies on, within eps. A corner belongs to
// the wall the counter-clockwise walk leaves it along.
func wallOf(p geom.Point, box geom.AABB, eps float64) wall {
	switch {
	case geom.Eq(p.Y, box.Min.Y, eps) && geom.Less(p.X, box.Max.X, eps):
		return wallMinY
	case geom.Eq(p.X, box.Max.X, eps) && geom.Less(p.Y, box.Max.Y, eps):
		return wallMaxX
	case geom.Eq(p.Y, box.Max.Y, eps) && geom.Greater(p.X, box.Min.X, eps):
		return wallMaxY
	case geom.Eq(p.X, box.Min.X, eps) && geom.Greater(p.Y, box.Min.Y, eps):
		return wallMinX
	default:
		return wallNone
	}
}

// closureStep computes the next point along the counter-clockwise box walk
// from end (known to lie on endWall) toward target (known to lie on
// targetWall), handling all four wall pairings symmetrically. If target
// shares end's wall, the walk can finish directly at target; otherwise it
// must pass through the corner ahead of endWall in the cycle.
func closureStep(end geom.Point, endWall wall, target geom.Point, targetWall wall, box geom.AABB) geom.Point {
	if endWall == targetWall {
		return target
	}
	switch endWall {
	case wallMinY:
		return geom.Point{X: box.Max.X, Y: box.Min.Y}
	case wallMaxX:
		return geom.Point{X: box.Max.X, Y: box.Max.Y}
	case wallMaxY:
		return geom.Point{X: box.Min.X, Y: box.Max.Y}
	case wallMinX:
		return geom.Point{X: box.Min.X, Y: box.Min.Y}
	default:
		return end
	}
}

// Finish runs the finalizer over the raw sweep output: connect dangling
// edges to the bounding box, Liang-Barsky clip, drop degenerate edges,
// then close each cell by walking its half-edges and the box boundary.
// Idempotent: calling it again on an already finished Diagram is a no-op.
func (d *Diagram) Finish(bbox geom.AABB) error {
	if d.finished {
		return nil
	}
	if !bbox.Valid() {
		return invalidInput(ErrInvalidBounds)
	}
	d.Bounds = bbox
	logger := d.cfg.logger().With("component", "voronoi.finalize", "run_id", d.RunID)
	recorder := d.cfg.recorder()

	for _, e := range d.Edges {
		d.connectDangling(e, bbox, logger)
	}

	live := d.Edges[:0]
	for _, e := range d.Edges {
		if e.Start == nil || e.End == nil {
			continue
		}
		if !clipEdge(d, e, bbox) {
			continue
		}
		if e.Start.Point.Equal(e.End.Point) {
			continue
		}
		live = append(live, e)
	}
	d.Edges = live

	for _, c := range d.Cells {
		c.Edges = c.Edges[:0]
	}
	for _, e := range d.Edges {
		if e.Left != nil {
			ce := &CellEdge{site: e.Left, edge: e, angle: cellEdgeAngle(e.Left, e)}
			e.Left.cell.Edges = append(e.Left.cell.Edges, ce)
		}
		if e.Right != nil {
			ce := &CellEdge{site: e.Right, edge: e, angle: cellEdgeAngle(e.Right, e)}
			e.Right.cell.Edges = append(e.Right.cell.Edges, ce)
		}
	}

	for _, c := range d.Cells {
		d.closeCell(c, bbox, logger, recorder)
	}

	for _, e := range d.Edges {
		e.Start.addIncident(e)
		e.End.addIncident(e)
	}

	d.finished = true
	return nil
}

// connectDangling fills in a still-open edge's missing endpoint(s) by
// intersecting the bisector of its two sites with bbox. Box-closure edges
// don't exist yet at this stage, so e.Right is always non-nil here.
func (d *Diagram) connectDangling(e *Edge, box geom.AABB, logger interface {
	Warn(string, ...any)
}) {
	if e.End != nil || e.Right == nil {
		return
	}

	lx, ly := e.Left.Point.X, e.Left.Point.Y
	rx, ry := e.Right.Point.X, e.Right.Point.Y
	fx := (lx + rx) / 2
	fy := (ly + ry) / 2

	var a, b geom.Point
	haveA := e.Start != nil
	if haveA {
		a = e.Start.Point
	}
	visible := true

	invisible := func() { visible = false }

	eps := d.cfg.Epsilon
	switch {
	case geom.Eq(ry, ly, eps):
		if geom.Less(fx, box.Min.X, eps) || geom.GreaterOrEq(fx, box.Max.X, eps) {
			invisible()
			break
		}
		if lx > rx {
			if !haveA {
				a = geom.Point{X: fx, Y: box.Max.Y}
			} else if !geom.GreaterOrEq(a.Y, box.Min.Y, eps) {
				invisible()
				break
			}
			b = geom.Point{X: fx, Y: box.Min.Y}
		} else {
			if !haveA {
				a = geom.Point{X: fx, Y: box.Min.Y}
			} else if !geom.Less(a.Y, box.Max.Y, eps) {
				invisible()
				break
			}
			b = geom.Point{X: fx, Y: box.Max.Y}
		}
	default:
		fm := (lx - rx) / (ry - ly)
		fb := fy - fm*fx
		if fm < -1 || fm > 1 {
			if lx > rx {
				if !haveA {
					a = geom.Point{X: (box.Max.Y - fb) / fm, Y: box.Max.Y}
				} else if geom.Less(a.Y, box.Min.Y, eps) {
					invisible()
					break
				}
				b = geom.Point{X: (box.Min.Y - fb) / fm, Y: box.Min.Y}
			} else {
				if !haveA {
					a = geom.Point{X: (box.Min.Y - fb) / fm, Y: box.Min.Y}
				} else if !geom.Less(a.Y, box.Max.Y, eps) {
					invisible()
					break
				}
				b = geom.Point{X: (box.Max.Y - fb) / fm, Y: box.Max.Y}
			}
		} else {
			if ly > ry {
				if !haveA {
					a = geom.Point{X: box.Min.X, Y: fm*box.Min.X + fb}
				} else if geom.GreaterOrEq(a.X, box.Max.X, eps) {
					invisible()
					break
				}
				b = geom.Point{X: box.Max.X, Y: fm*box.Max.X + fb}
			} else {
				if !haveA {
					a = geom.Point{X: box.Max.X, Y: fm*box.Max.X + fb}
				} else if geom.Less(a.X, box.Min.X, eps) {
					invisible()
					break
				}
				b = geom.Point{X: box.Min.X, Y: fm*box.Min.X + fb}
			}
		}
	}

	if !visible {
		e.Start, e.End = nil, nil
		logger.Warn("dropping invisible edge", "left_site", e.Left.ID, "right_site", e.Right.ID)
		return
	}

	if !haveA {
		e.Start = d.newVertex(a)
	}
	e.End = d.newVertex(b)
}

// clipEdge applies the Liang-Barsky clip to e in place, replacing its
// endpoints with new Vertices when the clip moves them. Returns false if
// the segment lies entirely outside box.
func clipEdge(d *Diagram, e *Edge, box geom.AABB) bool {
	x0, y0 := e.Start.Point.X, e.Start.Point.Y
	x1, y1 := e.End.Point.X, e.End.Point.Y
	dx := x1 - x0
	dy := y1 - y0

	t0, t1 := 0.0, 1.0
	accept := true

	clip := func(p, q float64) {
		if !accept {
			return
		}
		switch {
		case p == 0:
			if q < 0 {
				accept = false
			}
		case p < 0:
			r := q / p
			if r > t1 {
				accept = false
			} else if r > t0 {
				t0 = r
			}
		default:
			r := q / p
			if r < t0 {
				accept = false
			} else if r < t1 {
				t1 = r
			}
		}
	}

	clip(-dx, x0-box.Min.X)
	clip(dx, box.Max.X-x0)
	clip(-dy, y0-box.Min.Y)
	clip(dy, box.Max.Y-y0)

	if !accept {
		return false
	}
	if t0 > 0 {
		e.Start = d.newVertex(geom.Point{X: x0 + t0*dx, Y: y0 + t0*dy})
	}
	if t1 < 1 {
		e.End = d.newVertex(geom.Point{X: x0 + t1*dx, Y: y0 + t1*dy})
	}
	return true
}

// closeCell sorts c's half-edges counter-clockwise and fabricates
// box-boundary edges across any gaps. A cell whose walk cannot land on a
// wall, or that exceeds the shared closure-walk cap, is dropped (left
// unclosed, diagnostics recorded) rather than failing the whole finalize
// call.
func (d *Diagram) closeCell(c *Cell, box geom.AABB, logger interface {
	Warn(string, ...any)
}, recorder Recorder) {
	if len(c.Edges) == 0 {
		if len(d.Cells) == 1 {
			// A lone site's cell is the whole box, walked counter-clockwise.
			corners := []geom.Point{box.Min, {X: box.Max.X, Y: box.Min.Y}, box.Max, {X: box.Min.X, Y: box.Max.Y}}
			for i, p := range corners {
				fab := &Edge{Left: c.Site, Start: d.newVertex(p), End: d.newVertex(corners[(i+1)%4]), fabricated: true}
				d.Edges = append(d.Edges, fab)
				c.Edges = append(c.Edges, &CellEdge{site: c.Site, edge: fab, angle: cellEdgeAngle(c.Site, fab)})
			}
			c.closed = true
		}
		return
	}
	sort.Slice(c.Edges, func(i, j int) bool { return c.Edges[i].angle < c.Edges[j].angle })

	n := len(c.Edges)
	var closed []*CellEdge
	steps := 0

	drop := func(reason string) {
		logger.Warn("dropping cell: "+reason, "site_id", c.Site.ID)
		d.Diagnostics.DroppedCells++
		d.Diagnostics.DroppedCellSiteIDs = append(d.Diagnostics.DroppedCellSiteIDs, c.Site.ID)
		recorder.CellDropped()
		c.closed = false
		c.Edges = nil
	}

	for i := 0; i < n; i++ {
		cur := c.Edges[i]
		next := c.Edges[(i+1)%n]
		closed = append(closed, cur)

		end := cur.End()
		target := next.Start()
		if end.Equal(target) {
			continue
		}

		endWall := wallOf(end, box, d.cfg.Epsilon)
		if endWall == wallNone {
			drop("fabricated edge endpoint not on any wall")
			return
		}

		cursor := end
		for {
			if steps >= d.cfg.ClosureWalkCap {
				d.Diagnostics.ClosureCapHits++
				recorder.ClosureCapHit()
				drop("closure walk exceeded cap")
				return
			}
			steps++

			targetWall := wallOf(target, box, d.cfg.Epsilon)
			if targetWall == wallNone {
				drop("fabricated edge endpoint not on any wall")
				return
			}
			nextPoint := closureStep(cursor, endWall, target, targetWall, box)

			fab := &Edge{Left: c.Site, Start: d.newVertex(cursor), End: d.newVertex(nextPoint), fabricated: true}
			d.Edges = append(d.Edges, fab)
			closed = append(closed, &CellEdge{site: c.Site, edge: fab, angle: cellEdgeAngle(c.Site, fab)})

			if nextPoint.Equal(target) {
				break
			}
			cursor = nextPoint
			endWall = wallOf(cursor, box, d.cfg.Epsilon)
			if endWall == wallNone {
				drop("fabricated corner not on any wall")
				return
			}
		}
	}

	c.Edges = closed
	c.closed = true
}
