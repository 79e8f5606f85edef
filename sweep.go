package voronoi

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sweepline/voronoi/geom"
	"github.com/sweepline/voronoi/internal/slab"
	"github.com/sweepline/voronoi/rbtree"
)

// sweep bundles the mutable state of one Compute call: the beachline, the
// circle-event queue, the generational arenas backing their weak
// cross-references, and the Diagram being built.
type sweep struct {
	diagram *Diagram
	beach   *beachline
	queue   *eventQueue

	arcs   *slab.Arena[*arc]
	events *slab.Arena[*circleEvent]

	cfg      Config
	recorder Recorder
	logger   *slog.Logger
}

func newSweep(diagram *Diagram, cfg Config) *sweep {
	return &sweep{
		diagram:  diagram,
		beach:    newBeachline(cfg.Epsilon),
		queue:    newEventQueue(cfg.Epsilon),
		arcs:     slab.NewArena[*arc](),
		events:   slab.NewArena[*circleEvent](),
		cfg:      cfg,
		recorder: cfg.recorder(),
		logger:   cfg.logger(),
	}
}

// recordCollapse logs and counts a failed setStart/setEnd as a
// NumericCollapse: a second, inconsistent write attempt on an edge's
// endpoints that's absorbed rather than overwriting existing state (see
// DESIGN.md open question 1).
func (sw *sweep) recordCollapse(ok bool, left, right *Site) {
	if ok {
		return
	}
	sw.logger.Warn("numeric collapse: discarding inconsistent edge write",
		"left_site", left.ID, "right_site", right.ID)
	sw.diagram.Diagnostics.AbsorbedCollapses++
	sw.recorder.NumericCollapseAbsorbed()
}

// makeArc allocates an arc, registers it in the arc arena, and records its
// own handle so its circle events can refer back to it and
// splitArcCase/fireCircleEvent can release it later.
func (sw *sweep) makeArc(site *Site, edge *Edge) *arc {
	a := &arc{site: site, edge: edge}
	a.self = sw.arcs.Put(a)
	return a
}

// Compute runs Fortune's sweep over points within bbox and returns a
// finished Diagram. Sites are deduplicated after sorting: a point equal
// (within geom.Epsilon) to the last kept one is skipped. Site IDs follow
// sweep order (descending y, then descending x), not input order.
func Compute(ctx context.Context, points []geom.Point, bbox geom.AABB, cfg Config) (*Diagram, error) {
	if len(points) == 0 {
		return nil, invalidInput(ErrEmptySites)
	}
	if !bbox.Valid() {
		return nil, invalidInput(ErrInvalidBounds)
	}
	if cfg.Epsilon == 0 {
		cfg = DefaultConfig()
	}

	runID := uuid.NewString()
	logger := cfg.logger().With("component", "voronoi", "run_id", runID)
	recorder := cfg.recorder()

	_, end := recorder.ComputeSpan(ctx, runID)
	start := time.Now()

	diagram := &Diagram{Bounds: bbox, RunID: runID, cfg: cfg}
	sw := newSweep(diagram, cfg)

	sorted := make([]geom.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return geom.SiteOrder(sorted[i], sorted[j]) })

	idx := 0
	var lastProcessed *geom.Point
	processed := 0

	for idx < len(sorted) || !sw.queue.isEmpty() {
		var nextSite *geom.Point
		if idx < len(sorted) {
			nextSite = &sorted[idx]
		}
		ev := sw.queue.first()

		useSite := false
		switch {
		case nextSite != nil && ev != nil:
			useSite = geom.SiteOrder(*nextSite, ev.point)
		case nextSite != nil:
			useSite = true
		case ev == nil:
			// nothing left on either side; loop condition already
			// guards this, but keep the switch exhaustive.
		}

		if useSite {
			pt := sorted[idx]
			idx++
			if lastProcessed != nil && lastProcessed.Equal(pt) {
				continue
			}
			lastProcessed = &pt

			site := &Site{ID: len(diagram.Sites), Point: pt}
			diagram.Sites = append(diagram.Sites, site)
			cell := &Cell{Site: site}
			site.cell = cell
			diagram.Cells = append(diagram.Cells, cell)

			sw.addArc(site)
			processed++
			recorder.SitesProcessed(1)
		} else {
			recorder.CircleEventFired()
			sw.fireCircleEvent(ev)
		}
	}

	logger.Debug("sweep complete", "sites", processed, "edges", len(diagram.Edges))

	if err := diagram.Finish(bbox); err != nil {
		end(processed, err)
		return nil, err
	}

	diagram.ExecTime = time.Since(start)
	recorder.ComputeDuration(diagram.ExecTime)
	end(processed, nil)

	return diagram, nil
}

// addArc performs site-event handling: locate the arc
// (or pair of arcs) the new site lands under, then either split a single
// arc in three, or settle the new arc between two arcs that already share
// an exact breakpoint.
func (sw *sweep) addArc(site *Site) {
	if sw.beach.isEmpty() {
		a := sw.makeArc(site, nil)
		sw.beach.insertAfter(nil, a)
		return
	}

	directrix := site.Point.Y
	node := sw.beach.arcAt(site.Point.X, directrix)
	found := node.Value

	// Trailing co-linear case: every existing arc sits exactly on the
	// current directrix (degenerate parabolas), and this site continues
	// the same horizontal run. The ordinary split produces an inverted
	// breakpoint pair, so it's handled directly: the new
	// site becomes the new extreme arc on whichever side it borders.
	if geom.Eq(found.site.Point.Y, directrix, sw.cfg.Epsilon) {
		if node.Prev() == nil && geom.LessOrEq(site.Point.X, found.site.Point.X, sw.cfg.Epsilon) {
			sw.insertColinearExtreme(found, site, true)
			return
		}
		if node.Next() == nil && geom.GreaterOrEq(site.Point.X, found.site.Point.X, sw.cfg.Epsilon) {
			sw.insertColinearExtreme(found, site, false)
			return
		}
	}

	lb := leftBreakpoint(node, directrix, sw.cfg.Epsilon)
	rb := rightBreakpoint(node, directrix, sw.cfg.Epsilon)

	onLeftEdge := geom.Eq(site.Point.X, lb, sw.cfg.Epsilon) && node.Prev() != nil
	onRightEdge := geom.Eq(site.Point.X, rb, sw.cfg.Epsilon) && node.Next() != nil

	switch {
	case onLeftEdge:
		sw.twoArcCase(node.Prev().Value, found, site)
	case onRightEdge:
		sw.twoArcCase(found, node.Next().Value, site)
	default:
		sw.splitArcCase(node, site)
	}
}

// insertColinearExtreme inserts site as a new leftmost (left=true) or
// rightmost (left=false) arc next to an existing degenerate run, wiring a
// single open edge between them with no endpoint yet.
func (sw *sweep) insertColinearExtreme(neighbor *arc, site *Site, left bool) {
	edge := sw.diagram.newEdge(neighbor.site, site)
	if left {
		newArc := sw.makeArc(site, nil)
		sw.beach.insertAfter(nil, newArc)
		neighbor.edge = edge
	} else {
		newArc := sw.makeArc(site, edge)
		sw.beach.insertAfter(neighbor.node, newArc)
	}
}

// splitArcCase handles the "site strictly inside one arc"
// case: found is replaced by existing | new | existingCopy, and the new
// edge traced between the two original-site arcs is attached to the new
// arc's and the right copy's left breakpoints.
func (sw *sweep) splitArcCase(node *rbtree.Node[*arc], site *Site) {
	found := node.Value
	sw.detachCircleEvent(found)

	prevAnchor := node.Prev()
	leftCopy := sw.makeArc(found.site, found.edge)
	newArc := sw.makeArc(site, nil)
	rightCopy := sw.makeArc(found.site, nil)

	sw.beach.remove(found)
	sw.arcs.Release(found.self)

	sw.beach.insertAfter(prevAnchor, leftCopy)
	sw.beach.insertAfter(leftCopy.node, newArc)
	sw.beach.insertAfter(newArc.node, rightCopy)

	edge := sw.diagram.newEdge(found.site, site)
	newArc.edge = edge
	rightCopy.edge = edge

	sw.attachCircleEvent(leftCopy)
	sw.attachCircleEvent(rightCopy)
}

// twoArcCase handles the "site lands exactly on the breakpoint
// shared by two distinct arcs" case: the edge between left and right
// terminates at the new site's circumcenter with the two neighbors, and
// two fresh edges are opened from there.
func (sw *sweep) twoArcCase(left, right *arc, site *Site) {
	sw.detachCircleEvent(left)
	sw.detachCircleEvent(right)

	vertex := sw.circumcenterVertex(left.site, site, right.site)

	if vertex != nil {
		if existing := right.edge; existing != nil {
			sw.recordCollapse(existing.setStart(left.site, right.site, vertex), left.site, right.site)
		}
	}

	mid := sw.makeArc(site, sw.diagram.newEdge(left.site, site))
	sw.beach.insertAfter(left.node, mid)

	newRightEdge := sw.diagram.newEdge(site, right.site)
	right.edge = newRightEdge

	if vertex != nil {
		sw.recordCollapse(mid.edge.setEnd(left.site, site, vertex), left.site, site)
		sw.recordCollapse(newRightEdge.setEnd(site, right.site, vertex), site, right.site)
	}

	sw.attachCircleEvent(left)
	sw.attachCircleEvent(right)
}

// circumcenterVertex computes the circumcenter of three sites as a new
// Diagram Vertex, absorbing the collinear degeneracy as a NumericCollapse
// rather than failing the sweep.
func (sw *sweep) circumcenterVertex(a, b, c *Site) *Vertex {
	tri := geom.Triangle{A: a.Point, B: b.Point, C: c.Point}
	center, err := tri.Circumcenter()
	if err != nil {
		sw.logger.Warn("numeric collapse: collinear circumcenter", "site_a", a.ID, "site_b", b.ID, "site_c", c.ID)
		sw.diagram.Diagnostics.AbsorbedCollapses++
		sw.recorder.NumericCollapseAbsorbed()
		return nil
	}
	return sw.diagram.newVertex(center)
}

// fireCircleEvent handles a circle event collapsing an arc, including
// the co-incident run: every adjacent arc whose own pending
// event collapses to the same point as ev disappears in the same step.
func (sw *sweep) fireCircleEvent(ev *circleEvent) {
	arcVal, ok := sw.arcs.Get(ev.arcRef)
	if !ok {
		sw.queue.remove(ev)
		return
	}

	run := []*arc{arcVal}
	for {
		cand := prevArc(run[0])
		if cand == nil || !sw.sharesCollapse(cand, ev) {
			break
		}
		run = append([]*arc{cand}, run...)
	}
	for {
		cand := nextArc(run[len(run)-1])
		if cand == nil || !sw.sharesCollapse(cand, ev) {
			break
		}
		run = append(run, cand)
	}

	vertex := sw.diagram.newVertex(geom.Point{X: ev.point.X, Y: ev.ycenter})

	leftSurv := prevArc(run[0])
	rightSurv := nextArc(run[len(run)-1])

	// Every breakpoint of the run, including the two it shares with the
	// surviving neighbors, meets at vertex.
	chain := append([]*arc{leftSurv}, run...)
	chain = append(chain, rightSurv)
	for i := 0; i+1 < len(chain); i++ {
		left, right := chain[i], chain[i+1]
		if left != nil && right != nil && right.edge != nil {
			sw.recordCollapse(right.edge.setStart(left.site, right.site, vertex), left.site, right.site)
		}
	}

	sw.detachCircleEvent(leftSurv)
	sw.detachCircleEvent(rightSurv)

	for _, victim := range run {
		sw.detachCircleEvent(victim)
		sw.beach.remove(victim)
		sw.arcs.Release(victim.self)
	}

	if leftSurv != nil && rightSurv != nil {
		edge := sw.diagram.newEdge(leftSurv.site, rightSurv.site)
		sw.recordCollapse(edge.setEnd(leftSurv.site, rightSurv.site, vertex), leftSurv.site, rightSurv.site)
		rightSurv.edge = edge

		sw.attachCircleEvent(leftSurv)
		sw.attachCircleEvent(rightSurv)
	}
}

// sharesCollapse reports whether candidate currently has a pending circle
// event collapsing to the same point as ev (within epsilon), the
// condition for folding it into the same co-incident run.
func (sw *sweep) sharesCollapse(candidate *arc, ev *circleEvent) bool {
	other, ok := sw.events.Get(candidate.event)
	if !ok {
		return false
	}
	return geom.Eq(other.point.Y, ev.point.Y, sw.cfg.Epsilon) && geom.Eq(other.point.X, ev.point.X, sw.cfg.Epsilon)
}

// detachCircleEvent cancels a's pending circle event, if any, releasing
// its arena slot and removing it from the queue.
func (sw *sweep) detachCircleEvent(a *arc) {
	if a == nil {
		return
	}
	ev, ok := sw.events.Get(a.event)
	if !ok {
		a.event = slab.Handle{}
		return
	}
	sw.queue.remove(ev)
	sw.events.Release(a.event)
	a.event = slab.Handle{}
	sw.recorder.CircleEventInvalidated()
}

// attachCircleEvent computes a's circumcircle with its current beachline
// neighbors and, if the three sites turn clockwise sharply enough (beyond
// CircleOrientationEpsilon), schedules the resulting circle event.
func (sw *sweep) attachCircleEvent(a *arc) {
	if a == nil {
		return
	}
	left := prevArc(a)
	right := nextArc(a)
	if left == nil || right == nil {
		return
	}
	if left.site == right.site {
		return
	}

	siteX, siteY := a.site.Point.X, a.site.Point.Y
	ax := right.site.Point.X - siteX
	ay := right.site.Point.Y - siteY
	ccx := left.site.Point.X - siteX
	ccy := left.site.Point.Y - siteY

	d := 2 * (ax*ccy - ay*ccx)
	if d >= sw.cfg.CircleOrientationEpsilon {
		return
	}

	a2 := ax*ax + ay*ay
	c2 := ccx*ccx + ccy*ccy

	ux := (ccy*a2 - ay*c2) / d
	uy := (ax*c2 - ccx*a2) / d
	r := math.Sqrt(ux*ux + uy*uy)

	ev := &circleEvent{
		point:   geom.Point{X: siteX + ux, Y: siteY + uy - r},
		ycenter: siteY + uy,
		middle:  a.site,
	}
	ev.arcRef = a.self

	handle := sw.events.Put(ev)
	a.event = handle
	sw.queue.insert(ev)
}
