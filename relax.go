package voronoi

import (
	"context"

	"github.com/sweepline/voronoi/geom"
)

// GetRelaxedSites computes Lloyd relaxation: given a finished diagram and a
// blending factor t in [0,1], returns one new site position per cell,
// interpolated between the site and its cell's centroid. Requires the
// diagram be finished; otherwise returns ErrNotFinished and no sites.
func (d *Diagram) GetRelaxedSites(t float64) ([]geom.Point, error) {
	if !d.finished {
		return nil, invalidInput(ErrNotFinished)
	}

	out := make([]geom.Point, len(d.Sites))
	for i, s := range d.Sites {
		c := s.cell
		if c == nil || !c.closed {
			out[i] = s.Point
			continue
		}
		centroid := c.Centroid()
		out[i] = geom.Point{
			X: (1-t)*s.Point.X + t*centroid.X,
			Y: (1-t)*s.Point.Y + t*centroid.Y,
		}
	}
	return out, nil
}

// Lloyd runs iterations rounds of Lloyd relaxation starting from
// diagram's current sites, recomputing a fresh Diagram each round with
// cfg and bbox held fixed, and returns every intermediate Diagram
// (including the seed) in order. It's a batch convenience built from
// GetRelaxedSites/Compute; it does not change GetRelaxedSites' single-step
// contract.
func Lloyd(ctx context.Context, diagram *Diagram, t float64, iterations int, bbox geom.AABB, cfg Config) ([]*Diagram, error) {
	history := make([]*Diagram, 0, iterations+1)
	history = append(history, diagram)

	current := diagram
	for i := 0; i < iterations; i++ {
		sites, err := current.GetRelaxedSites(t)
		if err != nil {
			return history, err
		}
		next, err := Compute(ctx, sites, bbox, cfg)
		if err != nil {
			return history, err
		}
		history = append(history, next)
		current = next
	}
	return history, nil
}
