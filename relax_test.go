package voronoi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweepline/voronoi"
	"github.com/sweepline/voronoi/geom"
)

func TestGetRelaxedSitesRequiresFinishedDiagram(t *testing.T) {
	points := []geom.Point{{X: 100, Y: 100}, {X: 300, Y: 300}}
	diagram, err := voronoi.Compute(context.Background(), points, unitBox, voronoi.DefaultConfig())
	require.NoError(t, err)

	// Compute always returns a finished diagram, so exercise the error
	// path through a fresh, never-computed zero value instead.
	var unfinished voronoi.Diagram
	_, err = unfinished.GetRelaxedSites(0.5)
	require.ErrorIs(t, err, voronoi.ErrNotFinished)

	relaxed, err := diagram.GetRelaxedSites(0.5)
	require.NoError(t, err)
	require.Len(t, relaxed, len(diagram.Sites))
}

func TestGetRelaxedSitesZeroTIsIdentity(t *testing.T) {
	points := []geom.Point{{X: 100, Y: 150}, {X: 300, Y: 250}, {X: 200, Y: 350}}
	diagram, err := voronoi.Compute(context.Background(), points, unitBox, voronoi.DefaultConfig())
	require.NoError(t, err)

	relaxed, err := diagram.GetRelaxedSites(0)
	require.NoError(t, err)
	for i, s := range diagram.Sites {
		require.InDelta(t, s.Point.X, relaxed[i].X, 1e-9)
		require.InDelta(t, s.Point.Y, relaxed[i].Y, 1e-9)
	}
}

func TestLloydOneStepMovesSitesTowardCentroid(t *testing.T) {
	points := []geom.Point{
		{X: 50, Y: 50}, {X: 350, Y: 50},
		{X: 50, Y: 350}, {X: 350, Y: 350},
	}
	seed, err := voronoi.Compute(context.Background(), points, unitBox, voronoi.DefaultConfig())
	require.NoError(t, err)

	history, err := voronoi.Lloyd(context.Background(), seed, 1.0, 1, unitBox, voronoi.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Empty(t, history[1].Validate())

	// A square's corner sites should be pulled toward the box center.
	for _, s := range history[1].Sites {
		require.Less(t, distanceTo(s.Point, geom.Point{X: 200, Y: 200}),
			distanceTo(seed.Sites[s.ID].Point, geom.Point{X: 200, Y: 200})+1e-6)
	}
}

func distanceTo(a, b geom.Point) float64 { return a.DistanceTo(b) }

func TestLloydZeroIterationsReturnsSeedOnly(t *testing.T) {
	points := []geom.Point{{X: 100, Y: 100}, {X: 300, Y: 300}}
	seed, err := voronoi.Compute(context.Background(), points, unitBox, voronoi.DefaultConfig())
	require.NoError(t, err)

	history, err := voronoi.Lloyd(context.Background(), seed, 0.5, 0, unitBox, voronoi.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Same(t, seed, history[0])
}
