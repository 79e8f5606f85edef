package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweepline/voronoi/geom"
)

func TestPointArithmetic(t *testing.T) {
	p := geom.Point{X: 1, Y: 2}
	q := geom.Point{X: 3, Y: -1}

	require.Equal(t, geom.Point{X: 4, Y: 1}, p.Add(q))
	require.Equal(t, geom.Point{X: -2, Y: 3}, p.Sub(q))
	require.Equal(t, geom.Point{X: 2, Y: 4}, p.Scale(2))
	require.InDelta(t, 1, p.Dot(q), geom.Epsilon)
	require.InDelta(t, -7, p.Cross(q), geom.Epsilon)
}

func TestPointDistanceTo(t *testing.T) {
	p := geom.Point{X: 0, Y: 0}
	q := geom.Point{X: 3, Y: 4}
	require.InDelta(t, 5, p.DistanceTo(q), geom.Epsilon)
}

func TestPointEqual(t *testing.T) {
	p := geom.Point{X: 1, Y: 1}
	q := geom.Point{X: 1 + geom.Epsilon/10, Y: 1}
	require.True(t, p.Equal(q))
	require.False(t, p.Equal(geom.Point{X: 2, Y: 1}))
}

func TestMidpoint(t *testing.T) {
	m := geom.Midpoint(geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 4})
	require.Equal(t, geom.Point{X: 1, Y: 2}, m)
}

func TestSiteOrder(t *testing.T) {
	higher := geom.Point{X: 5, Y: 10}
	lower := geom.Point{X: 5, Y: 1}
	require.True(t, geom.SiteOrder(higher, lower))
	require.False(t, geom.SiteOrder(lower, higher))

	rightOfTie := geom.Point{X: 9, Y: 10}
	leftOfTie := geom.Point{X: 1, Y: 10}
	require.True(t, geom.SiteOrder(rightOfTie, leftOfTie))
	require.False(t, geom.SiteOrder(leftOfTie, rightOfTie))
}

func TestEpsilonComparisons(t *testing.T) {
	require.True(t, geom.Eq(1.0, 1.0+geom.Epsilon/10, geom.Epsilon))
	require.True(t, geom.Less(1.0, 2.0, geom.Epsilon))
	require.False(t, geom.Less(2.0, 1.0, geom.Epsilon))
	require.True(t, geom.Greater(2.0, 1.0, geom.Epsilon))
	require.True(t, geom.LessOrEq(1.0, 1.0, geom.Epsilon))
	require.True(t, geom.GreaterOrEq(1.0, 1.0, geom.Epsilon))
	require.False(t, math.IsNaN(geom.Epsilon))
}
