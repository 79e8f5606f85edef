package geom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweepline/voronoi/geom"
)

func TestTriangleCircumcenter(t *testing.T) {
	tri := geom.Triangle{
		A: geom.Point{X: 0, Y: 0},
		B: geom.Point{X: 4, Y: 0},
		C: geom.Point{X: 0, Y: 4},
	}
	center, err := tri.Circumcenter()
	require.NoError(t, err)
	require.InDelta(t, 2, center.X, geom.Epsilon)
	require.InDelta(t, 2, center.Y, geom.Epsilon)
}

func TestTriangleCircumcenterCollinearReturnsError(t *testing.T) {
	tri := geom.Triangle{
		A: geom.Point{X: 0, Y: 0},
		B: geom.Point{X: 1, Y: 1},
		C: geom.Point{X: 2, Y: 2},
	}
	_, err := tri.Circumcenter()
	require.ErrorIs(t, err, geom.ErrCollinear)
}

func TestTriangleSignedAreaAndCentroid(t *testing.T) {
	tri := geom.Triangle{
		A: geom.Point{X: 0, Y: 0},
		B: geom.Point{X: 4, Y: 0},
		C: geom.Point{X: 0, Y: 4},
	}
	require.InDelta(t, 8, tri.SignedArea(), geom.Epsilon)

	centroid := tri.Centroid()
	require.InDelta(t, 4.0/3, centroid.X, geom.Epsilon)
	require.InDelta(t, 4.0/3, centroid.Y, geom.Epsilon)
}

func TestPerpendicularBisectorVerticalCase(t *testing.T) {
	_, _, ok := geom.PerpendicularBisector(geom.Point{X: 0, Y: 5}, geom.Point{X: 10, Y: 5})
	require.False(t, ok)
}

func TestPerpendicularBisector(t *testing.T) {
	slope, intercept, ok := geom.PerpendicularBisector(geom.Point{X: 0, Y: 0}, geom.Point{X: 0, Y: 4})
	require.True(t, ok)
	require.InDelta(t, 0, slope, geom.Epsilon)
	require.InDelta(t, 2, intercept, geom.Epsilon)
}
