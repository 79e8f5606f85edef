package geom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweepline/voronoi/geom"
)

func TestAABBValid(t *testing.T) {
	valid := geom.AABB{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}}
	require.True(t, valid.Valid())

	degenerate := geom.AABB{Min: geom.Point{X: 5, Y: 0}, Max: geom.Point{X: 5, Y: 10}}
	require.False(t, degenerate.Valid())

	inverted := geom.AABB{Min: geom.Point{X: 10, Y: 0}, Max: geom.Point{X: 0, Y: 10}}
	require.False(t, inverted.Valid())
}

func TestAABBDimensions(t *testing.T) {
	box := geom.AABB{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 4, Y: 3}}
	require.InDelta(t, 4, box.Width(), geom.Epsilon)
	require.InDelta(t, 3, box.Height(), geom.Epsilon)
	require.InDelta(t, 12, box.Area(), geom.Epsilon)
	require.InDelta(t, 14, box.Perimeter(), geom.Epsilon)
}

func TestAABBContains(t *testing.T) {
	box := geom.AABB{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}}
	require.True(t, box.Contains(geom.Point{X: 5, Y: 5}))
	require.True(t, box.Contains(geom.Point{X: 0, Y: 0}))
	require.True(t, box.Contains(geom.Point{X: 10, Y: 10}))
	require.False(t, box.Contains(geom.Point{X: -1, Y: 5}))
	require.False(t, box.Contains(geom.Point{X: 5, Y: 11}))
}

func TestAABBExpandToInclude(t *testing.T) {
	box := geom.AABB{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 5, Y: 5}}
	expanded := box.ExpandToInclude(geom.Point{X: 10, Y: -2})
	require.Equal(t, geom.Point{X: 0, Y: -2}, expanded.Min)
	require.Equal(t, geom.Point{X: 10, Y: 5}, expanded.Max)
}
