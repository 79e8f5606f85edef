package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeDiagramEndToEnd(t *testing.T) {
	path := writeFixture(t, "sites.json", jsonFixture)
	diagram, err := computeDiagram(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, diagram.Sites, 2)

	s := diagramSummary(diagram)
	require.Equal(t, 2, s.Sites)
	require.Equal(t, 2, s.Cells)
	require.NotEmpty(t, s.RunID)
}

func TestComputeDiagramPropagatesLoadErrors(t *testing.T) {
	_, err := computeDiagram(context.Background(), "/nonexistent/sites.json")
	require.Error(t, err)
}
