package main

import (
	"github.com/sweepline/voronoi/geom"
)

// pointDTO is one input site's wire representation.
type pointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// boundsDTO is the clipping/closure bounding box's wire representation.
// MaxX/MaxY carry gtfield validation against MinX/MinY so a malformed box
// fails request validation instead of voronoi.ErrInvalidBounds.
type boundsDTO struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x" validate:"gtfield=MinX"`
	MaxY float64 `json:"max_y" validate:"gtfield=MinY"`
}

func (b boundsDTO) toAABB() geom.AABB {
	return geom.AABB{
		Min: geom.Point{X: b.MinX, Y: b.MinY},
		Max: geom.Point{X: b.MaxX, Y: b.MaxY},
	}
}

func dtoToPoints(pts []pointDTO) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return out
}

// diagramRequest is POST /v1/diagram's body.
type diagramRequest struct {
	Sites  []pointDTO `json:"sites" validate:"required,min=1,dive"`
	Bounds boundsDTO  `json:"bounds" validate:"required"`
}

type cellDTO struct {
	SiteID   int        `json:"site_id"`
	Site     pointDTO   `json:"site"`
	Closed   bool       `json:"closed"`
	Area     float64    `json:"area"`
	Vertices []pointDTO `json:"vertices"`
}

type diagramResponse struct {
	RunID        string    `json:"run_id"`
	ExecTimeMS   float64   `json:"exec_time_ms"`
	Cells        []cellDTO `json:"cells"`
	DroppedCells int       `json:"dropped_cells"`
}

// relaxRequest is POST /v1/relax's body: a diagramRequest plus a relaxation
// schedule.
type relaxRequest struct {
	Sites      []pointDTO `json:"sites" validate:"required,min=1,dive"`
	Bounds     boundsDTO  `json:"bounds" validate:"required"`
	Iterations int        `json:"iterations" validate:"min=0,max=50"`
	T          float64    `json:"t" validate:"min=0,max=1"`
}

type relaxResponse struct {
	Steps []diagramResponse `json:"steps"`
}

// batchRequest is POST /v1/batch's body: independent diagram requests
// computed concurrently, bounded by the server's errgroup limit.
type batchRequest struct {
	Diagrams []diagramRequest `json:"diagrams" validate:"required,min=1,max=32,dive"`
}

type batchResponse struct {
	Results []batchResult `json:"results"`
}

type batchResult struct {
	Index   int              `json:"index"`
	Diagram *diagramResponse `json:"diagram,omitempty"`
	Error   string           `json:"error,omitempty"`
}
