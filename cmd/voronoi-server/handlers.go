package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sweepline/voronoi"
)

// server bundles the engine configuration and validator shared by every
// handler.
type server struct {
	cfg      voronoi.Config
	validate *validator.Validate
	// batchConcurrency bounds how many Compute calls a /v1/batch request
	// runs in parallel: the sweep itself stays single-threaded, but
	// independent diagrams fan out.
	batchConcurrency int
}

func newServer(tp *telemetryProvider) *server {
	cfg := voronoi.DefaultConfig()
	cfg.Recorder = tp.recorder
	return &server{
		cfg:              cfg,
		validate:         validator.New(),
		batchConcurrency: 4,
	}
}

func toCellDTO(c *voronoi.Cell) cellDTO {
	verts := make([]pointDTO, 0, len(c.Edges))
	for _, e := range c.Edges {
		p := e.Start()
		verts = append(verts, pointDTO{X: p.X, Y: p.Y})
	}
	return cellDTO{
		SiteID:   c.Site.ID,
		Site:     pointDTO{X: c.Site.Point.X, Y: c.Site.Point.Y},
		Closed:   c.Closed(),
		Area:     c.Area(),
		Vertices: verts,
	}
}

func toDiagramResponse(d *voronoi.Diagram) diagramResponse {
	cells := make([]cellDTO, len(d.Cells))
	for i, c := range d.Cells {
		cells[i] = toCellDTO(c)
	}
	return diagramResponse{
		RunID:        d.RunID,
		ExecTimeMS:   float64(d.ExecTime.Microseconds()) / 1000,
		Cells:        cells,
		DroppedCells: d.Diagnostics.DroppedCells,
	}
}

func (s *server) computeFromRequest(ctx context.Context, sites []pointDTO, bounds boundsDTO) (*voronoi.Diagram, error) {
	return voronoi.Compute(ctx, dtoToPoints(sites), bounds.toAABB(), s.cfg)
}

// handleComputeDiagram implements POST /v1/diagram.
func (s *server) handleComputeDiagram(c *gin.Context) {
	var req diagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diagram, err := s.computeFromRequest(c.Request.Context(), req.Sites, req.Bounds)
	if err != nil {
		writeComputeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDiagramResponse(diagram))
}

// handleRelax implements POST /v1/relax.
func (s *server) handleRelax(c *gin.Context) {
	var req relaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	bbox := req.Bounds.toAABB()

	seed, err := voronoi.Compute(ctx, dtoToPoints(req.Sites), bbox, s.cfg)
	if err != nil {
		writeComputeError(c, err)
		return
	}

	history, err := voronoi.Lloyd(ctx, seed, req.T, req.Iterations, bbox, s.cfg)
	if err != nil {
		writeComputeError(c, err)
		return
	}

	steps := make([]diagramResponse, len(history))
	for i, d := range history {
		steps[i] = toDiagramResponse(d)
	}
	c.JSON(http.StatusOK, relaxResponse{Steps: steps})
}

// handleBatch implements POST /v1/batch: runs each diagram request
// concurrently, bounded by s.batchConcurrency, via errgroup. Each call's
// sweep stays single-threaded; only independent calls overlap.
func (s *server) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := make([]batchResult, len(req.Diagrams))
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(s.batchConcurrency)

	for i, dreq := range req.Diagrams {
		i, dreq := i, dreq
		g.Go(func() error {
			diagram, err := s.computeFromRequest(ctx, dreq.Sites, dreq.Bounds)
			if err != nil {
				results[i] = batchResult{Index: i, Error: err.Error()}
				return nil
			}
			resp := toDiagramResponse(diagram)
			results[i] = batchResult{Index: i, Diagram: &resp}
			return nil
		})
	}
	_ = g.Wait() // per-item errors are carried in results, not propagated

	c.JSON(http.StatusOK, batchResponse{Results: results})
}

func writeComputeError(c *gin.Context, err error) {
	var invalid *voronoi.InvalidInputError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
