package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sweepline/voronoi"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer() (*gin.Engine, *server) {
	srv := &server{
		cfg:              voronoi.DefaultConfig(),
		validate:         validator.New(),
		batchConcurrency: 4,
	}
	router := gin.New()
	v1 := router.Group("/v1")
	v1.POST("/diagram", srv.handleComputeDiagram)
	v1.POST("/relax", srv.handleRelax)
	v1.POST("/batch", srv.handleBatch)
	return router, srv
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func squareRequest() diagramRequest {
	return diagramRequest{
		Sites: []pointDTO{
			{X: 100, Y: 100}, {X: 300, Y: 100},
			{X: 100, Y: 300}, {X: 300, Y: 300},
		},
		Bounds: boundsDTO{MinX: 0, MinY: 0, MaxX: 400, MaxY: 400},
	}
}

func TestHandleComputeDiagramReturnsCells(t *testing.T) {
	router, _ := testServer()
	w := postJSON(t, router, "/v1/diagram", squareRequest())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp diagramResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Cells) != 4 {
		t.Errorf("expected 4 cells, got %d", len(resp.Cells))
	}
	if resp.RunID == "" {
		t.Error("expected a non-empty run id")
	}
}

func TestHandleComputeDiagramRejectsEmptySites(t *testing.T) {
	router, _ := testServer()
	req := diagramRequest{Sites: nil, Bounds: boundsDTO{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}}
	w := postJSON(t, router, "/v1/diagram", req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleComputeDiagramRejectsInvertedBounds(t *testing.T) {
	router, _ := testServer()
	req := diagramRequest{
		Sites:  []pointDTO{{X: 1, Y: 1}},
		Bounds: boundsDTO{MinX: 10, MinY: 10, MaxX: 0, MaxY: 0},
	}
	w := postJSON(t, router, "/v1/diagram", req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleRelaxReturnsRequestedStepCount(t *testing.T) {
	router, _ := testServer()
	req := relaxRequest{
		Sites:      squareRequest().Sites,
		Bounds:     squareRequest().Bounds,
		Iterations: 2,
		T:          1.0,
	}
	w := postJSON(t, router, "/v1/relax", req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp relaxResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Steps) != 3 {
		t.Errorf("expected 3 steps (seed + 2 iterations), got %d", len(resp.Steps))
	}
}

func TestHandleBatchRejectsInvalidEntry(t *testing.T) {
	router, _ := testServer()
	good := squareRequest()
	bad := diagramRequest{Sites: nil, Bounds: good.Bounds}
	req := batchRequest{Diagrams: []diagramRequest{good, bad}}

	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	httpReq := httptest.NewRequest(http.MethodPost, "/v1/batch", bytes.NewReader(raw))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	// bad.Sites is empty, which fails the batch handler's struct
	// validation before any diagram is computed: the whole request is
	// rejected, matching the single-diagram endpoints' behavior.
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a batch containing an invalid entry, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleBatchAllValidSucceeds(t *testing.T) {
	router, _ := testServer()
	req := batchRequest{Diagrams: []diagramRequest{squareRequest(), squareRequest()}}
	w := postJSON(t, router, "/v1/batch", req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp batchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	for _, r := range resp.Results {
		if r.Error != "" {
			t.Errorf("unexpected error in result %d: %s", r.Index, r.Error)
		}
		if r.Diagram == nil || len(r.Diagram.Cells) != 4 {
			t.Errorf("result %d: expected a diagram with 4 cells", r.Index)
		}
	}
}
