package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sweepline/voronoi/geom"
)

// siteSet is the on-disk shape accepted by the compute/relax/watch
// subcommands: a flat list of site coordinates plus the bounding box to
// clip and close against. YAML and JSON are both accepted; the extension
// picks the decoder.
type siteSet struct {
	Sites []struct {
		X float64 `json:"x" yaml:"x"`
		Y float64 `json:"y" yaml:"y"`
	} `json:"sites" yaml:"sites"`
	Bounds struct {
		MinX float64 `json:"min_x" yaml:"min_x"`
		MinY float64 `json:"min_y" yaml:"min_y"`
		MaxX float64 `json:"max_x" yaml:"max_x"`
		MaxY float64 `json:"max_y" yaml:"max_y"`
	} `json:"bounds" yaml:"bounds"`
}

func loadSiteSet(path string) (siteSet, error) {
	var s siteSet
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return s, fmt.Errorf("parsing %s as yaml: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &s); err != nil {
			return s, fmt.Errorf("parsing %s as json: %w", path, err)
		}
	default:
		return s, fmt.Errorf("unrecognized input extension %q (want .json, .yaml, or .yml)", ext)
	}
	return s, nil
}

func (s siteSet) points() []geom.Point {
	out := make([]geom.Point, len(s.Sites))
	for i, p := range s.Sites {
		out[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return out
}

func (s siteSet) bbox() geom.AABB {
	return geom.AABB{
		Min: geom.Point{X: s.Bounds.MinX, Y: s.Bounds.MinY},
		Max: geom.Point{X: s.Bounds.MaxX, Y: s.Bounds.MaxY},
	}
}

// summary is the JSON-serializable report printed by compute/relax/watch:
// enough of the diagram to inspect without dumping every vertex.
type summary struct {
	RunID       string  `json:"run_id"`
	Sites       int     `json:"sites"`
	Cells       int     `json:"cells"`
	ClosedCells int     `json:"closed_cells"`
	Edges       int     `json:"edges"`
	Vertices    int     `json:"vertices"`
	ExecTimeMS  float64 `json:"exec_time_ms"`
	Dropped     int     `json:"dropped_cells"`
}
