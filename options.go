package voronoi

import (
	"log/slog"

	"github.com/sweepline/voronoi/geom"
)

// Config tunes the engine's epsilon thresholds, logging, and telemetry.
// The zero value is not ready to use; call DefaultConfig and override
// fields from there.
type Config struct {
	// Epsilon is used for every sign-sensitive geometric comparison
	// except the circle-orientation test.
	Epsilon float64
	// CircleOrientationEpsilon is the stricter threshold for the
	// circle-event degeneracy test.
	CircleOrientationEpsilon float64
	// ClosureWalkCap bounds the number of fabricated edges the
	// finalizer will add while closing a single cell.
	ClosureWalkCap int

	// Logger receives structured trace/warn/info logging. Defaults to
	// slog.Default() if nil.
	Logger *slog.Logger
	// Recorder receives telemetry counters/histograms/spans for a
	// Compute call. Defaults to a no-op recorder if nil.
	Recorder Recorder
}

// DefaultConfig returns production-safe defaults: geom's default Epsilon
// and CircleOrientationEpsilon constants, a closure cap of 20, and
// slog.Default() logging with a no-op telemetry recorder.
func DefaultConfig() Config {
	return Config{
		Epsilon:                  geom.Epsilon,
		CircleOrientationEpsilon: geom.CircleOrientationEpsilon,
		ClosureWalkCap:           20,
		Logger:                   slog.Default(),
		Recorder:                 noopRecorder{},
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) recorder() Recorder {
	if c.Recorder != nil {
		return c.Recorder
	}
	return noopRecorder{}
}
