package voronoi

import "errors"

// Sentinel errors. InvalidInputError is the only kind ever returned to
// the caller; the others are wrapped into it for context.
var (
	// ErrEmptySites is returned when Compute is given no sites.
	ErrEmptySites = errors.New("voronoi: site set must not be empty")
	// ErrInvalidBounds is returned when the bounding box is degenerate
	// or inverted (requires Min.X < Max.X and Min.Y < Max.Y).
	ErrInvalidBounds = errors.New("voronoi: bounding box must satisfy min.x < max.x and min.y < max.y")
	// ErrNotFinished is returned by GetRelaxedSites when Finish has not
	// run yet: relaxation requires a finished diagram.
	ErrNotFinished = errors.New("voronoi: diagram has not been finished")
)

// InvalidInputError is the only caller-visible failure kind.
// DegenerateGeometry and NumericCollapse never reach the caller as errors:
// they're absorbed, logged, and recorded in Diagram.Diagnostics instead.
type InvalidInputError struct {
	err error
}

func (e *InvalidInputError) Error() string { return e.err.Error() }
func (e *InvalidInputError) Unwrap() error { return e.err }

func invalidInput(err error) *InvalidInputError {
	return &InvalidInputError{err: err}
}
