package voronoi

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Recorder receives telemetry for one Compute call: a duration is the
// bare minimum useful to a caller, but an engine built against OTel can
// report the same moment as a span plus a handful of counters instead of
// a single field the caller must poll.
type Recorder interface {
	// ComputeSpan starts a span for one Compute call and returns the
	// derived context plus a function to call when the computation
	// finishes (with the final site count and error, if any).
	ComputeSpan(ctx context.Context, runID string) (context.Context, func(siteCount int, err error))
	SitesProcessed(n int)
	CircleEventFired()
	CircleEventInvalidated()
	CellDropped()
	ClosureCapHit()
	NumericCollapseAbsorbed()
	ComputeDuration(d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ComputeSpan(ctx context.Context, _ string) (context.Context, func(int, error)) {
	return ctx, func(int, error) {}
}
func (noopRecorder) SitesProcessed(int)       {}
func (noopRecorder) CircleEventFired()        {}
func (noopRecorder) CircleEventInvalidated()  {}
func (noopRecorder) CellDropped()             {}
func (noopRecorder) ClosureCapHit()           {}
func (noopRecorder) NumericCollapseAbsorbed() {}
func (noopRecorder) ComputeDuration(time.Duration) {}

// OTelRecorder is a Recorder backed by an OpenTelemetry meter and tracer.
// cmd/voronoi-server wires this to the Prometheus exporter bridge.
type OTelRecorder struct {
	tracer trace.Tracer

	sitesProcessed          metric.Int64Counter
	circleEventsFired       metric.Int64Counter
	circleEventsInvalidated metric.Int64Counter
	cellsDropped            metric.Int64Counter
	closureCapHits          metric.Int64Counter
	numericCollapses        metric.Int64Counter
	computeDuration         metric.Float64Histogram
}

// NewOTelRecorder builds the engine's instrument set on meter, using
// tracer for the per-Compute span.
func NewOTelRecorder(meter metric.Meter, tracer trace.Tracer) (*OTelRecorder, error) {
	r := &OTelRecorder{tracer: tracer}
	var err error
	if r.sitesProcessed, err = meter.Int64Counter("voronoi.sites_processed"); err != nil {
		return nil, err
	}
	if r.circleEventsFired, err = meter.Int64Counter("voronoi.circle_events_fired"); err != nil {
		return nil, err
	}
	if r.circleEventsInvalidated, err = meter.Int64Counter("voronoi.circle_events_invalidated"); err != nil {
		return nil, err
	}
	if r.cellsDropped, err = meter.Int64Counter("voronoi.cells_dropped"); err != nil {
		return nil, err
	}
	if r.closureCapHits, err = meter.Int64Counter("voronoi.closure_cap_hits"); err != nil {
		return nil, err
	}
	if r.numericCollapses, err = meter.Int64Counter("voronoi.numeric_collapses_absorbed"); err != nil {
		return nil, err
	}
	if r.computeDuration, err = meter.Float64Histogram("voronoi.compute_duration_seconds"); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *OTelRecorder) ComputeSpan(ctx context.Context, runID string) (context.Context, func(int, error)) {
	ctx, span := r.tracer.Start(ctx, "voronoi.compute", trace.WithAttributes(
		attribute.String("voronoi.run_id", runID),
	))
	return ctx, func(siteCount int, err error) {
		span.SetAttributes(attribute.Int("voronoi.site_count", siteCount))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

func (r *OTelRecorder) SitesProcessed(n int) {
	r.sitesProcessed.Add(context.Background(), int64(n))
}
func (r *OTelRecorder) CircleEventFired() {
	r.circleEventsFired.Add(context.Background(), 1)
}
func (r *OTelRecorder) CircleEventInvalidated() {
	r.circleEventsInvalidated.Add(context.Background(), 1)
}
func (r *OTelRecorder) CellDropped() {
	r.cellsDropped.Add(context.Background(), 1)
}
func (r *OTelRecorder) ClosureCapHit() {
	r.closureCapHits.Add(context.Background(), 1)
}
func (r *OTelRecorder) NumericCollapseAbsorbed() {
	r.numericCollapses.Add(context.Background(), 1)
}
func (r *OTelRecorder) ComputeDuration(d time.Duration) {
	r.computeDuration.Record(context.Background(), d.Seconds())
}
