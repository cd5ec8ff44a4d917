package choropleth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/popmap/internal/dataset"
	"github.com/KaramelBytes/popmap/internal/geoarea"
	"github.com/KaramelBytes/popmap/internal/logging"
)

// Sources names the input files. An empty Area path derives areas from the
// geometry instead of joining an area table.
type Sources struct {
	Population string
	Area       string
	Geometry   string
}

// Query is the widget state for one invocation.
type Query struct {
	Metric Metric
	// Range limits the map view; nil means the full data range of Metric.
	Range  *Range
	Search string
}

// Result is everything one invocation hands to the presenter.
type Result struct {
	RunID  string
	Metric Metric
	Range  Range
	// Records is the full derived table in geometry order.
	Records []CountryRecord
	// Filtered is the map view.
	Filtered    []CountryRecord
	Top         []RankRow
	Diagnostics Diagnostics
}

// Pipeline runs load, merge, derive, filter and rank for a query.
// It holds no per-run state and may be shared.
type Pipeline struct {
	loader          *dataset.Loader
	src             Sources
	log             *slog.Logger
	suggestDistance int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger; run lines carry a run_id attribute.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithSuggestDistance sets the maximum edit distance for name suggestions.
func WithSuggestDistance(n int) Option {
	return func(p *Pipeline) { p.suggestDistance = n }
}

// New returns a pipeline reading src through loader.
func New(loader *dataset.Loader, src Sources, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:          loader,
		src:             src,
		log:             logging.Discard(),
		suggestDistance: 3,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run executes one invocation. A load failure aborts the run and no partial
// result is returned.
func (p *Pipeline) Run(ctx context.Context, q Query) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	metric := q.Metric
	if metric == "" {
		metric = MetricPopulation
	}
	if _, err := ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	log := p.log.With("run_id", runID)
	start := time.Now()

	records, reports, err := p.join()
	if err != nil {
		log.Error("pipeline aborted", "err", err)
		return nil, err
	}
	diag := Diagnose(len(records), reports, p.suggestDistance)
	for _, f := range diag.Fields {
		if n := len(f.Unmatched); n > 0 {
			log.Warn("unmatched countries", "field", f.Field, "count", n, "orphans", len(f.Orphans))
		}
		if n := len(f.Duplicates); n > 0 {
			log.Warn("duplicate source rows", "field", f.Field, "count", n)
		}
	}

	rng := Bounds(records, metric)
	if q.Range != nil {
		rng = *q.Range
	}
	res := &Result{
		RunID:       runID,
		Metric:      metric,
		Range:       rng,
		Records:     records,
		Filtered:    Filter(records, metric, rng, q.Search),
		Top:         RankTable(records, metric),
		Diagnostics: diag,
	}
	log.Info("pipeline run",
		"metric", metric,
		"records", len(res.Records),
		"filtered", len(res.Filtered),
		"search", q.Search,
		"took", time.Since(start))
	return res, nil
}

// Records loads, joins and derives the full table without filtering.
func (p *Pipeline) Records(ctx context.Context) ([]CountryRecord, Diagnostics, error) {
	if err := ctx.Err(); err != nil {
		return nil, Diagnostics{}, err
	}
	records, reports, err := p.join()
	if err != nil {
		return nil, Diagnostics{}, err
	}
	return records, Diagnose(len(records), reports, p.suggestDistance), nil
}

func (p *Pipeline) join() ([]CountryRecord, []JoinReport, error) {
	geo, err := p.loader.Geometry(p.src.Geometry)
	if err != nil {
		return nil, nil, err
	}
	pop, err := p.loader.Population(p.src.Population)
	if err != nil {
		return nil, nil, err
	}
	var area Column
	if p.src.Area != "" {
		t, err := p.loader.Area(p.src.Area)
		if err != nil {
			return nil, nil, err
		}
		area = AreaColumn(t)
	} else {
		entries, err := geoarea.FromFeatures(geo.Features)
		if err != nil {
			return nil, nil, fmt.Errorf("derive areas from %s: %w", p.src.Geometry, err)
		}
		area = Column{Field: FieldArea, Values: geoarea.Values(entries)}
	}
	rows, reports := Merge(geo.Features, PopulationColumn(pop), area)
	return Derive(rows), reports, nil
}
