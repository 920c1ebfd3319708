// Package pipeline runs one batch ingest: extract the watch-history export,
// normalize it into WatchEvents, and replace the persisted dataset.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/watchlog/internal/history"
	"github.com/runnerr0/watchlog/internal/logger"
	"github.com/runnerr0/watchlog/internal/metrics"
	"github.com/runnerr0/watchlog/internal/storage"
)

// Result reports what one run did.
type Result struct {
	RunID      string        `json:"run_id"`
	Input      string        `json:"input"`
	Output     string        `json:"output"`
	Extracted  int           `json:"extracted"`
	Normalized int           `json:"normalized"`
	Dropped    int           `json:"dropped"`
	Duration   time.Duration `json:"duration_ns"`
}

// Pipeline wires the ingest stages to a store. Log and Metrics are optional.
type Pipeline struct {
	Store   storage.Store
	Log     *logger.Logger
	Metrics *metrics.Metrics
}

// New constructs a Pipeline. A nil log falls back to the "pipeline" child of
// the root logger.
func New(store storage.Store, log *logger.Logger, m *metrics.Metrics) *Pipeline {
	if store == nil {
		panic("pipeline.New requires a non nil Store")
	}
	if log == nil {
		log = logger.Named("pipeline")
	}
	return &Pipeline{Store: store, Log: log, Metrics: m}
}

// Run ingests the export at inputPath. A missing or unreadable source fails
// with a *history.DataSourceError and leaves the store untouched.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:  uuid.NewString(),
		Input:  inputPath,
		Output: p.Store.Path(),
	}
	log := p.Log.With().Str("run_id", res.RunID).Logger()

	raws, err := history.ExtractFile(inputPath)
	if err != nil {
		p.observe("error", start)
		log.Error().Err(err).Str("input", inputPath).Msg("extract failed")
		return nil, err
	}
	res.Extracted = len(raws)
	log.Debug().Int("records", res.Extracted).Msg("extracted")

	if err := ctx.Err(); err != nil {
		p.observe("error", start)
		return nil, err
	}

	norm := history.Normalize(raws)
	res.Normalized = len(norm.Events)
	res.Dropped = norm.Dropped
	if res.Dropped > 0 {
		log.Warn().Int("dropped", res.Dropped).Msg("records with unparseable timestamps dropped")
	}

	if err := p.Store.Save(ctx, norm.Events); err != nil {
		p.observe("error", start)
		log.Error().Err(err).Str("output", res.Output).Msg("save failed")
		return nil, fmt.Errorf("save events: %w", err)
	}

	res.Duration = time.Since(start)
	p.count(res)
	p.observe("ok", start)

	log.Info().
		Int("extracted", res.Extracted).
		Int("normalized", res.Normalized).
		Int("dropped", res.Dropped).
		Str("output", res.Output).
		Dur("took", res.Duration).
		Msg("ingest complete")

	return res, nil
}

func (p *Pipeline) count(res *Result) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.IngestRecords.WithLabelValues("extracted").Add(float64(res.Extracted))
	p.Metrics.IngestRecords.WithLabelValues("normalized").Add(float64(res.Normalized))
	p.Metrics.IngestRecords.WithLabelValues("dropped").Add(float64(res.Dropped))
}

func (p *Pipeline) observe(result string, start time.Time) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.IngestRuns.WithLabelValues(result).Inc()
	p.Metrics.IngestDur.Observe(time.Since(start).Seconds())
}
