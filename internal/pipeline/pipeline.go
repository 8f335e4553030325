// Package pipeline orchestrates a full dataset run: read the annual
// document, resolve station names, assemble validated stations, and emit
// the forward-filled price series artifact.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/blackdede/carbura/internal/domain"
	"github.com/blackdede/carbura/internal/observability"
)

// Source yields the raw station records of one annual dataset.
type Source interface {
	ReadAll(ctx context.Context) ([]domain.RawStationRecord, error)
}

// Emitter publishes a finished heatmap somewhere durable.
type Emitter interface {
	Emit(ctx context.Context, heatmap domain.Heatmap) error
}

// Options tunes a pipeline run.
type Options struct {
	// Workers bounds the name lookup pool; below 1 uses DefaultWorkers.
	Workers int
	// WindowDays is the series length; below 1 uses the default window.
	WindowDays int
	// Anchor is the exclusive end of the window. Zero means today.
	Anchor time.Time
	// Observer receives stage progress. Nil means no reporting.
	Observer Observer
}

// Pipeline wires a source, an optional name resolver, and one or more
// emitters into a single run.
type Pipeline struct {
	source   Source
	resolver domain.NameResolver // nil disables lookups
	emitters []Emitter
	opts     Options
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New builds a pipeline. A nil resolver skips name resolution entirely.
func New(source Source, resolver domain.NameResolver, emitters []Emitter, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if opts.WindowDays < 1 {
		opts.WindowDays = domain.DefaultWindowDays
	}
	return &Pipeline{
		source:   source,
		resolver: resolver,
		emitters: emitters,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes one complete pass over the dataset. The run fails when the
// source cannot be read or any emitter rejects the artifact; name lookups
// never fail a run.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.metrics.PipelineRunning.Set(1)
	defer func() {
		p.metrics.PipelineRunning.Set(0)
		p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	obs := p.opts.Observer

	obs.OnStart(StageRead, 0)
	records, err := p.source.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	obs.OnDone(StageRead)
	p.metrics.RecordsRead.Add(float64(len(records)))
	p.logger.Info("dataset read", "records", len(records))

	names := p.resolveNames(ctx, records)

	obs.OnStart(StageAssemble, len(records))
	stations, report := domain.AssembleAll(records, names)
	obs.OnDone(StageAssemble)
	p.recordAssembly(report)

	window := p.window()
	heatmap := domain.BuildHeatmap(stations, window)

	obs.OnStart(StageEmit, len(heatmap.Stations))
	for _, emitter := range p.emitters {
		if err := emitter.Emit(ctx, heatmap); err != nil {
			return fmt.Errorf("emit heatmap: %w", err)
		}
	}
	obs.OnDone(StageEmit)
	p.metrics.StationsEmitted.Add(float64(len(heatmap.Stations)))

	p.ready.Store(true)
	p.logger.Info("run complete",
		"stations", len(heatmap.Stations),
		"window_days", len(window),
		"duration", time.Since(start))
	return nil
}

// CheckReadiness reports whether at least one run has completed.
func (p *Pipeline) CheckReadiness(context.Context) error {
	if !p.ready.Load() {
		return fmt.Errorf("no completed run yet")
	}
	return nil
}

func (p *Pipeline) resolveNames(ctx context.Context, records []domain.RawStationRecord) map[int]string {
	if p.resolver == nil {
		p.metrics.LookupEnabled.Set(0)
		return nil
	}
	p.metrics.LookupEnabled.Set(1)

	ids := make([]int, 0, len(records))
	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		ids = append(ids, r.ID)
	}

	pool := NewNamePool(p.resolver, p.opts.Workers, p.logger, p.metrics)
	names := pool.ResolveAll(ctx, ids, p.opts.Observer)
	p.logger.Info("names resolved", "requested", len(ids), "resolved", len(names))
	return names
}

func (p *Pipeline) recordAssembly(report domain.DropReport) {
	p.metrics.StationsAssembled.Add(float64(report.Retained))
	for reason, n := range report.Dropped {
		p.metrics.StationsDropped.WithLabelValues(string(reason)).Add(float64(n))
	}
	p.logger.Info("stations assembled",
		"input", report.Input,
		"retained", report.Retained,
		"dropped", report.Input-report.Retained)
	for reason, n := range report.Dropped {
		p.logger.Debug("drop reason", "reason", string(reason), "count", n)
	}
}

func (p *Pipeline) window() []string {
	if p.opts.Anchor.IsZero() {
		return domain.DefaultWindow(p.opts.WindowDays)
	}
	return domain.Window(p.opts.Anchor, p.opts.WindowDays)
}
