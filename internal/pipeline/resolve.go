package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/blackdede/carbura/internal/domain"
	"github.com/blackdede/carbura/internal/observability"
)

// DefaultWorkers bounds concurrent name lookups when no explicit worker
// count is configured.
const DefaultWorkers = 150

// Lookup outcome labels recorded on metrics.
const (
	lookupOutcomeSuccess = "success"
	lookupOutcomeEmpty   = "empty"
	lookupOutcomeError   = "error"
)

// NamePool resolves station names concurrently with a bounded worker pool.
// Lookups are best effort: a failed or empty lookup leaves the station
// nameless without failing the run.
type NamePool struct {
	resolver domain.NameResolver
	workers  int
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewNamePool builds a pool around resolver. Worker counts below 1 fall
// back to DefaultWorkers.
func NewNamePool(resolver domain.NameResolver, workers int, logger *slog.Logger, metrics *observability.Metrics) *NamePool {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &NamePool{
		resolver: resolver,
		workers:  workers,
		logger:   logger,
		metrics:  metrics,
	}
}

// ResolveAll looks up every id and returns the names that resolved, keyed
// by station id. Ids whose lookup failed or returned nothing are absent
// from the result, so completion order never affects which station a name
// lands on.
func (p *NamePool) ResolveAll(ctx context.Context, ids []int, obs Observer) map[int]string {
	names := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	obs.OnStart(StageResolve, len(ids))
	defer obs.OnDone(StageResolve)

	jobs := make(chan int)

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		done int
	)

	workers := p.workers
	if workers > len(ids) {
		workers = len(ids)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				name, ok := p.resolveOne(ctx, id)

				mu.Lock()
				if ok {
					names[id] = name
				}
				done++
				n := done
				mu.Unlock()

				obs.OnProgress(StageResolve, n)
			}
		}()
	}

	for _, id := range ids {
		select {
		case jobs <- id:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return names
		}
	}
	close(jobs)
	wg.Wait()

	return names
}

func (p *NamePool) resolveOne(ctx context.Context, id int) (string, bool) {
	start := time.Now()
	name, err := p.resolver.ResolveName(ctx, id)
	p.metrics.LookupDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		p.metrics.LookupRequests.WithLabelValues(lookupOutcomeError).Inc()
		p.logger.Debug("name lookup failed", "station_id", id, "error", err)
		return "", false
	case name == "":
		p.metrics.LookupRequests.WithLabelValues(lookupOutcomeEmpty).Inc()
		return "", false
	default:
		p.metrics.LookupRequests.WithLabelValues(lookupOutcomeSuccess).Inc()
		return name, true
	}
}
