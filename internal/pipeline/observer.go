package pipeline

import (
	"log/slog"
	"sync/atomic"
)

// Stage names reported to observers.
const (
	StageRead     = "read"
	StageResolve  = "resolve"
	StageAssemble = "assemble"
	StageEmit     = "emit"
)

// Observer receives progress callbacks as the pipeline advances. Callbacks
// may be invoked concurrently and must be safe for concurrent use.
type Observer interface {
	OnStart(stage string, total int)
	OnProgress(stage string, done int)
	OnDone(stage string)
}

// NopObserver discards all progress callbacks.
type NopObserver struct{}

func (NopObserver) OnStart(string, int)    {}
func (NopObserver) OnProgress(string, int) {}
func (NopObserver) OnDone(string)          {}

// LogObserver logs stage progress, sampling progress callbacks so long
// stages do not flood the log.
type LogObserver struct {
	logger *slog.Logger
	every  int
	total  atomic.Int64
}

// NewLogObserver returns an observer logging roughly one line per every
// completed items. Values below 1 log every item.
func NewLogObserver(logger *slog.Logger, every int) *LogObserver {
	if every < 1 {
		every = 1
	}
	return &LogObserver{logger: logger, every: every}
}

func (o *LogObserver) OnStart(stage string, total int) {
	o.total.Store(int64(total))
	o.logger.Info("stage started", "stage", stage, "total", total)
}

func (o *LogObserver) OnProgress(stage string, done int) {
	if done%o.every != 0 {
		return
	}
	o.logger.Info("stage progress", "stage", stage, "done", done, "total", o.total.Load())
}

func (o *LogObserver) OnDone(stage string) {
	o.logger.Info("stage finished", "stage", stage)
}
