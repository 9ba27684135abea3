package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Spok95/progbase-bot/internal/logging"
	"github.com/Spok95/progbase-bot/internal/observability"
)

type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
	log *logging.Log
}

func New(ctx context.Context, log *logging.Log) *Runner {
	if log == nil {
		log = logging.Nop()
	}
	return &Runner{ctx: ctx, log: log}
}

// Every запускает fn раз в interval до отмены контекста раннера.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.runOnce(name, fn)
			}
		}
	}()
}

func (r *Runner) runOnce(name string, fn Job) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			jobErrors.WithLabelValues(name).Inc()
			observability.CaptureErr(fmt.Errorf("panic in job %s: %v", name, rec))
		}
		jobRuns.WithLabelValues(name).Inc()
		jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()
	if err := fn(r.ctx); err != nil {
		jobErrors.WithLabelValues(name).Inc()
		r.log.Sugar.Warnw("job failed", "job", name, "err", err)
		return
	}
	jobLastSuccess.WithLabelValues(name).SetToCurrentTime()
}
