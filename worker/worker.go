package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Worker long running background worker
type Worker interface {
	Run(ctx context.Context) error
}

type OnWork func() error

// BaseJob cron driven job. Run skips a tick while the previous one is
// still going.
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true

	job.OnWork()

	job.IsRunning = false
}

// TickWorker re-runs a tick in a tight loop, backing off when the tick
// fails or reports nothing to do.
type TickWorker struct {
	Delay      time.Duration
	ErrorDelay time.Duration
}

func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err == nil {
				dur = w.delay()
			} else {
				dur = w.errorDelay()
			}
		}
	}
}

func (w *TickWorker) delay() time.Duration {
	if w.Delay > 0 {
		return w.Delay
	}
	return 100 * time.Millisecond
}

func (w *TickWorker) errorDelay() time.Duration {
	if w.ErrorDelay > 0 {
		return w.ErrorDelay
	}
	return 300 * time.Millisecond
}
