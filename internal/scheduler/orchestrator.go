// Package scheduler runs the periodic shipping jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shipping-management/internal/logger"
)

// Job is one unit of scheduled work. A tick is a single Run call.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Entry binds a job to a standard five-field cron expression.
type Entry struct {
	Schedule string
	Job      Job
}

type Orchestrator struct {
	entries []Entry
	cron    *cron.Cron
}

func NewOrchestrator(entries ...Entry) *Orchestrator {
	return &Orchestrator{entries: entries}
}

// Start registers every entry and starts the cron loop. Runs of the same job never
// overlap: a tick that fires while the previous one is still working is skipped.
func (o *Orchestrator) Start(ctx context.Context) error {
	log := cronLogger{}
	c := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)

	for _, entry := range o.entries {
		job := entry.Job
		if _, err := c.AddFunc(entry.Schedule, func() { RunJob(ctx, job) }); err != nil {
			return fmt.Errorf("schedule %s (%q): %w", job.Name(), entry.Schedule, err)
		}
		logger.Info("Job scheduled",
			zap.String("job", job.Name()),
			zap.String("schedule", entry.Schedule),
			zap.String("event", "job_scheduled"),
		)
	}

	o.cron = c
	c.Start()
	return nil
}

// Stop halts the cron loop and waits for running jobs to return.
func (o *Orchestrator) Stop() {
	if o.cron == nil {
		return
	}
	<-o.cron.Stop().Done()
}

// RunJob executes job once with start/finish logging. It is also used by the one-shot CLI commands.
func RunJob(ctx context.Context, job Job) error {
	started := time.Now()
	logger.Info("Job started", zap.String("job", job.Name()), zap.String("event", "job_started"))

	if err := job.Run(ctx); err != nil {
		logger.Error("Job failed",
			zap.String("job", job.Name()),
			zap.Duration("duration", time.Since(started)),
			zap.Error(err),
			zap.String("event", "job_failed"),
		)
		return err
	}

	logger.Info("Job finished",
		zap.String("job", job.Name()),
		zap.Duration("duration", time.Since(started)),
		zap.String("event", "job_finished"),
	)
	return nil
}

// cronLogger routes cron's own messages into the global zap logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Logger.Sugar().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
