package jobs

import (
	"context"

	"github.com/flexprice/propbill/internal/config"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/service"
	"github.com/flexprice/propbill/internal/types"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// BillingJob fires the daily billing run from inside the process
type BillingJob struct {
	cron      *cron.Cron
	scheduler service.SchedulerService
	log       *logger.Logger
	schedule  string
}

// NewBillingJob parses the configured schedule in the billing timezone
func NewBillingJob(cfg *config.Configuration, scheduler service.SchedulerService, log *logger.Logger) (*BillingJob, error) {
	loc, err := cfg.Billing.Location()
	if err != nil {
		return nil, err
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(log.GetCronLogger()),
		// a run still in progress is never overlapped by the next tick
		cron.WithChain(cron.SkipIfStillRunning(log.GetCronLogger())),
	)

	job := &BillingJob{
		cron:      c,
		scheduler: scheduler,
		log:       log,
		schedule:  cfg.Billing.Schedule,
	}
	if _, err := c.AddFunc(cfg.Billing.Schedule, job.Run); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invalid billing schedule %q", cfg.Billing.Schedule).
			Mark(ierr.ErrValidation)
	}
	return job, nil
}

// Run executes one billing run for today
func (j *BillingJob) Run() {
	ctx := types.SetUserID(context.Background(), types.DefaultUserID)

	resp, err := j.scheduler.RunToday(ctx)
	if err != nil {
		j.log.Errorw("scheduled billing run failed", "error", err)
		return
	}
	j.log.Infow("scheduled billing run finished",
		"run_id", resp.RunID,
		"run_date", resp.RunDate,
		"succeeded", resp.Succeeded,
		"failed", resp.Failed,
	)
}

// RegisterWithLifecycle starts the timer with the app and waits for a running job on stop
func (j *BillingJob) RegisterWithLifecycle(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			j.log.Infow("starting billing timer", "schedule", j.schedule)
			j.cron.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			j.log.Info("stopping billing timer")
			select {
			case <-j.cron.Stop().Done():
			case <-ctx.Done():
				j.log.Error("timeout while waiting for the billing run to finish")
			}
			return nil
		},
	})
}
