package temporal

import (
	"context"
	"fmt"

	"github.com/flexprice/propbill/internal/config"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/temporal/models"
	"github.com/flexprice/propbill/internal/temporal/workflows"
	"go.temporal.io/sdk/client"
)

// Service starts billing run workflows
type Service struct {
	client *TemporalClient
	log    *logger.Logger
	cfg    *config.Configuration
}

// NewService creates a new Temporal service
func NewService(client *TemporalClient, cfg *config.Configuration, log *logger.Logger) *Service {
	return &Service{
		client: client,
		log:    log,
		cfg:    cfg,
	}
}

// CronSchedule is the billing schedule evaluated in the billing timezone
func CronSchedule(cfg *config.Configuration) string {
	return fmt.Sprintf("CRON_TZ=%s %s", cfg.Billing.Timezone, cfg.Billing.Schedule)
}

// ScheduleDailyBillingRun starts the cron workflow that bills due customers every day.
// Starting it again while it is running returns the existing execution.
func (s *Service) ScheduleDailyBillingRun(ctx context.Context) error {
	opts := client.StartWorkflowOptions{
		ID:           models.BillingRunWorkflowID,
		TaskQueue:    s.cfg.Temporal.TaskQueue,
		CronSchedule: CronSchedule(s.cfg),
	}

	we, err := s.client.Client.ExecuteWorkflow(ctx, opts, workflows.BillingRunWorkflow, models.BillingRunWorkflowInput{})
	if err != nil {
		s.log.Errorw("failed to schedule billing run workflow", "error", err)
		return err
	}

	s.log.Infow("scheduled billing run workflow",
		"workflow_id", we.GetID(),
		"run_id", we.GetRunID(),
		"schedule", opts.CronSchedule,
	)
	return nil
}

// Close closes the temporal client
func (s *Service) Close() {
	if s.client != nil {
		s.client.Client.Close()
	}
}
