package activities

import (
	"context"

	"github.com/flexprice/propbill/internal/api/dto"
	"github.com/flexprice/propbill/internal/service"
	"github.com/flexprice/propbill/internal/temporal/models"
	"github.com/flexprice/propbill/internal/types"
	"github.com/samber/lo"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

type BillingActivities struct {
	scheduler service.SchedulerService
}

func NewBillingActivities(scheduler service.SchedulerService) *BillingActivities {
	return &BillingActivities{scheduler: scheduler}
}

// RunBillingActivity executes one billing run. Per-customer failures are part of the
// result; only a failure to start the run is returned as an error and retried.
func (a *BillingActivities) RunBillingActivity(ctx context.Context, input models.BillingRunWorkflowInput) (*models.BillingRunWorkflowResult, error) {
	logger := activity.GetLogger(ctx)
	ctx = types.SetUserID(ctx, types.DefaultUserID)

	var (
		resp *dto.BillingRunResponse
		err  error
	)
	if input.RunDate == "" {
		resp, err = a.scheduler.RunToday(ctx)
	} else {
		runDate, parseErr := types.ParseDate(input.RunDate)
		if parseErr != nil {
			return nil, temporal.NewNonRetryableApplicationError("invalid run date", "InvalidRunDate", parseErr)
		}
		resp, err = a.scheduler.RunForDate(ctx, runDate)
	}
	if err != nil {
		logger.Error("billing run failed", "error", err)
		return nil, err
	}

	logger.Info("billing run completed",
		"run_id", resp.RunID,
		"processed", resp.Processed,
		"failed", resp.Failed,
	)
	return &models.BillingRunWorkflowResult{
		RunID:      resp.RunID,
		RunDate:    resp.RunDate,
		Processed:  resp.Processed,
		Succeeded:  resp.Succeeded,
		Failed:     resp.Failed,
		Unadvanced: resp.Unadvanced,
		FailedCustomers: lo.Map(resp.Errors, func(e *dto.BillingRunError, _ int) string {
			return e.CustomerID
		}),
	}, nil
}
