package workflows

import (
	"github.com/flexprice/propbill/internal/temporal/activities"
	"github.com/flexprice/propbill/internal/temporal/models"
	temporalsdk "go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// BillingRunWorkflow runs the daily billing cycle as a single activity
func BillingRunWorkflow(ctx workflow.Context, input models.BillingRunWorkflowInput) (*models.BillingRunWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting billing run workflow", "runDate", input.RunDate)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: models.DefaultActivityTimeout,
		RetryPolicy: &temporalsdk.RetryPolicy{
			InitialInterval:    models.DefaultInitialInterval,
			BackoffCoefficient: models.DefaultBackoffCoefficient,
			MaximumInterval:    models.DefaultMaximumInterval,
			MaximumAttempts:    models.DefaultMaximumAttempts,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var a *activities.BillingActivities
	var result models.BillingRunWorkflowResult
	if err := workflow.ExecuteActivity(ctx, a.RunBillingActivity, input).Get(ctx, &result); err != nil {
		logger.Error("Billing run activity failed", "error", err)
		return nil, err
	}

	if result.Failed > 0 || len(result.Unadvanced) > 0 {
		logger.Warn("Billing run finished with issues",
			"runID", result.RunID,
			"failed", result.Failed,
			"unadvanced", len(result.Unadvanced))
	}
	return &result, nil
}
