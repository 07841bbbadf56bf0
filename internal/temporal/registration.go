package temporal

import (
	"github.com/flexprice/propbill/internal/service"
	"github.com/flexprice/propbill/internal/temporal/activities"
	"github.com/flexprice/propbill/internal/temporal/workflows"
	"go.temporal.io/sdk/worker"
)

// RegisterWorkflowsAndActivities registers all workflows and activities with a Temporal worker.
// Names are the function and method names, e.g. "BillingRunWorkflow" and "RunBillingActivity".
func RegisterWorkflowsAndActivities(w worker.Registry, scheduler service.SchedulerService) {
	w.RegisterWorkflow(workflows.BillingRunWorkflow)
	w.RegisterActivity(activities.NewBillingActivities(scheduler))
}
