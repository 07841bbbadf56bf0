package models

import "time"

const (
	// BillingRunWorkflowID identifies the daily cron execution, one per namespace
	BillingRunWorkflowID = "billing-run-daily"

	// DefaultActivityTimeout bounds one full billing run
	DefaultActivityTimeout = time.Minute * 30

	DefaultInitialInterval    = time.Second * 10
	DefaultMaximumInterval    = time.Minute * 5
	DefaultBackoffCoefficient = 2.0
	DefaultMaximumAttempts    = 3
)

// BillingRunWorkflowInput selects the day to bill.
// An empty RunDate bills today in the configured billing timezone.
type BillingRunWorkflowInput struct {
	RunDate string `json:"run_date,omitempty"`
}

// BillingRunWorkflowResult is the run summary kept in workflow history
type BillingRunWorkflowResult struct {
	RunID      string   `json:"run_id"`
	RunDate    string   `json:"run_date"`
	Processed  int      `json:"processed"`
	Succeeded  int      `json:"succeeded"`
	Failed     int      `json:"failed"`
	Unadvanced []string `json:"unadvanced"`
	// FailedCustomers lists the customers whose invoice was not issued
	FailedCustomers []string `json:"failed_customers"`
}
