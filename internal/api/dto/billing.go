package dto

import (
	"github.com/flexprice/propbill/internal/validator"
	"github.com/shopspring/decimal"
)

// RunBillingRequest runs the billing cycle for a given day, e.g. to catch up a missed run
type RunBillingRequest struct {
	RunDate string `json:"run_date" validate:"required,civil_date"`
}

func (r *RunBillingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// BillingRunResponse summarizes one billing run
type BillingRunResponse struct {
	RunID     string `json:"run_id"`
	RunDate   string `json:"run_date"`
	Processed int    `json:"processed"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	// Unadvanced lists customers that were invoiced but whose cadence has no advance rule
	Unadvanced []string           `json:"unadvanced"`
	Items      []*BillingRunItem  `json:"items"`
	Errors     []*BillingRunError `json:"errors"`
}

// BillingRunItem is one invoice issued by a run
type BillingRunItem struct {
	CustomerID   string          `json:"customer_id"`
	InvoiceID    string          `json:"invoice_id"`
	FileName     string          `json:"file_name"`
	Amount       decimal.Decimal `json:"amount"`
	NextBillDate string          `json:"next_bill_date"`
	Advanced     bool            `json:"advanced"`
	// Location is where the document was stored, empty when output is disabled
	Location string `json:"location,omitempty"`
}

// BillingRunError is a customer that could not be billed
type BillingRunError struct {
	CustomerID string `json:"customer_id"`
	Error      string `json:"error"`
}

func NewBillingRunResponse(runID, runDate string) *BillingRunResponse {
	return &BillingRunResponse{
		RunID:      runID,
		RunDate:    runDate,
		Unadvanced: []string{},
		Items:      []*BillingRunItem{},
		Errors:     []*BillingRunError{},
	}
}
