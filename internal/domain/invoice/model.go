package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the immutable record of one billing event.
// The rendered document is not stored; it is regenerated from this record and the customer.
type Invoice struct {
	ID           string          `db:"id" json:"id"`
	CustomerID   string          `db:"customer_id" json:"customer_id"`
	InvoiceDate  time.Time       `db:"invoice_date" json:"invoice_date"`
	PeriodLabel  string          `db:"period_label" json:"period_label"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	FileName     string          `db:"file_name" json:"file_name"`
	EmailSubject string          `db:"email_subject" json:"email_subject"`
	EmailBody    string          `db:"email_body" json:"email_body"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	CreatedBy    string          `db:"created_by" json:"created_by"`
}

func (i *Invoice) Validate() error {
	if i.CustomerID == "" {
		return NewValidationError("customer_id", "customer id is required")
	}
	if i.InvoiceDate.IsZero() {
		return NewValidationError("invoice_date", "invoice date is required")
	}
	if i.PeriodLabel == "" {
		return NewValidationError("period_label", "period label is required")
	}
	if i.FileName == "" {
		return NewValidationError("file_name", "file name is required")
	}
	return nil
}
