package dto

import (
	"strings"

	"github.com/flexprice/propbill/internal/domain/fee"
	"github.com/flexprice/propbill/internal/domain/invoice"
	"github.com/flexprice/propbill/internal/types"
	"github.com/flexprice/propbill/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// GenerateInvoiceRequest issues one invoice outside the scheduled run.
// The customer's due date is never advanced by it.
type GenerateInvoiceRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	// InvoiceDate defaults to today in the billing timezone, YYYY-MM-DD
	InvoiceDate string `json:"invoice_date,omitempty" validate:"omitempty,civil_date"`
	// Fees replaces the customer's stored fee tiers for this invoice only.
	// When omitted the stored tiers are billed; entries left out of a supplied block are not billed.
	Fees *FeeOverrides `json:"fees,omitempty"`
}

// FeeOverrides are the optional fees of a manually generated invoice
type FeeOverrides struct {
	// Tiers fill the secondary and tertiary fee rows in order
	Tiers      []FeeOverride `json:"tiers,omitempty" validate:"max=2,dive"`
	Additional *FeeOverride  `json:"additional,omitempty"`
}

// FeeOverride is one fee; a missing or zero amount leaves it off the invoice
type FeeOverride struct {
	Label  string           `json:"label" validate:"omitempty,max=255"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

type InvoiceResponse struct {
	*invoice.Invoice
	// Lines itemize the total, set when the invoice was rendered by this request
	Lines []fee.LineItem `json:"lines,omitempty"`
}

type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

func (r *GenerateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (o FeeOverride) charge() fee.OptionalCharge {
	if o.Amount == nil {
		return fee.Absent()
	}
	return fee.Present(strings.TrimSpace(o.Label), *o.Amount)
}

// ToSelection turns the overrides into the charges billed on the invoice
func (f *FeeOverrides) ToSelection() fee.Selection {
	sel := fee.Selection{
		Tiers: lo.Map(f.Tiers, func(o FeeOverride, _ int) fee.OptionalCharge {
			return o.charge()
		}),
		Additional: fee.Absent(),
	}
	if f.Additional != nil {
		sel.Additional = f.Additional.charge()
	}
	return sel
}
