package customer

import (
	"strings"
	"time"

	"github.com/flexprice/propbill/internal/domain/fee"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
	"github.com/shopspring/decimal"
)

// Customer is a billed fee account tied to one primary property address
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// Name is the name of the customer
	Name string `db:"name" json:"name"`

	// Email is the email of the customer
	Email string `db:"email" json:"email"`

	// PropertyAddress is the street address invoices are issued for
	PropertyAddress string `db:"property_address" json:"property_address"`

	PropertyCity  string `db:"property_city" json:"property_city"`
	PropertyState string `db:"property_state" json:"property_state"`
	PropertyZip   string `db:"property_zip" json:"property_zip"`

	// Rate is the base fee charged every period
	Rate decimal.Decimal `db:"rate" json:"rate"`

	// Cadence is the billing frequency
	Cadence types.Cadence `db:"cadence" json:"cadence"`

	// FeeType labels the base fee, empty means the configured default
	FeeType string `db:"fee_type" json:"fee_type"`

	// Optional secondary and tertiary fee tiers. A NULL amount means the tier is not used.
	Fee2Type   string              `db:"fee_2_type" json:"fee_2_type"`
	Fee2Amount decimal.NullDecimal `db:"fee_2_amount" json:"fee_2_amount"`
	Fee3Type   string              `db:"fee_3_type" json:"fee_3_type"`
	Fee3Amount decimal.NullDecimal `db:"fee_3_amount" json:"fee_3_amount"`

	// Optional one-off additional fee
	AdditionalFeeDesc   string              `db:"additional_fee_desc" json:"additional_fee_desc"`
	AdditionalFeeAmount decimal.NullDecimal `db:"additional_fee_amount" json:"additional_fee_amount"`

	// NextBillDate is the civil date the next invoice is due
	NextBillDate time.Time `db:"next_bill_date" json:"next_bill_date"`

	types.BaseModel
}

// FeeLabel returns the label of the base fee, falling back to defaultLabel
func (c *Customer) FeeLabel(defaultLabel string) string {
	if label := strings.TrimSpace(c.FeeType); label != "" {
		return label
	}
	return defaultLabel
}

// StoredFees returns the fee tiers and additional fee kept on the customer record
func (c *Customer) StoredFees() fee.Selection {
	return fee.Selection{
		Tiers: []fee.OptionalCharge{
			fee.FromNullable(c.Fee2Type, c.Fee2Amount),
			fee.FromNullable(c.Fee3Type, c.Fee3Amount),
		},
		Additional: fee.FromNullable(c.AdditionalFeeDesc, c.AdditionalFeeAmount),
	}
}

// IsDueOn reports whether the customer is billed on the given civil date
func (c *Customer) IsDueOn(day time.Time) bool {
	return types.CivilDate(c.NextBillDate).Equal(types.CivilDate(day))
}

// Validate checks the fields required to bill the customer
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ierr.NewError("customer name is required").
			WithHint("Customer name is required").
			Mark(ierr.ErrValidation)
	}
	if strings.TrimSpace(c.Email) == "" {
		return ierr.NewError("customer email is required").
			WithHint("Customer email is required").
			Mark(ierr.ErrValidation)
	}
	if strings.TrimSpace(c.PropertyAddress) == "" {
		return ierr.NewError("property address is required").
			WithHint("Property address is required").
			Mark(ierr.ErrValidation)
	}
	if c.Rate.IsNegative() {
		return ierr.NewError("rate must not be negative").
			WithHint("Rate must be zero or greater").
			WithReportableDetails(map[string]any{
				"rate": c.Rate.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if c.Cadence == "" {
		return ierr.NewError("cadence is required").
			WithHint("Cadence is required").
			Mark(ierr.ErrValidation)
	}
	if c.NextBillDate.IsZero() {
		return ierr.NewError("next bill date is required").
			WithHint("Next bill date is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
