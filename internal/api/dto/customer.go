package dto

import (
	"context"
	"strings"

	"github.com/flexprice/propbill/internal/domain/customer"
	"github.com/flexprice/propbill/internal/domain/property"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
	"github.com/flexprice/propbill/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	Name            string          `json:"name" validate:"required,max=255"`
	Email           string          `json:"email" validate:"required,email"`
	PropertyAddress string          `json:"property_address" validate:"required,max=255"`
	PropertyCity    string          `json:"property_city" validate:"omitempty,max=100"`
	PropertyState   string          `json:"property_state" validate:"omitempty,max=100"`
	PropertyZip     string          `json:"property_zip" validate:"omitempty,max=20"`
	Rate            decimal.Decimal `json:"rate" validate:"gte=0"`
	Cadence         string          `json:"cadence" validate:"required,cadence"`
	FeeType         string          `json:"fee_type" validate:"omitempty,max=100"`
	// Fee2Amount and Fee3Amount enable the optional fee tiers when set
	Fee2Type            string           `json:"fee_2_type" validate:"omitempty,max=100"`
	Fee2Amount          *decimal.Decimal `json:"fee_2_amount,omitempty"`
	Fee3Type            string           `json:"fee_3_type" validate:"omitempty,max=100"`
	Fee3Amount          *decimal.Decimal `json:"fee_3_amount,omitempty"`
	AdditionalFeeDesc   string           `json:"additional_fee_desc" validate:"omitempty,max=255"`
	AdditionalFeeAmount *decimal.Decimal `json:"additional_fee_amount,omitempty"`
	// NextBillDate is the first due date, YYYY-MM-DD
	NextBillDate string `json:"next_bill_date" validate:"required,civil_date"`
}

// UpdateCustomerRequest changes only the fields that are set.
// Setting a fee amount to 0 stops billing that fee.
type UpdateCustomerRequest struct {
	Name                *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Email               *string          `json:"email,omitempty" validate:"omitempty,email"`
	PropertyAddress     *string          `json:"property_address,omitempty" validate:"omitempty,max=255"`
	PropertyCity        *string          `json:"property_city,omitempty" validate:"omitempty,max=100"`
	PropertyState       *string          `json:"property_state,omitempty" validate:"omitempty,max=100"`
	PropertyZip         *string          `json:"property_zip,omitempty" validate:"omitempty,max=20"`
	Rate                *decimal.Decimal `json:"rate,omitempty" validate:"omitempty,gte=0"`
	Cadence             *string          `json:"cadence,omitempty" validate:"omitempty,cadence"`
	FeeType             *string          `json:"fee_type,omitempty" validate:"omitempty,max=100"`
	Fee2Type            *string          `json:"fee_2_type,omitempty" validate:"omitempty,max=100"`
	Fee2Amount          *decimal.Decimal `json:"fee_2_amount,omitempty"`
	Fee3Type            *string          `json:"fee_3_type,omitempty" validate:"omitempty,max=100"`
	Fee3Amount          *decimal.Decimal `json:"fee_3_amount,omitempty"`
	AdditionalFeeDesc   *string          `json:"additional_fee_desc,omitempty" validate:"omitempty,max=255"`
	AdditionalFeeAmount *decimal.Decimal `json:"additional_fee_amount,omitempty"`
	NextBillDate        *string          `json:"next_bill_date,omitempty" validate:"omitempty,civil_date"`
}

type CustomerResponse struct {
	*customer.Customer
	Properties []*property.Property `json:"properties,omitempty"`
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

func (r *CreateCustomerRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := validateFeeLabel("fee_2_type", r.Fee2Type, r.Fee2Amount); err != nil {
		return err
	}
	return validateFeeLabel("fee_3_type", r.Fee3Type, r.Fee3Amount)
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) (*customer.Customer, error) {
	nextBillDate, err := types.ParseDate(r.NextBillDate)
	if err != nil {
		return nil, err
	}

	return &customer.Customer{
		ID:                  types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:                strings.TrimSpace(r.Name),
		Email:               strings.TrimSpace(r.Email),
		PropertyAddress:     strings.TrimSpace(r.PropertyAddress),
		PropertyCity:        strings.TrimSpace(r.PropertyCity),
		PropertyState:       strings.TrimSpace(r.PropertyState),
		PropertyZip:         strings.TrimSpace(r.PropertyZip),
		Rate:                r.Rate,
		Cadence:             types.NormalizeCadence(r.Cadence),
		FeeType:             strings.TrimSpace(r.FeeType),
		Fee2Type:            strings.TrimSpace(r.Fee2Type),
		Fee2Amount:          nullDecimal(r.Fee2Amount),
		Fee3Type:            strings.TrimSpace(r.Fee3Type),
		Fee3Amount:          nullDecimal(r.Fee3Amount),
		AdditionalFeeDesc:   strings.TrimSpace(r.AdditionalFeeDesc),
		AdditionalFeeAmount: nullDecimal(r.AdditionalFeeAmount),
		NextBillDate:        nextBillDate,
		BaseModel:           types.GetDefaultBaseModel(ctx),
	}, nil
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto c
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) error {
	setString(&c.Name, r.Name)
	setString(&c.Email, r.Email)
	setString(&c.PropertyAddress, r.PropertyAddress)
	setString(&c.PropertyCity, r.PropertyCity)
	setString(&c.PropertyState, r.PropertyState)
	setString(&c.PropertyZip, r.PropertyZip)
	setString(&c.FeeType, r.FeeType)
	setString(&c.Fee2Type, r.Fee2Type)
	setString(&c.Fee3Type, r.Fee3Type)
	setString(&c.AdditionalFeeDesc, r.AdditionalFeeDesc)

	if r.Rate != nil {
		c.Rate = *r.Rate
	}
	if r.Cadence != nil {
		c.Cadence = types.NormalizeCadence(*r.Cadence)
	}
	if r.Fee2Amount != nil {
		c.Fee2Amount = nullDecimal(r.Fee2Amount)
	}
	if r.Fee3Amount != nil {
		c.Fee3Amount = nullDecimal(r.Fee3Amount)
	}
	if r.AdditionalFeeAmount != nil {
		c.AdditionalFeeAmount = nullDecimal(r.AdditionalFeeAmount)
	}
	if r.NextBillDate != nil {
		next, err := types.ParseDate(*r.NextBillDate)
		if err != nil {
			return err
		}
		c.NextBillDate = next
	}

	if c.Fee2Amount.Valid {
		if err := validateFeeLabel("fee_2_type", c.Fee2Type, &c.Fee2Amount.Decimal); err != nil {
			return err
		}
	}
	if c.Fee3Amount.Valid {
		return validateFeeLabel("fee_3_type", c.Fee3Type, &c.Fee3Amount.Decimal)
	}
	return nil
}

// validateFeeLabel requires a label for a billed fee tier, the template shows it next to the amount
func validateFeeLabel(field, label string, amount *decimal.Decimal) error {
	if amount == nil || amount.IsZero() || strings.TrimSpace(label) != "" {
		return nil
	}
	return ierr.NewErrorf("%s is required when its amount is set", field).
		WithHintf("Please provide %s for the fee amount", field).
		WithReportableDetails(map[string]any{
			"field": field,
		}).
		Mark(ierr.ErrValidation)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
