package property

import (
	"context"
	"strings"

	"github.com/flexprice/propbill/internal/domain/fee"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
	"github.com/shopspring/decimal"
)

// Property is an additional property managed for a customer.
// A non-NULL FeeAmount is added to every invoice the customer receives.
type Property struct {
	ID         string              `db:"id" json:"id"`
	CustomerID string              `db:"customer_id" json:"customer_id"`
	Address    string              `db:"address" json:"address"`
	City       string              `db:"city" json:"city"`
	State      string              `db:"state" json:"state"`
	ZipCode    string              `db:"zip_code" json:"zip_code"`
	FeeAmount  decimal.NullDecimal `db:"fee_amount" json:"fee_amount"`
	types.BaseModel
}

func (p *Property) Validate() error {
	if p.CustomerID == "" {
		return ierr.NewError("customer id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	if strings.TrimSpace(p.Address) == "" {
		return ierr.NewError("property address is required").
			WithHint("Property address is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Fees returns the recurring fees of the properties that carry one
func Fees(props []*Property) []fee.PropertyFee {
	fees := make([]fee.PropertyFee, 0, len(props))
	for _, p := range props {
		if p == nil || !p.FeeAmount.Valid {
			continue
		}
		fees = append(fees, fee.PropertyFee{Label: p.Address, Amount: p.FeeAmount.Decimal})
	}
	return fees
}

// Repository defines the interface for property data access
type Repository interface {
	Create(ctx context.Context, property *Property) error
	Get(ctx context.Context, id string) (*Property, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Property, error)
	Delete(ctx context.Context, id string) error
	DeleteByCustomer(ctx context.Context, customerID string) error
}
