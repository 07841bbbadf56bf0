package dto

import (
	"context"
	"strings"

	"github.com/flexprice/propbill/internal/domain/property"
	"github.com/flexprice/propbill/internal/types"
	"github.com/flexprice/propbill/internal/validator"
	"github.com/shopspring/decimal"
)

type CreatePropertyRequest struct {
	Address string `json:"address" validate:"required,max=255"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
	ZipCode string `json:"zip_code" validate:"omitempty,max=20"`
	// FeeAmount is added to every invoice of the owning customer when set
	FeeAmount *decimal.Decimal `json:"fee_amount,omitempty"`
}

type PropertyResponse struct {
	*property.Property
}

// ListPropertiesResponse represents the response for listing a customer's properties
type ListPropertiesResponse = types.ListResponse[*PropertyResponse]

func (r *CreatePropertyRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreatePropertyRequest) ToProperty(ctx context.Context, customerID string) *property.Property {
	return &property.Property{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROPERTY),
		CustomerID: customerID,
		Address:    strings.TrimSpace(r.Address),
		City:       strings.TrimSpace(r.City),
		State:      strings.TrimSpace(r.State),
		ZipCode:    strings.TrimSpace(r.ZipCode),
		FeeAmount:  nullDecimal(r.FeeAmount),
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}
