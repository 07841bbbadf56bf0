package dto

import (
	"context"
	"strings"

	"github.com/flexprice/propbill/internal/domain/feetype"
	"github.com/flexprice/propbill/internal/types"
	"github.com/flexprice/propbill/internal/validator"
)

type CreateFeeTypeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type FeeTypeResponse struct {
	*feetype.FeeType
}

type ListFeeTypesResponse = types.ListResponse[*FeeTypeResponse]

func (r *CreateFeeTypeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateFeeTypeRequest) ToFeeType(ctx context.Context) *feetype.FeeType {
	return &feetype.FeeType{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_FEE_TYPE),
		Name:      strings.TrimSpace(r.Name),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
