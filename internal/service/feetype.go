package service

import (
	"context"

	"github.com/flexprice/propbill/internal/api/dto"
	"github.com/flexprice/propbill/internal/domain/feetype"
	"github.com/flexprice/propbill/internal/types"
	"github.com/samber/lo"
)

type FeeTypeService interface {
	CreateFeeType(ctx context.Context, req dto.CreateFeeTypeRequest) (*dto.FeeTypeResponse, error)
	GetFeeTypes(ctx context.Context) (*dto.ListFeeTypesResponse, error)
	DeleteFeeType(ctx context.Context, id string) error
}

type feeTypeService struct {
	ServiceParams
}

func NewFeeTypeService(params ServiceParams) FeeTypeService {
	return &feeTypeService{
		ServiceParams: params,
	}
}

func (s *feeTypeService) CreateFeeType(ctx context.Context, req dto.CreateFeeTypeRequest) (*dto.FeeTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ft := req.ToFeeType(ctx)
	if err := ft.Validate(); err != nil {
		return nil, err
	}

	// a taken name comes back marked ErrAlreadyExists
	if err := s.FeeTypeRepo.Create(ctx, ft); err != nil {
		return nil, err
	}

	return &dto.FeeTypeResponse{FeeType: ft}, nil
}

func (s *feeTypeService) GetFeeTypes(ctx context.Context) (*dto.ListFeeTypesResponse, error) {
	feeTypes, err := s.FeeTypeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(feeTypes, func(f *feetype.FeeType, _ int) *dto.FeeTypeResponse {
		return &dto.FeeTypeResponse{FeeType: f}
	})
	resp := types.NewListResponse(items, len(items), len(items), 0)
	return &resp, nil
}

func (s *feeTypeService) DeleteFeeType(ctx context.Context, id string) error {
	return s.FeeTypeRepo.Delete(ctx, id)
}
