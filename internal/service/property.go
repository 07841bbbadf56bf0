package service

import (
	"context"

	"github.com/flexprice/propbill/internal/api/dto"
	"github.com/flexprice/propbill/internal/domain/property"
	"github.com/flexprice/propbill/internal/types"
	"github.com/samber/lo"
)

type PropertyService interface {
	CreateProperty(ctx context.Context, customerID string, req dto.CreatePropertyRequest) (*dto.PropertyResponse, error)
	GetCustomerProperties(ctx context.Context, customerID string) (*dto.ListPropertiesResponse, error)
	DeleteProperty(ctx context.Context, id string) error
}

type propertyService struct {
	ServiceParams
}

func NewPropertyService(params ServiceParams) PropertyService {
	return &propertyService{
		ServiceParams: params,
	}
}

func (s *propertyService) CreateProperty(ctx context.Context, customerID string, req dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// the owner must exist and still be billed
	if _, err := s.CustomerRepo.Get(ctx, customerID); err != nil {
		return nil, err
	}

	prop := req.ToProperty(ctx, customerID)
	if err := prop.Validate(); err != nil {
		return nil, err
	}
	if err := s.PropertyRepo.Create(ctx, prop); err != nil {
		return nil, err
	}

	return &dto.PropertyResponse{Property: prop}, nil
}

func (s *propertyService) GetCustomerProperties(ctx context.Context, customerID string) (*dto.ListPropertiesResponse, error) {
	if _, err := s.CustomerRepo.Get(ctx, customerID); err != nil {
		return nil, err
	}

	props, err := s.PropertyRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := lo.Map(props, func(p *property.Property, _ int) *dto.PropertyResponse {
		return &dto.PropertyResponse{Property: p}
	})
	resp := types.NewListResponse(items, len(items), len(items), 0)
	return &resp, nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, id string) error {
	return s.PropertyRepo.Delete(ctx, id)
}
