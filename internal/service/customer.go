package service

import (
	"context"

	"github.com/flexprice/propbill/internal/api/dto"
	"github.com/flexprice/propbill/internal/domain/customer"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
	"github.com/samber/lo"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	GetCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error)
	UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	// DeleteCustomer archives the customer and removes its properties
	DeleteCustomer(ctx context.Context, id string) error
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{
		ServiceParams: params,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := req.ToCustomer(ctx)
	if err != nil {
		return nil, err
	}
	if err := cust.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Create(ctx, cust); err != nil {
		return nil, err
	}

	s.Logger.Infow("created customer",
		"customer_id", cust.ID,
		"cadence", cust.Cadence,
		"next_bill_date", types.FormatISODate(cust.NextBillDate),
	)
	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	if id == "" {
		return nil, ierr.NewError("customer_id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	props, err := s.PropertyRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CustomerResponse{Customer: cust, Properties: props}, nil
}

func (s *customerService) GetCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error) {
	if filter == nil {
		filter = &types.CustomerFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	customers, err := s.CustomerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.CustomerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerResponse {
		return &dto.CustomerResponse{Customer: c}
	})
	resp := types.NewListResponse(items, total, filter.QueryFilter.GetLimit(), filter.QueryFilter.GetOffset())
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Apply(cust); err != nil {
		return nil, err
	}
	if err := cust.Validate(); err != nil {
		return nil, err
	}
	cust.UpdatedAt = s.Clock.Now().UTC()
	cust.UpdatedBy = types.GetUserID(ctx)

	if err := s.CustomerRepo.Update(ctx, cust); err != nil {
		return nil, err
	}

	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.CustomerRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.PropertyRepo.DeleteByCustomer(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("deleted customer", "customer_id", id)
	return nil
}
