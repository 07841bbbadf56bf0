package service

import (
	"context"
	"time"

	"github.com/flexprice/propbill/internal/api/dto"
	"github.com/flexprice/propbill/internal/domain/invoice"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
	"github.com/samber/lo"
)

type InvoiceService interface {
	// GenerateInvoice renders and records one invoice without touching the customer's due date
	GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	// RegenerateInvoice re-renders a stored invoice from its record and the current customer data
	RegenerateInvoice(ctx context.Context, id string) (*GeneratedInvoice, error)
	// DownloadInvoice returns the regenerated document of a stored invoice
	DownloadInvoice(ctx context.Context, id string) (*Document, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type invoiceService struct {
	ServiceParams
	billing BillingService
}

func NewInvoiceService(params ServiceParams, billing BillingService) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
		billing:       billing,
	}
}

func (s *invoiceService) GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var invoiceDate time.Time
	var err error
	if req.InvoiceDate != "" {
		invoiceDate, err = types.ParseDate(req.InvoiceDate)
	} else {
		invoiceDate, err = s.today()
	}
	if err != nil {
		return nil, err
	}

	var generated *GeneratedInvoice
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		cust, err := s.CustomerRepo.Get(txCtx, req.CustomerID)
		if err != nil {
			return err
		}
		props, err := s.PropertyRepo.ListByCustomer(txCtx, cust.ID)
		if err != nil {
			return err
		}

		fees := cust.StoredFees()
		if req.Fees != nil {
			fees = req.Fees.ToSelection()
		}

		generated, err = s.billing.Generate(txCtx, GenerateParams{
			Customer:    cust,
			Properties:  props,
			InvoiceDate: invoiceDate,
			Fees:        fees,
		})
		if err != nil {
			return err
		}
		return s.InvoiceRepo.Create(txCtx, generated.Invoice)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("generated invoice",
		"invoice_id", generated.Invoice.ID,
		"customer_id", generated.Invoice.CustomerID,
		"amount", generated.Invoice.Amount.String(),
		"fee_overrides", req.Fees != nil,
	)
	return &dto.InvoiceResponse{
		Invoice: generated.Invoice,
		Lines:   generated.Breakdown.Lines,
	}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("invoice_id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
		return &dto.InvoiceResponse{Invoice: inv}
	})
	resp := types.NewListResponse(items, total, filter.QueryFilter.GetLimit(), filter.QueryFilter.GetOffset())
	return &resp, nil
}

func (s *invoiceService) RegenerateInvoice(ctx context.Context, id string) (*GeneratedInvoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, inv.CustomerID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		return nil, ierr.WithError(err).
			WithHintf("Customer %s of invoice %s no longer exists", inv.CustomerID, inv.ID).
			Mark(ierr.ErrNotFound)
	}
	props, err := s.PropertyRepo.ListByCustomer(ctx, cust.ID)
	if err != nil {
		return nil, err
	}

	generated, err := s.billing.Generate(ctx, GenerateParams{
		Customer:    cust,
		Properties:  props,
		InvoiceDate: inv.InvoiceDate,
		Fees:        cust.StoredFees(),
		PeriodLabel: inv.PeriodLabel,
		InvoiceID:   inv.ID,
	})
	if err != nil {
		return nil, err
	}

	if !generated.Invoice.Amount.Equal(inv.Amount) {
		s.Logger.Warnw("regenerated invoice total differs from the recorded amount",
			"invoice_id", inv.ID,
			"customer_id", cust.ID,
			"recorded", inv.Amount.String(),
			"regenerated", generated.Invoice.Amount.String(),
		)
	}

	// keep the record as stored, only the document is new
	generated.Invoice = inv
	return generated, nil
}

func (s *invoiceService) DownloadInvoice(ctx context.Context, id string) (*Document, error) {
	generated, err := s.RegenerateInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return generated.Document, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("deleted invoice", "invoice_id", id)
	return nil
}
