package testutil

import (
	"context"

	"github.com/flexprice/propbill/internal/domain/invoice"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
	// failCreate, when set, is returned by Create
	failCreate error
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore(func(i *invoice.Invoice) *invoice.Invoice {
			cp := *i
			return &cp
		}),
	}
}

// FailCreate makes subsequent Create calls return err, nil resets
func (s *InMemoryInvoiceStore) FailCreate(err error) {
	s.failCreate = err
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	return s.InMemoryStore.Create(ctx, inv.ID, inv)
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return inv, nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	desc := filter.QueryFilter.GetOrder() == types.OrderDesc
	return s.InMemoryStore.List(ctx, filter.QueryFilter, invoiceFilterFn(filter), func(a, b *invoice.Invoice) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if desc {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if desc {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	return s.InMemoryStore.Count(ctx, invoiceFilterFn(filter))
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.WithError(err).
			WithHintf("Invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func invoiceFilterFn(filter *types.InvoiceFilter) FilterFunc[*invoice.Invoice] {
	return func(_ context.Context, inv *invoice.Invoice) bool {
		return filter.CustomerID == "" || inv.CustomerID == filter.CustomerID
	}
}
