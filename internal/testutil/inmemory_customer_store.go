package testutil

import (
	"context"
	"time"

	"github.com/flexprice/propbill/internal/domain/customer"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
	// failUpdate, when set, is returned by Update
	failUpdate error
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore(copyCustomer),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	cp.NextBillDate = types.CivilDate(c.NextBillDate)
	return &cp
}

func customerNotFound(id string) error {
	return ierr.NewErrorf("customer %s not found", id).
		WithHintf("Customer %s not found", id).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c.Status != types.StatusPublished {
		return nil, customerNotFound(id)
	}
	return c, nil
}

func (s *InMemoryCustomerStore) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	if filter == nil {
		filter = &types.CustomerFilter{}
	}
	return s.InMemoryStore.List(ctx, filter.QueryFilter, customerFilterFn(filter), customerSortFn(filter.QueryFilter))
}

func (s *InMemoryCustomerStore) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	if filter == nil {
		filter = &types.CustomerFilter{}
	}
	return s.InMemoryStore.Count(ctx, customerFilterFn(filter))
}

func (s *InMemoryCustomerStore) ListDueOn(ctx context.Context, day time.Time) ([]*customer.Customer, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(_ context.Context, c *customer.Customer) bool {
			return c.Status == types.StatusPublished && c.IsDueOn(day)
		},
		func(a, b *customer.Customer) bool { return a.ID < b.ID },
	)
}

// FailUpdate makes subsequent Update calls return err, nil resets
func (s *InMemoryCustomerStore) FailUpdate(err error) {
	s.failUpdate = err
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if s.failUpdate != nil {
		return s.failUpdate
	}
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, c.ID, c)
}

// Delete archives the customer the way the postgres repository does
func (s *InMemoryCustomerStore) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Status = types.StatusDeleted
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)
	return s.InMemoryStore.Update(ctx, id, c)
}

func customerFilterFn(filter *types.CustomerFilter) FilterFunc[*customer.Customer] {
	return func(_ context.Context, c *customer.Customer) bool {
		if c.Status != types.StatusPublished {
			return false
		}
		if filter.NextBillDate != nil && !c.IsDueOn(*filter.NextBillDate) {
			return false
		}
		return true
	}
}

func customerSortFn(qf *types.QueryFilter) SortFunc[*customer.Customer] {
	desc := qf.GetOrder() == types.OrderDesc
	return func(a, b *customer.Customer) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if desc {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}
}
