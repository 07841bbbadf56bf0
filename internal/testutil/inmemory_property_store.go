package testutil

import (
	"context"

	"github.com/flexprice/propbill/internal/domain/property"
	ierr "github.com/flexprice/propbill/internal/errors"
)

// InMemoryPropertyStore implements property.Repository
type InMemoryPropertyStore struct {
	*InMemoryStore[*property.Property]
}

func NewInMemoryPropertyStore() *InMemoryPropertyStore {
	return &InMemoryPropertyStore{
		InMemoryStore: NewInMemoryStore(func(p *property.Property) *property.Property {
			cp := *p
			return &cp
		}),
	}
}

func (s *InMemoryPropertyStore) Create(ctx context.Context, p *property.Property) error {
	return s.InMemoryStore.Create(ctx, p.ID, p)
}

func (s *InMemoryPropertyStore) Get(ctx context.Context, id string) (*property.Property, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Property %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPropertyStore) ListByCustomer(ctx context.Context, customerID string) ([]*property.Property, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(_ context.Context, p *property.Property) bool {
			return p.CustomerID == customerID
		},
		func(a, b *property.Property) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		},
	)
}

func (s *InMemoryPropertyStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.WithError(err).
			WithHintf("Property %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryPropertyStore) DeleteByCustomer(ctx context.Context, customerID string) error {
	props, err := s.ListByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	for _, p := range props {
		if err := s.InMemoryStore.Delete(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}
