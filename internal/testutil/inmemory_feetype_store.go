package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/flexprice/propbill/internal/domain/feetype"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
	"github.com/samber/lo"
)

// InMemoryFeeTypeStore implements feetype.Repository with the same
// published-name uniqueness as the fee_types table
type InMemoryFeeTypeStore struct {
	*InMemoryStore[*feetype.FeeType]
}

func NewInMemoryFeeTypeStore() *InMemoryFeeTypeStore {
	return &InMemoryFeeTypeStore{
		InMemoryStore: NewInMemoryStore(func(f *feetype.FeeType) *feetype.FeeType {
			cp := *f
			return &cp
		}),
	}
}

func (s *InMemoryFeeTypeStore) Create(ctx context.Context, f *feetype.FeeType) error {
	existing, err := s.List(ctx)
	if err != nil {
		return err
	}
	if lo.ContainsBy(existing, func(e *feetype.FeeType) bool { return strings.EqualFold(e.Name, f.Name) }) {
		return ierr.NewErrorf("fee type %q already exists", f.Name).
			WithHintf("A fee type named %q already exists", f.Name).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, f.ID, f)
}

func (s *InMemoryFeeTypeStore) Get(ctx context.Context, id string) (*feetype.FeeType, error) {
	f, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || f.Status != types.StatusPublished {
		return nil, ierr.NewErrorf("fee type %s not found", id).
			WithHintf("Fee type %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return f, nil
}

func (s *InMemoryFeeTypeStore) List(ctx context.Context) ([]*feetype.FeeType, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(_ context.Context, f *feetype.FeeType) bool { return f.Status == types.StatusPublished },
		func(a, b *feetype.FeeType) bool { return a.Name < b.Name },
	)
}

func (s *InMemoryFeeTypeStore) Delete(ctx context.Context, id string) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	f.Status = types.StatusDeleted
	f.UpdatedAt = time.Now().UTC()
	f.UpdatedBy = types.GetUserID(ctx)
	return s.InMemoryStore.Update(ctx, id, f)
}
