package feetype

import (
	"context"
	"strings"

	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
)

// FeeType is a named fee label offered when configuring customers. Names are unique.
type FeeType struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	types.BaseModel
}

func (f *FeeType) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ierr.NewError("fee type name is required").
			WithHint("Fee type name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Repository defines the interface for fee type data access.
// Create returns an error marked ierr.ErrAlreadyExists when the name is taken.
type Repository interface {
	Create(ctx context.Context, feeType *FeeType) error
	Get(ctx context.Context, id string) (*FeeType, error)
	List(ctx context.Context) ([]*FeeType, error)
	Delete(ctx context.Context, id string) error
}
