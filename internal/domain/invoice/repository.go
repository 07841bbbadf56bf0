package invoice

import (
	"context"

	"github.com/flexprice/propbill/internal/types"
)

// Repository defines the interface for invoice data access.
// Invoices are never updated once created.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)
	// Delete is an administrative removal, not part of normal billing
	Delete(ctx context.Context, id string) error
}
