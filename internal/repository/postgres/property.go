package postgres

import (
	"context"

	"github.com/flexprice/propbill/internal/domain/property"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/postgres"
	"github.com/flexprice/propbill/internal/types"
)

const propertyColumns = `id, customer_id, address, city, state, zip_code, fee_amount,
	status, created_at, updated_at, created_by, updated_by`

type propertyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPropertyRepository(db *postgres.DB, logger *logger.Logger) property.Repository {
	return &propertyRepository{db: db, logger: logger}
}

func (r *propertyRepository) Create(ctx context.Context, p *property.Property) error {
	query := `
		INSERT INTO properties (
			id, customer_id, address, city, state, zip_code, fee_amount,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :customer_id, :address, :city, :state, :zip_code, :fee_amount,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating property",
		"property_id", p.ID,
		"customer_id", p.CustomerID,
	)

	_, err := r.db.NamedExecContext(ctx, query, p)
	return wrapError(err, "Property", p.ID)
}

func (r *propertyRepository) Get(ctx context.Context, id string) (*property.Property, error) {
	var p property.Property
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &p, query, id, types.StatusPublished); err != nil {
		return nil, wrapError(err, "Property", id)
	}
	return &p, nil
}

func (r *propertyRepository) ListByCustomer(ctx context.Context, customerID string) ([]*property.Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		WHERE customer_id = $1 AND status = $2
		ORDER BY created_at, id`

	var props []*property.Property
	if err := r.db.SelectContext(ctx, &props, query, customerID, types.StatusPublished); err != nil {
		return nil, wrapError(err, "Property", "")
	}
	return props, nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting property", "property_id", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "Property", id)
	}
	return notFoundIfNoRows(res, "Property", id)
}

func (r *propertyRepository) DeleteByCustomer(ctx context.Context, customerID string) error {
	r.logger.Debugw("deleting properties of customer", "customer_id", customerID)

	_, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE customer_id = $1`, customerID)
	return wrapError(err, "Property", "")
}
