package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/flexprice/propbill/internal/domain/customer"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/postgres"
	"github.com/flexprice/propbill/internal/types"
)

const customerColumns = `id, name, email, property_address, property_city, property_state, property_zip,
	rate, cadence, fee_type, fee_2_type, fee_2_amount, fee_3_type, fee_3_amount,
	additional_fee_desc, additional_fee_amount, next_bill_date,
	status, created_at, updated_at, created_by, updated_by`

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			id, name, email, property_address, property_city, property_state, property_zip,
			rate, cadence, fee_type, fee_2_type, fee_2_amount, fee_3_type, fee_3_amount,
			additional_fee_desc, additional_fee_amount, next_bill_date,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :email, :property_address, :property_city, :property_state, :property_zip,
			:rate, :cadence, :fee_type, :fee_2_type, :fee_2_amount, :fee_3_type, :fee_3_amount,
			:additional_fee_desc, :additional_fee_amount, :next_bill_date,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating customer", "customer_id", c.ID)

	_, err := r.db.NamedExecContext(ctx, query, c)
	return wrapError(err, "Customer", c.ID)
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &c, query, id, types.StatusPublished); err != nil {
		return nil, wrapError(err, "Customer", id)
	}
	normalizeCustomer(&c)
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	if filter == nil {
		filter = &types.CustomerFilter{}
	}

	where, args := customerWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM customers %s ORDER BY created_at %s, id LIMIT $%d OFFSET $%d`,
		customerColumns, where, orderDirection(filter.QueryFilter), len(args)+1, len(args)+2)
	args = append(args, filter.QueryFilter.GetLimit(), filter.QueryFilter.GetOffset())

	var customers []*customer.Customer
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, wrapError(err, "Customer", "")
	}
	for _, c := range customers {
		normalizeCustomer(c)
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	if filter == nil {
		filter = &types.CustomerFilter{}
	}

	where, args := customerWhere(filter)
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers `+where, args...); err != nil {
		return 0, wrapError(err, "Customer", "")
	}
	return count, nil
}

func (r *customerRepository) ListDueOn(ctx context.Context, day time.Time) ([]*customer.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE next_bill_date = $1::date AND status = $2
		ORDER BY id`

	var customers []*customer.Customer
	if err := r.db.SelectContext(ctx, &customers, query, types.FormatISODate(day), types.StatusPublished); err != nil {
		return nil, wrapError(err, "Customer", "")
	}
	for _, c := range customers {
		normalizeCustomer(c)
	}

	r.logger.Debugw("listed customers due",
		"date", types.FormatISODate(day),
		"count", len(customers),
		"run_id", types.GetRunID(ctx),
	)
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers SET
			name = :name,
			email = :email,
			property_address = :property_address,
			property_city = :property_city,
			property_state = :property_state,
			property_zip = :property_zip,
			rate = :rate,
			cadence = :cadence,
			fee_type = :fee_type,
			fee_2_type = :fee_2_type,
			fee_2_amount = :fee_2_amount,
			fee_3_type = :fee_3_type,
			fee_3_amount = :fee_3_amount,
			additional_fee_desc = :additional_fee_desc,
			additional_fee_amount = :additional_fee_amount,
			next_bill_date = :next_bill_date,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND status = 'published'`

	r.logger.Debugw("updating customer",
		"customer_id", c.ID,
		"next_bill_date", types.FormatISODate(c.NextBillDate),
	)

	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return wrapError(err, "Customer", c.ID)
	}
	return notFoundIfNoRows(res, "Customer", c.ID)
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE customers SET
			status = $1,
			updated_at = $2,
			updated_by = $3
		WHERE id = $4 AND status = $5`

	r.logger.Debugw("deleting customer", "customer_id", id)

	res, err := r.db.ExecContext(ctx, query,
		types.StatusDeleted,
		time.Now().UTC(),
		types.GetUserID(ctx),
		id,
		types.StatusPublished,
	)
	if err != nil {
		return wrapError(err, "Customer", id)
	}
	return notFoundIfNoRows(res, "Customer", id)
}

func customerWhere(filter *types.CustomerFilter) (string, []interface{}) {
	where := "WHERE status = $1"
	args := []interface{}{types.StatusPublished}
	if filter.NextBillDate != nil {
		args = append(args, types.FormatISODate(*filter.NextBillDate))
		where += fmt.Sprintf(" AND next_bill_date = $%d::date", len(args))
	}
	return where, args
}

// normalizeCustomer drops the driver's location from date-only columns
func normalizeCustomer(c *customer.Customer) {
	c.NextBillDate = types.CivilDate(c.NextBillDate)
}
