package postgres

import (
	"context"
	"fmt"

	"github.com/flexprice/propbill/internal/domain/invoice"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/postgres"
	"github.com/flexprice/propbill/internal/types"
)

const invoiceColumns = `id, customer_id, invoice_date, period_label, amount, file_name,
	email_subject, email_body, created_at, created_by`

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, customer_id, invoice_date, period_label, amount, file_name,
			email_subject, email_body, created_at, created_by
		) VALUES (
			:id, :customer_id, :invoice_date, :period_label, :amount, :file_name,
			:email_subject, :email_body, :created_at, :created_by
		)`

	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"customer_id", inv.CustomerID,
		"period", inv.PeriodLabel,
		"run_id", types.GetRunID(ctx),
	)

	_, err := r.db.NamedExecContext(ctx, query, inv)
	return wrapError(err, "Invoice", inv.ID)
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	if err := r.db.GetContext(ctx, &inv, query, id); err != nil {
		return nil, wrapError(err, "Invoice", id)
	}
	inv.InvoiceDate = types.CivilDate(inv.InvoiceDate)
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}

	where, args := invoiceWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM invoices %s ORDER BY created_at %s, id %s LIMIT $%d OFFSET $%d`,
		invoiceColumns, where,
		orderDirection(filter.QueryFilter), orderDirection(filter.QueryFilter),
		len(args)+1, len(args)+2)
	args = append(args, filter.QueryFilter.GetLimit(), filter.QueryFilter.GetOffset())

	var invoices []*invoice.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, wrapError(err, "Invoice", "")
	}
	for _, inv := range invoices {
		inv.InvoiceDate = types.CivilDate(inv.InvoiceDate)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}

	where, args := invoiceWhere(filter)
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM invoices `+where, args...); err != nil {
		return 0, wrapError(err, "Invoice", "")
	}
	return count, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	r.logger.Infow("deleting invoice", "invoice_id", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "Invoice", id)
	}
	return notFoundIfNoRows(res, "Invoice", id)
}

func invoiceWhere(filter *types.InvoiceFilter) (string, []interface{}) {
	if filter.CustomerID == "" {
		return "", nil
	}
	return "WHERE customer_id = $1", []interface{}{filter.CustomerID}
}
