package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/flexprice/propbill/internal/domain/customer"
	"github.com/flexprice/propbill/internal/domain/feetype"
	"github.com/flexprice/propbill/internal/domain/invoice"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/postgres"
	"github.com/flexprice/propbill/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *postgres.DB
	mock sqlmock.Sqlmock
	raw  *sql.DB
}

func TestRepositories(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	raw, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.raw = raw
	s.mock = mock
	s.ctx = types.SetUserID(context.Background(), "tester")
	s.db = postgres.NewFromSQLX(sqlx.NewDb(raw, "postgres"), logger.NewNoopLogger())
}

func (s *RepositorySuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.raw.Close()
}

var customerRowColumns = []string{
	"id", "name", "email", "property_address", "property_city", "property_state", "property_zip",
	"rate", "cadence", "fee_type", "fee_2_type", "fee_2_amount", "fee_3_type", "fee_3_amount",
	"additional_fee_desc", "additional_fee_amount", "next_bill_date",
	"status", "created_at", "updated_at", "created_by", "updated_by",
}

func (s *RepositorySuite) customerRows() *sqlmock.Rows {
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	due := time.Date(2025, 3, 14, 0, 0, 0, 0, time.FixedZone("", 0))
	return sqlmock.NewRows(customerRowColumns).AddRow(
		"cust_1", "Jane Doe", "jane@example.com", "123 Main St", "Springfield", "IL", "62701",
		"250.00000000", "monthly", "", "Landscaping", "40.00000000", "", nil,
		"", nil, due,
		"published", created, created, "tester", "tester",
	)
}

func (s *RepositorySuite) TestCustomerGet() {
	repo := NewCustomerRepository(s.db, logger.NewNoopLogger())
	s.mock.ExpectQuery(`SELECT (.+) FROM customers WHERE id = \$1 AND status = \$2`).
		WithArgs("cust_1", "published").
		WillReturnRows(s.customerRows())

	c, err := repo.Get(s.ctx, "cust_1")
	s.Require().NoError(err)
	s.Equal("Jane Doe", c.Name)
	s.Equal(types.CadenceMonthly, c.Cadence)
	s.True(c.Rate.Equal(decimal.NewFromInt(250)))
	s.True(c.Fee2Amount.Valid)
	s.False(c.Fee3Amount.Valid)
	s.False(c.AdditionalFeeAmount.Valid)
	s.Equal(time.UTC, c.NextBillDate.Location())
	s.True(c.IsDueOn(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))
}

func (s *RepositorySuite) TestCustomerGetNotFound() {
	repo := NewCustomerRepository(s.db, logger.NewNoopLogger())
	s.mock.ExpectQuery(`SELECT (.+) FROM customers`).
		WillReturnRows(sqlmock.NewRows(customerRowColumns))

	_, err := repo.Get(s.ctx, "cust_missing")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *RepositorySuite) TestCustomerListDueOn() {
	repo := NewCustomerRepository(s.db, logger.NewNoopLogger())
	s.mock.ExpectQuery(`SELECT (.+) FROM customers\s+WHERE next_bill_date = \$1::date AND status = \$2`).
		WithArgs("2025-03-14", "published").
		WillReturnRows(s.customerRows())

	due, err := repo.ListDueOn(s.ctx, time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Len(due, 1)
}

func (s *RepositorySuite) TestCustomerListAppliesPaging() {
	repo := NewCustomerRepository(s.db, logger.NewNoopLogger())
	s.mock.ExpectQuery(`SELECT (.+) FROM customers WHERE status = \$1 ORDER BY created_at ASC, id LIMIT \$2 OFFSET \$3`).
		WithArgs("published", 10, 20).
		WillReturnRows(s.customerRows())

	list, err := repo.List(s.ctx, &types.CustomerFilter{
		QueryFilter: &types.QueryFilter{
			Limit:  lo.ToPtr(10),
			Offset: lo.ToPtr(20),
			Order:  lo.ToPtr(types.OrderAsc),
		},
	})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *RepositorySuite) TestCustomerCreateAndUpdate() {
	repo := NewCustomerRepository(s.db, logger.NewNoopLogger())
	c := &customer.Customer{
		ID:              "cust_1",
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		PropertyAddress: "123 Main St",
		Rate:            decimal.NewFromInt(250),
		Cadence:         types.CadenceMonthly,
		NextBillDate:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		BaseModel:       types.GetDefaultBaseModel(s.ctx),
	}

	s.mock.ExpectExec(`INSERT INTO customers`).WillReturnResult(sqlmock.NewResult(0, 1))
	s.Require().NoError(repo.Create(s.ctx, c))

	s.mock.ExpectExec(`UPDATE customers SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(s.ctx, c)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *RepositorySuite) TestCustomerDeleteIsSoft() {
	repo := NewCustomerRepository(s.db, logger.NewNoopLogger())
	s.mock.ExpectExec(`UPDATE customers SET`).
		WithArgs("deleted", sqlmock.AnyArg(), "tester", "cust_1", "published").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(repo.Delete(s.ctx, "cust_1"))
}

func (s *RepositorySuite) TestFeeTypeDuplicateName() {
	repo := NewFeeTypeRepository(s.db, logger.NewNoopLogger())
	s.mock.ExpectExec(`INSERT INTO fee_types`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(s.ctx, &feetype.FeeType{
		ID:        "fee_type_1",
		Name:      "Landscaping",
		BaseModel: types.GetDefaultBaseModel(s.ctx),
	})
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
	s.Equal(409, ierr.HTTPStatusFromErr(err))
}

func (s *RepositorySuite) TestFeeTypeOtherStorageErrors() {
	repo := NewFeeTypeRepository(s.db, logger.NewNoopLogger())
	s.mock.ExpectExec(`INSERT INTO fee_types`).
		WillReturnError(&pq.Error{Code: "08006", Message: "connection failure"})

	err := repo.Create(s.ctx, &feetype.FeeType{ID: "fee_type_1", Name: "Pool"})
	s.Require().Error(err)
	s.False(ierr.IsAlreadyExists(err))
	s.True(ierr.Is(err, ierr.ErrDatabase))
}

func (s *RepositorySuite) TestInvoiceListByCustomer() {
	repo := NewInvoiceRepository(s.db, logger.NewNoopLogger())
	created := time.Date(2025, 3, 14, 6, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "invoice_date", "period_label", "amount", "file_name",
		"email_subject", "email_body", "created_at", "created_by",
	}).AddRow(
		"inv_1", "cust_1", created, "March 2025", "290.00000000", "Invoice_March_2025_Main_St.docx",
		"Invoice – March 2025 – 123 Main St", "Hi Jane Doe,", created, "system",
	)

	s.mock.ExpectQuery(`SELECT (.+) FROM invoices WHERE customer_id = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("cust_1", types.FILTER_DEFAULT_LIMIT, 0).
		WillReturnRows(rows)

	list, err := repo.List(s.ctx, &types.InvoiceFilter{CustomerID: "cust_1"})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Invoice_March_2025_Main_St.docx", list[0].FileName)
	s.True(list[0].Amount.Equal(decimal.NewFromInt(290)))
	s.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), list[0].InvoiceDate)
}

func (s *RepositorySuite) TestInvoiceCreate() {
	repo := NewInvoiceRepository(s.db, logger.NewNoopLogger())
	s.mock.ExpectExec(`INSERT INTO invoices`).WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(repo.Create(s.ctx, &invoice.Invoice{
		ID:          "inv_1",
		CustomerID:  "cust_1",
		InvoiceDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		PeriodLabel: "March 2025",
		Amount:      decimal.NewFromInt(290),
		FileName:    "Invoice_March_2025_Main_St.docx",
		CreatedAt:   time.Now().UTC(),
	}))
}

func (s *RepositorySuite) TestPropertyDeleteMissing() {
	repo := NewPropertyRepository(s.db, logger.NewNoopLogger())
	s.mock.ExpectExec(`DELETE FROM properties WHERE id = \$1`).
		WithArgs("prop_missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(s.ctx, "prop_missing")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}
