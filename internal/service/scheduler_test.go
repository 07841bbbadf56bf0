package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flexprice/propbill/internal/domain/customer"
	"github.com/flexprice/propbill/internal/domain/invoice"
	"github.com/flexprice/propbill/internal/domain/property"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/testutil"
	"github.com/flexprice/propbill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// failingInvoiceRepo refuses to record invoices of one customer
type failingInvoiceRepo struct {
	invoice.Repository
	customerID string
}

func (r *failingInvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv.CustomerID == r.customerID {
		return ierr.NewError("insert failed").
			WithHint("Failed to save invoice").
			Mark(ierr.ErrDatabase)
	}
	return r.Repository.Create(ctx, inv)
}

type SchedulerServiceSuite struct {
	testutil.BaseServiceTestSuite
	params  ServiceParams
	service SchedulerService
}

func TestSchedulerService(t *testing.T) {
	suite.Run(t, new(SchedulerServiceSuite))
}

func (s *SchedulerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestParams(&s.BaseServiceTestSuite)
	s.service = NewSchedulerService(s.params, NewBillingService(s.params))
}

func (s *SchedulerServiceSuite) createCustomer(nextBillDate time.Time, mutate ...func(*customer.Customer)) *customer.Customer {
	c := testCustomer(&s.BaseServiceTestSuite, nextBillDate)
	for _, m := range mutate {
		m(c)
	}
	s.Require().NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), c))
	return c
}

func (s *SchedulerServiceSuite) reload(id string) *customer.Customer {
	c, err := s.GetStores().CustomerRepo.Get(s.GetContext(), id)
	s.Require().NoError(err)
	return c
}

func (s *SchedulerServiceSuite) invoices() []*invoice.Invoice {
	invs, err := s.GetStores().InvoiceRepo.List(s.GetContext(), nil)
	s.Require().NoError(err)
	return invs
}

func (s *SchedulerServiceSuite) TestRunToday_OnlyBillsCustomersDueToday() {
	// the suite clock reads 2025-03-14 in New York
	yesterday := s.createCustomer(date(2025, time.March, 13))
	today := s.createCustomer(date(2025, time.March, 14))
	tomorrow := s.createCustomer(date(2025, time.March, 15))

	resp, err := s.service.RunToday(s.GetContext())
	s.Require().NoError(err)

	s.Equal("2025-03-14", resp.RunDate)
	s.Equal(1, resp.Processed)
	s.Equal(1, resp.Succeeded)
	s.Zero(resp.Failed)
	s.Empty(resp.Unadvanced)
	s.Require().Len(resp.Items, 1)
	s.Equal(today.ID, resp.Items[0].CustomerID)
	s.Equal("2025-04-13", resp.Items[0].NextBillDate)
	s.True(resp.Items[0].Advanced)

	invs := s.invoices()
	s.Require().Len(invs, 1)
	s.Equal(today.ID, invs[0].CustomerID)
	s.Equal(resp.Items[0].InvoiceID, invs[0].ID)

	s.Equal(date(2025, time.April, 13), s.reload(today.ID).NextBillDate)
	s.Equal(date(2025, time.March, 13), s.reload(yesterday.ID).NextBillDate)
	s.Equal(date(2025, time.March, 15), s.reload(tomorrow.ID).NextBillDate)
}

func (s *SchedulerServiceSuite) TestRunToday_UsesBillingTimezone() {
	// 22:00 on March 14 in New York is already March 15 in UTC
	s.GetClock().Set(time.Date(2025, time.March, 15, 2, 0, 0, 0, time.UTC))
	due := s.createCustomer(date(2025, time.March, 14))
	s.createCustomer(date(2025, time.March, 15))

	resp, err := s.service.RunToday(s.GetContext())
	s.Require().NoError(err)
	s.Equal("2025-03-14", resp.RunDate)
	s.Require().Len(resp.Items, 1)
	s.Equal(due.ID, resp.Items[0].CustomerID)
}

func (s *SchedulerServiceSuite) TestRunForDate_AdvancesByCadence() {
	tests := []struct {
		name    string
		cadence types.Cadence
		due     time.Time
		want    time.Time
	}{
		{"monthly", types.CadenceMonthly, date(2025, time.January, 15), date(2025, time.February, 14)},
		{"quarterly", types.CadenceQuarterly, date(2025, time.January, 15), date(2025, time.April, 15)},
		{"yearly", types.CadenceYearly, date(2025, time.January, 15), date(2026, time.January, 15)},
		{"yearly over leap year", types.CadenceYearly, date(2024, time.January, 15), date(2025, time.January, 14)},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			c := s.createCustomer(tt.due, func(c *customer.Customer) { c.Cadence = tt.cadence })

			resp, err := s.service.RunForDate(s.GetContext(), tt.due)
			s.Require().NoError(err)
			s.Equal(1, resp.Succeeded)
			s.Equal(tt.want, s.reload(c.ID).NextBillDate)
		})
	}
}

func (s *SchedulerServiceSuite) TestRunForDate_UnknownCadenceIsInvoicedButNotAdvanced() {
	c := s.createCustomer(date(2025, time.March, 14), func(c *customer.Customer) {
		c.Cadence = types.Cadence("weekly")
	})

	resp, err := s.service.RunForDate(s.GetContext(), date(2025, time.March, 14))
	s.Require().NoError(err)
	s.Equal(1, resp.Succeeded)
	s.Equal([]string{c.ID}, resp.Unadvanced)
	s.False(resp.Items[0].Advanced)
	s.Equal("2025-03-14", resp.Items[0].NextBillDate)

	s.Len(s.invoices(), 1)
	s.Equal(date(2025, time.March, 14), s.reload(c.ID).NextBillDate)

	reporter := s.GetReporter()
	s.Require().Len(reporter.Messages, 1)
	s.Equal(c.ID, reporter.Messages[0].Tags["customer_id"])
	s.Empty(reporter.Exceptions)
}

func (s *SchedulerServiceSuite) TestRunForDate_ContinuesAfterCustomerFailure() {
	first := s.createCustomer(date(2025, time.March, 14))
	second := s.createCustomer(date(2025, time.March, 14))
	third := s.createCustomer(date(2025, time.March, 14))

	params := s.params
	params.InvoiceRepo = &failingInvoiceRepo{Repository: s.GetStores().InvoiceRepo, customerID: second.ID}
	svc := NewSchedulerService(params, NewBillingService(params))

	resp, err := svc.RunForDate(s.GetContext(), date(2025, time.March, 14))
	s.Require().NoError(err)
	s.Equal(3, resp.Processed)
	s.Equal(2, resp.Succeeded)
	s.Equal(1, resp.Failed)
	s.Require().Len(resp.Errors, 1)
	s.Equal(second.ID, resp.Errors[0].CustomerID)

	s.Len(s.invoices(), 2)
	s.Equal(date(2025, time.April, 13), s.reload(first.ID).NextBillDate)
	s.Equal(date(2025, time.March, 14), s.reload(second.ID).NextBillDate)
	s.Equal(date(2025, time.April, 13), s.reload(third.ID).NextBillDate)

	reporter := s.GetReporter()
	s.Require().Len(reporter.Exceptions, 1)
	s.Equal(second.ID, reporter.Exceptions[0].Tags["customer_id"])
}

func (s *SchedulerServiceSuite) TestRunForDate_FailedAdvanceRollsBackInvoice() {
	c := s.createCustomer(date(2025, time.March, 14))
	s.GetStores().CustomerRepo.(*testutil.InMemoryCustomerStore).FailUpdate(errors.New("connection reset"))

	resp, err := s.service.RunForDate(s.GetContext(), date(2025, time.March, 14))
	s.Require().NoError(err)
	s.Equal(1, resp.Failed)
	s.Zero(resp.Succeeded)

	s.Empty(s.invoices(), "invoice insert must roll back with the date update")
	s.Equal(1, s.GetDB().Rollbacks)
	s.Zero(s.GetDB().Commits)

	s.GetStores().CustomerRepo.(*testutil.InMemoryCustomerStore).FailUpdate(nil)
	s.Equal(date(2025, time.March, 14), s.reload(c.ID).NextBillDate)
}

func (s *SchedulerServiceSuite) TestRunForDate_TemplateFailureIsIsolatedPerCustomer() {
	s.createCustomer(date(2025, time.March, 14))
	s.GetTemplateSource().Data = []byte("garbage")

	resp, err := s.service.RunForDate(s.GetContext(), date(2025, time.March, 14))
	s.Require().NoError(err)
	s.Equal(1, resp.Failed)
	s.Empty(s.invoices())
}

func (s *SchedulerServiceSuite) TestRunForDate_IncludesPropertyFeesAndStoresDocument() {
	c := s.createCustomer(date(2025, time.March, 14))
	s.Require().NoError(s.GetStores().PropertyRepo.Create(s.GetContext(), &property.Property{
		ID:         "prop_1",
		CustomerID: c.ID,
		Address:    "9 Side Rd",
		FeeAmount:  decimal.NewNullDecimal(dec("10")),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}))

	resp, err := s.service.RunForDate(s.GetContext(), date(2025, time.March, 14))
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)

	item := resp.Items[0]
	s.True(item.Amount.Equal(dec("300")))
	s.Equal("Invoice_March_2025_Main_St.docx", item.FileName)
	s.Equal("mem://Invoice_March_2025_Main_St.docx", item.Location)
	s.Contains(s.GetSink().Docs, item.FileName)
}

func (s *SchedulerServiceSuite) TestRunForDate_SinkFailureKeepsInvoice() {
	c := s.createCustomer(date(2025, time.March, 14))
	s.GetSink().Err = ierr.NewError("bucket unavailable").Mark(ierr.ErrStorage)

	resp, err := s.service.RunForDate(s.GetContext(), date(2025, time.March, 14))
	s.Require().NoError(err)
	s.Equal(1, resp.Succeeded)
	s.Empty(resp.Items[0].Location)
	s.Len(s.invoices(), 1)
	s.Equal(date(2025, time.April, 13), s.reload(c.ID).NextBillDate)
	s.Len(s.GetReporter().Exceptions, 1)
}

func (s *SchedulerServiceSuite) TestRunForDate_SkipsDeletedCustomers() {
	c := s.createCustomer(date(2025, time.March, 14))
	s.Require().NoError(s.GetStores().CustomerRepo.Delete(s.GetContext(), c.ID))

	resp, err := s.service.RunForDate(s.GetContext(), date(2025, time.March, 14))
	s.Require().NoError(err)
	s.Zero(resp.Processed)
	s.Empty(s.invoices())
}

func (s *SchedulerServiceSuite) TestRunForDate_NothingDue() {
	resp, err := s.service.RunForDate(s.GetContext(), date(2025, time.March, 14))
	s.Require().NoError(err)
	s.Zero(resp.Processed)
	s.NotEmpty(resp.RunID)
	s.Empty(resp.Items)
}
