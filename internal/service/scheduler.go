package service

import (
	"context"
	"time"

	"github.com/flexprice/propbill/internal/api/dto"
	"github.com/flexprice/propbill/internal/domain/customer"
	"github.com/flexprice/propbill/internal/types"
)

// SchedulerService runs the daily billing cycle
type SchedulerService interface {
	// RunToday bills every customer due today in the billing timezone
	RunToday(ctx context.Context) (*dto.BillingRunResponse, error)
	// RunForDate bills every customer whose next bill date is exactly runDate
	RunForDate(ctx context.Context, runDate time.Time) (*dto.BillingRunResponse, error)
}

type schedulerService struct {
	ServiceParams
	billing BillingService
}

func NewSchedulerService(params ServiceParams, billing BillingService) SchedulerService {
	return &schedulerService{
		ServiceParams: params,
		billing:       billing,
	}
}

func (s *schedulerService) RunToday(ctx context.Context) (*dto.BillingRunResponse, error) {
	today, err := s.today()
	if err != nil {
		return nil, err
	}
	return s.RunForDate(ctx, today)
}

func (s *schedulerService) RunForDate(ctx context.Context, runDate time.Time) (*dto.BillingRunResponse, error) {
	runDate = types.CivilDate(runDate)
	runID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILLING_RUN)
	ctx = types.SetRunID(ctx, runID)

	span, ctx := s.Sentry.StartTransaction(ctx, "billing.run")
	if span != nil {
		span.SetTag("run_date", types.FormatISODate(runDate))
		defer span.Finish()
	}

	customers, err := s.CustomerRepo.ListDueOn(ctx, runDate)
	if err != nil {
		s.Sentry.CaptureException(ctx, err, map[string]string{"run_id": runID})
		return nil, err
	}

	s.Logger.Infow("starting billing run",
		"run_id", runID,
		"run_date", types.FormatISODate(runDate),
		"due_customers", len(customers),
	)

	resp := dto.NewBillingRunResponse(runID, types.FormatISODate(runDate))
	for _, c := range customers {
		resp.Processed++
		tags := map[string]string{
			"run_id":      runID,
			"customer_id": c.ID,
		}

		item, err := s.billCustomer(ctx, c, runDate)
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, &dto.BillingRunError{
				CustomerID: c.ID,
				Error:      err.Error(),
			})
			s.Logger.Errorw("failed to bill customer",
				"run_id", runID,
				"customer_id", c.ID,
				"error", err,
			)
			s.Sentry.CaptureException(ctx, err, tags)
			continue
		}

		resp.Succeeded++
		resp.Items = append(resp.Items, item)
		if !item.Advanced {
			resp.Unadvanced = append(resp.Unadvanced, c.ID)
			s.Logger.Warnw("invoiced customer but could not advance next bill date",
				"run_id", runID,
				"customer_id", c.ID,
				"cadence", c.Cadence,
				"next_bill_date", item.NextBillDate,
			)
			s.Sentry.CaptureMessage(ctx, "billing cadence has no advance rule: "+c.Cadence.String(), tags)
		}
	}

	s.Logger.Infow("finished billing run",
		"run_id", runID,
		"run_date", resp.RunDate,
		"processed", resp.Processed,
		"succeeded", resp.Succeeded,
		"failed", resp.Failed,
		"unadvanced", len(resp.Unadvanced),
	)
	return resp, nil
}

// billCustomer issues the invoice and advances the due date in one transaction.
// The document is written to the output sink only after the commit; a sink
// failure is reported but does not undo the invoice.
func (s *schedulerService) billCustomer(ctx context.Context, c *customer.Customer, runDate time.Time) (*dto.BillingRunItem, error) {
	var generated *GeneratedInvoice
	var advanced bool

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		props, err := s.PropertyRepo.ListByCustomer(txCtx, c.ID)
		if err != nil {
			return err
		}

		generated, err = s.billing.Generate(txCtx, GenerateParams{
			Customer:    c,
			Properties:  props,
			InvoiceDate: runDate,
			Fees:        c.StoredFees(),
		})
		if err != nil {
			return err
		}

		if err := s.InvoiceRepo.Create(txCtx, generated.Invoice); err != nil {
			return err
		}

		var next time.Time
		next, advanced = c.Cadence.NextBillDate(c.NextBillDate)
		if !advanced {
			return nil
		}
		c.NextBillDate = next
		c.UpdatedAt = s.Clock.Now().UTC()
		c.UpdatedBy = types.GetUserID(txCtx)
		return s.CustomerRepo.Update(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	s.Sentry.AddBreadcrumb("billing", "invoiced customer "+c.ID, map[string]interface{}{
		"invoice_id": generated.Invoice.ID,
		"run_id":     types.GetRunID(ctx),
	})

	item := &dto.BillingRunItem{
		CustomerID:   c.ID,
		InvoiceID:    generated.Invoice.ID,
		FileName:     generated.Document.FileName,
		Amount:       generated.Invoice.Amount,
		NextBillDate: types.FormatISODate(c.NextBillDate),
		Advanced:     advanced,
	}

	location, err := s.Sink.Put(ctx, generated.Document.FileName, generated.Document.Data)
	if err != nil {
		s.Logger.Errorw("failed to store invoice document",
			"run_id", types.GetRunID(ctx),
			"customer_id", c.ID,
			"invoice_id", generated.Invoice.ID,
			"error", err,
		)
		s.Sentry.CaptureException(ctx, err, map[string]string{
			"run_id":     types.GetRunID(ctx),
			"invoice_id": generated.Invoice.ID,
		})
		return item, nil
	}
	item.Location = location
	return item, nil
}
