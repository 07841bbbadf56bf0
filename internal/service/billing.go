package service

import (
	"context"
	"fmt"
	"time"

	"github.com/flexprice/propbill/internal/docx"
	"github.com/flexprice/propbill/internal/domain/customer"
	"github.com/flexprice/propbill/internal/domain/fee"
	"github.com/flexprice/propbill/internal/domain/invoice"
	"github.com/flexprice/propbill/internal/domain/property"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/types"
)

// tierSections are the template rows available to fee tiers, in tier order
var tierSections = []docx.Section{docx.SectionFee2, docx.SectionFee3}

// BillingService renders invoices. It is the single pipeline shared by the
// scheduled run, manual generation and regeneration; it never writes records.
type BillingService interface {
	Generate(ctx context.Context, params GenerateParams) (*GeneratedInvoice, error)
}

// GenerateParams describes one invoice to render
type GenerateParams struct {
	Customer   *customer.Customer
	Properties []*property.Property
	// InvoiceDate is the reference date of the billed period
	InvoiceDate time.Time
	// Fees are billed as given; callers wanting the stored tiers pass Customer.StoredFees()
	Fees fee.Selection
	// PeriodLabel and InvoiceID are set when reproducing a stored invoice
	PeriodLabel string
	InvoiceID   string
}

// Document is a rendered invoice file
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// GeneratedInvoice is the unsaved invoice record together with its document
type GeneratedInvoice struct {
	Invoice   *invoice.Invoice
	Document  *Document
	Breakdown *fee.Breakdown
	Period    types.Period
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) Generate(ctx context.Context, params GenerateParams) (*GeneratedInvoice, error) {
	c := params.Customer
	if c == nil {
		return nil, ierr.NewError("customer is required").
			WithHint("An invoice needs a customer").
			Mark(ierr.ErrValidation)
	}
	if params.InvoiceDate.IsZero() {
		return nil, invoice.NewValidationError("invoice_date", "invoice date is required")
	}
	if len(params.Fees.Tiers) > len(tierSections) {
		return nil, ierr.NewErrorf("invoice template has %d fee tier rows, got %d tiers", len(tierSections), len(params.Fees.Tiers)).
			WithHintf("At most %d additional fee tiers can be billed", len(tierSections)).
			Mark(ierr.ErrValidation)
	}

	invoiceDate := types.CivilDate(params.InvoiceDate)
	period := types.CalculatePeriod(invoiceDate, c.Cadence)
	periodLabel := period.Label
	if params.PeriodLabel != "" {
		periodLabel = params.PeriodLabel
	}

	feeLabel := c.FeeLabel(s.Config.Billing.DefaultFeeType)
	breakdown, err := fee.Aggregate(fee.Input{
		BaseLabel:    feeLabel,
		BaseRate:     c.Rate,
		Tiers:        params.Fees.Tiers,
		Additional:   params.Fees.Additional,
		PropertyFees: property.Fees(params.Properties),
	})
	if err != nil {
		return nil, err
	}

	values, omit := s.tokenValues(c, breakdown, period, periodLabel, feeLabel, invoiceDate)

	tpl, err := s.Templates.Load(ctx)
	if err != nil {
		return nil, err
	}
	data, stats, err := s.Renderer.Render(ctx, tpl, docx.RenderRequest{Values: values, Omit: omit})
	if err != nil {
		return nil, err
	}

	fileName := types.InvoiceFileName(periodLabel, c.PropertyAddress)
	total := types.FormatMoney(breakdown.Total)

	invoiceID := params.InvoiceID
	if invoiceID == "" {
		invoiceID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)
	}
	subject := fmt.Sprintf("Invoice – %s – %s", periodLabel, c.PropertyAddress)
	body := fmt.Sprintf(
		"Hi %s,\n\nAttached is your invoice for %s (%s) for the property at %s.\n\nAmount due: %s\n\nThank you,\n%s",
		c.Name, periodLabel, feeLabel, c.PropertyAddress, total, s.Config.Billing.SenderName,
	)

	inv := &invoice.Invoice{
		ID:           invoiceID,
		CustomerID:   c.ID,
		InvoiceDate:  invoiceDate,
		PeriodLabel:  periodLabel,
		Amount:       breakdown.Total,
		FileName:     fileName,
		EmailSubject: subject,
		EmailBody:    body,
		CreatedAt:    s.Clock.Now().UTC(),
		CreatedBy:    types.GetUserID(ctx),
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	s.Logger.Debugw("rendered invoice",
		"customer_id", c.ID,
		"invoice_id", inv.ID,
		"file_name", fileName,
		"total", breakdown.Total.String(),
		"section_rows_removed", stats.SectionRowsRemoved,
		"paragraphs_replaced", stats.ParagraphsReplaced,
		"empty_fee_rows_removed", stats.EmptyFeeRowsRemoved,
		"run_id", types.GetRunID(ctx),
	)

	return &GeneratedInvoice{
		Invoice: inv,
		Document: &Document{
			FileName:    fileName,
			ContentType: types.ContentTypeDocx,
			Data:        data,
		},
		Breakdown: breakdown,
		Period:    period,
	}, nil
}

// tokenValues builds the template substitutions and the fee sections to drop.
// Absent fees render as empty strings and their rows are removed.
func (s *billingService) tokenValues(
	c *customer.Customer,
	b *fee.Breakdown,
	period types.Period,
	periodLabel string,
	feeLabel string,
	invoiceDate time.Time,
) (map[string]string, []docx.Section) {
	values := map[string]string{
		docx.TokenCustomerName:    c.Name,
		docx.TokenCustomerEmail:   c.Email,
		docx.TokenPropertyAddress: c.PropertyAddress,
		docx.TokenPropertyCity:    c.PropertyCity,
		docx.TokenPropertyState:   c.PropertyState,
		docx.TokenPropertyZip:     c.PropertyZip,
		docx.TokenPeriod:          periodLabel,
		docx.TokenPeriodDates:     period.DatesLabel(),
		docx.TokenAmount:          types.FormatMoney(c.Rate),
		docx.TokenInvoiceDate:     types.FormatDisplayDate(invoiceDate),
		docx.TokenFeeType:         feeLabel,
		docx.TokenTotalAmount:     types.FormatMoney(b.Total),
	}

	var omit []docx.Section
	setCharge := func(section docx.Section, charge fee.Charge, ok bool) {
		tokens := docx.SectionTokens(section)
		labelToken, amountToken := tokens[0], tokens[1]
		if !ok {
			values[labelToken] = ""
			values[amountToken] = ""
			omit = append(omit, section)
			return
		}
		values[labelToken] = charge.Label
		values[amountToken] = types.FormatMoney(charge.Amount)
	}

	for i, section := range tierSections {
		charge, ok := b.Tier(i)
		setCharge(section, charge, ok)
	}
	charge, ok := b.AdditionalCharge()
	setCharge(docx.SectionAdditional, charge, ok)

	return values, omit
}
