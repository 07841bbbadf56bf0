package service

import (
	"time"

	"github.com/flexprice/propbill/internal/config"
	"github.com/flexprice/propbill/internal/docx"
	"github.com/flexprice/propbill/internal/domain/customer"
	"github.com/flexprice/propbill/internal/domain/feetype"
	"github.com/flexprice/propbill/internal/domain/invoice"
	"github.com/flexprice/propbill/internal/domain/property"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/postgres"
	"github.com/flexprice/propbill/internal/sentry"
	"github.com/flexprice/propbill/internal/storage"
	"github.com/flexprice/propbill/internal/types"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Clock  types.Clock
	Sentry sentry.Reporter

	// Repositories
	CustomerRepo customer.Repository
	PropertyRepo property.Repository
	FeeTypeRepo  feetype.Repository
	InvoiceRepo  invoice.Repository

	// Documents
	Templates storage.TemplateSource
	Sink      storage.DocumentSink
	Renderer  *docx.Renderer
}

// NewServiceParams creates a new ServiceParams instance
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	clock types.Clock,
	sentryReporter sentry.Reporter,
	customerRepo customer.Repository,
	propertyRepo property.Repository,
	feeTypeRepo feetype.Repository,
	invoiceRepo invoice.Repository,
	templates storage.TemplateSource,
	sink storage.DocumentSink,
	renderer *docx.Renderer,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		Clock:        clock,
		Sentry:       sentryReporter,
		CustomerRepo: customerRepo,
		PropertyRepo: propertyRepo,
		FeeTypeRepo:  feeTypeRepo,
		InvoiceRepo:  invoiceRepo,
		Templates:    templates,
		Sink:         sink,
		Renderer:     renderer,
	}
}

// NewRenderer builds the template renderer from the configured styling
func NewRenderer(cfg *config.Configuration) *docx.Renderer {
	return docx.NewRenderer(docx.Style{
		Font:   cfg.Template.Font,
		SizePt: cfg.Template.FontSize,
	})
}

// today is the current civil date in the billing timezone
func (p ServiceParams) today() (time.Time, error) {
	loc, err := p.Config.Billing.Location()
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Invalid billing timezone %q", p.Config.Billing.Timezone).
			Mark(ierr.ErrSystem)
	}
	return types.TodayIn(p.Clock.Now(), loc), nil
}
