package testutil

import (
	"context"
	"time"

	"github.com/flexprice/propbill/internal/config"
	"github.com/flexprice/propbill/internal/domain/customer"
	"github.com/flexprice/propbill/internal/domain/feetype"
	"github.com/flexprice/propbill/internal/domain/invoice"
	"github.com/flexprice/propbill/internal/domain/property"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/types"
	"github.com/flexprice/propbill/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	CustomerRepo customer.Repository
	PropertyRepo property.Repository
	FeeTypeRepo  feetype.Repository
	InvoiceRepo  invoice.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	stores   Stores
	db       *MockPostgresClient
	logger   *logger.Logger
	config   *config.Configuration
	clock    *FixedClock
	template *InMemoryTemplateSource
	sink     *RecordingSink
	reporter *MockReporter
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Billing.Timezone = "America/New_York"
	cfg.Billing.SenderName = "Linda Flood"
	s.config = cfg
	s.logger = logger.NewNoopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	// 2025-03-14 09:30 in New York
	s.clock = NewFixedClock(time.Date(2025, time.March, 14, 13, 30, 0, 0, time.UTC))
	s.template = NewInMemoryTemplateSource()
	s.sink = NewRecordingSink()
	s.reporter = NewMockReporter()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	customers := NewInMemoryCustomerStore()
	properties := NewInMemoryPropertyStore()
	feeTypes := NewInMemoryFeeTypeStore()
	invoices := NewInMemoryInvoiceStore()

	s.stores = Stores{
		CustomerRepo: customers,
		PropertyRepo: properties,
		FeeTypeRepo:  feeTypes,
		InvoiceRepo:  invoices,
	}
	s.db = NewMockPostgresClient(s.logger, customers, properties, feeTypes, invoices)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.PropertyRepo.(*InMemoryPropertyStore).Clear()
	s.stores.FeeTypeRepo.(*InMemoryFeeTypeStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetClock returns the pinned test clock
func (s *BaseServiceTestSuite) GetClock() *FixedClock {
	return s.clock
}

// GetTemplateSource returns the in-memory invoice template
func (s *BaseServiceTestSuite) GetTemplateSource() *InMemoryTemplateSource {
	return s.template
}

// GetSink returns the recording document sink
func (s *BaseServiceTestSuite) GetSink() *RecordingSink {
	return s.sink
}

// GetReporter returns the recording Sentry reporter
func (s *BaseServiceTestSuite) GetReporter() *MockReporter {
	return s.reporter
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
