package repository

import (
	"github.com/flexprice/propbill/internal/domain/customer"
	"github.com/flexprice/propbill/internal/domain/feetype"
	"github.com/flexprice/propbill/internal/domain/invoice"
	"github.com/flexprice/propbill/internal/domain/property"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/postgres"
	postgresRepo "github.com/flexprice/propbill/internal/repository/postgres"
)

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger)
}

func NewPropertyRepository(db *postgres.DB, logger *logger.Logger) property.Repository {
	return postgresRepo.NewPropertyRepository(db, logger)
}

func NewFeeTypeRepository(db *postgres.DB, logger *logger.Logger) feetype.Repository {
	return postgresRepo.NewFeeTypeRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}
