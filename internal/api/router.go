package api

import (
	"github.com/flexprice/propbill/internal/api/cron"
	v1 "github.com/flexprice/propbill/internal/api/v1"
	"github.com/flexprice/propbill/internal/config"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Customer *v1.CustomerHandler
	Property *v1.PropertyHandler
	FeeType  *v1.FeeTypeHandler
	Invoice  *v1.InvoiceHandler
	Billing  *v1.BillingHandler

	CronBilling *cron.BillingHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.GetCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PATCH("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
		customers.POST("/:id/properties", handlers.Customer.CreateProperty)
		customers.GET("/:id/properties", handlers.Customer.GetProperties)
	}

	properties := router.Group("/properties")
	{
		properties.DELETE("/:id", handlers.Property.DeleteProperty)
	}

	feeTypes := router.Group("/fee-types")
	{
		feeTypes.POST("", handlers.FeeType.CreateFeeType)
		feeTypes.GET("", handlers.FeeType.GetFeeTypes)
		feeTypes.DELETE("/:id", handlers.FeeType.DeleteFeeType)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.GenerateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.GET("/:id/download", handlers.Invoice.DownloadInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
	}

	billing := router.Group("/billing")
	{
		billing.POST("/runs", handlers.Billing.RunBilling)
	}

	cronGroup := router.Group("/cron")
	{
		billingCron := cronGroup.Group("/billing")
		billingCron.GET("/run-today", handlers.CronBilling.RunToday)
		billingCron.POST("/run-today", handlers.CronBilling.RunToday)
	}
}
