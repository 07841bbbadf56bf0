package main

import (
	"context"
	"time"

	"github.com/flexprice/propbill/internal/api"
	"github.com/flexprice/propbill/internal/api/cron"
	v1 "github.com/flexprice/propbill/internal/api/v1"
	"github.com/flexprice/propbill/internal/cache"
	"github.com/flexprice/propbill/internal/config"
	"github.com/flexprice/propbill/internal/jobs"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/postgres"
	"github.com/flexprice/propbill/internal/repository"
	"github.com/flexprice/propbill/internal/s3"
	"github.com/flexprice/propbill/internal/sentry"
	"github.com/flexprice/propbill/internal/service"
	"github.com/flexprice/propbill/internal/storage"
	"github.com/flexprice/propbill/internal/temporal"
	"github.com/flexprice/propbill/internal/types"
	"github.com/flexprice/propbill/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		// Validator, registers the custom request tags
		fx.Invoke(validator.NewValidator),

		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Clock
			types.NewSystemClock,

			// Storage
			s3.NewService,
			storage.NewTemplateSource,
			storage.NewDocumentSink,

			// Repositories
			repository.NewCustomerRepository,
			repository.NewPropertyRepository,
			repository.NewFeeTypeRepository,
			repository.NewInvoiceRepository,

			// Temporal
			provideTemporalClient,
		),
		postgres.Module(),
		sentry.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewRenderer,
			service.NewServiceParams,

			service.NewBillingService,
			service.NewSchedulerService,
			service.NewCustomerService,
			service.NewPropertyService,
			service.NewFeeTypeService,
			service.NewInvoiceService,

			jobs.NewBillingJob,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	customerService service.CustomerService,
	propertyService service.PropertyService,
	feeTypeService service.FeeTypeService,
	invoiceService service.InvoiceService,
	schedulerService service.SchedulerService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(logger),
		Customer:    v1.NewCustomerHandler(customerService, propertyService, logger),
		Property:    v1.NewPropertyHandler(propertyService, logger),
		FeeType:     v1.NewFeeTypeHandler(feeTypeService, logger),
		Invoice:     v1.NewInvoiceHandler(invoiceService, logger),
		Billing:     v1.NewBillingHandler(schedulerService, logger),
		CronBilling: cron.NewBillingHandler(schedulerService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Logging.Level != types.LogLevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, logger)
}

// provideTemporalClient dials temporal only for the worker mode
func provideTemporalClient(cfg *config.Configuration, log *logger.Logger) (*temporal.TemporalClient, error) {
	if cfg.Deployment.Mode != types.ModeTemporalWorker {
		return nil, nil
	}
	return temporal.NewTemporalClient(&cfg.Temporal, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	billingJob *jobs.BillingJob,
	temporalClient *temporal.TemporalClient,
	scheduler service.SchedulerService,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		billingJob.RegisterWithLifecycle(lc)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeScheduler:
		billingJob.RegisterWithLifecycle(lc)
	case types.ModeTemporalWorker:
		startTemporalWorker(lc, temporalClient, cfg, scheduler, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startTemporalWorker(
	lc fx.Lifecycle,
	temporalClient *temporal.TemporalClient,
	cfg *config.Configuration,
	scheduler service.SchedulerService,
	log *logger.Logger,
) {
	worker := temporal.NewWorker(temporalClient, cfg.Temporal, scheduler, log)
	worker.RegisterWithLifecycle(lc)

	temporalService := temporal.NewService(temporalClient, cfg, log)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return temporalService.ScheduleDailyBillingRun(ctx)
		},
		OnStop: func(ctx context.Context) error {
			temporalService.Close()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
