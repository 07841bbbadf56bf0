package cron

import (
	"net/http"

	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/service"
	"github.com/gin-gonic/gin"
)

// BillingHandler exposes the daily billing run to external cron callers
type BillingHandler struct {
	scheduler service.SchedulerService
	logger    *logger.Logger
}

func NewBillingHandler(scheduler service.SchedulerService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// RunToday bills every customer due today in the billing timezone.
// Per-customer failures are reported in the summary and never fail the request.
func (h *BillingHandler) RunToday(c *gin.Context) {
	h.logger.Infow("billing run triggered", "method", c.Request.Method, "remote_addr", c.ClientIP())

	resp, err := h.scheduler.RunToday(c.Request.Context())
	if err != nil {
		h.logger.Errorw("billing run failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
