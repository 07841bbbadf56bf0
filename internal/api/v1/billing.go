package v1

import (
	"net/http"

	"github.com/flexprice/propbill/internal/api/dto"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/service"
	"github.com/flexprice/propbill/internal/types"
	"github.com/gin-gonic/gin"
)

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

// RunBilling godoc
// @Summary Run the billing cycle for a date
// @Description Bills every customer whose next bill date equals run_date. Used to catch up a missed day.
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.RunBillingRequest true "Run date"
// @Success 200 {object} dto.BillingRunResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /billing/runs [post]
func (h *BillingHandler) RunBilling(c *gin.Context) {
	var req dto.RunBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("Invalid request format").Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	runDate, err := types.ParseDate(req.RunDate)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.scheduler.RunForDate(c.Request.Context(), runDate)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
