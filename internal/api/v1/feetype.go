package v1

import (
	"net/http"

	"github.com/flexprice/propbill/internal/api/dto"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/service"
	"github.com/gin-gonic/gin"
)

type FeeTypeHandler struct {
	service service.FeeTypeService
	log     *logger.Logger
}

func NewFeeTypeHandler(service service.FeeTypeService, log *logger.Logger) *FeeTypeHandler {
	return &FeeTypeHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a fee type
// @Tags FeeTypes
// @Accept json
// @Produce json
// @Param fee_type body dto.CreateFeeTypeRequest true "Fee type"
// @Success 201 {object} dto.FeeTypeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /fee-types [post]
func (h *FeeTypeHandler) CreateFeeType(c *gin.Context) {
	var req dto.CreateFeeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateFeeType(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List fee types
// @Tags FeeTypes
// @Produce json
// @Success 200 {object} dto.ListFeeTypesResponse
// @Router /fee-types [get]
func (h *FeeTypeHandler) GetFeeTypes(c *gin.Context) {
	resp, err := h.service.GetFeeTypes(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a fee type
// @Tags FeeTypes
// @Param id path string true "Fee type ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /fee-types/{id} [delete]
func (h *FeeTypeHandler) DeleteFeeType(c *gin.Context) {
	if err := h.service.DeleteFeeType(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
