package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bid-labs/ticketgen/internal/application/catalog/dto"
	"github.com/bid-labs/ticketgen/internal/shared/utils"
)

// CreateServiceType handles POST /service-types
func (h *Handler) CreateServiceType(c *gin.Context) {
	var req dto.CreateServiceTypeRequest
	if !h.bind(c, &req, "create service type") {
		return
	}

	result, err := h.service.CreateServiceType(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Service type created successfully")
}

// UpdateServiceType handles PATCH /service-types/:id
func (h *Handler) UpdateServiceType(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "service type")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateServiceTypeRequest
	if !h.bind(c, &req, "update service type") {
		return
	}

	result, err := h.service.UpdateServiceType(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service type updated successfully", result)
}

// DeleteServiceType handles DELETE /service-types/:id. Projects that used it keep
// their rows with no service type.
func (h *Handler) DeleteServiceType(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "service type")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteServiceType(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetServiceType handles GET /service-types/:id
func (h *Handler) GetServiceType(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "service type")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetServiceType(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListServiceTypes handles GET /service-types
func (h *Handler) ListServiceTypes(c *gin.Context) {
	req, err := parseListRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListServiceTypes(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, req.Page, req.PageSize)
}
