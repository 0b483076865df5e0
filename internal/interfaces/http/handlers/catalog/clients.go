package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bid-labs/ticketgen/internal/application/catalog/dto"
	"github.com/bid-labs/ticketgen/internal/shared/utils"
)

// CreateClient handles POST /clients
func (h *Handler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.bind(c, &req, "create client") {
		return
	}

	result, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Client created successfully")
}

// UpdateClient handles PATCH /clients/:id
func (h *Handler) UpdateClient(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateClientRequest
	if !h.bind(c, &req, "update client") {
		return
	}

	result, err := h.service.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Client updated successfully", result)
}

// DeleteClient handles DELETE /clients/:id. Projects of the client are
// removed with it.
func (h *Handler) DeleteClient(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetClient handles GET /clients/:id
func (h *Handler) GetClient(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListClients handles GET /clients
func (h *Handler) ListClients(c *gin.Context) {
	req, err := parseListRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListClients(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, req.Page, req.PageSize)
}

// ClientProjects handles GET /clients/:id/projects and returns the active
// projects of the client.
func (h *Handler) ClientProjects(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ClientProjects(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
