package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bid-labs/ticketgen/internal/application/catalog/dto"
	"github.com/bid-labs/ticketgen/internal/shared/utils"
)

// CreateProject handles POST /projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !h.bind(c, &req, "create project") {
		return
	}

	result, err := h.service.CreateProject(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Project created successfully")
}

// UpdateProject handles PATCH /projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateProjectRequest
	if !h.bind(c, &req, "update project") {
		return
	}

	result, err := h.service.UpdateProject(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project updated successfully", result)
}

// DeleteProject handles DELETE /projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetProject handles GET /projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListProjects handles GET /projects
func (h *Handler) ListProjects(c *gin.Context) {
	req, err := parseListRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListProjects(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, req.Page, req.PageSize)
}
