package catalog

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bid-labs/ticketgen/internal/application/catalog/dto"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
	"github.com/bid-labs/ticketgen/internal/shared/utils"
)

// Handler serves the client, service type and project endpoints.
type Handler struct {
	service Service
	logger  logger.Interface
}

func NewHandler(service Service, logger logger.Interface) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// parseListRequest reads the filters shared by every catalog listing:
// active, q, client_id, sort and pagination.
func parseListRequest(c *gin.Context) (dto.ListRequest, error) {
	page := utils.ParsePagination(c)
	req := dto.ListRequest{
		Search:   strings.TrimSpace(c.Query("q")),
		Sort:     c.Query("sort"),
		Page:     page.Page,
		PageSize: page.PageSize,
	}

	var err error
	if req.Active, err = utils.ParseOptionalBoolQuery(c, "active"); err != nil {
		return req, err
	}
	if req.ClientID, err = utils.ParseOptionalUintQuery(c, "client_id"); err != nil {
		return req, err
	}
	return req, nil
}

func (h *Handler) bind(c *gin.Context, req interface{}, action string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warnw("invalid request body for "+action, "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return false
	}
	return true
}
