package ticket

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
	"github.com/bid-labs/ticketgen/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC    usecases.CreateManualTicketExecutor
	changeStatusUC    usecases.ChangeStatusExecutor
	getTicketUC       usecases.GetTicketExecutor
	listTicketsUC     usecases.ListTicketsExecutor
	getStatsUC        usecases.GetTicketStatsExecutor
	nextConsecutiveUC usecases.NextConsecutiveExecutor
	logger            logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateManualTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getStatsUC usecases.GetTicketStatsExecutor,
	nextConsecutiveUC usecases.NextConsecutiveExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:    createTicketUC,
		changeStatusUC:    changeStatusUC,
		getTicketUC:       getTicketUC,
		listTicketsUC:     listTicketsUC,
		getStatsUC:        getStatsUC,
		nextConsecutiveUC: nextConsecutiveUC,
		logger:            logger,
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{ID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicketByCode handles GET /tickets/by-code/:code
func (h *TicketHandler) GetTicketByCode(c *gin.Context) {
	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Code: strings.TrimSpace(c.Param("code")),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	query, err := ParseListTicketsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// UpdateTicketStatus handles PATCH /tickets/:id/status
func (h *TicketHandler) UpdateTicketStatus(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket status", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID:  ticketID,
		NewStatus: vo.TicketStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated successfully", result)
}

// GetStats handles GET /tickets/stats
func (h *TicketHandler) GetStats(c *gin.Context) {
	result, err := h.getStatsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// NextConsecutive handles GET /tickets/next-consecutive
func (h *TicketHandler) NextConsecutive(c *gin.Context) {
	query, err := parseNextConsecutiveQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.nextConsecutiveUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
