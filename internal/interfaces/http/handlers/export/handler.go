package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ticketUsecases "github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
	"github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/ticket"
	"github.com/bid-labs/ticketgen/internal/shared/biztime"
	"github.com/bid-labs/ticketgen/internal/shared/constants"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
	"github.com/bid-labs/ticketgen/internal/shared/utils"
)

type exportTicketsUseCase interface {
	Execute(ctx context.Context, query ticketUsecases.ListTicketsQuery, w io.Writer) error
}

type exportTableUseCase interface {
	Validate(table string) error
	Execute(ctx context.Context, table string, w io.Writer) error
}

type backupUseCase interface {
	Execute(ctx context.Context, w io.Writer) error
}

type Handler struct {
	ticketsUC exportTicketsUseCase
	tableUC   exportTableUseCase
	backupUC  backupUseCase
	logger    logger.Interface
}

func NewHandler(
	ticketsUC exportTicketsUseCase,
	tableUC exportTableUseCase,
	backupUC backupUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		ticketsUC: ticketsUC,
		tableUC:   tableUC,
		backupUC:  backupUC,
		logger:    logger,
	}
}

// Tickets handles GET /exports/tickets.xlsx. It accepts the same filters as
// the ticket listing and ignores pagination.
func (h *Handler) Tickets(c *gin.Context) {
	query, err := ticket.ParseListTicketsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.ticketsUC.Execute(c.Request.Context(), query, &buf); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	attachment(c, fmt.Sprintf("tickets_%s.xlsx", stamp()))
	c.Data(http.StatusOK, constants.ContentTypeXLSX, buf.Bytes())
}

// Table handles GET /exports/tables/:table
func (h *Handler) Table(c *gin.Context) {
	table := strings.TrimSuffix(strings.ToLower(c.Param("table")), ".csv")
	if err := h.tableUC.Validate(table); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	attachment(c, table+".csv")
	c.Header("Content-Type", constants.ContentTypeCSV)
	c.Status(http.StatusOK)
	if err := h.tableUC.Execute(c.Request.Context(), table, c.Writer); err != nil {
		if !c.Writer.Written() {
			c.Header("Content-Disposition", "")
			c.Header("Content-Type", "")
			utils.ErrorResponseWithError(c, err)
			return
		}
		h.logger.Errorw("table export aborted mid-stream", "table", table, "error", err)
		c.Abort()
	}
}

// Backup handles GET /exports/backup.zip
func (h *Handler) Backup(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.backupUC.Execute(c.Request.Context(), &buf); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	attachment(c, fmt.Sprintf("backup_%s.zip", stamp()))
	c.Data(http.StatusOK, constants.ContentTypeZIP, buf.Bytes())
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func stamp() string {
	return biztime.Format(biztime.NowUTC(), constants.ExportFileStampFormat)
}
