package submission

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bid-labs/ticketgen/internal/application/submission/usecases"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
	"github.com/bid-labs/ticketgen/internal/shared/utils"
)

const (
	formFieldFile       = "file"
	formFieldServiceTag = "service_type"
)

type Handler struct {
	processUC      usecases.ProcessSubmissionExecutor
	previewUC      usecases.PreviewSubmissionExecutor
	listUC         usecases.ListSubmissionsExecutor
	getUC          usecases.GetSubmissionExecutor
	maxUploadBytes int64
	logger         logger.Interface
}

func NewHandler(
	processUC usecases.ProcessSubmissionExecutor,
	previewUC usecases.PreviewSubmissionExecutor,
	listUC usecases.ListSubmissionsExecutor,
	getUC usecases.GetSubmissionExecutor,
	maxUploadBytes int64,
	logger logger.Interface,
) *Handler {
	return &Handler{
		processUC:      processUC,
		previewUC:      previewUC,
		listUC:         listUC,
		getUC:          getUC,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Submit handles POST /submissions
func (h *Handler) Submit(c *gin.Context) {
	upload, closeFn, err := h.readUpload(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer closeFn()

	result, err := h.processUC.Execute(c.Request.Context(), usecases.ProcessSubmissionCommand{
		File:       upload,
		ServiceTag: c.PostForm(formFieldServiceTag),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket generated successfully")
}

// Preview handles POST /submissions/preview
func (h *Handler) Preview(c *gin.Context) {
	upload, closeFn, err := h.readUpload(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer closeFn()

	result, err := h.previewUC.Execute(c.Request.Context(), usecases.PreviewSubmissionCommand{
		File:       upload,
		ServiceTag: c.PostForm(formFieldServiceTag),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /submissions
func (h *Handler) List(c *gin.Context) {
	page := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListSubmissionsQuery{
		Search:   strings.TrimSpace(c.Query("q")),
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Submissions, result.Total, result.Page, result.PageSize)
}

// Get handles GET /submissions/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "submission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// readUpload opens the multipart workbook. The returned func closes it.
func (h *Handler) readUpload(c *gin.Context) (usecases.Upload, func(), error) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile(formFieldFile)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return usecases.Upload{}, nil, errors.NewBadRequestError(
				fmt.Sprintf("upload exceeds %d MB", h.maxUploadBytes>>20))
		}
		h.logger.Warnw("submission without workbook", "error", err)
		return usecases.Upload{}, nil, errors.NewValidationError("file is required")
	}

	f, err := header.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded workbook", "name", header.Filename, "error", err)
		return usecases.Upload{}, nil, errors.NewBadRequestError("could not read upload")
	}

	return usecases.Upload{Name: header.Filename, Reader: f}, func() { _ = f.Close() }, nil
}
