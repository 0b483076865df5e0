package routes

import (
	"github.com/gin-gonic/gin"

	submissionhandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/submission"
	"github.com/bid-labs/ticketgen/internal/interfaces/http/middleware"
)

type SubmissionRouteConfig struct {
	SubmissionHandler *submissionhandlers.Handler
	UploadLimiter     *middleware.RateLimiter
}

// SetupSubmissionRoutes registers the workbook upload endpoints. Uploads are
// rate limited per client IP.
func SetupSubmissionRoutes(api *gin.RouterGroup, config *SubmissionRouteConfig) {
	submissions := api.Group("/submissions")
	{
		submissions.POST("",
			config.UploadLimiter.Limit(),
			config.SubmissionHandler.Submit)
		submissions.POST("/preview",
			config.UploadLimiter.Limit(),
			config.SubmissionHandler.Preview)
		submissions.GET("",
			config.SubmissionHandler.List)
		submissions.GET("/:id",
			config.SubmissionHandler.Get)
	}
}
