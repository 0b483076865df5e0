package routes

import (
	"github.com/gin-gonic/gin"

	exporthandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/export"
)

type ExportRouteConfig struct {
	ExportHandler *exporthandlers.Handler
}

func SetupExportRoutes(api *gin.RouterGroup, config *ExportRouteConfig) {
	exports := api.Group("/exports")
	{
		exports.GET("/tickets.xlsx", config.ExportHandler.Tickets)
		exports.GET("/backup.zip", config.ExportHandler.Backup)
		exports.GET("/tables/:table", config.ExportHandler.Table)
	}
}
