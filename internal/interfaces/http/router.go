package http

import (
	"github.com/bid-labs/ticketgen/internal/interfaces/http/middleware"
	"github.com/bid-labs/ticketgen/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID(c.log))
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	c.engine.GET("/version", c.hdlrs.healthHandler.Version)

	api := c.engine.Group("/api/v1")

	routes.SetupCatalogRoutes(api, &routes.CatalogRouteConfig{
		CatalogHandler: c.hdlrs.catalogHandler,
	})
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler: c.hdlrs.ticketHandler,
	})
	routes.SetupSubmissionRoutes(api, &routes.SubmissionRouteConfig{
		SubmissionHandler: c.hdlrs.submissionHandler,
		UploadLimiter:     c.uploadLimiter,
	})
	routes.SetupExportRoutes(api, &routes.ExportRouteConfig{
		ExportHandler: c.hdlrs.exportHandler,
	})
}
