package routes

import (
	"github.com/gin-gonic/gin"

	cataloghandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/catalog"
)

type CatalogRouteConfig struct {
	CatalogHandler *cataloghandlers.Handler
}

func SetupCatalogRoutes(api *gin.RouterGroup, config *CatalogRouteConfig) {
	h := config.CatalogHandler

	clients := api.Group("/clients")
	{
		clients.POST("", h.CreateClient)
		clients.GET("", h.ListClients)
		clients.GET("/:id/projects", h.ClientProjects)
		clients.GET("/:id", h.GetClient)
		clients.PATCH("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}

	serviceTypes := api.Group("/service-types")
	{
		serviceTypes.POST("", h.CreateServiceType)
		serviceTypes.GET("", h.ListServiceTypes)
		serviceTypes.GET("/:id", h.GetServiceType)
		serviceTypes.PATCH("/:id", h.UpdateServiceType)
		serviceTypes.DELETE("/:id", h.DeleteServiceType)
	}

	projects := api.Group("/projects")
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/:id", h.GetProject)
		projects.PATCH("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
	}
}
