package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/ticket"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		tickets.GET("/stats",
			config.TicketHandler.GetStats)
		tickets.GET("/next-consecutive",
			config.TicketHandler.NextConsecutive)
		tickets.GET("/by-code/:code",
			config.TicketHandler.GetTicketByCode)

		tickets.PATCH("/:id/status",
			config.TicketHandler.UpdateTicketStatus)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
	}
}
