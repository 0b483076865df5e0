package http

import (
	"github.com/bid-labs/ticketgen/internal/interfaces/http/handlers"
	catalogHandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/catalog"
	exportHandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/export"
	submissionHandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/submission"
	ticketHandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler     *handlers.HealthHandler
	catalogHandler    *catalogHandlers.Handler
	ticketHandler     *ticketHandlers.TicketHandler
	submissionHandler *submissionHandlers.Handler
	exportHandler     *exportHandlers.Handler
}
