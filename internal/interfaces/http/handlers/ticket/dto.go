package ticket

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
	"github.com/bid-labs/ticketgen/internal/shared/utils"
)

type CreateTicketRequest struct {
	ClientID      uint   `json:"client_id" binding:"required"`
	ProjectID     uint   `json:"project_id" binding:"required"`
	ServiceTypeID uint   `json:"service_type_id" binding:"required"`
	ServiceCode   string `json:"service_code" binding:"omitempty,max=10"`
	Consecutive   *int   `json:"consecutivo" binding:"omitempty,min=1,max=999"`
	Requester     string `json:"requester" binding:"max=255"`
	ProjectLead   string `json:"project_lead" binding:"max=255"`
	VersionNumber string `json:"version" binding:"max=50"`
}

func (r *CreateTicketRequest) ToCommand() usecases.CreateManualTicketCommand {
	return usecases.CreateManualTicketCommand{
		ClientID:      r.ClientID,
		ProjectID:     r.ProjectID,
		ServiceTypeID: r.ServiceTypeID,
		ServiceCode:   r.ServiceCode,
		Consecutive:   r.Consecutive,
		Requester:     r.Requester,
		ProjectLead:   r.ProjectLead,
		VersionNumber: r.VersionNumber,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"estado" binding:"required"`
}

// ParseListTicketsQuery reads the ticket list filters shared by the list and
// export endpoints.
func ParseListTicketsQuery(c *gin.Context) (usecases.ListTicketsQuery, error) {
	page := utils.ParsePagination(c)
	q := usecases.ListTicketsQuery{
		Status:   strings.ToUpper(strings.TrimSpace(c.Query("estado"))),
		Search:   strings.TrimSpace(c.Query("q")),
		Sort:     c.Query("sort"),
		Page:     page.Page,
		PageSize: page.PageSize,
	}

	var err error
	if q.ClientID, err = utils.ParseOptionalUintQuery(c, "client_id"); err != nil {
		return q, err
	}
	if q.ProjectID, err = utils.ParseOptionalUintQuery(c, "project_id"); err != nil {
		return q, err
	}
	return q, nil
}

func parseNextConsecutiveQuery(c *gin.Context) (usecases.NextConsecutiveQuery, error) {
	q := usecases.NextConsecutiveQuery{ServiceCode: c.Query("service_code")}
	for key, dst := range map[string]*uint{
		"client_id":       &q.ClientID,
		"project_id":      &q.ProjectID,
		"service_type_id": &q.ServiceTypeID,
	} {
		v, err := utils.ParseOptionalUintQuery(c, key)
		if err != nil {
			return q, err
		}
		if v != nil {
			*dst = *v
		}
	}
	return q, nil
}
