package migration

import (
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persisted model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ClientModel{},
		&models.ServiceTypeModel{},
		&models.ProjectModel{},
		&models.SubmissionModel{},
		&models.TicketModel{},
	}
}

// Tables lists the table names owned by this service, in the same order.
func Tables() []string {
	return []string{
		models.ClientModel{}.TableName(),
		models.ServiceTypeModel{}.TableName(),
		models.ProjectModel{}.TableName(),
		models.SubmissionModel{}.TableName(),
		models.TicketModel{}.TableName(),
	}
}
