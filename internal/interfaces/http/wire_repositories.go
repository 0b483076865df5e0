package http

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	"github.com/bid-labs/ticketgen/internal/infrastructure/cache"
	"github.com/bid-labs/ticketgen/internal/infrastructure/config"
	"github.com/bid-labs/ticketgen/internal/infrastructure/repository"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	clientRepo      catalog.ClientRepository
	projectRepo     catalog.ProjectRepository
	serviceTypeRepo catalog.ServiceTypeRepository
	ticketRepo      ticket.Repository
	submissionRepo  submission.Repository
}

// newRepositories creates all repository instances from the database
// connection. Catalog reads go through the Redis cache when a client is given.
func newRepositories(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *repositories {
	repos := &repositories{
		clientRepo:      repository.NewClientRepository(db),
		projectRepo:     repository.NewProjectRepository(db),
		serviceTypeRepo: repository.NewServiceTypeRepository(db),
		ticketRepo:      repository.NewTicketRepository(db),
		submissionRepo:  repository.NewSubmissionRepository(db),
	}

	if redisClient != nil && cfg.CatalogCache.TTLSeconds > 0 {
		ttl := cfg.CatalogCache.TTL()
		repos.clientRepo = cache.NewCachedClientRepository(repos.clientRepo, redisClient, ttl, log)
		repos.projectRepo = cache.NewCachedProjectRepository(repos.projectRepo, redisClient, ttl, log)
		repos.serviceTypeRepo = cache.NewCachedServiceTypeRepository(repos.serviceTypeRepo, redisClient, ttl, log)
	}

	return repos
}
