package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/infrastructure/config"
	"github.com/bid-labs/ticketgen/internal/interfaces/http/middleware"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It is responsible for wiring everything together and providing a
// Shutdown() method for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	uploadLimiter *middleware.RateLimiter
}

// NewContainer creates a new Container with all dependencies wired together.
// Redis is optional; without it the catalog is read straight from the
// database and uploads are not rate limited.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Middlewares
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases - catalog, tickets, submissions, exports
	c.initUseCases()

	// Section 3: Handlers
	c.initHandlers()

	return c, nil
}

// Engine returns the Gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases the resources the container opened. The database is
// owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
