package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	catalogApp "github.com/bid-labs/ticketgen/internal/application/catalog"
	exportUsecases "github.com/bid-labs/ticketgen/internal/application/export/usecases"
	submissionUsecases "github.com/bid-labs/ticketgen/internal/application/submission/usecases"
	ticketUsecases "github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/infrastructure/config"
	"github.com/bid-labs/ticketgen/internal/infrastructure/export"
	"github.com/bid-labs/ticketgen/internal/infrastructure/ratelimit"
	"github.com/bid-labs/ticketgen/internal/infrastructure/spreadsheet"
	"github.com/bid-labs/ticketgen/internal/interfaces/http/handlers"
	catalogHandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/catalog"
	exportHandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/export"
	submissionHandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/submission"
	ticketHandlers "github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/ticket"
	"github.com/bid-labs/ticketgen/internal/interfaces/http/middleware"
	"github.com/bid-labs/ticketgen/internal/shared/db"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

const redisPingTimeout = 3 * time.Second

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Middlewares
// ============================================================

func (c *Container) initInfrastructure() error {
	redisClient, err := initRedis(c.cfg, c.log)
	if err != nil {
		return err
	}
	c.redis = redisClient

	c.repos = newRepositories(c.db, c.redis, c.cfg, c.log)

	// A typed nil would defeat the limiter's nil check.
	var limiter ratelimit.RateLimiter
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}
	c.uploadLimiter = middleware.NewRateLimiter(limiter, "upload", c.cfg.RateLimit.UploadsPerMinute, c.log)

	return nil
}

// initRedis returns nil when Redis is disabled.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		log.Infow("redis disabled, catalog cache and upload rate limit are off")
		return nil, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 2: Use cases
// ============================================================

func (c *Container) initUseCases() {
	cfg := c.cfg
	log := c.log
	repos := c.repos
	txManager := db.NewTransactionManager(c.db)
	companyCode := cfg.Ticket.CompanyCode
	uploadDir := cfg.Spreadsheet.UploadDir

	ucs := &allUseCases{}

	ucs.catalogService = catalogApp.NewService(
		repos.clientRepo, repos.projectRepo, repos.serviceTypeRepo, txManager, log,
	)

	ucs.allocator = ticketUsecases.NewAllocator(repos.ticketRepo, cfg.Ticket.MaxAllocationAttempts, log)
	ucs.allocateTicketUC = ticketUsecases.NewAllocateTicketUseCase(ucs.allocator, txManager, companyCode, log)
	ucs.createTicketUC = ticketUsecases.NewCreateManualTicketUseCase(
		repos.clientRepo, repos.projectRepo, repos.serviceTypeRepo,
		ucs.allocator, txManager, companyCode, log,
	)
	ucs.changeStatusUC = ticketUsecases.NewChangeStatusUseCase(repos.ticketRepo, log)
	ucs.getTicketUC = ticketUsecases.NewGetTicketUseCase(repos.ticketRepo, repos.submissionRepo, log)
	ucs.listTicketsUC = ticketUsecases.NewListTicketsUseCase(repos.ticketRepo, log)
	ucs.getTicketStatsUC = ticketUsecases.NewGetTicketStatsUseCase(repos.ticketRepo, log)
	ucs.nextConsecutiveUC = ticketUsecases.NewNextConsecutiveUseCase(
		repos.clientRepo, repos.projectRepo, repos.serviceTypeRepo,
		ucs.allocator, companyCode, log,
	)

	layout := submission.DefaultLayout().WithSheetName(cfg.Spreadsheet.SheetName)
	extractor := spreadsheet.NewExtractor(layout, log)
	validator := submissionUsecases.NewFieldValidator(layout, repos.clientRepo, repos.projectRepo, repos.serviceTypeRepo)

	ucs.processSubmissionUC = submissionUsecases.NewProcessSubmissionUseCase(
		extractor, validator, ucs.allocateTicketUC, repos.submissionRepo, txManager, uploadDir, log,
	)
	ucs.previewSubmissionUC = submissionUsecases.NewPreviewSubmissionUseCase(
		extractor, validator, ucs.allocator, companyCode, uploadDir, log,
	)
	ucs.listSubmissionsUC = submissionUsecases.NewListSubmissionsUseCase(repos.submissionRepo, log)
	ucs.getSubmissionUC = submissionUsecases.NewGetSubmissionUseCase(repos.submissionRepo)

	tables := export.NewTableExporter(c.db)
	ucs.exportTicketsUC = exportUsecases.NewExportTicketsUseCase(export.NewTicketReport(c.db), log)
	ucs.exportTableUC = exportUsecases.NewExportTableUseCase(tables, log)
	ucs.backupUC = exportUsecases.NewBackupUseCase(tables, log)

	c.ucs = ucs
}

// ============================================================
// Section 3: Handlers
// ============================================================

func (c *Container) initHandlers() {
	ucs := c.ucs
	log := c.log

	checks := map[string]handlers.Pinger{"database": &dbPinger{db: c.db}}
	if c.redis != nil {
		checks["redis"] = &redisPinger{client: c.redis}
	}

	c.hdlrs = &allHandlers{
		healthHandler:  handlers.NewHealthHandler(checks, log),
		catalogHandler: catalogHandlers.NewHandler(ucs.catalogService, log),
		ticketHandler: ticketHandlers.NewTicketHandler(
			ucs.createTicketUC,
			ucs.changeStatusUC,
			ucs.getTicketUC,
			ucs.listTicketsUC,
			ucs.getTicketStatsUC,
			ucs.nextConsecutiveUC,
			log,
		),
		submissionHandler: submissionHandlers.NewHandler(
			ucs.processSubmissionUC,
			ucs.previewSubmissionUC,
			ucs.listSubmissionsUC,
			ucs.getSubmissionUC,
			c.cfg.Spreadsheet.MaxUploadBytes(),
			log,
		),
		exportHandler: exportHandlers.NewHandler(ucs.exportTicketsUC, ucs.exportTableUC, ucs.backupUC, log),
	}
}
