package http

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// dbPinger adapts *gorm.DB to handlers.Pinger
type dbPinger struct {
	db *gorm.DB
}

func (p *dbPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// redisPinger adapts *redis.Client to handlers.Pinger
type redisPinger struct {
	client *redis.Client
}

func (p *redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
