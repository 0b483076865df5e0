package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	apperrors "github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

// countingClients is an in-memory ClientRepository that counts GetByID calls.
type countingClients struct {
	catalog.ClientRepository
	rows  map[uint]*catalog.Client
	gets  int
	dels  int
	saves int
}

func (r *countingClients) GetByID(_ context.Context, id uint) (*catalog.Client, error) {
	r.gets++
	c, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("client not found")
	}
	return c, nil
}

func (r *countingClients) Update(_ context.Context, c *catalog.Client) error {
	r.saves++
	r.rows[c.ID()] = c
	return nil
}

func (r *countingClients) Delete(_ context.Context, id uint) error {
	r.dels++
	delete(r.rows, id)
	return nil
}

type countingProjects struct {
	catalog.ProjectRepository
	rows map[uint]*catalog.Project
	gets int
}

func (r *countingProjects) GetByID(_ context.Context, id uint) (*catalog.Project, error) {
	r.gets++
	p, ok := r.rows[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("project not found")
	}
	return p, nil
}

func TestCachedClientRepository_ReadThroughAndInvalidate(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	inner := &countingClients{rows: map[uint]*catalog.Client{
		7: catalog.ReconstructClient(7, "Telcel", "TEL", true, created, created),
	}}
	repo := NewCachedClientRepository(inner, client, time.Minute, logger.Nop())

	first, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.gets)
	assert.Equal(t, first.Code(), second.Code())
	assert.True(t, second.CreatedAt().Equal(created))
	assert.True(t, mr.Exists("ticketgen:catalog:client:7"))

	ttl := mr.TTL("ticketgen:catalog:client:7")
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.Less(t, ttl, time.Minute+time.Minute/5)

	updated := catalog.ReconstructClient(7, "Telcel", "TEL", false, created, created)
	require.NoError(t, repo.Update(ctx, updated))
	assert.False(t, mr.Exists("ticketgen:catalog:client:7"))

	again, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.False(t, again.IsActive())
	assert.Equal(t, 2, inner.gets)
}

func TestCachedClientRepository_MissIsNotCached(t *testing.T) {
	client, mr := setupTestRedis(t)
	inner := &countingClients{rows: map[uint]*catalog.Client{}}
	repo := NewCachedClientRepository(inner, client, time.Minute, logger.Nop())

	_, err := repo.GetByID(context.Background(), 3)
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.False(t, mr.Exists("ticketgen:catalog:client:3"))
}

func TestCachedClientRepository_DeleteDropsProjects(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	now := time.Now().UTC()

	clients := &countingClients{rows: map[uint]*catalog.Client{
		1: catalog.ReconstructClient(1, "Telcel", "TEL", true, now, now),
	}}
	projects := &countingProjects{rows: map[uint]*catalog.Project{
		4: catalog.ReconstructProject(4, catalog.ProjectDetails{ClientID: 1, Name: "Otro", Code: "OTR"}, true, now, now),
	}}
	clientRepo := NewCachedClientRepository(clients, client, time.Minute, logger.Nop())
	projectRepo := NewCachedProjectRepository(projects, client, time.Minute, logger.Nop())

	_, err := clientRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	p, err := projectRepo.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "OTR", p.Code())
	require.True(t, mr.Exists("ticketgen:catalog:project:4"))

	require.NoError(t, clientRepo.Delete(ctx, 1))
	assert.False(t, mr.Exists("ticketgen:catalog:client:1"))
	assert.False(t, mr.Exists("ticketgen:catalog:project:4"))
}

func TestCachedClientRepository_RedisDownFallsThrough(t *testing.T) {
	client, mr := setupTestRedis(t)
	now := time.Now().UTC()
	inner := &countingClients{rows: map[uint]*catalog.Client{
		1: catalog.ReconstructClient(1, "Telcel", "TEL", true, now, now),
	}}
	repo := NewCachedClientRepository(inner, client, time.Minute, logger.Nop())

	mr.Close()

	c, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "TEL", c.Code())
}
