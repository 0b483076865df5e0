package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

const (
	catalogKeyPrefix = "ticketgen:catalog:"
	kindClient       = "client"
	kindProject      = "project"
	kindServiceType  = "service_type"
)

// catalogStore keeps JSON copies of catalog rows keyed by kind and id.
// Redis failures are logged and treated as misses so lookups fall through
// to the database.
type catalogStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func newCatalogStore(client *redis.Client, ttl time.Duration, log logger.Interface) *catalogStore {
	return &catalogStore{client: client, ttl: ttl, logger: log}
}

func (s *catalogStore) key(kind string, id uint) string {
	return fmt.Sprintf("%s%s:%d", catalogKeyPrefix, kind, id)
}

// ttlWithJitter spreads expiry by up to a fifth of the base TTL.
func (s *catalogStore) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	jitter := s.ttl / 5
	if jitter <= 0 {
		return s.ttl
	}
	return s.ttl + time.Duration(rand.Int63n(int64(jitter)))
}

func (s *catalogStore) get(ctx context.Context, kind string, id uint, dst interface{}) bool {
	raw, err := s.client.Get(ctx, s.key(kind, id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warnw("catalog cache read failed", "kind", kind, "id", id, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warnw("catalog cache entry is corrupt", "kind", kind, "id", id, "error", err)
		return false
	}
	return true
}

func (s *catalogStore) set(ctx context.Context, kind string, id uint, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warnw("catalog cache encode failed", "kind", kind, "id", id, "error", err)
		return
	}
	if err := s.client.Set(ctx, s.key(kind, id), raw, s.ttlWithJitter()).Err(); err != nil {
		s.logger.Warnw("catalog cache write failed", "kind", kind, "id", id, "error", err)
	}
}

func (s *catalogStore) invalidate(ctx context.Context, kind string, id uint) {
	if err := s.client.Del(ctx, s.key(kind, id)).Err(); err != nil {
		s.logger.Warnw("catalog cache invalidation failed", "kind", kind, "id", id, "error", err)
	}
}

// invalidateKind drops every cached row of one kind.
func (s *catalogStore) invalidateKind(ctx context.Context, kind string) {
	iter := s.client.Scan(ctx, 0, catalogKeyPrefix+kind+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warnw("catalog cache scan failed", "kind", kind, "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warnw("catalog cache invalidation failed", "kind", kind, "error", err)
	}
}

type cachedClient struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type cachedServiceType struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Nomenclature string    `json:"nomenclature"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type cachedProject struct {
	ID            uint       `json:"id"`
	ClientID      uint       `json:"client_id"`
	Name          string     `json:"name"`
	Code          string     `json:"code"`
	Nomenclature  string     `json:"nomenclature"`
	ServiceTypeID *uint      `json:"service_type_id,omitempty"`
	Description   string     `json:"description"`
	Active        bool       `json:"active"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CachedClientRepository serves GetByID from Redis and invalidates on writes.
type CachedClientRepository struct {
	catalog.ClientRepository
	store *catalogStore
}

func NewCachedClientRepository(inner catalog.ClientRepository, client *redis.Client, ttl time.Duration, log logger.Interface) *CachedClientRepository {
	return &CachedClientRepository{ClientRepository: inner, store: newCatalogStore(client, ttl, log)}
}

func (r *CachedClientRepository) GetByID(ctx context.Context, id uint) (*catalog.Client, error) {
	var c cachedClient
	if r.store.get(ctx, kindClient, id, &c) {
		return catalog.ReconstructClient(c.ID, c.Name, c.Code, c.Active, c.CreatedAt, c.UpdatedAt), nil
	}

	client, err := r.ClientRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store.set(ctx, kindClient, id, cachedClient{
		ID:        client.ID(),
		Name:      client.Name(),
		Code:      client.Code(),
		Active:    client.IsActive(),
		CreatedAt: client.CreatedAt(),
		UpdatedAt: client.UpdatedAt(),
	})
	return client, nil
}

func (r *CachedClientRepository) Update(ctx context.Context, client *catalog.Client) error {
	if err := r.ClientRepository.Update(ctx, client); err != nil {
		return err
	}
	r.store.invalidate(ctx, kindClient, client.ID())
	return nil
}

// Delete also drops cached projects, which the delete cascades to.
func (r *CachedClientRepository) Delete(ctx context.Context, id uint) error {
	if err := r.ClientRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.store.invalidate(ctx, kindClient, id)
	r.store.invalidateKind(ctx, kindProject)
	return nil
}

type CachedServiceTypeRepository struct {
	catalog.ServiceTypeRepository
	store *catalogStore
}

func NewCachedServiceTypeRepository(inner catalog.ServiceTypeRepository, client *redis.Client, ttl time.Duration, log logger.Interface) *CachedServiceTypeRepository {
	return &CachedServiceTypeRepository{ServiceTypeRepository: inner, store: newCatalogStore(client, ttl, log)}
}

func (r *CachedServiceTypeRepository) GetByID(ctx context.Context, id uint) (*catalog.ServiceType, error) {
	var s cachedServiceType
	if r.store.get(ctx, kindServiceType, id, &s) {
		return catalog.ReconstructServiceType(s.ID, s.Name, s.Nomenclature, s.Active, s.CreatedAt, s.UpdatedAt), nil
	}

	st, err := r.ServiceTypeRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store.set(ctx, kindServiceType, id, cachedServiceType{
		ID:           st.ID(),
		Name:         st.Name(),
		Nomenclature: st.Nomenclature(),
		Active:       st.IsActive(),
		CreatedAt:    st.CreatedAt(),
		UpdatedAt:    st.UpdatedAt(),
	})
	return st, nil
}

func (r *CachedServiceTypeRepository) Update(ctx context.Context, st *catalog.ServiceType) error {
	if err := r.ServiceTypeRepository.Update(ctx, st); err != nil {
		return err
	}
	r.store.invalidate(ctx, kindServiceType, st.ID())
	return nil
}

// Delete also drops cached projects, whose service type reference is cleared.
func (r *CachedServiceTypeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.ServiceTypeRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.store.invalidate(ctx, kindServiceType, id)
	r.store.invalidateKind(ctx, kindProject)
	return nil
}

type CachedProjectRepository struct {
	catalog.ProjectRepository
	store *catalogStore
}

func NewCachedProjectRepository(inner catalog.ProjectRepository, client *redis.Client, ttl time.Duration, log logger.Interface) *CachedProjectRepository {
	return &CachedProjectRepository{ProjectRepository: inner, store: newCatalogStore(client, ttl, log)}
}

func (r *CachedProjectRepository) GetByID(ctx context.Context, id uint) (*catalog.Project, error) {
	var p cachedProject
	if r.store.get(ctx, kindProject, id, &p) {
		return catalog.ReconstructProject(p.ID, catalog.ProjectDetails{
			ClientID:      p.ClientID,
			Name:          p.Name,
			Code:          p.Code,
			Nomenclature:  p.Nomenclature,
			ServiceTypeID: p.ServiceTypeID,
			Description:   p.Description,
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
		}, p.Active, p.CreatedAt, p.UpdatedAt), nil
	}

	project, err := r.ProjectRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store.set(ctx, kindProject, id, cachedProject{
		ID:            project.ID(),
		ClientID:      project.ClientID(),
		Name:          project.Name(),
		Code:          project.Code(),
		Nomenclature:  project.Nomenclature(),
		ServiceTypeID: project.ServiceTypeID(),
		Description:   project.Description(),
		Active:        project.IsActive(),
		StartDate:     project.StartDate(),
		EndDate:       project.EndDate(),
		CreatedAt:     project.CreatedAt(),
		UpdatedAt:     project.UpdatedAt(),
	})
	return project, nil
}

func (r *CachedProjectRepository) Update(ctx context.Context, project *catalog.Project) error {
	if err := r.ProjectRepository.Update(ctx, project); err != nil {
		return err
	}
	r.store.invalidate(ctx, kindProject, project.ID())
	return nil
}

func (r *CachedProjectRepository) Delete(ctx context.Context, id uint) error {
	if err := r.ProjectRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.store.invalidate(ctx, kindProject, id)
	return nil
}
