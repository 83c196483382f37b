package application

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"qadash/domain/contracts"
	"qadash/domain/qa"
)

const (
	clientCacheTTL     = 5 * time.Minute
	clientCacheCleanup = 10 * time.Minute
)

// ClientService resolves tenants by ID or slug. Lookups are cached since the
// client row is hit on every scoped request.
type ClientService struct {
	clientRepo contracts.ClientRepository
	cache      *cache.Cache
}

// NewClientService creates a client service.
func NewClientService(clientRepo contracts.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		cache:      cache.New(clientCacheTTL, clientCacheCleanup),
	}
}

// GetByID retrieves a client, serving repeat lookups from cache.
func (s *ClientService) GetByID(ctx context.Context, clientID int64) (*qa.Client, error) {
	key := fmt.Sprintf("id:%d", clientID)
	if cached, found := s.cache.Get(key); found {
		return cached.(*qa.Client), nil
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	s.cacheClient(client)
	return client, nil
}

// GetBySlug retrieves a client by route slug, serving repeat lookups from cache.
func (s *ClientService) GetBySlug(ctx context.Context, slug string) (*qa.Client, error) {
	if cached, found := s.cache.Get("slug:" + slug); found {
		return cached.(*qa.Client), nil
	}

	client, err := s.clientRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.cacheClient(client)
	return client, nil
}

// ListAll retrieves every client. Uncached, this backs admin tooling only.
func (s *ClientService) ListAll(ctx context.Context) ([]*qa.Client, error) {
	return s.clientRepo.ListAll(ctx)
}

func (s *ClientService) cacheClient(client *qa.Client) {
	s.cache.Set(fmt.Sprintf("id:%d", client.ID), client, cache.DefaultExpiration)
	s.cache.Set("slug:"+client.Slug, client, cache.DefaultExpiration)
}
