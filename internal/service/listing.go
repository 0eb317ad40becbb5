package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"go-users-backend/internal/domain"
)

// UsersCacheKey is the single global key in front of the list endpoint;
// there is no per-user or paginated variant.
const UsersCacheKey = "users_cache"

// Cache is what the listing service needs from the cache gateway.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	SetWithTTL(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type ListingService struct {
	repo  domain.UserRepository
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewListingService(repo domain.UserRepository, cache Cache, ttl time.Duration, log *zap.Logger) *ListingService {
	return &ListingService{repo: repo, cache: cache, ttl: ttl, log: log}
}

// List is a plain cache-aside read. Concurrent misses are not deduplicated:
// each one queries the store and rewrites the key, last write wins. Cache
// failures degrade to the store rather than failing the request. Registering
// a user does not evict the key, so the list may lag writes by up to the TTL.
func (s *ListingService) List(ctx context.Context) ([]domain.PublicUser, error) {
	if b, ok, err := s.cache.Get(ctx, UsersCacheKey); err != nil {
		s.log.Warn("users cache read failed", zap.Error(err))
	} else if ok {
		var out []domain.PublicUser
		uerr := json.Unmarshal(b, &out)
		if uerr == nil {
			return out, nil
		}
		s.log.Warn("users cache entry corrupt, refilling", zap.Error(uerr))
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetWithTTL(ctx, UsersCacheKey, b, s.ttl); err != nil {
		s.log.Warn("users cache write failed", zap.Error(err))
	}
	return out, nil
}
