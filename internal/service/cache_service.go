package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService keeps canonical list responses in Redis and invalidates them
// on every write, mirroring the query-cache behavior the back-office UI
// relies on. Cache trouble is never an error for callers: a miss or a Redis
// outage degrades to a database read.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// Cache key prefixes, one per entity family.
const (
	cacheKeyLenders  = "cache:lenders"
	cacheKeyProducts = "cache:products"
)

// NewCacheService connects to Redis and creates the cache service
func NewCacheService(redisURL string, ttl time.Duration) (*CacheService, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CacheService{client: client, ttl: ttl}, nil
}

// NewCacheServiceWithClient wraps an existing client, for tests.
func NewCacheServiceWithClient(client *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{client: client, ttl: ttl}
}

// GetLenderList loads a cached lender list response into dest. It reports
// whether the entry was present and decodable.
func (s *CacheService) GetLenderList(ctx context.Context, variant string, dest interface{}) bool {
	return s.get(ctx, listKey(cacheKeyLenders, variant), dest)
}

// PutLenderList stores a lender list response.
func (s *CacheService) PutLenderList(ctx context.Context, variant string, value interface{}) {
	s.put(ctx, listKey(cacheKeyLenders, variant), value)
}

// GetProductList loads a cached product list response into dest.
func (s *CacheService) GetProductList(ctx context.Context, variant string, dest interface{}) bool {
	return s.get(ctx, listKey(cacheKeyProducts, variant), dest)
}

// PutProductList stores a product list response.
func (s *CacheService) PutProductList(ctx context.Context, variant string, value interface{}) {
	s.put(ctx, listKey(cacheKeyProducts, variant), value)
}

// InvalidateLenders drops every cached lender list. Product lists embed
// lender state, so they go too.
func (s *CacheService) InvalidateLenders(ctx context.Context) {
	s.invalidate(ctx, cacheKeyLenders+":*", cacheKeyProducts+":*")
}

// InvalidateProducts drops every cached product list.
func (s *CacheService) InvalidateProducts(ctx context.Context) {
	s.invalidate(ctx, cacheKeyProducts+":*")
}

func listKey(prefix, variant string) string {
	if variant == "" {
		variant = "all"
	}
	return prefix + ":" + variant
}

func (s *CacheService) get(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.client == nil {
		return false
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (s *CacheService) put(ctx context.Context, key string, value interface{}) {
	if s == nil || s.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.client.Set(ctx, key, data, s.ttl)
}

func (s *CacheService) invalidate(ctx context.Context, patterns ...string) {
	if s == nil || s.client == nil {
		return
	}
	for _, pattern := range patterns {
		iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if len(keys) > 0 {
			s.client.Del(ctx, keys...)
		}
	}
}
