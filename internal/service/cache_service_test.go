package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderdesk/lenderdesk/internal/domain"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheServiceWithClient(client, time.Minute), mr
}

func TestCacheService_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	lenders := []*domain.Lender{
		{ID: "l1", Name: "Maple Capital", Status: domain.StatusActive},
	}
	cache.PutLenderList(ctx, "active:", lenders)

	var got []*domain.Lender
	require.True(t, cache.GetLenderList(ctx, "active:", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Maple Capital", got[0].Name)
}

func TestCacheService_MissIsNotAnError(t *testing.T) {
	cache, _ := newTestCache(t)

	var got []*domain.Lender
	assert.False(t, cache.GetLenderList(context.Background(), "nothing", &got))
}

func TestCacheService_WriteInvalidation(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.PutLenderList(ctx, "all", []*domain.Lender{{ID: "l1"}})
	cache.PutProductList(ctx, "lender:l1", []*domain.LenderProduct{{ID: "p1"}})

	// A lender write drops lender lists and, since product rows embed lender
	// state, product lists too.
	cache.InvalidateLenders(ctx)

	var lenders []*domain.Lender
	var products []*domain.LenderProduct
	assert.False(t, cache.GetLenderList(ctx, "all", &lenders))
	assert.False(t, cache.GetProductList(ctx, "lender:l1", &products))
}

func TestCacheService_ProductInvalidationKeepsLenders(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.PutLenderList(ctx, "all", []*domain.Lender{{ID: "l1"}})
	cache.PutProductList(ctx, "lender:l1", []*domain.LenderProduct{{ID: "p1"}})

	cache.InvalidateProducts(ctx)

	var lenders []*domain.Lender
	var products []*domain.LenderProduct
	assert.True(t, cache.GetLenderList(ctx, "all", &lenders))
	assert.False(t, cache.GetProductList(ctx, "lender:l1", &products))
}

func TestCacheService_NilServiceDegrades(t *testing.T) {
	var cache *CacheService

	assert.NotPanics(t, func() {
		var got []*domain.Lender
		assert.False(t, cache.GetLenderList(context.Background(), "all", &got))
		cache.PutLenderList(context.Background(), "all", got)
		cache.InvalidateLenders(context.Background())
	})
}
