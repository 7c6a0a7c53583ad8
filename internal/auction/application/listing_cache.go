package application

import (
	"context"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/shared/cache"
)

const (
	activeAuctionsCacheKey = "auctions:active"
	activeAuctionsCacheTTL = 2 * time.Second
)

// AuctionCacheInvalidator drops cached listing views after writes. A nil
// invalidator disables caching.
type AuctionCacheInvalidator interface {
	InvalidateListings(ctx context.Context)
}

// ListingCache serves the active-auction listing through Redis with a
// short TTL; staleness is bounded by the TTL and writes invalidate.
type ListingCache struct {
	c *cache.Cache
}

func NewListingCache(c *cache.Cache) *ListingCache {
	return &ListingCache{c: c}
}

func (l *ListingCache) InvalidateListings(ctx context.Context) {
	l.c.Invalidate(ctx, activeAuctionsCacheKey)
}

func (l *ListingCache) ActiveListings(ctx context.Context, load func(ctx context.Context) (*[]AuctionSummaryDTO, error)) ([]AuctionSummaryDTO, error) {
	out, err := cache.GetOrLoadJSON(l.c, ctx, activeAuctionsCacheKey, activeAuctionsCacheTTL, load)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}
