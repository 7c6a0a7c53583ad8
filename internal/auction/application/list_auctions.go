package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
)

// ListAuctionsUseCase serves the public listings. The active listing is
// the hot read path and goes through the Redis cache when configured.
type ListAuctionsUseCase struct {
	auctionRepo domain.AuctionRepository
	cache       *ListingCache
	now         func() time.Time
}

func NewListAuctionsUseCase(auctionRepo domain.AuctionRepository, cache *ListingCache) *ListAuctionsUseCase {
	return &ListAuctionsUseCase{
		auctionRepo: auctionRepo,
		cache:       cache,
		now:         time.Now,
	}
}

func (uc *ListAuctionsUseCase) ExecuteActive(ctx context.Context) ([]AuctionSummaryDTO, error) {
	if uc.cache == nil {
		return uc.loadActive(ctx)
	}
	return uc.cache.ActiveListings(ctx, func(ctx context.Context) (*[]AuctionSummaryDTO, error) {
		summaries, err := uc.loadActive(ctx)
		if err != nil {
			return nil, err
		}
		return &summaries, nil
	})
}

func (uc *ListAuctionsUseCase) loadActive(ctx context.Context) ([]AuctionSummaryDTO, error) {
	now := uc.now()
	auctions, err := uc.auctionRepo.ListActive(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list auctions use case: %w", err)
	}
	summaries := make([]AuctionSummaryDTO, 0, len(auctions))
	for _, a := range auctions {
		summaries = append(summaries, auctionSummaryFromDomain(a, now))
	}
	return summaries, nil
}

func (uc *ListAuctionsUseCase) ExecuteAll(ctx context.Context) ([]AuctionSummaryDTO, error) {
	now := uc.now()
	auctions, err := uc.auctionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auctions use case: %w", err)
	}
	summaries := make([]AuctionSummaryDTO, 0, len(auctions))
	for _, a := range auctions {
		summaries = append(summaries, auctionSummaryFromDomain(a, now))
	}
	return summaries, nil
}
