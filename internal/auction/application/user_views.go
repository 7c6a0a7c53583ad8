package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/google/uuid"
)

// UserViewsUseCase answers "bids by user" and "auctions by user". Both
// are queries against the authoritative stores; nothing is duplicated
// onto the user record.
type UserViewsUseCase struct {
	auctionRepo domain.AuctionRepository
	bidRepo     domain.BidRepository
	now         func() time.Time
}

func NewUserViewsUseCase(auctionRepo domain.AuctionRepository, bidRepo domain.BidRepository) *UserViewsUseCase {
	return &UserViewsUseCase{
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
		now:         time.Now,
	}
}

func (uc *UserViewsUseCase) Bids(ctx context.Context, bidder uuid.UUID) ([]UserBidDTO, error) {
	bids, err := uc.bidRepo.ListByBidder(ctx, bidder)
	if err != nil {
		return nil, fmt.Errorf("user views use case: failed to list bids: %w", err)
	}
	out := make([]UserBidDTO, 0, len(bids))
	for _, b := range bids {
		out = append(out, UserBidDTO{
			AuctionID: b.AuctionID,
			Amount:    b.Amount,
			BidTime:   b.Time,
		})
	}
	return out, nil
}

func (uc *UserViewsUseCase) Auctions(ctx context.Context, creator uuid.UUID) ([]AuctionSummaryDTO, error) {
	auctions, err := uc.auctionRepo.ListByCreator(ctx, creator)
	if err != nil {
		return nil, fmt.Errorf("user views use case: failed to list auctions: %w", err)
	}
	now := uc.now()
	out := make([]AuctionSummaryDTO, 0, len(auctions))
	for _, a := range auctions {
		out = append(out, auctionSummaryFromDomain(a, now))
	}
	return out, nil
}
