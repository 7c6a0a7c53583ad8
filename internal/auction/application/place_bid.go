package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/Ricky0403/SoftwareProject/internal/shared/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// maxBidAttempts bounds the optimistic retry loop. A conflict means
// another bid landed between our read and our write; re-reading and
// re-validating resolves it unless the auction is that contended.
const maxBidAttempts = 3

// PlaceBidDTO carries the data needed to place a bid. The bidder
// identity is supplied explicitly by the transport layer.
type PlaceBidDTO struct {
	AuctionID uuid.UUID
	Bidder    uuid.UUID
	Amount    float64
}

// PlaceBidUseCase applies a bid to an auction as one serialized
// check-and-apply step: validation and the price update are written in a
// single transaction conditioned on the auction version read, so two
// concurrent bids can never both pass validation against a stale price.
type PlaceBidUseCase struct {
	auctionRepo domain.AuctionRepository
	bidRepo     domain.BidRepository
	txRunner    domain.TxRunner
	cache       AuctionCacheInvalidator
	now         func() time.Time
}

func NewPlaceBidUseCase(auctionRepo domain.AuctionRepository,
	bidRepo domain.BidRepository,
	txRunner domain.TxRunner,
	cache AuctionCacheInvalidator) *PlaceBidUseCase {

	return &PlaceBidUseCase{
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
		txRunner:    txRunner,
		cache:       cache,
		now:         time.Now,
	}
}

func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	if cmd.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var lastErr error
	for attempt := 1; attempt <= maxBidAttempts; attempt++ {
		bid, err := uc.attempt(ctx, cmd)
		if err == nil {
			if uc.cache != nil {
				uc.cache.InvalidateListings(ctx)
			}
			return bid, nil
		}
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return nil, err
		}
		lastErr = err
		log.Warn("PlaceBidUseCase: version conflict, retrying",
			zap.String("auctionID", cmd.AuctionID.String()),
			zap.String("bidder", cmd.Bidder.String()),
			zap.Int("attempt", attempt),
		)
	}
	return nil, fmt.Errorf("place bid use case: auction %s contended after %d attempts: %w",
		cmd.AuctionID, maxBidAttempts, lastErr)
}

func (uc *PlaceBidUseCase) attempt(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	auction, err := uc.auctionRepo.GetByID(ctx, cmd.AuctionID)
	if err != nil {
		return nil, fmt.Errorf("place bid use case: failed to get auction %s: %w", cmd.AuctionID, err)
	}

	now := uc.now()
	auction.Refresh(now)

	newBid, err := auction.PlaceBid(cmd.Bidder, cmd.Amount, now)
	if err != nil {
		return nil, fmt.Errorf("place bid use case: bid failed for auction %s: %w", cmd.AuctionID, err)
	}

	// Bid append and price update land in one transaction; the auction
	// save is conditioned on the version we read above.
	err = uc.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := uc.bidRepo.Save(ctx, tx, newBid); err != nil {
			return fmt.Errorf("failed to save bid: %w", err)
		}
		if err := uc.auctionRepo.Save(ctx, tx, auction); err != nil {
			return fmt.Errorf("failed to save auction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("place bid use case: auction %s: %w", cmd.AuctionID, err)
	}

	log.Info("PlaceBidUseCase: bid committed",
		zap.String("auctionID", cmd.AuctionID.String()),
		zap.String("bidID", newBid.ID.String()),
		zap.String("bidder", cmd.Bidder.String()),
		zap.Float64("amount", cmd.Amount),
	)
	return newBid, nil
}
