package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CancelAuctionUseCase sets the terminal cancelled status. Only the
// creator may cancel, and never after the auction has ended.
type CancelAuctionUseCase struct {
	auctionRepo domain.AuctionRepository
	txRunner    domain.TxRunner
	cache       AuctionCacheInvalidator
	now         func() time.Time
}

func NewCancelAuctionUseCase(auctionRepo domain.AuctionRepository, txRunner domain.TxRunner, cache AuctionCacheInvalidator) *CancelAuctionUseCase {
	return &CancelAuctionUseCase{
		auctionRepo: auctionRepo,
		txRunner:    txRunner,
		cache:       cache,
		now:         time.Now,
	}
}

func (uc *CancelAuctionUseCase) Execute(ctx context.Context, auctionID, caller uuid.UUID) error {
	auction, err := uc.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("cancel auction use case: %w", err)
	}
	if auction.CreatedBy != caller {
		return domain.ErrNotAuctionOwner
	}
	if err := auction.Cancel(uc.now()); err != nil {
		return fmt.Errorf("cancel auction use case: auction %s: %w", auctionID, err)
	}

	err = uc.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		return uc.auctionRepo.Save(ctx, tx, auction)
	})
	if err != nil {
		return fmt.Errorf("cancel auction use case: failed to save auction %s: %w", auctionID, err)
	}
	if uc.cache != nil {
		uc.cache.InvalidateListings(ctx)
	}

	log.Info("CancelAuctionUseCase: auction cancelled",
		zap.String("auctionID", auctionID.String()),
		zap.String("caller", caller.String()),
	)
	return nil
}
