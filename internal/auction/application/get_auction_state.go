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

// GetAuctionStateUseCase returns the current auction view. Status is
// derived at read time; when the read observes a lapsed auction the
// ended status and winner are persisted best-effort so later reads see
// the settled state.
type GetAuctionStateUseCase struct {
	auctionRepo domain.AuctionRepository
	txRunner    domain.TxRunner
	now         func() time.Time
}

func NewGetAuctionStateUseCase(auctionRepo domain.AuctionRepository, txRunner domain.TxRunner) *GetAuctionStateUseCase {
	return &GetAuctionStateUseCase{
		auctionRepo: auctionRepo,
		txRunner:    txRunner,
		now:         time.Now,
	}
}

func (uc *GetAuctionStateUseCase) Execute(ctx context.Context, auctionID uuid.UUID) (*AuctionStateDTO, error) {
	auction, err := uc.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction state use case: %w", err)
	}

	now := uc.now()
	if auction.Refresh(now) {
		// Losing this write to a concurrent bid or refresh is fine; the
		// next read derives the same state again.
		err := uc.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
			return uc.auctionRepo.Save(ctx, tx, auction)
		})
		if err != nil {
			log.Debug("GetAuctionStateUseCase: status refresh not persisted",
				zap.String("auctionID", auctionID.String()),
				zap.Error(err),
			)
		}
	}

	return auctionStateFromDomain(auction, now), nil
}
