package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateAuctionDTO carries the input for a new auction. A nil
// MinimumBidIncrement takes the domain default of 1.
type CreateAuctionDTO struct {
	ItemName            string
	Description         string
	StartingPrice       float64
	CreatedBy           uuid.UUID
	StartTime           time.Time
	EndTime             time.Time
	MinimumBidIncrement *float64
	Categories          []string
}

type CreateAuctionUseCase struct {
	auctionRepo domain.AuctionRepository
	cache       AuctionCacheInvalidator
	now         func() time.Time
}

func NewCreateAuctionUseCase(auctionRepo domain.AuctionRepository, cache AuctionCacheInvalidator) *CreateAuctionUseCase {
	return &CreateAuctionUseCase{
		auctionRepo: auctionRepo,
		cache:       cache,
		now:         time.Now,
	}
}

func (uc *CreateAuctionUseCase) Execute(ctx context.Context, cmd CreateAuctionDTO) (*AuctionStateDTO, error) {
	if strings.TrimSpace(cmd.ItemName) == "" {
		return nil, domain.ErrInvalidItemName
	}

	minIncrement := float64(domain.DefaultMinimumBidIncrement)
	if cmd.MinimumBidIncrement != nil {
		minIncrement = *cmd.MinimumBidIncrement
	}

	now := uc.now()
	auction, err := domain.NewAuction(uuid.New(), strings.TrimSpace(cmd.ItemName),
		strings.TrimSpace(cmd.Description), cmd.StartingPrice, cmd.CreatedBy,
		cmd.StartTime, cmd.EndTime, minIncrement, cmd.Categories, now)
	if err != nil {
		return nil, fmt.Errorf("create auction use case: %w", err)
	}

	if err := uc.auctionRepo.Create(ctx, auction); err != nil {
		return nil, fmt.Errorf("create auction use case: failed to persist auction: %w", err)
	}
	if uc.cache != nil {
		uc.cache.InvalidateListings(ctx)
	}

	log.Info("CreateAuctionUseCase: auction created",
		zap.String("auctionID", auction.ID.String()),
		zap.String("createdBy", cmd.CreatedBy.String()),
		zap.String("status", string(auction.Status)),
	)
	return auctionStateFromDomain(auction, now), nil
}
