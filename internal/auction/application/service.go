package application

import (
	"context"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/google/uuid"
)

// AuctionService is the application interface of the auction module,
// consumed by the HTTP and WebSocket infra layers.
type AuctionService interface {
	CreateAuction(ctx context.Context, cmd CreateAuctionDTO) (*AuctionStateDTO, error)
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error)
	GetAuctionState(ctx context.Context, auctionID uuid.UUID) (*AuctionStateDTO, error)
	ListActiveAuctions(ctx context.Context) ([]AuctionSummaryDTO, error)
	ListAllAuctions(ctx context.Context) ([]AuctionSummaryDTO, error)
	CancelAuction(ctx context.Context, auctionID, caller uuid.UUID) error
	ListUserBids(ctx context.Context, bidder uuid.UUID) ([]UserBidDTO, error)
	ListUserAuctions(ctx context.Context, creator uuid.UUID) ([]AuctionSummaryDTO, error)
}

type auctionService struct {
	createAuctionUC *CreateAuctionUseCase
	placeBidUC      *PlaceBidUseCase
	getStateUC      *GetAuctionStateUseCase
	listUC          *ListAuctionsUseCase
	cancelUC        *CancelAuctionUseCase
	userViewsUC     *UserViewsUseCase
}

func NewAuctionService(
	createAuctionUC *CreateAuctionUseCase,
	placeBidUC *PlaceBidUseCase,
	getStateUC *GetAuctionStateUseCase,
	listUC *ListAuctionsUseCase,
	cancelUC *CancelAuctionUseCase,
	userViewsUC *UserViewsUseCase,
) AuctionService {
	return &auctionService{
		createAuctionUC: createAuctionUC,
		placeBidUC:      placeBidUC,
		getStateUC:      getStateUC,
		listUC:          listUC,
		cancelUC:        cancelUC,
		userViewsUC:     userViewsUC,
	}
}

func (s *auctionService) CreateAuction(ctx context.Context, cmd CreateAuctionDTO) (*AuctionStateDTO, error) {
	return s.createAuctionUC.Execute(ctx, cmd)
}

func (s *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	return s.placeBidUC.Execute(ctx, cmd)
}

func (s *auctionService) GetAuctionState(ctx context.Context, auctionID uuid.UUID) (*AuctionStateDTO, error) {
	return s.getStateUC.Execute(ctx, auctionID)
}

func (s *auctionService) ListActiveAuctions(ctx context.Context) ([]AuctionSummaryDTO, error) {
	return s.listUC.ExecuteActive(ctx)
}

func (s *auctionService) ListAllAuctions(ctx context.Context) ([]AuctionSummaryDTO, error) {
	return s.listUC.ExecuteAll(ctx)
}

func (s *auctionService) CancelAuction(ctx context.Context, auctionID, caller uuid.UUID) error {
	return s.cancelUC.Execute(ctx, auctionID, caller)
}

func (s *auctionService) ListUserBids(ctx context.Context, bidder uuid.UUID) ([]UserBidDTO, error) {
	return s.userViewsUC.Bids(ctx, bidder)
}

func (s *auctionService) ListUserAuctions(ctx context.Context, creator uuid.UUID) ([]AuctionSummaryDTO, error) {
	return s.userViewsUC.Auctions(ctx, creator)
}
