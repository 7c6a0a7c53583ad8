package application

import (
	"context"
	"testing"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateAuctionUseCase_Execute(t *testing.T) {
	now := time.Now().UTC()
	ctx := context.Background()
	creator := uuid.New()

	increment := 2.5
	tests := []struct {
		name          string
		cmd           CreateAuctionDTO
		expectedError error
		expectedInc   float64
	}{
		{
			name: "defaults_increment_to_one",
			cmd: CreateAuctionDTO{
				ItemName:      "oil painting",
				StartingPrice: 50,
				CreatedBy:     creator,
				StartTime:     now.Add(-time.Minute),
				EndTime:       now.Add(time.Hour),
			},
			expectedInc: 1,
		},
		{
			name: "explicit_increment",
			cmd: CreateAuctionDTO{
				ItemName:            "oil painting",
				StartingPrice:       50,
				CreatedBy:           creator,
				StartTime:           now,
				EndTime:             now.Add(time.Hour),
				MinimumBidIncrement: &increment,
			},
			expectedInc: 2.5,
		},
		{
			name: "missing_item_name",
			cmd: CreateAuctionDTO{
				ItemName:      "   ",
				StartingPrice: 50,
				CreatedBy:     creator,
				StartTime:     now,
				EndTime:       now.Add(time.Hour),
			},
			expectedError: domain.ErrInvalidItemName,
		},
		{
			name: "end_before_start",
			cmd: CreateAuctionDTO{
				ItemName:      "oil painting",
				StartingPrice: 50,
				CreatedBy:     creator,
				StartTime:     now.Add(time.Hour),
				EndTime:       now,
			},
			expectedError: domain.ErrInvalidTimeRange,
		},
		{
			name: "negative_price",
			cmd: CreateAuctionDTO{
				ItemName:      "oil painting",
				StartingPrice: -1,
				CreatedBy:     creator,
				StartTime:     now,
				EndTime:       now.Add(time.Hour),
			},
			expectedError: domain.ErrInvalidPrice,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			uc := NewCreateAuctionUseCase(store, nil)
			uc.now = func() time.Time { return now }

			state, err := uc.Execute(ctx, tc.cmd)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedInc, state.MinimumBidIncrement)
			require.Equal(t, tc.cmd.StartingPrice, state.CurrentPrice)
			require.Equal(t, string(domain.StatusActive), state.Status)
			require.Empty(t, state.Bids)

			saved, err := store.GetByID(ctx, state.AuctionID)
			require.NoError(t, err)
			require.Equal(t, tc.cmd.StartingPrice, saved.CurrentPrice)
		})
	}
}

func TestGetAuctionStateUseCase_PersistsLapsedStatus(t *testing.T) {
	now := time.Now().UTC()
	ctx := context.Background()
	store := newMemStore()
	auction := seedAuction(t, store, now)

	bidder := uuid.New()
	placeUC := newPlaceBidUC(store, now)
	_, err := placeUC.Execute(ctx, PlaceBidDTO{AuctionID: auction.ID, Bidder: bidder, Amount: 110})
	require.NoError(t, err)

	// Read after the end time: the view must show ended with the winner,
	// and the settled state must be persisted for later reads.
	after := auction.EndTime.Add(time.Minute)
	getUC := NewGetAuctionStateUseCase(store, store)
	getUC.now = func() time.Time { return after }

	state, err := getUC.Execute(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusEnded), state.Status)
	require.NotNil(t, state.Winner)
	require.Equal(t, bidder, *state.Winner)
	require.Len(t, state.Bids, 1)

	saved, err := store.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, saved.Status)
	require.NotNil(t, saved.Winner)
}

func TestGetAuctionStateUseCase_NoWinnerBeforeEnd(t *testing.T) {
	now := time.Now().UTC()
	ctx := context.Background()
	store := newMemStore()
	auction := seedAuction(t, store, now)

	placeUC := newPlaceBidUC(store, now)
	_, err := placeUC.Execute(ctx, PlaceBidDTO{AuctionID: auction.ID, Bidder: uuid.New(), Amount: 110})
	require.NoError(t, err)

	getUC := NewGetAuctionStateUseCase(store, store)
	getUC.now = func() time.Time { return now }

	state, err := getUC.Execute(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusActive), state.Status)
	require.Nil(t, state.Winner)
}

func TestCancelAuctionUseCase_Execute(t *testing.T) {
	now := time.Now().UTC()
	ctx := context.Background()

	t.Run("creator_cancels", func(t *testing.T) {
		store := newMemStore()
		auction := seedAuction(t, store, now)
		uc := NewCancelAuctionUseCase(store, store, nil)
		uc.now = func() time.Time { return now }

		require.NoError(t, uc.Execute(ctx, auction.ID, auction.CreatedBy))

		saved, err := store.GetByID(ctx, auction.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusCancelled, saved.Status)
	})

	t.Run("non_owner_rejected", func(t *testing.T) {
		store := newMemStore()
		auction := seedAuction(t, store, now)
		uc := NewCancelAuctionUseCase(store, store, nil)
		uc.now = func() time.Time { return now }

		require.ErrorIs(t, uc.Execute(ctx, auction.ID, uuid.New()), domain.ErrNotAuctionOwner)
	})

	t.Run("ended_auction_rejected", func(t *testing.T) {
		store := newMemStore()
		auction := seedAuction(t, store, now)
		uc := NewCancelAuctionUseCase(store, store, nil)
		uc.now = func() time.Time { return auction.EndTime.Add(time.Minute) }

		require.ErrorIs(t, uc.Execute(ctx, auction.ID, auction.CreatedBy), domain.ErrAlreadyFinished)
	})
}

func TestListAuctionsUseCase_ExecuteActive(t *testing.T) {
	now := time.Now().UTC()
	ctx := context.Background()
	store := newMemStore()

	active := seedAuction(t, store, now)

	upcoming, err := domain.NewAuction(uuid.New(), "future item", "", 10, uuid.New(),
		now.Add(time.Hour), now.Add(2*time.Hour), 1, nil, now)
	require.NoError(t, err)
	store.put(upcoming)

	uc := NewListAuctionsUseCase(store, nil)
	uc.now = func() time.Time { return now }

	summaries, err := uc.ExecuteActive(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, active.ID, summaries[0].AuctionID)
	require.Equal(t, string(domain.StatusActive), summaries[0].Status)

	all, err := uc.ExecuteAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestUserViewsUseCase(t *testing.T) {
	now := time.Now().UTC()
	ctx := context.Background()
	store := newMemStore()
	auction := seedAuction(t, store, now)

	bidder := uuid.New()
	placeUC := newPlaceBidUC(store, now)
	_, err := placeUC.Execute(ctx, PlaceBidDTO{AuctionID: auction.ID, Bidder: bidder, Amount: 110})
	require.NoError(t, err)

	uc := NewUserViewsUseCase(store, bidRepoAdapter{store})
	uc.now = func() time.Time { return now }

	bids, err := uc.Bids(ctx, bidder)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.Equal(t, auction.ID, bids[0].AuctionID)
	require.Equal(t, 110.0, bids[0].Amount)

	none, err := uc.Bids(ctx, uuid.New())
	require.NoError(t, err)
	require.Empty(t, none)

	auctions, err := uc.Auctions(ctx, auction.CreatedBy)
	require.NoError(t, err)
	require.Len(t, auctions, 1)
	require.Equal(t, 110.0, auctions[0].CurrentPrice)
}
