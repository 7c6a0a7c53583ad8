package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testAuction(t *testing.T, now time.Time) *Auction {
	t.Helper()
	a, err := NewAuction(uuid.New(), "vintage clock", "", 100, uuid.New(),
		now.Add(-time.Hour), now.Add(time.Hour), 5, nil, now)
	require.NoError(t, err)
	require.Equal(t, StatusActive, a.Status)
	require.Equal(t, 100.0, a.CurrentPrice)
	return a
}

func TestNewAuction_Validation(t *testing.T) {
	now := time.Now().UTC()
	creator := uuid.New()

	tests := []struct {
		name          string
		startingPrice float64
		minIncrement  float64
		start, end    time.Time
		expectedError error
	}{
		{
			name:          "negative_starting_price",
			startingPrice: -1,
			minIncrement:  1,
			start:         now,
			end:           now.Add(time.Hour),
			expectedError: ErrInvalidPrice,
		},
		{
			name:          "negative_increment",
			startingPrice: 10,
			minIncrement:  -0.5,
			start:         now,
			end:           now.Add(time.Hour),
			expectedError: ErrInvalidIncrement,
		},
		{
			name:          "end_before_start",
			startingPrice: 10,
			minIncrement:  1,
			start:         now.Add(time.Hour),
			end:           now,
			expectedError: ErrInvalidTimeRange,
		},
		{
			name:          "end_equals_start",
			startingPrice: 10,
			minIncrement:  1,
			start:         now,
			end:           now,
			expectedError: ErrInvalidTimeRange,
		},
		{
			name:          "zero_increment_is_allowed",
			startingPrice: 0,
			minIncrement:  0,
			start:         now,
			end:           now.Add(time.Hour),
			expectedError: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := NewAuction(uuid.New(), "item", "", tc.startingPrice, creator,
				tc.start, tc.end, tc.minIncrement, nil, now)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.startingPrice, a.CurrentPrice)
		})
	}
}

func TestPlaceBid_Validation(t *testing.T) {
	now := time.Now().UTC()
	bidder := uuid.New()

	tests := []struct {
		name          string
		amount        float64
		at            time.Time
		expectedError error
	}{
		{
			name:          "below_current_price",
			amount:        90,
			at:            now,
			expectedError: ErrBidTooLow,
		},
		{
			name:          "equal_to_current_price",
			amount:        100,
			at:            now,
			expectedError: ErrBidTooLow,
		},
		{
			name:          "above_price_below_increment",
			amount:        103,
			at:            now,
			expectedError: ErrIncrementTooSmall,
		},
		{
			name:   "exactly_minimum_increment",
			amount: 105,
			at:     now,
		},
		{
			name:   "well_above_increment",
			amount: 110,
			at:     now,
		},
		{
			name:          "before_start",
			amount:        110,
			at:            now.Add(-2 * time.Hour),
			expectedError: ErrAuctionNotActive,
		},
		{
			name:          "after_end",
			amount:        110,
			at:            now.Add(2 * time.Hour),
			expectedError: ErrAuctionNotActive,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := testAuction(t, now)
			bid, err := a.PlaceBid(bidder, tc.amount, tc.at)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				require.Equal(t, 100.0, a.CurrentPrice)
				require.Empty(t, a.Bids)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.amount, a.CurrentPrice)
			require.Equal(t, tc.amount, bid.Amount)
			require.Equal(t, bidder, bid.Bidder)
			require.Len(t, a.Bids, 1)
		})
	}
}

// The sequence from the pricing example: 103 rejected, 110 accepted,
// 110 again rejected, 115 after the end rejected.
func TestPlaceBid_Sequence(t *testing.T) {
	now := time.Now().UTC()
	a := testAuction(t, now)
	bidder := uuid.New()

	_, err := a.PlaceBid(bidder, 103, now)
	require.ErrorIs(t, err, ErrIncrementTooSmall)

	_, err = a.PlaceBid(bidder, 110, now)
	require.NoError(t, err)
	require.Equal(t, 110.0, a.CurrentPrice)

	_, err = a.PlaceBid(uuid.New(), 110, now.Add(time.Minute))
	require.ErrorIs(t, err, ErrBidTooLow)

	_, err = a.PlaceBid(uuid.New(), 115, a.EndTime.Add(time.Minute))
	require.ErrorIs(t, err, ErrAuctionNotActive)

	require.Len(t, a.Bids, 1)
}

// CurrentPrice must be monotonically non-decreasing over any accepted
// bid sequence.
func TestPlaceBid_PriceMonotonic(t *testing.T) {
	now := time.Now().UTC()
	a := testAuction(t, now)

	last := a.CurrentPrice
	amounts := []float64{105, 111, 116.5, 200}
	for i, amount := range amounts {
		_, err := a.PlaceBid(uuid.New(), amount, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.GreaterOrEqual(t, a.CurrentPrice, last)
		last = a.CurrentPrice
	}
	require.Len(t, a.Bids, len(amounts))
}

func TestCancel(t *testing.T) {
	now := time.Now().UTC()

	t.Run("active_auction_cancels", func(t *testing.T) {
		a := testAuction(t, now)
		require.NoError(t, a.Cancel(now))
		require.Equal(t, StatusCancelled, a.Status)

		// terminal: stays cancelled even inside the time window
		require.Equal(t, StatusCancelled, a.StatusAt(now))
		_, err := a.PlaceBid(uuid.New(), 200, now)
		require.ErrorIs(t, err, ErrAuctionNotActive)
	})

	t.Run("ended_auction_rejects_cancel", func(t *testing.T) {
		a := testAuction(t, now)
		require.ErrorIs(t, a.Cancel(a.EndTime.Add(time.Minute)), ErrAlreadyFinished)
	})

	t.Run("cancel_twice", func(t *testing.T) {
		a := testAuction(t, now)
		require.NoError(t, a.Cancel(now))
		require.ErrorIs(t, a.Cancel(now), ErrAlreadyFinished)
	})
}
