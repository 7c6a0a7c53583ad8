package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStatusAt(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	a, err := NewAuction(uuid.New(), "item", "", 50, uuid.New(), start, end, 1, nil, now)
	require.NoError(t, err)

	tests := []struct {
		name     string
		at       time.Time
		expected AuctionStatus
	}{
		{"before_start", start.Add(-time.Minute), StatusUpcoming},
		{"at_start", start, StatusActive},
		{"mid_window", now, StatusActive},
		{"at_end", end, StatusActive},
		{"after_end", end.Add(time.Second), StatusEnded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, a.StatusAt(tc.at))
		})
	}

	t.Run("cancelled_is_terminal", func(t *testing.T) {
		require.NoError(t, a.Cancel(now))
		for _, tc := range tests {
			require.Equal(t, StatusCancelled, a.StatusAt(tc.at))
		}
	})
}

func TestRefresh_WinnerAssignment(t *testing.T) {
	now := time.Now().UTC()

	t.Run("no_winner_while_active", func(t *testing.T) {
		a := testAuction(t, now)
		_, err := a.PlaceBid(uuid.New(), 110, now)
		require.NoError(t, err)
		a.Refresh(now)
		require.Nil(t, a.Winner)
	})

	t.Run("winner_on_ended_with_bids", func(t *testing.T) {
		a := testAuction(t, now)
		loser := uuid.New()
		winner := uuid.New()
		_, err := a.PlaceBid(loser, 110, now)
		require.NoError(t, err)
		_, err = a.PlaceBid(winner, 120, now.Add(time.Minute))
		require.NoError(t, err)

		changed := a.Refresh(a.EndTime.Add(time.Minute))
		require.True(t, changed)
		require.Equal(t, StatusEnded, a.Status)
		require.NotNil(t, a.Winner)
		require.Equal(t, winner, *a.Winner)
	})

	t.Run("no_winner_on_ended_without_bids", func(t *testing.T) {
		a := testAuction(t, now)
		a.Refresh(a.EndTime.Add(time.Minute))
		require.Equal(t, StatusEnded, a.Status)
		require.Nil(t, a.Winner)
	})

	t.Run("refresh_is_idempotent", func(t *testing.T) {
		a := testAuction(t, now)
		_, err := a.PlaceBid(uuid.New(), 110, now)
		require.NoError(t, err)

		after := a.EndTime.Add(time.Minute)
		require.True(t, a.Refresh(after))
		require.False(t, a.Refresh(after))
	})
}

func TestWinningBid_TieBreak(t *testing.T) {
	now := time.Now().UTC()
	a := testAuction(t, now)

	first := uuid.New()
	second := uuid.New()

	// Equal amounts cannot arise through PlaceBid on one auction, but the
	// selection rule must still break ties by earliest time.
	a.Bids = []*Bid{
		NewBid(uuid.New(), a.ID, second, 120, now.Add(2*time.Minute)),
		NewBid(uuid.New(), a.ID, first, 120, now.Add(time.Minute)),
		NewBid(uuid.New(), a.ID, uuid.New(), 110, now),
	}

	winning := a.WinningBid()
	require.NotNil(t, winning)
	require.Equal(t, first, winning.Bidder)
	require.Equal(t, 120.0, winning.Amount)
}
