package domain

import "time"

// StatusAt derives the lifecycle status from the auction's timestamps
// and now. It is a total function: cancelled is terminal, otherwise the
// status follows the start/end window.
func (a *Auction) StatusAt(now time.Time) AuctionStatus {
	if a.Status == StatusCancelled {
		return StatusCancelled
	}
	switch {
	case now.Before(a.StartTime):
		return StatusUpcoming
	case now.After(a.EndTime):
		return StatusEnded
	default:
		return StatusActive
	}
}

// Refresh applies the derived status for now and reports whether
// anything changed. On the transition into ended with a non-empty bid
// history the winner is assigned; an auction that ends without bids
// keeps no winner.
func (a *Auction) Refresh(now time.Time) bool {
	status := a.StatusAt(now)
	changed := status != a.Status
	a.Status = status

	if status == StatusEnded && a.Winner == nil {
		if winning := a.WinningBid(); winning != nil {
			w := winning.Bidder
			a.Winner = &w
			changed = true
		}
	}
	return changed
}
