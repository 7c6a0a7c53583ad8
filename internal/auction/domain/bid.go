package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bid is a single offer by a user against an auction. Bids are entities
// inside the Auction aggregate; insertion order is chronological order.
type Bid struct {
	ID        uuid.UUID
	AuctionID uuid.UUID
	Bidder    uuid.UUID
	Amount    float64
	Time      time.Time
}

// NewBid creates a new Bid instance.
func NewBid(id, auctionID, bidder uuid.UUID, amount float64, at time.Time) *Bid {
	return &Bid{
		ID:        id,
		AuctionID: auctionID,
		Bidder:    bidder,
		Amount:    amount,
		Time:      at,
	}
}
