package domain

import (
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionStatus is the derived lifecycle state of an auction. Except for
// the terminal cancelled state it is a function of the timestamps and is
// never set directly.
type AuctionStatus string

const (
	StatusUpcoming  AuctionStatus = "upcoming"
	StatusActive    AuctionStatus = "active"
	StatusEnded     AuctionStatus = "ended"
	StatusCancelled AuctionStatus = "cancelled"
)

// DefaultMinimumBidIncrement applies when an auction is created without
// an explicit increment.
const DefaultMinimumBidIncrement = 1

// Auction is the aggregate root for one time-bounded sale. CurrentPrice
// only ever changes through PlaceBid. Version is the optimistic
// concurrency token checked by the repository on every save.
type Auction struct {
	ID                  uuid.UUID
	ItemName            string
	Description         string
	StartingPrice       float64
	CurrentPrice        float64
	CreatedBy           uuid.UUID
	StartTime           time.Time
	EndTime             time.Time
	Status              AuctionStatus
	Winner              *uuid.UUID
	MinimumBidIncrement float64
	Categories          []string
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Bids                []*Bid
}

// NewAuction builds a valid auction in its initial state. CurrentPrice
// starts at StartingPrice and the status is derived from now.
func NewAuction(id uuid.UUID, itemName, description string, startingPrice float64,
	createdBy uuid.UUID, startTime, endTime time.Time, minIncrement float64,
	categories []string, now time.Time) (*Auction, error) {

	if startingPrice < 0 {
		return nil, ErrInvalidPrice
	}
	if minIncrement < 0 {
		return nil, ErrInvalidIncrement
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidTimeRange
	}

	a := &Auction{
		ID:                  id,
		ItemName:            itemName,
		Description:         description,
		StartingPrice:       startingPrice,
		CurrentPrice:        startingPrice,
		CreatedBy:           createdBy,
		StartTime:           startTime,
		EndTime:             endTime,
		MinimumBidIncrement: minIncrement,
		Categories:          categories,
		Bids:                []*Bid{},
	}
	a.Status = a.StatusAt(now)
	return a, nil
}

// PlaceBid is the single entry point through which a bid may be applied.
// The status is recomputed from now before validation, so a lapsed
// auction rejects bids even if its stored status is stale. On success
// the bid is appended and CurrentPrice moves to the bid amount.
func (a *Auction) PlaceBid(bidder uuid.UUID, amount float64, now time.Time) (*Bid, error) {
	if status := a.StatusAt(now); status != StatusActive {
		log.Warn("Bid rejected: auction not active",
			zap.String("auctionID", a.ID.String()),
			zap.String("status", string(status)),
			zap.Float64("amount", amount),
			zap.String("bidder", bidder.String()),
		)
		return nil, ErrAuctionNotActive
	}

	if amount <= a.CurrentPrice {
		log.Warn("Bid rejected: amount too low",
			zap.String("auctionID", a.ID.String()),
			zap.Float64("amount", amount),
			zap.Float64("currentPrice", a.CurrentPrice),
			zap.String("bidder", bidder.String()),
		)
		return nil, ErrBidTooLow
	}

	if amount < a.CurrentPrice+a.MinimumBidIncrement {
		log.Warn("Bid rejected: increment too small",
			zap.String("auctionID", a.ID.String()),
			zap.Float64("amount", amount),
			zap.Float64("currentPrice", a.CurrentPrice),
			zap.Float64("minIncrement", a.MinimumBidIncrement),
			zap.String("bidder", bidder.String()),
		)
		return nil, ErrIncrementTooSmall
	}

	bid := NewBid(uuid.New(), a.ID, bidder, amount, now)
	a.Bids = append(a.Bids, bid)
	a.CurrentPrice = amount
	a.Status = StatusActive

	log.Info("Bid placed",
		zap.String("auctionID", a.ID.String()),
		zap.String("bidID", bid.ID.String()),
		zap.String("bidder", bidder.String()),
		zap.Float64("newCurrentPrice", a.CurrentPrice),
	)
	return bid, nil
}

// Cancel marks the auction cancelled. Cancellation is terminal and is
// rejected once the auction has ended.
func (a *Auction) Cancel(now time.Time) error {
	switch a.StatusAt(now) {
	case StatusEnded, StatusCancelled:
		return ErrAlreadyFinished
	}
	a.Status = StatusCancelled
	log.Info("Auction cancelled", zap.String("auctionID", a.ID.String()))
	return nil
}

// WinningBid returns the highest-amount bid, ties broken by earliest
// time, or nil when there are no bids.
func (a *Auction) WinningBid() *Bid {
	var winning *Bid
	for _, b := range a.Bids {
		if winning == nil || b.Amount > winning.Amount ||
			(b.Amount == winning.Amount && b.Time.Before(winning.Time)) {
			winning = b
		}
	}
	return winning
}
