package application

import (
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/google/uuid"
)

// AuctionStateDTO is the full auction view, including bid history.
type AuctionStateDTO struct {
	AuctionID           uuid.UUID  `json:"auction_id"`
	ItemName            string     `json:"item_name"`
	Description         string     `json:"description"`
	StartingPrice       float64    `json:"starting_price"`
	CurrentPrice        float64    `json:"current_price"`
	CreatedBy           uuid.UUID  `json:"created_by"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             time.Time  `json:"end_time"`
	Status              string     `json:"status"`
	Winner              *uuid.UUID `json:"winner,omitempty"`
	MinimumBidIncrement float64    `json:"minimum_bid_increment"`
	Categories          []string   `json:"categories,omitempty"`
	Bids                []BidDTO   `json:"bids"`
}

// AuctionSummaryDTO is the listing view.
type AuctionSummaryDTO struct {
	AuctionID    uuid.UUID `json:"auction_id"`
	ItemName     string    `json:"item_name"`
	CurrentPrice float64   `json:"current_price"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	BidCount     int       `json:"bid_count"`
}

type BidDTO struct {
	BidID  uuid.UUID `json:"bid_id"`
	Bidder uuid.UUID `json:"bidder"`
	Amount float64   `json:"amount"`
	Time   time.Time `json:"time"`
}

// UserBidDTO is the per-user bid view, derived by query from the
// auction-keyed ledger.
type UserBidDTO struct {
	AuctionID uuid.UUID `json:"auction_id"`
	Amount    float64   `json:"amount"`
	BidTime   time.Time `json:"bid_time"`
}

func auctionStateFromDomain(a *domain.Auction, now time.Time) *AuctionStateDTO {
	dto := &AuctionStateDTO{
		AuctionID:           a.ID,
		ItemName:            a.ItemName,
		Description:         a.Description,
		StartingPrice:       a.StartingPrice,
		CurrentPrice:        a.CurrentPrice,
		CreatedBy:           a.CreatedBy,
		StartTime:           a.StartTime,
		EndTime:             a.EndTime,
		Status:              string(a.StatusAt(now)),
		Winner:              a.Winner,
		MinimumBidIncrement: a.MinimumBidIncrement,
		Categories:          a.Categories,
		Bids:                make([]BidDTO, 0, len(a.Bids)),
	}
	for _, b := range a.Bids {
		dto.Bids = append(dto.Bids, BidDTO{
			BidID:  b.ID,
			Bidder: b.Bidder,
			Amount: b.Amount,
			Time:   b.Time,
		})
	}
	return dto
}

func auctionSummaryFromDomain(a *domain.Auction, now time.Time) AuctionSummaryDTO {
	return AuctionSummaryDTO{
		AuctionID:    a.ID,
		ItemName:     a.ItemName,
		CurrentPrice: a.CurrentPrice,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Status:       string(a.StatusAt(now)),
		BidCount:     len(a.Bids),
	}
}
