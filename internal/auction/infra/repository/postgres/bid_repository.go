package postgres

import (
	"context"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository implements domain.BidRepository over the single
// authoritative bids table.
type BidRepository struct {
	pool *pgxpool.Pool
}

func NewBidRepository(pool *pgxpool.Pool) *BidRepository {
	return &BidRepository{pool: pool}
}

// Save inserts a new bid. It only ever runs inside the transaction that
// also updates the auction's price.
func (r *BidRepository) Save(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (id, auction_id, bidder, amount, bid_time)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := tx.Exec(ctx, query,
		bid.ID,
		bid.AuctionID,
		bid.Bidder,
		bid.Amount,
		bid.Time,
	)
	return err
}

func (r *BidRepository) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	query := `
        SELECT id, auction_id, bidder, amount, bid_time
        FROM bids
        WHERE auction_id = $1
        ORDER BY bid_time ASC
    `
	return r.list(ctx, query, auctionID)
}

func (r *BidRepository) ListByBidder(ctx context.Context, bidder uuid.UUID) ([]*domain.Bid, error) {
	query := `
        SELECT id, auction_id, bidder, amount, bid_time
        FROM bids
        WHERE bidder = $1
        ORDER BY bid_time ASC
    `
	return r.list(ctx, query, bidder)
}

func (r *BidRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Bid, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		bid := &domain.Bid{}
		if err := rows.Scan(&bid.ID, &bid.AuctionID, &bid.Bidder, &bid.Amount, &bid.Time); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bids, nil
}
