package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuctionRepository implements domain.AuctionRepository.
type AuctionRepository struct {
	pool *pgxpool.Pool
}

func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{pool: pool}
}

const auctionColumns = `id, item_name, description, starting_price, current_price, created_by,
	start_time, end_time, status, winner, minimum_bid_increment, categories, version, created_at, updated_at`

func (r *AuctionRepository) Create(ctx context.Context, a *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, item_name, description, starting_price, current_price, created_by,
            start_time, end_time, status, winner, minimum_bid_increment, categories, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.ItemName,
		a.Description,
		a.StartingPrice,
		a.CurrentPrice,
		a.CreatedBy,
		a.StartTime,
		a.EndTime,
		a.Status,
		a.Winner,
		a.MinimumBidIncrement,
		a.Categories,
		a.Version,
	)
	return err
}

// Save writes the mutable auction state conditioned on the version the
// aggregate was read with. Zero rows updated means another writer
// committed in between; the caller decides whether to retry.
func (r *AuctionRepository) Save(ctx context.Context, tx pgx.Tx, a *domain.Auction) error {
	query := `
        UPDATE auctions
        SET current_price = $3,
            status = $4,
            winner = $5,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $1 AND version = $2
    `
	tag, err := tx.Exec(ctx, query,
		a.ID,
		a.Version,
		a.CurrentPrice,
		a.Status,
		a.Winner,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	a.Version++
	return nil
}

func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`

	a, err := scanAuction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}
	if err := r.loadBids(ctx, []*domain.Auction{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// ListActive returns auctions whose time window contains now, cancelled
// ones excluded. The stored status column may lag behind the derived
// status, so the filter is on timestamps, not on the column.
func (r *AuctionRepository) ListActive(ctx context.Context, now time.Time) ([]*domain.Auction, error) {
	query := `
        SELECT ` + auctionColumns + `
        FROM auctions
        WHERE status <> $1 AND start_time <= $2 AND end_time >= $2
        ORDER BY end_time ASC
    `
	return r.list(ctx, query, domain.StatusCancelled, now)
}

func (r *AuctionRepository) ListByCreator(ctx context.Context, creator uuid.UUID) ([]*domain.Auction, error) {
	query := `
        SELECT ` + auctionColumns + `
        FROM auctions
        WHERE created_by = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, creator)
}

func (r *AuctionRepository) ListAll(ctx context.Context) ([]*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *AuctionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Auction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auctions []*domain.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadBids(ctx, auctions); err != nil {
		return nil, err
	}
	return auctions, nil
}

func scanAuction(row pgx.Row) (*domain.Auction, error) {
	a := &domain.Auction{}
	var winner *uuid.UUID
	err := row.Scan(
		&a.ID,
		&a.ItemName,
		&a.Description,
		&a.StartingPrice,
		&a.CurrentPrice,
		&a.CreatedBy,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&winner,
		&a.MinimumBidIncrement,
		&a.Categories,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Winner = winner
	return a, nil
}

// loadBids attaches each auction's bid history in chronological order.
func (r *AuctionRepository) loadBids(ctx context.Context, auctions []*domain.Auction) error {
	if len(auctions) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*domain.Auction, len(auctions))
	ids := make([]uuid.UUID, 0, len(auctions))
	for _, a := range auctions {
		a.Bids = []*domain.Bid{}
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}

	query := `
        SELECT id, auction_id, bidder, amount, bid_time
        FROM bids
        WHERE auction_id = ANY($1)
        ORDER BY bid_time ASC
    `
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		bid := &domain.Bid{}
		if err := rows.Scan(&bid.ID, &bid.AuctionID, &bid.Bidder, &bid.Amount, &bid.Time); err != nil {
			return err
		}
		if a, ok := byID[bid.AuctionID]; ok {
			a.Bids = append(a.Bids, bid)
		}
	}
	return rows.Err()
}
