package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AuctionRepository persists the Auction aggregate. Save is conditioned
// on the version the aggregate was read with and returns
// ErrConcurrentModification when another writer got there first.
type AuctionRepository interface {
	Create(ctx context.Context, a *Auction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Auction, error)
	Save(ctx context.Context, tx pgx.Tx, a *Auction) error
	ListActive(ctx context.Context, now time.Time) ([]*Auction, error)
	ListByCreator(ctx context.Context, creator uuid.UUID) ([]*Auction, error)
	ListAll(ctx context.Context) ([]*Auction, error)
}

// BidRepository is the single authoritative bid ledger. Per-user views
// are queries against it, never a second written copy.
type BidRepository interface {
	Save(ctx context.Context, tx pgx.Tx, bid *Bid) error
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*Bid, error)
	ListByBidder(ctx context.Context, bidder uuid.UUID) ([]*Bid, error)
}

// TxRunner scopes a function to one database transaction, committing on
// nil and rolling back on error.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
