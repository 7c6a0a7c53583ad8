package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore is an in-memory stand-in for the postgres repositories and
// tx runner. Save is conditioned on the version the aggregate was read
// with, exactly like the real repository, and writes staged inside
// RunInTx are discarded when the function errors.
type memStore struct {
	mu       sync.Mutex
	auctions map[uuid.UUID]*domain.Auction
	bids     []*domain.Bid

	stagedAuctions []*domain.Auction
	stagedBids     []*domain.Bid

	// staleReads, when non-empty, overrides GetByID responses in order.
	// Used to simulate another writer landing between read and write.
	staleReads []*domain.Auction
}

func newMemStore() *memStore {
	return &memStore{auctions: make(map[uuid.UUID]*domain.Auction)}
}

func cloneAuction(a *domain.Auction) *domain.Auction {
	cp := *a
	cp.Bids = make([]*domain.Bid, len(a.Bids))
	for i, b := range a.Bids {
		bc := *b
		cp.Bids[i] = &bc
	}
	if a.Winner != nil {
		w := *a.Winner
		cp.Winner = &w
	}
	return &cp
}

func (s *memStore) put(a *domain.Auction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[a.ID] = cloneAuction(a)
}

func (s *memStore) Create(ctx context.Context, a *domain.Auction) error {
	s.put(a)
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.staleReads) > 0 {
		stale := s.staleReads[0]
		s.staleReads = s.staleReads[1:]
		return cloneAuction(stale), nil
	}
	a, ok := s.auctions[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	return cloneAuction(a), nil
}

// Save stages the aggregate; the version check happens here so a
// conflicting attempt fails before commit.
func (s *memStore) Save(ctx context.Context, tx pgx.Tx, a *domain.Auction) error {
	stored, ok := s.auctions[a.ID]
	if !ok {
		return domain.ErrAuctionNotFound
	}
	if stored.Version != a.Version {
		return domain.ErrConcurrentModification
	}
	cp := cloneAuction(a)
	cp.Version++
	s.stagedAuctions = append(s.stagedAuctions, cp)
	return nil
}

func (s *memStore) ListActive(ctx context.Context, now time.Time) ([]*domain.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Auction
	for _, a := range s.auctions {
		if a.StatusAt(now) == domain.StatusActive {
			out = append(out, cloneAuction(a))
		}
	}
	return out, nil
}

func (s *memStore) ListByCreator(ctx context.Context, creator uuid.UUID) ([]*domain.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Auction
	for _, a := range s.auctions {
		if a.CreatedBy == creator {
			out = append(out, cloneAuction(a))
		}
	}
	return out, nil
}

func (s *memStore) ListAll(ctx context.Context) ([]*domain.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Auction
	for _, a := range s.auctions {
		out = append(out, cloneAuction(a))
	}
	return out, nil
}

func (s *memStore) SaveBid(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	bc := *bid
	s.stagedBids = append(s.stagedBids, &bc)
	return nil
}

func (s *memStore) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Bid
	for _, b := range s.bids {
		if b.AuctionID == auctionID {
			bc := *b
			out = append(out, &bc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (s *memStore) ListByBidder(ctx context.Context, bidder uuid.UUID) ([]*domain.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Bid
	for _, b := range s.bids {
		if b.Bidder == bidder {
			bc := *b
			out = append(out, &bc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

// RunInTx serializes commits. Staged writes apply only when fn returns
// nil, mirroring commit/rollback.
func (s *memStore) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stagedAuctions = nil
	s.stagedBids = nil
	if err := fn(nil); err != nil {
		s.stagedAuctions = nil
		s.stagedBids = nil
		return err
	}
	for _, a := range s.stagedAuctions {
		s.auctions[a.ID] = a
	}
	s.bids = append(s.bids, s.stagedBids...)
	return nil
}

// bidRepoAdapter exposes the memStore under the BidRepository method set.
type bidRepoAdapter struct{ s *memStore }

func (r bidRepoAdapter) Save(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	return r.s.SaveBid(ctx, tx, bid)
}
func (r bidRepoAdapter) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	return r.s.ListByAuction(ctx, auctionID)
}
func (r bidRepoAdapter) ListByBidder(ctx context.Context, bidder uuid.UUID) ([]*domain.Bid, error) {
	return r.s.ListByBidder(ctx, bidder)
}
