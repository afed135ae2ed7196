// Package memory is a process-local Catalog Store. It keeps the committed catalog behind a mutex
// and gives every transaction a private snapshot; writes are validated against the committed
// versions at commit time, so concurrent writers race exactly like they do against Postgres.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	"github.com/SscSPs/stock_exchange_app/internal/models"
)

const (
	stockNameConstraint    = "uk_stock_name"
	exchangeNameConstraint = "uk_stock_exchange_name"
)

// SeedExchange describes an exchange created when the store is built.
type SeedExchange struct {
	Name        string
	Description string
}

// DefaultExchanges mirrors the rows inserted by the seed migration.
var DefaultExchanges = []SeedExchange{
	{Name: "NASDAQ", Description: "National Association of Securities Dealers Automated Quotations"},
	{Name: "NYSE", Description: "New York Stock Exchange"},
	{Name: "LSE", Description: "London Stock Exchange"},
	{Name: "BIST", Description: "Borsa Istanbul"},
}

type catalog struct {
	stocks    map[int64]models.Stock
	exchanges map[int64]models.Exchange
	members   map[int64]map[int64]struct{} // exchange id -> stock ids
}

func newCatalog() *catalog {
	return &catalog{
		stocks:    map[int64]models.Stock{},
		exchanges: map[int64]models.Exchange{},
		members:   map[int64]map[int64]struct{}{},
	}
}

func (c *catalog) clone() *catalog {
	out := &catalog{
		stocks:    make(map[int64]models.Stock, len(c.stocks)),
		exchanges: make(map[int64]models.Exchange, len(c.exchanges)),
		members:   make(map[int64]map[int64]struct{}, len(c.members)),
	}
	for id, s := range c.stocks {
		out.stocks[id] = s
	}
	for id, e := range c.exchanges {
		out.exchanges[id] = e
	}
	for id, set := range c.members {
		out.members[id] = cloneSet(set)
	}
	return out
}

func cloneSet(set map[int64]struct{}) map[int64]struct{} {
	out := make(map[int64]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}

// Store is the in-memory Catalog Store.
type Store struct {
	mu             sync.Mutex
	committed      *catalog
	nextStockID    int64
	nextExchangeID int64
	now            func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used to stamp stock writes.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithSeedExchanges creates the given exchanges, with no members, when the store is built.
func WithSeedExchanges(seeds ...SeedExchange) Option {
	return func(s *Store) {
		for _, seed := range seeds {
			s.nextExchangeID++
			s.committed.exchanges[s.nextExchangeID] = models.Exchange{
				ID:          s.nextExchangeID,
				Name:        seed.Name,
				Description: seed.Description,
			}
			s.committed.members[s.nextExchangeID] = map[int64]struct{}{}
		}
	}
}

// NewStore creates an empty store. Pass WithSeedExchanges(DefaultExchanges...) for the seeded catalog.
func NewStore(opts ...Option) *Store {
	s := &Store{
		committed: newCatalog(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type txCtxKey struct{}

// tx is a snapshot of the committed catalog plus the rows this transaction wrote.
type tx struct {
	base             *catalog
	view             *catalog
	touchedStocks    map[int64]struct{}
	touchedExchanges map[int64]struct{}
}

func (s *Store) begin() *tx {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &tx{
		base:             s.committed,
		view:             s.committed.clone(),
		touchedStocks:    map[int64]struct{}{},
		touchedExchanges: map[int64]struct{}{},
	}
}

// WithTransaction runs unit against a private snapshot and publishes its writes on success.
// A nested call joins the outer transaction.
func (s *Store) WithTransaction(ctx context.Context, unit func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(*tx); ok {
		return unit(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t := s.begin()
	if err := unit(context.WithValue(ctx, txCtxKey{}, t)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(t)
}

// run executes fn inside the transaction bound to ctx, or inside a fresh one.
func (s *Store) run(ctx context.Context, fn func(t *tx) error) error {
	if t, ok := ctx.Value(txCtxKey{}).(*tx); ok {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(t)
	}
	return s.WithTransaction(ctx, func(ctx context.Context) error {
		return fn(ctx.Value(txCtxKey{}).(*tx))
	})
}

// commit validates the transaction against the committed catalog (first committer wins) and publishes it.
func (s *Store) commit(t *tx) error {
	if len(t.touchedStocks) == 0 && len(t.touchedExchanges) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.committed

	for id := range t.touchedStocks {
		before, existed := t.base.stocks[id]
		now, exists := cur.stocks[id]
		if err := checkVersion("stock", id, before.Version, existed, now.Version, exists); err != nil {
			return err
		}
	}
	for id := range t.touchedExchanges {
		before, existed := t.base.exchanges[id]
		now, exists := cur.exchanges[id]
		if err := checkVersion("exchange", id, before.Version, existed, now.Version, exists); err != nil {
			return err
		}
	}

	next := cur.clone()
	for id := range t.touchedStocks {
		if row, ok := t.view.stocks[id]; ok {
			next.stocks[id] = row
			continue
		}
		delete(next.stocks, id)
		for exchangeID, set := range next.members {
			if _, listed := set[id]; !listed {
				continue
			}
			if _, ours := t.touchedExchanges[exchangeID]; !ours {
				// a concurrent add listed the stock after our snapshot
				return apperrors.NewStaleVersionError("exchange", exchangeID)
			}
		}
	}
	for id := range t.touchedExchanges {
		row, ok := t.view.exchanges[id]
		if !ok {
			delete(next.exchanges, id)
			delete(next.members, id)
			continue
		}
		next.exchanges[id] = row
		next.members[id] = cloneSet(t.view.members[id])
		for stockID := range next.members[id] {
			if _, exists := next.stocks[stockID]; !exists {
				return fmt.Errorf("%w: stock %d removed while listing on exchange %d", apperrors.ErrStaleVersion, stockID, id)
			}
		}
	}

	if err := checkUniqueNames(next, t); err != nil {
		return err
	}
	s.committed = next
	return nil
}

// checkVersion fails when a row present in the snapshot was changed or removed by another commit.
func checkVersion(entity string, id int64, before int, existed bool, now int, exists bool) error {
	if existed && (!exists || now != before) {
		return apperrors.NewStaleVersionError(entity, id)
	}
	return nil
}

func checkUniqueNames(c *catalog, t *tx) error {
	for id := range t.touchedStocks {
		row, ok := c.stocks[id]
		if !ok {
			continue
		}
		for otherID, other := range c.stocks {
			if otherID != id && other.Name == row.Name {
				return apperrors.NewUniqueViolationError(stockNameConstraint, nil)
			}
		}
	}
	for id := range t.touchedExchanges {
		row, ok := c.exchanges[id]
		if !ok {
			continue
		}
		for otherID, other := range c.exchanges {
			if otherID != id && other.Name == row.Name {
				return apperrors.NewUniqueViolationError(exchangeNameConstraint, nil)
			}
		}
	}
	return nil
}

func (s *Store) allocateStockID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextStockID++
	return s.nextStockID
}

func (s *Store) allocateExchangeID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextExchangeID++
	return s.nextExchangeID
}

func (s *Store) stamp() time.Time {
	return domain.StockLastUpdate(s.now())
}
