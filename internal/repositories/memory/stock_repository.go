package memory

import (
	"context"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/stock_exchange_app/internal/models"
	"github.com/SscSPs/stock_exchange_app/internal/utils/mapping"
)

// StockRepository serves stock rows out of a Store.
type StockRepository struct {
	store *Store
}

var _ portsrepo.StockRepositoryFacade = (*StockRepository)(nil)

func (r *StockRepository) FindStockByID(ctx context.Context, stockID int64) (*domain.Stock, error) {
	var found *domain.Stock
	err := r.store.run(ctx, func(t *tx) error {
		m, ok := t.view.stocks[stockID]
		if !ok {
			return apperrors.ErrNotFound
		}
		s := mapping.ToDomainStock(m)
		found = &s
		return nil
	})
	return found, err
}

func (r *StockRepository) FindStockByName(ctx context.Context, name string) (*domain.Stock, error) {
	var found *domain.Stock
	err := r.store.run(ctx, func(t *tx) error {
		for _, m := range t.view.stocks {
			if m.Name == name {
				s := mapping.ToDomainStock(m)
				found = &s
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
	return found, err
}

func (r *StockRepository) SaveStock(ctx context.Context, stock domain.Stock) (*domain.Stock, error) {
	var saved *domain.Stock
	err := r.store.run(ctx, func(t *tx) error {
		m := mapping.ToModelStock(stock)
		m.LastUpdate = r.store.stamp()

		for id, other := range t.view.stocks {
			if id != m.ID && other.Name == m.Name {
				return apperrors.NewUniqueViolationError(stockNameConstraint, nil)
			}
		}

		if stock.IsNew() {
			m.ID = r.store.allocateStockID()
			m.Version = 0
		} else {
			current, ok := t.view.stocks[m.ID]
			if !ok || current.Version != m.Version {
				return apperrors.NewStaleVersionError("stock", m.ID)
			}
			if current.LastUpdate.After(m.LastUpdate) {
				m.LastUpdate = current.LastUpdate
			}
			m.Version = current.Version + 1
		}

		t.view.stocks[m.ID] = m
		t.touchedStocks[m.ID] = struct{}{}
		s := mapping.ToDomainStock(m)
		saved = &s
		return nil
	})
	return saved, err
}

func (r *StockRepository) DeleteStock(ctx context.Context, stock domain.Stock) error {
	return r.store.run(ctx, func(t *tx) error {
		current, ok := t.view.stocks[stock.ID]
		if !ok || current.Version != stock.Version {
			return apperrors.NewStaleVersionError("stock", stock.ID)
		}

		for exchangeID, set := range t.view.members {
			if _, listed := set[stock.ID]; !listed {
				continue
			}
			delete(set, stock.ID)
			ex := t.view.exchanges[exchangeID]
			t.view.exchanges[exchangeID] = models.Exchange{
				ID:           ex.ID,
				Name:         ex.Name,
				Description:  ex.Description,
				LiveInMarket: domain.IsLiveInMarket(len(set)),
				Version:      ex.Version + 1,
			}
			t.touchedExchanges[exchangeID] = struct{}{}
		}

		delete(t.view.stocks, stock.ID)
		t.touchedStocks[stock.ID] = struct{}{}
		return nil
	})
}
