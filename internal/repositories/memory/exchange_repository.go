package memory

import (
	"context"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/stock_exchange_app/internal/models"
	"github.com/SscSPs/stock_exchange_app/internal/utils/mapping"
)

// ExchangeRepository serves exchange rows and their memberships out of a Store.
type ExchangeRepository struct {
	store *Store
}

var _ portsrepo.ExchangeRepositoryFacade = (*ExchangeRepository)(nil)

func (r *ExchangeRepository) FindExchangeByName(ctx context.Context, name string) (*domain.Exchange, error) {
	var found *domain.Exchange
	err := r.store.run(ctx, func(t *tx) error {
		for _, m := range t.view.exchanges {
			if m.Name == name {
				ex := snapshot(t.view, m)
				found = &ex
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
	return found, err
}

func (r *ExchangeRepository) SaveExchange(ctx context.Context, exchange domain.Exchange) (*domain.Exchange, error) {
	var saved *domain.Exchange
	err := r.store.run(ctx, func(t *tx) error {
		m := mapping.ToModelExchange(exchange)

		for id, other := range t.view.exchanges {
			if id != m.ID && other.Name == m.Name {
				return apperrors.NewUniqueViolationError(exchangeNameConstraint, nil)
			}
		}

		if exchange.ID == 0 {
			m.ID = r.store.allocateExchangeID()
			m.Version = 0
		} else {
			current, ok := t.view.exchanges[m.ID]
			if !ok || current.Version != m.Version {
				return apperrors.NewStaleVersionError("exchange", m.ID)
			}
			m.Version = current.Version + 1
		}

		set := make(map[int64]struct{}, len(exchange.Members))
		for _, stockID := range exchange.MemberIDs() {
			if _, ok := t.view.stocks[stockID]; !ok {
				return apperrors.NewStaleVersionError("stock", stockID)
			}
			set[stockID] = struct{}{}
		}

		t.view.exchanges[m.ID] = m
		t.view.members[m.ID] = set
		t.touchedExchanges[m.ID] = struct{}{}
		ex := snapshot(t.view, m)
		saved = &ex
		return nil
	})
	return saved, err
}

func snapshot(c *catalog, m models.Exchange) domain.Exchange {
	members := make([]models.Stock, 0, len(c.members[m.ID]))
	for stockID := range c.members[m.ID] {
		members = append(members, c.stocks[stockID])
	}
	return mapping.ToDomainExchange(m, members)
}
