package repositories

import (
	"context"

	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
)

// ExchangeReader defines read operations for exchange data
type ExchangeReader interface {
	// FindExchangeByName retrieves an exchange with its materialized member set.
	// Returns apperrors.ErrNotFound if absent.
	FindExchangeByName(ctx context.Context, name string) (*domain.Exchange, error)
}

// ExchangeWriter defines write operations for exchange data
type ExchangeWriter interface {
	// SaveExchange inserts a new exchange (ID == 0) or updates an existing one guarded by its
	// version, replacing its membership pairs with the exchange's member set. LiveInMarket is
	// recomputed from the member set before it is written. Same failure kinds as SaveStock.
	SaveExchange(ctx context.Context, exchange domain.Exchange) (*domain.Exchange, error)
}

// ExchangeRepositoryFacade combines all exchange-related repository interfaces
type ExchangeRepositoryFacade interface {
	ExchangeReader
	ExchangeWriter
}
