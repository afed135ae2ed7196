package services

import (
	"context"

	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
)

// ExchangeReaderSvc defines read operations for exchange data
type ExchangeReaderSvc interface {
	// GetExchange retrieves an exchange by name together with its listed stocks.
	GetExchange(ctx context.Context, name string) (*domain.Exchange, error)
}

// ExchangeMembershipSvc defines the membership mutations of an exchange
type ExchangeMembershipSvc interface {
	// AddStockToExchange lists the stock on the exchange and returns the updated snapshot.
	AddStockToExchange(ctx context.Context, name string, stockID int64) (*domain.Exchange, error)

	// RemoveStockFromExchange delists the stock from the exchange and returns the updated snapshot.
	RemoveStockFromExchange(ctx context.Context, name string, stockID int64) (*domain.Exchange, error)
}

// ExchangeSvcFacade combines all exchange-related service interfaces
type ExchangeSvcFacade interface {
	ExchangeReaderSvc
	ExchangeMembershipSvc
}
