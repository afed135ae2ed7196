package services

import (
	"context"

	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	"github.com/SscSPs/stock_exchange_app/internal/dto"
)

// StockReaderSvc defines read operations for stock data
type StockReaderSvc interface {
	// GetStockByID retrieves a stock by its identifier.
	GetStockByID(ctx context.Context, stockID int64) (*domain.Stock, error)
}

// StockWriterSvc defines write operations for stock data
type StockWriterSvc interface {
	// CreateStock persists a new stock. Fails with ALREADY_EXISTS when the name is taken.
	CreateStock(ctx context.Context, req dto.CreateStockRequest) (*domain.Stock, error)

	// UpdateStockPrice overwrites the current price of an existing stock.
	UpdateStockPrice(ctx context.Context, req dto.UpdateStockPriceRequest) (*domain.Stock, error)

	// DeleteStock removes a stock and withdraws it from every exchange listing it.
	DeleteStock(ctx context.Context, stockID int64) error
}

// StockSvcFacade combines all stock-related service interfaces
type StockSvcFacade interface {
	StockReaderSvc
	StockWriterSvc
}
