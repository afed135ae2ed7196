package repositories

import (
	"context"

	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
)

// StockReader defines read operations for stock data
type StockReader interface {
	// FindStockByID retrieves a stock by its identifier. Returns apperrors.ErrNotFound if absent.
	FindStockByID(ctx context.Context, stockID int64) (*domain.Stock, error)

	// FindStockByName retrieves a stock by its unique name. Returns apperrors.ErrNotFound if absent.
	FindStockByName(ctx context.Context, name string) (*domain.Stock, error)
}

// StockWriter defines write operations for stock data
type StockWriter interface {
	// SaveStock inserts a new stock (ID == 0) or updates an existing one guarded by its version.
	// The store stamps LastUpdate and advances Version. Fails with apperrors.ErrUniqueViolation
	// on a name collision and apperrors.ErrStaleVersion when the version no longer matches.
	SaveStock(ctx context.Context, stock domain.Stock) (*domain.Stock, error)

	// DeleteStock removes the stock and every membership referencing it atomically.
	// Every exchange that listed the stock has its liveness recomputed and its version advanced.
	DeleteStock(ctx context.Context, stock domain.Stock) error
}

// StockRepositoryFacade combines all stock-related repository interfaces
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}
