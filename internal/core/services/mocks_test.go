package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	"github.com/SscSPs/stock_exchange_app/internal/core/retry"
	"github.com/SscSPs/stock_exchange_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindStockByID(ctx context.Context, stockID int64) (*domain.Stock, error) {
	args := m.Called(ctx, stockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockRepository) FindStockByName(ctx context.Context, name string) (*domain.Stock, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockRepository) SaveStock(ctx context.Context, stock domain.Stock) (*domain.Stock, error) {
	args := m.Called(ctx, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *MockStockRepository) DeleteStock(ctx context.Context, stock domain.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

// --- Mock ExchangeRepository ---
type MockExchangeRepository struct {
	mock.Mock
}

func (m *MockExchangeRepository) FindExchangeByName(ctx context.Context, name string) (*domain.Exchange, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, string) *domain.Exchange); ok {
		return fn(ctx, name), args.Error(1)
	}
	return args.Get(0).(*domain.Exchange), args.Error(1)
}

func (m *MockExchangeRepository) SaveExchange(ctx context.Context, exchange domain.Exchange) (*domain.Exchange, error) {
	args := m.Called(ctx, exchange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, domain.Exchange) *domain.Exchange); ok {
		return fn(ctx, exchange), args.Error(1)
	}
	return args.Get(0).(*domain.Exchange), args.Error(1)
}

// passthroughTxManager runs the unit directly and counts how many transactions were opened.
type passthroughTxManager struct {
	opened int
}

func (tm *passthroughTxManager) WithTransaction(ctx context.Context, unit func(ctx context.Context) error) error {
	tm.opened++
	return unit(ctx)
}

// fastPolicies keeps the default budgets but drops the backoff so tests do not sleep.
func fastPolicies() services.RetryPolicies {
	p := services.DefaultRetryPolicies()
	p.Version.Backoff = retry.FixedBackoff(0)
	p.Unique.Backoff = retry.FixedBackoff(0)
	return p
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testStock(id int64, name string) *domain.Stock {
	return &domain.Stock{
		ID:           id,
		Name:         name,
		Description:  name + " description",
		CurrentPrice: decimal.RequireFromString("10.00"),
		LastUpdate:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}
