package dto

import (
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStockRequest defines the data needed to create a new stock.
type CreateStockRequest struct {
	Name         string           `json:"name" binding:"required,notblank,max=250" example:"AAPL"`
	Description  string           `json:"description" binding:"required,notblank,max=1024" example:"Apple Inc."`
	CurrentPrice *decimal.Decimal `json:"currentPrice" binding:"required,decimal_positive,decimal_digits" swaggertype:"number" example:"12.34"`
}

// UpdateStockPriceRequest defines the data needed to reprice an existing stock.
type UpdateStockPriceRequest struct {
	ID           int64            `json:"id" binding:"required,gt=0" example:"1"`
	CurrentPrice *decimal.Decimal `json:"currentPrice" binding:"required,decimal_positive,decimal_digits" swaggertype:"number" example:"99.99"`
}

// StockResponse defines the data returned for a stock.
type StockResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CurrentPrice Money     `json:"currentPrice" swaggertype:"number"`
	LastUpdate   Timestamp `json:"lastUpdate" swaggertype:"string" example:"2024-05-01 12:30:00"`
}

// ToStockResponse converts a domain.Stock to StockResponse DTO
func ToStockResponse(s *domain.Stock) StockResponse {
	return StockResponse{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		CurrentPrice: Money(s.CurrentPrice),
		LastUpdate:   Timestamp(s.LastUpdate),
	}
}

// ToListStockResponse converts a slice of domain.Stock to a slice of StockResponse DTOs
func ToListStockResponse(stocks []domain.Stock) []StockResponse {
	res := make([]StockResponse, len(stocks))
	for i, s := range stocks {
		res[i] = ToStockResponse(&s)
	}
	return res
}
