package dto

import "github.com/SscSPs/stock_exchange_app/internal/core/domain"

// ExchangeResponse defines the data returned for a stock exchange, including its listed stocks.
type ExchangeResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	LiveInMarket bool            `json:"liveInMarket"`
	Stocks       []StockResponse `json:"stocks"`
}

// ToExchangeResponse converts a domain.Exchange to ExchangeResponse DTO
func ToExchangeResponse(e *domain.Exchange) ExchangeResponse {
	return ExchangeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		LiveInMarket: e.LiveInMarket,
		Stocks:       ToListStockResponse(e.Stocks()),
	}
}
