package services

import (
	portsrepo "github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/stock_exchange_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, policies RetryPolicies) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Stock: NewStockService(
			repos.StockRepo,
			repos.TxManager,
			WithStockRetryPolicies(policies),
		),
		Exchange: NewExchangeService(
			repos.ExchangeRepo,
			repos.StockRepo,
			repos.TxManager,
			WithExchangeVersionPolicy(policies.Version),
		),
	}
}
