package memory

import (
	portsrepo "github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
)

// NewRepositoryProvider exposes the store through the repository ports used by the services.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StockRepo:    &StockRepository{store: store},
		ExchangeRepo: &ExchangeRepository{store: store},
		TxManager:    store,
	}
}
