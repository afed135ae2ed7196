package pgsql

import (
	portsrepo "github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres-backed catalog store.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}
	stockRepo := newPgxStockRepository(base)
	exchangeRepo := newPgxExchangeRepository(base)

	return portsrepo.RepositoryProvider{
		StockRepo:    stockRepo,
		ExchangeRepo: exchangeRepo,
		TxManager:    &base,
	}
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)
