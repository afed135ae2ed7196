package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/stock_exchange_app/internal/models"
	"github.com/SscSPs/stock_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxStockRepository struct {
	BaseRepository
	now func() time.Time
}

// newPgxStockRepository creates a new repository for stock data.
func newPgxStockRepository(base BaseRepository) *PgxStockRepository {
	return &PgxStockRepository{
		BaseRepository: base,
		now:            time.Now,
	}
}

// Ensure PgxStockRepository implements portsrepo.StockRepositoryFacade
var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

const stockSelectQuery = `
SELECT s.id, s.name, s.description, s.current_price, s.last_update, s.version
FROM stock s
`

func scanStock(row pgx.Row) (models.Stock, error) {
	var m models.Stock
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.CurrentPrice,
		&m.LastUpdate,
		&m.Version,
	)
	return m, err
}

func (r *PgxStockRepository) findStock(ctx context.Context, filter string, arg any) (*domain.Stock, error) {
	m, err := scanStock(r.db(ctx).QueryRow(ctx, stockSelectQuery+filter, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, translateError(err, "failed to query stock")
	}
	s := mapping.ToDomainStock(m)
	return &s, nil
}

// FindStockByID retrieves a stock by its ID.
func (r *PgxStockRepository) FindStockByID(ctx context.Context, stockID int64) (*domain.Stock, error) {
	return r.findStock(ctx, `WHERE s.id = $1`, stockID)
}

// FindStockByName retrieves a stock by its unique name.
func (r *PgxStockRepository) FindStockByName(ctx context.Context, name string) (*domain.Stock, error) {
	return r.findStock(ctx, `WHERE s.name = $1`, name)
}

// SaveStock inserts or updates a stock. Updates are conditional on the version read by the caller.
func (r *PgxStockRepository) SaveStock(ctx context.Context, stock domain.Stock) (*domain.Stock, error) {
	m := mapping.ToModelStock(stock)
	m.LastUpdate = domain.StockLastUpdate(r.now())

	if stock.IsNew() {
		query := `
			INSERT INTO stock (name, description, current_price, last_update, version)
			VALUES ($1, $2, $3, $4, 0)
			RETURNING id, last_update, version;
		`
		err := r.db(ctx).QueryRow(ctx, query, m.Name, m.Description, m.CurrentPrice, m.LastUpdate).
			Scan(&m.ID, &m.LastUpdate, &m.Version)
		if err != nil {
			return nil, translateError(err, "failed to insert stock "+m.Name)
		}
	} else {
		// GREATEST keeps last_update monotone even if the wall clock steps back
		query := `
			UPDATE stock
			SET name = $1, description = $2, current_price = $3,
				last_update = GREATEST($4, last_update), version = version + 1
			WHERE id = $5 AND version = $6
			RETURNING last_update, version;
		`
		err := r.db(ctx).QueryRow(ctx, query, m.Name, m.Description, m.CurrentPrice, m.LastUpdate, m.ID, m.Version).
			Scan(&m.LastUpdate, &m.Version)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewStaleVersionError("stock", m.ID)
			}
			return nil, translateError(err, fmt.Sprintf("failed to update stock %d", m.ID))
		}
	}

	saved := mapping.ToDomainStock(m)
	return &saved, nil
}

// DeleteStock withdraws the stock from every exchange listing it and deletes the row, in one transaction.
func (r *PgxStockRepository) DeleteStock(ctx context.Context, stock domain.Stock) error {
	return r.WithTransaction(ctx, func(ctx context.Context) error {
		db := r.db(ctx)

		rows, err := db.Query(ctx, `
			SELECT se.id, se.version
			FROM stock_exchange se
			JOIN stock_exchange_stock ses ON ses.stock_exchange_id = se.id
			WHERE ses.stock_id = $1
			ORDER BY se.id;
		`, stock.ID)
		if err != nil {
			return translateError(err, "failed to query exchanges listing stock")
		}
		listing, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Exchange, error) {
			var e models.Exchange
			err := row.Scan(&e.ID, &e.Version)
			return e, err
		})
		if err != nil {
			return translateError(err, "failed to scan exchanges listing stock")
		}

		if _, err := db.Exec(ctx, `DELETE FROM stock_exchange_stock WHERE stock_id = $1;`, stock.ID); err != nil {
			return translateError(err, "failed to delete memberships of stock")
		}

		for _, e := range listing {
			var remaining int
			if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM stock_exchange_stock WHERE stock_exchange_id = $1;`, e.ID).Scan(&remaining); err != nil {
				return translateError(err, "failed to count exchange members")
			}
			tag, err := db.Exec(ctx, `
				UPDATE stock_exchange
				SET live_in_market = $1, version = version + 1
				WHERE id = $2 AND version = $3;
			`, domain.IsLiveInMarket(remaining), e.ID, e.Version)
			if err != nil {
				return translateError(err, fmt.Sprintf("failed to update exchange %d", e.ID))
			}
			if tag.RowsAffected() == 0 {
				return apperrors.NewStaleVersionError("exchange", e.ID)
			}
		}

		tag, err := db.Exec(ctx, `DELETE FROM stock WHERE id = $1 AND version = $2;`, stock.ID, stock.Version)
		if err != nil {
			return translateError(err, fmt.Sprintf("failed to delete stock %d", stock.ID))
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewStaleVersionError("stock", stock.ID)
		}
		return nil
	})
}
