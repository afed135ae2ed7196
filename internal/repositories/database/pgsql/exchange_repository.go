package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/stock_exchange_app/internal/apperrors"
	"github.com/SscSPs/stock_exchange_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_exchange_app/internal/core/ports/repositories"
	"github.com/SscSPs/stock_exchange_app/internal/models"
	"github.com/SscSPs/stock_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxExchangeRepository struct {
	BaseRepository
}

// newPgxExchangeRepository creates a new repository for exchange data.
func newPgxExchangeRepository(base BaseRepository) *PgxExchangeRepository {
	return &PgxExchangeRepository{BaseRepository: base}
}

// Ensure PgxExchangeRepository implements portsrepo.ExchangeRepositoryFacade
var _ portsrepo.ExchangeRepositoryFacade = (*PgxExchangeRepository)(nil)

const exchangeSelectQuery = `
SELECT se.id, se.name, se.description, se.live_in_market, se.version
FROM stock_exchange se
`

// findExchange loads the exchange row and its listed stocks from the same snapshot.
func (r *PgxExchangeRepository) findExchange(ctx context.Context, filter string, arg any) (*domain.Exchange, error) {
	var found *domain.Exchange
	err := r.WithTransaction(ctx, func(ctx context.Context) error {
		db := r.db(ctx)

		var m models.Exchange
		err := db.QueryRow(ctx, exchangeSelectQuery+filter, arg).Scan(
			&m.ID,
			&m.Name,
			&m.Description,
			&m.LiveInMarket,
			&m.Version,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return translateError(err, "failed to query exchange")
		}

		rows, err := db.Query(ctx, stockSelectQuery+`
			JOIN stock_exchange_stock ses ON ses.stock_id = s.id
			WHERE ses.stock_exchange_id = $1
			ORDER BY s.id;
		`, m.ID)
		if err != nil {
			return translateError(err, fmt.Sprintf("failed to query members of exchange %d", m.ID))
		}
		members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Stock, error) {
			return scanStock(row)
		})
		if err != nil {
			return translateError(err, fmt.Sprintf("failed to scan members of exchange %d", m.ID))
		}

		ex := mapping.ToDomainExchange(m, members)
		found = &ex
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// FindExchangeByName retrieves an exchange and its members by the exchange's unique name.
func (r *PgxExchangeRepository) FindExchangeByName(ctx context.Context, name string) (*domain.Exchange, error) {
	return r.findExchange(ctx, `WHERE se.name = $1`, name)
}

// SaveExchange inserts or updates an exchange and reconciles its membership pairs with the member set.
func (r *PgxExchangeRepository) SaveExchange(ctx context.Context, exchange domain.Exchange) (*domain.Exchange, error) {
	var saved *domain.Exchange
	err := r.WithTransaction(ctx, func(ctx context.Context) error {
		db := r.db(ctx)
		m := mapping.ToModelExchange(exchange)

		if exchange.ID == 0 {
			err := db.QueryRow(ctx, `
				INSERT INTO stock_exchange (name, description, live_in_market, version)
				VALUES ($1, $2, $3, 0)
				RETURNING id;
			`, m.Name, m.Description, m.LiveInMarket).Scan(&m.ID)
			if err != nil {
				return translateError(err, "failed to insert exchange "+m.Name)
			}
		} else {
			tag, err := db.Exec(ctx, `
				UPDATE stock_exchange
				SET name = $1, description = $2, live_in_market = $3, version = version + 1
				WHERE id = $4 AND version = $5;
			`, m.Name, m.Description, m.LiveInMarket, m.ID, m.Version)
			if err != nil {
				return translateError(err, fmt.Sprintf("failed to update exchange %d", m.ID))
			}
			if tag.RowsAffected() == 0 {
				return apperrors.NewStaleVersionError("exchange", m.ID)
			}
		}

		if err := r.syncMembers(ctx, m.ID, exchange.MemberIDs()); err != nil {
			return err
		}

		reloaded, err := r.findExchange(ctx, `WHERE se.id = $1`, m.ID)
		if err != nil {
			return err
		}
		saved = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// syncMembers makes the join rows of the exchange equal to want.
func (r *PgxExchangeRepository) syncMembers(ctx context.Context, exchangeID int64, want []int64) error {
	db := r.db(ctx)

	rows, err := db.Query(ctx, `SELECT stock_id FROM stock_exchange_stock WHERE stock_exchange_id = $1;`, exchangeID)
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to query memberships of exchange %d", exchangeID))
	}
	current, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to scan memberships of exchange %d", exchangeID))
	}

	wantSet := make(map[int64]struct{}, len(want))
	for _, id := range want {
		wantSet[id] = struct{}{}
	}
	var removed []int64
	for _, id := range current {
		if _, ok := wantSet[id]; ok {
			delete(wantSet, id)
			continue
		}
		removed = append(removed, id)
	}
	added := make([]int64, 0, len(wantSet))
	for id := range wantSet {
		added = append(added, id)
	}

	if len(removed) > 0 {
		_, err := db.Exec(ctx, `
			DELETE FROM stock_exchange_stock
			WHERE stock_exchange_id = $1 AND stock_id = ANY($2);
		`, exchangeID, removed)
		if err != nil {
			return translateError(err, fmt.Sprintf("failed to delete memberships of exchange %d", exchangeID))
		}
	}
	if len(added) > 0 {
		_, err := db.Exec(ctx, `
			INSERT INTO stock_exchange_stock (stock_exchange_id, stock_id)
			SELECT $1, unnest($2::bigint[]);
		`, exchangeID, added)
		if err != nil {
			if isForeignKeyViolation(err) {
				// a listed stock was deleted after it was read; reload and re-evaluate
				return fmt.Errorf("%w: stock removed while listing on exchange %d: %w", apperrors.ErrStaleVersion, exchangeID, err)
			}
			return translateError(err, fmt.Sprintf("failed to insert memberships of exchange %d", exchangeID))
		}
	}
	return nil
}
