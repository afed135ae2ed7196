package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock mirrors a row of the stock table.
type Stock struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`
	Description  string          `db:"description"`
	CurrentPrice decimal.Decimal `db:"current_price"`
	LastUpdate   time.Time       `db:"last_update"`
	Version      int             `db:"version"`
}
