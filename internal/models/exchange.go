package models

// Exchange mirrors a row of the stock_exchange table.
type Exchange struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	LiveInMarket bool   `db:"live_in_market"`
	Version      int    `db:"version"`
}
