package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock represents a financial instrument that can be listed on exchanges.
type Stock struct {
	ID           int64           `json:"id"`           // Assigned by the store on insert
	Name         string          `json:"name"`         // Unique across all stocks
	Description  string          `json:"description"`
	CurrentPrice decimal.Decimal `json:"currentPrice"` // Strictly positive, at most 15 integer and 2 fraction digits
	LastUpdate   time.Time       `json:"lastUpdate"`   // Set by the store on every write
	VersionedFields
}

// IsNew reports whether the stock has not been persisted yet.
func (s Stock) IsNew() bool {
	return s.ID == 0
}
