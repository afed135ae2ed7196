package domain

import "time"

// VersionedFields holds the optimistic locking state shared by the catalog aggregates.
// Version is advanced by the persistence layer on every save, never by the entity itself.
type VersionedFields struct {
	Version int `json:"version"`
}

// StockLastUpdate truncates a timestamp to the precision stored for stock rows (UTC, milliseconds).
func StockLastUpdate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
