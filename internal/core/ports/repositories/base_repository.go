package repositories

import (
	"context"
)

// TransactionManager runs units of work inside a store transaction.
type TransactionManager interface {
	// WithTransaction runs unit at repeatable-read (or stronger) isolation. Repository calls made
	// with the context handed to unit join the transaction. It commits when unit returns nil and
	// rolls back on any error, including a cancelled context.
	WithTransaction(ctx context.Context, unit func(ctx context.Context) error) error
}
