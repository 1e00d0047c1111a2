package repositories

import (
	"context"
)

// TxFunc is a unit of work run against a transaction scoped Store.
type TxFunc func(ctx context.Context, tx Store) error

// TransactionManager defines how multi-step mutations are made atomic.
type TransactionManager interface {
	// WithTx runs fn inside one transaction. Every write fn makes through tx is
	// committed together when fn returns nil and discarded when it returns an error.
	// Calling WithTx on a Store that is already transaction scoped runs fn in the
	// same transaction.
	WithTx(ctx context.Context, fn TxFunc) error
}
