// Package pgsql is the PostgreSQL Store used in production.
package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store hands out repositories bound either to the pool or, inside WithTx, to
// one open transaction.
type Store struct {
	pool *pgxpool.Pool
	db   querier
	inTx bool
}

// NewStore returns a Store backed by pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

var _ portsrepo.Store = (*Store)(nil)

// WithTx implements portsrepo.TransactionManager.
func (s *Store) WithTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	if s.inTx {
		return fn(ctx, s)
	}
	tx, err := begin(ctx, s.pool)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = rollback(ctx, tx)
		}
	}()

	if err = fn(ctx, s.withTx(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) withTx(tx pgx.Tx) *Store {
	return &Store{pool: s.pool, db: tx, inTx: true}
}

func (s *Store) base() BaseRepository { return BaseRepository{db: s.db} }

func (s *Store) Products() portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{s.base()}
}

func (s *Store) Customers() portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{s.base()}
}

func (s *Store) Sales() portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{s.base()}
}

func (s *Store) Stock() portsrepo.StockRepositoryFacade {
	return &PgxStockRepository{s.base()}
}

func (s *Store) Payments() portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{s.base()}
}

func (s *Store) Users() portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{s.base()}
}

func (s *Store) Reports() portsrepo.ReportingRepository {
	return &PgxReportingRepository{s.base()}
}
