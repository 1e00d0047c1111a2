package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/jackc/pgx/v5"
)

const movementColumns = `movement_id, product_id, quantity, movement_type, sale_id, created_at, created_by`

type PgxStockRepository struct {
	BaseRepository
}

var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

func toDomainMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID: m.MovementID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		Type:       domain.MovementType(m.Type),
		SaleID:     m.SaleID,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
}

func (r *PgxStockRepository) collectMovements(rows pgx.Rows) ([]domain.StockMovement, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.StockMovement])
	if err != nil {
		return nil, fmt.Errorf("failed to scan stock movements: %w", err)
	}
	out := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		out[i] = toDomainMovement(m)
	}
	return out, nil
}

func (r *PgxStockRepository) ListMovementsByProduct(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at, id`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for product %s: %w", productID, err)
	}
	return r.collectMovements(rows)
}

func (r *PgxStockRepository) ListMovements(ctx context.Context, filter domain.StockFilter) ([]domain.StockMovement, error) {
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	query := `SELECT ` + movementColumns + ` FROM stock_movements`
	if filter.ProductID != "" {
		query += " WHERE product_id = " + arg(filter.ProductID)
	}
	query += " ORDER BY created_at DESC, id DESC" + limitOffset(filter.Limit, filter.Offset, arg)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return r.collectMovements(rows)
}

func (r *PgxStockRepository) SaveMovement(ctx context.Context, movement domain.StockMovement) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		movement.MovementID, movement.ProductID, movement.Quantity, string(movement.Type),
		movement.SaleID, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return duplicate(err, "Stock movement %s already exists", movement.MovementID)
	}
	return nil
}
