package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/jackc/pgx/v5"
)

const productColumns = `product_id, name, price, quantity, type, featured, rating, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	BaseRepository
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func toModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID: d.ProductID,
		Name:      d.Name,
		Price:     d.Price,
		Quantity:  d.Quantity,
		Type:      d.Type,
		Featured:  d.Featured,
		Rating:    d.Rating,
		IsActive:  d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID: m.ProductID,
		Name:      m.Name,
		Price:     m.Price,
		Quantity:  m.Quantity,
		Type:      m.Type,
		Featured:  m.Featured,
		Rating:    m.Rating,
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product %s: %w", productID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		return nil, notFound(err, "Product", productID)
	}
	p := toDomainProduct(m)
	return &p, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.IncludeInactive {
		conditions = append(conditions, "is_active")
	}
	if filter.SearchTerm != "" {
		conditions = append(conditions, "name ILIKE "+arg("%"+filter.SearchTerm+"%"))
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = "+arg(filter.Type))
	}
	if filter.LowStockOnly {
		conditions = append(conditions, "quantity < "+arg(domain.LowStockThreshold))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name, product_id" + limitOffset(filter.Limit, filter.Offset, arg)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	out := make([]domain.Product, len(ms))
	for i, m := range ms {
		out[i] = toDomainProduct(m)
	}
	return out, nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ProductID, m.Name, m.Price, m.Quantity, m.Type, m.Featured, m.Rating, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return duplicate(err, "Product %s already exists", m.ProductID)
	}
	return nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $1, price = $2, type = $3, featured = $4, rating = $5, is_active = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE product_id = $9`,
		m.Name, m.Price, m.Type, m.Featured, m.Rating, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy, m.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", m.ProductID, err)
	}
	return requireRow(tag, "Product", m.ProductID)
}

func (r *PgxProductRepository) AdjustProductQuantity(ctx context.Context, productID string, delta int, now time.Time) (int, error) {
	var quantity int
	err := r.db.QueryRow(ctx, `
		UPDATE products SET quantity = quantity + $1, last_updated_at = $2
		WHERE product_id = $3
		RETURNING quantity`,
		delta, now, productID,
	).Scan(&quantity)
	if err != nil {
		return 0, notFound(err, "Product", productID)
	}
	return quantity, nil
}

// limitOffset renders the LIMIT/OFFSET tail, skipping whichever is unset.
func limitOffset(limit, offset int, arg func(any) string) string {
	var tail string
	if limit > 0 {
		tail += " LIMIT " + arg(limit)
	}
	if offset > 0 {
		tail += " OFFSET " + arg(offset)
	}
	return tail
}
