package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const saleColumns = `sale_id, customer_id, customer_name, customer_phone, customer_address, items,
	total_amount, total_paid, outstanding_amount, payment_status,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxSaleRepository struct {
	BaseRepository
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func toModelSale(d domain.Sale) models.Sale {
	items := make([]models.SaleItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.SaleItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return models.Sale{
		SaleID:            d.SaleID,
		CustomerID:        d.CustomerID,
		CustomerName:      d.Customer.Name,
		CustomerPhone:     d.Customer.Phone,
		CustomerAddress:   d.Customer.Address,
		Items:             items,
		TotalAmount:       d.TotalAmount,
		TotalPaid:         d.TotalPaid,
		OutstandingAmount: d.OutstandingAmount,
		PaymentStatus:     string(d.PaymentStatus),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainSale(m models.Sale) domain.Sale {
	items := make([]domain.LineItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = domain.LineItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return domain.Sale{
		SaleID:     m.SaleID,
		CustomerID: m.CustomerID,
		Customer: domain.CustomerSnapshot{
			Name:    m.CustomerName,
			Phone:   m.CustomerPhone,
			Address: m.CustomerAddress,
		},
		Items:             items,
		TotalAmount:       m.TotalAmount,
		TotalPaid:         m.TotalPaid,
		OutstandingAmount: m.OutstandingAmount,
		PaymentStatus:     domain.PaymentStatus(m.PaymentStatus),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxSaleRepository) collectSales(rows pgx.Rows) ([]domain.Sale, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales: %w", err)
	}
	out := make([]domain.Sale, len(ms))
	for i, m := range ms {
		out[i] = toDomainSale(m)
	}
	return out, nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	rows, err := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale %s: %w", saleID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		return nil, notFound(err, "Sale", saleID)
	}
	s := toDomainSale(m)
	return &s, nil
}

func (r *PgxSaleRepository) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CustomerID != "" {
		conditions = append(conditions, "customer_id = "+arg(filter.CustomerID))
	}
	if filter.From != nil {
		conditions = append(conditions, "created_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "created_at <= "+arg(*filter.To))
	}

	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC" + limitOffset(filter.Limit, filter.Offset, arg)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return r.collectSales(rows)
}

func (r *PgxSaleRepository) ListOutstandingSalesByCustomer(ctx context.Context, customerID string) ([]domain.Sale, error) {
	// FOR UPDATE serializes concurrent payments for the same customer inside a transaction.
	rows, err := r.db.Query(ctx, `
		SELECT `+saleColumns+` FROM sales
		WHERE customer_id = $1 AND outstanding_amount > 0
		ORDER BY created_at, id
		FOR UPDATE`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding sales for customer %s: %w", customerID, err)
	}
	return r.collectSales(rows)
}

func (r *PgxSaleRepository) SummarizeOutstanding(ctx context.Context) ([]domain.CustomerBalance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT customer_id, customer_name, phone, credit_limit, total_outstanding,
			outstanding_sales_count, latest_sale_at, sale_ids
		FROM outstanding_payments_view
		ORDER BY customer_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize outstanding balances: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OutstandingBalance])
	if err != nil {
		return nil, fmt.Errorf("failed to scan outstanding balances: %w", err)
	}
	out := make([]domain.CustomerBalance, len(ms))
	for i, m := range ms {
		out[i] = domain.CustomerBalance{
			CustomerID:            m.CustomerID,
			CustomerName:          m.CustomerName,
			Phone:                 m.Phone,
			CreditLimit:           fromNullDecimal(m.CreditLimit),
			TotalOutstanding:      m.TotalOutstanding,
			OutstandingSalesCount: m.OutstandingSalesCount,
			LatestSaleAt:          m.LatestSaleAt,
			SaleIDs:               m.SaleIDs,
		}
	}
	return out, nil
}

func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	m := toModelSale(sale)
	items, err := json.Marshal(m.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items for sale %s: %w", m.SaleID, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.SaleID, m.CustomerID, m.CustomerName, m.CustomerPhone, m.CustomerAddress, items,
		m.TotalAmount, m.TotalPaid, m.OutstandingAmount, m.PaymentStatus,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return duplicate(err, "Sale %s already exists", m.SaleID)
	}
	return nil
}

func (r *PgxSaleRepository) UpdateSalePayment(ctx context.Context, saleID string, totalPaid, outstanding decimal.Decimal, status domain.PaymentStatus, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sales
		SET total_paid = $1, outstanding_amount = $2, payment_status = $3, last_updated_at = $4
		WHERE sale_id = $5`,
		totalPaid, outstanding, string(status), now, saleID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment on sale %s: %w", saleID, err)
	}
	return requireRow(tag, "Sale", saleID)
}
