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
	"github.com/shopspring/decimal"
)

const customerColumns = `customer_id, name, phone, address, credit_limit, credit_balance,
	payment_terms, is_credit_enabled, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCustomerRepository struct {
	BaseRepository
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

func toModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:      d.CustomerID,
		Name:            d.Name,
		Phone:           d.Phone,
		Address:         d.Address,
		CreditLimit:     toNullDecimal(d.CreditLimit),
		CreditBalance:   d.CreditBalance,
		PaymentTerms:    d.PaymentTerms,
		IsCreditEnabled: d.IsCreditEnabled,
		IsActive:        d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:      m.CustomerID,
		Name:            m.Name,
		Phone:           m.Phone,
		Address:         m.Address,
		CreditLimit:     fromNullDecimal(m.CreditLimit),
		CreditBalance:   m.CreditBalance,
		PaymentTerms:    m.PaymentTerms,
		IsCreditEnabled: m.IsCreditEnabled,
		IsActive:        m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer %s: %w", customerID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		return nil, notFound(err, "Customer", customerID)
	}
	c := toDomainCustomer(m)
	return &c, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
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
		p := arg("%" + filter.SearchTerm + "%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR phone ILIKE %s)", p, p))
	}

	query := `SELECT ` + customerColumns + ` FROM customers`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name, customer_id" + limitOffset(filter.Limit, filter.Offset, arg)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}
	out := make([]domain.Customer, len(ms))
	for i, m := range ms {
		out[i] = toDomainCustomer(m)
	}
	return out, nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := toModelCustomer(customer)
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.CustomerID, m.Name, m.Phone, m.Address, m.CreditLimit, m.CreditBalance,
		m.PaymentTerms, m.IsCreditEnabled, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return duplicate(err, "Customer %s already exists", m.CustomerID)
	}
	return nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := toModelCustomer(customer)
	tag, err := r.db.Exec(ctx, `
		UPDATE customers
		SET name = $1, phone = $2, address = $3, credit_limit = $4, payment_terms = $5,
			is_credit_enabled = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE customer_id = $10`,
		m.Name, m.Phone, m.Address, m.CreditLimit, m.PaymentTerms,
		m.IsCreditEnabled, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", m.CustomerID, err)
	}
	return requireRow(tag, "Customer", m.CustomerID)
}

func (r *PgxCustomerRepository) AdjustCreditBalance(ctx context.Context, customerID string, delta decimal.Decimal, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE customers SET credit_balance = credit_balance + $1, last_updated_at = $2
		WHERE customer_id = $3`,
		delta, now, customerID,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust credit balance for customer %s: %w", customerID, err)
	}
	return requireRow(tag, "Customer", customerID)
}
