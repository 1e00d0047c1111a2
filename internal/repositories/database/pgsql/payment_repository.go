package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `payment_id, customer_id, sale_id, amount, payment_method, payment_type,
	reference_number, notes, payment_date, created_by`

type PgxPaymentRepository struct {
	BaseRepository
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func toDomainPayment(m models.PaymentRecord) domain.PaymentRecord {
	return domain.PaymentRecord{
		PaymentID:       m.PaymentID,
		CustomerID:      m.CustomerID,
		SaleID:          m.SaleID,
		Amount:          m.Amount,
		Method:          domain.PaymentMethod(m.Method),
		PaymentType:     m.PaymentType,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		PaymentDate:     m.PaymentDate,
		CreatedBy:       m.CreatedBy,
	}
}

func (r *PgxPaymentRepository) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.PaymentRecord, error) {
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
	if filter.AnchorsOnly {
		conditions = append(conditions, "sale_id IS NULL")
	}
	if filter.AfterDate != nil {
		after := arg(*filter.AfterDate)
		conditions = append(conditions, fmt.Sprintf(
			"(payment_date < %s OR (payment_date = %s AND id > (SELECT id FROM payment_history WHERE payment_id = %s)))",
			after, after, arg(filter.AfterID)))
	}

	query := `SELECT ` + paymentColumns + ` FROM payment_history`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	// a payment's anchor is written before its per-sale rows, so it reads first
	query += " ORDER BY payment_date DESC, id" + limitOffset(filter.Limit, 0, arg)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment history: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PaymentRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to scan payment history: %w", err)
	}
	out := make([]domain.PaymentRecord, len(ms))
	for i, m := range ms {
		out[i] = toDomainPayment(m)
	}
	return out, nil
}

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, record domain.PaymentRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payment_history (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.PaymentID, record.CustomerID, record.SaleID, record.Amount, string(record.Method),
		record.PaymentType, record.ReferenceNumber, record.Notes, record.PaymentDate, record.CreatedBy,
	)
	if err != nil {
		return duplicate(err, "Payment %s already exists", record.PaymentID)
	}
	return nil
}
