package memory

import (
	"context"
	"slices"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

type paymentRepository struct{ s *Store }

// ListPayments returns records newest first. Records sharing a payment date
// keep the order they were written in, so an anchor precedes its per-sale rows.
func (r paymentRepository) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.PaymentRecord, error) {
	type row struct {
		record domain.PaymentRecord
		seq    int
	}
	var out []row
	r.s.read(func(st *state) {
		afterSeq := len(st.payments)
		if filter.AfterDate != nil {
			afterSeq = slices.IndexFunc(st.payments, func(p domain.PaymentRecord) bool { return p.PaymentID == filter.AfterID })
		}
		for i, p := range st.payments {
			if filter.CustomerID != "" && p.CustomerID != filter.CustomerID {
				continue
			}
			if filter.AnchorsOnly && !p.IsAnchor() {
				continue
			}
			if filter.AfterDate != nil {
				if p.PaymentDate.After(*filter.AfterDate) {
					continue
				}
				if p.PaymentDate.Equal(*filter.AfterDate) && (afterSeq < 0 || i <= afterSeq) {
					continue
				}
			}
			out = append(out, row{record: p, seq: i})
		}
	})
	slices.SortFunc(out, func(a, b row) int {
		if c := b.record.PaymentDate.Compare(a.record.PaymentDate); c != 0 {
			return c
		}
		return a.seq - b.seq
	})

	records := make([]domain.PaymentRecord, len(out))
	for i, rw := range out {
		records[i] = rw.record
	}
	return paginate(records, filter.Limit, 0), nil
}

func (r paymentRepository) SavePayment(ctx context.Context, record domain.PaymentRecord) error {
	return r.s.write(func(st *state) error {
		st.payments = append(st.payments, record)
		return nil
	})
}
