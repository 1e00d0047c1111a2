package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/google/uuid"
)

// saleService turns a cart into a sale, consuming stock and raising the
// customer's credit balance by whatever is left unpaid.
type saleService struct {
	BaseService
	store portsrepo.Store
	stock portssvc.StockLedgerSvc
}

// NewSaleService creates a new sale service.
func NewSaleService(store portsrepo.Store, stock portssvc.StockLedgerSvc, options ...ServiceOption) portssvc.SaleSvcFacade {
	return &saleService{
		BaseService: newBaseService(options),
		store:       store,
		stock:       stock,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

func validateSaleRequest(req dto.CreateSaleRequest) error {
	var problems []string
	if strings.TrimSpace(req.CustomerID) == "" {
		problems = append(problems, "Customer ID is required")
	}
	if len(req.Items) == 0 {
		problems = append(problems, "At least one item is required")
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			problems = append(problems, fmt.Sprintf("Item %d: product ID is required", i+1))
		}
		if item.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("Item %d: quantity must be greater than 0", i+1))
		}
		if item.Quantity > domain.MaxStockQuantity {
			problems = append(problems, fmt.Sprintf("Item %d: quantity cannot exceed %d", i+1, domain.MaxStockQuantity))
		}
		if item.UnitPrice != nil {
			if item.UnitPrice.IsNegative() {
				problems = append(problems, fmt.Sprintf("Item %d: unit price cannot be negative", i+1))
			}
			if !utils.HasMoneyPrecision(*item.UnitPrice) {
				problems = append(problems, fmt.Sprintf("Item %d: unit price cannot have more than 2 decimal places", i+1))
			}
		}
	}
	if req.AmountPaid.IsNegative() {
		problems = append(problems, "Amount paid cannot be negative")
	}
	if !utils.HasMoneyPrecision(req.AmountPaid) {
		problems = append(problems, "Amount paid cannot have more than 2 decimal places")
	}
	return apperrors.NewValidation(problems...)
}

// CreateSale checks stock for every line before writing anything, then saves the
// sale, records one sale movement per line and adds the unpaid remainder to the
// customer's credit balance, all in one transaction.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	logger := s.GetLogger(ctx).With(slog.String("customer_id", req.CustomerID))

	if err := validateSaleRequest(req); err != nil {
		logger.Warn("Sale request failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	var sale domain.Sale
	err := s.runInTx(ctx, s.store, "create sale", func(ctx context.Context, tx portsrepo.Store) error {
		customer, err := tx.Customers().FindCustomerByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		items, err := s.priceItems(ctx, tx, req.Items)
		if err != nil {
			return err
		}

		total := domain.ItemsTotal(items)
		if req.AmountPaid.GreaterThan(total) {
			return apperrors.New(apperrors.ErrOverPayment, "Amount paid %s exceeds sale total %s", req.AmountPaid.StringFixed(2), total.StringFixed(2))
		}
		outstanding := total.Sub(req.AmountPaid)

		now := s.Now()
		sale = domain.Sale{
			SaleID:            uuid.NewString(),
			CustomerID:        customer.CustomerID,
			Customer:          customer.Snapshot(),
			Items:             items,
			TotalAmount:       total,
			TotalPaid:         req.AmountPaid,
			OutstandingAmount: outstanding,
			PaymentStatus:     domain.DerivePaymentStatus(req.AmountPaid, outstanding),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := tx.Sales().SaveSale(ctx, sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}

		for _, item := range items {
			if _, err := s.stock.RecordMovement(ctx, tx, item.ProductID, -item.Quantity, domain.MovementSale, &sale.SaleID, userID); err != nil {
				return err
			}
		}

		if outstanding.Sign() > 0 {
			if err := tx.Customers().AdjustCreditBalance(ctx, customer.CustomerID, outstanding, now); err != nil {
				return fmt.Errorf("failed to raise credit balance: %w", err)
			}
			if customer.ExceedsCreditLimit(customer.CreditBalance.Add(outstanding)) {
				logger.Warn("Sale takes customer over credit limit",
					slog.String("credit_limit", customer.CreditLimit.String()),
					slog.String("new_balance", utils.FormatAmount(customer.CreditBalance.Add(outstanding))))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("total", utils.FormatAmount(sale.TotalAmount)),
		slog.String("outstanding", utils.FormatAmount(sale.OutstandingAmount)))
	s.invalidateReports(ctx)
	s.publish(ctx, domain.EventSaleCreated, sale.CustomerID, sale)
	return &sale, nil
}

// priceItems resolves every cart line against the catalog. Quantities for the
// same product across lines are checked together.
func (s *saleService) priceItems(ctx context.Context, tx portsrepo.Store, lines []dto.SaleItemRequest) ([]domain.LineItem, error) {
	products := make(map[string]*domain.Product, len(lines))
	requested := make(map[string]int, len(lines))
	items := make([]domain.LineItem, 0, len(lines))

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			var err error
			product, err = tx.Products().FindProductByID(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
			if !product.IsActive {
				return nil, apperrors.NewValidation(fmt.Sprintf("Product %s is not available for sale", product.Name))
			}
			products[line.ProductID] = product
		}

		// compared by subtraction so the running total never overflows
		if line.Quantity > product.Quantity-requested[line.ProductID] {
			return nil, apperrors.NewInsufficientStock(product.Name, product.Quantity, requested[line.ProductID]+line.Quantity)
		}
		requested[line.ProductID] += line.Quantity

		price := product.Price
		if line.UnitPrice != nil {
			price = *line.UnitPrice
		}
		items = append(items, domain.LineItem{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   price,
		})
	}
	return items, nil
}

func (s *saleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.store.Sales().FindSaleByID(ctx, saleID)
}

func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error) {
	filter := domain.SaleFilter{
		CustomerID: params.CustomerID,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	from, to, err := parseDateRange(params.From, params.To)
	if err != nil {
		return nil, err
	}
	filter.From, filter.To = from, to

	sales, err := s.store.Sales().ListSales(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
