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
	"github.com/google/uuid"
)

// stockService keeps product quantities and the movement log in step.
type stockService struct {
	BaseService
	store portsrepo.Store
}

// NewStockService creates a new stock service.
func NewStockService(store portsrepo.Store, options ...ServiceOption) portssvc.StockSvcFacade {
	return &stockService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

func (s *stockService) RecordMovement(ctx context.Context, tx portsrepo.Store, productID string, delta int, movementType domain.MovementType, saleID *string, userID string) (*domain.StockMovement, error) {
	now := s.Now()
	if _, err := tx.Products().AdjustProductQuantity(ctx, productID, delta, now); err != nil {
		return nil, fmt.Errorf("failed to adjust quantity for product %s: %w", productID, err)
	}

	movement := domain.StockMovement{
		MovementID: uuid.NewString(),
		ProductID:  productID,
		Quantity:   delta,
		Type:       movementType,
		SaleID:     saleID,
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	if err := tx.Stock().SaveMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to save stock movement for product %s: %w", productID, err)
	}
	return &movement, nil
}

func (s *stockService) GetMovementsForProduct(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	if _, err := s.store.Products().FindProductByID(ctx, productID); err != nil {
		return nil, err
	}
	movements, err := s.store.Stock().ListMovementsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for product %s: %w", productID, err)
	}
	return movements, nil
}

func (s *stockService) AddStock(ctx context.Context, req dto.AddStockRequest, userID string) (*domain.StockMovement, error) {
	var problems []string
	if strings.TrimSpace(req.ProductID) == "" {
		problems = append(problems, "Product ID is required")
	}
	if req.Quantity <= 0 {
		problems = append(problems, "Quantity must be greater than 0")
	}
	if req.Quantity > domain.MaxStockQuantity {
		problems = append(problems, fmt.Sprintf("Quantity cannot exceed %d", domain.MaxStockQuantity))
	}
	if err := apperrors.NewValidation(problems...); err != nil {
		return nil, err
	}

	movementType := movementTypeOrDefault(req.Reason, domain.MovementRestock)
	var movement *domain.StockMovement
	err := s.runInTx(ctx, s.store, "add stock", func(ctx context.Context, tx portsrepo.Store) error {
		product, err := tx.Products().FindProductByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if req.Quantity > domain.MaxStockQuantity-product.Quantity {
			return apperrors.NewValidation(fmt.Sprintf("Stock for product %s cannot exceed %d", product.Name, domain.MaxStockQuantity))
		}
		movement, err = s.RecordMovement(ctx, tx, req.ProductID, req.Quantity, movementType, nil, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Stock added", slog.String("product_id", req.ProductID), slog.Int("quantity", req.Quantity))
	s.publish(ctx, domain.EventStockAdjusted, req.ProductID, movement)
	return movement, nil
}

func (s *stockService) AdjustStock(ctx context.Context, req dto.AdjustStockRequest, userID string) (*domain.StockMovement, error) {
	var problems []string
	if strings.TrimSpace(req.ProductID) == "" {
		problems = append(problems, "Product ID is required")
	}
	if req.NewQuantity < 0 {
		problems = append(problems, "Quantity cannot be negative")
	}
	if req.NewQuantity > domain.MaxStockQuantity {
		problems = append(problems, fmt.Sprintf("Quantity cannot exceed %d", domain.MaxStockQuantity))
	}
	if err := apperrors.NewValidation(problems...); err != nil {
		return nil, err
	}

	movementType := movementTypeOrDefault(req.Reason, domain.MovementAdjustment)
	var movement *domain.StockMovement
	err := s.runInTx(ctx, s.store, "adjust stock", func(ctx context.Context, tx portsrepo.Store) error {
		product, err := tx.Products().FindProductByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		delta := req.NewQuantity - product.Quantity
		if delta == 0 {
			return nil
		}
		movement, err = s.RecordMovement(ctx, tx, req.ProductID, delta, movementType, nil, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if movement == nil {
		s.LogDebug(ctx, "Stock already at requested quantity", slog.String("product_id", req.ProductID))
		return nil, nil
	}
	s.LogInfo(ctx, "Stock adjusted", slog.String("product_id", req.ProductID), slog.Int("delta", movement.Quantity))
	s.publish(ctx, domain.EventStockAdjusted, req.ProductID, movement)
	return movement, nil
}

func (s *stockService) ListStock(ctx context.Context, params dto.ListStockParams) ([]domain.StockMovement, error) {
	movements, err := s.store.Stock().ListMovements(ctx, domain.StockFilter{
		ProductID: params.ProductID,
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}

func movementTypeOrDefault(reason string, fallback domain.MovementType) domain.MovementType {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fallback
	}
	return domain.MovementType(reason)
}
