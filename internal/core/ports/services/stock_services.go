package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// StockLedgerSvc is the mechanical stock ledger used inside other units of work.
type StockLedgerSvc interface {
	// RecordMovement appends a movement and moves the product quantity by delta
	// using the caller's transaction. It does not refuse a negative result.
	RecordMovement(ctx context.Context, tx portsrepo.Store, productID string, delta int, movementType domain.MovementType, saleID *string, userID string) (*domain.StockMovement, error)
	GetMovementsForProduct(ctx context.Context, productID string) ([]domain.StockMovement, error)
}

// StockAdjusterSvc defines operator driven stock changes
type StockAdjusterSvc interface {
	AddStock(ctx context.Context, req dto.AddStockRequest, userID string) (*domain.StockMovement, error)
	// AdjustStock returns a nil movement when the quantity is already correct.
	AdjustStock(ctx context.Context, req dto.AdjustStockRequest, userID string) (*domain.StockMovement, error)
	ListStock(ctx context.Context, params dto.ListStockParams) ([]domain.StockMovement, error)
}

// StockSvcFacade combines all stock-related service interfaces
type StockSvcFacade interface {
	StockLedgerSvc
	StockAdjusterSvc
}
