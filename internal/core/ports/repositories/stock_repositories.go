package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// StockReader defines read operations for stock movements
type StockReader interface {
	// ListMovementsByProduct retrieves every movement for a product, oldest first.
	ListMovementsByProduct(ctx context.Context, productID string) ([]domain.StockMovement, error)

	// ListMovements retrieves movements newest first.
	ListMovements(ctx context.Context, filter domain.StockFilter) ([]domain.StockMovement, error)
}

// StockWriter defines write operations for stock movements
type StockWriter interface {
	// SaveMovement appends a movement. It does not touch the product quantity.
	SaveMovement(ctx context.Context, movement domain.StockMovement) error
}

// StockRepositoryFacade combines all stock-related repository interfaces
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}
