package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product, returning apperrors.ErrNotFound when absent.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves products ordered by name.
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates a product's descriptive fields. Quantity is left untouched.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// AdjustProductQuantity adds delta to the product's quantity and returns the new value.
	AdjustProductQuantity(ctx context.Context, productID string, delta int, now time.Time) (int, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
