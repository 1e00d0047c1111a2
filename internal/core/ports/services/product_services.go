package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// ProductReaderSvc defines read operations on the catalog
type ProductReaderSvc interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations on the catalog
type ProductWriterSvc interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, productID string, userID string) error
	BulkCreateProducts(ctx context.Context, reqs []dto.CreateProductRequest, userID string) ([]domain.Product, error)
	BulkUpdateProducts(ctx context.Context, updates []dto.BulkProductUpdate, userID string) ([]domain.Product, error)
	ApplyProductBatch(ctx context.Context, req dto.BulkProductsRequest, userID string) (*domain.ProductBatch, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
