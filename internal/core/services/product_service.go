package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// productService manages the catalog. Opening stock goes through the stock ledger.
type productService struct {
	BaseService
	store portsrepo.Store
	stock portssvc.StockLedgerSvc
}

// NewProductService creates a new product service.
func NewProductService(store portsrepo.Store, stock portssvc.StockLedgerSvc, options ...ServiceOption) portssvc.ProductSvcFacade {
	return &productService{
		BaseService: newBaseService(options),
		store:       store,
		stock:       stock,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func priceProblems(price decimal.Decimal) []string {
	var problems []string
	if !price.IsPositive() {
		problems = append(problems, "Price must be greater than 0")
	}
	if !utils.HasMoneyPrecision(price) {
		problems = append(problems, "Price cannot have more than 2 decimal places")
	}
	return problems
}

// buildProduct validates req and returns the product it describes, quantity not yet applied.
func (s *productService) buildProduct(req dto.CreateProductRequest, userID string) (domain.Product, []string) {
	var problems []string
	if strings.TrimSpace(req.Name) == "" {
		problems = append(problems, "Product name is required")
	}
	problems = append(problems, priceProblems(req.Price)...)
	if req.Quantity < 0 {
		problems = append(problems, "Quantity cannot be negative")
	}
	if req.Quantity > domain.MaxStockQuantity {
		problems = append(problems, fmt.Sprintf("Quantity cannot exceed %d", domain.MaxStockQuantity))
	}
	if req.Rating < 0 || req.Rating > 5 {
		problems = append(problems, "Rating must be between 0 and 5")
	}

	now := s.Now()
	return domain.Product{
		ProductID: uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Price:     req.Price,
		Type:      req.Type,
		Featured:  req.Featured,
		Rating:    req.Rating,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, problems
}

// saveProduct writes product and books its opening stock as a restock movement.
func (s *productService) saveProduct(ctx context.Context, tx portsrepo.Store, product *domain.Product, quantity int, userID string) error {
	if err := tx.Products().SaveProduct(ctx, *product); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	if quantity > 0 {
		if _, err := s.stock.RecordMovement(ctx, tx, product.ProductID, quantity, domain.MovementRestock, nil, userID); err != nil {
			return err
		}
	}
	product.Quantity = quantity
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	product, problems := s.buildProduct(req, userID)
	if err := apperrors.NewValidation(problems...); err != nil {
		return nil, err
	}

	err := s.runInTx(ctx, s.store, "create product", func(ctx context.Context, tx portsrepo.Store) error {
		return s.saveProduct(ctx, tx, &product, req.Quantity, userID)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID), slog.Int("quantity", product.Quantity))
	return &product, nil
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.store.Products().FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	products, err := s.store.Products().ListProducts(ctx, domain.ProductFilter{
		SearchTerm:   strings.TrimSpace(params.Search),
		Type:         params.Type,
		LowStockOnly: params.LowStock,
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// applyUpdate copies the fields set in req onto product and reports what is invalid.
func applyUpdate(product *domain.Product, req dto.UpdateProductRequest, userID string, now time.Time) []string {
	var problems []string
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			problems = append(problems, "Product name cannot be empty")
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		problems = append(problems, priceProblems(*req.Price)...)
		product.Price = *req.Price
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			problems = append(problems, "Rating must be between 0 and 5")
		}
		product.Rating = *req.Rating
	}
	if req.Type != nil {
		product.Type = *req.Type
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID
	return problems
}

// UpdateProduct changes descriptive fields only. Quantity moves through stock operations.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.store.Products().FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := apperrors.NewValidation(applyUpdate(product, req, userID, s.Now())...); err != nil {
		return nil, err
	}

	if err := s.store.Products().UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// ApplyProductBatch creates and updates products in one transaction. Creates
// run first. Any invalid or missing product rolls back the whole batch.
func (s *productService) ApplyProductBatch(ctx context.Context, req dto.BulkProductsRequest, userID string) (*domain.ProductBatch, error) {
	if len(req.Create)+len(req.Update) == 0 {
		return nil, apperrors.NewValidation("Batch must contain at least one product")
	}

	created := make([]domain.Product, len(req.Create))
	quantities := make([]int, len(req.Create))
	var problems []string
	for i, item := range req.Create {
		product, itemProblems := s.buildProduct(item, userID)
		for _, p := range itemProblems {
			problems = append(problems, fmt.Sprintf("Create item %d: %s", i+1, p))
		}
		created[i], quantities[i] = product, item.Quantity
	}
	for i, item := range req.Update {
		if strings.TrimSpace(item.ProductID) == "" {
			problems = append(problems, fmt.Sprintf("Update item %d: product ID is required", i+1))
		}
	}
	if err := apperrors.NewValidation(problems...); err != nil {
		return nil, err
	}

	updated := make([]domain.Product, 0, len(req.Update))
	err := s.runInTx(ctx, s.store, "apply product batch", func(ctx context.Context, tx portsrepo.Store) error {
		for i := range created {
			if err := s.saveProduct(ctx, tx, &created[i], quantities[i], userID); err != nil {
				return err
			}
		}
		now := s.Now()
		for i, item := range req.Update {
			product, err := tx.Products().FindProductByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			itemProblems := applyUpdate(product, item.UpdateProductRequest, userID, now)
			for j := range itemProblems {
				itemProblems[j] = fmt.Sprintf("Update item %d: %s", i+1, itemProblems[j])
			}
			if err := apperrors.NewValidation(itemProblems...); err != nil {
				return err
			}
			if err := tx.Products().UpdateProduct(ctx, *product); err != nil {
				return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
			}
			updated = append(updated, *product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Product batch applied", slog.Int("created", len(created)), slog.Int("updated", len(updated)))
	return &domain.ProductBatch{Created: created, Updated: updated}, nil
}

// BulkCreateProducts creates every product or none.
func (s *productService) BulkCreateProducts(ctx context.Context, reqs []dto.CreateProductRequest, userID string) ([]domain.Product, error) {
	batch, err := s.ApplyProductBatch(ctx, dto.BulkProductsRequest{Create: reqs}, userID)
	if err != nil {
		return nil, err
	}
	return batch.Created, nil
}

// BulkUpdateProducts updates every product or none.
func (s *productService) BulkUpdateProducts(ctx context.Context, updates []dto.BulkProductUpdate, userID string) ([]domain.Product, error) {
	batch, err := s.ApplyProductBatch(ctx, dto.BulkProductsRequest{Update: updates}, userID)
	if err != nil {
		return nil, err
	}
	return batch.Updated, nil
}

// DeactivateProduct hides the product from sale. History is kept.
func (s *productService) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	product, err := s.store.Products().FindProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return nil
	}
	product.IsActive = false
	product.LastUpdatedAt = s.Now()
	product.LastUpdatedBy = userID
	if err := s.store.Products().UpdateProduct(ctx, *product); err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	s.LogInfo(ctx, "Product deactivated", slog.String("product_id", productID))
	return nil
}
