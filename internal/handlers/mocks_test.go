package handlers_test

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// result unpacks a (*T, error) pair from a mock call.
func result[T any](args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

// list unpacks a ([]T, error) pair from a mock call.
func list[T any](args mock.Arguments) ([]T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return result[domain.Product](m.Called(ctx, productID))
}
func (m *MockProductService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	return list[domain.Product](m.Called(ctx, params))
}
func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	return result[domain.Product](m.Called(ctx, req, userID))
}
func (m *MockProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	return result[domain.Product](m.Called(ctx, productID, req, userID))
}
func (m *MockProductService) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	return m.Called(ctx, productID, userID).Error(0)
}

func (m *MockProductService) BulkCreateProducts(ctx context.Context, reqs []dto.CreateProductRequest, userID string) ([]domain.Product, error) {
	return list[domain.Product](m.Called(ctx, reqs, userID))
}
func (m *MockProductService) BulkUpdateProducts(ctx context.Context, updates []dto.BulkProductUpdate, userID string) ([]domain.Product, error) {
	return list[domain.Product](m.Called(ctx, updates, userID))
}
func (m *MockProductService) ApplyProductBatch(ctx context.Context, req dto.BulkProductsRequest, userID string) (*domain.ProductBatch, error) {
	return result[domain.ProductBatch](m.Called(ctx, req, userID))
}

var _ portssvc.ProductSvcFacade = (*MockProductService)(nil)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, customerID))
}
func (m *MockCustomerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	return list[domain.Customer](m.Called(ctx, params))
}
func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, req, userID))
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, customerID, req, userID))
}
func (m *MockCustomerService) DeactivateCustomer(ctx context.Context, customerID string, userID string) error {
	return m.Called(ctx, customerID, userID).Error(0)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock CreditService ---
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) UpdateCreditSettings(ctx context.Context, req dto.UpdateCreditRequest, userID string) (*domain.Customer, error) {
	return result[domain.Customer](m.Called(ctx, req, userID))
}

var _ portssvc.CreditSvc = (*MockCreditService)(nil)

// --- Mock StockService ---
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) RecordMovement(ctx context.Context, tx portsrepo.Store, productID string, delta int, movementType domain.MovementType, saleID *string, userID string) (*domain.StockMovement, error) {
	return result[domain.StockMovement](m.Called(ctx, tx, productID, delta, movementType, saleID, userID))
}
func (m *MockStockService) GetMovementsForProduct(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	return list[domain.StockMovement](m.Called(ctx, productID))
}
func (m *MockStockService) AddStock(ctx context.Context, req dto.AddStockRequest, userID string) (*domain.StockMovement, error) {
	return result[domain.StockMovement](m.Called(ctx, req, userID))
}
func (m *MockStockService) AdjustStock(ctx context.Context, req dto.AdjustStockRequest, userID string) (*domain.StockMovement, error) {
	return result[domain.StockMovement](m.Called(ctx, req, userID))
}
func (m *MockStockService) ListStock(ctx context.Context, params dto.ListStockParams) ([]domain.StockMovement, error) {
	return list[domain.StockMovement](m.Called(ctx, params))
}

var _ portssvc.StockSvcFacade = (*MockStockService)(nil)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	return result[domain.Sale](m.Called(ctx, req, userID))
}
func (m *MockSaleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	return result[domain.Sale](m.Called(ctx, saleID))
}
func (m *MockSaleService) ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error) {
	return list[domain.Sale](m.Called(ctx, params))
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ProcessPayment(ctx context.Context, req dto.ProcessPaymentRequest, userID string) (*domain.AllocationResult, error) {
	return result[domain.AllocationResult](m.Called(ctx, req, userID))
}
func (m *MockPaymentService) GetHistory(ctx context.Context, params dto.PaymentHistoryParams) (*dto.PaymentHistoryResponse, error) {
	return result[dto.PaymentHistoryResponse](m.Called(ctx, params))
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock OutstandingService ---
type MockOutstandingService struct {
	mock.Mock
}

func (m *MockOutstandingService) GetOutstanding(ctx context.Context, params dto.OutstandingParams) (*domain.OutstandingList, error) {
	return result[domain.OutstandingList](m.Called(ctx, params))
}
func (m *MockOutstandingService) GetCustomerDetail(ctx context.Context, customerID string) (*domain.CustomerDetail, error) {
	return result[domain.CustomerDetail](m.Called(ctx, customerID))
}
func (m *MockOutstandingService) GetReport(ctx context.Context, params dto.OutstandingParams) (*domain.OutstandingReport, error) {
	return result[domain.OutstandingReport](m.Called(ctx, params))
}

var _ portssvc.OutstandingSvc = (*MockOutstandingService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetSalesReport(ctx context.Context, params dto.ReportRangeParams) (*domain.SalesReport, error) {
	return result[domain.SalesReport](m.Called(ctx, params))
}
func (m *MockReportingService) GetInventoryReport(ctx context.Context) (*domain.InventoryReport, error) {
	return result[domain.InventoryReport](m.Called(ctx))
}
func (m *MockReportingService) GetAnalytics(ctx context.Context, params dto.ReportRangeParams) (*domain.Analytics, error) {
	return result[domain.Analytics](m.Called(ctx, params))
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	return result[dto.LoginResponse](m.Called(ctx, req))
}
func (m *MockAuthService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	return result[domain.User](m.Called(ctx, req, creatorUserID))
}
func (m *MockAuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)
