package services_test

import (
	"math"
	"strings"
	"testing"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/core/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type SaleServiceTestSuite struct {
	ledgerSuite
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}

func (s *SaleServiceTestSuite) TestCreateSale_ConsumesStockAndRecordsMovement() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "5", 10)

	sale := s.sell(customer.CustomerID, product.ProductID, 3, "5", "0")

	s.Equal(7, s.quantity(product.ProductID))
	movements, err := s.svc.Stock.GetMovementsForProduct(s.ctx, product.ProductID)
	s.Require().NoError(err)
	s.Require().Len(movements, 2)
	s.Equal(domain.MovementRestock, movements[0].Type)
	s.Equal(-3, movements[1].Quantity)
	s.Equal(domain.MovementSale, movements[1].Type)
	s.Require().NotNil(movements[1].SaleID)
	s.Equal(sale.SaleID, *movements[1].SaleID)
}

func (s *SaleServiceTestSuite) TestCreateSale_DerivesTotalsAndStatus() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "5", 100)

	tests := []struct {
		paid   string
		status domain.PaymentStatus
		owed   string
	}{
		{"0", domain.PaymentPending, "100"},
		{"50", domain.PaymentPartial, "50"},
		{"100", domain.PaymentPaid, "0"},
	}
	for _, tt := range tests {
		sale := s.sell(customer.CustomerID, product.ProductID, 2, "50", tt.paid)
		s.assertDecimal("100", sale.TotalAmount)
		s.assertDecimal(tt.owed, sale.OutstandingAmount)
		s.Equal(tt.status, sale.PaymentStatus)
		s.assertBalanceMirror(customer.CustomerID)
	}
}

func (s *SaleServiceTestSuite) TestCreateSale_DefaultsToCatalogPriceAndSnapshotsCustomer() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "4.25", 10)

	sale, err := s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customer.CustomerID,
		Items:      []dto.SaleItemRequest{{ProductID: product.ProductID, Quantity: 2}},
	}, operatorID)
	s.Require().NoError(err)
	s.assertDecimal("8.5", sale.TotalAmount)
	s.Equal("Rice", sale.Items[0].ProductName)

	newName := "Ana Maria"
	_, err = s.svc.Customer.UpdateCustomer(s.ctx, customer.CustomerID, dto.UpdateCustomerRequest{Name: &newName}, operatorID)
	s.Require().NoError(err)

	stored := s.sale(sale.SaleID)
	s.Equal("Ana", stored.Customer.Name)
}

func (s *SaleServiceTestSuite) TestCreateSale_InsufficientStockLeavesEverythingUnchanged() {
	customer := s.newCustomer("Ana")
	rice := s.newProduct("Rice", "5", 10)
	beans := s.newProduct("Beans", "3", 2)

	_, err := s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customer.CustomerID,
		Items: []dto.SaleItemRequest{
			{ProductID: rice.ProductID, Quantity: 4},
			{ProductID: beans.ProductID, Quantity: 5},
		},
	}, operatorID)
	s.ErrorIs(err, apperrors.ErrInsufficientStock)
	s.Equal("Insufficient stock for product Beans. Available: 2, Requested: 5", apperrors.Message(err))

	s.Equal(10, s.quantity(rice.ProductID))
	s.Equal(2, s.quantity(beans.ProductID))
	movements, err := s.svc.Stock.ListStock(s.ctx, dto.ListStockParams{})
	s.Require().NoError(err)
	s.Len(movements, 2)
	sales, err := s.svc.Sale.ListSales(s.ctx, dto.ListSalesParams{})
	s.Require().NoError(err)
	s.Empty(sales)
}

func (s *SaleServiceTestSuite) TestCreateSale_RepeatedProductLinesAreCheckedTogether() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "5", 5)

	_, err := s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customer.CustomerID,
		Items: []dto.SaleItemRequest{
			{ProductID: product.ProductID, Quantity: 3},
			{ProductID: product.ProductID, Quantity: 3},
		},
	}, operatorID)
	s.ErrorIs(err, apperrors.ErrInsufficientStock)
	s.Equal(5, s.quantity(product.ProductID))
}

func (s *SaleServiceTestSuite) TestCreateSale_OverPaymentRejected() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "5", 10)

	_, err := s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customer.CustomerID,
		Items:      []dto.SaleItemRequest{{ProductID: product.ProductID, Quantity: 1}},
		AmountPaid: dec("6"),
	}, operatorID)
	s.ErrorIs(err, apperrors.ErrOverPayment)
	s.Equal(10, s.quantity(product.ProductID))
}

func (s *SaleServiceTestSuite) TestCreateSale_ValidationAndLookups() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "5", 10)

	_, err := s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{}, operatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal("Customer ID is required, At least one item is required", apperrors.Message(err))

	_, err = s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: "missing",
		Items:      []dto.SaleItemRequest{{ProductID: product.ProductID, Quantity: 1}},
	}, operatorID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customer.CustomerID,
		Items:      []dto.SaleItemRequest{{ProductID: "missing", Quantity: 1}},
	}, operatorID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.Require().NoError(s.svc.Product.DeactivateProduct(s.ctx, product.ProductID, operatorID))
	_, err = s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customer.CustomerID,
		Items:      []dto.SaleItemRequest{{ProductID: product.ProductID, Quantity: 1}},
	}, operatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SaleServiceTestSuite) TestCreateSale_RollsBackWhenMovementWriteFails() {
	customer := s.newCustomer("Ana")
	rice := s.newProduct("Rice", "5", 10)
	beans := s.newProduct("Beans", "3", 10)

	faulty := newFaultyStore(s.store, 0, 2)
	ledger := services.NewStockService(faulty, s.option())
	sales := services.NewSaleService(faulty, ledger, s.option())

	_, err := sales.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customer.CustomerID,
		Items: []dto.SaleItemRequest{
			{ProductID: rice.ProductID, Quantity: 1},
			{ProductID: beans.ProductID, Quantity: 1},
		},
	}, operatorID)
	s.ErrorIs(err, apperrors.ErrTransactionFailed)
	s.ErrorIs(err, errDiskFull)
	s.True(strings.HasPrefix(apperrors.Message(err), "Failed to create sale: "))
	s.True(strings.HasSuffix(apperrors.Message(err), errDiskFull.Error()))

	s.Equal(10, s.quantity(rice.ProductID))
	s.Equal(10, s.quantity(beans.ProductID))
	list, err := s.svc.Sale.ListSales(s.ctx, dto.ListSalesParams{})
	s.Require().NoError(err)
	s.Empty(list)
	s.assertBalanceMirror(customer.CustomerID)
}

func (s *SaleServiceTestSuite) TestListSales_FiltersByCustomerAndDate() {
	ana := s.newCustomer("Ana")
	ben := s.newCustomer("Ben")
	product := s.newProduct("Rice", "5", 100)

	first := s.sell(ana.CustomerID, product.ProductID, 1, "5", "0")
	s.clock.Advance(days(2))
	second := s.sell(ana.CustomerID, product.ProductID, 1, "5", "0")
	s.sell(ben.CustomerID, product.ProductID, 1, "5", "0")

	list, err := s.svc.Sale.ListSales(s.ctx, dto.ListSalesParams{CustomerID: ana.CustomerID})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.SaleID, list[0].SaleID)
	s.Equal(first.SaleID, list[1].SaleID)

	list, err = s.svc.Sale.ListSales(s.ctx, dto.ListSalesParams{CustomerID: ana.CustomerID, To: baseTime.Format("2006-01-02")})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(first.SaleID, list[0].SaleID)

	_, err = s.svc.Sale.ListSales(s.ctx, dto.ListSalesParams{From: "01/02/2024"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SaleServiceTestSuite) TestCreateSale_LineTotalsCannotWrapPastStock() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "5", 10)

	_, err := s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customer.CustomerID,
		Items: []dto.SaleItemRequest{
			{ProductID: product.ProductID, Quantity: 5},
			{ProductID: product.ProductID, Quantity: math.MaxInt},
		},
	}, operatorID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customer.CustomerID,
		Items: []dto.SaleItemRequest{
			{ProductID: product.ProductID, Quantity: 5},
			{ProductID: product.ProductID, Quantity: domain.MaxStockQuantity},
		},
	}, operatorID)
	s.ErrorIs(err, apperrors.ErrInsufficientStock)

	s.Equal(10, s.quantity(product.ProductID))
	list, err := s.svc.Sale.ListSales(s.ctx, dto.ListSalesParams{})
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *SaleServiceTestSuite) TestCreateSale_RejectsAmountsFinerThanCents() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "5", 10)
	oddPrice := dec("1.005")

	tests := []struct {
		name string
		req  dto.CreateSaleRequest
		msg  string
	}{
		{
			name: "amount paid",
			req: dto.CreateSaleRequest{
				CustomerID: customer.CustomerID,
				Items:      []dto.SaleItemRequest{{ProductID: product.ProductID, Quantity: 1}},
				AmountPaid: dec("4.996"),
			},
			msg: "Amount paid cannot have more than 2 decimal places",
		},
		{
			name: "unit price",
			req: dto.CreateSaleRequest{
				CustomerID: customer.CustomerID,
				Items:      []dto.SaleItemRequest{{ProductID: product.ProductID, Quantity: 1, UnitPrice: &oddPrice}},
			},
			msg: "Item 1: unit price cannot have more than 2 decimal places",
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Sale.CreateSale(s.ctx, tt.req, operatorID)
			s.ErrorIs(err, apperrors.ErrValidation)
			s.Equal(tt.msg, apperrors.Message(err))
		})
	}

	s.Equal(10, s.quantity(product.ProductID))
	s.assertBalanceMirror(customer.CustomerID)
}
