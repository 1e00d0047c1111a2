package services_test

import (
	"testing"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/core/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	ledgerSuite
	product *domain.Product
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.product = s.newProduct("Rice", "1", 1000)
}

// owe creates an unpaid sale for amount.
func (s *PaymentServiceTestSuite) owe(customerID string, amount int) *domain.Sale {
	return s.sell(customerID, s.product.ProductID, amount, "1", "0")
}

func (s *PaymentServiceTestSuite) TestProcessPayment_OldestSaleFirst() {
	customer := s.newCustomer("Ana")
	a := s.owe(customer.CustomerID, 50)
	s.clock.Advance(days(4))
	b := s.owe(customer.CustomerID, 100)

	result := s.pay(customer.CustomerID, "60")

	s.Require().Len(result.UpdatedSales, 2)
	s.Equal(a.SaleID, result.UpdatedSales[0].SaleID)
	s.assertDecimal("50", result.UpdatedSales[0].AmountPaid)
	s.assertDecimal("0", result.UpdatedSales[0].NewOutstanding)
	s.Equal(domain.PaymentPaid, result.UpdatedSales[0].PaymentStatus)
	s.Equal(b.SaleID, result.UpdatedSales[1].SaleID)
	s.assertDecimal("10", result.UpdatedSales[1].AmountPaid)
	s.assertDecimal("90", result.UpdatedSales[1].NewOutstanding)
	s.Equal(domain.PaymentPartial, result.UpdatedSales[1].PaymentStatus)
	s.Equal(2, result.TotalSalesUpdated)

	s.Equal(domain.PaymentPaid, s.sale(a.SaleID).PaymentStatus)
	stored := s.sale(b.SaleID)
	s.assertDecimal("90", stored.OutstandingAmount)
	s.assertDecimal("10", stored.TotalPaid)
	s.assertBalanceMirror(customer.CustomerID)
}

func (s *PaymentServiceTestSuite) TestProcessPayment_ConservesAmountAndNeverGoesNegative() {
	customer := s.newCustomer("Ana")
	s.owe(customer.CustomerID, 50)
	s.owe(customer.CustomerID, 30)

	result := s.pay(customer.CustomerID, "100")

	s.assertDecimal("80", result.AmountApplied)
	s.assertDecimal("20", result.RemainingCredit)
	s.True(result.AmountApplied.Add(result.RemainingCredit).Equal(dec("100")))

	applied := decimal.Zero
	for _, u := range result.UpdatedSales {
		applied = applied.Add(u.AmountPaid)
		s.assertDecimal("0", u.NewOutstanding)
	}
	s.True(applied.Equal(result.AmountApplied))
	s.assertBalanceMirror(customer.CustomerID)

	c, err := s.svc.Customer.GetCustomer(s.ctx, customer.CustomerID)
	s.Require().NoError(err)
	s.assertDecimal("0", c.CreditBalance)
}

func (s *PaymentServiceTestSuite) TestProcessPayment_StatusProgression() {
	customer := s.newCustomer("Ana")
	sale := s.owe(customer.CustomerID, 100)
	s.Equal(domain.PaymentPending, sale.PaymentStatus)

	s.pay(customer.CustomerID, "50")
	s.Equal(domain.PaymentPartial, s.sale(sale.SaleID).PaymentStatus)

	s.pay(customer.CustomerID, "50")
	s.Equal(domain.PaymentPaid, s.sale(sale.SaleID).PaymentStatus)
	s.assertBalanceMirror(customer.CustomerID)
}

func (s *PaymentServiceTestSuite) TestProcessPayment_WritesAnchorAndPerSaleRecords() {
	customer := s.newCustomer("Ana")
	a := s.owe(customer.CustomerID, 20)
	b := s.owe(customer.CustomerID, 20)
	ref := "RCPT-1"

	result, err := s.svc.Payment.ProcessPayment(s.ctx, dto.ProcessPaymentRequest{
		CustomerID:      customer.CustomerID,
		Amount:          dec("30"),
		Method:          "Bank_Transfer",
		ReferenceNumber: &ref,
	}, operatorID)
	s.Require().NoError(err)

	history, err := s.svc.Payment.GetHistory(s.ctx, dto.PaymentHistoryParams{CustomerID: customer.CustomerID})
	s.Require().NoError(err)
	s.Require().Len(history.Payments, 3)
	s.Nil(history.NextToken)
	s.True(history.Payments[0].IsAnchor(), "anchor reads first within its payment")
	s.Equal(a.SaleID, *history.Payments[1].SaleID)
	s.Equal(b.SaleID, *history.Payments[2].SaleID)

	perSale := map[string]domain.PaymentRecord{}
	for _, p := range history.Payments {
		s.Equal(domain.MethodBankTransfer, p.Method)
		if p.IsAnchor() {
			s.Equal(result.PaymentID, p.PaymentID)
			s.assertDecimal("30", p.Amount)
			continue
		}
		perSale[*p.SaleID] = p
	}
	s.Require().Len(perSale, 2)
	s.assertDecimal("20", perSale[a.SaleID].Amount)
	s.assertDecimal("10", perSale[b.SaleID].Amount)
	s.Equal("Payment applied to sale #"+a.SaleID, perSale[a.SaleID].Notes)
	s.Equal(&ref, perSale[b.SaleID].ReferenceNumber)
}

func (s *PaymentServiceTestSuite) TestProcessPayment_Rejections() {
	customer := s.newCustomer("Ana")

	_, err := s.svc.Payment.ProcessPayment(s.ctx, dto.ProcessPaymentRequest{CustomerID: customer.CustomerID, Amount: dec("10")}, operatorID)
	s.ErrorIs(err, apperrors.ErrNoOutstandingBalance)
	s.Equal("No outstanding balance found for this customer", apperrors.Message(err))

	_, err = s.svc.Payment.ProcessPayment(s.ctx, dto.ProcessPaymentRequest{CustomerID: "missing", Amount: dec("10")}, operatorID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Payment.ProcessPayment(s.ctx, dto.ProcessPaymentRequest{Amount: dec("0"), Method: "barter"}, operatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal("Valid customer ID is required, Payment amount must be greater than 0, Invalid payment method", apperrors.Message(err))

	_, err = s.svc.Payment.ProcessPayment(s.ctx, dto.ProcessPaymentRequest{CustomerID: customer.CustomerID, Amount: dec("1000000.01")}, operatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal("Payment amount exceeds maximum allowed limit", apperrors.Message(err))

	history, err := s.svc.Payment.GetHistory(s.ctx, dto.PaymentHistoryParams{})
	s.Require().NoError(err)
	s.Empty(history.Payments)
}

func (s *PaymentServiceTestSuite) TestProcessPayment_RollsBackWhenRecordWriteFails() {
	customer := s.newCustomer("Ana")
	a := s.owe(customer.CustomerID, 20)
	b := s.owe(customer.CustomerID, 20)

	// anchor, first sale record, then the second sale record fails
	faulty := newFaultyStore(s.store, 3, 0)
	payments := services.NewPaymentService(faulty, s.option())

	_, err := payments.ProcessPayment(s.ctx, dto.ProcessPaymentRequest{CustomerID: customer.CustomerID, Amount: dec("40")}, operatorID)
	s.ErrorIs(err, apperrors.ErrTransactionFailed)

	s.assertDecimal("20", s.sale(a.SaleID).OutstandingAmount)
	s.assertDecimal("20", s.sale(b.SaleID).OutstandingAmount)
	s.Equal(domain.PaymentPending, s.sale(a.SaleID).PaymentStatus)
	s.assertBalanceMirror(customer.CustomerID)

	history, err := s.svc.Payment.GetHistory(s.ctx, dto.PaymentHistoryParams{})
	s.Require().NoError(err)
	s.Empty(history.Payments)
}

func (s *PaymentServiceTestSuite) TestGetHistory_PagesWithToken() {
	customer := s.newCustomer("Ana")
	s.owe(customer.CustomerID, 100)
	for i := 0; i < 3; i++ {
		s.clock.Advance(days(1))
		s.pay(customer.CustomerID, "10")
	}

	page, err := s.svc.Payment.GetHistory(s.ctx, dto.PaymentHistoryParams{CustomerID: customer.CustomerID, Limit: 4})
	s.Require().NoError(err)
	s.Require().Len(page.Payments, 4)
	s.Require().NotNil(page.NextToken)

	rest, err := s.svc.Payment.GetHistory(s.ctx, dto.PaymentHistoryParams{CustomerID: customer.CustomerID, Limit: 4, NextToken: page.NextToken})
	s.Require().NoError(err)
	s.Len(rest.Payments, 2)
	s.Nil(rest.NextToken)
	s.True(rest.Payments[0].PaymentDate.Before(page.Payments[3].PaymentDate) || rest.Payments[0].PaymentDate.Equal(page.Payments[3].PaymentDate))

	bad := "not-a-token"
	_, err = s.svc.Payment.GetHistory(s.ctx, dto.PaymentHistoryParams{NextToken: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PaymentServiceTestSuite) TestEndToEndCustomerScenario() {
	customer := s.newCustomer("Carla")

	s1 := s.sell(customer.CustomerID, s.product.ProductID, 200, "1", "50")
	s.assertDecimal("150", s1.OutstandingAmount)
	s.Equal(domain.PaymentPartial, s1.PaymentStatus)
	s.assertBalanceMirror(customer.CustomerID)

	s2 := s.sell(customer.CustomerID, s.product.ProductID, 80, "1", "80")
	s.assertDecimal("0", s2.OutstandingAmount)
	s.Equal(domain.PaymentPaid, s2.PaymentStatus)
	c, err := s.svc.Customer.GetCustomer(s.ctx, customer.CustomerID)
	s.Require().NoError(err)
	s.assertDecimal("150", c.CreditBalance)

	result := s.pay(customer.CustomerID, "100")
	s.assertDecimal("100", result.AmountApplied)
	s.assertDecimal("0", result.RemainingCredit)
	s.Require().Len(result.UpdatedSales, 1)
	s.Equal(s1.SaleID, result.UpdatedSales[0].SaleID)

	stored := s.sale(s1.SaleID)
	s.assertDecimal("50", stored.OutstandingAmount)
	s.Equal(domain.PaymentPartial, stored.PaymentStatus)
	c, err = s.svc.Customer.GetCustomer(s.ctx, customer.CustomerID)
	s.Require().NoError(err)
	s.assertDecimal("50", c.CreditBalance)
	s.assertBalanceMirror(customer.CustomerID)
}

func (s *PaymentServiceTestSuite) TestProcessPayment_RejectsAmountsFinerThanCents() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "10", 10)
	sale := s.sell(customer.CustomerID, product.ProductID, 2, "10", "0")

	for _, amount := range []string{"0.001", "10.005"} {
		_, err := s.svc.Payment.ProcessPayment(s.ctx, dto.ProcessPaymentRequest{CustomerID: customer.CustomerID, Amount: dec(amount)}, operatorID)
		s.ErrorIs(err, apperrors.ErrValidation, amount)
		s.Equal("Payment amount cannot have more than 2 decimal places", apperrors.Message(err), amount)
	}

	s.assertDecimal("20", s.sale(sale.SaleID).OutstandingAmount)
	history, err := s.svc.Payment.GetHistory(s.ctx, dto.PaymentHistoryParams{CustomerID: customer.CustomerID})
	s.Require().NoError(err)
	s.Empty(history.Payments)

	result := s.pay(customer.CustomerID, "10.50")
	s.assertDecimal("10.50", result.AmountApplied)
	s.assertBalanceMirror(customer.CustomerID)
}
