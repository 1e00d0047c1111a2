package services_test

import (
	"testing"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	ledgerSuite
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}

func (s *CustomerServiceTestSuite) TestCreateCustomer_AppliesDefaults() {
	customer, err := s.svc.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{
		Name:  " Ana ",
		Phone: "(650) 253-0000",
	}, operatorID)
	s.Require().NoError(err)

	s.Equal("Ana", customer.Name)
	s.Equal("+16502530000", customer.Phone)
	s.Equal("Net 30", customer.PaymentTerms)
	s.True(customer.IsCreditEnabled)
	s.True(customer.IsActive)
	s.Nil(customer.CreditLimit)
	s.assertDecimal("0", customer.CreditBalance)
	s.Equal(operatorID, customer.CreatedBy)
	s.Equal(baseTime, customer.CreatedAt)
}

func (s *CustomerServiceTestSuite) TestCreateCustomer_Validation() {
	negative := dec("-10")
	_, err := s.svc.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{Phone: "12", CreditLimit: &negative}, operatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(`Customer name is required, Invalid phone number "12", Credit limit cannot be negative`, apperrors.Message(err))
}

func (s *CustomerServiceTestSuite) TestUpdateCustomer_ChangesContactDetails() {
	customer := s.newCustomer("Ana")
	address := "12 Market St"
	phone := ""

	updated, err := s.svc.Customer.UpdateCustomer(s.ctx, customer.CustomerID, dto.UpdateCustomerRequest{Address: &address, Phone: &phone}, operatorID)
	s.Require().NoError(err)
	s.Equal("Ana", updated.Name)
	s.Equal(address, updated.Address)
	s.Empty(updated.Phone)

	blank := " "
	_, err = s.svc.Customer.UpdateCustomer(s.ctx, customer.CustomerID, dto.UpdateCustomerRequest{Name: &blank}, operatorID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Customer.UpdateCustomer(s.ctx, "missing", dto.UpdateCustomerRequest{Address: &address}, operatorID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CustomerServiceTestSuite) TestDeactivateCustomer_RefusedWhileOwing() {
	customer := s.newCustomer("Ana")
	product := s.newProduct("Rice", "1", 100)
	s.sell(customer.CustomerID, product.ProductID, 10, "1", "0")

	err := s.svc.Customer.DeactivateCustomer(s.ctx, customer.CustomerID, operatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal("Customer has an outstanding balance of 10.00", apperrors.Message(err))

	s.pay(customer.CustomerID, "10")
	s.Require().NoError(s.svc.Customer.DeactivateCustomer(s.ctx, customer.CustomerID, operatorID))

	list, err := s.svc.Customer.ListCustomers(s.ctx, dto.ListCustomersParams{})
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *CustomerServiceTestSuite) TestListCustomers_Search() {
	s.newCustomer("Ana")
	s.newCustomer("Bruno")
	s.newCustomer("Anabel")

	list, err := s.svc.Customer.ListCustomers(s.ctx, dto.ListCustomersParams{Search: "ana"})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Ana", list[0].Name)
	s.Equal("Anabel", list[1].Name)
}
