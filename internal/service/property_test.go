package service

import (
	"testing"

	"github.com/flexprice/propbill/internal/api/dto"
	"github.com/flexprice/propbill/internal/domain/customer"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type PropertyServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PropertyService
	customer *customer.Customer
}

func TestPropertyService(t *testing.T) {
	suite.Run(t, new(PropertyServiceSuite))
}

func (s *PropertyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPropertyService(newTestParams(&s.BaseServiceTestSuite))
	s.customer = testCustomer(&s.BaseServiceTestSuite, date(2025, 3, 14))
	s.Require().NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.customer))
}

func (s *PropertyServiceSuite) TestCreateProperty() {
	resp, err := s.service.CreateProperty(s.GetContext(), s.customer.ID, dto.CreatePropertyRequest{
		Address:   " 9 Side Rd ",
		City:      "Springfield",
		FeeAmount: lo.ToPtr(dec("15")),
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal(s.customer.ID, resp.CustomerID)
	s.Equal("9 Side Rd", resp.Address)
	s.True(resp.FeeAmount.Valid)
	s.True(resp.FeeAmount.Decimal.Equal(dec("15")))
}

func (s *PropertyServiceSuite) TestCreateProperty_Errors() {
	tests := []struct {
		name       string
		customerID string
		req        dto.CreatePropertyRequest
		check      func(error) bool
	}{
		{"missing address", s.customer.ID, dto.CreatePropertyRequest{City: "Springfield"}, ierr.IsValidation},
		{"unknown customer", "cust_missing", dto.CreatePropertyRequest{Address: "9 Side Rd"}, ierr.IsNotFound},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateProperty(s.GetContext(), tt.customerID, tt.req)
			s.Require().Error(err)
			s.True(tt.check(err), "unexpected error: %v", err)
		})
	}
}

func (s *PropertyServiceSuite) TestListAndDelete() {
	first, err := s.service.CreateProperty(s.GetContext(), s.customer.ID, dto.CreatePropertyRequest{Address: "9 Side Rd"})
	s.Require().NoError(err)
	_, err = s.service.CreateProperty(s.GetContext(), s.customer.ID, dto.CreatePropertyRequest{Address: "11 Side Rd"})
	s.Require().NoError(err)

	list, err := s.service.GetCustomerProperties(s.GetContext(), s.customer.ID)
	s.Require().NoError(err)
	s.Len(list.Items, 2)
	s.Equal(2, list.Pagination.Total)

	s.Require().NoError(s.service.DeleteProperty(s.GetContext(), first.ID))
	s.True(ierr.IsNotFound(s.service.DeleteProperty(s.GetContext(), first.ID)))

	list, err = s.service.GetCustomerProperties(s.GetContext(), s.customer.ID)
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal("11 Side Rd", list.Items[0].Address)

	_, err = s.service.GetCustomerProperties(s.GetContext(), "cust_missing")
	s.True(ierr.IsNotFound(err))
}
