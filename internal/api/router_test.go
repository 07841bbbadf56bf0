package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flexprice/propbill/internal/api/cron"
	"github.com/flexprice/propbill/internal/api/dto"
	v1 "github.com/flexprice/propbill/internal/api/v1"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/service"
	"github.com/flexprice/propbill/internal/testutil"
	"github.com/flexprice/propbill/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	params := service.NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetClock(),
		s.GetReporter(),
		stores.CustomerRepo,
		stores.PropertyRepo,
		stores.FeeTypeRepo,
		stores.InvoiceRepo,
		s.GetTemplateSource(),
		s.GetSink(),
		service.NewRenderer(s.GetConfig()),
	)
	billing := service.NewBillingService(params)
	scheduler := service.NewSchedulerService(params, billing)
	log := s.GetLogger()

	s.router = NewRouter(Handlers{
		Health:      v1.NewHealthHandler(log),
		Customer:    v1.NewCustomerHandler(service.NewCustomerService(params), service.NewPropertyService(params), log),
		Property:    v1.NewPropertyHandler(service.NewPropertyService(params), log),
		FeeType:     v1.NewFeeTypeHandler(service.NewFeeTypeService(params), log),
		Invoice:     v1.NewInvoiceHandler(service.NewInvoiceService(params, billing), log),
		Billing:     v1.NewBillingHandler(scheduler, log),
		CronBilling: cron.NewBillingHandler(scheduler, log),
	}, s.GetConfig(), log)
}

func (s *RouterSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (s *RouterSuite) createCustomer() *dto.CustomerResponse {
	w := s.do(http.MethodPost, "/v1/customers", map[string]any{
		"name":             "Jane Doe",
		"email":            "jane@example.com",
		"property_address": "123 Main St",
		"rate":             "250",
		"cadence":          "monthly",
		"fee_2_type":       "Landscaping",
		"fee_2_amount":     "40",
		"next_bill_date":   "2025-03-14",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp dto.CustomerResponse
	s.decode(w, &resp)
	return &resp
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestCustomerLifecycle() {
	created := s.createCustomer()
	s.NotEmpty(created.ID)

	w := s.do(http.MethodPost, "/v1/customers/"+created.ID+"/properties", map[string]any{
		"address":    "9 Side Rd",
		"fee_amount": "15",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/customers/"+created.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var got dto.CustomerResponse
	s.decode(w, &got)
	s.Equal("Jane Doe", got.Name)
	s.Len(got.Properties, 1)

	w = s.do(http.MethodPatch, "/v1/customers/"+created.ID, map[string]any{"rate": "300"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &got)
	s.Equal("300", got.Rate.String())

	w = s.do(http.MethodGet, "/v1/customers?limit=10", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListCustomersResponse
	s.decode(w, &list)
	s.Equal(1, list.Pagination.Total)
	s.Equal(10, list.Pagination.Limit)

	w = s.do(http.MethodDelete, "/v1/customers/"+created.ID, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/v1/customers/"+created.ID, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestErrorEnvelope() {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown cadence",
			method:     http.MethodPost,
			path:       "/v1/customers",
			body:       map[string]any{"name": "x", "email": "x@example.com", "property_address": "1 A St", "cadence": "weekly", "next_bill_date": "2025-03-14"},
			wantStatus: http.StatusBadRequest,
			wantCode:   ierr.ErrCodeValidation,
		},
		{
			name:       "unknown invoice",
			method:     http.MethodGet,
			path:       "/v1/invoices/inv_missing/download",
			wantStatus: http.StatusNotFound,
			wantCode:   ierr.ErrCodeNotFound,
		},
		{
			name:       "bad list limit",
			method:     http.MethodGet,
			path:       "/v1/invoices?limit=5000",
			wantStatus: http.StatusBadRequest,
			wantCode:   ierr.ErrCodeValidation,
		},
		{
			name:       "bad run date",
			method:     http.MethodPost,
			path:       "/v1/billing/runs",
			body:       map[string]any{"run_date": "tomorrow"},
			wantStatus: http.StatusBadRequest,
			wantCode:   ierr.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(tt.method, tt.path, tt.body)
			s.Equal(tt.wantStatus, w.Code, w.Body.String())

			var resp ierr.ErrorResponse
			s.decode(w, &resp)
			s.False(resp.Success)
			s.Equal(tt.wantCode, resp.Error.Code)
			s.NotEmpty(resp.Error.Display)
		})
	}
}

func (s *RouterSuite) TestDuplicateFeeTypeConflicts() {
	w := s.do(http.MethodPost, "/v1/fee-types", map[string]any{"name": "Leasing Fee"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/v1/fee-types", map[string]any{"name": "Leasing Fee"})
	s.Equal(http.StatusConflict, w.Code)

	var resp ierr.ErrorResponse
	s.decode(w, &resp)
	s.Equal(ierr.ErrCodeAlreadyExists, resp.Error.Code)
}

func (s *RouterSuite) TestGenerateAndDownloadInvoice() {
	created := s.createCustomer()

	w := s.do(http.MethodPost, "/v1/invoices", map[string]any{
		"customer_id":  created.ID,
		"invoice_date": "2025-03-14",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var inv dto.InvoiceResponse
	s.decode(w, &inv)
	s.Equal("290", inv.Amount.String())
	s.Equal("Invoice_March_2025_Main_St.docx", inv.FileName)

	w = s.do(http.MethodGet, "/v1/invoices/"+inv.ID+"/download", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(types.ContentTypeDocx, w.Header().Get("Content-Type"))
	s.Equal(`attachment; filename="Invoice_March_2025_Main_St.docx"`, w.Header().Get("Content-Disposition"))
	s.Greater(w.Body.Len(), 0)

	w = s.do(http.MethodGet, "/v1/invoices?customer_id="+created.ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListInvoicesResponse
	s.decode(w, &list)
	s.Require().Len(list.Items, 1)
	s.Equal(inv.ID, list.Items[0].ID)
}

func (s *RouterSuite) TestCronRunToday() {
	created := s.createCustomer()

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := s.do(method, "/v1/cron/billing/run-today", nil)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var resp dto.BillingRunResponse
		s.decode(w, &resp)
		s.Equal("2025-03-14", resp.RunDate)

		if method == http.MethodGet {
			s.Equal(1, resp.Succeeded)
			s.Equal(created.ID, resp.Items[0].CustomerID)
			continue
		}
		// the first run advanced the due date, nothing is left for today
		s.Zero(resp.Processed)
	}
}

func (s *RouterSuite) TestRunBillingForDate() {
	s.createCustomer()

	w := s.do(http.MethodPost, "/v1/billing/runs", map[string]any{"run_date": "2025-03-14"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.BillingRunResponse
	s.decode(w, &resp)
	s.Equal(1, resp.Processed)
	s.Equal("2025-04-13", resp.Items[0].NextBillDate)
}
