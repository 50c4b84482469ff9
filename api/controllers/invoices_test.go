package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/internal/invoice"
	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
)

type stubInvoiceService struct {
	createErr error
	lastInput invoice.CreateInput
}

func (s *stubInvoiceService) Create(ctx context.Context, input invoice.CreateInput) (*models.Invoice, error) {
	s.lastInput = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Invoice{ID: uuid.New(), SalesOrderID: input.SalesOrderID}, nil
}

func (s *stubInvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	return nil, nil
}

func (s *stubInvoiceService) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return &models.Invoice{ID: id}, nil
}

func (s *stubInvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.InvoiceStatus) (*models.Invoice, error) {
	return &models.Invoice{ID: id, Status: status}, nil
}

func (s *stubInvoiceService) FinanceSummary(ctx context.Context) (*invoice.FinanceSummary, error) {
	return &invoice.FinanceSummary{}, nil
}

func TestCreateInvoice(t *testing.T) {
	logg := testLogger()

	t.Run("rejects malformed sales order id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{"sales_order_id":"nope"}`))
		rec := httptest.NewRecorder()
		CreateInvoice(&stubInvoiceService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("maps duplicate invoice to conflict", func(t *testing.T) {
		stub := &stubInvoiceService{createErr: pkgerrors.New(pkgerrors.CodeConflict, "sales order already invoiced")}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{"sales_order_id":"`+uuid.NewString()+`"}`))
		rec := httptest.NewRecorder()
		CreateInvoice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("creates", func(t *testing.T) {
		stub := &stubInvoiceService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{"sales_order_id":"`+uuid.NewString()+`"}`))
		rec := httptest.NewRecorder()
		CreateInvoice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastInput.Total != nil {
			t.Fatalf("expected no total without one in the request, got %s", stub.lastInput.Total)
		}
	})

	t.Run("passes an explicit total through", func(t *testing.T) {
		stub := &stubInvoiceService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{"sales_order_id":"`+uuid.NewString()+`","total":150.25}`))
		rec := httptest.NewRecorder()
		CreateInvoice(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastInput.Total == nil || !stub.lastInput.Total.Equal(decimal.RequireFromString("150.25")) {
			t.Fatalf("expected total 150.25, got %v", stub.lastInput.Total)
		}
	})
}
