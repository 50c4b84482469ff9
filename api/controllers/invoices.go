package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/api/responses"
	"github.com/dapursupply/erp-backend/api/validators"
	"github.com/dapursupply/erp-backend/internal/invoice"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/logger"
)

type createInvoiceRequest struct {
	SalesOrderID string           `json:"sales_order_id" validate:"required"`
	Total        *decimal.Decimal `json:"total,omitempty"`
}

func (req createInvoiceRequest) toInput() (invoice.CreateInput, error) {
	salesOrderID, err := uuid.Parse(req.SalesOrderID)
	if err != nil {
		return invoice.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sales_order_id")
	}
	return invoice.CreateInput{
		SalesOrderID: salesOrderID,
		Total:        req.Total,
	}, nil
}

// CreateInvoice bills a sales order, defaulting the amount to the order total
// when the request carries none. A sales order carries at most one invoice;
// a second attempt conflicts.
func CreateInvoice(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createInvoiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ListInvoices(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoices, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoices)
	}
}

func GetInvoice(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func UpdateInvoiceStatus(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload statusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseInvoiceStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// FinanceSummary nets paid invoice income against received purchase spend.
func FinanceSummary(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.FinanceSummary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
