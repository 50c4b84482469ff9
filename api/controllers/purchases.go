package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/api/responses"
	"github.com/dapursupply/erp-backend/api/validators"
	"github.com/dapursupply/erp-backend/internal/purchase"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/logger"
)

type purchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Qty       decimal.Decimal `json:"qty"`
	Cost      decimal.Decimal `json:"cost"`
}

type purchaseRequest struct {
	VendorID string                `json:"vendor_id" validate:"required"`
	Status   string                `json:"status,omitempty"`
	Items    []purchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (p purchaseRequest) parse() (uuid.UUID, enums.PurchaseStatus, []purchase.ItemInput, error) {
	vendorID, err := uuid.Parse(p.VendorID)
	if err != nil {
		return uuid.Nil, "", nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor_id")
	}

	var status enums.PurchaseStatus
	if raw := strings.TrimSpace(p.Status); raw != "" {
		status, err = enums.ParsePurchaseStatus(raw)
		if err != nil {
			return uuid.Nil, "", nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
	}

	items := make([]purchase.ItemInput, 0, len(p.Items))
	for _, item := range p.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return uuid.Nil, "", nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item product_id")
		}
		items = append(items, purchase.ItemInput{ProductID: productID, Qty: item.Qty, Cost: item.Cost})
	}

	return vendorID, status, items, nil
}

// CreatePurchaseOrder creates a purchase order. Creating it directly in the
// Received state books the stock effect in the same transaction.
func CreatePurchaseOrder(svc purchase.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload purchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendorID, status, items, err := payload.parse()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), purchase.CreateInput{
			VendorID: vendorID,
			Status:   status,
			Items:    items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// UpdatePurchaseOrder rewrites an order that has not been received yet.
// Moving it to Received books the stock effect; a received order rejects
// further edits.
func UpdatePurchaseOrder(svc purchase.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload purchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendorID, status, items, err := payload.parse()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if status == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "status is required"))
			return
		}

		order, err := svc.Update(r.Context(), purchase.UpdateInput{
			ID:       id,
			VendorID: vendorID,
			Status:   status,
			Items:    items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func ListPurchaseOrders(svc purchase.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

func GetPurchaseOrder(svc purchase.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func ListPurchaseItems(svc purchase.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Items(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
