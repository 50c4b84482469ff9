package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/api/responses"
	"github.com/dapursupply/erp-backend/api/validators"
	"github.com/dapursupply/erp-backend/internal/bom"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/logger"
)

type bomItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Qty       decimal.Decimal `json:"qty"`
}

type createBOMRequest struct {
	Name      string           `json:"name" validate:"required"`
	ProductID string           `json:"product_id" validate:"required"`
	Items     []bomItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (c createBOMRequest) toInput() (bom.CreateBOMInput, error) {
	productID, err := uuid.Parse(c.ProductID)
	if err != nil {
		return bom.CreateBOMInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_id")
	}

	items := make([]bom.BOMItemInput, 0, len(c.Items))
	for _, item := range c.Items {
		itemProductID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return bom.CreateBOMInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item product_id")
		}
		items = append(items, bom.BOMItemInput{ProductID: itemProductID, Qty: item.Qty})
	}

	return bom.CreateBOMInput{
		Name:      strings.TrimSpace(c.Name),
		ProductID: productID,
		Items:     items,
	}, nil
}

func CreateBOM(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBOMRequest
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

func ListBOMs(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boms, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, boms)
	}
}

func GetBOM(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
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
