package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/internal/stock"
	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/refcode"
)

// DeliveryService defines delivery document operations.
type DeliveryService interface {
	Create(ctx context.Context, salesOrderID uuid.UUID) (*models.Delivery, error)
	List(ctx context.Context) ([]models.Delivery, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	// UpdateStatus moves the delivery to the requested status. The
	// transition to Shipped decrements stock for every line of the linked
	// sales order and marks the order Sent; repeating it is a no-op.
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DeliveryStatus) (*models.Delivery, error)
}

type deliveryService struct {
	deliveries DeliveryRepository
	orders     Repository
	tx         txRunner
	ledger     stock.Ledger
	codes      *refcode.Generator
}

// NewDeliveryService builds a delivery service with the required
// dependencies.
func NewDeliveryService(deliveries DeliveryRepository, orders Repository, tx txRunner, ledger stock.Ledger, codes *refcode.Generator) (DeliveryService, error) {
	if deliveries == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code generator required")
	}
	return &deliveryService{
		deliveries: deliveries,
		orders:     orders,
		tx:         tx,
		ledger:     ledger,
		codes:      codes,
	}, nil
}

func (s *deliveryService) Create(ctx context.Context, salesOrderID uuid.UUID) (*models.Delivery, error) {
	if salesOrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales order id required")
	}

	order, err := s.orders.GetByID(ctx, salesOrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sales order not found")
	}

	delivery := &models.Delivery{
		Code:         s.codes.New(refcode.PrefixDelivery),
		SalesOrderID: salesOrderID,
		Status:       enums.DeliveryStatusDraft,
	}
	if err := s.deliveries.Create(ctx, delivery); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery")
	}
	return delivery, nil
}

func (s *deliveryService) List(ctx context.Context) ([]models.Delivery, error) {
	deliveries, err := s.deliveries.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list deliveries")
	}
	return deliveries, nil
}

func (s *deliveryService) Get(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery id required")
	}
	delivery, err := s.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery")
	}
	if delivery == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
	}
	return delivery, nil
}

func (s *deliveryService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DeliveryStatus) (*models.Delivery, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid delivery status %q", status))
	}

	var result *models.Delivery
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		deliveries := s.deliveries.WithTx(tx)
		orders := s.orders.WithTx(tx)

		if status != enums.DeliveryStatusShipped {
			rows, err := deliveries.UpdateStatus(ctx, id, status)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery status")
			}
			if rows == 0 {
				return pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
			}
			result, err = deliveries.GetByID(ctx, id)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload delivery")
			}
			return nil
		}

		claimed, err := deliveries.ClaimShip(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim delivery shipment")
		}

		delivery, err := deliveries.GetByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload delivery")
		}
		if delivery == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
		}
		result = delivery

		// Lost the claim: another request already shipped this delivery
		// and applied the stock effect.
		if claimed == 0 {
			return nil
		}

		items, err := orders.ListItems(ctx, delivery.SalesOrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales order items")
		}
		for _, item := range items {
			if err := s.ledger.Adjust(ctx, tx, item.ProductID, item.Qty.Neg()); err != nil {
				return err
			}
		}

		if err := orders.UpdateStatus(ctx, delivery.SalesOrderID, OrderStatusSent); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark sales order sent")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
