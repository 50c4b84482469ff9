package partners

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
)

type stubCustomerRepo struct {
	created    *models.Customer
	loaded     *models.Customer
	deleteRows int64
}

func (s *stubCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	s.created = customer
	return nil
}

func (s *stubCustomerRepo) List(ctx context.Context) ([]models.Customer, error) {
	return nil, nil
}

func (s *stubCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return s.loaded, nil
}

func (s *stubCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	return nil
}

func (s *stubCustomerRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.deleteRows, nil
}

type stubVendorRepo struct {
	created    *models.Vendor
	loaded     *models.Vendor
	deleteRows int64
}

func (s *stubVendorRepo) Create(ctx context.Context, vendor *models.Vendor) error {
	s.created = vendor
	return nil
}

func (s *stubVendorRepo) List(ctx context.Context) ([]models.Vendor, error) {
	return nil, nil
}

func (s *stubVendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	return s.loaded, nil
}

func (s *stubVendorRepo) Update(ctx context.Context, vendor *models.Vendor) error {
	return nil
}

func (s *stubVendorRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.deleteRows, nil
}

func TestCreateCustomerRequiresName(t *testing.T) {
	svc, err := NewService(&stubCustomerRepo{}, &stubVendorRepo{})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	_, err = svc.CreateCustomer(context.Background(), CustomerInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateCustomerPersists(t *testing.T) {
	repo := &stubCustomerRepo{}
	svc, _ := NewService(repo, &stubVendorRepo{})

	email := "warung@example.com"
	customer, err := svc.CreateCustomer(context.Background(), CustomerInput{Name: "Warung Sari", Email: &email})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if repo.created != customer || customer.Name != "Warung Sari" {
		t.Fatalf("unexpected customer %+v", customer)
	}
}

func TestGetVendorNotFound(t *testing.T) {
	svc, _ := NewService(&stubCustomerRepo{}, &stubVendorRepo{})

	_, err := svc.GetVendor(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateVendorRewritesContactFields(t *testing.T) {
	id := uuid.New()
	old := "Old Person"
	repo := &stubVendorRepo{loaded: &models.Vendor{ID: id, Name: "Supplier A", ContactPerson: &old}}
	svc, _ := NewService(&stubCustomerRepo{}, repo)

	contact := "New Person"
	vendor, err := svc.UpdateVendor(context.Background(), id, VendorInput{Name: "Supplier A", ContactPerson: &contact})
	if err != nil {
		t.Fatalf("update vendor: %v", err)
	}
	if vendor.ContactPerson == nil || *vendor.ContactPerson != "New Person" {
		t.Fatalf("unexpected contact %+v", vendor.ContactPerson)
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	svc, _ := NewService(&stubCustomerRepo{deleteRows: 0}, &stubVendorRepo{})

	err := svc.DeleteCustomer(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
