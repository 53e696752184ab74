package address

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepository struct {
	createFn      func(ctx context.Context, address *models.Address) error
	listFn        func(ctx context.Context, customerID uuid.UUID) ([]models.Address, error)
	findOwnedFn   func(ctx context.Context, customerID, addressID uuid.UUID) (*models.Address, error)
	saveFn        func(ctx context.Context, address *models.Address) error
	deleteOwnedFn func(ctx context.Context, customerID, addressID uuid.UUID) (bool, error)
}

func (f *fakeRepository) Create(ctx context.Context, address *models.Address) error {
	if f.createFn != nil {
		return f.createFn(ctx, address)
	}
	return nil
}

func (f *fakeRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Address, error) {
	if f.listFn != nil {
		return f.listFn(ctx, customerID)
	}
	return nil, nil
}

func (f *fakeRepository) FindOwned(ctx context.Context, customerID, addressID uuid.UUID) (*models.Address, error) {
	if f.findOwnedFn != nil {
		return f.findOwnedFn(ctx, customerID, addressID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) Save(ctx context.Context, address *models.Address) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, address)
	}
	return nil
}

func (f *fakeRepository) DeleteOwned(ctx context.Context, customerID, addressID uuid.UUID) (bool, error) {
	if f.deleteOwnedFn != nil {
		return f.deleteOwnedFn(ctx, customerID, addressID)
	}
	return false, nil
}

func newServiceWithRepo(repo Repository) Service {
	svc, _ := NewService(repo)
	return svc
}

func TestService_CreateReportsMissingFieldsInOrder(t *testing.T) {
	called := false
	svc := newServiceWithRepo(&fakeRepository{
		createFn: func(ctx context.Context, address *models.Address) error {
			called = true
			return nil
		},
	})

	_, err := svc.Create(context.Background(), uuid.New(), Fields{FirstName: "Ada", City: "   ", ZipCode: "1"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	want := []string{"lastName", "address", "city", "state"}
	if !reflect.DeepEqual(details["missing"], want) {
		t.Fatalf("expected missing %v got %v", want, details["missing"])
	}
	if called {
		t.Fatal("repository should not be called on validation failure")
	}
}

func TestService_CreateTrimsAndAssignsOwner(t *testing.T) {
	owner := uuid.New()
	var stored models.Address
	svc := newServiceWithRepo(&fakeRepository{
		createFn: func(ctx context.Context, address *models.Address) error {
			address.ID = uuid.New()
			stored = *address
			return nil
		},
	})

	dto, err := svc.Create(context.Background(), owner, Fields{
		FirstName: " Ada ", LastName: "Lovelace", Address: "12 St James Sq", City: "London", State: "LDN", ZipCode: " SW1Y ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.CustomerID != owner {
		t.Fatalf("expected owner %s got %s", owner, stored.CustomerID)
	}
	if dto.FirstName != "Ada" || dto.ZipCode != "SW1Y" {
		t.Fatalf("expected trimmed fields, got %+v", dto)
	}
}

func TestService_UpdateAppliesOnlyPresentFields(t *testing.T) {
	owner := uuid.New()
	existing := &models.Address{ID: uuid.New(), CustomerID: owner, FirstName: "Ada", LastName: "Lovelace", Address: "a", City: "London", State: "s", ZipCode: "z"}
	svc := newServiceWithRepo(&fakeRepository{
		findOwnedFn: func(ctx context.Context, customerID, addressID uuid.UUID) (*models.Address, error) {
			if customerID != owner {
				return nil, gorm.ErrRecordNotFound
			}
			return existing, nil
		},
	})

	city := " Paris "
	dto, err := svc.Update(context.Background(), owner, existing.ID, Patch{City: &city})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.City != "Paris" || dto.FirstName != "Ada" {
		t.Fatalf("unexpected update result %+v", dto)
	}

	blank := "  "
	_, err = svc.Update(context.Background(), owner, existing.ID, Patch{State: &blank})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank field, got %v", err)
	}
}

func TestService_ForeignAddressIsNotFound(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	city := "Paris"

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), Patch{City: &city})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Address not found" {
		t.Fatalf("expected not found, got %v", err)
	}

	err = svc.Delete(context.Background(), uuid.New(), uuid.New())
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on delete, got %v", err)
	}
}

func TestService_RepositoryFailuresAreDependencyErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := newServiceWithRepo(&fakeRepository{
		listFn: func(ctx context.Context, customerID uuid.UUID) ([]models.Address, error) {
			return nil, boom
		},
	})
	_, err := svc.List(context.Background(), uuid.New())
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected cause to be preserved")
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repo")
	}
}
