package address

import (
	"context"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/google/uuid"
)

const msgNotFound = "Address not found"

// Service exposes customer address management.
type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, fields Fields) (AddressDTO, error)
	List(ctx context.Context, customerID uuid.UUID) ([]AddressDTO, error)
	Update(ctx context.Context, customerID, addressID uuid.UUID, patch Patch) (AddressDTO, error)
	Delete(ctx context.Context, customerID, addressID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds an address service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, customerID uuid.UUID, fields Fields) (AddressDTO, error) {
	if customerID == uuid.Nil {
		return AddressDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer id is required")
	}

	record := models.Address{
		CustomerID: customerID,
		FirstName:  strings.TrimSpace(fields.FirstName),
		LastName:   strings.TrimSpace(fields.LastName),
		Address:    strings.TrimSpace(fields.Address),
		City:       strings.TrimSpace(fields.City),
		State:      strings.TrimSpace(fields.State),
		ZipCode:    strings.TrimSpace(fields.ZipCode),
	}
	if missing := missingFields(record); len(missing) > 0 {
		return AddressDTO{}, missingErr(missing)
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return AddressDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	return toDTO(record), nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID) ([]AddressDTO, error) {
	records, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	out := make([]AddressDTO, 0, len(records))
	for _, record := range records {
		out = append(out, toDTO(record))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, customerID, addressID uuid.UUID, patch Patch) (AddressDTO, error) {
	record, err := s.findOwned(ctx, customerID, addressID)
	if err != nil {
		return AddressDTO{}, err
	}

	var empty []string
	apply := func(name string, value *string, target *string) {
		if value == nil {
			return
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			empty = append(empty, name)
			return
		}
		*target = trimmed
	}
	apply("firstName", patch.FirstName, &record.FirstName)
	apply("lastName", patch.LastName, &record.LastName)
	apply("address", patch.Address, &record.Address)
	apply("city", patch.City, &record.City)
	apply("state", patch.State, &record.State)
	apply("zipCode", patch.ZipCode, &record.ZipCode)
	if len(empty) > 0 {
		return AddressDTO{}, missingErr(empty)
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return AddressDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update address")
	}
	return toDTO(*record), nil
}

func (s *service) Delete(ctx context.Context, customerID, addressID uuid.UUID) error {
	deleted, err := s.repo.DeleteOwned(ctx, customerID, addressID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, customerID, addressID uuid.UUID) (*models.Address, error) {
	record, err := s.repo.FindOwned(ctx, customerID, addressID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msgNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	return record, nil
}

// missingFields lists blank required fields by json name in declaration order.
func missingFields(a models.Address) []string {
	checks := []struct {
		name  string
		value string
	}{
		{"firstName", a.FirstName},
		{"lastName", a.LastName},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
	}
	var missing []string
	for _, c := range checks {
		if c.value == "" {
			missing = append(missing, c.name)
		}
	}
	return missing
}

func missingErr(fields []string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "All fields are required").
		WithDetails(map[string]any{"missing": fields})
}
