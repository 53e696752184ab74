package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/address"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type stubAddressService struct {
	createFn func(ctx context.Context, customerID uuid.UUID, fields address.Fields) (address.AddressDTO, error)
	listFn   func(ctx context.Context, customerID uuid.UUID) ([]address.AddressDTO, error)
	updateFn func(ctx context.Context, customerID, addressID uuid.UUID, patch address.Patch) (address.AddressDTO, error)
	deleteFn func(ctx context.Context, customerID, addressID uuid.UUID) error
}

func (s stubAddressService) Create(ctx context.Context, customerID uuid.UUID, fields address.Fields) (address.AddressDTO, error) {
	return s.createFn(ctx, customerID, fields)
}

func (s stubAddressService) List(ctx context.Context, customerID uuid.UUID) ([]address.AddressDTO, error) {
	return s.listFn(ctx, customerID)
}

func (s stubAddressService) Update(ctx context.Context, customerID, addressID uuid.UUID, patch address.Patch) (address.AddressDTO, error) {
	return s.updateFn(ctx, customerID, addressID, patch)
}

func (s stubAddressService) Delete(ctx context.Context, customerID, addressID uuid.UUID) error {
	return s.deleteFn(ctx, customerID, addressID)
}

func TestAddressCreate(t *testing.T) {
	customer := uuid.New()
	var got address.Fields
	svc := stubAddressService{createFn: func(_ context.Context, customerID uuid.UUID, fields address.Fields) (address.AddressDTO, error) {
		if customerID != customer {
			t.Fatalf("unexpected customer %s", customerID)
		}
		got = fields
		return address.AddressDTO{ID: uuid.New(), CustomerID: customerID, City: fields.City}, nil
	}}

	body := `{"firstName":"Ada","lastName":"L","address":"1 Main","city":"Austin","state":"TX","zipCode":"78701"}`
	rec := httptest.NewRecorder()
	AddressCreate(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/address", strings.NewReader(body), customer, nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", rec.Code, rec.Body.String())
	}
	out := decodeBody(t, rec)
	if out["message"] != "Address added successfully" {
		t.Fatalf("unexpected message %v", out["message"])
	}
	addr, ok := out["address"].(map[string]any)
	if !ok || addr["city"] != "Austin" {
		t.Fatalf("unexpected address %v", out["address"])
	}
	if got.ZipCode != "78701" {
		t.Fatalf("zip not decoded: %+v", got)
	}
}

func TestAddressCreateRequiresActor(t *testing.T) {
	svc := stubAddressService{}
	rec := httptest.NewRecorder()
	AddressCreate(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/address", strings.NewReader(`{}`), uuid.Nil, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAddressCreateRejectsUnknownFields(t *testing.T) {
	svc := stubAddressService{}
	rec := httptest.NewRecorder()
	AddressCreate(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/address", strings.NewReader(`{"customerId":"x"}`), uuid.New(), nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAddressListReturnsArray(t *testing.T) {
	svc := stubAddressService{listFn: func(context.Context, uuid.UUID) ([]address.AddressDTO, error) {
		return []address.AddressDTO{}, nil
	}}
	rec := httptest.NewRecorder()
	AddressList(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, "/api/address", nil, uuid.New(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAddressUpdateNotFound(t *testing.T) {
	svc := stubAddressService{updateFn: func(context.Context, uuid.UUID, uuid.UUID, address.Patch) (address.AddressDTO, error) {
		return address.AddressDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "Address not found")
	}}
	id := uuid.New()
	rec := httptest.NewRecorder()
	req := newRequest(http.MethodPut, "/api/address/"+id.String(), strings.NewReader(`{"city":"Dallas"}`), uuid.New(), map[string]string{"id": id.String()})
	AddressUpdate(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	out := decodeBody(t, rec)
	if out["message"] != "Address not found" || out["success"] != false {
		t.Fatalf("unexpected envelope %v", out)
	}
}

func TestAddressUpdateInvalidID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := newRequest(http.MethodPut, "/api/address/nope", strings.NewReader(`{}`), uuid.New(), map[string]string{"id": "nope"})
	AddressUpdate(stubAddressService{}, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAddressDelete(t *testing.T) {
	id := uuid.New()
	var deleted uuid.UUID
	svc := stubAddressService{deleteFn: func(_ context.Context, _ uuid.UUID, addressID uuid.UUID) error {
		deleted = addressID
		return nil
	}}
	rec := httptest.NewRecorder()
	AddressDelete(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodDelete, "/api/address/"+id.String(), nil, uuid.New(), map[string]string{"id": id.String()}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if deleted != id {
		t.Fatalf("expected delete of %s got %s", id, deleted)
	}
	if decodeBody(t, rec)["message"] != "Address deleted successfully" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
