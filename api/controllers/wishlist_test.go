package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/wishlist"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type stubWishlistService struct {
	wishlist.Service
	getFn      func(ctx context.Context, customerID uuid.UUID) (*wishlist.WishlistDTO, error)
	addFn      func(ctx context.Context, customerID uuid.UUID, input wishlist.AddItemInput) (wishlist.WishlistDTO, error)
	removeFn   func(ctx context.Context, customerID, productID uuid.UUID) (wishlist.WishlistDTO, error)
	clearFn    func(ctx context.Context, customerID uuid.UUID) (wishlist.WishlistDTO, error)
	containsFn func(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	countFn    func(ctx context.Context, customerID uuid.UUID) (int64, error)
	moveFn     func(ctx context.Context, customerID, productID uuid.UUID) (wishlist.WishlistDTO, error)
}

func (s stubWishlistService) Get(ctx context.Context, customerID uuid.UUID) (*wishlist.WishlistDTO, error) {
	return s.getFn(ctx, customerID)
}

func (s stubWishlistService) AddItem(ctx context.Context, customerID uuid.UUID, input wishlist.AddItemInput) (wishlist.WishlistDTO, error) {
	return s.addFn(ctx, customerID, input)
}

func (s stubWishlistService) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (wishlist.WishlistDTO, error) {
	return s.removeFn(ctx, customerID, productID)
}

func (s stubWishlistService) Clear(ctx context.Context, customerID uuid.UUID) (wishlist.WishlistDTO, error) {
	return s.clearFn(ctx, customerID)
}

func (s stubWishlistService) Contains(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	return s.containsFn(ctx, customerID, productID)
}

func (s stubWishlistService) Count(ctx context.Context, customerID uuid.UUID) (int64, error) {
	return s.countFn(ctx, customerID)
}

func (s stubWishlistService) MoveToCart(ctx context.Context, customerID, productID uuid.UUID) (wishlist.WishlistDTO, error) {
	return s.moveFn(ctx, customerID, productID)
}

func TestWishlistGetEmpty(t *testing.T) {
	svc := stubWishlistService{getFn: func(context.Context, uuid.UUID) (*wishlist.WishlistDTO, error) {
		return nil, nil
	}}
	rec := httptest.NewRecorder()
	WishlistGet(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, "/api/wishlist", nil, uuid.New(), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	out := decodeBody(t, rec)
	if out["success"] != true || out["message"] != "Wishlist is empty" {
		t.Fatalf("unexpected body %v", out)
	}
	items := out["wishlist"].(map[string]any)["items"].([]any)
	if len(items) != 0 {
		t.Fatalf("expected no items, got %v", items)
	}
}

func TestWishlistGetExisting(t *testing.T) {
	customer := uuid.New()
	svc := stubWishlistService{getFn: func(_ context.Context, customerID uuid.UUID) (*wishlist.WishlistDTO, error) {
		return &wishlist.WishlistDTO{ID: uuid.New(), CustomerID: customerID, IsActive: true, Items: []wishlist.ItemDTO{}}, nil
	}}
	rec := httptest.NewRecorder()
	WishlistGet(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, "/api/wishlist", nil, customer, nil))

	out := decodeBody(t, rec)
	if _, ok := out["message"]; ok {
		t.Fatalf("message only accompanies the empty shell: %v", out)
	}
	if out["wishlist"].(map[string]any)["customer"] != customer.String() {
		t.Fatalf("unexpected wishlist %v", out["wishlist"])
	}
}

func TestWishlistAdd(t *testing.T) {
	product := uuid.New()
	svc := stubWishlistService{addFn: func(_ context.Context, _ uuid.UUID, input wishlist.AddItemInput) (wishlist.WishlistDTO, error) {
		if input.ProductID != product || input.Quantity != 2 {
			t.Fatalf("unexpected input %+v", input)
		}
		return wishlist.WishlistDTO{Items: []wishlist.ItemDTO{{Quantity: 2}}}, nil
	}}
	body := `{"productId":"` + product.String() + `","quantity":2}`
	rec := httptest.NewRecorder()
	WishlistAdd(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/wishlist/add", strings.NewReader(body), uuid.New(), nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["message"] != "Product added to wishlist" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestWishlistAddRequiresProduct(t *testing.T) {
	rec := httptest.NewRecorder()
	WishlistAdd(stubWishlistService{}, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/wishlist/add", strings.NewReader(`{"quantity":1}`), uuid.New(), nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	details := decodeBody(t, rec)["details"].(map[string]any)
	if details["productId"] != "is required" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestWishlistAddDuplicate(t *testing.T) {
	svc := stubWishlistService{addFn: func(context.Context, uuid.UUID, wishlist.AddItemInput) (wishlist.WishlistDTO, error) {
		return wishlist.WishlistDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "Product already in wishlist")
	}}
	body := `{"productId":"` + uuid.NewString() + `"}`
	rec := httptest.NewRecorder()
	WishlistAdd(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/wishlist/add", strings.NewReader(body), uuid.New(), nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestWishlistRemoveAndClear(t *testing.T) {
	product := uuid.New()
	svc := stubWishlistService{
		removeFn: func(_ context.Context, _ uuid.UUID, productID uuid.UUID) (wishlist.WishlistDTO, error) {
			if productID != product {
				t.Fatalf("unexpected product %s", productID)
			}
			return wishlist.WishlistDTO{Items: []wishlist.ItemDTO{}}, nil
		},
		clearFn: func(context.Context, uuid.UUID) (wishlist.WishlistDTO, error) {
			return wishlist.WishlistDTO{Items: []wishlist.ItemDTO{}}, nil
		},
	}

	rec := httptest.NewRecorder()
	WishlistRemove(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodDelete, "/api/wishlist/remove/"+product.String(), nil, uuid.New(), map[string]string{"productId": product.String()}))
	if decodeBody(t, rec)["message"] != "Product removed from wishlist" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	WishlistClear(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodDelete, "/api/wishlist/clear", nil, uuid.New(), nil))
	if decodeBody(t, rec)["message"] != "Wishlist cleared successfully" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestWishlistMoveToCartFailure(t *testing.T) {
	product := uuid.New()
	svc := stubWishlistService{moveFn: func(context.Context, uuid.UUID, uuid.UUID) (wishlist.WishlistDTO, error) {
		return wishlist.WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("cart down"), "add to cart")
	}}
	rec := httptest.NewRecorder()
	WishlistMoveToCart(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/wishlist/move-to-cart/"+product.String(), nil, uuid.New(), map[string]string{"productId": product.String()}))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "cart down") {
		t.Fatalf("dependency detail leaked: %s", rec.Body.String())
	}
}

func TestWishlistMoveToCart(t *testing.T) {
	product := uuid.New()
	svc := stubWishlistService{moveFn: func(context.Context, uuid.UUID, uuid.UUID) (wishlist.WishlistDTO, error) {
		return wishlist.WishlistDTO{Items: []wishlist.ItemDTO{}}, nil
	}}
	rec := httptest.NewRecorder()
	WishlistMoveToCart(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/wishlist/move-to-cart/"+product.String(), nil, uuid.New(), map[string]string{"productId": product.String()}))
	if rec.Code != http.StatusOK || decodeBody(t, rec)["message"] != "Product moved to cart" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestWishlistCheckAndCount(t *testing.T) {
	product := uuid.New()
	svc := stubWishlistService{
		containsFn: func(context.Context, uuid.UUID, uuid.UUID) (bool, error) { return true, nil },
		countFn:    func(context.Context, uuid.UUID) (int64, error) { return 3, nil },
	}

	rec := httptest.NewRecorder()
	WishlistCheck(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, "/api/wishlist/check/"+product.String(), nil, uuid.New(), map[string]string{"productId": product.String()}))
	out := decodeBody(t, rec)
	if out["success"] != true || out["isInWishlist"] != true {
		t.Fatalf("unexpected body %v", out)
	}

	rec = httptest.NewRecorder()
	WishlistCount(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, "/api/wishlist/count", nil, uuid.New(), nil))
	if decodeBody(t, rec)["count"] != float64(3) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
