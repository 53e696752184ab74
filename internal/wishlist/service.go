package wishlist

import (
	"context"
	"errors"

	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

const (
	msgWishlistNotFound = "Wishlist not found"
	msgItemNotFound     = "Item not found in wishlist"
	msgProductNotFound  = "Product not found"
	msgVariantNotFound  = "Variant not found"
	msgAlreadyPresent   = "Product already in wishlist"
)

// CartAdder receives items moved out of a wishlist.
type CartAdder interface {
	AddToCart(ctx context.Context, customerID uuid.UUID, item CartItem) error
}

// LoggingCartAdder records the hand-off and does nothing else. It stands in
// until a cart service is wired.
type LoggingCartAdder struct {
	Logger *logger.Logger
}

func (a LoggingCartAdder) AddToCart(ctx context.Context, customerID uuid.UUID, item CartItem) error {
	if a.Logger == nil {
		return nil
	}
	ctx = a.Logger.WithFields(ctx, map[string]any{
		"customer_id": customerID.String(),
		"product_id":  item.ProductID.String(),
		"quantity":    item.Quantity,
	})
	a.Logger.Info(ctx, "wishlist.move_to_cart")
	return nil
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo                   Repository
	Products               product.Repository
	Cart                   CartAdder
	RejectInactiveProducts bool
}

// Service exposes business rules for wishlist management.
type Service interface {
	Get(ctx context.Context, customerID uuid.UUID) (*WishlistDTO, error)
	AddItem(ctx context.Context, customerID uuid.UUID, input AddItemInput) (WishlistDTO, error)
	RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (WishlistDTO, error)
	Clear(ctx context.Context, customerID uuid.UUID) (WishlistDTO, error)
	Contains(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	Count(ctx context.Context, customerID uuid.UUID) (int64, error)
	MoveToCart(ctx context.Context, customerID, productID uuid.UUID) (WishlistDTO, error)
}

type service struct {
	repo           Repository
	products       product.Repository
	cart           CartAdder
	rejectInactive bool
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	cart := params.Cart
	if cart == nil {
		cart = LoggingCartAdder{}
	}
	return &service{
		repo:           params.Repo,
		products:       params.Products,
		cart:           cart,
		rejectInactive: params.RejectInactiveProducts,
	}, nil
}

// Get returns nil when the customer has no active wishlist.
func (s *service) Get(ctx context.Context, customerID uuid.UUID) (*WishlistDTO, error) {
	wishlist, err := s.repo.FindActive(ctx, customerID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	view, err := s.expand(ctx, *wishlist)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *service) AddItem(ctx context.Context, customerID uuid.UUID, input AddItemInput) (WishlistDTO, error) {
	if input.ProductID == uuid.Nil {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	p, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if db.IsNotFound(err) {
			return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msgProductNotFound)
		}
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if s.rejectInactive && !p.IsActive {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, msgProductNotFound)
	}
	if input.VariantID != nil && !p.HasVariant(*input.VariantID) {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, msgVariantNotFound)
	}

	item := &models.WishlistItem{
		ProductID: input.ProductID,
		VariantID: input.VariantID,
		Quantity:  quantity,
	}
	if err := s.repo.AddItem(ctx, customerID, item); err != nil {
		if errors.Is(err, ErrDuplicateItem) {
			return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, msgAlreadyPresent)
		}
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist item")
	}
	return s.refreshed(ctx, customerID)
}

// RemoveItem treats a product that is not in the wishlist as already removed.
func (s *service) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (WishlistDTO, error) {
	wishlist, err := s.active(ctx, customerID)
	if err != nil {
		return WishlistDTO{}, err
	}
	if err := s.repo.RemoveItem(ctx, wishlist.ID, productID); err != nil {
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	return s.refreshed(ctx, customerID)
}

func (s *service) Clear(ctx context.Context, customerID uuid.UUID) (WishlistDTO, error) {
	wishlist, err := s.active(ctx, customerID)
	if err != nil {
		return WishlistDTO{}, err
	}
	if err := s.repo.ClearItems(ctx, wishlist.ID); err != nil {
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear wishlist")
	}
	wishlist.Items = nil
	return toDTO(*wishlist, nil), nil
}

func (s *service) Contains(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	ok, err := s.repo.Contains(ctx, customerID, productID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wishlist")
	}
	return ok, nil
}

func (s *service) Count(ctx context.Context, customerID uuid.UUID) (int64, error) {
	count, err := s.repo.CountItems(ctx, customerID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count wishlist items")
	}
	return count, nil
}

// MoveToCart hands the item to the cart first and only then removes it, so a
// cart failure leaves the wishlist untouched.
func (s *service) MoveToCart(ctx context.Context, customerID, productID uuid.UUID) (WishlistDTO, error) {
	wishlist, err := s.active(ctx, customerID)
	if err != nil {
		return WishlistDTO{}, err
	}
	item, err := s.repo.FindItem(ctx, wishlist.ID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msgItemNotFound)
		}
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist item")
	}

	if err := s.cart.AddToCart(ctx, customerID, CartItem{
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
	}); err != nil {
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add item to cart")
	}

	if err := s.repo.RemoveItem(ctx, wishlist.ID, productID); err != nil {
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	return s.refreshed(ctx, customerID)
}

func (s *service) active(ctx context.Context, customerID uuid.UUID) (*models.Wishlist, error) {
	wishlist, err := s.repo.FindActive(ctx, customerID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msgWishlistNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return wishlist, nil
}

func (s *service) refreshed(ctx context.Context, customerID uuid.UUID) (WishlistDTO, error) {
	wishlist, err := s.active(ctx, customerID)
	if err != nil {
		return WishlistDTO{}, err
	}
	return s.expand(ctx, *wishlist)
}

// expand resolves every item's product in one query.
func (s *service) expand(ctx context.Context, wishlist models.Wishlist) (WishlistDTO, error) {
	ids := make([]uuid.UUID, 0, len(wishlist.Items))
	for _, item := range wishlist.Items {
		ids = append(ids, item.ProductID)
	}
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist products")
	}
	resolved := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		resolved[p.ID] = p
	}
	return toDTO(wishlist, resolved), nil
}
