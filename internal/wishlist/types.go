package wishlist

import (
	"time"

	product "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
)

// AddItemInput is the body of POST /api/wishlist/add. A zero quantity means 1.
type AddItemInput struct {
	ProductID uuid.UUID  `json:"productId" validate:"required"`
	VariantID *uuid.UUID `json:"variantId"`
	Quantity  int        `json:"quantity" validate:"gte=0"`
}

// ItemDTO is one wishlist entry with its product expanded.
type ItemDTO struct {
	ID        uuid.UUID          `json:"id"`
	Product   product.ProductDTO `json:"product"`
	VariantID *uuid.UUID         `json:"variant"`
	Quantity  int                `json:"quantity"`
	AddedAt   time.Time          `json:"addedAt"`
}

// WishlistDTO is the expanded view returned by every wishlist operation.
type WishlistDTO struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer"`
	IsActive   bool      `json:"isActive"`
	Items      []ItemDTO `json:"items"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CartItem is what the wishlist hands to the cart on move-to-cart.
type CartItem struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// toDTO expands items with the resolved products. Items whose product is
// missing from resolved are left out of the view.
func toDTO(w models.Wishlist, resolved map[uuid.UUID]models.Product) WishlistDTO {
	items := make([]ItemDTO, 0, len(w.Items))
	for _, item := range w.Items {
		p, ok := resolved[item.ProductID]
		if !ok {
			continue
		}
		items = append(items, ItemDTO{
			ID:        item.ID,
			Product:   product.ToDTO(p),
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		})
	}
	return WishlistDTO{
		ID:         w.ID,
		CustomerID: w.CustomerID,
		IsActive:   w.IsActive,
		Items:      items,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}
