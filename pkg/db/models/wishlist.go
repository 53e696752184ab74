package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wishlist is a customer's saved-products list. At most one per customer is
// active at a time (partial unique index on customer_id where is_active).
type Wishlist struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID uuid.UUID      `gorm:"column:customer_id;type:uuid;not null;index:wishlists_active_customer_key,unique,where:is_active"`
	IsActive   bool           `gorm:"column:is_active;not null"`
	Items      []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (w *Wishlist) BeforeCreate(*gorm.DB) error {
	ensureID(&w.ID)
	return nil
}

// WishlistItem links a wishlist to a saved product.
type WishlistItem struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	WishlistID uuid.UUID  `gorm:"column:wishlist_id;type:uuid;not null;uniqueIndex:wishlist_items_wishlist_product_key"`
	ProductID  uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index:wishlist_items_product_id_idx;uniqueIndex:wishlist_items_wishlist_product_key"`
	VariantID  *uuid.UUID `gorm:"column:variant_id;type:uuid"`
	Quantity   int        `gorm:"column:quantity;not null"`
	AddedAt    time.Time  `gorm:"column:added_at;not null"`
}

func (i *WishlistItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	if i.AddedAt.IsZero() {
		i.AddedAt = time.Now().UTC()
	}
	return nil
}
