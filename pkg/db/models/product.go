package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Product is the catalog listing referenced by wishlist items.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Title         types.Localized  `gorm:"embedded;embeddedPrefix:title_"`
	Slug          string           `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	SKU           string           `gorm:"column:sku;not null"`
	Images        types.StringList `gorm:"column:images;type:jsonb;not null"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	OriginalPrice decimal.Decimal  `gorm:"column:original_price;type:numeric(12,2);not null"`
	Discount      decimal.Decimal  `gorm:"column:discount;type:numeric(5,2);not null"`
	IsActive      bool             `gorm:"column:is_active;not null"`
	StockCount    int              `gorm:"column:stock_count;not null"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// HasVariant reports whether variantID belongs to the product.
func (p Product) HasVariant(variantID uuid.UUID) bool {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return true
		}
	}
	return false
}

// ProductVariant is a purchasable option (size, color) of a product.
type ProductVariant struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID  uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index:product_variants_product_id_idx"`
	Title      string          `gorm:"column:title;not null"`
	SKU        string          `gorm:"column:sku;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	StockCount int             `gorm:"column:stock_count;not null"`
}

func (v *ProductVariant) BeforeCreate(*gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
