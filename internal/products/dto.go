package product

import (
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the display projection shared by product reads and wishlist items.
type ProductDTO struct {
	ID            uuid.UUID           `json:"id"`
	Title         types.Localized     `json:"title"`
	Slug          string              `json:"slug"`
	SKU           string              `json:"sku"`
	Images        []string            `json:"images"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.Decimal     `json:"originalPrice"`
	Discount      decimal.Decimal     `json:"discount"`
	IsActive      bool                `json:"isActive"`
	StockCount    int                 `json:"stockCount"`
	Variants      []ProductVariantDTO `json:"variants"`
}

// ProductVariantDTO exposes a purchasable variant.
type ProductVariantDTO struct {
	ID         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	StockCount int             `json:"stockCount"`
}

// CreateInput is the admin payload for adding a catalog product.
type CreateInput struct {
	Title         types.Localized      `json:"title"`
	Slug          string               `json:"slug"`
	SKU           string               `json:"sku"`
	Images        []string             `json:"images"`
	Price         *decimal.Decimal     `json:"price"`
	OriginalPrice *decimal.Decimal     `json:"originalPrice"`
	Discount      *decimal.Decimal     `json:"discount"`
	IsActive      *bool                `json:"isActive"`
	StockCount    int                  `json:"stockCount"`
	Variants      []CreateVariantInput `json:"variants"`
}

// CreateVariantInput describes one variant of a new product.
type CreateVariantInput struct {
	Title      string          `json:"title"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	StockCount int             `json:"stockCount"`
}

// ToDTO projects a product model for API responses.
func ToDTO(p models.Product) ProductDTO {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	variants := make([]ProductVariantDTO, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, ProductVariantDTO{
			ID:         v.ID,
			Title:      v.Title,
			SKU:        v.SKU,
			Price:      v.Price,
			StockCount: v.StockCount,
		})
	}
	return ProductDTO{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		SKU:           p.SKU,
		Images:        images,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		IsActive:      p.IsActive,
		StockCount:    p.StockCount,
		Variants:      variants,
	}
}
