package product

import (
	"context"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/slug"
	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const msgNotFound = "Product not found"

var hundred = decimal.NewFromInt(100)

// Service exposes product reads and the admin create path.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (ProductDTO, error)
	Create(ctx context.Context, input CreateInput) (ProductDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a product service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msgNotFound)
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return ToDTO(*product), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (ProductDTO, error) {
	product, err := buildProduct(input)
	if err != nil {
		return ProductDTO{}, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "products_slug_key", "products.slug") {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Product with this slug already exists")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return ToDTO(*product), nil
}

func buildProduct(input CreateInput) (*models.Product, error) {
	title := input.Title.Trimmed()
	sku := strings.TrimSpace(input.SKU)

	var missing []string
	if title.IsZero() {
		missing = append(missing, "title.en")
	}
	if sku == "" {
		missing = append(missing, "sku")
	}
	if input.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Missing required product fields").
			WithDetails(map[string]any{"missing": missing})
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.StockCount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stockCount must not be negative")
	}

	productSlug := slug.Make(input.Slug)
	if productSlug == "" {
		productSlug = slug.Make(title.EN)
	}
	if productSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from title")
	}

	original := *input.Price
	if input.OriginalPrice != nil {
		original = *input.OriginalPrice
	}
	discount := decimal.Zero
	if input.Discount != nil {
		discount = *input.Discount
	}
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	variants := make([]models.ProductVariant, 0, len(input.Variants))
	for i, v := range input.Variants {
		vTitle := strings.TrimSpace(v.Title)
		vSKU := strings.TrimSpace(v.SKU)
		if vTitle == "" || vSKU == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant title and sku are required").
				WithDetails(map[string]any{"index": i})
		}
		variants = append(variants, models.ProductVariant{
			Title:      vTitle,
			SKU:        vSKU,
			Price:      v.Price,
			StockCount: v.StockCount,
		})
	}

	return &models.Product{
		Title:         title,
		Slug:          productSlug,
		SKU:           sku,
		Images:        types.StringList(input.Images).Clean(),
		Price:         *input.Price,
		OriginalPrice: original,
		Discount:      discount,
		IsActive:      active,
		StockCount:    input.StockCount,
		Variants:      variants,
	}, nil
}
