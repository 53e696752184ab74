package product

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the read-mostly product lookup used by the storefront.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

type repositoryImpl struct {
	db     *gorm.DB
	client *db.Client
}

// NewRepository returns a product repository bound to the provided database.
func NewRepository(conn *gorm.DB) Repository {
	return &repositoryImpl{db: conn, client: db.Wrap(conn)}
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", orderVariants).
		Where("id = ?", id).
		First(&product).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", orderVariants).
		Where("id IN ?", ids).
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts the product and its variants in one transaction.
func (r *repositoryImpl) Create(ctx context.Context, product *models.Product) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
}

func orderVariants(q *gorm.DB) *gorm.DB {
	return q.Order("sku ASC")
}
