package address

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for addresses. Every lookup is
// scoped to the owning customer.
type Repository interface {
	Create(ctx context.Context, address *models.Address) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Address, error)
	FindOwned(ctx context.Context, customerID, addressID uuid.UUID) (*models.Address, error)
	Save(ctx context.Context, address *models.Address) error
	DeleteOwned(ctx context.Context, customerID, addressID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an address repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *repositoryImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&addresses).
		Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *repositoryImpl) FindOwned(ctx context.Context, customerID, addressID uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		First(&address).
		Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *repositoryImpl) Save(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *repositoryImpl) DeleteOwned(ctx context.Context, customerID, addressID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		Delete(&models.Address{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
