package wishlist

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateItem is returned when the product is already in the wishlist.
var ErrDuplicateItem = errors.New("wishlist item already exists")

var (
	activeWishlistConstraint = []string{"wishlists_active_customer_key", "wishlists.customer_id"}
	itemConstraint           = []string{"wishlist_items_wishlist_product_key", "wishlist_items.product_id"}
)

// Repository encapsulates wishlist persistence.
type Repository interface {
	FindActive(ctx context.Context, customerID uuid.UUID) (*models.Wishlist, error)
	AddItem(ctx context.Context, customerID uuid.UUID, item *models.WishlistItem) error
	FindItem(ctx context.Context, wishlistID, productID uuid.UUID) (*models.WishlistItem, error)
	RemoveItem(ctx context.Context, wishlistID, productID uuid.UUID) error
	ClearItems(ctx context.Context, wishlistID uuid.UUID) error
	CountItems(ctx context.Context, customerID uuid.UUID) (int64, error)
	Contains(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	db     *gorm.DB
	client *db.Client
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(conn *gorm.DB) Repository {
	return &repositoryImpl{db: conn, client: db.Wrap(conn)}
}

// FindActive loads the customer's active wishlist with items oldest first.
func (r *repositoryImpl) FindActive(ctx context.Context, customerID uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Items", func(q *gorm.DB) *gorm.DB {
			return q.Order("added_at ASC, id ASC")
		}).
		Where("customer_id = ? AND is_active = ?", customerID, true).
		First(&wishlist).
		Error
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// AddItem appends item to the customer's active wishlist, creating the
// wishlist first when there is none. A concurrent creation of the wishlist is
// resolved by re-reading the winner's row; duplicate items yield
// ErrDuplicateItem.
func (r *repositoryImpl) AddItem(ctx context.Context, customerID uuid.UUID, item *models.WishlistItem) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		wishlistID, err := activeWishlistID(tx, customerID)
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.WishlistItem{}).
			Where("wishlist_id = ? AND product_id = ?", wishlistID, item.ProductID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateItem
		}

		item.WishlistID = wishlistID
		if err := tx.Create(item).Error; err != nil {
			if db.IsUniqueViolation(err, itemConstraint...) {
				return ErrDuplicateItem
			}
			return err
		}
		return tx.Model(&models.Wishlist{}).Where("id = ?", wishlistID).Update("updated_at", db.NowUTC()).Error
	})
}

func activeWishlistID(tx *gorm.DB, customerID uuid.UUID) (uuid.UUID, error) {
	var wishlist models.Wishlist
	err := tx.Where("customer_id = ? AND is_active = ?", customerID, true).First(&wishlist).Error
	if err == nil {
		return wishlist.ID, nil
	}
	if !db.IsNotFound(err) {
		return uuid.Nil, err
	}

	wishlist = models.Wishlist{CustomerID: customerID, IsActive: true}
	err = tx.Transaction(func(sp *gorm.DB) error {
		return sp.Create(&wishlist).Error
	})
	if err == nil {
		return wishlist.ID, nil
	}
	if !db.IsUniqueViolation(err, activeWishlistConstraint...) {
		return uuid.Nil, err
	}

	var winner models.Wishlist
	if err := tx.Where("customer_id = ? AND is_active = ?", customerID, true).First(&winner).Error; err != nil {
		return uuid.Nil, err
	}
	return winner.ID, nil
}

func (r *repositoryImpl) FindItem(ctx context.Context, wishlistID, productID uuid.UUID) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		First(&item).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes the entry if present; a missing entry is not an error.
func (r *repositoryImpl) RemoveItem(ctx context.Context, wishlistID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

// ClearItems empties the wishlist and keeps the wishlist row.
func (r *repositoryImpl) ClearItems(ctx context.Context, wishlistID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Delete(&models.WishlistItem{}).
		Error
}

func (r *repositoryImpl) CountItems(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.activeItems(ctx, customerID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repositoryImpl) Contains(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.activeItems(ctx, customerID).
		Where("wishlist_items.product_id = ?", productID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) activeItems(ctx context.Context, customerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Joins("JOIN wishlists ON wishlists.id = wishlist_items.wishlist_id").
		Where("wishlists.customer_id = ? AND wishlists.is_active = ?", customerID, true)
}
