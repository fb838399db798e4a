package persistence

import (
	"context"
	"errors"

	"github.com/clothora/backend/internal/domain/cart"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID, including items
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByUserID finds the cart belonging to a user
func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&c, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save creates or updates a cart together with its items.
// Items removed from the aggregate are deleted from the database.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(c).Error; err != nil {
			return err
		}
		return syncCartItems(tx, c)
	})
}

// syncCartItems reconciles persisted cart items with the aggregate's items
func syncCartItems(tx *gorm.DB, c *cart.Cart) error {
	currentItemIDs := make([]uuid.UUID, len(c.Items))
	for i, item := range c.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("cart_id = ? AND id NOT IN ?", c.ID, currentItemIDs).
			Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("cart_id = ?", c.ID).
			Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}
	}

	for i := range c.Items {
		c.Items[i].CartID = c.ID
		if err := tx.Save(&c.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&cart.Cart{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormCartRepository implements CartRepository
var _ cart.CartRepository = (*GormCartRepository)(nil)
