package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clothora/backend/internal/domain/order"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, including items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber finds an order by its order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByPaymentIntentID finds the order attached to a gateway intent
func (r *GormOrderRepository) FindByPaymentIntentID(ctx context.Context, intentID string) (*order.Order, error) {
	if intentID == "" {
		return nil, shared.ErrNotFound
	}
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "payment_intent_id = ?", intentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByUserID finds all orders for a user, newest first
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Where("user_id = ?", userID),
		filter,
	)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Place atomically persists a new order and decrements product stock for
// every line item. A conditional decrement that matches no row rolls
// everything back and surfaces ErrConcurrencyConflict. The user's cart is
// untouched; emptying it is a separate client-triggered operation.
func (r *GormOrderRepository) Place(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(o).Error; err != nil {
			return err
		}

		for i := range o.Items {
			o.Items[i].OrderID = o.ID
			if err := tx.Create(&o.Items[i]).Error; err != nil {
				return err
			}
		}

		for _, item := range o.Items {
			if err := decrementStock(tx, item.ProductID, int64(item.Quantity)); err != nil {
				return err
			}
		}

		return nil
	})
}

// Save updates an existing order and its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(o).Error; err != nil {
			return err
		}
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
			if err := tx.Save(&o.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock updates an order with optimistic version checking.
// Line items are immutable snapshots and are never touched here.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveOrderWithLock(tx, o)
	})
}

// saveOrderWithLock applies the order's mutable columns with a version
// guard. Domain mutations increment the in-memory version, so the update
// only applies while the stored version is still behind it.
func saveOrderWithLock(tx *gorm.DB, o *order.Order) error {
	o.UpdatedAt = time.Now()

	result := tx.Model(&order.Order{}).
		Where("id = ? AND version < ?", o.ID, o.Version).
		Updates(map[string]interface{}{
			"payment_status":    o.PaymentStatus,
			"delivery_status":   o.DeliveryStatus,
			"payment_intent_id": o.PaymentIntentID,
			"payment_id":        o.PaymentID,
			"paid_at":           o.PaidAt,
			"delivered_at":      o.DeliveredAt,
			"cancelled_at":      o.CancelledAt,
			"cancel_reason":     o.CancelReason,
			"version":           o.Version,
			"updated_at":        o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CancelWithRestock atomically saves the cancelled order and returns the
// line quantities to product stock.
func (r *GormOrderRepository) CancelWithRestock(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveOrderWithLock(tx, o); err != nil {
			return err
		}
		for _, item := range o.Items {
			if err := incrementStock(tx, item.ProductID, int64(item.Quantity)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&order.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByDeliveryStatus counts orders in a delivery state
func (r *GormOrderRepository) CountByDeliveryStatus(ctx context.Context, status order.DeliveryStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("delivery_status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderNumber generates a unique order number in the form
// ORD-YYYYMMDD-NNNN, where NNNN restarts each day.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("ORD-%s-", time.Now().Format("20060102"))

	var lastOrder order.Order
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		First(&lastOrder).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.OrderNumber != "" {
		parts := strings.Split(lastOrder.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%04d", prefix, nextNum), nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "delivery_status":
			query = query.Where("delivery_status = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ order.OrderRepository = (*GormOrderRepository)(nil)
