package catalog

import (
	"context"

	"github.com/clothora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory finds all products in a category
	FindByCategory(ctx context.Context, category Category, filter shared.Filter) ([]Product, error)

	// FindBestsellers finds products marked as bestsellers
	FindBestsellers(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product with optimistic version checking
	SaveWithLock(ctx context.Context, product *Product) error

	// DecrementStock atomically subtracts quantity from stock only when
	// enough stock remains. Returns shared.ErrConcurrencyConflict when the
	// conditional update matched no row.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error

	// IncrementStock atomically adds quantity back to stock
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int64) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCategory counts products in a category
	CountByCategory(ctx context.Context, category Category) (int64, error)
}
