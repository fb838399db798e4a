package catalog

import (
	"context"
	"io"
	"time"

	"github.com/clothora/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// ObjectStorage uploads product media to a blob store.
// The concrete implementation lives in the infrastructure layer.
type ObjectStorage interface {
	// Upload stores the object under key and returns its public URL
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)

	// Delete removes the object stored under key
	Delete(ctx context.Context, key string) error
}

// ProductCache caches catalog reads.
// A miss is reported with found=false and never as an error.
type ProductCache interface {
	// GetProduct returns a cached product, if present
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, bool)

	// SetProduct caches a product for the given TTL
	SetProduct(ctx context.Context, product *catalog.Product, ttl time.Duration)

	// InvalidateProduct drops a product from the cache
	InvalidateProduct(ctx context.Context, id uuid.UUID)
}
