package catalog

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/clothora/backend/internal/domain/catalog"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/clothora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// productCacheTTL bounds staleness of cached catalog reads
const productCacheTTL = 5 * time.Minute

// ProductService handles catalog business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	storage        ObjectStorage
	cache          ProductCache
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, storage ObjectStorage) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storage:     storage,
	}
}

// SetCache sets the read cache. Optional; reads fall through to the
// repository when unset.
func (s *ProductService) SetCache(cache ProductCache) {
	s.cache = cache
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price, err := valueobject.NewMoney(req.Price, valueobject.DefaultCurrency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", err.Error())
	}

	product, err := catalog.NewProduct(req.Name, catalog.Category(req.Category), price, req.Stock)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description, product.Category); err != nil {
			return nil, err
		}
	}

	if len(req.Sizes) > 0 || len(req.Colors) > 0 {
		if err := product.SetVariants(req.Sizes, req.Colors); err != nil {
			return nil, err
		}
	}

	if req.Bestseller {
		product.MarkBestseller(true)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update updates an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := product.Category
	if req.Category != nil {
		category = catalog.Category(*req.Category)
	}
	if err := product.Update(name, description, category); err != nil {
		return nil, err
	}

	if req.Price != nil {
		price, err := valueobject.NewMoney(*req.Price, valueobject.DefaultCurrency)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", err.Error())
		}
		if err := product.UpdatePrice(price); err != nil {
			return nil, err
		}
	}

	if req.Sizes != nil || req.Colors != nil {
		sizes := product.Sizes
		if req.Sizes != nil {
			sizes = req.Sizes
		}
		colors := product.Colors
		if req.Colors != nil {
			colors = req.Colors
		}
		if err := product.SetVariants(sizes, colors); err != nil {
			return nil, err
		}
	}

	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if req.Bestseller != nil {
		product.MarkBestseller(*req.Bestseller)
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.ID)
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if s.cache != nil {
		if product, ok := s.cache.GetProduct(ctx, id); ok {
			resp := ToProductResponse(product)
			return &resp, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetProduct(ctx, product, productCacheTTL)
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := toDomainFilter(filter)

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case filter.Category != "":
		products, err = s.productRepo.FindByCategory(ctx, catalog.Category(filter.Category), domainFilter)
	case filter.Bestseller != nil && *filter.Bestseller:
		products, err = s.productRepo.FindBestsellers(ctx, domainFilter)
	default:
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UploadImage stores an image for a product color and records its URL
func (s *ProductService) UploadImage(ctx context.Context, id uuid.UUID, color, filename, contentType string, body io.Reader, size int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.HasColor(color) {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color is not offered for this product")
	}

	key := fmt.Sprintf("products/%s/%s%s", id, color, path.Ext(filename))
	url, err := s.storage.Upload(ctx, key, contentType, body, size)
	if err != nil {
		return nil, err
	}

	if err := product.SetImage(color, url); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.ID)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort: stored images are orphaned otherwise
	for _, url := range product.Images {
		if idx := strings.Index(url, "products/"); idx >= 0 {
			_ = s.storage.Delete(ctx, url[idx:])
		}
	}

	s.invalidate(ctx, id)

	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	s.publishEvents(ctx, product)

	return nil
}

// Count returns the number of products matching the filter
func (s *ProductService) Count(ctx context.Context, category string) (int64, error) {
	if category != "" {
		return s.productRepo.CountByCategory(ctx, catalog.Category(category))
	}
	return s.productRepo.Count(ctx, shared.DefaultFilter())
}

func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateProduct(ctx, id)
	}
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		product.ClearDomainEvents()
		return
	}
	for _, event := range product.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}

func toDomainFilter(filter ProductListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
