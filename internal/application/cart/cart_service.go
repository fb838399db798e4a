package cart

import (
	"context"
	"errors"

	"github.com/clothora/backend/internal/domain/cart"
	"github.com/clothora/backend/internal/domain/catalog"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartService handles shopping cart operations
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get returns the user's cart, creating an empty one on first access
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	userCart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.respond(ctx, userCart)
}

// AddItem adds a product variant to the user's cart.
// The product must exist and offer the requested size and color.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
		return nil, err
	}

	if req.Size != "" && !product.HasSize(req.Size) {
		return nil, shared.NewDomainError("INVALID_SIZE", "Size is not offered for this product")
	}
	if req.Color != "" && !product.HasColor(req.Color) {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color is not offered for this product")
	}

	userCart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := userCart.AddItem(req.ProductID, req.Size, req.Color, product.Price, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	return s.respond(ctx, userCart)
}

// UpdateItem replaces an entry's quantity; zero removes the entry
func (s *CartService) UpdateItem(ctx context.Context, userID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := userCart.UpdateItemQuantity(req.ProductID, req.Size, req.Color, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	return s.respond(ctx, userCart)
}

// RemoveItem removes an entry from the user's cart
func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, req RemoveCartItemRequest) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := userCart.RemoveItem(req.ProductID, req.Size, req.Color); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	return s.respond(ctx, userCart)
}

// Clear removes every entry from the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.Get(ctx, userID)
		}
		return nil, err
	}

	userCart.Clear()

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	return s.respond(ctx, userCart)
}

func (s *CartService) findOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return userCart, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	userCart, err = cart.NewCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}
	return userCart, nil
}

func (s *CartService) respond(ctx context.Context, userCart *cart.Cart) (*CartResponse, error) {
	productIDs := make([]uuid.UUID, 0, len(userCart.Items))
	seen := make(map[uuid.UUID]bool)
	for _, item := range userCart.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}

	products := make(map[uuid.UUID]*catalog.Product, len(productIDs))
	if len(productIDs) > 0 {
		found, err := s.productRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	resp := ToCartResponse(userCart, products)
	return &resp, nil
}
