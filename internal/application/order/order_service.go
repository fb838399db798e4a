package order

import (
	"context"
	"fmt"

	"github.com/clothora/backend/internal/domain/catalog"
	"github.com/clothora/backend/internal/domain/identity"
	"github.com/clothora/backend/internal/domain/order"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/clothora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order placement and lifecycle operations
type OrderService struct {
	orderRepo      order.OrderRepository
	productRepo    catalog.ProductRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Place validates and places an order for a user.
//
// Validation is fail-fast: empty items, then product existence, then
// stock, then the declared total. Catalog prices are authoritative; the
// declared total is only checked against the server-computed total
// within the tolerance. Persistence is atomic: the order insert and the
// conditional stock decrements either all apply or none do.
func (s *OrderService) Place(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}

	address, err := toAddress(req.ShippingAddress)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	products, err := s.resolveProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// Duplicate lines for one product must be covered together, so the
	// requested quantities are summed per product before the check.
	requested := make(map[uuid.UUID]int64, len(products))
	for _, item := range req.Items {
		requested[item.ProductID] += item.Quantity
	}
	for _, item := range req.Items {
		product := products[item.ProductID]
		if !product.InStock(requested[item.ProductID]) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for product %q", product.Name))
		}
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(orderNumber, userID, address, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		product := products[item.ProductID]
		if err := newOrder.AddItem(
			product.ID,
			product.Name,
			item.Size,
			item.Color,
			product.ImageFor(item.Color),
			product.PriceMoney(),
			item.Quantity,
		); err != nil {
			return nil, err
		}
	}

	declared, err := valueobject.NewMoney(req.TotalAmount, valueobject.DefaultCurrency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}
	if err := newOrder.VerifyDeclaredTotal(declared); err != nil {
		return nil, err
	}

	if err := newOrder.Place(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Place(ctx, newOrder); err != nil {
		return nil, err
	}

	s.appendToHistory(ctx, userID, newOrder.ID)
	s.publishEvents(ctx, newOrder)

	resp := ToOrderResponse(newOrder)
	return &resp, nil
}

// GetByID returns an order visible to the requesting user.
// Admins see every order; customers only their own.
func (s *OrderService) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && !o.BelongsTo(requesterID) {
		return nil, shared.ErrForbidden
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListForUser returns the user's orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := toDomainFilter(filter)

	orders, err := s.orderRepo.FindByUserID(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}

	domainFilter.Filters["user_id"] = userID
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderResponses(orders), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// List returns all orders matching the filter (admin)
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := toDomainFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderResponses(orders), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Cancel cancels an order on behalf of its owner.
// Allowed only while the order is still PROCESSING; stock is restored
// in the same transaction as the status change.
func (s *OrderService) Cancel(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}

	if err := o.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.CancelWithRestock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// SetDeliveryStatus transitions an order's delivery state (admin).
// A transition to CANCELLED restores stock atomically with the change.
func (s *OrderService) SetDeliveryStatus(ctx context.Context, orderID uuid.UUID, req SetDeliveryStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	target := order.DeliveryStatus(req.Status)
	if err := o.SetDeliveryStatus(target); err != nil {
		return nil, err
	}

	if target == order.DeliveryStatusCancelled {
		err = s.orderRepo.CancelWithRestock(ctx, o)
	} else {
		err = s.orderRepo.SaveWithLock(ctx, o)
	}
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Delete deletes an order (admin)
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, orderID)
}

// Count returns the number of orders, optionally in a delivery state
func (s *OrderService) Count(ctx context.Context, deliveryStatus string) (int64, error) {
	if deliveryStatus != "" {
		return s.orderRepo.CountByDeliveryStatus(ctx, order.DeliveryStatus(deliveryStatus))
	}
	return s.orderRepo.Count(ctx, shared.DefaultFilter())
}

// resolveProducts loads every referenced product, failing on the first
// reference that does not resolve.
func (s *OrderService) resolveProducts(ctx context.Context, items []PlaceOrderItemRequest) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool)
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	found, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		products[found[i].ID] = &found[i]
	}

	for _, item := range items {
		if _, ok := products[item.ProductID]; !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
				fmt.Sprintf("Product %s does not exist", item.ProductID))
		}
	}

	return products, nil
}

// appendToHistory records the order on the user's order history.
// The order itself is already committed; a history failure is logged
// and does not fail the placement.
func (s *OrderService) appendToHistory(ctx context.Context, userID, orderID uuid.UUID) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load user for order history",
			zap.String("user_id", userID.String()),
			zap.String("order_id", orderID.String()),
			zap.Error(err))
		return
	}

	if err := user.AppendOrder(orderID); err != nil {
		return
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to append order to user history",
			zap.String("user_id", userID.String()),
			zap.String("order_id", orderID.String()),
			zap.Error(err))
	}
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		o.ClearDomainEvents()
		return
	}
	for _, event := range o.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.String("order_id", o.ID.String()),
				zap.Error(err))
		}
	}
	o.ClearDomainEvents()
}

func toAddress(req AddressRequest) (valueobject.Address, error) {
	opts := []valueobject.AddressOption{}
	if req.Country != "" {
		opts = append(opts, valueobject.WithCountry(req.Country))
	}
	return valueobject.NewAddress(req.Street, req.City, req.State, req.PostalCode, opts...)
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
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
	if filter.DeliveryStatus != "" {
		domainFilter.Filters["delivery_status"] = filter.DeliveryStatus
	}
	if filter.PaymentStatus != "" {
		domainFilter.Filters["payment_status"] = filter.PaymentStatus
	}
	return domainFilter
}
