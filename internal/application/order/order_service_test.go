package order

import (
	"context"
	"testing"

	"github.com/clothora/backend/internal/domain/catalog"
	"github.com/clothora/backend/internal/domain/identity"
	"github.com/clothora/backend/internal/domain/order"
	"github.com/clothora/backend/internal/domain/shared"
	"github.com/clothora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// In-memory fakes shared by the order and payment service tests
// ---------------------------------------------------------------------------

type fakeOrderRepository struct {
	orders      map[uuid.UUID]*order.Order
	placed      []*order.Order
	restocked   []*order.Order
	saved       []*order.Order
	deleted     []uuid.UUID
	nextNumber  string
	placeErr    error
	generateErr error
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{
		orders:     make(map[uuid.UUID]*order.Order),
		nextNumber: "ORD-20260831-0001",
	}
}

func (r *fakeOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepository) FindByPaymentIntentID(ctx context.Context, intentID string) (*order.Order, error) {
	if intentID == "" {
		return nil, shared.ErrNotFound
	}
	for _, o := range r.orders {
		if o.PaymentIntentID == intentID {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (r *fakeOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (r *fakeOrderRepository) Place(ctx context.Context, o *order.Order) error {
	if r.placeErr != nil {
		return r.placeErr
	}
	r.orders[o.ID] = o
	r.placed = append(r.placed, o)
	return nil
}

func (r *fakeOrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	r.saved = append(r.saved, o)
	return nil
}

func (r *fakeOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	r.saved = append(r.saved, o)
	return nil
}

func (r *fakeOrderRepository) CancelWithRestock(ctx context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	r.restocked = append(r.restocked, o)
	return nil
}

func (r *fakeOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepository) CountByDeliveryStatus(ctx context.Context, status order.DeliveryStatus) (int64, error) {
	var count int64
	for _, o := range r.orders {
		if o.DeliveryStatus == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	if r.generateErr != nil {
		return "", r.generateErr
	}
	return r.nextNumber, nil
}

type fakeProductRepository struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepository(products ...*catalog.Product) *fakeProductRepository {
	repo := &fakeProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepository) FindByCategory(ctx context.Context, category catalog.Category, filter shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepository) FindBestsellers(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error {
	return nil
}

func (r *fakeProductRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int64) error {
	return nil
}

func (r *fakeProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepository) CountByCategory(ctx context.Context, category catalog.Category) (int64, error) {
	return 0, nil
}

type fakeUserRepository struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepository(users ...*identity.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: make(map[uuid.UUID]*identity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	return nil, nil
}

func (r *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepository) Save(ctx context.Context, user *identity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.users)), nil
}

// ---------------------------------------------------------------------------
// Test fixtures
// ---------------------------------------------------------------------------

func newTestProduct(t *testing.T, name string, price float64, stock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, catalog.CategoryMen, valueobject.NewMoneyINRFromFloat(price), stock)
	require.NoError(t, err)
	require.NoError(t, p.SetVariants([]string{"S", "M", "L"}, []string{"black", "blue"}))
	return p
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("Asha Rao", "asha@example.com", "s3cret-pass-123")
	require.NoError(t, err)
	u.ClearDomainEvents()
	return u
}

func testAddressRequest() AddressRequest {
	return AddressRequest{
		Street:     "42 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
	}
}

func newTestOrderService(orderRepo *fakeOrderRepository, productRepo *fakeProductRepository, userRepo *fakeUserRepository) *OrderService {
	return NewOrderService(orderRepo, productRepo, userRepo, zap.NewNop())
}

func placedTestOrder(t *testing.T, userID uuid.UUID, method order.PaymentMethod) *order.Order {
	t.Helper()
	addr, err := valueobject.NewAddress("42 MG Road", "Bengaluru", "Karnataka", "560001")
	require.NoError(t, err)
	o, err := order.NewOrder("ORD-20260831-0007", userID, addr, method)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(uuid.New(), "Classic Tee", "M", "black", "",
		valueobject.NewMoneyINRFromFloat(499.00), 2))
	require.NoError(t, o.Place())
	o.ClearDomainEvents()
	return o
}

// ---------------------------------------------------------------------------
// Place
// ---------------------------------------------------------------------------

func TestOrderService_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("places order and snapshots catalog data", func(t *testing.T) {
		tee := newTestProduct(t, "Classic Tee", 499.00, 10)
		jacket := newTestProduct(t, "Denim Jacket", 1999.00, 3)
		user := newTestUser(t)

		orderRepo := newFakeOrderRepository()
		svc := newTestOrderService(orderRepo, newFakeProductRepository(tee, jacket), newFakeUserRepository(user))

		resp, err := svc.Place(ctx, user.ID, PlaceOrderRequest{
			Items: []PlaceOrderItemRequest{
				{ProductID: tee.ID, Size: "M", Color: "black", Quantity: 2},
				{ProductID: jacket.ID, Size: "L", Color: "blue", Quantity: 1},
			},
			ShippingAddress: testAddressRequest(),
			PaymentMethod:   "COD",
			TotalAmount:     decimal.NewFromFloat(2997.00),
		})
		require.NoError(t, err)

		assert.Equal(t, "ORD-20260831-0001", resp.OrderNumber)
		assert.Equal(t, "PENDING", resp.PaymentStatus)
		assert.Equal(t, "PROCESSING", resp.DeliveryStatus)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Classic Tee", resp.Items[0].ProductName)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromFloat(2997.00)))

		require.Len(t, orderRepo.placed, 1)
		assert.Contains(t, user.OrderHistory, orderRepo.placed[0].ID)
	})

	t.Run("accepts declared total within tolerance", func(t *testing.T) {
		tee := newTestProduct(t, "Classic Tee", 499.00, 10)
		user := newTestUser(t)
		svc := newTestOrderService(newFakeOrderRepository(), newFakeProductRepository(tee), newFakeUserRepository(user))

		_, err := svc.Place(ctx, user.ID, PlaceOrderRequest{
			Items:           []PlaceOrderItemRequest{{ProductID: tee.ID, Size: "M", Color: "black", Quantity: 2}},
			ShippingAddress: testAddressRequest(),
			PaymentMethod:   "ONLINE",
			TotalAmount:     decimal.NewFromFloat(998.01),
		})
		assert.NoError(t, err)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		user := newTestUser(t)
		svc := newTestOrderService(newFakeOrderRepository(), newFakeProductRepository(), newFakeUserRepository(user))

		_, err := svc.Place(ctx, user.ID, PlaceOrderRequest{
			ShippingAddress: testAddressRequest(),
			PaymentMethod:   "COD",
			TotalAmount:     decimal.NewFromFloat(100),
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_ITEMS", domainErr.Code)
	})

	t.Run("rejects unknown product naming the id", func(t *testing.T) {
		user := newTestUser(t)
		missingID := uuid.New()
		svc := newTestOrderService(newFakeOrderRepository(), newFakeProductRepository(), newFakeUserRepository(user))

		_, err := svc.Place(ctx, user.ID, PlaceOrderRequest{
			Items:           []PlaceOrderItemRequest{{ProductID: missingID, Quantity: 1}},
			ShippingAddress: testAddressRequest(),
			PaymentMethod:   "COD",
			TotalAmount:     decimal.NewFromFloat(499),
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
		assert.Contains(t, domainErr.Message, missingID.String())
	})

	t.Run("rejects insufficient stock before touching the repository", func(t *testing.T) {
		tee := newTestProduct(t, "Classic Tee", 499.00, 1)
		user := newTestUser(t)
		orderRepo := newFakeOrderRepository()
		svc := newTestOrderService(orderRepo, newFakeProductRepository(tee), newFakeUserRepository(user))

		_, err := svc.Place(ctx, user.ID, PlaceOrderRequest{
			Items:           []PlaceOrderItemRequest{{ProductID: tee.ID, Size: "M", Color: "black", Quantity: 2}},
			ShippingAddress: testAddressRequest(),
			PaymentMethod:   "COD",
			TotalAmount:     decimal.NewFromFloat(998.00),
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "Classic Tee")
		assert.Empty(t, orderRepo.placed)
	})

	t.Run("sums duplicate lines of one product before the stock check", func(t *testing.T) {
		tee := newTestProduct(t, "Classic Tee", 499.00, 5)
		user := newTestUser(t)
		orderRepo := newFakeOrderRepository()
		svc := newTestOrderService(orderRepo, newFakeProductRepository(tee), newFakeUserRepository(user))

		// Each line alone is covered by the stock of 5, together they are not
		_, err := svc.Place(ctx, user.ID, PlaceOrderRequest{
			Items: []PlaceOrderItemRequest{
				{ProductID: tee.ID, Size: "M", Color: "black", Quantity: 3},
				{ProductID: tee.ID, Size: "L", Color: "black", Quantity: 3},
			},
			ShippingAddress: testAddressRequest(),
			PaymentMethod:   "COD",
			TotalAmount:     decimal.NewFromFloat(2994.00),
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NotErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Empty(t, orderRepo.placed)
	})

	t.Run("rejects declared total outside tolerance", func(t *testing.T) {
		tee := newTestProduct(t, "Classic Tee", 499.00, 10)
		user := newTestUser(t)
		svc := newTestOrderService(newFakeOrderRepository(), newFakeProductRepository(tee), newFakeUserRepository(user))

		_, err := svc.Place(ctx, user.ID, PlaceOrderRequest{
			Items:           []PlaceOrderItemRequest{{ProductID: tee.ID, Size: "M", Color: "black", Quantity: 2}},
			ShippingAddress: testAddressRequest(),
			PaymentMethod:   "COD",
			TotalAmount:     decimal.NewFromFloat(998.02),
		})
		assert.ErrorIs(t, err, shared.ErrTotalMismatch)
	})

	t.Run("propagates conflict from atomic placement", func(t *testing.T) {
		tee := newTestProduct(t, "Classic Tee", 499.00, 10)
		user := newTestUser(t)
		orderRepo := newFakeOrderRepository()
		orderRepo.placeErr = shared.ErrConcurrencyConflict
		svc := newTestOrderService(orderRepo, newFakeProductRepository(tee), newFakeUserRepository(user))

		_, err := svc.Place(ctx, user.ID, PlaceOrderRequest{
			Items:           []PlaceOrderItemRequest{{ProductID: tee.ID, Size: "M", Color: "black", Quantity: 1}},
			ShippingAddress: testAddressRequest(),
			PaymentMethod:   "COD",
			TotalAmount:     decimal.NewFromFloat(499.00),
		})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

// ---------------------------------------------------------------------------
// Queries and ownership
// ---------------------------------------------------------------------------

func TestOrderService_GetByID(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	o := placedTestOrder(t, owner, order.PaymentMethodCOD)

	orderRepo := newFakeOrderRepository()
	orderRepo.orders[o.ID] = o
	svc := newTestOrderService(orderRepo, newFakeProductRepository(), newFakeUserRepository())

	t.Run("owner sees own order", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, owner, false, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.New(), false, o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin sees any order", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, uuid.New(), true, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.ID)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.GetByID(ctx, owner, true, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// ---------------------------------------------------------------------------
// Cancel
// ---------------------------------------------------------------------------

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels processing order with restock", func(t *testing.T) {
		owner := uuid.New()
		o := placedTestOrder(t, owner, order.PaymentMethodCOD)
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		svc := newTestOrderService(orderRepo, newFakeProductRepository(), newFakeUserRepository())

		resp, err := svc.Cancel(ctx, owner, o.ID, CancelOrderRequest{Reason: "changed my mind"})
		require.NoError(t, err)

		assert.Equal(t, "CANCELLED", resp.DeliveryStatus)
		assert.Equal(t, "REFUNDED", resp.PaymentStatus)
		assert.NotNil(t, resp.CancelledAt)
		require.Len(t, orderRepo.restocked, 1)
		assert.Empty(t, orderRepo.saved)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		o := placedTestOrder(t, uuid.New(), order.PaymentMethodCOD)
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		svc := newTestOrderService(orderRepo, newFakeProductRepository(), newFakeUserRepository())

		_, err := svc.Cancel(ctx, uuid.New(), o.ID, CancelOrderRequest{})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("shipped order cannot be cancelled by owner", func(t *testing.T) {
		owner := uuid.New()
		o := placedTestOrder(t, owner, order.PaymentMethodCOD)
		require.NoError(t, o.SetDeliveryStatus(order.DeliveryStatusShipped))
		o.ClearDomainEvents()

		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		svc := newTestOrderService(orderRepo, newFakeProductRepository(), newFakeUserRepository())

		_, err := svc.Cancel(ctx, owner, o.ID, CancelOrderRequest{})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

// ---------------------------------------------------------------------------
// Delivery transitions
// ---------------------------------------------------------------------------

func TestOrderService_SetDeliveryStatus(t *testing.T) {
	ctx := context.Background()

	newService := func(o *order.Order) (*OrderService, *fakeOrderRepository) {
		orderRepo := newFakeOrderRepository()
		orderRepo.orders[o.ID] = o
		return newTestOrderService(orderRepo, newFakeProductRepository(), newFakeUserRepository()), orderRepo
	}

	t.Run("ships a processing order", func(t *testing.T) {
		o := placedTestOrder(t, uuid.New(), order.PaymentMethodCOD)
		svc, orderRepo := newService(o)

		resp, err := svc.SetDeliveryStatus(ctx, o.ID, SetDeliveryStatusRequest{Status: "SHIPPED"})
		require.NoError(t, err)
		assert.Equal(t, "SHIPPED", resp.DeliveryStatus)
		assert.Nil(t, resp.DeliveredAt)
		require.Len(t, orderRepo.saved, 1)
		assert.Empty(t, orderRepo.restocked)
	})

	t.Run("delivering stamps the timestamp", func(t *testing.T) {
		o := placedTestOrder(t, uuid.New(), order.PaymentMethodCOD)
		require.NoError(t, o.SetDeliveryStatus(order.DeliveryStatusShipped))
		o.ClearDomainEvents()
		svc, _ := newService(o)

		resp, err := svc.SetDeliveryStatus(ctx, o.ID, SetDeliveryStatusRequest{Status: "DELIVERED"})
		require.NoError(t, err)
		assert.Equal(t, "DELIVERED", resp.DeliveryStatus)
		assert.NotNil(t, resp.DeliveredAt)
	})

	t.Run("cancelling restores stock", func(t *testing.T) {
		o := placedTestOrder(t, uuid.New(), order.PaymentMethodCOD)
		svc, orderRepo := newService(o)

		resp, err := svc.SetDeliveryStatus(ctx, o.ID, SetDeliveryStatusRequest{Status: "CANCELLED"})
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.DeliveryStatus)
		require.Len(t, orderRepo.restocked, 1)
	})

	t.Run("rejects skipping straight to delivered", func(t *testing.T) {
		o := placedTestOrder(t, uuid.New(), order.PaymentMethodCOD)
		svc, _ := newService(o)

		_, err := svc.SetDeliveryStatus(ctx, o.ID, SetDeliveryStatusRequest{Status: "DELIVERED"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("rejects reopening a delivered order", func(t *testing.T) {
		o := placedTestOrder(t, uuid.New(), order.PaymentMethodCOD)
		require.NoError(t, o.SetDeliveryStatus(order.DeliveryStatusShipped))
		require.NoError(t, o.SetDeliveryStatus(order.DeliveryStatusDelivered))
		o.ClearDomainEvents()
		svc, _ := newService(o)

		_, err := svc.SetDeliveryStatus(ctx, o.ID, SetDeliveryStatusRequest{Status: "PROCESSING"})
		require.Error(t, err)
	})
}

// ---------------------------------------------------------------------------
// Count and Delete
// ---------------------------------------------------------------------------

func TestOrderService_Count(t *testing.T) {
	ctx := context.Background()
	o := placedTestOrder(t, uuid.New(), order.PaymentMethodCOD)
	orderRepo := newFakeOrderRepository()
	orderRepo.orders[o.ID] = o
	svc := newTestOrderService(orderRepo, newFakeProductRepository(), newFakeUserRepository())

	total, err := svc.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	processing, err := svc.Count(ctx, "PROCESSING")
	require.NoError(t, err)
	assert.Equal(t, int64(1), processing)

	shipped, err := svc.Count(ctx, "SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, int64(0), shipped)
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	o := placedTestOrder(t, uuid.New(), order.PaymentMethodCOD)
	orderRepo := newFakeOrderRepository()
	orderRepo.orders[o.ID] = o
	svc := newTestOrderService(orderRepo, newFakeProductRepository(), newFakeUserRepository())

	require.NoError(t, svc.Delete(ctx, o.ID))
	assert.Equal(t, []uuid.UUID{o.ID}, orderRepo.deleted)

	err := svc.Delete(ctx, o.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
