package order

import (
	"context"
	"testing"

	"artisan-be/internal/checkout"
	"artisan-be/internal/inventory"
	"artisan-be/internal/metrics"
	"artisan-be/internal/payment"
	"artisan-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateFromCartTx(ctx context.Context, params CreateFromCartParams) (*Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) CreateSingleItemTx(ctx context.Context, params CreateSingleItemParams) (*Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetOrderByID(ctx context.Context, orderID uint) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetOrdersByUser(ctx context.Context, params ListParams) ([]*Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) SellerOwnsOrderLines(ctx context.Context, sellerID string, orderID uint) (bool, error) {
	args := m.Called(ctx, sellerID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(ctx context.Context, userID uint) ([]checkout.Line, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checkout.Line), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, opts product.GetProductOptions) (*product.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) UpdatePrice(ctx context.Context, params product.UpdatePriceParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) SetStatus(ctx context.Context, params product.SetStatusParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetByProductID(ctx context.Context, productID string) (*inventory.Record, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) AvailableQuantity(ctx context.Context, productID string) (int, bool, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockInventoryRepository) Decrement(ctx context.Context, productID string, amount int) error {
	args := m.Called(ctx, productID, amount)
	return args.Error(0)
}

func (m *MockInventoryRepository) SetStock(ctx context.Context, params inventory.SetStockParams) (*inventory.Record, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Charge(ctx context.Context, params payment.ChargeParams) (*payment.Receipt, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Receipt), args.Error(1)
}

type serviceMocks struct {
	repo          *MockRepository
	validator     *MockValidator
	productRepo   *MockProductRepository
	inventoryRepo *MockInventoryRepository
	gateway       *MockGateway
	stats         *metrics.Checkout
}

func newTestService() (Service, *serviceMocks) {
	m := &serviceMocks{
		repo:          new(MockRepository),
		validator:     new(MockValidator),
		productRepo:   new(MockProductRepository),
		inventoryRepo: new(MockInventoryRepository),
		gateway:       new(MockGateway),
		stats:         metrics.NewCheckout(),
	}
	svc := NewService(m.repo, m.validator, m.productRepo, m.inventoryRepo, m.gateway, m.stats)
	return svc, m
}

func TestService_PlaceOrderFromCart_Success(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	lines := []checkout.Line{
		{ProductID: "prod-1", ProductName: "Ceramic Vase", UnitPrice: 25.00, Quantity: 3, LineTotal: 75.00},
	}
	m.validator.On("Validate", ctx, uint(1)).Return(lines, nil)

	m.gateway.On("Charge", ctx, mock.MatchedBy(func(p payment.ChargeParams) bool {
		return p.Amount == 75.00 && p.Token == "tok-ok"
	})).Return(&payment.Receipt{ID: "sim_abc", Amount: 75.00, Status: "CAPTURED"}, nil)

	placed := &Order{
		ID:     7,
		UserID: 1,
		Total:  75.00,
		Status: StatusPending,
		Lines: []OrderLine{
			{ProductID: "prod-1", ProductName: "Ceramic Vase", UnitPrice: 25.00, Quantity: 3, LineTotal: 75.00},
		},
	}
	m.repo.On("CreateFromCartTx", ctx, mock.MatchedBy(func(p CreateFromCartParams) bool {
		return p.UserID == 1 &&
			p.DeliveryAddress == "12 Clay Street" &&
			p.PaymentRef != nil && *p.PaymentRef == "sim_abc"
	})).Return(placed, nil)

	o, err := svc.PlaceOrderFromCart(ctx, 1, "12 Clay Street", "tok-ok")

	require.NoError(t, err)
	assert.Equal(t, 75.00, o.Total)
	assert.Equal(t, uint64(1), m.stats.OrdersPlaced.Load())
	assert.Equal(t, uint64(0), m.stats.CheckoutFailures.Load())
	m.repo.AssertExpectations(t)
	m.gateway.AssertExpectations(t)
}

func TestService_PlaceOrderFromCart_MissingAddress(t *testing.T) {
	svc, m := newTestService()

	_, err := svc.PlaceOrderFromCart(context.Background(), 1, "", "tok-ok")

	assert.EqualError(t, err, "delivery address is required")
	m.validator.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

// Any validation failure stops checkout before payment or conversion; the
// cart is left exactly as it was.
func TestService_PlaceOrderFromCart_ValidationFailureMutatesNothing(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	stockErr := &inventory.InsufficientStockError{ProductID: "prod-1", Available: 4, Requested: 6}
	m.validator.On("Validate", ctx, uint(1)).Return(nil, stockErr)

	_, err := svc.PlaceOrderFromCart(ctx, 1, "12 Clay Street", "tok-ok")

	var got *inventory.InsufficientStockError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 4, got.Available)
	assert.Equal(t, 6, got.Requested)

	m.gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	m.repo.AssertNotCalled(t, "CreateFromCartTx", mock.Anything, mock.Anything)
	assert.Equal(t, uint64(1), m.stats.StockConflicts.Load())
	assert.Equal(t, uint64(1), m.stats.CheckoutFailures.Load())
	assert.Equal(t, uint64(0), m.stats.OrdersPlaced.Load())
}

func TestService_PlaceOrderFromCart_PaymentDeclined(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	lines := []checkout.Line{
		{ProductID: "prod-1", ProductName: "Ceramic Vase", UnitPrice: 25.00, Quantity: 1, LineTotal: 25.00},
	}
	m.validator.On("Validate", ctx, uint(1)).Return(lines, nil)
	m.gateway.On("Charge", ctx, mock.Anything).Return(nil, payment.ErrPaymentDeclined)

	_, err := svc.PlaceOrderFromCart(ctx, 1, "12 Clay Street", "declined-card")

	assert.ErrorIs(t, err, payment.ErrPaymentDeclined)
	m.repo.AssertNotCalled(t, "CreateFromCartTx", mock.Anything, mock.Anything)
	assert.Equal(t, uint64(1), m.stats.PaymentsDeclined.Load())
	assert.Equal(t, uint64(1), m.stats.CheckoutFailures.Load())
}

// The transaction re-checks stock itself; a conflict that slipped past the
// validator still surfaces and still counts.
func TestService_PlaceOrderFromCart_ConversionConflict(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	lines := []checkout.Line{
		{ProductID: "prod-1", ProductName: "Ceramic Vase", UnitPrice: 25.00, Quantity: 6, LineTotal: 150.00},
	}
	m.validator.On("Validate", ctx, uint(1)).Return(lines, nil)
	m.gateway.On("Charge", ctx, mock.Anything).
		Return(&payment.Receipt{ID: "sim_abc", Amount: 150.00, Status: "CAPTURED"}, nil)

	stockErr := &inventory.InsufficientStockError{ProductID: "prod-1", Available: 4, Requested: 6}
	m.repo.On("CreateFromCartTx", ctx, mock.Anything).Return(nil, stockErr)

	_, err := svc.PlaceOrderFromCart(ctx, 1, "12 Clay Street", "tok-ok")

	var got *inventory.InsufficientStockError
	assert.ErrorAs(t, err, &got)
	assert.Equal(t, uint64(1), m.stats.StockConflicts.Load())
	assert.Equal(t, uint64(0), m.stats.OrdersPlaced.Load())
}

func TestService_PlaceOrder_SingleItem(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m.productRepo.On("GetProductByID", ctx, product.GetProductOptions{ProductID: "prod-1"}).
			Return(&product.Product{ID: "prod-1", Name: "Ceramic Vase", Price: 25.00, Status: "AVAILABLE"}, nil).Once()
		m.inventoryRepo.On("AvailableQuantity", ctx, "prod-1").Return(10, false, nil).Once()
		m.gateway.On("Charge", ctx, mock.MatchedBy(func(p payment.ChargeParams) bool {
			return p.Amount == 50.00
		})).Return(&payment.Receipt{ID: "sim_abc", Amount: 50.00, Status: "CAPTURED"}, nil).Once()
		m.repo.On("CreateSingleItemTx", ctx, mock.MatchedBy(func(p CreateSingleItemParams) bool {
			return p.ProductID == "prod-1" && p.Quantity == 2
		})).Return(&Order{ID: 11, UserID: 1, Total: 50.00, Status: StatusPending}, nil).Once()

		o, err := svc.PlaceOrder(ctx, 1, "prod-1", 2, "12 Clay Street", "tok-ok")

		require.NoError(t, err)
		assert.Equal(t, 50.00, o.Total)
	})

	t.Run("NotEnoughStock", func(t *testing.T) {
		m.productRepo.On("GetProductByID", ctx, product.GetProductOptions{ProductID: "prod-2"}).
			Return(&product.Product{ID: "prod-2", Name: "Linocut Print", Price: 40.00, Status: "AVAILABLE"}, nil).Once()
		m.inventoryRepo.On("AvailableQuantity", ctx, "prod-2").Return(1, false, nil).Once()

		_, err := svc.PlaceOrder(ctx, 1, "prod-2", 3, "12 Clay Street", "tok-ok")

		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 1, stockErr.Available)
		assert.Equal(t, 3, stockErr.Requested)
		m.gateway.AssertNotCalled(t, "Charge", ctx, mock.MatchedBy(func(p payment.ChargeParams) bool {
			return p.Amount == 120.00
		}))
	})

	t.Run("Unavailable", func(t *testing.T) {
		m.productRepo.On("GetProductByID", ctx, product.GetProductOptions{ProductID: "prod-3"}).
			Return(&product.Product{ID: "prod-3", Name: "Old Piece", Price: 10.00, Status: "UNAVAILABLE"}, nil).Once()

		_, err := svc.PlaceOrder(ctx, 1, "prod-3", 1, "12 Clay Street", "tok-ok")

		var unavailable *product.UnavailableError
		assert.ErrorAs(t, err, &unavailable)
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		_, err := svc.PlaceOrder(ctx, 1, "prod-1", 0, "12 Clay Street", "tok-ok")
		assert.EqualError(t, err, "quantity must be greater than zero")
	})
}

func TestService_GetOrderDetail(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	placed := &Order{ID: 7, UserID: 1, Total: 75.00, Status: StatusPending}

	t.Run("Owner", func(t *testing.T) {
		m.repo.On("GetOrderDetail", ctx, uint(7)).Return(placed, nil).Once()

		o, err := svc.GetOrderDetail(ctx, 1, 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), o.ID)
	})

	t.Run("NotOwner", func(t *testing.T) {
		m.repo.On("GetOrderDetail", ctx, uint(7)).Return(placed, nil).Once()

		_, err := svc.GetOrderDetail(ctx, 2, 7)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("NotFound", func(t *testing.T) {
		m.repo.On("GetOrderDetail", ctx, uint(99)).Return(nil, ErrOrderNotFound).Once()

		_, err := svc.GetOrderDetail(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_GetMyOrders(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	t.Run("StatusFilter", func(t *testing.T) {
		shipped := StatusShipped
		m.repo.On("GetOrdersByUser", ctx, mock.MatchedBy(func(p ListParams) bool {
			return p.UserID == 1 && p.Status != nil && *p.Status == shipped
		})).Return([]*Order{{ID: 5, Status: StatusShipped}}, nil).Once()

		filter := "SHIPPED"
		orders, err := svc.GetMyOrders(ctx, 1, &filter, nil, nil)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("InvalidStatusFilter", func(t *testing.T) {
		filter := "LOST_IN_TRANSIT"
		_, err := svc.GetMyOrders(ctx, 1, &filter, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService()
		m.repo.On("GetOrderByID", ctx, uint(7)).
			Return(&Order{ID: 7, UserID: 1, Status: StatusPending}, nil)
		m.repo.On("SellerOwnsOrderLines", ctx, "seller-1", uint(7)).Return(true, nil)
		m.repo.On("UpdateStatus", ctx, uint(7), StatusShipped).Return(nil)

		o, err := svc.UpdateStatus(ctx, "seller-1", 7, "SHIPPED")

		require.NoError(t, err)
		assert.Equal(t, StatusShipped, o.Status)
	})

	// Sellers can move the order backwards too.
	t.Run("BackwardTransition", func(t *testing.T) {
		svc, m := newTestService()
		m.repo.On("GetOrderByID", ctx, uint(7)).
			Return(&Order{ID: 7, UserID: 1, Status: StatusDelivered}, nil)
		m.repo.On("SellerOwnsOrderLines", ctx, "seller-1", uint(7)).Return(true, nil)
		m.repo.On("UpdateStatus", ctx, uint(7), StatusProcessing).Return(nil)

		o, err := svc.UpdateStatus(ctx, "seller-1", 7, "PROCESSING")

		require.NoError(t, err)
		assert.Equal(t, StatusProcessing, o.Status)
	})

	t.Run("ForbiddenForOtherSeller", func(t *testing.T) {
		svc, m := newTestService()
		m.repo.On("GetOrderByID", ctx, uint(7)).
			Return(&Order{ID: 7, UserID: 1, Status: StatusPending}, nil)
		m.repo.On("SellerOwnsOrderLines", ctx, "seller-2", uint(7)).Return(false, nil)

		_, err := svc.UpdateStatus(ctx, "seller-2", 7, "SHIPPED")

		assert.ErrorIs(t, err, ErrForbidden)
		m.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc, m := newTestService()

		_, err := svc.UpdateStatus(ctx, "seller-1", 7, "RETURNED")

		assert.ErrorIs(t, err, ErrInvalidStatus)
		m.repo.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		svc, m := newTestService()
		m.repo.On("GetOrderByID", ctx, uint(99)).Return(nil, ErrOrderNotFound)

		_, err := svc.UpdateStatus(ctx, "seller-1", 99, "SHIPPED")

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	// Cancelling never restocks: the ledger is untouched by the workflow.
	t.Run("CancelDoesNotTouchInventory", func(t *testing.T) {
		svc, m := newTestService()
		m.repo.On("GetOrderByID", ctx, uint(7)).
			Return(&Order{ID: 7, UserID: 1, Status: StatusProcessing}, nil)
		m.repo.On("SellerOwnsOrderLines", ctx, "seller-1", uint(7)).Return(true, nil)
		m.repo.On("UpdateStatus", ctx, uint(7), StatusCancelled).Return(nil)

		o, err := svc.UpdateStatus(ctx, "seller-1", 7, "CANCELLED")

		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, o.Status)
		m.inventoryRepo.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything)
		m.inventoryRepo.AssertNotCalled(t, "Decrement", mock.Anything, mock.Anything, mock.Anything)
	})
}
