package checkout

import (
	"context"
	"testing"

	"artisan-be/internal/cart"
	"artisan-be/internal/inventory"
	"artisan-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddItem(ctx context.Context, params cart.AddItemParams) (*cart.CartView, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartView), args.Error(1)
}

func (m *MockCartService) UpdateItemQuantity(ctx context.Context, params cart.UpdateQuantityParams) (*cart.CartView, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartView), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, params cart.RemoveItemParams) (*cart.CartView, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartView), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, userID uint) (*cart.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartView), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, userID uint) (*cart.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartView), args.Error(1)
}

func (m *MockCartService) ItemCount(ctx context.Context, userID uint) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
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

func cartWithOneLine(qty int) *cart.CartView {
	return &cart.CartView{
		Lines: []*cart.CartLineView{
			{ProductID: "prod-1", ProductName: "Ceramic Vase", Quantity: qty, UnitPriceAtAdd: 20.00},
		},
		Total:     20.00 * float64(qty),
		ItemCount: qty,
	}
}

func TestValidate_EmptyCart(t *testing.T) {
	cartSvc := new(MockCartService)
	v := NewValidator(cartSvc, new(MockProductRepository), new(MockInventoryRepository))
	ctx := context.Background()

	cartSvc.On("GetCart", ctx, uint(1)).Return(&cart.CartView{}, nil)

	_, err := v.Validate(ctx, 1)
	assert.ErrorIs(t, err, cart.ErrCartEmpty)
}

func TestValidate_PricesReadFresh(t *testing.T) {
	cartSvc := new(MockCartService)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	v := NewValidator(cartSvc, productRepo, inventoryRepo)
	ctx := context.Background()

	// Cart snapshot says 20.00, catalog now says 25.00: validation prices at 25.00.
	cartSvc.On("GetCart", ctx, uint(1)).Return(cartWithOneLine(3), nil)
	productRepo.On("GetProductByID", ctx, product.GetProductOptions{ProductID: "prod-1"}).
		Return(&product.Product{ID: "prod-1", Name: "Ceramic Vase", Price: 25.00, Status: "AVAILABLE"}, nil)
	inventoryRepo.On("AvailableQuantity", ctx, "prod-1").Return(10, false, nil)

	lines, err := v.Validate(ctx, 1)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 25.00, lines[0].UnitPrice)
	assert.Equal(t, 75.00, lines[0].LineTotal)
}

func TestValidate_ProductBecameUnavailable(t *testing.T) {
	cartSvc := new(MockCartService)
	productRepo := new(MockProductRepository)
	v := NewValidator(cartSvc, productRepo, new(MockInventoryRepository))
	ctx := context.Background()

	cartSvc.On("GetCart", ctx, uint(1)).Return(cartWithOneLine(1), nil)
	productRepo.On("GetProductByID", ctx, mock.Anything).
		Return(&product.Product{ID: "prod-1", Name: "Ceramic Vase", Price: 20.00, Status: "UNAVAILABLE"}, nil)

	_, err := v.Validate(ctx, 1)

	var unavailable *product.UnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestValidate_StockShrankSinceAdd(t *testing.T) {
	cartSvc := new(MockCartService)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	v := NewValidator(cartSvc, productRepo, inventoryRepo)
	ctx := context.Background()

	cartSvc.On("GetCart", ctx, uint(1)).Return(cartWithOneLine(6), nil)
	productRepo.On("GetProductByID", ctx, mock.Anything).
		Return(&product.Product{ID: "prod-1", Name: "Ceramic Vase", Price: 20.00, Status: "AVAILABLE"}, nil)
	inventoryRepo.On("AvailableQuantity", ctx, "prod-1").Return(4, false, nil)

	_, err := v.Validate(ctx, 1)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)
}

func TestValidate_MissingInventoryRecord(t *testing.T) {
	cartSvc := new(MockCartService)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	v := NewValidator(cartSvc, productRepo, inventoryRepo)
	ctx := context.Background()

	cartSvc.On("GetCart", ctx, uint(1)).Return(cartWithOneLine(1), nil)
	productRepo.On("GetProductByID", ctx, mock.Anything).
		Return(&product.Product{ID: "prod-1", Name: "Ceramic Vase", Price: 20.00, Status: "AVAILABLE"}, nil)
	inventoryRepo.On("AvailableQuantity", ctx, "prod-1").Return(0, false, inventory.ErrInventoryNotFound)

	_, err := v.Validate(ctx, 1)
	assert.ErrorIs(t, err, inventory.ErrInventoryNotFound)
}
