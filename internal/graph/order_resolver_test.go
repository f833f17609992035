package graph

import (
	"context"
	"testing"
	"time"

	"artisan-be/internal/graph/model"
	"artisan-be/internal/order"
	"artisan-be/internal/payment"
	"artisan-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrderFromCart(ctx context.Context, userID uint, deliveryAddress, paymentToken string) (*order.Order, error) {
	args := m.Called(ctx, userID, deliveryAddress, paymentToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, userID uint, productID string, quantity int, deliveryAddress, paymentToken string) (*order.Order, error) {
	args := m.Called(ctx, userID, productID, quantity, deliveryAddress, paymentToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetMyOrders(ctx context.Context, userID uint, status *string, limit, page *int32) ([]*order.Order, error) {
	args := m.Called(ctx, userID, status, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, sellerID string, orderID uint, newStatus string) (*order.Order, error) {
	args := m.Called(ctx, sellerID, orderID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func TestMutationResolver_Checkout(t *testing.T) {
	placedAt := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		resolver := &Resolver{OrderSvc: mockSvc}
		mr := &mutationResolver{resolver}

		ctx := authedCtx(1)
		ref := "sim_abc"
		placed := &order.Order{
			ID:              7,
			Number:          "ORD-20260820-100000-001-1234",
			UserID:          1,
			Total:           75.00,
			Status:          order.StatusPending,
			DeliveryAddress: "12 Clay Street",
			PaymentRef:      &ref,
			PlacedAt:        placedAt,
			Lines: []order.OrderLine{
				{ProductID: "prod-1", ProductName: "Ceramic Vase", UnitPrice: 25.00, Quantity: 3, LineTotal: 75.00},
			},
		}

		mockSvc.On("PlaceOrderFromCart", ctx, uint(1), "12 Clay Street", "tok-ok").Return(placed, nil)

		res, err := mr.Checkout(ctx, model.CheckoutInput{
			DeliveryAddress: "12 Clay Street",
			PaymentToken:    "tok-ok",
		})

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "7", res.Order.ID)
		assert.Equal(t, 75.00, res.Order.Total)
		assert.Equal(t, model.OrderStatusPending, res.Order.Status)
		require.Len(t, res.Order.Lines, 1)
		assert.Equal(t, 25.00, res.Order.Lines[0].UnitPrice)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		resolver := &Resolver{OrderSvc: mockSvc}
		mr := &mutationResolver{resolver}

		res, err := mr.Checkout(context.Background(), model.CheckoutInput{
			DeliveryAddress: "12 Clay Street",
			PaymentToken:    "tok-ok",
		})

		assert.NoError(t, err)
		assert.False(t, res.Success)
		mockSvc.AssertNotCalled(t, "PlaceOrderFromCart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Payment Declined", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		resolver := &Resolver{OrderSvc: mockSvc}
		mr := &mutationResolver{resolver}

		ctx := authedCtx(1)
		mockSvc.On("PlaceOrderFromCart", ctx, uint(1), "12 Clay Street", "declined-visa").
			Return(nil, payment.ErrPaymentDeclined)

		res, err := mr.Checkout(ctx, model.CheckoutInput{
			DeliveryAddress: "12 Clay Street",
			PaymentToken:    "declined-visa",
		})

		assert.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "payment declined", *res.Message)
	})
}

func TestMutationResolver_UpdateOrderStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		resolver := &Resolver{OrderSvc: mockSvc}
		mr := &mutationResolver{resolver}

		ctx := utils.WithSellerID(authedCtx(2), "seller-1")
		mockSvc.On("UpdateStatus", ctx, "seller-1", uint(7), "SHIPPED").
			Return(&order.Order{ID: 7, Status: order.StatusShipped, PlacedAt: time.Now()}, nil)

		res, err := mr.UpdateOrderStatus(ctx, model.UpdateOrderStatusInput{
			OrderID: "7",
			Status:  model.OrderStatusShipped,
		})

		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, res.Status)
	})

	t.Run("No Seller Identity", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		resolver := &Resolver{OrderSvc: mockSvc}
		mr := &mutationResolver{resolver}

		_, err := mr.UpdateOrderStatus(authedCtx(1), model.UpdateOrderStatusInput{
			OrderID: "7",
			Status:  model.OrderStatusShipped,
		})

		assert.Error(t, err)
		mockSvc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Forbidden", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		resolver := &Resolver{OrderSvc: mockSvc}
		mr := &mutationResolver{resolver}

		ctx := utils.WithSellerID(authedCtx(2), "seller-2")
		mockSvc.On("UpdateStatus", ctx, "seller-2", uint(7), "SHIPPED").
			Return(nil, order.ErrForbidden)

		_, err := mr.UpdateOrderStatus(ctx, model.UpdateOrderStatusInput{
			OrderID: "7",
			Status:  model.OrderStatusShipped,
		})

		assert.ErrorIs(t, err, order.ErrForbidden)
	})
}

func TestQueryResolver_MyOrders(t *testing.T) {
	mockSvc := new(MockOrderService)
	resolver := &Resolver{OrderSvc: mockSvc}
	qr := &queryResolver{resolver}

	ctx := authedCtx(1)
	orders := []*order.Order{
		{ID: 7, Number: "ORD-A", Status: order.StatusPending, PlacedAt: time.Now()},
		{ID: 5, Number: "ORD-B", Status: order.StatusShipped, PlacedAt: time.Now()},
	}
	mockSvc.On("GetMyOrders", ctx, uint(1), (*string)(nil), (*int32)(nil), (*int32)(nil)).
		Return(orders, nil)

	res, err := qr.MyOrders(ctx, nil, nil, nil)

	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, "7", res[0].ID)
}
