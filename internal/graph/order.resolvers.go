package graph

import (
	"context"
	"errors"

	"artisan-be/internal/graph/model"
	"artisan-be/internal/logger"
	"artisan-be/internal/utils"

	"go.uber.org/zap"
)

// Checkout converts the caller's cart into an order. Everything the cart
// shows is advisory; the conversion re-reads prices and stock, so the
// response is authoritative for what was actually charged.
func (r *mutationResolver) Checkout(ctx context.Context, input model.CheckoutInput) (*model.CheckoutResponse, error) {
	log := logger.FromCtx(ctx)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Warn("unauthorized checkout attempt")
		return &model.CheckoutResponse{
			Success: false,
			Message: utils.StrPtr("Unauthorized"),
		}, nil
	}

	o, err := r.OrderSvc.PlaceOrderFromCart(ctx, userID, input.DeliveryAddress, input.PaymentToken)
	if err != nil {
		log.Warn("checkout failed", zap.Uint("user_id", userID), zap.Error(err))
		return &model.CheckoutResponse{
			Success: false,
			Message: utils.StrPtr(err.Error()),
		}, nil
	}

	log.Info("checkout completed",
		zap.Uint("user_id", userID),
		zap.String("order_number", o.Number),
	)

	return &model.CheckoutResponse{
		Success: true,
		Message: utils.StrPtr("Order placed"),
		Order:   MapOrderToGraphQL(o),
	}, nil
}

func (r *mutationResolver) PlaceOrder(ctx context.Context, input model.PlaceOrderInput) (*model.CheckoutResponse, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return &model.CheckoutResponse{
			Success: false,
			Message: utils.StrPtr("Unauthorized"),
		}, nil
	}

	o, err := r.OrderSvc.PlaceOrder(ctx, userID, input.ProductID, int(input.Quantity), input.DeliveryAddress, input.PaymentToken)
	if err != nil {
		return &model.CheckoutResponse{
			Success: false,
			Message: utils.StrPtr(err.Error()),
		}, nil
	}

	return &model.CheckoutResponse{
		Success: true,
		Message: utils.StrPtr("Order placed"),
		Order:   MapOrderToGraphQL(o),
	}, nil
}

func (r *mutationResolver) UpdateOrderStatus(ctx context.Context, input model.UpdateOrderStatusInput) (*model.Order, error) {
	sellerID := utils.GetSellerIDFromContext(ctx)
	if sellerID == "" {
		return nil, errors.New("forbidden: seller only")
	}

	orderID, err := utils.ToUint(input.OrderID)
	if err != nil {
		return nil, errors.New("invalid order id")
	}

	o, err := r.OrderSvc.UpdateStatus(ctx, sellerID, orderID, string(input.Status))
	if err != nil {
		return nil, err
	}

	return MapOrderToGraphQL(o), nil
}

func (r *queryResolver) Order(ctx context.Context, id string) (*model.Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthorized")
	}

	orderID, err := utils.ToUint(id)
	if err != nil {
		return nil, errors.New("invalid order id")
	}

	o, err := r.OrderSvc.GetOrderDetail(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	return MapOrderToGraphQL(o), nil
}

func (r *queryResolver) MyOrders(ctx context.Context, status *model.OrderStatus, limit, page *int32) ([]*model.Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthorized")
	}

	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	orders, err := r.OrderSvc.GetMyOrders(ctx, userID, statusFilter, limit, page)
	if err != nil {
		return nil, err
	}

	result := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, MapOrderToGraphQL(o))
	}

	return result, nil
}
