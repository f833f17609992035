package graph

import (
	"context"

	"artisan-be/internal/cart"
	"artisan-be/internal/graph/model"
	"artisan-be/internal/logger"
	"artisan-be/internal/utils"

	"go.uber.org/zap"
)

func (r *mutationResolver) AddToCart(ctx context.Context, input model.AddToCartInput) (*model.CartResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("product_id", input.ProductID),
		zap.Int32("quantity", input.Quantity),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Warn("unauthorized access (no user ID in context)")
		return &model.CartResponse{
			Success: false,
			Message: utils.StrPtr("Unauthorized"),
		}, nil
	}

	view, err := r.CartSvc.AddItem(ctx, cart.AddItemParams{
		UserID:    userID,
		ProductID: input.ProductID,
		Quantity:  int(input.Quantity),
	})
	if err != nil {
		log.Warn("failed to add item to cart", zap.Error(err))
		return &model.CartResponse{
			Success: false,
			Message: utils.StrPtr(err.Error()),
		}, nil
	}

	log.Info("cart item added",
		zap.Uint("user_id", userID),
		zap.Int("item_count", view.ItemCount),
	)

	return &model.CartResponse{
		Success: true,
		Message: utils.StrPtr("Added to cart"),
		Cart:    MapCartToGraphQL(view),
	}, nil
}

func (r *mutationResolver) UpdateCartItem(ctx context.Context, input model.UpdateCartItemInput) (*model.CartResponse, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return &model.CartResponse{
			Success: false,
			Message: utils.StrPtr("Unauthorized"),
		}, nil
	}

	view, err := r.CartSvc.UpdateItemQuantity(ctx, cart.UpdateQuantityParams{
		UserID:    userID,
		ProductID: input.ProductID,
		Quantity:  int(input.Quantity),
	})
	if err != nil {
		return &model.CartResponse{
			Success: false,
			Message: utils.StrPtr(err.Error()),
		}, nil
	}

	return &model.CartResponse{
		Success: true,
		Message: utils.StrPtr("Cart updated"),
		Cart:    MapCartToGraphQL(view),
	}, nil
}

func (r *mutationResolver) RemoveFromCart(ctx context.Context, productID string) (*model.CartResponse, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return &model.CartResponse{
			Success: false,
			Message: utils.StrPtr("Unauthorized"),
		}, nil
	}

	view, err := r.CartSvc.RemoveItem(ctx, cart.RemoveItemParams{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		return &model.CartResponse{
			Success: false,
			Message: utils.StrPtr(err.Error()),
		}, nil
	}

	return &model.CartResponse{
		Success: true,
		Message: utils.StrPtr("Removed from cart"),
		Cart:    MapCartToGraphQL(view),
	}, nil
}

func (r *mutationResolver) ClearCart(ctx context.Context) (*model.CartResponse, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return &model.CartResponse{
			Success: false,
			Message: utils.StrPtr("Unauthorized"),
		}, nil
	}

	view, err := r.CartSvc.Clear(ctx, userID)
	if err != nil {
		return &model.CartResponse{
			Success: false,
			Message: utils.StrPtr(err.Error()),
		}, nil
	}

	return &model.CartResponse{
		Success: true,
		Message: utils.StrPtr("Cart cleared"),
		Cart:    MapCartToGraphQL(view),
	}, nil
}

func (r *queryResolver) MyCart(ctx context.Context) (*model.CartResponse, error) {
	log := logger.FromCtx(ctx)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Warn("unauthorized access to MyCart")
		return &model.CartResponse{
			Success: false,
			Message: utils.StrPtr("Unauthorized"),
		}, nil
	}

	view, err := r.CartSvc.GetCart(ctx, userID)
	if err != nil {
		log.Error("failed to fetch cart", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &model.CartResponse{
		Success: true,
		Cart:    MapCartToGraphQL(view),
	}, nil
}

func (r *queryResolver) CartCount(ctx context.Context) (int32, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return 0, nil
	}

	count, err := r.CartSvc.ItemCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	return int32(count), nil
}
