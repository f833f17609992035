package graph

import (
	"context"
	"errors"

	"artisan-be/internal/graph/model"
	"artisan-be/internal/inventory"
	"artisan-be/internal/utils"
)

func (r *queryResolver) Product(ctx context.Context, id string) (*model.Product, error) {
	p, err := r.ProductSvc.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return MapProductToGraphQL(p), nil
}

// UpdateProductPrice changes the catalog price going forward. Existing carts
// keep showing their add-time snapshot; existing orders are untouched.
func (r *mutationResolver) UpdateProductPrice(ctx context.Context, input model.UpdatePriceInput) (*model.Product, error) {
	p, err := r.ProductSvc.UpdatePrice(ctx, input.ProductID, input.Price)
	if err != nil {
		return nil, err
	}

	return MapProductToGraphQL(p), nil
}

func (r *mutationResolver) SetProductStatus(ctx context.Context, input model.SetProductStatusInput) (*model.Product, error) {
	p, err := r.ProductSvc.SetStatus(ctx, input.ProductID, string(input.Status))
	if err != nil {
		return nil, err
	}

	return MapProductToGraphQL(p), nil
}

func (r *mutationResolver) SetStock(ctx context.Context, input model.SetStockInput) (*model.StockRecord, error) {
	sellerID := utils.GetSellerIDFromContext(ctx)
	if sellerID == "" {
		return nil, errors.New("forbidden: seller only")
	}

	rec, err := r.InventoryRepo.SetStock(ctx, inventory.SetStockParams{
		ProductID: input.ProductID,
		SellerID:  sellerID,
		Quantity:  int(input.Quantity),
		Unlimited: input.Unlimited != nil && *input.Unlimited,
	})
	if err != nil {
		return nil, err
	}

	return MapStockToGraphQL(rec), nil
}
