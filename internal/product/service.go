package product

import (
	"context"
	"errors"

	"artisan-be/internal/utils"
)

type Service interface {
	GetProductByID(ctx context.Context, productID string) (*Product, error)
	UpdatePrice(ctx context.Context, productID string, price float64) (*Product, error)
	SetStatus(ctx context.Context, productID string, status string) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProductByID(ctx context.Context, productID string) (*Product, error) {
	if productID == "" {
		return nil, errors.New("product id is required")
	}

	return s.repo.GetProductByID(ctx, GetProductOptions{ProductID: productID})
}

// UpdatePrice changes a product's unit price. Orders already placed are not
// affected: their lines carry the price snapshot taken at purchase time.
func (s *service) UpdatePrice(ctx context.Context, productID string, price float64) (*Product, error) {
	if productID == "" {
		return nil, errors.New("product id is required")
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	sellerID := utils.GetSellerIDFromContext(ctx)
	if sellerID == "" {
		return nil, errors.New("unauthorized: seller ID not found in context")
	}

	return s.repo.UpdatePrice(ctx, UpdatePriceParams{
		ProductID: productID,
		SellerID:  sellerID,
		Price:     price,
	})
}

func (s *service) SetStatus(ctx context.Context, productID string, status string) (*Product, error) {
	if productID == "" {
		return nil, errors.New("product id is required")
	}

	if status != utils.ProductStatusAvailable && status != utils.ProductStatusUnavailable {
		return nil, ErrInvalidStatus
	}

	sellerID := utils.GetSellerIDFromContext(ctx)
	if sellerID == "" {
		return nil, errors.New("unauthorized: seller ID not found in context")
	}

	return s.repo.SetStatus(ctx, SetStatusParams{
		ProductID: productID,
		SellerID:  sellerID,
		Status:    status,
	})
}
