package cart

import (
	"context"
	"errors"

	"artisan-be/internal/inventory"
	"artisan-be/internal/logger"
	"artisan-be/internal/product"
	"artisan-be/internal/utils"

	"go.uber.org/zap"
)

// Service defines the business logic for carts. Every mutation returns the
// recomputed cart view so callers never render stale totals.
type Service interface {
	AddItem(ctx context.Context, params AddItemParams) (*CartView, error)
	UpdateItemQuantity(ctx context.Context, params UpdateQuantityParams) (*CartView, error)
	RemoveItem(ctx context.Context, params RemoveItemParams) (*CartView, error)
	Clear(ctx context.Context, userID uint) (*CartView, error)
	GetCart(ctx context.Context, userID uint) (*CartView, error)
	ItemCount(ctx context.Context, userID uint) (int, error)
}

type service struct {
	repo          Repository
	productRepo   product.Repository
	inventoryRepo inventory.Repository
}

func NewService(repo Repository, productRepo product.Repository, inventoryRepo inventory.Repository) Service {
	return &service{
		repo:          repo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// AddItem puts qty units of a product into the user's cart. Re-adding a
// product already in the cart folds into the existing line; the price
// snapshot stays at first-add time.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*CartView, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
		zap.Int("quantity", params.Quantity),
	)

	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// 1. Fresh catalog read; only AVAILABLE products may enter a cart.
	p, err := s.productRepo.GetProductByID(ctx, product.GetProductOptions{
		ProductID: params.ProductID,
	})
	if err != nil {
		return nil, err
	}
	if p.Status != utils.ProductStatusAvailable {
		log.Warn("product not available", zap.String("status", p.Status))
		return nil, &product.UnavailableError{ProductID: p.ID, Name: p.Name}
	}

	// 2. Existing line (if any) counts toward the stock check.
	cart, err := s.repo.GetOrCreateCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItemByProduct(ctx, cart.ID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	// 3. Stock check against the ledger. Cart contents hold no reservation,
	// so this is advisory until checkout re-validates.
	available, unlimited, err := s.inventoryRepo.AvailableQuantity(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}
	if !unlimited && finalQty > available {
		return nil, &inventory.InsufficientStockError{
			ProductID: params.ProductID,
			Available: available,
			Requested: finalQty,
		}
	}

	// 4. Create or merge the line.
	if existing == nil {
		_, err = s.repo.CreateItem(ctx, CreateItemParams{
			CartID:         cart.ID,
			ProductID:      params.ProductID,
			Quantity:       params.Quantity,
			UnitPriceAtAdd: p.Price,
		})
	} else {
		err = s.repo.UpdateItemQuantity(ctx, cart.ID, params.ProductID, finalQty)
	}
	if err != nil {
		return nil, err
	}

	log.Info("item added to cart", zap.Int("final_quantity", finalQty))

	return s.GetCart(ctx, params.UserID)
}

// UpdateItemQuantity replaces a line's quantity. The stock check uses raw
// current availability: the line's own quantity earns no credit because cart
// contents are never reserved.
func (s *service) UpdateItemQuantity(ctx context.Context, params UpdateQuantityParams) (*CartView, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.repo.GetOrCreateCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItemByProduct(ctx, cart.ID, params.ProductID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotInCart
	}

	available, unlimited, err := s.inventoryRepo.AvailableQuantity(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}
	if !unlimited && params.Quantity > available {
		return nil, &inventory.InsufficientStockError{
			ProductID: params.ProductID,
			Available: available,
			Requested: params.Quantity,
		}
	}

	if err := s.repo.UpdateItemQuantity(ctx, cart.ID, params.ProductID, params.Quantity); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, params.UserID)
}

func (s *service) RemoveItem(ctx context.Context, params RemoveItemParams) (*CartView, error) {
	cart, err := s.repo.GetOrCreateCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, params.ProductID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, params.UserID)
}

func (s *service) Clear(ctx context.Context, userID uint) (*CartView, error) {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// GetCart builds the display view. Line totals use the add-time snapshot so
// the cart a user is browsing does not shuffle under catalog edits; the
// checkout pipeline works from fresh prices instead.
func (s *service) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	rows, err := s.repo.GetCartRows(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Lines: make([]*CartLineView, 0, len(rows))}

	for _, row := range rows {
		lineTotal := row.UnitPriceAtAdd * float64(row.Quantity)

		view.Lines = append(view.Lines, &CartLineView{
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			Quantity:       row.Quantity,
			UnitPriceAtAdd: row.UnitPriceAtAdd,
			LineTotal:      lineTotal,
		})

		view.Total += lineTotal
		view.ItemCount += row.Quantity
	}

	return view, nil
}

// ItemCount backs the UI badge. A user without a cart gets 0, never an
// error, and nothing is created.
func (s *service) ItemCount(ctx context.Context, userID uint) (int, error) {
	if userID == 0 {
		return 0, errors.New("user ID is required")
	}

	return s.repo.CountItems(ctx, userID)
}
