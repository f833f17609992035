package checkout

import (
	"context"

	"artisan-be/internal/cart"
	"artisan-be/internal/inventory"
	"artisan-be/internal/logger"
	"artisan-be/internal/product"
	"artisan-be/internal/utils"

	"go.uber.org/zap"
)

// Line is a cart line priced at validation time. UnitPrice is the current
// catalog price, not the cart's display snapshot.
type Line struct {
	ProductID   string
	ProductName string
	UnitPrice   float64
	Quantity    int
	LineTotal   float64
}

// Validator re-checks the whole cart against current catalog and ledger
// state right before conversion. Time passes between "view cart" and "place
// order"; this is the staleness guard, not a reservation.
type Validator interface {
	Validate(ctx context.Context, userID uint) ([]Line, error)
}

type validator struct {
	cartSvc       cart.Service
	productRepo   product.Repository
	inventoryRepo inventory.Repository
}

func NewValidator(
	cartSvc cart.Service,
	productRepo product.Repository,
	inventoryRepo inventory.Repository,
) Validator {
	return &validator{
		cartSvc:       cartSvc,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (v *validator) Validate(ctx context.Context, userID uint) ([]Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "checkout"),
		zap.String("method", "Validate"),
		zap.Uint("user_id", userID),
	)

	view, err := v.cartSvc.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(view.Lines) == 0 {
		return nil, cart.ErrCartEmpty
	}

	lines := make([]Line, 0, len(view.Lines))

	for _, item := range view.Lines {
		// Fresh reads per line; the cart's snapshot is display-only.
		p, err := v.productRepo.GetProductByID(ctx, product.GetProductOptions{
			ProductID: item.ProductID,
		})
		if err != nil {
			return nil, err
		}

		if p.Status != utils.ProductStatusAvailable {
			log.Warn("product no longer available",
				zap.String("product_id", p.ID),
				zap.String("status", p.Status),
			)
			return nil, &product.UnavailableError{ProductID: p.ID, Name: p.Name}
		}

		available, unlimited, err := v.inventoryRepo.AvailableQuantity(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !unlimited && item.Quantity > available {
			return nil, &inventory.InsufficientStockError{
				ProductID: item.ProductID,
				Available: available,
				Requested: item.Quantity,
			}
		}

		lines = append(lines, Line{
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    item.Quantity,
			LineTotal:   p.Price * float64(item.Quantity),
		})
	}

	log.Debug("cart validated", zap.Int("lines", len(lines)))

	return lines, nil
}
