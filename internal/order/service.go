package order

import (
	"context"
	"errors"

	"artisan-be/internal/checkout"
	"artisan-be/internal/inventory"
	"artisan-be/internal/logger"
	"artisan-be/internal/metrics"
	"artisan-be/internal/payment"
	"artisan-be/internal/product"
	"artisan-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	// PlaceOrderFromCart converts the caller's cart into an immutable order.
	// Success returns the complete order and an empty cart; any failure
	// returns the specific error with nothing mutated.
	PlaceOrderFromCart(ctx context.Context, userID uint, deliveryAddress, paymentToken string) (*Order, error)
	// PlaceOrder is the legacy single-item path: same algorithm, no cart.
	PlaceOrder(ctx context.Context, userID uint, productID string, quantity int, deliveryAddress, paymentToken string) (*Order, error)
	GetOrderDetail(ctx context.Context, userID, orderID uint) (*Order, error)
	GetMyOrders(ctx context.Context, userID uint, status *string, limit, page *int32) ([]*Order, error)
	UpdateStatus(ctx context.Context, sellerID string, orderID uint, newStatus string) (*Order, error)
}

type service struct {
	repo          Repository
	validator     checkout.Validator
	productRepo   product.Repository
	inventoryRepo inventory.Repository
	gateway       payment.Gateway
	checkoutStats *metrics.Checkout
}

func NewService(
	repo Repository,
	validator checkout.Validator,
	productRepo product.Repository,
	inventoryRepo inventory.Repository,
	gateway payment.Gateway,
	checkoutStats *metrics.Checkout,
) Service {
	return &service{
		repo:          repo,
		validator:     validator,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		gateway:       gateway,
		checkoutStats: checkoutStats,
	}
}

func (s *service) PlaceOrderFromCart(
	ctx context.Context,
	userID uint,
	deliveryAddress string,
	paymentToken string,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrderFromCart"),
		zap.Uint("user_id", userID),
	)

	timer := metrics.StartTimer()

	if deliveryAddress == "" {
		return nil, errors.New("delivery address is required")
	}

	// 1. Re-validate everything before any mutation.
	lines, err := s.validator.Validate(ctx, userID)
	if err != nil {
		s.recordFailure(err)
		log.Warn("checkout validation failed", zap.Error(err))
		return nil, err
	}

	var total float64
	for _, line := range lines {
		total += line.LineTotal
	}

	number := utils.GenerateOrderNumber()

	// 2. Simulated charge. A decline aborts with nothing mutated.
	receipt, err := s.gateway.Charge(ctx, payment.ChargeParams{
		Token:       paymentToken,
		Amount:      total,
		UserEmail:   utils.GetUserEmailFromContext(ctx),
		OrderNumber: number,
	})
	if err != nil {
		if errors.Is(err, payment.ErrPaymentDeclined) {
			s.checkoutStats.PaymentsDeclined.Inc()
		}
		s.checkoutStats.CheckoutFailures.Inc()
		return nil, err
	}

	// 3. Conversion transaction: snapshots, decrements, cart clear — all or
	// nothing. The validator result is advisory; the transaction re-reads
	// and re-checks, catching races between steps 1 and 3.
	o, err := s.repo.CreateFromCartTx(ctx, CreateFromCartParams{
		UserID:          userID,
		Number:          number,
		DeliveryAddress: deliveryAddress,
		PaymentRef:      &receipt.ID,
	})
	if err != nil {
		s.recordFailure(err)
		log.Warn("order conversion failed", zap.Error(err))
		return nil, err
	}

	s.checkoutStats.OrdersPlaced.Inc()

	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.String("order_number", o.Number),
		zap.Float64("total", o.Total),
		zap.Int("lines", len(o.Lines)),
		zap.Duration("duration", timer.Duration()),
	)

	return o, nil
}

func (s *service) PlaceOrder(
	ctx context.Context,
	userID uint,
	productID string,
	quantity int,
	deliveryAddress string,
	paymentToken string,
) (*Order, error) {

	if deliveryAddress == "" {
		return nil, errors.New("delivery address is required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be greater than zero")
	}

	// Same pre-checks the validator runs per cart line.
	p, err := s.productRepo.GetProductByID(ctx, product.GetProductOptions{ProductID: productID})
	if err != nil {
		return nil, err
	}
	if p.Status != utils.ProductStatusAvailable {
		return nil, &product.UnavailableError{ProductID: p.ID, Name: p.Name}
	}

	available, unlimited, err := s.inventoryRepo.AvailableQuantity(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !unlimited && quantity > available {
		return nil, &inventory.InsufficientStockError{
			ProductID: productID,
			Available: available,
			Requested: quantity,
		}
	}

	number := utils.GenerateOrderNumber()

	receipt, err := s.gateway.Charge(ctx, payment.ChargeParams{
		Token:       paymentToken,
		Amount:      p.Price * float64(quantity),
		UserEmail:   utils.GetUserEmailFromContext(ctx),
		OrderNumber: number,
	})
	if err != nil {
		s.checkoutStats.CheckoutFailures.Inc()
		return nil, err
	}

	o, err := s.repo.CreateSingleItemTx(ctx, CreateSingleItemParams{
		UserID:          userID,
		ProductID:       productID,
		Quantity:        quantity,
		Number:          number,
		DeliveryAddress: deliveryAddress,
		PaymentRef:      &receipt.ID,
	})
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	s.checkoutStats.OrdersPlaced.Inc()

	return o, nil
}

// GetOrderDetail only serves the order's owner.
func (s *service) GetOrderDetail(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.UserID != userID {
		return nil, ErrForbidden
	}

	return o, nil
}

func (s *service) GetMyOrders(ctx context.Context, userID uint, status *string, limit, page *int32) ([]*Order, error) {
	params := ListParams{
		UserID: userID,
		Limit:  utils.PtrInt32(limit),
		Page:   utils.PtrInt32(page),
	}

	if status != nil && *status != "" {
		parsed, err := ParseStatus(*status)
		if err != nil {
			return nil, err
		}
		params.Status = &parsed
	}

	return s.repo.GetOrdersByUser(ctx, params)
}

// UpdateStatus is the fulfillment workflow: any seller who sold at least one
// line may move the order to any of the five statuses. Inventory is never
// touched here — cancelling does not restock.
func (s *service) UpdateStatus(ctx context.Context, sellerID string, orderID uint, newStatus string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("seller_id", sellerID),
		zap.Uint("order_id", orderID),
		zap.String("new_status", newStatus),
	)

	status, err := ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	owns, err := s.repo.SellerOwnsOrderLines(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	if !owns {
		log.Warn("seller owns no lines in order")
		return nil, ErrForbidden
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	o.Status = status

	log.Info("order status updated")

	return o, nil
}

func (s *service) recordFailure(err error) {
	var stockErr *inventory.InsufficientStockError
	if errors.As(err, &stockErr) {
		s.checkoutStats.StockConflicts.Inc()
	}
	s.checkoutStats.CheckoutFailures.Inc()
}
