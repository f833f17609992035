package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"artisan-be/internal/cart"
	"artisan-be/internal/inventory"
	"artisan-be/internal/logger"
	"artisan-be/internal/product"
	"artisan-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateFromCartTx converts the user's cart into an order inside a single
	// transaction: shell insert, per-line fresh product read, conditional
	// inventory decrement, snapshot line insert, total update, cart clear.
	// Any line failure rolls the whole conversion back.
	CreateFromCartTx(ctx context.Context, params CreateFromCartParams) (*Order, error)
	// CreateSingleItemTx is the legacy direct-buy path: the same algorithm
	// minus the cart read and clear.
	CreateSingleItemTx(ctx context.Context, params CreateSingleItemParams) (*Order, error)
	GetOrderByID(ctx context.Context, orderID uint) (*Order, error)
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	GetOrdersByUser(ctx context.Context, params ListParams) ([]*Order, error)
	SellerOwnsOrderLines(ctx context.Context, sellerID string, orderID uint) (bool, error)
	UpdateStatus(ctx context.Context, orderID uint, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type pendingLine struct {
	productID string
	quantity  int
}

func (r *repository) CreateFromCartTx(ctx context.Context, params CreateFromCartParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateFromCartTx"),
		zap.Uint("user_id", params.UserID),
		zap.String("order_number", params.Number),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// 1. Cart lines in insertion order.
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		WHERE c.user_id = $1
		ORDER BY ci.created_at ASC, ci.id ASC
	`, params.UserID)
	if err != nil {
		return nil, err
	}

	var pending []pendingLine
	for rows.Next() {
		var pl pendingLine
		if err := rows.Scan(&pl.productID, &pl.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		pending = append(pending, pl)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(pending) == 0 {
		return nil, cart.ErrCartEmpty
	}

	// 2. Order shell.
	o, err := insertOrderShell(ctx, tx, params.UserID, params.Number, params.DeliveryAddress, params.PaymentRef)
	if err != nil {
		return nil, err
	}

	// 3. Snapshot lines + decrement stock.
	for i, pl := range pending {
		line, err := convertLine(ctx, tx, o.ID, pl, i)
		if err != nil {
			log.Warn("line conversion failed, rolling back",
				zap.String("product_id", pl.productID),
				zap.Error(err),
			)
			return nil, err
		}
		o.Lines = append(o.Lines, *line)
		o.Total += line.LineTotal
	}

	// 4. Final total.
	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET total = $1, updated_at = NOW() WHERE id = $2
	`, o.Total, o.ID); err != nil {
		return nil, err
	}

	// 5. Clear the cart in the same transaction.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`, params.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return nil, err
	}
	committed = true

	log.Info("order created from cart",
		zap.Uint("order_id", o.ID),
		zap.Int("lines", len(o.Lines)),
		zap.Float64("total", o.Total),
	)

	return o, nil
}

func (r *repository) CreateSingleItemTx(ctx context.Context, params CreateSingleItemParams) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	o, err := insertOrderShell(ctx, tx, params.UserID, params.Number, params.DeliveryAddress, params.PaymentRef)
	if err != nil {
		return nil, err
	}

	line, err := convertLine(ctx, tx, o.ID, pendingLine{
		productID: params.ProductID,
		quantity:  params.Quantity,
	}, 0)
	if err != nil {
		return nil, err
	}
	o.Lines = append(o.Lines, *line)
	o.Total = line.LineTotal

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET total = $1, updated_at = NOW() WHERE id = $2
	`, o.Total, o.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return o, nil
}

func insertOrderShell(
	ctx context.Context,
	tx *sql.Tx,
	userID uint,
	number string,
	deliveryAddress string,
	paymentRef *string,
) (*Order, error) {

	o := &Order{
		Number:          number,
		UserID:          userID,
		Status:          StatusPending,
		DeliveryAddress: deliveryAddress,
		PaymentRef:      paymentRef,
	}

	err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (number, user_id, status, total, delivery_address, payment_ref)
		VALUES ($1, $2, $3, 0, $4, $5)
		RETURNING id, placed_at, updated_at
	`, number, userID, StatusPending, deliveryAddress, paymentRef).
		Scan(&o.ID, &o.PlacedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return o, nil
}

// convertLine snapshots one product into an order line. Name and price are
// read NOW, inside the transaction; the cart's add-time snapshot plays no
// part here. The ledger decrement is the atomic conditional update, so a
// concurrent checkout that drained the stock surfaces as
// InsufficientStockError and rolls this whole conversion back.
func convertLine(
	ctx context.Context,
	tx *sql.Tx,
	orderID uint,
	pl pendingLine,
	position int,
) (*OrderLine, error) {

	var name, status string
	var price float64
	err := tx.QueryRowContext(ctx, `
		SELECT name, price, status FROM products WHERE id = $1
	`, pl.productID).Scan(&name, &price, &status)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if status != utils.ProductStatusAvailable {
		return nil, &product.UnavailableError{ProductID: pl.productID, Name: name}
	}

	if err := inventory.DecrementExec(ctx, tx, pl.productID, pl.quantity); err != nil {
		return nil, err
	}

	line := &OrderLine{
		OrderID:     orderID,
		ProductID:   pl.productID,
		ProductName: name,
		UnitPrice:   price,
		Quantity:    pl.quantity,
		LineTotal:   price * float64(pl.quantity),
		Position:    position,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO order_lines (order_id, product_id, product_name, unit_price, quantity, line_total, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		line.OrderID,
		line.ProductID,
		line.ProductName,
		line.UnitPrice,
		line.Quantity,
		line.LineTotal,
		line.Position,
	).Scan(&line.ID)
	if err != nil {
		return nil, err
	}

	return line, nil
}

func (r *repository) GetOrderByID(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, number, user_id, total, status, delivery_address, payment_ref, placed_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(
		&o.ID,
		&o.Number,
		&o.UserID,
		&o.Total,
		&o.Status,
		&o.DeliveryAddress,
		&o.PaymentRef,
		&o.PlacedAt,
		&o.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	o, err := r.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, line_total, position
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLine
		if err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&line.ProductName,
			&line.UnitPrice,
			&line.Quantity,
			&line.LineTotal,
			&line.Position,
		); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) GetOrdersByUser(ctx context.Context, params ListParams) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrdersByUser"),
		zap.Uint("user_id", params.UserID),
	)

	// ---------- pagination ----------
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	page := params.Page
	if page <= 0 {
		page = 1
	}

	offset := (page - 1) * limit

	// ---------- query ----------
	query := `
		SELECT id, number, user_id, total, status, delivery_address, payment_ref, placed_at, updated_at
		FROM orders
		WHERE user_id = $1
	`
	args := []any{params.UserID}

	if params.Status != nil {
		query += ` AND status = $2`
		args = append(args, *params.Status)
	}

	query += ` ORDER BY placed_at DESC`
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.Number,
			&o.UserID,
			&o.Total,
			&o.Status,
			&o.DeliveryAddress,
			&o.PaymentRef,
			&o.PlacedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("orders fetched", zap.Int("count", len(orders)))

	return orders, nil
}

// SellerOwnsOrderLines reports whether the seller sold at least one line of
// the order. Ownership runs through the catalog: order_lines keep a product
// reference, products carry the seller.
func (r *repository) SellerOwnsOrderLines(ctx context.Context, sellerID string, orderID uint) (bool, error) {
	var owns bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM order_lines ol
			JOIN products p ON ol.product_id = p.id
			WHERE ol.order_id = $1 AND p.seller_id = $2
		)
	`, orderID, sellerID).Scan(&owns)
	if err != nil {
		return false, err
	}

	return owns, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
