package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"artisan-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// GetOrCreateCart returns the user's cart, creating it lazily on first
	// access.
	GetOrCreateCart(ctx context.Context, userID uint) (*Cart, error)
	GetItemByProduct(ctx context.Context, cartID uint, productID string) (*CartItem, error)
	CreateItem(ctx context.Context, params CreateItemParams) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID uint, productID string, quantity int) error
	RemoveItem(ctx context.Context, cartID uint, productID string) error
	Clear(ctx context.Context, userID uint) error
	// GetCartRows returns the joined view lines in insertion order. A user
	// with no cart gets an empty slice, not an error.
	GetCartRows(ctx context.Context, userID uint) ([]cartRow, error)
	CountItems(ctx context.Context, userID uint) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreateCart(ctx context.Context, userID uint) (*Cart, error) {
	// The no-op DO UPDATE makes RETURNING fire on both paths.
	query := `
	INSERT INTO carts (user_id)
	VALUES ($1)
	ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING id, user_id, created_at, updated_at
	`

	var c Cart
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&c.ID,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetItemByProduct(
	ctx context.Context,
	cartID uint,
	productID string,
) (*CartItem, error) {

	query := `
	SELECT
		id,
		cart_id,
		product_id,
		quantity,
		unit_price_at_add,
		created_at,
		updated_at
	FROM cart_items
	WHERE cart_id = $1 AND product_id = $2
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, cartID, productID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.UnitPriceAtAdd,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, params CreateItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.Uint("cart_id", params.CartID),
		zap.String("product_id", params.ProductID),
	)

	log.Debug("start create cart item")

	// On a concurrent first-add from the same user the unique pair
	// (cart_id, product_id) collides; fold the quantities and keep the
	// earlier price snapshot.
	query := `
	INSERT INTO cart_items (
		cart_id,
		product_id,
		quantity,
		unit_price_at_add
	)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (cart_id, product_id) DO UPDATE
	SET quantity = cart_items.quantity + EXCLUDED.quantity,
	    updated_at = NOW()
	RETURNING
		id,
		cart_id,
		product_id,
		quantity,
		unit_price_at_add,
		created_at,
		updated_at
	`

	var item CartItem
	err := r.db.QueryRowContext(
		ctx,
		query,
		params.CartID,
		params.ProductID,
		params.Quantity,
		params.UnitPriceAtAdd,
	).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.UnitPriceAtAdd,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item created",
		zap.Uint("cart_item_id", item.ID),
	)

	return &item, nil
}

func (r *repository) UpdateItemQuantity(
	ctx context.Context,
	cartID uint,
	productID string,
	quantity int,
) error {

	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE cart_id = $2 AND product_id = $3
	`, quantity, cartID, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotInCart
	}

	return nil
}

func (r *repository) RemoveItem(ctx context.Context, cartID uint, productID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotInCart
	}

	return nil
}

// Clear empties the cart unconditionally. An already-empty (or absent) cart
// is a success: checkout calls this after conversion and the user can call
// it at any time.
func (r *repository) Clear(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`, userID)
	return err
}

func (r *repository) GetCartRows(ctx context.Context, userID uint) ([]cartRow, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartRows"),
		zap.Uint("user_id", userID),
	)

	start := time.Now()

	query := `
	SELECT
		ci.id,
		ci.cart_id,
		ci.product_id,
		p.name,
		p.status,
		ci.quantity,
		ci.unit_price_at_add,
		ci.created_at,
		ci.updated_at
	FROM cart_items ci
	JOIN carts c ON ci.cart_id = c.id
	JOIN products p ON ci.product_id = p.id
	WHERE c.user_id = $1
	ORDER BY ci.created_at ASC, ci.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer rows.Close()

	result := make([]cartRow, 0)

	for rows.Next() {
		var row cartRow
		if err := rows.Scan(
			&row.ItemID,
			&row.CartID,
			&row.ProductID,
			&row.ProductName,
			&row.ProductStatus,
			&row.Quantity,
			&row.UnitPriceAtAdd,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("cart rows fetched",
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (r *repository) CountItems(ctx context.Context, userID uint) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(ci.quantity), 0)
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		WHERE c.user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
