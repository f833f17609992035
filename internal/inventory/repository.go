package inventory

import (
	"context"
	"database/sql"
	"errors"

	"artisan-be/internal/logger"

	"go.uber.org/zap"
)

// Querier is the slice of database/sql shared by *sql.DB and *sql.Tx. The
// order conversion engine runs Decrement inside its own transaction, so the
// ledger's single mutation point has to work against either.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository interface {
	GetByProductID(ctx context.Context, productID string) (*Record, error)
	// AvailableQuantity returns on-hand minus reserved, plus the unlimited
	// flag. Unlimited records report available as 0; callers must treat the
	// flag as "no cap".
	AvailableQuantity(ctx context.Context, productID string) (int, bool, error)
	Decrement(ctx context.Context, productID string, amount int) error
	SetStock(ctx context.Context, params SetStockParams) (*Record, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByProductID(ctx context.Context, productID string) (*Record, error) {
	query := `
	SELECT
		product_id,
		quantity_on_hand,
		quantity_reserved,
		unlimited,
		updated_at
	FROM inventory
	WHERE product_id = $1
	`

	var rec Record
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&rec.ProductID,
		&rec.QuantityOnHand,
		&rec.QuantityReserved,
		&rec.Unlimited,
		&rec.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInventoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) AvailableQuantity(ctx context.Context, productID string) (int, bool, error) {
	query := `
	SELECT quantity_on_hand - quantity_reserved, unlimited
	FROM inventory
	WHERE product_id = $1
	`

	var available int
	var unlimited bool
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&available, &unlimited)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, ErrInventoryNotFound
	}
	if err != nil {
		return 0, false, err
	}

	return available, unlimited, nil
}

func (r *repository) Decrement(ctx context.Context, productID string, amount int) error {
	return DecrementExec(ctx, r.db, productID, amount)
}

// DecrementExec subtracts amount from quantity-on-hand as a single
// conditional update. The WHERE clause is the oversell guard: two checkouts
// racing for the same stock cannot both pass it, whatever order the database
// schedules them in. Unlimited records succeed without being touched.
func DecrementExec(ctx context.Context, q Querier, productID string, amount int) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}

	res, err := q.ExecContext(ctx, `
		UPDATE inventory
		SET quantity_on_hand = quantity_on_hand - $1,
		    updated_at = NOW()
		WHERE product_id = $2
		  AND NOT unlimited
		  AND quantity_on_hand - quantity_reserved >= $1
	`, amount, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	// Rejected: distinguish unlimited (no-op success), missing record, and
	// genuine shortage. The re-read is only for error reporting; the guard
	// above already decided the outcome.
	var available int
	var unlimited bool
	err = q.QueryRowContext(ctx, `
		SELECT quantity_on_hand - quantity_reserved, unlimited
		FROM inventory
		WHERE product_id = $1
	`, productID).Scan(&available, &unlimited)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrInventoryNotFound
	}
	if err != nil {
		return err
	}

	if unlimited {
		return nil
	}

	return &InsufficientStockError{
		ProductID: productID,
		Available: available,
		Requested: amount,
	}
}

// SetStock is the seller-facing absolute set. It upserts so a product can be
// given a ledger row after the fact.
func (r *repository) SetStock(ctx context.Context, params SetStockParams) (*Record, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SetStock"),
		zap.String("product_id", params.ProductID),
		zap.Int("quantity", params.Quantity),
		zap.Bool("unlimited", params.Unlimited),
	)

	if params.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	var owned bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND seller_id = $2)
	`, params.ProductID, params.SellerID).Scan(&owned)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrStockNotOwned
	}

	query := `
	INSERT INTO inventory (product_id, quantity_on_hand, quantity_reserved, unlimited)
	VALUES ($1, $2, 0, $3)
	ON CONFLICT (product_id) DO UPDATE
	SET quantity_on_hand = EXCLUDED.quantity_on_hand,
	    unlimited = EXCLUDED.unlimited,
	    updated_at = NOW()
	RETURNING product_id, quantity_on_hand, quantity_reserved, unlimited, updated_at
	`

	var rec Record
	err = r.db.QueryRowContext(ctx, query, params.ProductID, params.Quantity, params.Unlimited).Scan(
		&rec.ProductID,
		&rec.QuantityOnHand,
		&rec.QuantityReserved,
		&rec.Unlimited,
		&rec.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to set stock", zap.Error(err))
		return nil, err
	}

	log.Info("stock set")
	return &rec, nil
}
