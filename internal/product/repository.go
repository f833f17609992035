package product

import (
	"context"
	"database/sql"
	"errors"

	"artisan-be/internal/logger"
	"artisan-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	// GetProductByID always reads the current catalog row; callers rely on
	// this being fresh at both cart-mutation time and order-conversion time.
	GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error)
	UpdatePrice(ctx context.Context, params UpdatePriceParams) (*Product, error)
	SetStatus(ctx context.Context, params SetStatusParams) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	query := `
	SELECT
		id,
		seller_id,
		name,
		price,
		status,
		description,
		image_url,
		created_at,
		updated_at
	FROM products
	WHERE id = $1
	`

	args := []any{opts.ProductID}
	if opts.OnlyAvailable {
		query += ` AND status = $2`
		args = append(args, utils.ProductStatusAvailable)
	}

	var p Product
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.SellerID,
		&p.Name,
		&p.Price,
		&p.Status,
		&p.Description,
		&p.ImageUrl,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpdatePrice(ctx context.Context, params UpdatePriceParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdatePrice"),
		zap.String("product_id", params.ProductID),
		zap.Float64("price", params.Price),
	)

	query := `
	UPDATE products
	SET price = $1,
	    updated_at = NOW()
	WHERE id = $2 AND seller_id = $3
	RETURNING
		id, seller_id, name, price, status,
		description, image_url, created_at, updated_at
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, params.Price, params.ProductID, params.SellerID).Scan(
		&p.ID,
		&p.SellerID,
		&p.Name,
		&p.Price,
		&p.Status,
		&p.Description,
		&p.ImageUrl,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to update price", zap.Error(err))
		return nil, err
	}

	log.Info("product price updated")
	return &p, nil
}

func (r *repository) SetStatus(ctx context.Context, params SetStatusParams) (*Product, error) {
	query := `
	UPDATE products
	SET status = $1,
	    updated_at = NOW()
	WHERE id = $2 AND seller_id = $3
	RETURNING
		id, seller_id, name, price, status,
		description, image_url, created_at, updated_at
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, params.Status, params.ProductID, params.SellerID).Scan(
		&p.ID,
		&p.SellerID,
		&p.Name,
		&p.Price,
		&p.Status,
		&p.Description,
		&p.ImageUrl,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
