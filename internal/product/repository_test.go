package product

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows(id, sellerID, name string, price float64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "seller_id", "name", "price", "status",
		"description", "image_url", "created_at", "updated_at",
	}).AddRow(id, sellerID, name, price, status, nil, nil, time.Now(), time.Now())
}

func TestRepository_GetProductByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)*FROM products").
			WithArgs("prod-1").
			WillReturnRows(productRows("prod-1", "seller-1", "Ceramic Vase", 25.00, "AVAILABLE"))

		p, err := repo.GetProductByID(context.Background(), GetProductOptions{ProductID: "prod-1"})

		require.NoError(t, err)
		assert.Equal(t, "Ceramic Vase", p.Name)
		assert.Equal(t, 25.00, p.Price)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)*FROM products").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "seller_id", "name", "price", "status",
				"description", "image_url", "created_at", "updated_at",
			}))

		_, err := repo.GetProductByID(context.Background(), GetProductOptions{ProductID: "ghost"})

		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("OnlyAvailable", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)*FROM products(.|\n)*status = \\$2").
			WithArgs("prod-1", "AVAILABLE").
			WillReturnRows(productRows("prod-1", "seller-1", "Ceramic Vase", 25.00, "AVAILABLE"))

		p, err := repo.GetProductByID(context.Background(), GetProductOptions{
			ProductID:     "prod-1",
			OnlyAvailable: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "AVAILABLE", p.Status)
	})
}

func TestRepository_UpdatePrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE products(.|\n)*SET price").
			WithArgs(30.00, "prod-1", "seller-1").
			WillReturnRows(productRows("prod-1", "seller-1", "Ceramic Vase", 30.00, "AVAILABLE"))

		p, err := repo.UpdatePrice(context.Background(), UpdatePriceParams{
			ProductID: "prod-1",
			SellerID:  "seller-1",
			Price:     30.00,
		})

		require.NoError(t, err)
		assert.Equal(t, 30.00, p.Price)
	})

	t.Run("NotOwned", func(t *testing.T) {
		mock.ExpectQuery("UPDATE products(.|\n)*SET price").
			WithArgs(30.00, "prod-1", "seller-2").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "seller_id", "name", "price", "status",
				"description", "image_url", "created_at", "updated_at",
			}))

		_, err := repo.UpdatePrice(context.Background(), UpdatePriceParams{
			ProductID: "prod-1",
			SellerID:  "seller-2",
			Price:     30.00,
		})

		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_SetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("UPDATE products(.|\n)*SET status").
		WithArgs("UNAVAILABLE", "prod-1", "seller-1").
		WillReturnRows(productRows("prod-1", "seller-1", "Ceramic Vase", 25.00, "UNAVAILABLE"))

	p, err := repo.SetStatus(context.Background(), SetStatusParams{
		ProductID: "prod-1",
		SellerID:  "seller-1",
		Status:    "UNAVAILABLE",
	})

	require.NoError(t, err)
	assert.Equal(t, "UNAVAILABLE", p.Status)
}
