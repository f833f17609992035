package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetOrCreateCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).
			AddRow(10, 1, time.Now(), time.Now())

		mock.ExpectQuery("INSERT INTO carts").
			WithArgs(uint(1)).
			WillReturnRows(rows)

		c, err := repo.GetOrCreateCart(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, uint(10), c.ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO carts").
			WillReturnError(errors.New("db error"))

		_, err := repo.GetOrCreateCart(context.Background(), 1)
		assert.Error(t, err)
	})
}

func TestRepository_CreateItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := CreateItemParams{
		CartID:         10,
		ProductID:      "prod-1",
		Quantity:       2,
		UnitPriceAtAdd: 25.00,
	}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "cart_id", "product_id", "quantity", "unit_price_at_add", "created_at", "updated_at",
		}).AddRow(1, 10, "prod-1", 2, 25.00, time.Now(), time.Now())

		mock.ExpectQuery("INSERT INTO cart_items").
			WithArgs(params.CartID, params.ProductID, params.Quantity, params.UnitPriceAtAdd).
			WillReturnRows(rows)

		item, err := repo.CreateItem(context.Background(), params)
		assert.NoError(t, err)
		assert.Equal(t, 25.00, item.UnitPriceAtAdd)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WillReturnError(errors.New("db error"))

		_, err := repo.CreateItem(context.Background(), params)
		assert.Error(t, err)
	})
}

func TestRepository_UpdateItemQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE cart_items").
			WithArgs(5, uint(10), "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateItemQuantity(context.Background(), 10, "prod-1", 5)
		assert.NoError(t, err)
	})

	t.Run("NotInCart", func(t *testing.T) {
		mock.ExpectExec("UPDATE cart_items").
			WithArgs(5, uint(10), "prod-9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateItemQuantity(context.Background(), 10, "prod-9", 5)
		assert.ErrorIs(t, err, ErrNotInCart)
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		err := repo.UpdateItemQuantity(context.Background(), 10, "prod-1", 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestRepository_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(uint(10), "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RemoveItem(context.Background(), 10, "prod-1")
		assert.NoError(t, err)
	})

	t.Run("NotInCart", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(uint(10), "prod-9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveItem(context.Background(), 10, "prod-9")
		assert.ErrorIs(t, err, ErrNotInCart)
	})
}

func TestRepository_Clear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("EmptyCartIsStillSuccess", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Clear(context.Background(), 1)
		assert.NoError(t, err)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WillReturnError(errors.New("db error"))

		err := repo.Clear(context.Background(), 1)
		assert.Error(t, err)
	})
}

func TestRepository_GetCartRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("InsertionOrder", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "cart_id", "product_id", "name", "status",
			"quantity", "unit_price_at_add", "created_at", "updated_at",
		}).
			AddRow(1, 10, "prod-1", "Ceramic Vase", "AVAILABLE", 3, 25.00, time.Now().Add(-time.Hour), time.Now()).
			AddRow(2, 10, "prod-2", "Linocut Print", "AVAILABLE", 1, 40.00, time.Now(), time.Now())

		mock.ExpectQuery("SELECT(.|\n)+FROM cart_items").
			WithArgs(uint(1)).
			WillReturnRows(rows)

		result, err := repo.GetCartRows(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "prod-1", result[0].ProductID)
		assert.Equal(t, "prod-2", result[1].ProductID)
	})

	t.Run("NoCartYieldsEmpty", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)+FROM cart_items").
			WithArgs(uint(2)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "cart_id", "product_id", "name", "status",
				"quantity", "unit_price_at_add", "created_at", "updated_at",
			}))

		result, err := repo.GetCartRows(context.Background(), 2)
		assert.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestRepository_CountItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("SumsQuantities", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountItems(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, 7, count)
	})

	t.Run("NoCartIsZero", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(uint(2)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		count, err := repo.CountItems(context.Background(), 2)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
