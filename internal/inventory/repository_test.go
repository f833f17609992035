package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_AvailableQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"available", "unlimited"}).AddRow(7, false)

		mock.ExpectQuery("SELECT quantity_on_hand - quantity_reserved, unlimited").
			WithArgs("prod-1").
			WillReturnRows(rows)

		available, unlimited, err := repo.AvailableQuantity(context.Background(), "prod-1")
		assert.NoError(t, err)
		assert.Equal(t, 7, available)
		assert.False(t, unlimited)
	})

	t.Run("Unlimited", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"available", "unlimited"}).AddRow(0, true)

		mock.ExpectQuery("SELECT quantity_on_hand - quantity_reserved, unlimited").
			WithArgs("prod-digital").
			WillReturnRows(rows)

		_, unlimited, err := repo.AvailableQuantity(context.Background(), "prod-digital")
		assert.NoError(t, err)
		assert.True(t, unlimited)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT quantity_on_hand - quantity_reserved, unlimited").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"available", "unlimited"}))

		_, _, err := repo.AvailableQuantity(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})
}

func TestRepository_GetByProductID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"product_id", "quantity_on_hand", "quantity_reserved", "unlimited", "updated_at",
		}).AddRow("prod-1", 10, 0, false, time.Now())

		mock.ExpectQuery("SELECT(.|\n)+FROM inventory").
			WithArgs("prod-1").
			WillReturnRows(rows)

		rec, err := repo.GetByProductID(context.Background(), "prod-1")
		assert.NoError(t, err)
		assert.Equal(t, 10, rec.QuantityOnHand)
		assert.Equal(t, 10, rec.Available())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\n)+FROM inventory").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{
				"product_id", "quantity_on_hand", "quantity_reserved", "unlimited", "updated_at",
			}))

		_, err := repo.GetByProductID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})
}

func TestRepository_Decrement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(3, "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Decrement(context.Background(), "prod-1", 3)
		assert.NoError(t, err)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(6, "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery("SELECT quantity_on_hand - quantity_reserved, unlimited").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows([]string{"available", "unlimited"}).AddRow(4, false))

		err := repo.Decrement(context.Background(), "prod-1", 6)

		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 4, stockErr.Available)
		assert.Equal(t, 6, stockErr.Requested)
		assert.Equal(t,
			"Insufficient stock for product: prod-1. Available: 4, Requested: 6",
			stockErr.Error(),
		)
	})

	t.Run("UnlimitedIsNoOp", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(100, "prod-digital").
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery("SELECT quantity_on_hand - quantity_reserved, unlimited").
			WithArgs("prod-digital").
			WillReturnRows(sqlmock.NewRows([]string{"available", "unlimited"}).AddRow(0, true))

		err := repo.Decrement(context.Background(), "prod-digital", 100)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(1, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery("SELECT quantity_on_hand - quantity_reserved, unlimited").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"available", "unlimited"}))

		err := repo.Decrement(context.Background(), "missing", 1)
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		err := repo.Decrement(context.Background(), "prod-1", 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WillReturnError(errors.New("db error"))

		err := repo.Decrement(context.Background(), "prod-1", 1)
		assert.Error(t, err)
	})
}

func TestRepository_SetStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := SetStockParams{
		ProductID: "prod-1",
		SellerID:  "seller-1",
		Quantity:  25,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("prod-1", "seller-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		rows := sqlmock.NewRows([]string{
			"product_id", "quantity_on_hand", "quantity_reserved", "unlimited", "updated_at",
		}).AddRow("prod-1", 25, 0, false, time.Now())

		mock.ExpectQuery("INSERT INTO inventory").
			WithArgs("prod-1", 25, false).
			WillReturnRows(rows)

		rec, err := repo.SetStock(context.Background(), params)
		assert.NoError(t, err)
		assert.Equal(t, 25, rec.QuantityOnHand)
	})

	t.Run("NotOwned", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("prod-1", "seller-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.SetStock(context.Background(), params)
		assert.ErrorIs(t, err, ErrStockNotOwned)
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		_, err := repo.SetStock(context.Background(), SetStockParams{
			ProductID: "prod-1",
			SellerID:  "seller-1",
			Quantity:  -1,
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}
