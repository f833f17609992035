package order

import (
	"context"
	"testing"
	"time"

	"artisan-be/internal/cart"
	"artisan-be/internal/inventory"
	"artisan-be/internal/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartLinesRows(lines ...[2]any) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"product_id", "quantity"})
	for _, l := range lines {
		rows.AddRow(l[0], l[1])
	}
	return rows
}

func expectOrderShell(mock sqlmock.Sqlmock, orderID uint) {
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "placed_at", "updated_at"}).
			AddRow(orderID, time.Now(), time.Now()))
}

func TestRepository_CreateFromCartTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id, ci.quantity").
		WithArgs(uint(1)).
		WillReturnRows(cartLinesRows([2]any{"prod-1", 3}))
	expectOrderShell(mock, 7)
	mock.ExpectQuery("SELECT name, price, status FROM products").
		WithArgs("prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "price", "status"}).
			AddRow("Ceramic Vase", 25.00, "AVAILABLE"))
	mock.ExpectExec("UPDATE inventory").
		WithArgs(3, "prod-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO order_lines").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE orders SET total").
		WithArgs(75.00, uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ref := "sim_123"
	o, err := repo.CreateFromCartTx(context.Background(), CreateFromCartParams{
		UserID:          1,
		Number:          "ORD-TEST",
		DeliveryAddress: "12 Clay Street",
		PaymentRef:      &ref,
	})

	require.NoError(t, err)
	assert.Equal(t, 75.00, o.Total)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, 3, o.Lines[0].Quantity)
	assert.Equal(t, 25.00, o.Lines[0].UnitPrice)
	assert.Equal(t, "Ceramic Vase", o.Lines[0].ProductName)
	assert.Equal(t, StatusPending, o.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateFromCartTx_EmptyCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id, ci.quantity").
		WithArgs(uint(1)).
		WillReturnRows(cartLinesRows())
	mock.ExpectRollback()

	_, err = repo.CreateFromCartTx(context.Background(), CreateFromCartParams{
		UserID:          1,
		Number:          "ORD-TEST",
		DeliveryAddress: "12 Clay Street",
	})

	assert.ErrorIs(t, err, cart.ErrCartEmpty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A later line failing must revert the decrements already applied for
// earlier lines: the whole conversion rides one transaction.
func TestRepository_CreateFromCartTx_RollsBackOnLaterLineFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id, ci.quantity").
		WithArgs(uint(1)).
		WillReturnRows(cartLinesRows([2]any{"prod-1", 2}, [2]any{"prod-2", 6}))
	expectOrderShell(mock, 8)

	// line 1 converts fine
	mock.ExpectQuery("SELECT name, price, status FROM products").
		WithArgs("prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "price", "status"}).
			AddRow("Ceramic Vase", 25.00, "AVAILABLE"))
	mock.ExpectExec("UPDATE inventory").
		WithArgs(2, "prod-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO order_lines").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// line 2 hits the stock guard
	mock.ExpectQuery("SELECT name, price, status FROM products").
		WithArgs("prod-2").
		WillReturnRows(sqlmock.NewRows([]string{"name", "price", "status"}).
			AddRow("Linocut Print", 40.00, "AVAILABLE"))
	mock.ExpectExec("UPDATE inventory").
		WithArgs(6, "prod-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT quantity_on_hand - quantity_reserved, unlimited").
		WithArgs("prod-2").
		WillReturnRows(sqlmock.NewRows([]string{"available", "unlimited"}).AddRow(4, false))

	mock.ExpectRollback()

	_, err = repo.CreateFromCartTx(context.Background(), CreateFromCartParams{
		UserID:          1,
		Number:          "ORD-TEST",
		DeliveryAddress: "12 Clay Street",
	})

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateFromCartTx_ProductWentUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ci.product_id, ci.quantity").
		WithArgs(uint(1)).
		WillReturnRows(cartLinesRows([2]any{"prod-1", 1}))
	expectOrderShell(mock, 9)
	mock.ExpectQuery("SELECT name, price, status FROM products").
		WithArgs("prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "price", "status"}).
			AddRow("Ceramic Vase", 25.00, "UNAVAILABLE"))
	mock.ExpectRollback()

	_, err = repo.CreateFromCartTx(context.Background(), CreateFromCartParams{
		UserID:          1,
		Number:          "ORD-TEST",
		DeliveryAddress: "12 Clay Street",
	})

	var unavailable *product.UnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateSingleItemTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectBegin()
	expectOrderShell(mock, 11)
	mock.ExpectQuery("SELECT name, price, status FROM products").
		WithArgs("prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "price", "status"}).
			AddRow("Ceramic Vase", 25.00, "AVAILABLE"))
	mock.ExpectExec("UPDATE inventory").
		WithArgs(2, "prod-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO order_lines").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE orders SET total").
		WithArgs(50.00, uint(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	o, err := repo.CreateSingleItemTx(context.Background(), CreateSingleItemParams{
		UserID:          1,
		ProductID:       "prod-1",
		Quantity:        2,
		Number:          "ORD-TEST",
		DeliveryAddress: "12 Clay Street",
	})

	require.NoError(t, err)
	assert.Equal(t, 50.00, o.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Order detail reads only the snapshot columns; later catalog edits cannot
// leak into what the order shows.
func TestRepository_GetOrderDetail_ServesSnapshots(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT id, number, user_id, total, status").
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "number", "user_id", "total", "status",
			"delivery_address", "payment_ref", "placed_at", "updated_at",
		}).AddRow(7, "ORD-TEST", 1, 75.00, "PENDING", "12 Clay Street", nil, time.Now(), time.Now()))

	mock.ExpectQuery("SELECT id, order_id, product_id, product_name, unit_price").
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_id", "product_id", "product_name", "unit_price", "quantity", "line_total", "position",
		}).AddRow(1, 7, "prod-1", "Ceramic Vase", 25.00, 3, 75.00, 0))

	o, err := repo.GetOrderDetail(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, 25.00, o.Lines[0].UnitPrice)
	assert.Equal(t, "Ceramic Vase", o.Lines[0].ProductName)
	assert.Equal(t, 75.00, o.Total)
}

func TestRepository_GetOrderByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT id, number, user_id, total, status").
		WithArgs(uint(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "number", "user_id", "total", "status",
			"delivery_address", "payment_ref", "placed_at", "updated_at",
		}))

	_, err = repo.GetOrderByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRepository_SellerOwnsOrderLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Owns", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(uint(7), "seller-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		owns, err := repo.SellerOwnsOrderLines(context.Background(), "seller-1", 7)
		assert.NoError(t, err)
		assert.True(t, owns)
	})

	t.Run("DoesNotOwn", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(uint(7), "seller-2").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		owns, err := repo.SellerOwnsOrderLines(context.Background(), "seller-2", 7)
		assert.NoError(t, err)
		assert.False(t, owns)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusShipped, uint(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 7, StatusShipped)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusShipped, uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 99, StatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_GetOrdersByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "number", "user_id", "total", "status",
		"delivery_address", "payment_ref", "placed_at", "updated_at",
	}).
		AddRow(7, "ORD-A", 1, 75.00, "PENDING", "addr", nil, time.Now(), time.Now()).
		AddRow(5, "ORD-B", 1, 40.00, "SHIPPED", "addr", nil, time.Now().Add(-time.Hour), time.Now())

	mock.ExpectQuery("SELECT id, number, user_id, total, status").
		WithArgs(uint(1), int32(20), int32(0)).
		WillReturnRows(rows)

	orders, err := repo.GetOrdersByUser(context.Background(), ListParams{UserID: 1})

	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
