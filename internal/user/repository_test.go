package user

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("buyer@example.com", "hashed", "BUYER", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "seller_id"}).
				AddRow(1, "buyer@example.com", "hashed", "BUYER", nil))

		u, err := repo.Create(context.Background(), "buyer@example.com", "hashed", "BUYER", nil)

		require.NoError(t, err)
		assert.Equal(t, 1, u.ID)
		assert.Equal(t, RoleBuyer, u.Role)
		assert.Nil(t, u.SellerID)
	})

	t.Run("Seller", func(t *testing.T) {
		sellerID := "seller-123"
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("seller@example.com", "hashed", "SELLER", &sellerID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "seller_id"}).
				AddRow(2, "seller@example.com", "hashed", "SELLER", sellerID))

		u, err := repo.Create(context.Background(), "seller@example.com", "hashed", "SELLER", &sellerID)

		require.NoError(t, err)
		require.NotNil(t, u.SellerID)
		assert.Equal(t, "seller-123", *u.SellerID)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, password, role, seller_id FROM users").
			WithArgs("buyer@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "seller_id"}).
				AddRow(1, "buyer@example.com", "hashed", "BUYER", nil))

		u, err := repo.FindByEmail(context.Background(), "buyer@example.com")

		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", u.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, password, role, seller_id FROM users").
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "seller_id"}))

		_, err := repo.FindByEmail(context.Background(), "ghost@example.com")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
