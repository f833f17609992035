package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, password, role string, sellerID *string) (User, error) {
	args := m.Called(ctx, email, password, role, sellerID)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()

	t.Run("Buyer", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "buyer@example.com", mock.AnythingOfType("string"), "BUYER", (*string)(nil)).
			Return(User{ID: 1, Email: "buyer@example.com", Role: RoleBuyer}, nil)

		token, u, err := svc.Register(ctx, "buyer@example.com", "secret", false)

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, RoleBuyer, u.Role)
		assert.Nil(t, u.SellerID)
	})

	t.Run("Seller", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		sellerID := "seller-uuid"
		repo.On("Create", ctx, "seller@example.com", mock.AnythingOfType("string"), "SELLER", mock.AnythingOfType("*string")).
			Return(User{ID: 2, Email: "seller@example.com", Role: RoleSeller, SellerID: &sellerID}, nil)

		token, u, err := svc.Register(ctx, "seller@example.com", "secret", true)

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, RoleSeller, u.Role)
		require.NotNil(t, u.SellerID)
	})

	t.Run("EmailExists", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "dup@example.com", mock.AnythingOfType("string"), "BUYER", (*string)(nil)).
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(ctx, "dup@example.com", "secret", false)

		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()

	hash, _ := HashPassword("secret")

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "buyer@example.com").
			Return(User{ID: 1, Email: "buyer@example.com", Password: hash, Role: RoleBuyer}, nil)

		token, u, err := svc.Login(ctx, "buyer@example.com", "secret")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, 1, u.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "buyer@example.com").
			Return(User{ID: 1, Password: hash}, nil)

		_, _, err := svc.Login(ctx, "buyer@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "ghost@example.com").
			Return(User{}, ErrInvalidCredentials)

		_, _, err := svc.Login(ctx, "ghost@example.com", "secret")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
