package product

import (
	"context"
	"testing"

	"artisan-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) UpdatePrice(ctx context.Context, params UpdatePriceParams) (*Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) SetStatus(ctx context.Context, params SetStatusParams) (*Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func sellerCtx(sellerID string) context.Context {
	return utils.WithSellerID(context.Background(), sellerID)
}

func TestService_UpdatePrice(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := sellerCtx("seller-1")

		repo.On("UpdatePrice", ctx, UpdatePriceParams{
			ProductID: "prod-1",
			SellerID:  "seller-1",
			Price:     30.00,
		}).Return(&Product{ID: "prod-1", Price: 30.00}, nil)

		p, err := svc.UpdatePrice(ctx, "prod-1", 30.00)

		require.NoError(t, err)
		assert.Equal(t, 30.00, p.Price)
	})

	t.Run("InvalidPrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.UpdatePrice(sellerCtx("seller-1"), "prod-1", 0)

		assert.ErrorIs(t, err, ErrInvalidPrice)
		repo.AssertNotCalled(t, "UpdatePrice", mock.Anything, mock.Anything)
	})

	t.Run("NoSellerIdentity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.UpdatePrice(context.Background(), "prod-1", 30.00)

		assert.Error(t, err)
		repo.AssertNotCalled(t, "UpdatePrice", mock.Anything, mock.Anything)
	})
}

func TestService_SetStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := sellerCtx("seller-1")

		repo.On("SetStatus", ctx, SetStatusParams{
			ProductID: "prod-1",
			SellerID:  "seller-1",
			Status:    "UNAVAILABLE",
		}).Return(&Product{ID: "prod-1", Status: "UNAVAILABLE"}, nil)

		p, err := svc.SetStatus(ctx, "prod-1", "UNAVAILABLE")

		require.NoError(t, err)
		assert.Equal(t, "UNAVAILABLE", p.Status)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.SetStatus(sellerCtx("seller-1"), "prod-1", "SOLD_OUT")

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_GetProductByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := context.Background()

		repo.On("GetProductByID", ctx, GetProductOptions{ProductID: "prod-1"}).
			Return(&Product{ID: "prod-1", Name: "Ceramic Vase"}, nil)

		p, err := svc.GetProductByID(ctx, "prod-1")

		require.NoError(t, err)
		assert.Equal(t, "Ceramic Vase", p.Name)
	})

	t.Run("MissingID", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.GetProductByID(context.Background(), "")

		assert.Error(t, err)
	})
}
