package graph

import (
	"context"
	"fmt"

	"artisan-be/internal/graph/model"
	"artisan-be/internal/logger"

	"go.uber.org/zap"
)

func (r *mutationResolver) Register(ctx context.Context, input model.RegisterInput) (*model.AuthResponse, error) {
	log := logger.FromCtx(ctx)

	asSeller := input.AsSeller != nil && *input.AsSeller

	token, u, err := r.UserSvc.Register(ctx, input.Email, input.Password, asSeller)
	if err != nil {
		log.Warn("register failed", zap.String("email", input.Email), zap.Error(err))
		return nil, err
	}

	log.Info("user registered successfully",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("email", u.Email),
		zap.String("role", string(u.Role)),
	)

	return &model.AuthResponse{
		Token: token,
		User: &model.User{
			ID:       fmt.Sprint(u.ID),
			Email:    u.Email,
			Role:     model.Role(u.Role),
			SellerID: u.SellerID,
		},
	}, nil
}

func (r *mutationResolver) Login(ctx context.Context, input model.LoginInput) (*model.AuthResponse, error) {
	token, u, err := r.UserSvc.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Token: token,
		User: &model.User{
			ID:       fmt.Sprint(u.ID),
			Email:    u.Email,
			Role:     model.Role(u.Role),
			SellerID: u.SellerID,
		},
	}, nil
}
