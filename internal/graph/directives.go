package graph

import (
	"context"
	"errors"

	"artisan-be/internal/graph/model"
	"artisan-be/internal/utils"

	"github.com/99designs/gqlgen/graphql"
)

// AuthDirective gates fields marked @auth. Without a role argument any
// authenticated user passes; @auth(role: SELLER) additionally requires a
// seller identity in the token.
func AuthDirective(ctx context.Context, obj interface{}, next graphql.Resolver, role *model.Role) (res interface{}, err error) {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return nil, errors.New("unauthorized")
	}

	if role != nil && *role == model.RoleSeller {
		if utils.GetUserRoleFromContext(ctx) != string(model.RoleSeller) ||
			utils.GetSellerIDFromContext(ctx) == "" {
			return nil, errors.New("forbidden: seller only")
		}
	}

	return next(ctx)
}
