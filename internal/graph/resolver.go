package graph

import (
	"database/sql"

	"artisan-be/internal/cart"
	"artisan-be/internal/inventory"
	"artisan-be/internal/order"
	"artisan-be/internal/product"
	"artisan-be/internal/user"

	"github.com/99designs/gqlgen/graphql"
)

type Resolver struct {
	DB            *sql.DB
	UserSvc       user.Service
	ProductSvc    product.Service
	CartSvc       cart.Service
	OrderSvc      order.Service
	InventoryRepo inventory.Repository
}

func NewSchema(r *Resolver) graphql.ExecutableSchema {
	return NewExecutableSchema(Config{
		Resolvers: r,
		Directives: DirectiveRoot{
			Auth: AuthDirective,
		},
	})
}

func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }
func (r *Resolver) Query() QueryResolver       { return &queryResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
