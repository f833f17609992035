package main

import (
	"database/sql"
	"log"
	"net/http"

	"artisan-be/internal/cart"
	"artisan-be/internal/checkout"
	"artisan-be/internal/config"
	"artisan-be/internal/db"
	"artisan-be/internal/graph"
	"artisan-be/internal/inventory"
	"artisan-be/internal/logger"
	"artisan-be/internal/metrics"
	"artisan-be/internal/middleware"
	"artisan-be/internal/order"
	"artisan-be/internal/payment"
	"artisan-be/internal/product"
	"artisan-be/internal/user"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"
)

// newServer wires repositories, services and the GraphQL handler into the
// HTTP routing tree. Split out from main so the wiring is testable.
func newServer(database *sql.DB) http.Handler {
	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	inventoryRepo := inventory.NewRepository(database)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo, inventoryRepo)

	validator := checkout.NewValidator(cartSvc, productRepo, inventoryRepo)
	gateway := payment.NewSimulatedGateway()
	checkoutStats := metrics.NewCheckout()

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, validator, productRepo, inventoryRepo, gateway, checkoutStats)

	resolver := &graph.Resolver{
		DB:            database,
		ProductSvc:    productSvc,
		UserSvc:       userSvc,
		CartSvc:       cartSvc,
		OrderSvc:      orderSvc,
		InventoryRepo: inventoryRepo,
	}

	srv := handler.NewDefaultServer(graph.NewSchema(resolver))

	query := middleware.CORS(
		logger.RequestIDMiddleware(
			logger.LoggingMiddleware(
				middleware.RateLimitMiddleware(
					middleware.AuthMiddleware(srv),
				),
			),
		),
	)

	mux := http.NewServeMux()
	mux.Handle("/", playground.Handler("GraphQL Playground", "/query"))
	mux.Handle("/query", query)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	router := newServer(database)

	log.Printf("🚀 GraphQL server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
