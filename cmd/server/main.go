package main

//go:generate swag init -g cmd/server/main.go -d ../..

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mealcart/payouts/config"
	"github.com/mealcart/payouts/db"
	_ "github.com/mealcart/payouts/docs"
	"github.com/mealcart/payouts/gateway"
	"github.com/mealcart/payouts/handlers"
	"github.com/mealcart/payouts/payout"
	"github.com/mealcart/payouts/store"
)

// @title           Restaurant Payout Service API
// @version         1.0.0
// @description     Admin and vendor operations for restaurant payout settlement and reconciliation.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Configure structured logging
	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Open database
	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Wire stores, gateway and engine into the handlers
	payouts := &store.Payouts{DB: database}
	transfers := gateway.NewRazorpayX(cfg.GatewayBaseURL, cfg.GatewayKeyID,
		cfg.GatewayKeySecret, cfg.GatewayAccountNumber)
	reconciler := &payout.Reconciler{Records: payouts, Gateway: transfers}

	handlers.Payouts = payouts
	handlers.Orders = &store.Orders{DB: database}
	handlers.Restaurants = &store.Restaurants{DB: database}
	handlers.Recon = reconciler
	handlers.AdminOps = &payout.Admin{Records: payouts, Reconciler: reconciler}

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Admin-ID"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Gateway webhook; authenticated by the provider's signature scheme
		// at the edge, not BasicAuth.
		r.Post("/webhooks/transfers", handlers.TransferWebhook)

		r.Route("/admin", func(r chi.Router) {
			r.Use(handlers.BasicAuth)

			// Payouts
			r.Post("/payouts/filter", handlers.FilterPayouts)
			r.Get("/payouts/{id}", handlers.GetPayout)
			r.Delete("/payouts/{id}", handlers.DeletePayout)
			r.Get("/payouts/{id}/orders", handlers.GetPayoutOrders)
			r.Post("/payouts/{id}/retry", handlers.RetryPayout)
			r.Post("/payouts/{id}/stop-retry", handlers.StopRetryPayout)
			r.Post("/payouts/{id}/mark-complete", handlers.MarkCompletePayout)

			// Restaurants
			r.Get("/restaurants", handlers.ListRestaurants)
			r.Post("/restaurants", handlers.CreateRestaurant)
			r.Get("/restaurants/{id}", handlers.GetRestaurant)
			r.Put("/restaurants/{id}", handlers.UpdateRestaurant)
			r.Get("/restaurants/{id}/accounts", handlers.ListPayoutAccounts)
			r.Post("/restaurants/{id}/accounts", handlers.AddPayoutAccount)

			// Orders
			r.Get("/orders", handlers.ListOrders)
		})

		r.Route("/vendor/{restaurant_id}", func(r chi.Router) {
			r.Use(handlers.BasicAuth)

			r.Post("/payouts/filter", handlers.VendorFilterPayouts)
			r.Get("/payouts/summary", handlers.VendorPayoutSummary)
			r.Get("/payouts/{id}", handlers.VendorGetPayout)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
