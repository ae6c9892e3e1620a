// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/restaurant-storefront/internal/config"
	"github.com/your-org/restaurant-storefront/internal/domain/checkout"
	"github.com/your-org/restaurant-storefront/internal/domain/location"
	"github.com/your-org/restaurant-storefront/internal/domain/menu"
	"github.com/your-org/restaurant-storefront/internal/domain/order"
	"github.com/your-org/restaurant-storefront/internal/domain/payment"
	"github.com/your-org/restaurant-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/restaurant-storefront/internal/interfaces/http"
	"github.com/your-org/restaurant-storefront/internal/interfaces/http/routes"
	"github.com/your-org/restaurant-storefront/internal/pkg/logger"
	"github.com/your-org/restaurant-storefront/internal/session"
	"github.com/your-org/restaurant-storefront/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg)
	appLogger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Storage ports: durable for carts and location selections, ephemeral
	// for in-flight checkout state
	durable := storage.NewRedisStore(redisClient.GetClient(), "durable:", cfg.Cart.SessionTTL)
	ephemeral := storage.NewRedisStore(redisClient.GetClient(), "ephemeral:", cfg.Cart.EphemeralTTL)

	// Wire services
	sessions := session.NewManager(durable, appLogger, cfg.Cart.TaxRate)
	locationService := location.NewService(cfg, durable, appLogger)
	menuClient := menu.NewClient(cfg, redisClient.GetClient(), appLogger)
	paymentService := payment.NewStripeService(cfg)
	checkoutService := checkout.NewService(paymentService, ephemeral, cfg.Payment.Currency, appLogger)
	orderClient := order.NewClient(cfg)
	orderService := order.NewService(checkoutService, orderClient, appLogger)

	deps := &routes.Deps{
		Sessions:        sessions,
		LocationService: locationService,
		MenuClient:      menuClient,
		CheckoutService: checkoutService,
		OrderService:    orderService,
		OrderClient:     orderClient,
	}

	// Create and start HTTP server
	server := http.NewServer(cfg, redisClient.GetClient(), deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("Server shutdown completed")
}
