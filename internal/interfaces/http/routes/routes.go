// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-storefront/internal/config"
	"github.com/your-org/restaurant-storefront/internal/domain/checkout"
	"github.com/your-org/restaurant-storefront/internal/domain/location"
	"github.com/your-org/restaurant-storefront/internal/domain/menu"
	"github.com/your-org/restaurant-storefront/internal/domain/order"
	"github.com/your-org/restaurant-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/restaurant-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/restaurant-storefront/internal/session"
)

// Deps carries the wired services shared by all route groups
type Deps struct {
	Sessions        *session.Manager
	LocationService *location.Service
	MenuClient      *menu.Client
	CheckoutService *checkout.Service
	OrderService    *order.Service
	OrderClient     *order.Client
}

// SetupRoutes sets up all route groups under the given router group
func SetupRoutes(rg *gin.RouterGroup, deps *Deps, cfg *config.Config) {
	SetupLocationRoutes(rg, deps, cfg)
	SetupMenuRoutes(rg, deps, cfg)
	SetupCartRoutes(rg, deps, cfg)
	SetupCheckoutRoutes(rg, deps, cfg)
	SetupOrderRoutes(rg, deps, cfg)
}

// SetupLocationRoutes sets up restaurant location routes
func SetupLocationRoutes(rg *gin.RouterGroup, deps *Deps, cfg *config.Config) {
	locationHandler := handlers.NewLocationHandler(deps.LocationService, deps.Sessions, cfg)

	locations := rg.Group("/locations")
	{
		locations.GET("", locationHandler.ListLocations)
		locations.GET("/selected", locationHandler.GetSelectedLocation)
		locations.PUT("/selected", locationHandler.SelectLocation)
		locations.GET("/:id", locationHandler.GetLocation)
	}
}

// SetupMenuRoutes sets up menu routes
func SetupMenuRoutes(rg *gin.RouterGroup, deps *Deps, cfg *config.Config) {
	menuHandler := handlers.NewMenuHandler(deps.MenuClient, cfg)

	m := rg.Group("/menu")
	{
		m.GET("/:locationId", menuHandler.GetMenu)
		m.GET("/:locationId/items/:id", menuHandler.GetMenuItem)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, deps *Deps, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(deps.Sessions, deps.LocationService, cfg)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.POST("/validate-location", cartHandler.ValidateLocation)
	}
}

// SetupCheckoutRoutes sets up checkout handoff routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, deps *Deps, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.CheckoutService, deps.Sessions, cfg)

	co := rg.Group("/checkout")
	co.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		co.POST("", checkoutHandler.TriggerCheckout)
		co.GET("/status", checkoutHandler.GetCheckoutStatus)
		co.POST("/cancel", checkoutHandler.CancelCheckout)
		co.POST("/intent", checkoutHandler.StashNavigationIntent)
		co.POST("/resume", checkoutHandler.Resume)
	}
}

// SetupOrderRoutes sets up order routes
func SetupOrderRoutes(rg *gin.RouterGroup, deps *Deps, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(deps.OrderService, deps.OrderClient, deps.Sessions, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		// Guest completion is allowed, so auth stays optional here
		orders.POST("/complete", orderHandler.CompleteCheckout)

		protected := orders.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/:id", orderHandler.GetOrder)
		}
	}
}
