// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-storefront/internal/config"
	"github.com/your-org/restaurant-storefront/internal/domain/checkout"
	"github.com/your-org/restaurant-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/restaurant-storefront/internal/session"
)

// CheckoutHandler handles the checkout handoff endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	sessions        *session.Manager
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, sessions *session.Manager, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		sessions:        sessions,
		config:          cfg,
	}
}

// TriggerCheckout handles POST /checkout
func (h *CheckoutHandler) TriggerCheckout(c *gin.Context) {
	sessionID := GetOrCreateSessionID(c)
	crt := h.sessions.Cart(c.Request.Context(), sessionID)
	cust, _ := middleware.GetCustomerFromContext(c)

	// Reject duplicate clicks while a handoff is already in flight
	if h.checkoutService.IsCheckoutLoading(c.Request.Context(), sessionID) {
		c.JSON(http.StatusConflict, gin.H{
			"error": checkout.ErrCheckoutInFlight,
		})
		return
	}

	// The body is optional: only order notes ride on it
	var req struct {
		Notes string `json:"notes"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request data",
				"details": err.Error(),
			})
			return
		}
	}

	result := h.checkoutService.TriggerCheckout(c.Request.Context(), crt, cust, req.Notes)
	if !result.Success {
		status := http.StatusBadRequest
		if result.Error == checkout.ErrNotAuthenticated {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{
			"error": result.Error,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout session created successfully",
		"data":    result,
	})
}

// GetCheckoutStatus handles GET /checkout/status
func (h *CheckoutHandler) GetCheckoutStatus(c *gin.Context) {
	sessionID := GetOrCreateSessionID(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout status retrieved successfully",
		"data": gin.H{
			"is_loading":         h.checkoutService.IsCheckoutLoading(c.Request.Context(), sessionID),
			"payment_session_id": h.checkoutService.PendingPaymentSession(c.Request.Context(), sessionID),
		},
	})
}

// CancelCheckout handles POST /checkout/cancel - called when the hosted
// payment page sends the customer back without paying
func (h *CheckoutHandler) CancelCheckout(c *gin.Context) {
	sessionID := GetOrCreateSessionID(c)

	h.checkoutService.ClearLoading(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout cancelled successfully",
	})
}

// StashNavigationIntent handles POST /checkout/intent - records what the
// customer was doing before being sent to log in
func (h *CheckoutHandler) StashNavigationIntent(c *gin.Context) {
	sessionID := GetOrCreateSessionID(c)

	var req checkout.NavigationIntent
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.checkoutService.StashNavigationIntent(c.Request.Context(), sessionID, req)

	c.JSON(http.StatusOK, gin.H{
		"message": "Navigation intent stored successfully",
	})
}

// Resume handles POST /checkout/resume - picks up the stashed intent after
// the customer returns from logging in
func (h *CheckoutHandler) Resume(c *gin.Context) {
	sessionID := GetOrCreateSessionID(c)
	crt := h.sessions.Cart(c.Request.Context(), sessionID)
	cust, _ := middleware.GetCustomerFromContext(c)

	outcome := h.checkoutService.Resume(c.Request.Context(), crt, cust)

	c.JSON(http.StatusOK, gin.H{
		"message": "Resume processed successfully",
		"data":    outcome,
	})
}
