// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-storefront/internal/config"
	"github.com/your-org/restaurant-storefront/internal/domain/order"
	"github.com/your-org/restaurant-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/restaurant-storefront/internal/session"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	orderClient  *order.Client
	sessions     *session.Manager
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, orderClient *order.Client, sessions *session.Manager, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		orderClient:  orderClient,
		sessions:     sessions,
		config:       cfg,
	}
}

// CompleteCheckout handles POST /orders/complete - called when the customer
// returns from the hosted payment page
func (h *OrderHandler) CompleteCheckout(c *gin.Context) {
	sessionID := GetOrCreateSessionID(c)
	crt := h.sessions.Cart(c.Request.Context(), sessionID)
	cust, _ := middleware.GetCustomerFromContext(c)
	accessToken := middleware.GetAccessTokenFromContext(c)

	// The body is optional: the stashed payment session is used when the
	// return page does not carry the id
	var req struct {
		PaymentSessionID string `json:"payment_session_id"`
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

	placed, err := h.orderService.CompleteCheckout(c.Request.Context(), crt, cust, accessToken, req.PaymentSessionID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNoPaymentSession):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No payment session to complete",
			})
		case errors.Is(err, order.ErrOrderDataUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Order information unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create order",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"data":    placed,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	accessToken := middleware.GetAccessTokenFromContext(c)

	placed, err := h.orderClient.Get(c.Request.Context(), accessToken, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    placed,
	})
}
