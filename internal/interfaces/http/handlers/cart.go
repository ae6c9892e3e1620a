// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/restaurant-storefront/internal/config"
	"github.com/your-org/restaurant-storefront/internal/domain/cart"
	"github.com/your-org/restaurant-storefront/internal/domain/location"
	"github.com/your-org/restaurant-storefront/internal/session"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	sessions  *session.Manager
	locations *location.Service
	config    *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *session.Manager, locations *location.Service, cfg *config.Config) *CartHandler {
	return &CartHandler{
		sessions:  sessions,
		locations: locations,
		config:    cfg,
	}
}

// cartResponse is the JSON shape returned for cart reads and mutations
type cartResponse struct {
	Items      []cart.LineItem `json:"items"`
	LocationID string          `json:"location_id,omitempty"`
	Totals     cart.Totals     `json:"totals"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	crt := h.cartStore(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    buildCartResponse(crt),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	crt := h.cartStore(c)

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ambient := h.locations.Selected(c.Request.Context(), crt.SessionID())

	result := crt.AddItem(c.Request.Context(), req, req.Quantity, ambient)
	if !result.Success {
		c.JSON(http.StatusConflict, gin.H{
			"error": result.Error,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    buildCartResponse(crt),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	crt := h.cartStore(c)

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	crt.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    buildCartResponse(crt),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	crt := h.cartStore(c)

	crt.RemoveItem(c.Request.Context(), c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    buildCartResponse(crt),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	crt := h.cartStore(c)

	crt.Clear(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	crt := h.cartStore(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": crt.Totals().ItemCount,
		},
	})
}

// ValidateLocation handles POST /cart/validate-location
func (h *CartHandler) ValidateLocation(c *gin.Context) {
	crt := h.cartStore(c)

	var req struct {
		LocationID string `json:"location_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	validation := crt.ValidateLocation(req.LocationID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Location validated",
		"data":    validation,
	})
}

// Private helper methods

func (h *CartHandler) cartStore(c *gin.Context) *cart.Store {
	sessionID := GetOrCreateSessionID(c)
	return h.sessions.Cart(c.Request.Context(), sessionID)
}

func buildCartResponse(crt *cart.Store) cartResponse {
	return cartResponse{
		Items:      crt.Items(),
		LocationID: crt.LocationID(),
		Totals:     crt.Totals(),
	}
}

// GetOrCreateSessionID resolves the caller's session ID from the session
// cookie, minting a fresh one when none exists yet.
func GetOrCreateSessionID(c *gin.Context) string {
	// Try to get session ID from cookie
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		// Generate new session ID
		sessionID = uuid.New().String()

		// Set session cookie (24 hours)
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}
