// internal/interfaces/http/handlers/location.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-storefront/internal/config"
	"github.com/your-org/restaurant-storefront/internal/domain/location"
	"github.com/your-org/restaurant-storefront/internal/session"
)

// LocationHandler handles restaurant location endpoints
type LocationHandler struct {
	locationService *location.Service
	sessions        *session.Manager
	config          *config.Config
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *location.Service, sessions *session.Manager, cfg *config.Config) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		sessions:        sessions,
		config:          cfg,
	}
}

// ListLocations handles GET /locations
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to retrieve locations",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Locations retrieved successfully",
		"data":    locations,
	})
}

// GetLocation handles GET /locations/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	loc, err := h.locationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Location not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to retrieve location",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location retrieved successfully",
		"data":    loc,
	})
}

// SelectLocation handles PUT /locations/selected - switching is refused when
// the cart already holds items from a different location
func (h *LocationHandler) SelectLocation(c *gin.Context) {
	sessionID := GetOrCreateSessionID(c)
	crt := h.sessions.Cart(c.Request.Context(), sessionID)

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

	validation := h.locationService.Select(c.Request.Context(), crt, req.LocationID)
	if !validation.Valid {
		c.JSON(http.StatusConflict, gin.H{
			"error": validation.Message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location selected successfully",
		"data": gin.H{
			"location_id": req.LocationID,
		},
	})
}

// GetSelectedLocation handles GET /locations/selected
func (h *LocationHandler) GetSelectedLocation(c *gin.Context) {
	sessionID := GetOrCreateSessionID(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Selected location retrieved successfully",
		"data": gin.H{
			"location_id": h.locationService.Selected(c.Request.Context(), sessionID),
		},
	})
}
