// internal/interfaces/http/handlers/menu.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-storefront/internal/config"
	"github.com/your-org/restaurant-storefront/internal/domain/menu"
)

// MenuHandler handles menu endpoints
type MenuHandler struct {
	menuClient *menu.Client
	config     *config.Config
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuClient *menu.Client, cfg *config.Config) *MenuHandler {
	return &MenuHandler{
		menuClient: menuClient,
		config:     cfg,
	}
}

// GetMenu handles GET /menu/:locationId
func (h *MenuHandler) GetMenu(c *gin.Context) {
	locationID := c.Param("locationId")

	m, err := h.menuClient.GetMenu(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to retrieve menu",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data":    m,
	})
}

// GetMenuItem handles GET /menu/:locationId/items/:id
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	locationID := c.Param("locationId")
	itemID := c.Param("id")

	item, err := h.menuClient.GetItem(c.Request.Context(), locationID, itemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Menu item not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item retrieved successfully",
		"data":    item,
	})
}
