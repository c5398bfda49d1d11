package controllers

import (
	"net/http"

	"shutterbay-backend/middleware"
	"shutterbay-backend/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart returns the current cart for a user, resolved for display.
func (cc *CartController) GetCart(c *gin.Context) {
	requester, err := middleware.GetRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, serr := cc.cartService.Get(c.Request.Context(), requester.UserID.Hex())
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}

type upsertItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpsertItem adds a product or replaces its quantity if already in the cart.
func (cc *CartController) UpsertItem(c *gin.Context) {
	requester, err := middleware.GetRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req upsertItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cart, serr := cc.cartService.UpsertItem(c.Request.Context(), requester.UserID.Hex(), req.ProductID, req.Quantity)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem removes a product from the cart; removing an absent product is a
// no-op.
func (cc *CartController) RemoveItem(c *gin.Context) {
	requester, err := middleware.GetRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, serr := cc.cartService.RemoveItem(c.Request.Context(), requester.UserID.Hex(), c.Param("productId"))
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, cart)
}
