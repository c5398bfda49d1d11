package controllers

import (
	"net/http"

	"shutterbay-backend/middleware"
	"shutterbay-backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder converts the requester's cart into an order.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	requester, err := middleware.GetRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, serr := oc.orderService.Create(c.Request.Context(), requester, &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": order.OrderID, "order": order})
}

// GetOrders returns the requester's own orders, newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	requester, err := middleware.GetRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, serr := oc.orderService.GetUserOrders(c.Request.Context(), requester)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID fetches an order by its internal document id.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	requester, err := middleware.GetRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, serr := oc.orderService.GetByID(c.Request.Context(), requester, id)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrderByOrderID fetches an order by its human-facing identifier.
func (oc *OrderController) GetOrderByOrderID(c *gin.Context) {
	requester, err := middleware.GetRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, serr := oc.orderService.GetByOrderID(c.Request.Context(), requester, c.Param("orderId"))
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus sets an order's status; admin only, any transition allowed.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	requester, err := middleware.GetRequester(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	order, serr := oc.orderService.SetStatus(c.Request.Context(), requester, c.Param("orderId"), req.Status)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}
