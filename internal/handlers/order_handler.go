package handlers

import (
	"net/http"

	"quickdeliver-backend/internal/middleware"
	"quickdeliver-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers the routes for order management. Orders are only
// created through checkout; these routes read and administer them.
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.GET("", middleware.CustomerRequired(), h.GetMyOrders)
		orders.GET("/:order_id", h.GetOrder)
		orders.PUT("/:order_id", h.UpdateOrder)
		orders.GET("/restaurant/:restaurant_id", h.GetRestaurantOrders)
		orders.GET("/driver/:driver_id", h.GetDriverOrders)
	}
}

// GetMyOrders godoc
// @Summary List the customer's orders
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Failure 401 {object} ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	limit, offset := pagination(c)
	orders, err := h.orderService.GetCustomerOrders(c.Request.Context(), customerID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get order
// @Tags orders
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} ErrorResponse
// @Router /orders/{order_id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Order not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder godoc
// @Summary Update order
// @Description Assign a driver and/or move the order through its status lifecycle
// @Tags orders
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param order body services.UpdateOrderRequest true "Order update"
// @Success 200 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Router /orders/{order_id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("order_id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update order",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetRestaurantOrders godoc
// @Summary List a restaurant's orders
// @Tags orders
// @Produce json
// @Param restaurant_id path string true "Restaurant ID"
// @Success 200 {array} models.Order
// @Failure 400 {object} ErrorResponse
// @Router /orders/restaurant/{restaurant_id} [get]
func (h *OrderHandler) GetRestaurantOrders(c *gin.Context) {
	limit, offset := pagination(c)
	orders, err := h.orderService.GetRestaurantOrders(c.Request.Context(), c.Param("restaurant_id"), limit, offset)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to list orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetDriverOrders godoc
// @Summary List a driver's orders
// @Tags orders
// @Produce json
// @Param driver_id path string true "Driver ID"
// @Success 200 {array} models.Order
// @Failure 400 {object} ErrorResponse
// @Router /orders/driver/{driver_id} [get]
func (h *OrderHandler) GetDriverOrders(c *gin.Context) {
	limit, offset := pagination(c)
	orders, err := h.orderService.GetDriverOrders(c.Request.Context(), c.Param("driver_id"), limit, offset)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to list orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}
