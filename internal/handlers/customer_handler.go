package handlers

import (
	"net/http"

	"quickdeliver-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes registers the routes for customer management
func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.GetCustomers)
		customers.GET("/:customer_id", h.GetCustomer)
		customers.PUT("/:customer_id", h.UpdateCustomer)
		customers.DELETE("/:customer_id", h.DeleteCustomer)
	}
}

// CreateCustomer godoc
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body services.CreateCustomerRequest true "Customer data"
// @Success 201 {object} models.Customer
// @Failure 400 {object} ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to create customer",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} models.Customer
// @Router /customers [get]
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	limit, offset := pagination(c)

	customers, err := h.customerService.GetCustomers(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list customers",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer godoc
// @Summary Get customer
// @Tags customers
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 404 {object} ErrorResponse
// @Router /customers/{customer_id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Customer not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer godoc
// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param customer body services.UpdateCustomerRequest true "Customer data"
// @Success 200 {object} models.Customer
// @Failure 400 {object} ErrorResponse
// @Router /customers/{customer_id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("customer_id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update customer",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer godoc
// @Summary Delete customer
// @Tags customers
// @Param customer_id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Router /customers/{customer_id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("customer_id")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to delete customer",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
