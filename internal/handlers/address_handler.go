package handlers

import (
	"net/http"
	"strconv"

	"quickdeliver-backend/internal/middleware"
	"quickdeliver-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addressService *services.AddressService
}

func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// RegisterRoutes registers the routes for delivery address management
func (h *AddressHandler) RegisterRoutes(router *gin.RouterGroup) {
	addresses := router.Group("/addresses", middleware.CustomerRequired())
	{
		addresses.POST("", h.CreateAddress)
		addresses.GET("", h.GetAddresses)
		addresses.GET("/:address_id", h.GetAddress)
		addresses.PUT("/:address_id", h.UpdateAddress)
		addresses.DELETE("/:address_id", h.DeleteAddress)
	}
}

// CreateAddress godoc
// @Summary Create delivery address
// @Tags addresses
// @Accept json
// @Produce json
// @Param address body services.CreateAddressRequest true "Address data"
// @Success 201 {object} models.Address
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /addresses [post]
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var req services.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	address, err := h.addressService.CreateAddress(c.Request.Context(), customerID.String(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to create address",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, address)
}

// GetAddresses godoc
// @Summary List delivery addresses
// @Description List the customer's addresses, default address first
// @Tags addresses
// @Produce json
// @Success 200 {object} services.AddressListResponse
// @Failure 401 {object} ErrorResponse
// @Router /addresses [get]
func (h *AddressHandler) GetAddresses(c *gin.Context) {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	response, err := h.addressService.GetAddresses(c.Request.Context(), customerID.String(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list addresses",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAddress godoc
// @Summary Get delivery address
// @Tags addresses
// @Produce json
// @Param address_id path string true "Address ID"
// @Success 200 {object} models.Address
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /addresses/{address_id} [get]
func (h *AddressHandler) GetAddress(c *gin.Context) {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	address, err := h.addressService.GetAddressByID(c.Request.Context(), customerID.String(), c.Param("address_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Address not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, address)
}

// UpdateAddress godoc
// @Summary Update delivery address
// @Tags addresses
// @Accept json
// @Produce json
// @Param address_id path string true "Address ID"
// @Param address body services.UpdateAddressRequest true "Address data"
// @Success 200 {object} models.Address
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /addresses/{address_id} [put]
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	var req services.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	address, err := h.addressService.UpdateAddress(c.Request.Context(), customerID.String(), c.Param("address_id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update address",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, address)
}

// DeleteAddress godoc
// @Summary Delete delivery address
// @Tags addresses
// @Param address_id path string true "Address ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /addresses/{address_id} [delete]
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	if err := h.addressService.DeleteAddress(c.Request.Context(), customerID.String(), c.Param("address_id")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to delete address",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
