package handlers

import (
	"errors"
	"net/http"

	"quickdeliver-backend/internal/middleware"
	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	carts           *services.CartManager
	checkoutService CheckoutServiceInterface
	addressService  *services.AddressService
	confirmations   ConfirmationServiceInterface
}

func NewCartHandler(
	carts *services.CartManager,
	checkoutService CheckoutServiceInterface,
	addressService *services.AddressService,
	confirmations ConfirmationServiceInterface,
) *CartHandler {
	return &CartHandler{
		carts:           carts,
		checkoutService: checkoutService,
		addressService:  addressService,
		confirmations:   confirmations,
	}
}

// RegisterRoutes registers the routes for cart management
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	// All cart routes act on the customer identified by the X-Customer-ID header
	cart := router.Group("/cart", middleware.CustomerRequired())
	{
		// Get the customer's cart
		cart.GET("", h.GetCart)
		// Add item to cart
		cart.POST("/items", h.AddToCart)
		// Update cart item quantity
		cart.PUT("/items/:item_id", h.UpdateCartItem)
		// Remove item from cart
		cart.DELETE("/items/:item_id", h.RemoveFromCart)
		// Clear cart
		cart.DELETE("", h.ClearCart)
		// Clear all items for one restaurant
		cart.DELETE("/restaurants/:restaurant_id", h.ClearRestaurantItems)
		// In-cart check for a menu entry
		cart.GET("/menu/:menu_id", h.GetMenuItem)
		// Sidebar visibility
		cart.GET("/sidebar", h.GetSidebar)
		cart.PUT("/sidebar", h.SetSidebar)
		// Checkout cart
		cart.POST("/checkout", h.Checkout)
		// Consume pending checkout confirmation
		cart.GET("/confirmation", h.GetConfirmation)
	}
}

// CartResponse is the full cart snapshot with its derived aggregates.
type CartResponse struct {
	Items                  []models.CartLine `json:"items"`
	ItemCount              int               `json:"item_count"`
	Total                  float64           `json:"total"`
	IsEmpty                bool              `json:"is_empty"`
	RestaurantIDs          []uuid.UUID       `json:"restaurant_ids"`
	HasMultipleRestaurants bool              `json:"has_multiple_restaurants"`
	SidebarOpen            bool              `json:"sidebar_open"`
}

func (h *CartHandler) cartResponse(store *services.CartStore) CartResponse {
	items := store.Lines()
	if items == nil {
		items = []models.CartLine{}
	}
	restaurantIDs := store.RestaurantIDs()
	if restaurantIDs == nil {
		restaurantIDs = []uuid.UUID{}
	}
	return CartResponse{
		Items:                  items,
		ItemCount:              store.ItemCount(),
		Total:                  store.Total(),
		IsEmpty:                store.IsEmpty(),
		RestaurantIDs:          restaurantIDs,
		HasMultipleRestaurants: store.HasMultipleRestaurants(),
		SidebarOpen:            store.IsSidebarOpen(),
	}
}

// GetCart godoc
// @Summary Get customer's cart
// @Description Get the current cart snapshot with derived aggregates
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} CartResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	store := h.carts.Store(c.Request.Context(), customerID)
	c.JSON(http.StatusOK, h.cartResponse(store))
}

// AddToCart godoc
// @Summary Add item to cart
// @Description Add a menu item to the cart, merging quantity on duplicates
// @Tags cart
// @Accept json
// @Produce json
// @Param item body models.AddToCartPayload true "Cart item data"
// @Success 200 {object} CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var payload models.AddToCartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
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

	store := h.carts.Store(c.Request.Context(), customerID)
	store.AddItem(c.Request.Context(), payload)

	c.JSON(http.StatusOK, h.cartResponse(store))
}

// UpdateCartItem godoc
// @Summary Update cart item quantity
// @Description Set the quantity of a cart line; zero removes it
// @Tags cart
// @Accept json
// @Produce json
// @Param item body UpdateCartItemRequest true "Update item data"
// @Success 200 {object} CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/items/{item_id} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	itemID := c.Param("item_id")

	var req UpdateCartItemRequest
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

	store := h.carts.Store(c.Request.Context(), customerID)
	store.UpdateQuantity(c.Request.Context(), itemID, req.Quantity)

	c.JSON(http.StatusOK, h.cartResponse(store))
}

// RemoveFromCart godoc
// @Summary Remove item from cart
// @Description Remove a single line from the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item_id path string true "Cart line ID"
// @Success 200 {object} CartResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/items/{item_id} [delete]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	itemID := c.Param("item_id")

	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	store := h.carts.Store(c.Request.Context(), customerID)
	store.RemoveItem(c.Request.Context(), itemID)

	c.JSON(http.StatusOK, h.cartResponse(store))
}

// ClearCart godoc
// @Summary Clear customer's cart
// @Description Remove all items and the stored cart snapshot
// @Tags cart
// @Accept json
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	store := h.carts.Store(c.Request.Context(), customerID)
	store.ClearCart(c.Request.Context())

	c.Status(http.StatusNoContent)
}

// ClearRestaurantItems godoc
// @Summary Clear one restaurant's items
// @Description Remove every cart line belonging to the restaurant
// @Tags cart
// @Accept json
// @Produce json
// @Param restaurant_id path string true "Restaurant ID"
// @Success 200 {object} CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/restaurants/{restaurant_id} [delete]
func (h *CartHandler) ClearRestaurantItems(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("restaurant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid restaurant ID",
			Message: "Please provide a valid restaurant ID",
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

	store := h.carts.Store(c.Request.Context(), customerID)
	store.ClearRestaurantItems(c.Request.Context(), restaurantID)

	c.JSON(http.StatusOK, h.cartResponse(store))
}

// GetMenuItem godoc
// @Summary Check a menu entry against the cart
// @Description Report whether the menu entry is in the cart and at what quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param menu_id path string true "Menu ID"
// @Success 200 {object} MenuItemStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/menu/{menu_id} [get]
func (h *CartHandler) GetMenuItem(c *gin.Context) {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid menu ID",
			Message: "Please provide a valid menu ID",
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

	store := h.carts.Store(c.Request.Context(), customerID)
	response := MenuItemStatusResponse{
		InCart:   store.IsInCart(menuID),
		Quantity: store.GetMenuQuantity(menuID),
	}
	if line, found := store.GetItemByMenuID(menuID); found {
		response.Item = &line
	}

	c.JSON(http.StatusOK, response)
}

// GetSidebar godoc
// @Summary Get sidebar visibility
// @Tags cart
// @Produce json
// @Success 200 {object} SidebarResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/sidebar [get]
func (h *CartHandler) GetSidebar(c *gin.Context) {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	store := h.carts.Store(c.Request.Context(), customerID)
	c.JSON(http.StatusOK, SidebarResponse{Open: store.IsSidebarOpen()})
}

// SetSidebar godoc
// @Summary Change sidebar visibility
// @Description Apply an open, close or toggle action to the cart sidebar
// @Tags cart
// @Accept json
// @Produce json
// @Param action body SidebarRequest true "Sidebar action"
// @Success 200 {object} SidebarResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/sidebar [put]
func (h *CartHandler) SetSidebar(c *gin.Context) {
	var req SidebarRequest
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

	store := h.carts.Store(c.Request.Context(), customerID)
	switch req.Action {
	case "open":
		store.OpenSidebar()
	case "close":
		store.CloseSidebar()
	case "toggle":
		store.ToggleSidebar()
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid sidebar action",
			Message: "Action must be open, close or toggle",
		})
		return
	}

	c.JSON(http.StatusOK, SidebarResponse{Open: store.IsSidebarOpen()})
}

// Checkout godoc
// @Summary Checkout cart
// @Description Run the checkout flow: validate, confirm, assign a driver and create one order per cart line
// @Tags cart
// @Accept json
// @Produce json
// @Param checkout body CheckoutRequest true "Checkout data"
// @Success 200 {object} services.CheckoutResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
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

	ctx := c.Request.Context()
	store := h.carts.Store(ctx, customerID)
	selector := services.NewRequestAddressSelector(h.addressService, customerID, req.AddressID)
	confirmer := &services.RequestConfirmer{Confirmed: req.Confirmed}

	result, err := h.checkoutService.Checkout(ctx, store, customerID, selector, confirmer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCart):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid cart",
				Message: err.Error(),
			})
		case errors.Is(err, services.ErrCheckoutCancelled):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "Checkout cancelled",
				Message: "No orders were created",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to checkout",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetConfirmation godoc
// @Summary Consume checkout confirmation
// @Description Return and clear the customer's pending checkout confirmation
// @Tags cart
// @Produce json
// @Success 200 {object} services.CheckoutResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cart/confirmation [get]
func (h *CartHandler) GetConfirmation(c *gin.Context) {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "Customer ID not found",
		})
		return
	}

	result, err := h.confirmations.ConsumeConfirmation(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to load confirmation",
			Message: err.Error(),
		})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "No confirmation pending",
			Message: "There is no checkout confirmation for this customer",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Request and Response structs
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	AddressID *uuid.UUID `json:"address_id"`
	Confirmed bool       `json:"confirmed"`
}

type SidebarRequest struct {
	Action string `json:"action" binding:"required"`
}

type SidebarResponse struct {
	Open bool `json:"open"`
}

type MenuItemStatusResponse struct {
	InCart   bool             `json:"in_cart"`
	Quantity int              `json:"quantity"`
	Item     *models.CartLine `json:"item,omitempty"`
}

// ErrorResponse is defined in restaurant_handler.go
