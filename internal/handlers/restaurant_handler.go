package handlers

import (
	"net/http"
	"strconv"

	"quickdeliver-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the common error body for all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type RestaurantHandler struct {
	restaurantService *services.RestaurantService
	menuService       *services.MenuService
}

func NewRestaurantHandler(restaurantService *services.RestaurantService, menuService *services.MenuService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		menuService:       menuService,
	}
}

// RegisterRoutes registers the routes for restaurant management
func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup) {
	restaurants := router.Group("/restaurants")
	{
		restaurants.POST("", h.CreateRestaurant)
		restaurants.GET("", h.GetRestaurants)
		restaurants.GET("/:restaurant_id", h.GetRestaurant)
		restaurants.PUT("/:restaurant_id", h.UpdateRestaurant)
		restaurants.DELETE("/:restaurant_id", h.DeleteRestaurant)
		// Browseable menu with product details
		restaurants.GET("/:restaurant_id/menu", h.GetRestaurantMenu)
	}
}

// CreateRestaurant godoc
// @Summary Create restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Param restaurant body services.CreateRestaurantRequest true "Restaurant data"
// @Success 201 {object} models.Restaurant
// @Failure 400 {object} ErrorResponse
// @Router /restaurants [post]
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req services.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	restaurant, err := h.restaurantService.CreateRestaurant(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to create restaurant",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, restaurant)
}

// GetRestaurants godoc
// @Summary List restaurants
// @Description List restaurants, optionally filtered by a search query
// @Tags restaurants
// @Produce json
// @Param q query string false "Search query"
// @Success 200 {array} models.Restaurant
// @Router /restaurants [get]
func (h *RestaurantHandler) GetRestaurants(c *gin.Context) {
	limit, offset := pagination(c)

	query := c.Query("q")
	restaurants, err := h.restaurantService.SearchRestaurants(c.Request.Context(), query, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list restaurants",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// GetRestaurant godoc
// @Summary Get restaurant
// @Tags restaurants
// @Produce json
// @Param restaurant_id path string true "Restaurant ID"
// @Success 200 {object} models.Restaurant
// @Failure 404 {object} ErrorResponse
// @Router /restaurants/{restaurant_id} [get]
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.restaurantService.GetRestaurant(c.Request.Context(), c.Param("restaurant_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Restaurant not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// UpdateRestaurant godoc
// @Summary Update restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Param restaurant_id path string true "Restaurant ID"
// @Param restaurant body services.UpdateRestaurantRequest true "Restaurant data"
// @Success 200 {object} models.Restaurant
// @Failure 400 {object} ErrorResponse
// @Router /restaurants/{restaurant_id} [put]
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	var req services.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(c.Request.Context(), c.Param("restaurant_id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update restaurant",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// DeleteRestaurant godoc
// @Summary Delete restaurant
// @Tags restaurants
// @Param restaurant_id path string true "Restaurant ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Router /restaurants/{restaurant_id} [delete]
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	if err := h.restaurantService.DeleteRestaurant(c.Request.Context(), c.Param("restaurant_id")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to delete restaurant",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetRestaurantMenu godoc
// @Summary Get restaurant menu
// @Description Get the restaurant's available menu enriched with product details
// @Tags restaurants
// @Produce json
// @Param restaurant_id path string true "Restaurant ID"
// @Success 200 {array} services.MenuItemResponse
// @Failure 404 {object} ErrorResponse
// @Router /restaurants/{restaurant_id}/menu [get]
func (h *RestaurantHandler) GetRestaurantMenu(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.menuService.GetRestaurantMenu(c.Request.Context(), c.Param("restaurant_id"), page, limit)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Failed to load menu",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// pagination reads limit/offset query parameters with sane bounds.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
