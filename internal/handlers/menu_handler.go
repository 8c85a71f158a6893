package handlers

import (
	"net/http"

	"quickdeliver-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menuService *services.MenuService
}

func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// RegisterRoutes registers the routes for menu management
func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	menus := router.Group("/menus")
	{
		menus.POST("", h.CreateMenu)
		menus.GET("/:menu_id", h.GetMenu)
		menus.PUT("/:menu_id", h.UpdateMenu)
		menus.DELETE("/:menu_id", h.DeleteMenu)
	}
}

// CreateMenu godoc
// @Summary Create menu entry
// @Description Attach a catalog product to a restaurant at a price
// @Tags menus
// @Accept json
// @Produce json
// @Param menu body services.CreateMenuRequest true "Menu data"
// @Success 201 {object} models.Menu
// @Failure 400 {object} ErrorResponse
// @Router /menus [post]
func (h *MenuHandler) CreateMenu(c *gin.Context) {
	var req services.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	menu, err := h.menuService.CreateMenu(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to create menu",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, menu)
}

// GetMenu godoc
// @Summary Get menu entry
// @Tags menus
// @Produce json
// @Param menu_id path string true "Menu ID"
// @Success 200 {object} models.Menu
// @Failure 404 {object} ErrorResponse
// @Router /menus/{menu_id} [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu, err := h.menuService.GetMenu(c.Request.Context(), c.Param("menu_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Menu not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, menu)
}

// UpdateMenu godoc
// @Summary Update menu entry
// @Tags menus
// @Accept json
// @Produce json
// @Param menu_id path string true "Menu ID"
// @Param menu body services.UpdateMenuRequest true "Menu data"
// @Success 200 {object} models.Menu
// @Failure 400 {object} ErrorResponse
// @Router /menus/{menu_id} [put]
func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	var req services.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	menu, err := h.menuService.UpdateMenu(c.Request.Context(), c.Param("menu_id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update menu",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, menu)
}

// DeleteMenu godoc
// @Summary Delete menu entry
// @Tags menus
// @Param menu_id path string true "Menu ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Router /menus/{menu_id} [delete]
func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	if err := h.menuService.DeleteMenu(c.Request.Context(), c.Param("menu_id")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to delete menu",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
