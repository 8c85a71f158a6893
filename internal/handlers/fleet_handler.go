package handlers

import (
	"net/http"

	"quickdeliver-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type FleetHandler struct {
	fleetService    *services.FleetService
	trackingService *services.TrackingService
}

func NewFleetHandler(fleetService *services.FleetService, trackingService *services.TrackingService) *FleetHandler {
	return &FleetHandler{
		fleetService:    fleetService,
		trackingService: trackingService,
	}
}

// RegisterRoutes registers the routes for fleet management and tracking
func (h *FleetHandler) RegisterRoutes(router *gin.RouterGroup) {
	drivers := router.Group("/drivers")
	{
		drivers.POST("", h.CreateDriver)
		drivers.GET("", h.GetDrivers)
		drivers.GET("/available", h.GetAvailableDrivers)
		drivers.GET("/:driver_id", h.GetDriver)
		drivers.PUT("/:driver_id", h.UpdateDriver)
		drivers.DELETE("/:driver_id", h.DeleteDriver)
	}

	motorcycles := router.Group("/motorcycles")
	{
		motorcycles.POST("", h.CreateMotorcycle)
		motorcycles.GET("", h.GetMotorcycles)
		motorcycles.GET("/:motorcycle_id", h.GetMotorcycle)
		motorcycles.PUT("/:motorcycle_id", h.UpdateMotorcycle)
		motorcycles.DELETE("/:motorcycle_id", h.DeleteMotorcycle)
	}

	tracking := router.Group("/tracking")
	{
		tracking.GET("/:plate", h.GetTracking)
	}
}

// CreateDriver godoc
// @Summary Create driver
// @Tags fleet
// @Accept json
// @Produce json
// @Param driver body services.CreateDriverRequest true "Driver data"
// @Success 201 {object} models.Driver
// @Failure 400 {object} ErrorResponse
// @Router /drivers [post]
func (h *FleetHandler) CreateDriver(c *gin.Context) {
	var req services.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	driver, err := h.fleetService.CreateDriver(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to create driver",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, driver)
}

// GetDrivers godoc
// @Summary List drivers
// @Tags fleet
// @Produce json
// @Success 200 {array} models.Driver
// @Router /drivers [get]
func (h *FleetHandler) GetDrivers(c *gin.Context) {
	limit, offset := pagination(c)

	drivers, err := h.fleetService.GetDrivers(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list drivers",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, drivers)
}

// GetAvailableDrivers godoc
// @Summary List available drivers
// @Tags fleet
// @Produce json
// @Success 200 {array} models.Driver
// @Router /drivers/available [get]
func (h *FleetHandler) GetAvailableDrivers(c *gin.Context) {
	drivers, err := h.fleetService.ListAvailableDrivers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list available drivers",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, drivers)
}

// GetDriver godoc
// @Summary Get driver
// @Tags fleet
// @Produce json
// @Param driver_id path string true "Driver ID"
// @Success 200 {object} models.Driver
// @Failure 404 {object} ErrorResponse
// @Router /drivers/{driver_id} [get]
func (h *FleetHandler) GetDriver(c *gin.Context) {
	driver, err := h.fleetService.GetDriver(c.Request.Context(), c.Param("driver_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Driver not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// UpdateDriver godoc
// @Summary Update driver
// @Tags fleet
// @Accept json
// @Produce json
// @Param driver_id path string true "Driver ID"
// @Param driver body services.UpdateDriverRequest true "Driver data"
// @Success 200 {object} models.Driver
// @Failure 400 {object} ErrorResponse
// @Router /drivers/{driver_id} [put]
func (h *FleetHandler) UpdateDriver(c *gin.Context) {
	var req services.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	driver, err := h.fleetService.UpdateDriver(c.Request.Context(), c.Param("driver_id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update driver",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// DeleteDriver godoc
// @Summary Delete driver
// @Tags fleet
// @Param driver_id path string true "Driver ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Router /drivers/{driver_id} [delete]
func (h *FleetHandler) DeleteDriver(c *gin.Context) {
	if err := h.fleetService.DeleteDriver(c.Request.Context(), c.Param("driver_id")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to delete driver",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateMotorcycle godoc
// @Summary Create motorcycle
// @Tags fleet
// @Accept json
// @Produce json
// @Param motorcycle body services.CreateMotorcycleRequest true "Motorcycle data"
// @Success 201 {object} models.Motorcycle
// @Failure 400 {object} ErrorResponse
// @Router /motorcycles [post]
func (h *FleetHandler) CreateMotorcycle(c *gin.Context) {
	var req services.CreateMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	motorcycle, err := h.fleetService.CreateMotorcycle(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to create motorcycle",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, motorcycle)
}

// GetMotorcycles godoc
// @Summary List motorcycles
// @Tags fleet
// @Produce json
// @Success 200 {array} models.Motorcycle
// @Router /motorcycles [get]
func (h *FleetHandler) GetMotorcycles(c *gin.Context) {
	limit, offset := pagination(c)

	motorcycles, err := h.fleetService.GetMotorcycles(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list motorcycles",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, motorcycles)
}

// GetMotorcycle godoc
// @Summary Get motorcycle
// @Tags fleet
// @Produce json
// @Param motorcycle_id path string true "Motorcycle ID"
// @Success 200 {object} models.Motorcycle
// @Failure 404 {object} ErrorResponse
// @Router /motorcycles/{motorcycle_id} [get]
func (h *FleetHandler) GetMotorcycle(c *gin.Context) {
	motorcycle, err := h.fleetService.GetMotorcycle(c.Request.Context(), c.Param("motorcycle_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Motorcycle not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, motorcycle)
}

// UpdateMotorcycle godoc
// @Summary Update motorcycle
// @Tags fleet
// @Accept json
// @Produce json
// @Param motorcycle_id path string true "Motorcycle ID"
// @Param motorcycle body services.UpdateMotorcycleRequest true "Motorcycle data"
// @Success 200 {object} models.Motorcycle
// @Failure 400 {object} ErrorResponse
// @Router /motorcycles/{motorcycle_id} [put]
func (h *FleetHandler) UpdateMotorcycle(c *gin.Context) {
	var req services.UpdateMotorcycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	motorcycle, err := h.fleetService.UpdateMotorcycle(c.Request.Context(), c.Param("motorcycle_id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update motorcycle",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, motorcycle)
}

// DeleteMotorcycle godoc
// @Summary Delete motorcycle
// @Tags fleet
// @Param motorcycle_id path string true "Motorcycle ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Router /motorcycles/{motorcycle_id} [delete]
func (h *FleetHandler) DeleteMotorcycle(c *gin.Context) {
	if err := h.fleetService.DeleteMotorcycle(c.Request.Context(), c.Param("motorcycle_id")); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to delete motorcycle",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// TrackingResponse reports tracking state and last known position for a plate.
type TrackingResponse struct {
	Plate    string                `json:"plate"`
	Tracked  bool                  `json:"tracked"`
	Location *services.Coordinates `json:"location,omitempty"`
}

// GetTracking godoc
// @Summary Get delivery tracking for a plate
// @Description Report whether the motorcycle is tracked and its last known position
// @Tags fleet
// @Produce json
// @Param plate path string true "License plate"
// @Success 200 {object} TrackingResponse
// @Failure 500 {object} ErrorResponse
// @Router /tracking/{plate} [get]
func (h *FleetHandler) GetTracking(c *gin.Context) {
	plate := c.Param("plate")
	ctx := c.Request.Context()

	tracked, err := h.fleetService.IsTracked(ctx, plate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to check tracking state",
			Message: err.Error(),
		})
		return
	}

	response := TrackingResponse{Plate: plate, Tracked: tracked}
	if tracked {
		location, err := h.trackingService.GetLastLocation(ctx, plate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to load location",
				Message: err.Error(),
			})
			return
		}
		response.Location = location
	}

	c.JSON(http.StatusOK, response)
}
