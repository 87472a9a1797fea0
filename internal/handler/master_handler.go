package handler

import (
	"net/http"

	"watertracker/internal/middleware"
	"watertracker/internal/service"
	"watertracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type MasterHandler struct {
	masterService service.MasterService
}

func NewMasterHandler(masterService service.MasterService) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// RegisterRoutes binds master-data endpoints: locations, sources, vehicles
// and the combined dropdown payload.
func (h *MasterHandler) RegisterRoutes(router *gin.RouterGroup) {
	locations := router.Group("/locations")
	{
		locations.GET("", middleware.RequireRole(readRoles...), h.ListLocations)
		locations.POST("", middleware.RequireRole(writeRoles...), h.CreateLocation)
		locations.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateLocation)
		locations.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteLocation)
		locations.POST("/bulk_delete", middleware.RequireRole(writeRoles...), h.BulkDeleteLocations)
		locations.POST("/reorder", middleware.RequireRole(writeRoles...), h.ReorderLocations)
	}

	sources := router.Group("/sources")
	{
		sources.GET("", middleware.RequireRole(readRoles...), h.ListSources)
		sources.POST("", middleware.RequireRole(writeRoles...), h.CreateSource)
		sources.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateSource)
		sources.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteSource)
	}

	internalVehicles := router.Group("/internal-vehicles")
	{
		internalVehicles.GET("", middleware.RequireRole(readRoles...), h.ListInternalVehicles)
		internalVehicles.POST("", middleware.RequireRole(writeRoles...), h.CreateInternalVehicle)
		internalVehicles.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateInternalVehicle)
		internalVehicles.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteInternalVehicle)
	}

	vendorVehicles := router.Group("/vendor-vehicles")
	{
		vendorVehicles.GET("", middleware.RequireRole(readRoles...), h.ListVendorVehicles)
		vendorVehicles.POST("", middleware.RequireRole(writeRoles...), h.CreateVendorVehicle)
		vendorVehicles.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateVendorVehicle)
		vendorVehicles.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteVendorVehicle)
	}

	router.GET("/dropdown-data", middleware.RequireRole(readRoles...), h.GetDropdownData)
}

// --- Locations ---

// ListLocations handles GET /locations
// @Summary      List locations
// @Tags         masters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.MasterLocation}
// @Router       /locations [get]
func (h *MasterHandler) ListLocations(c *gin.Context) {
	locations, err := h.masterService.ListLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch locations"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, locations))
}

// CreateLocation handles POST /locations
// @Summary      Create location
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.LocationRequest  true  "Location Payload"
// @Success      201      {object}  response.Response{data=model.MasterLocation}
// @Failure      400      {object}  response.Response
// @Router       /locations [post]
func (h *MasterHandler) CreateLocation(c *gin.Context) {
	var req service.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	loc, err := h.masterService.CreateLocation(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, loc))
}

// UpdateLocation handles PUT /locations/:id
// @Summary      Update location
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                      true  "Location ID"
// @Param        payload  body      service.LocationRequest  true  "Location Payload"
// @Success      200      {object}  response.Response{data=model.MasterLocation}
// @Failure      400      {object}  response.Response
// @Router       /locations/{id} [put]
func (h *MasterHandler) UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	loc, err := h.masterService.UpdateLocation(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, loc))
}

// DeleteLocation handles DELETE /locations/:id
// @Summary      Delete location
// @Tags         masters
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Location ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /locations/{id} [delete]
func (h *MasterHandler) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.masterService.DeleteLocation(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Location deleted successfully"))
}

// BulkDeleteLocations handles POST /locations/bulk_delete
// @Summary      Bulk delete locations
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkDeleteRequest  true  "IDs to delete"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /locations/bulk_delete [post]
func (h *MasterHandler) BulkDeleteLocations(c *gin.Context) {
	var req service.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.masterService.BulkDeleteLocations(c.Request.Context(), currentUserID(c), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Locations deleted successfully"))
}

// ReorderLocations handles POST /locations/reorder
// @Summary      Reorder locations
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ReorderRequest  true  "Sort order updates"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /locations/reorder [post]
func (h *MasterHandler) ReorderLocations(c *gin.Context) {
	var req service.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.masterService.ReorderLocations(c.Request.Context(), currentUserID(c), req.Orders); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Locations reordered successfully"))
}

// --- Sources ---

// ListSources handles GET /sources
// @Summary      List water sources
// @Tags         masters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.MasterSource}
// @Router       /sources [get]
func (h *MasterHandler) ListSources(c *gin.Context) {
	sources, err := h.masterService.ListSources(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch sources"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sources))
}

// CreateSource handles POST /sources
// @Summary      Create water source
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SourceRequest  true  "Source Payload"
// @Success      201      {object}  response.Response{data=model.MasterSource}
// @Failure      400      {object}  response.Response
// @Router       /sources [post]
func (h *MasterHandler) CreateSource(c *gin.Context) {
	var req service.SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	src, err := h.masterService.CreateSource(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, src))
}

// UpdateSource handles PUT /sources/:id
// @Summary      Update water source
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                    true  "Source ID"
// @Param        payload  body      service.SourceRequest  true  "Source Payload"
// @Success      200      {object}  response.Response{data=model.MasterSource}
// @Failure      400      {object}  response.Response
// @Router       /sources/{id} [put]
func (h *MasterHandler) UpdateSource(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	src, err := h.masterService.UpdateSource(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, src))
}

// DeleteSource handles DELETE /sources/:id
// @Summary      Delete water source
// @Tags         masters
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Source ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /sources/{id} [delete]
func (h *MasterHandler) DeleteSource(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.masterService.DeleteSource(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Source deleted successfully"))
}

// --- Internal vehicles ---

// ListInternalVehicles handles GET /internal-vehicles
// @Summary      List internal vehicles
// @Tags         masters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.MasterInternalVehicle}
// @Router       /internal-vehicles [get]
func (h *MasterHandler) ListInternalVehicles(c *gin.Context) {
	vehicles, err := h.masterService.ListInternalVehicles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch vehicles"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicles))
}

// CreateInternalVehicle handles POST /internal-vehicles
// @Summary      Create internal vehicle
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.InternalVehicleRequest  true  "Vehicle Payload"
// @Success      201      {object}  response.Response{data=model.MasterInternalVehicle}
// @Failure      400      {object}  response.Response
// @Router       /internal-vehicles [post]
func (h *MasterHandler) CreateInternalVehicle(c *gin.Context) {
	var req service.InternalVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	v, err := h.masterService.CreateInternalVehicle(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, v))
}

// UpdateInternalVehicle handles PUT /internal-vehicles/:id
// @Summary      Update internal vehicle
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                             true  "Vehicle ID"
// @Param        payload  body      service.InternalVehicleRequest  true  "Vehicle Payload"
// @Success      200      {object}  response.Response{data=model.MasterInternalVehicle}
// @Failure      400      {object}  response.Response
// @Router       /internal-vehicles/{id} [put]
func (h *MasterHandler) UpdateInternalVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.InternalVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	v, err := h.masterService.UpdateInternalVehicle(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, v))
}

// DeleteInternalVehicle handles DELETE /internal-vehicles/:id
// @Summary      Delete internal vehicle
// @Tags         masters
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vehicle ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /internal-vehicles/{id} [delete]
func (h *MasterHandler) DeleteInternalVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.masterService.DeleteInternalVehicle(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Vehicle deleted successfully"))
}

// --- Vendor vehicles ---

// ListVendorVehicles handles GET /vendor-vehicles
// @Summary      List vendor vehicles
// @Tags         masters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.MasterVendorVehicle}
// @Router       /vendor-vehicles [get]
func (h *MasterHandler) ListVendorVehicles(c *gin.Context) {
	vehicles, err := h.masterService.ListVendorVehicles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch vendor vehicles"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicles))
}

// CreateVendorVehicle handles POST /vendor-vehicles
// @Summary      Create vendor vehicle
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.VendorVehicleRequest  true  "Vendor Vehicle Payload"
// @Success      201      {object}  response.Response{data=model.MasterVendorVehicle}
// @Failure      400      {object}  response.Response
// @Router       /vendor-vehicles [post]
func (h *MasterHandler) CreateVendorVehicle(c *gin.Context) {
	var req service.VendorVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	v, err := h.masterService.CreateVendorVehicle(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, v))
}

// UpdateVendorVehicle handles PUT /vendor-vehicles/:id
// @Summary      Update vendor vehicle
// @Tags         masters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                           true  "Vendor Vehicle ID"
// @Param        payload  body      service.VendorVehicleRequest  true  "Vendor Vehicle Payload"
// @Success      200      {object}  response.Response{data=model.MasterVendorVehicle}
// @Failure      400      {object}  response.Response
// @Router       /vendor-vehicles/{id} [put]
func (h *MasterHandler) UpdateVendorVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.VendorVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	v, err := h.masterService.UpdateVendorVehicle(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, v))
}

// DeleteVendorVehicle handles DELETE /vendor-vehicles/:id
// @Summary      Delete vendor vehicle
// @Tags         masters
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vendor Vehicle ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /vendor-vehicles/{id} [delete]
func (h *MasterHandler) DeleteVendorVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.masterService.DeleteVendorVehicle(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Vendor vehicle deleted successfully"))
}

// --- Dropdown data ---

// GetDropdownData handles GET /dropdown-data
// @Summary      Get dropdown data
// @Description  Returns active locations, sources and all vehicles in one payload for entry forms
// @Tags         masters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.DropdownData}
// @Router       /dropdown-data [get]
func (h *MasterHandler) GetDropdownData(c *gin.Context) {
	data, err := h.masterService.GetDropdownData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch dropdown data"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}
