package handler

import (
	"net/http"

	"watertracker/internal/middleware"
	"watertracker/internal/service"
	"watertracker/pkg/pagination"
	"watertracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type YieldHandler struct {
	yieldService service.YieldService
}

func NewYieldHandler(yieldService service.YieldService) *YieldHandler {
	return &YieldHandler{yieldService: yieldService}
}

// RegisterRoutes binds yield location and yield entry endpoints, including the
// bulk entry screen's prefill and submit routes.
func (h *YieldHandler) RegisterRoutes(router *gin.RouterGroup) {
	locations := router.Group("/yield-locations")
	{
		locations.GET("", middleware.RequireRole(readRoles...), h.ListLocations)
		locations.POST("", middleware.RequireRole(writeRoles...), h.CreateLocation)
		locations.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateLocation)
		locations.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteLocation)
		locations.POST("/bulk_delete", middleware.RequireRole(writeRoles...), h.BulkDeleteLocations)
		locations.POST("/reorder", middleware.RequireRole(writeRoles...), h.ReorderLocations)
	}

	entries := router.Group("/yield-entries")
	{
		entries.GET("", middleware.RequireRole(readRoles...), h.ListEntries)
		entries.POST("", middleware.RequireRole(writeRoles...), h.CreateEntry)
		entries.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateEntry)
		entries.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteEntry)
		entries.POST("/bulk_delete", middleware.RequireRole(writeRoles...), h.BulkDeleteEntries)
		entries.GET("/bulk-data", middleware.RequireRole(readRoles...), h.BulkData)
		entries.POST("/bulk-create", middleware.RequireRole(writeRoles...), h.BulkCreate)
	}

	router.GET("/last-yield-reading", middleware.RequireRole(readRoles...), h.LastReading)
}

// --- Locations ---

// ListLocations handles GET /yield-locations
// @Summary      List yield locations
// @Tags         yield
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.YieldLocation}
// @Router       /yield-locations [get]
func (h *YieldHandler) ListLocations(c *gin.Context) {
	locations, err := h.yieldService.ListLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch yield locations"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, locations))
}

// CreateLocation handles POST /yield-locations
// @Summary      Create yield location
// @Tags         yield
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.YieldLocationRequest  true  "Yield Location Payload"
// @Success      201      {object}  response.Response{data=model.YieldLocation}
// @Failure      400      {object}  response.Response
// @Router       /yield-locations [post]
func (h *YieldHandler) CreateLocation(c *gin.Context) {
	var req service.YieldLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	loc, err := h.yieldService.CreateLocation(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, loc))
}

// UpdateLocation handles PUT /yield-locations/:id
// @Summary      Update yield location
// @Tags         yield
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                           true  "Location ID"
// @Param        payload  body      service.YieldLocationRequest  true  "Yield Location Payload"
// @Success      200      {object}  response.Response{data=model.YieldLocation}
// @Failure      400      {object}  response.Response
// @Router       /yield-locations/{id} [put]
func (h *YieldHandler) UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.YieldLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	loc, err := h.yieldService.UpdateLocation(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, loc))
}

// DeleteLocation handles DELETE /yield-locations/:id
// @Summary      Delete yield location
// @Tags         yield
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Location ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /yield-locations/{id} [delete]
func (h *YieldHandler) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.yieldService.DeleteLocation(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Yield location deleted successfully"))
}

// BulkDeleteLocations handles POST /yield-locations/bulk_delete
// @Summary      Bulk delete yield locations
// @Tags         yield
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkDeleteRequest  true  "IDs to delete"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /yield-locations/bulk_delete [post]
func (h *YieldHandler) BulkDeleteLocations(c *gin.Context) {
	var req service.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.yieldService.BulkDeleteLocations(c.Request.Context(), currentUserID(c), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Yield locations deleted successfully"))
}

// ReorderLocations handles POST /yield-locations/reorder
// @Summary      Reorder yield locations
// @Tags         yield
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ReorderRequest  true  "Sort order updates"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /yield-locations/reorder [post]
func (h *YieldHandler) ReorderLocations(c *gin.Context) {
	var req service.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.yieldService.ReorderLocations(c.Request.Context(), currentUserID(c), req.Orders); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Yield locations reordered successfully"))
}

// --- Entries ---

// ListEntries handles GET /yield-entries
// @Summary      List yield entries
// @Tags         yield
// @Produce      json
// @Security     BearerAuth
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Items per page (default 20)"
// @Param        location_id  query     int     false  "Filter by yield location"
// @Param        start_date   query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date     query     string  false  "End date (YYYY-MM-DD)"
// @Success      200          {object}  response.Response{data=[]model.YieldEntry}
// @Failure      400          {object}  response.Response
// @Router       /yield-entries [get]
func (h *YieldHandler) ListEntries(c *gin.Context) {
	params := pagination.Parse(c)
	entries, total, err := h.yieldService.ListEntries(
		c.Request.Context(),
		uintQuery(c, "location_id"),
		c.Query("start_date"),
		c.Query("end_date"),
		c.Query("ordering"),
		params.Page, params.Limit,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, entries, params.Page, params.Limit, total))
}

// CreateEntry handles POST /yield-entries
// @Summary      Create yield entry
// @Description  Records a meter reading; yield is derived from the delta against the previous reading
// @Tags         yield
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.YieldEntryRequest  true  "Yield Entry Payload"
// @Success      201      {object}  response.Response{data=model.YieldEntry}
// @Failure      400      {object}  response.Response
// @Router       /yield-entries [post]
func (h *YieldHandler) CreateEntry(c *gin.Context) {
	var req service.YieldEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	entry, err := h.yieldService.CreateEntry(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// UpdateEntry handles PUT /yield-entries/:id
// @Summary      Update yield entry
// @Tags         yield
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                        true  "Entry ID"
// @Param        payload  body      service.YieldEntryRequest  true  "Yield Entry Payload"
// @Success      200      {object}  response.Response{data=model.YieldEntry}
// @Failure      400      {object}  response.Response
// @Router       /yield-entries/{id} [put]
func (h *YieldHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.YieldEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	entry, err := h.yieldService.UpdateEntry(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// DeleteEntry handles DELETE /yield-entries/:id
// @Summary      Delete yield entry
// @Tags         yield
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /yield-entries/{id} [delete]
func (h *YieldHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.yieldService.DeleteEntry(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Yield entry deleted successfully"))
}

// BulkDeleteEntries handles POST /yield-entries/bulk_delete
// @Summary      Bulk delete yield entries
// @Tags         yield
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkDeleteRequest  true  "IDs to delete"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /yield-entries/bulk_delete [post]
func (h *YieldHandler) BulkDeleteEntries(c *gin.Context) {
	var req service.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.yieldService.BulkDeleteEntries(c.Request.Context(), currentUserID(c), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Yield entries deleted successfully"))
}

// BulkData handles GET /yield-entries/bulk-data
// @Summary      Bulk entry prefill
// @Description  For a date, returns each active yield location with its previous reading and any existing entry
// @Tags         yield
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  response.Response{data=[]service.YieldBulkDataRow}
// @Failure      400   {object}  response.Response
// @Router       /yield-entries/bulk-data [get]
func (h *YieldHandler) BulkData(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "date is required"))
		return
	}
	rows, err := h.yieldService.BulkData(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// BulkCreate handles POST /yield-entries/bulk-create
// @Summary      Bulk create yield entries
// @Description  Upserts one entry per location for a date; invalid rows are skipped and reported while valid rows persist
// @Tags         yield
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkReadingRequest  true  "Bulk Reading Payload"
// @Success      200      {object}  response.Response{data=service.BulkReadingResult}
// @Failure      400      {object}  response.Response
// @Router       /yield-entries/bulk-create [post]
func (h *YieldHandler) BulkCreate(c *gin.Context) {
	var req service.BulkReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	result, err := h.yieldService.BulkCreate(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// LastReading handles GET /last-yield-reading
// @Summary      Get last yield reading
// @Description  Returns the most recent meter reading on or before a date for a yield location
// @Tags         yield
// @Produce      json
// @Security     BearerAuth
// @Param        location_id  query     int     true  "Yield location ID"
// @Param        date         query     string  true  "On-or-before date (YYYY-MM-DD)"
// @Success      200          {object}  response.Response{data=service.LastReadingResponse}
// @Failure      400          {object}  response.Response
// @Router       /last-yield-reading [get]
func (h *YieldHandler) LastReading(c *gin.Context) {
	locationID := uintQuery(c, "location_id")
	if locationID == nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "location_id is required"))
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "date is required"))
		return
	}

	result, err := h.yieldService.LastReading(c.Request.Context(), *locationID, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
