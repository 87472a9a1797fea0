package handler

import (
	"net/http"

	"watertracker/internal/middleware"
	"watertracker/internal/service"
	"watertracker/pkg/pagination"
	"watertracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type ConsumptionHandler struct {
	consumptionService service.ConsumptionService
}

func NewConsumptionHandler(consumptionService service.ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{consumptionService: consumptionService}
}

// RegisterRoutes binds consumption category, location and entry endpoints.
func (h *ConsumptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/consumption-categories")
	{
		categories.GET("", middleware.RequireRole(readRoles...), h.ListCategories)
		categories.POST("", middleware.RequireRole(writeRoles...), h.CreateCategory)
		categories.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateCategory)
		categories.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteCategory)
		categories.POST("/bulk_delete", middleware.RequireRole(writeRoles...), h.BulkDeleteCategories)
	}

	locations := router.Group("/consumption-locations")
	{
		locations.GET("", middleware.RequireRole(readRoles...), h.ListLocations)
		locations.POST("", middleware.RequireRole(writeRoles...), h.CreateLocation)
		locations.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateLocation)
		locations.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteLocation)
		locations.POST("/bulk_delete", middleware.RequireRole(writeRoles...), h.BulkDeleteLocations)
		locations.POST("/reorder", middleware.RequireRole(writeRoles...), h.ReorderLocations)
	}

	entries := router.Group("/consumption-entries")
	{
		entries.GET("", middleware.RequireRole(readRoles...), h.ListEntries)
		entries.POST("", middleware.RequireRole(writeRoles...), h.CreateEntry)
		entries.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateEntry)
		entries.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteEntry)
		entries.POST("/bulk_delete", middleware.RequireRole(writeRoles...), h.BulkDeleteEntries)
		entries.GET("/bulk-data", middleware.RequireRole(readRoles...), h.BulkData)
		entries.POST("/bulk-create", middleware.RequireRole(writeRoles...), h.BulkCreate)
	}

	router.GET("/last-consumption-reading", middleware.RequireRole(readRoles...), h.LastReading)
}

// --- Categories ---

// ListCategories handles GET /consumption-categories
// @Summary      List consumption categories
// @Tags         consumption
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.ConsumptionCategory}
// @Router       /consumption-categories [get]
func (h *ConsumptionHandler) ListCategories(c *gin.Context) {
	categories, err := h.consumptionService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch categories"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// CreateCategory handles POST /consumption-categories
// @Summary      Create consumption category
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ConsumptionCategoryRequest  true  "Category Payload"
// @Success      201      {object}  response.Response{data=model.ConsumptionCategory}
// @Failure      400      {object}  response.Response
// @Router       /consumption-categories [post]
func (h *ConsumptionHandler) CreateCategory(c *gin.Context) {
	var req service.ConsumptionCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	category, err := h.consumptionService.CreateCategory(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// UpdateCategory handles PUT /consumption-categories/:id
// @Summary      Update consumption category
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                                 true  "Category ID"
// @Param        payload  body      service.ConsumptionCategoryRequest  true  "Category Payload"
// @Success      200      {object}  response.Response{data=model.ConsumptionCategory}
// @Failure      400      {object}  response.Response
// @Router       /consumption-categories/{id} [put]
func (h *ConsumptionHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.ConsumptionCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	category, err := h.consumptionService.UpdateCategory(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// DeleteCategory handles DELETE /consumption-categories/:id
// @Summary      Delete consumption category
// @Tags         consumption
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /consumption-categories/{id} [delete]
func (h *ConsumptionHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.consumptionService.DeleteCategory(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Category deleted successfully"))
}

// BulkDeleteCategories handles POST /consumption-categories/bulk_delete
// @Summary      Bulk delete consumption categories
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkDeleteRequest  true  "IDs to delete"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /consumption-categories/bulk_delete [post]
func (h *ConsumptionHandler) BulkDeleteCategories(c *gin.Context) {
	var req service.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.consumptionService.BulkDeleteCategories(c.Request.Context(), currentUserID(c), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Categories deleted successfully"))
}

// --- Locations ---

// ListLocations handles GET /consumption-locations
// @Summary      List consumption locations
// @Tags         consumption
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.ConsumptionLocation}
// @Router       /consumption-locations [get]
func (h *ConsumptionHandler) ListLocations(c *gin.Context) {
	locations, err := h.consumptionService.ListLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch consumption locations"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, locations))
}

// CreateLocation handles POST /consumption-locations
// @Summary      Create consumption location
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ConsumptionLocationRequest  true  "Consumption Location Payload"
// @Success      201      {object}  response.Response{data=model.ConsumptionLocation}
// @Failure      400      {object}  response.Response
// @Router       /consumption-locations [post]
func (h *ConsumptionHandler) CreateLocation(c *gin.Context) {
	var req service.ConsumptionLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	loc, err := h.consumptionService.CreateLocation(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, loc))
}

// UpdateLocation handles PUT /consumption-locations/:id
// @Summary      Update consumption location
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                                 true  "Location ID"
// @Param        payload  body      service.ConsumptionLocationRequest  true  "Consumption Location Payload"
// @Success      200      {object}  response.Response{data=model.ConsumptionLocation}
// @Failure      400      {object}  response.Response
// @Router       /consumption-locations/{id} [put]
func (h *ConsumptionHandler) UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.ConsumptionLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	loc, err := h.consumptionService.UpdateLocation(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, loc))
}

// DeleteLocation handles DELETE /consumption-locations/:id
// @Summary      Delete consumption location
// @Tags         consumption
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Location ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /consumption-locations/{id} [delete]
func (h *ConsumptionHandler) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.consumptionService.DeleteLocation(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Consumption location deleted successfully"))
}

// BulkDeleteLocations handles POST /consumption-locations/bulk_delete
// @Summary      Bulk delete consumption locations
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkDeleteRequest  true  "IDs to delete"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /consumption-locations/bulk_delete [post]
func (h *ConsumptionHandler) BulkDeleteLocations(c *gin.Context) {
	var req service.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.consumptionService.BulkDeleteLocations(c.Request.Context(), currentUserID(c), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Consumption locations deleted successfully"))
}

// ReorderLocations handles POST /consumption-locations/reorder
// @Summary      Reorder consumption locations
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ReorderRequest  true  "Sort order updates"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /consumption-locations/reorder [post]
func (h *ConsumptionHandler) ReorderLocations(c *gin.Context) {
	var req service.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.consumptionService.ReorderLocations(c.Request.Context(), currentUserID(c), req.Orders); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Consumption locations reordered successfully"))
}

// --- Entries ---

// ListEntries handles GET /consumption-entries
// @Summary      List consumption entries
// @Tags         consumption
// @Produce      json
// @Security     BearerAuth
// @Param        page              query     int     false  "Page number (default 1)"
// @Param        limit             query     int     false  "Items per page (default 20)"
// @Param        location_id       query     int     false  "Filter by consumption location"
// @Param        category_id       query     int     false  "Filter by category"
// @Param        consumption_type  query     string  false  "Normal or Drinking"
// @Param        start_date        query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date          query     string  false  "End date (YYYY-MM-DD)"
// @Success      200               {object}  response.Response{data=[]model.ConsumptionEntry}
// @Failure      400               {object}  response.Response
// @Router       /consumption-entries [get]
func (h *ConsumptionHandler) ListEntries(c *gin.Context) {
	params := pagination.Parse(c)
	query := service.ConsumptionListQuery{
		LocationID:      uintQuery(c, "location_id"),
		CategoryID:      uintQuery(c, "category_id"),
		ConsumptionType: c.Query("consumption_type"),
		StartDate:       c.Query("start_date"),
		EndDate:         c.Query("end_date"),
		Ordering:        c.Query("ordering"),
	}
	entries, total, err := h.consumptionService.ListEntries(c.Request.Context(), query, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, entries, params.Page, params.Limit, total))
}

// CreateEntry handles POST /consumption-entries
// @Summary      Create consumption entry
// @Description  Records a meter reading; consumption is derived from the delta against the previous reading
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ConsumptionEntryRequest  true  "Consumption Entry Payload"
// @Success      201      {object}  response.Response{data=model.ConsumptionEntry}
// @Failure      400      {object}  response.Response
// @Router       /consumption-entries [post]
func (h *ConsumptionHandler) CreateEntry(c *gin.Context) {
	var req service.ConsumptionEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	entry, err := h.consumptionService.CreateEntry(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// UpdateEntry handles PUT /consumption-entries/:id
// @Summary      Update consumption entry
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                              true  "Entry ID"
// @Param        payload  body      service.ConsumptionEntryRequest  true  "Consumption Entry Payload"
// @Success      200      {object}  response.Response{data=model.ConsumptionEntry}
// @Failure      400      {object}  response.Response
// @Router       /consumption-entries/{id} [put]
func (h *ConsumptionHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.ConsumptionEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	entry, err := h.consumptionService.UpdateEntry(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// DeleteEntry handles DELETE /consumption-entries/:id
// @Summary      Delete consumption entry
// @Tags         consumption
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /consumption-entries/{id} [delete]
func (h *ConsumptionHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.consumptionService.DeleteEntry(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Consumption entry deleted successfully"))
}

// BulkDeleteEntries handles POST /consumption-entries/bulk_delete
// @Summary      Bulk delete consumption entries
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkDeleteRequest  true  "IDs to delete"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /consumption-entries/bulk_delete [post]
func (h *ConsumptionHandler) BulkDeleteEntries(c *gin.Context) {
	var req service.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.consumptionService.BulkDeleteEntries(c.Request.Context(), currentUserID(c), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Consumption entries deleted successfully"))
}

// BulkData handles GET /consumption-entries/bulk-data
// @Summary      Bulk entry prefill
// @Description  For a date, returns each active consumption location with its previous reading and any existing entry
// @Tags         consumption
// @Produce      json
// @Security     BearerAuth
// @Param        date              query     string  true   "Date (YYYY-MM-DD)"
// @Param        consumption_type  query     string  false  "Normal or Drinking"
// @Success      200               {object}  response.Response{data=[]service.ConsumptionBulkDataRow}
// @Failure      400               {object}  response.Response
// @Router       /consumption-entries/bulk-data [get]
func (h *ConsumptionHandler) BulkData(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "date is required"))
		return
	}
	rows, err := h.consumptionService.BulkData(c.Request.Context(), date, c.Query("consumption_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// BulkCreate handles POST /consumption-entries/bulk-create
// @Summary      Bulk create consumption entries
// @Description  Upserts one entry per location for a date; invalid rows are skipped and reported while valid rows persist
// @Tags         consumption
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkReadingRequest  true  "Bulk Reading Payload"
// @Success      200      {object}  response.Response{data=service.BulkReadingResult}
// @Failure      400      {object}  response.Response
// @Router       /consumption-entries/bulk-create [post]
func (h *ConsumptionHandler) BulkCreate(c *gin.Context) {
	var req service.BulkReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	result, err := h.consumptionService.BulkCreate(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// LastReading handles GET /last-consumption-reading
// @Summary      Get last consumption reading
// @Description  Returns the most recent meter reading on or before a date for a consumption location
// @Tags         consumption
// @Produce      json
// @Security     BearerAuth
// @Param        location_id  query     int     true  "Consumption location ID"
// @Param        date         query     string  true  "On-or-before date (YYYY-MM-DD)"
// @Success      200          {object}  response.Response{data=service.LastReadingResponse}
// @Failure      400          {object}  response.Response
// @Router       /last-consumption-reading [get]
func (h *ConsumptionHandler) LastReading(c *gin.Context) {
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

	result, err := h.consumptionService.LastReading(c.Request.Context(), *locationID, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
