package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"watertracker/internal/middleware"
	"watertracker/internal/service"
	"watertracker/pkg/pagination"
	"watertracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type EntryHandler struct {
	entryService service.EntryService
	costService  service.CostService
}

func NewEntryHandler(entryService service.EntryService, costService service.CostService) *EntryHandler {
	return &EntryHandler{entryService: entryService, costService: costService}
}

// RegisterRoutes binds the water entry endpoints plus the cost preview and
// last-pipeline-reading lookups the entry form depends on.
func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.GET("", middleware.RequireRole(readRoles...), h.ListEntries)
		entries.GET("/:id", middleware.RequireRole(readRoles...), h.GetEntryByID)
		entries.POST("", middleware.RequireRole(writeRoles...), h.CreateEntry)
		entries.PUT("/:id", middleware.RequireRole(writeRoles...), h.UpdateEntry)
		entries.DELETE("/:id", middleware.RequireRole(writeRoles...), h.DeleteEntry)
		entries.POST("/bulk_delete", middleware.RequireRole(writeRoles...), h.BulkDeleteEntries)
		entries.GET("/export", middleware.RequireRole(readRoles...), h.ExportEntries)
	}

	router.POST("/calculate-cost", middleware.RequireRole(readRoles...), h.CalculateCost)
	router.GET("/last-pipeline-reading", middleware.RequireRole(readRoles...), h.LastPipelineReading)
}

func entryListQuery(c *gin.Context) service.EntryListQuery {
	return service.EntryListQuery{
		VehicleID:           uintQuery(c, "vehicle_id"),
		LocationID:          uintQuery(c, "location_id"),
		LoadingLocationID:   uintQuery(c, "loading_location_id"),
		UnloadingLocationID: uintQuery(c, "unloading_location_id"),
		SourceID:            uintQuery(c, "source_id"),
		StartDate:           c.Query("start_date"),
		EndDate:             c.Query("end_date"),
		WaterType:           c.Query("water_type"),
		Ordering:            c.Query("ordering"),
	}
}

// ListEntries handles GET /entries
// @Summary      List water entries
// @Description  Paginated water entries with date, source, location, vehicle and water type filters
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Param        source_id   query     int     false  "Filter by source"
// @Param        water_type  query     string  false  "Drinking, Normal, Corporation or All"
// @Success      200         {object}  response.Response{data=[]model.WaterEntry}
// @Failure      400         {object}  response.Response
// @Router       /entries [get]
func (h *EntryHandler) ListEntries(c *gin.Context) {
	params := pagination.Parse(c)
	entries, total, err := h.entryService.List(c.Request.Context(), entryListQuery(c), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, entries, params.Page, params.Limit, total))
}

// GetEntryByID handles GET /entries/:id
// @Summary      Get water entry by ID
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  response.Response{data=model.WaterEntry}
// @Failure      404  {object}  response.Response
// @Router       /entries/{id} [get]
func (h *EntryHandler) GetEntryByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	entry, err := h.entryService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// CreateEntry handles POST /entries
// @Summary      Create water entry
// @Description  Records a procurement entry; quantity and cost are derived server-side from the effective rate
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.EntryRequest  true  "Entry Payload"
// @Success      201      {object}  response.Response{data=model.WaterEntry}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /entries [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req service.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// UpdateEntry handles PUT /entries/:id
// @Summary      Update water entry
// @Description  Re-derives quantity and cost from the effective rate at the entry date
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                   true  "Entry ID"
// @Param        payload  body      service.EntryRequest  true  "Entry Payload"
// @Success      200      {object}  response.Response{data=model.WaterEntry}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /entries/{id} [put]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// DeleteEntry handles DELETE /entries/:id
// @Summary      Delete water entry
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /entries/{id} [delete]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Entry deleted successfully"))
}

// BulkDeleteEntries handles POST /entries/bulk_delete
// @Summary      Bulk delete water entries
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkDeleteRequest  true  "IDs to delete"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /entries/bulk_delete [post]
func (h *EntryHandler) BulkDeleteEntries(c *gin.Context) {
	var req service.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if err := h.entryService.BulkDelete(c.Request.Context(), currentUserID(c), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Entries deleted successfully"))
}

// ExportEntries handles GET /entries/export
// @Summary      Export water entries as CSV
// @Description  Streams a CSV of every entry matching the same filters as the list endpoint
// @Tags         entries
// @Produce      text/csv
// @Security     BearerAuth
// @Param        start_date  query  string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "End date (YYYY-MM-DD)"
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /entries/export [get]
func (h *EntryHandler) ExportEntries(c *gin.Context) {
	entries, err := h.entryService.Export(c.Request.Context(), entryListQuery(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="water_entries.csv"`)

	w := c.Writer
	fmt.Fprintln(w, "id,entry_date,source,water_type,loading_location,unloading_location,vehicle,load_count,quantity_liters,total_cost,comments")
	for _, e := range entries {
		sourceName := ""
		if e.Source != nil {
			sourceName = e.Source.SourceName
		}
		loadingName := ""
		if e.LoadingLocation != nil {
			loadingName = e.LoadingLocation.LocationName
		}
		unloadingName := ""
		if e.UnloadingLocation != nil {
			unloadingName = e.UnloadingLocation.LocationName
		}
		vehicleName := ""
		if e.Vehicle != nil {
			vehicleName = e.Vehicle.VehicleName
		}
		loadCount := ""
		if e.LoadCount != nil {
			loadCount = strconv.Itoa(*e.LoadCount)
		}
		fmt.Fprintf(w, "%d,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			e.ID,
			e.EntryDate.Format("2006-01-02"),
			csvEscape(sourceName),
			e.WaterType,
			csvEscape(loadingName),
			csvEscape(unloadingName),
			csvEscape(vehicleName),
			loadCount,
			e.TotalQuantityLiters.StringFixed(0),
			e.TotalCost.StringFixed(2),
			csvEscape(e.Comments),
		)
	}
}

// CalculateCost handles POST /calculate-cost
// @Summary      Preview entry cost
// @Description  Dry-run cost calculation for the entry form; nothing is persisted
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CalculateCostRequest  true  "Cost Calculation Payload"
// @Success      200      {object}  response.Response{data=service.CalculateCostResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /calculate-cost [post]
func (h *EntryHandler) CalculateCost(c *gin.Context) {
	var req service.CalculateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.costService.Calculate(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// LastPipelineReading handles GET /last-pipeline-reading
// @Summary      Get last pipeline meter reading
// @Description  Returns the most recent meter reading for a pipeline source plus the rate effective at the date
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        source_id  query     int     true   "Pipeline source ID"
// @Param        date       query     string  false  "On-or-before date (YYYY-MM-DD)"
// @Success      200        {object}  response.Response{data=service.LastPipelineReadingResponse}
// @Failure      400        {object}  response.Response
// @Router       /last-pipeline-reading [get]
func (h *EntryHandler) LastPipelineReading(c *gin.Context) {
	sourceID := uintQuery(c, "source_id")
	if sourceID == nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "source_id is required"))
		return
	}

	result, err := h.entryService.LastPipelineReading(c.Request.Context(), *sourceID, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// csvEscape quotes a field when it contains a comma, quote or newline.
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
