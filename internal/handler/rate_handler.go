package handler

import (
	"net/http"

	"watertracker/internal/middleware"
	"watertracker/internal/service"
	"watertracker/pkg/pagination"
	"watertracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type RateHandler struct {
	rateService service.RateService
}

func NewRateHandler(rateService service.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// RegisterRoutes binds the rate-history endpoints. Mutations are Admin-only;
// everyone authenticated can read.
func (h *RateHandler) RegisterRoutes(router *gin.RouterGroup) {
	internal := router.Group("/rates/internal")
	{
		internal.GET("", middleware.RequireRole(readRoles...), h.ListInternalRates)
		internal.POST("", middleware.RequireRole(adminOnly...), h.CreateInternalRate)
		internal.PUT("/:id", middleware.RequireRole(adminOnly...), h.UpdateInternalRate)
		internal.DELETE("/:id", middleware.RequireRole(adminOnly...), h.DeleteInternalRate)
	}

	vendor := router.Group("/rates/vendor")
	{
		vendor.GET("", middleware.RequireRole(readRoles...), h.ListVendorRates)
		vendor.POST("", middleware.RequireRole(adminOnly...), h.CreateVendorRate)
		vendor.PUT("/:id", middleware.RequireRole(adminOnly...), h.UpdateVendorRate)
		vendor.DELETE("/:id", middleware.RequireRole(adminOnly...), h.DeleteVendorRate)
	}

	pipeline := router.Group("/rates/pipeline")
	{
		pipeline.GET("", middleware.RequireRole(readRoles...), h.ListPipelineRates)
		pipeline.POST("", middleware.RequireRole(adminOnly...), h.CreatePipelineRate)
		pipeline.PUT("/:id", middleware.RequireRole(adminOnly...), h.UpdatePipelineRate)
		pipeline.DELETE("/:id", middleware.RequireRole(adminOnly...), h.DeletePipelineRate)
	}

	general := router.Group("/general-water-rates")
	{
		general.GET("", middleware.RequireRole(readRoles...), h.ListGeneralRates)
		general.POST("", middleware.RequireRole(adminOnly...), h.CreateGeneralRate)
		general.DELETE("/:id", middleware.RequireRole(adminOnly...), h.DeleteGeneralRate)
	}
}

// --- Internal vehicle rates ---

// ListInternalRates handles GET /rates/internal
// @Summary      List internal vehicle rates
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=[]model.RateHistoryInternalVehicle}
// @Router       /rates/internal [get]
func (h *RateHandler) ListInternalRates(c *gin.Context) {
	params := pagination.Parse(c)
	rates, total, err := h.rateService.ListInternalRates(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch internal rates"))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, rates, params.Page, params.Limit, total))
}

// CreateInternalRate handles POST /rates/internal
// @Summary      Create internal vehicle rate
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.InternalRateRequest  true  "Internal Rate Payload"
// @Success      201      {object}  response.Response{data=model.RateHistoryInternalVehicle}
// @Failure      400      {object}  response.Response
// @Router       /rates/internal [post]
func (h *RateHandler) CreateInternalRate(c *gin.Context) {
	var req service.InternalRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	rate, err := h.rateService.CreateInternalRate(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rate))
}

// UpdateInternalRate handles PUT /rates/internal/:id
// @Summary      Update internal vehicle rate
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                          true  "Rate ID"
// @Param        payload  body      service.InternalRateRequest  true  "Internal Rate Payload"
// @Success      200      {object}  response.Response{data=model.RateHistoryInternalVehicle}
// @Failure      400      {object}  response.Response
// @Router       /rates/internal/{id} [put]
func (h *RateHandler) UpdateInternalRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.InternalRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	rate, err := h.rateService.UpdateInternalRate(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rate))
}

// DeleteInternalRate handles DELETE /rates/internal/:id
// @Summary      Delete internal vehicle rate
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Rate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /rates/internal/{id} [delete]
func (h *RateHandler) DeleteInternalRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.rateService.DeleteInternalRate(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Rate deleted successfully"))
}

// --- Vendor rates ---

// ListVendorRates handles GET /rates/vendor
// @Summary      List vendor rates
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=[]model.RateHistoryVendor}
// @Router       /rates/vendor [get]
func (h *RateHandler) ListVendorRates(c *gin.Context) {
	params := pagination.Parse(c)
	rates, total, err := h.rateService.ListVendorRates(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch vendor rates"))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, rates, params.Page, params.Limit, total))
}

// CreateVendorRate handles POST /rates/vendor
// @Summary      Create vendor rate
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.VendorRateRequest  true  "Vendor Rate Payload"
// @Success      201      {object}  response.Response{data=model.RateHistoryVendor}
// @Failure      400      {object}  response.Response
// @Router       /rates/vendor [post]
func (h *RateHandler) CreateVendorRate(c *gin.Context) {
	var req service.VendorRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	rate, err := h.rateService.CreateVendorRate(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rate))
}

// UpdateVendorRate handles PUT /rates/vendor/:id
// @Summary      Update vendor rate
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                        true  "Rate ID"
// @Param        payload  body      service.VendorRateRequest  true  "Vendor Rate Payload"
// @Success      200      {object}  response.Response{data=model.RateHistoryVendor}
// @Failure      400      {object}  response.Response
// @Router       /rates/vendor/{id} [put]
func (h *RateHandler) UpdateVendorRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.VendorRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	rate, err := h.rateService.UpdateVendorRate(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rate))
}

// DeleteVendorRate handles DELETE /rates/vendor/:id
// @Summary      Delete vendor rate
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Rate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /rates/vendor/{id} [delete]
func (h *RateHandler) DeleteVendorRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.rateService.DeleteVendorRate(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Rate deleted successfully"))
}

// --- Pipeline rates ---

// ListPipelineRates handles GET /rates/pipeline
// @Summary      List pipeline rates
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=[]model.RateHistoryPipeline}
// @Router       /rates/pipeline [get]
func (h *RateHandler) ListPipelineRates(c *gin.Context) {
	params := pagination.Parse(c)
	rates, total, err := h.rateService.ListPipelineRates(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch pipeline rates"))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, rates, params.Page, params.Limit, total))
}

// CreatePipelineRate handles POST /rates/pipeline
// @Summary      Create pipeline rate
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.PipelineRateRequest  true  "Pipeline Rate Payload"
// @Success      201      {object}  response.Response{data=model.RateHistoryPipeline}
// @Failure      400      {object}  response.Response
// @Router       /rates/pipeline [post]
func (h *RateHandler) CreatePipelineRate(c *gin.Context) {
	var req service.PipelineRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	rate, err := h.rateService.CreatePipelineRate(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rate))
}

// UpdatePipelineRate handles PUT /rates/pipeline/:id
// @Summary      Update pipeline rate
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                          true  "Rate ID"
// @Param        payload  body      service.PipelineRateRequest  true  "Pipeline Rate Payload"
// @Success      200      {object}  response.Response{data=model.RateHistoryPipeline}
// @Failure      400      {object}  response.Response
// @Router       /rates/pipeline/{id} [put]
func (h *RateHandler) UpdatePipelineRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.PipelineRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	rate, err := h.rateService.UpdatePipelineRate(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rate))
}

// DeletePipelineRate handles DELETE /rates/pipeline/:id
// @Summary      Delete pipeline rate
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Rate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /rates/pipeline/{id} [delete]
func (h *RateHandler) DeletePipelineRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.rateService.DeletePipelineRate(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Rate deleted successfully"))
}

// --- General water rates ---

// ListGeneralRates handles GET /general-water-rates
// @Summary      List general water rates
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.GeneralWaterRate}
// @Router       /general-water-rates [get]
func (h *RateHandler) ListGeneralRates(c *gin.Context) {
	rates, err := h.rateService.ListGeneralRates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch general water rates"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rates))
}

// CreateGeneralRate handles POST /general-water-rates
// @Summary      Create general water rate
// @Tags         rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.GeneralRateRequest  true  "General Rate Payload"
// @Success      201      {object}  response.Response{data=model.GeneralWaterRate}
// @Failure      400      {object}  response.Response
// @Router       /general-water-rates [post]
func (h *RateHandler) CreateGeneralRate(c *gin.Context) {
	var req service.GeneralRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	rate, err := h.rateService.CreateGeneralRate(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rate))
}

// DeleteGeneralRate handles DELETE /general-water-rates/:id
// @Summary      Delete general water rate
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Rate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /general-water-rates/{id} [delete]
func (h *RateHandler) DeleteGeneralRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.rateService.DeleteGeneralRate(c.Request.Context(), currentUserID(c), id); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Rate deleted successfully"))
}
