package handler

import (
	"net/http"

	"watertracker/internal/middleware"
	"watertracker/internal/service"
	"watertracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/monthly-summary", middleware.RequireRole(readRoles...), h.MonthlySummary)
		reports.GET("/daily-yield", middleware.RequireRole(readRoles...), h.DailyYield)
		reports.GET("/daily-normal-consumption", middleware.RequireRole(readRoles...), h.DailyNormalConsumption)
		reports.GET("/site-detail/:id", middleware.RequireRole(readRoles...), h.SiteDetail)
		reports.GET("/vendor-detail/:id", middleware.RequireRole(readRoles...), h.VendorDetail)
	}
}

// MonthlySummary handles GET /reports/monthly-summary
// @Summary      Monthly summary report
// @Description  Purchases by water type, yield and consumption totals for a month
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  false  "Month (YYYY-MM, defaults to current)"
// @Success      200    {object}  response.Response{data=service.MonthlySummary}
// @Failure      400    {object}  response.Response
// @Router       /reports/monthly-summary [get]
func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	summary, err := h.reportService.MonthlySummary(c.Request.Context(), c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// DailyYield handles GET /reports/daily-yield
// @Summary      Daily yield report
// @Description  Locations by day pivot matrix of yield volumes for a month
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  false  "Month (YYYY-MM, defaults to current)"
// @Success      200    {object}  response.Response{data=service.MatrixResponse}
// @Failure      400    {object}  response.Response
// @Router       /reports/daily-yield [get]
func (h *ReportHandler) DailyYield(c *gin.Context) {
	matrix, err := h.reportService.DailyYield(c.Request.Context(), c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, matrix))
}

// DailyNormalConsumption handles GET /reports/daily-normal-consumption
// @Summary      Daily normal consumption report
// @Description  Locations by day pivot matrix of normal-water consumption for a month
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  false  "Month (YYYY-MM, defaults to current)"
// @Success      200    {object}  response.Response{data=service.MatrixResponse}
// @Failure      400    {object}  response.Response
// @Router       /reports/daily-normal-consumption [get]
func (h *ReportHandler) DailyNormalConsumption(c *gin.Context) {
	matrix, err := h.reportService.DailyNormalConsumption(c.Request.Context(), c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, matrix))
}

// SiteDetail handles GET /reports/site-detail/:id
// @Summary      Site detail report
// @Description  Entries loading from or unloading at a location within an optional date range
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      int     true   "Location ID"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=service.DetailReport}
// @Failure      400         {object}  response.Response
// @Router       /reports/site-detail/{id} [get]
func (h *ReportHandler) SiteDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	report, err := h.reportService.SiteDetail(c.Request.Context(), id, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// VendorDetail handles GET /reports/vendor-detail/:id
// @Summary      Vendor detail report
// @Description  Entries purchased from a vendor within an optional date range
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      int     true   "Vendor source ID"
// @Param        start_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=service.DetailReport}
// @Failure      400         {object}  response.Response
// @Router       /reports/vendor-detail/{id} [get]
func (h *ReportHandler) VendorDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	report, err := h.reportService.VendorDetail(c.Request.Context(), id, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
