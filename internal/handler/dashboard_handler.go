package handler

import (
	"net/http"
	"strconv"

	"watertracker/internal/middleware"
	"watertracker/internal/service"
	"watertracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard-stats", middleware.RequireRole(readRoles...), h.Stats)
	router.GET("/dashboard/multi-month-stats", middleware.RequireRole(readRoles...), h.MultiMonthStats)
}

// Stats handles GET /dashboard-stats
// @Summary      Dashboard statistics
// @Description  Month totals, water-type breakdown, per-location breakdown, the daily pivot matrix and recent activity
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  false  "Month (YYYY-MM, defaults to current)"
// @Success      200    {object}  response.Response{data=service.DashboardStats}
// @Failure      400    {object}  response.Response
// @Router       /dashboard-stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// MultiMonthStats handles GET /dashboard/multi-month-stats
// @Summary      Multi-month statistics
// @Description  Monthly pivot matrix of normal-water purchases over the trailing N months
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        months  query     int  false  "Number of trailing months (default 3)"
// @Success      200     {object}  response.Response{data=service.MatrixResponse}
// @Failure      400     {object}  response.Response
// @Router       /dashboard/multi-month-stats [get]
func (h *DashboardHandler) MultiMonthStats(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "3"))

	matrix, err := h.dashboardService.MultiMonthStats(c.Request.Context(), months)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, matrix))
}
