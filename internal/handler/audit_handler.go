package handler

import (
	"net/http"

	"watertracker/internal/middleware"
	"watertracker/internal/repository"
	"watertracker/internal/service"
	"watertracker/pkg/pagination"
	"watertracker/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", middleware.RequireRole(adminOnly...), h.ListAuditLogs)
}

// ListAuditLogs handles GET /audit-logs
// @Summary      List audit logs
// @Description  Paginated audit trail, newest first, filterable by user and action
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Items per page (default 20)"
// @Param        user_id  query     string  false  "Filter by user"
// @Param        action   query     string  false  "Filter by action"
// @Success      200      {object}  response.Response{data=[]service.AuditLogResponse}
// @Failure      500      {object}  response.Response
// @Router       /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)
	filter := repository.AuditFilter{
		UserID: c.Query("user_id"),
		Action: c.Query("action"),
	}

	logs, total, err := h.auditService.List(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch audit logs"))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, logs, params.Page, params.Limit, total))
}
