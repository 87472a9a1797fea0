package handler

import (
	"errors"
	"net/http"
	"strconv"

	"watertracker/internal/engine"
	"watertracker/pkg/response"

	"github.com/gin-gonic/gin"
)

// readRoles covers every authenticated role; writeRoles excludes viewers.
var (
	readRoles  = []string{"Admin", "Data_Entry", "Viewer"}
	writeRoles = []string{"Admin", "Data_Entry"}
	adminOnly  = []string{"Admin"}
)

// currentUserID pulls the authenticated user's id out of the gin context set
// by the auth middleware. Empty when unauthenticated routes reach here.
func currentUserID(c *gin.Context) string {
	if v, exists := c.Get("userID"); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

func uintQuery(c *gin.Context, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	v := uint(parsed)
	return &v
}

// respondDomainError maps engine errors to their HTTP statuses: an
// unconfigured rate is 422 (the request was well-formed, the data is not
// ready for it), a decreasing reading is a plain 400.
func respondDomainError(c *gin.Context, err error) {
	var rateErr *engine.RateNotConfiguredError
	if errors.As(err, &rateErr) {
		c.JSON(http.StatusUnprocessableEntity, response.Error(http.StatusUnprocessableEntity, rateErr.Error()))
		return
	}
	var readingErr *engine.InvalidReadingError
	if errors.As(err, &readingErr) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, readingErr.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
}
