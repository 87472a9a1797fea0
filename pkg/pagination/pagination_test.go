package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestParseDefaults(t *testing.T) {
	params := Parse(contextWithQuery(t, ""))

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
}

func TestParseExplicitValues(t *testing.T) {
	params := Parse(contextWithQuery(t, "page=3&limit=25"))

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.Limit)
	assert.Equal(t, 50, params.Offset)
}

func TestParseClampsInvalidValues(t *testing.T) {
	params := Parse(contextWithQuery(t, "page=-1&limit=0"))
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)

	params = Parse(contextWithQuery(t, "page=1&limit=9999"))
	assert.Equal(t, MaxLimit, params.Limit)
}

func TestParseIgnoresGarbage(t *testing.T) {
	params := Parse(contextWithQuery(t, "page=abc&limit=xyz"))

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
}
