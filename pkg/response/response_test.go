package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	resp := Success(http.StatusOK, map[string]string{"key": "value"})

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Error)
	assert.Nil(t, resp.Pagination)
}

func TestError(t *testing.T) {
	resp := Error(http.StatusBadRequest, "something broke")

	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "something broke", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestSuccessWithPagination(t *testing.T) {
	resp := SuccessWithPagination(http.StatusOK, []int{1, 2, 3}, 2, 20, 45)

	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 20, resp.Pagination.Limit)
	assert.Equal(t, int64(45), resp.Pagination.Total)
	assert.Equal(t, int64(3), resp.Pagination.TotalPages)
}

func TestSuccessWithPaginationExactPages(t *testing.T) {
	resp := SuccessWithPagination(http.StatusOK, nil, 1, 10, 40)

	require.NotNil(t, resp.Pagination)
	assert.Equal(t, int64(4), resp.Pagination.TotalPages)
}
