package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/shared/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorResponseWithError_AppError(t *testing.T) {
	c, w := newContext()

	ErrorResponseWithError(c, fmt.Errorf("create: %w", errors.NewQuotaExceededError("quota reached", "limit 3, current 3")))

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "quota_exceeded", resp.Error.Type)
	assert.Equal(t, "limit 3, current 3", resp.Error.Details)
}

func TestErrorResponseWithError_HidesInternalDetails(t *testing.T) {
	c, w := newContext()

	ErrorResponseWithError(c, fmt.Errorf("dial tcp 10.0.0.3:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Internal server error occurred", resp.Error.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestListSuccessResponse(t *testing.T) {
	c, w := newContext()

	ListSuccessResponse(c, []int{1, 2}, 45, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data ListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(45), body.Data.Total)
	assert.Equal(t, 3, body.Data.TotalPages)
}
