package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitra-hq/visitra/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func parseError(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorResponseWithError_AppError(t *testing.T) {
	c, w := testContext()

	ErrorResponseWithError(c, errors.NewNotFoundError("ticket not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := parseError(t, w)
	assert.False(t, resp.Success)
}

func TestErrorResponseWithError_BindingValidation(t *testing.T) {
	type payload struct {
		Subject string `json:"subject" binding:"required,max=200" validate:"required,max=200"`
	}

	// The same error shape gin's binding produces for a failed tag.
	err := validator.New().Struct(payload{Subject: strings.Repeat("x", 201)})
	require.Error(t, err)

	c, w := testContext()
	ErrorResponseWithError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseError(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
	assert.Contains(t, resp.Error.Details, "at most 200 characters")
}

func TestErrorResponseWithError_MalformedBody(t *testing.T) {
	var target struct{ Subject string }
	err := json.Unmarshal([]byte("{not json"), &target)
	require.Error(t, err)

	c, w := testContext()
	ErrorResponseWithError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseError(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
}

func TestErrorResponseWithError_UnknownError(t *testing.T) {
	c, w := testContext()

	ErrorResponseWithError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := parseError(t, w)
	require.NotNil(t, resp.Error)
	// Internal details never leak into the response.
	assert.Equal(t, "Internal server error occurred", resp.Error.Message)
}
