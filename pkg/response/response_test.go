package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

func newContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	core, logs := observer.New(zap.InfoLevel)
	logger.WithContext(c, zap.New(core))
	return c, w, logs
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessWithTotal(t *testing.T) {
	c, w, _ := newContext(t)

	SuccessWithTotal(c, []string{}, 0)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"total":0}`, w.Body.String())
}

func TestCreated(t *testing.T) {
	c, w, _ := newContext(t)

	Created(c, map[string]int{"id": 2})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":2}}`, w.Body.String())
}

func TestError_ClientErrorNotLogged(t *testing.T) {
	c, w, logs := newContext(t)

	Error(c, apperrors.MissingField("author"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "missing required field: author", body["error"])
	assert.Zero(t, logs.Len())
}

func TestError_InternalLoggedAndHidden(t *testing.T) {
	c, w, logs := newContext(t)

	Error(c, apperrors.Wrap(errors.New("dial tcp: connection refused"), "查询图书失败"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decode(t, w)["error"])
	assert.NotContains(t, w.Body.String(), "connection refused")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "查询图书失败", entry.ContextMap()["message"])
}
