package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{name: "图书不存在", err: ErrBookNotFound, want: http.StatusNotFound},
		{name: "路由不存在", err: ErrNotFound, want: http.StatusNotFound},
		{name: "缺少字段", err: MissingField("author"), want: http.StatusBadRequest},
		{name: "非法字段", err: InvalidField("isbn"), want: http.StatusBadRequest},
		{name: "字段值错误", err: InvalidValue("year"), want: http.StatusBadRequest},
		{name: "Content-Type错误", err: ErrWrongContentType, want: http.StatusBadRequest},
		{name: "JSON格式错误", err: ErrBindError, want: http.StatusBadRequest},
		{name: "内部错误", err: ErrInternal, want: http.StatusInternalServerError},
		{name: "数据库错误", err: WrapWithCode(ErrCodeDatabaseError, nil, "查询图书失败"), want: http.StatusInternalServerError},
		{name: "Redis错误", err: WrapWithCode(ErrCodeRedisError, nil, "查询图书失败"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestFieldErrorMessages(t *testing.T) {
	assert.Equal(t, "missing required field: author", MissingField("author").Message)
	assert.Equal(t, "invalid field: isbn", InvalidField("isbn").Message)
	assert.Equal(t, "invalid value for field: year", InvalidValue("year").Message)
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		wrapped := fmt.Errorf("查询失败: %w", ErrBookNotFound)
		assert.Same(t, ErrBookNotFound, GetAppError(wrapped))
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		appErr := GetAppError(cause)

		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.True(t, appErr.IsInternal())
		assert.ErrorIs(t, appErr, cause)
	})
}

func TestWrapWithCode(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := WrapWithCode(ErrCodeRedisError, cause, "创建图书失败")

	assert.Equal(t, "[50002] 创建图书失败: dial tcp: connection refused", err.Error())
	assert.True(t, err.IsInternal())
	assert.ErrorIs(t, err, cause)
	assert.Same(t, err, GetAppError(fmt.Errorf("handler: %w", err)))
}
