package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// Response 统一响应结构
// 设计说明：
// 1. Success表示请求是否成功，HTTP状态码同时反映错误类型（400/404/500）
// 2. Data是业务数据，失败时省略
// 3. Total只在列表接口返回
// 4. Error是用户友好的错误信息，内部错误细节只写日志
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Total   *int        `json:"total,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithTotal 列表响应，附带总数
func SuccessWithTotal(c *gin.Context, list interface{}, total int) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    list,
		Total:   &total,
	})
}

// SuccessWithMessage 只返回提示信息（如删除成功）
func SuccessWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := bookService.Get(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
//
// 只有内部错误会记录日志，参数错误、资源不存在属于正常的客户端输入
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	if appErr.IsInternal() {
		logger.FromContext(c).Error("request failed",
			zap.Int("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
		// 不向客户端暴露内部错误细节
		abort(c, http.StatusInternalServerError, apperrors.ErrInternal.Message)
		return
	}

	abort(c, appErr.HTTPStatus(), appErr.Message)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error:   message,
	})
}
