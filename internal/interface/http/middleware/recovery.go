package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Recovery panic恢复
// panic按内部错误处理：记录日志，响应统一的500信封
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.Error(c, apperrors.Wrap(fmt.Errorf("panic: %v", recovered), "请求处理发生panic"))
	})
}
