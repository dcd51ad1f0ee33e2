// Package router 组装gin引擎：中间件、路由与兜底处理
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookshelf/docs" // swag生成的API文档
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Greeting 根路径返回的问候语
const Greeting = "Hello, User!"

// New 创建Gin引擎并注册所有路由
// 路由表：
//
//	GET    /                 问候语
//	GET    /ping             健康检查
//	GET    /api/books        图书列表
//	GET    /api/books/:id    图书详情
//	POST   /api/books        创建图书
//	PUT    /api/books/:id    更新图书
//	DELETE /api/books/:id    删除图书
//
// 其余路径统一返回404 Resource not found
func New(cfg *config.Config, log *zap.Logger, bookHandler *handler.BookHandler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	// 不用gin.Default()：日志与panic恢复都走zap
	// Logger、Metrics在Recovery外层，panic恢复后的500也会被记录和计数
	r := gin.New()
	r.Use(middleware.Logger(log))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Greeting)
	})
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	if cfg.Swagger.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		books := api.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.POST("", bookHandler.CreateBook)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound)
	})

	return r
}
