package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// App 可运行的应用：HTTP服务 + 日志
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	server *http.Server
}

func newApp(cfg *config.Config, log *zap.Logger, server *http.Server) *App {
	return &App{cfg: cfg, log: log, server: server}
}

// Run 启动HTTP服务，ctx取消后优雅关闭
// 关闭流程：
// 1. 停止接受新连接
// 2. 等待进行中的请求完成，最长server.shutdown_timeout
// 3. 返回后由cleanup关闭存储连接
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("HTTP服务启动",
			zap.String("addr", a.server.Addr),
			zap.String("mode", a.cfg.Server.Mode),
			zap.String("storage", a.cfg.Storage.Driver),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP服务异常退出: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("收到退出信号，开始关闭HTTP服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭HTTP服务失败: %w", err)
	}
	a.log.Info("HTTP服务已关闭")
	return nil
}

// provideLogger 从配置创建zap logger并设为全局logger
// cleanup负责Sync缓冲的日志
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return nil, nil, err
	}

	restore := zap.ReplaceGlobals(log)
	cleanup := func() {
		_ = log.Sync()
		restore()
	}
	return log, cleanup, nil
}

// provideHTTPServer 用配置的超时包装gin引擎
func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
