//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链：
// *App ← *http.Server ← *gin.Engine ← *handler.BookHandler ← *appbook.Service ← book.Repository ← *config.Config

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
)

// infrastructureSet 基础设施层：日志、图书存储（按storage.driver选择并写入示例数据）
var infrastructureSet = wire.NewSet(
	provideLogger,
	persistence.NewBookRepository,
)

// applicationSet 应用层
var applicationSet = wire.NewSet(
	appbook.NewService,
)

// interfaceSet 接口层：处理器、路由、HTTP服务
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	router.New,
	provideHTTPServer,
)

// InitializeApp 初始化整个应用
// cleanup按创建的逆序关闭资源：先存储连接，后日志
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		applicationSet,
		interfaceSet,
		newApp,
	)
	return nil, nil, nil
}
