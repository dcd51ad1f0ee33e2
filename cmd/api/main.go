// Bookshelf 图书管理服务
//
//	@title			Bookshelf API
//	@version		1.0
//	@description	图书管理服务：图书的增删改查
//	@host			localhost:8080
//	@BasePath		/api
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

// main 主程序入口
// 用法：
//
//	bookshelf                          # 等同于 bookshelf serve
//	bookshelf serve --config ./config/config.yaml
//	BOOKSHELF_STORAGE_DRIVER=redis bookshelf serve
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions 全局命令行参数
type rootOptions struct {
	ConfigPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Bookshelf 图书管理服务",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "配置文件路径（默认查找./config/config.yaml）")

	cmd.AddCommand(newServeCommand(opts))
	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动HTTP服务",
		Long: `启动图书管理HTTP服务。

存储后端由storage.driver选择（memory | mysql | sqlite | redis），
收到SIGINT/SIGTERM后在server.shutdown_timeout内优雅退出。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

// serve 加载配置、组装依赖、运行直到收到退出信号
func serve(ctx context.Context, opts *rootOptions) error {
	// 1. 加载配置
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 依赖注入（wire_gen.go）
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	// 3. 运行直到Ctrl+C或SIGTERM
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
