// Package logger 基于zap的结构化日志
package logger

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextKey gin.Context中保存请求级logger的键
const ContextKey = "logger"

// Options 日志配置
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// New 根据配置创建zap logger
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
		}
	}

	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	output := opts.Output
	if output == "" {
		output = "stdout"
	}

	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = !opts.EnableCaller
	cfg.DisableStacktrace = level > zapcore.DebugLevel

	return cfg.Build()
}

// WithContext 把请求级logger放入gin.Context
func WithContext(c *gin.Context, l *zap.Logger) {
	c.Set(ContextKey, l)
}

// FromContext 取出请求级logger，不存在时返回全局logger
func FromContext(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ContextKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}
