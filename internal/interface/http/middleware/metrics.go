package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// unmatchedPath 未匹配任何路由的请求统一归入该标签，避免路径基数爆炸
const unmatchedPath = "unmatched"

// Metrics HTTP指标中间件
// path标签使用路由模板（/api/books/:id）而不是实际路径
func Metrics() gin.HandlerFunc {
	metrics.InitMetrics()

	return func(c *gin.Context) {
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, prometheus.Labels{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, prometheus.Labels{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
