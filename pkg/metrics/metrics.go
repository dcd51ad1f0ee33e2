// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter（计数器）：只增不减，如HTTP请求总数、存储操作总数
//   - Gauge（仪表盘）：可增可减，如正在处理的请求数
//   - Histogram（直方图）：观测值分布，如请求耗时（自动计算P50、P90、P99）
//
// # 命名规范
//
//   - Counter以`_total`结尾：`http_requests_total`
//   - Histogram以单位结尾：`book_store_operation_duration_seconds`
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	_, err := repo.Create(ctx, b)
//	result := metrics.ResultSuccess
//	if err != nil {
//	    result = metrics.ResultError
//	}
//	metrics.ObserveStoreOperation("create", result, time.Since(start))
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initOnce 防止重复注册到默认Registry
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 存储指标

	// StoreOperationsTotal 图书存储操作总数（Counter）
	// 标签：operation（list/get/create/update/delete）、result（success/not_found/error）
	StoreOperationsTotal *prometheus.CounterVec

	// StoreOperationDuration 图书存储操作耗时（Histogram）
	StoreOperationDuration *prometheus.HistogramVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. 使用*Vec支持标签（多维度统计）
// 3. 可以多次调用，只有第一次生效
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		StoreOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_store_operations_total",
				Help: "图书存储操作总数",
			},
			[]string{"operation", "result"},
		)

		StoreOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "book_store_operation_duration_seconds",
				Help: "图书存储操作耗时（秒）",
				// 内存存储是微秒级，数据库/Redis是毫秒级
				Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		)
	})
}

// 存储操作结果标签
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// ObserveStoreOperation 记录一次存储操作的结果与耗时
func ObserveStoreOperation(operation, result string, elapsed time.Duration) {
	StoreOperationsTotal.With(prometheus.Labels{"operation": operation, "result": result}).Inc()
	StoreOperationDuration.With(prometheus.Labels{"operation": operation}).Observe(elapsed.Seconds())
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
