package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "scashdap"

// Metrics 指标收集中间件
// 收集API性能指标，用于监控和告警
type Metrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.SummaryVec

	// 编解码业务指标
	chunksEncoded *prometheus.CounterVec
	chunksDecoded *prometheus.CounterVec
	decodeFailure prometheus.Counter
}

// NewMetrics 创建指标中间件并注册到给定注册表
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route"},
		),
		responseSize: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace:  metricsNamespace,
				Subsystem:  "api",
				Name:       "response_size_bytes",
				Help:       "API response size in bytes",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"method", "route"},
		),
		chunksEncoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "codec",
				Name:      "chunks_encoded_total",
				Help:      "Data chunks produced by encode requests",
			},
			[]string{"protocol"},
		),
		chunksDecoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "codec",
				Name:      "chunks_decoded_total",
				Help:      "Data chunks matched by decode requests",
			},
			[]string{"protocol"},
		),
		decodeFailure: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "codec",
				Name:      "decode_failures_total",
				Help:      "Decode requests that matched chunks but produced no text",
			},
		),
	}

	for _, c := range []prometheus.Collector{
		m.requestCounter, m.requestDuration, m.responseSize,
		m.chunksEncoded, m.chunksDecoded, m.decodeFailure,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware 返回Gin中间件
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		route := routeLabel(c)
		status := c.Writer.Status()

		m.requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			m.responseSize.WithLabelValues(method, route).Observe(float64(size))
		}
	}
}

// routeLabel 使用路由模板，避免 txid 等路径参数造成标签爆炸
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// ObserveEncode 记录编码产生的数据块
func (m *Metrics) ObserveEncode(protocol string, chunks int) {
	if m == nil || chunks == 0 {
		return
	}
	m.chunksEncoded.WithLabelValues(protocol).Add(float64(chunks))
}

// ObserveDecode 记录解码匹配的数据块
func (m *Metrics) ObserveDecode(perProtocol map[string]int, failed bool) {
	if m == nil {
		return
	}
	for p, n := range perProtocol {
		m.chunksDecoded.WithLabelValues(p).Add(float64(n))
	}
	if failed {
		m.decodeFailure.Inc()
	}
}
