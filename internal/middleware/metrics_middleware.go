package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal - общее количество запросов
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Общее количество HTTP запросов",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration - длительность запросов
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Длительность HTTP запросов в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// RequestsInFlight - количество запросов в обработке
	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Текущее количество запросов в обработке",
		},
	)

	// SubmissionsTotal - количество принятых заявок по типу
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridemedia_submissions_total",
			Help: "Количество принятых заявок",
		},
		[]string{"kind"},
	)

	// StatusUpdatesTotal - смены статуса заявок администратором
	StatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridemedia_status_updates_total",
			Help: "Количество смен статуса заявок",
		},
		[]string{"kind", "status"},
	)

	// UploadBytes - размер загруженных файлов
	UploadBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ridemedia_upload_bytes",
			Help:    "Размер загруженных файлов в байтах",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"source"},
	)

	// LoginAttemptsTotal - попытки входа в админку
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridemedia_admin_login_attempts_total",
			Help: "Количество попыток входа администратора",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware собирает метрики для HTTP запросов. Запросы к /metrics не считаются.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		RequestsInFlight.Inc()
		defer RequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		RequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// TrackSubmission отмечает принятую заявку
func TrackSubmission(kind string) {
	SubmissionsTotal.WithLabelValues(kind).Inc()
}

// TrackStatusUpdate отмечает смену статуса заявки
func TrackStatusUpdate(kind, status string) {
	StatusUpdatesTotal.WithLabelValues(kind, status).Inc()
}

// TrackUpload отмечает загрузку файла
func TrackUpload(source string, size int64) {
	UploadBytes.WithLabelValues(source).Observe(float64(size))
}

// TrackLogin отмечает попытку входа
func TrackLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}
