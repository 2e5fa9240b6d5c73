package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rolodex_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rolodex_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ImagesNormalized counts processed image uploads by kind (avatar, photo).
	ImagesNormalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rolodex_images_normalized_total",
		Help: "Total number of uploaded images normalized, by kind",
	}, []string{"kind"})

	// ImageDecodeFailures counts uploads rejected because the bytes could not be decoded.
	ImageDecodeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rolodex_image_decode_failures_total",
		Help: "Total number of uploads rejected as undecodable, by kind",
	}, []string{"kind"})

	// ContactOperations counts contact writes by operation (create, update, delete).
	ContactOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rolodex_contact_operations_total",
		Help: "Total number of contact write operations",
	}, []string{"operation"})

	// UsersRegistered counts successful account registrations.
	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rolodex_users_registered_total",
		Help: "Total number of accounts registered",
	})

	// ValidationFailures counts rejected submissions by entity (account, contact).
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rolodex_validation_failures_total",
		Help: "Total number of submissions rejected by field validation",
	}, []string{"entity"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
