package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements MetricsCollector using Prometheus
type Collector struct {
	operations         *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	videos             prometheus.Gauge
	requestDuration    *prometheus.HistogramVec
}

// NewCollector creates a collector registered on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "videohub_video_operations_total",
				Help: "Total number of catalog operations by outcome",
			},
			[]string{"operation", "status"},
		),
		validationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "videohub_validation_failures_total",
				Help: "Total number of rejected fields",
			},
			[]string{"field"},
		),
		videos: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "videohub_videos",
				Help: "Number of videos in the catalog",
			},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "videohub_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "route", "status"},
		),
	}
}

// RecordOperation counts a catalog operation, e.g. ("create", "ok")
func (c *Collector) RecordOperation(operation, status string) {
	c.operations.WithLabelValues(operation, status).Inc()
}

// RecordValidationFailure counts a rejected field
func (c *Collector) RecordValidationFailure(field string) {
	c.validationFailures.WithLabelValues(field).Inc()
}

// IncVideos increments the catalog size
func (c *Collector) IncVideos() {
	c.videos.Inc()
}

// DecVideos decrements the catalog size
func (c *Collector) DecVideos() {
	c.videos.Dec()
}

// SetVideos sets the catalog size
func (c *Collector) SetVideos(count int) {
	c.videos.Set(float64(count))
}

// ObserveRequestDuration records the duration of an HTTP request
func (c *Collector) ObserveRequestDuration(method, route string, status int, duration time.Duration) {
	c.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
