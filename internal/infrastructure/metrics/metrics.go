// Package metrics provides Prometheus metrics for the leadhub service.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leadhub"

// Notification kinds and results.
const (
	NotificationAdmin          = "admin"
	NotificationAcknowledgment = "acknowledgment"
	NotificationPasswordReset  = "password_reset"

	ResultSent     = "sent"
	ResultFailed   = "failed"
	ResultTimeout  = "timeout"
	ResultSkipped  = "skipped"
	ResultRecorded = "recorded"
)

var (
	// HTTPRequestsTotal tracks handled HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// SubmissionsTotal tracks contact-form submissions by outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Total number of contact submissions by result",
		},
		[]string{"result"},
	)

	// IdentityResolutionsTotal tracks how submissions were matched to contacts
	IdentityResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_resolutions_total",
			Help:      "Total number of identity resolutions by match type",
		},
		[]string{"match_type"},
	)

	// NotificationsTotal tracks outbound emails
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Total number of notification emails by kind and result",
		},
		[]string{"kind", "result"},
	)

	// RateLimitRejections tracks requests refused by the rate limiter
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "rejections_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
		[]string{"limit_name"},
	)
)

// RecordHTTPRequest records one handled request
func RecordHTTPRequest(method, route string, status int, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// RecordSubmission records the outcome of storing a submission
func RecordSubmission(result string) {
	SubmissionsTotal.WithLabelValues(result).Inc()
}

// RecordIdentityResolution records a resolver outcome; matchType is "error"
// when resolution failed.
func RecordIdentityResolution(matchType string) {
	IdentityResolutionsTotal.WithLabelValues(matchType).Inc()
}

// RecordNotification records one email attempt
func RecordNotification(kind, result string) {
	NotificationsTotal.WithLabelValues(kind, result).Inc()
}

// RecordRateLimitRejection records a rejected request
func RecordRateLimitRejection(limitName string) {
	RateLimitRejections.WithLabelValues(limitName).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
