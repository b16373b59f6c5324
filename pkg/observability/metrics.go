package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Mail metrics
	EmailsSentTotal   *prometheus.CounterVec
	EmailSendFailures *prometheus.CounterVec

	// Upload metrics
	UploadsTotal      prometheus.Counter
	UploadBytesTotal  prometheus.Counter
	UploadErrorsTotal prometheus.Counter

	// Reminder sweep metrics
	ReminderSweepsTotal   prometheus.Counter
	ReminderEmailsTotal   prometheus.Counter
	ReminderFailuresTotal prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cinevault_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cinevault_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		EmailsSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cinevault_emails_sent_total",
				Help: "Total number of emails sent, by kind",
			},
			[]string{"kind"},
		),
		EmailSendFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cinevault_email_send_failures_total",
				Help: "Total number of failed email sends, by kind",
			},
			[]string{"kind"},
		),
		UploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinevault_uploads_total",
			Help: "Total number of successful image uploads",
		}),
		UploadBytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinevault_upload_bytes_total",
			Help: "Total bytes uploaded to object storage",
		}),
		UploadErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinevault_upload_errors_total",
			Help: "Total number of failed image uploads",
		}),
		ReminderSweepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinevault_reminder_sweeps_total",
			Help: "Total number of release-reminder sweeps executed",
		}),
		ReminderEmailsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinevault_reminder_emails_total",
			Help: "Total number of release-reminder emails sent",
		}),
		ReminderFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinevault_reminder_failures_total",
			Help: "Total number of failed release-reminder emails",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.EmailsSentTotal,
		m.EmailSendFailures,
		m.UploadsTotal,
		m.UploadBytesTotal,
		m.UploadErrorsTotal,
		m.ReminderSweepsTotal,
		m.ReminderEmailsTotal,
		m.ReminderFailuresTotal,
	)

	return m
}

// Handler returns the /metrics endpoint handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// HTTPMiddleware records request count and duration per route
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
