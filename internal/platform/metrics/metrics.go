package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the records API.
type Metrics struct {
	LearnersCreated       prometheus.Counter
	SubjectsCreated       prometheus.Counter
	CredentialsRegistered prometheus.Counter
	AuthFailures          prometheus.Counter
	EnrollmentLinks       prometheus.Counter
	RequestDuration       *prometheus.HistogramVec
}

// New creates all collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in main and a fresh prometheus.NewRegistry()
// in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LearnersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "campus_learners_created_total",
			Help: "Total number of learners created",
		}),
		SubjectsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "campus_subjects_created_total",
			Help: "Total number of subjects created",
		}),
		CredentialsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "campus_credentials_registered_total",
			Help: "Total number of system users registered",
		}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "campus_auth_failures_total",
			Help: "Total number of rejected login attempts",
		}),
		EnrollmentLinks: factory.NewCounter(prometheus.CounterOpts{
			Name: "campus_enrollment_links_total",
			Help: "Total number of link-learner-subject calls that succeeded",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campus_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncrementLearnersCreated() {
	m.LearnersCreated.Inc()
}

func (m *Metrics) IncrementSubjectsCreated() {
	m.SubjectsCreated.Inc()
}

func (m *Metrics) IncrementCredentialsRegistered() {
	m.CredentialsRegistered.Inc()
}

func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailures.Inc()
}

func (m *Metrics) IncrementEnrollmentLinks() {
	m.EnrollmentLinks.Inc()
}

// ObserveRequest records the duration of an HTTP request.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}
