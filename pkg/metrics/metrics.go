// Package metrics exposes registration counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection reasons recorded by RegistrationRejected.
const (
	ReasonDuplicateSlug     = "duplicate_slug"
	ReasonAlreadyRegistered = "already_registered"
	ReasonCapacityReached   = "capacity_reached"
	ReasonAlreadyCheckedIn  = "already_checked_in"
)

// Metrics holds the service collectors on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry            *prometheus.Registry
	eventsCreated       prometheus.Counter
	attendeesRegistered prometheus.Counter
	checkIns            prometheus.Counter
	rejected            *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		eventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "passin_events_created_total",
			Help: "Events created.",
		}),
		attendeesRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "passin_attendees_registered_total",
			Help: "Attendees registered for an event.",
		}),
		checkIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "passin_check_ins_total",
			Help: "Attendee check-ins.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passin_rejections_total",
			Help: "Requests rejected by a business rule, by reason.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.eventsCreated,
		m.attendeesRegistered,
		m.checkIns,
		m.rejected,
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// EventCreated counts a newly created event. Safe on a nil *Metrics.
func (m *Metrics) EventCreated() {
	if m != nil {
		m.eventsCreated.Inc()
	}
}

// AttendeeRegistered counts a successful registration.
func (m *Metrics) AttendeeRegistered() {
	if m != nil {
		m.attendeesRegistered.Inc()
	}
}

// CheckedIn counts a first check-in.
func (m *Metrics) CheckedIn() {
	if m != nil {
		m.checkIns.Inc()
	}
}

// Rejected counts a business-rule rejection labelled by one of the Reason* constants.
func (m *Metrics) Rejected(reason string) {
	if m != nil {
		m.rejected.WithLabelValues(reason).Inc()
	}
}
