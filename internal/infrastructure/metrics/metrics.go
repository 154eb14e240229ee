package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values of the "result" label.
const (
	PersonCreated = "person_created_total"
	PersonUpdated = "person_updated_total"
	PersonDeleted = "person_deleted_total"
	LoginSuccess  = "login_success_total"
	LoginFailed   = "login_failed_total"
	AppRequests   = "app_requests_total"
)

func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

// NewCounterWith registers the counter on reg; tests pass a fresh registry.
func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "personmanager",
			Name:      "general_counters",
			Help:      "Person manager events by result.",
		},
		[]string{"result"})
}
