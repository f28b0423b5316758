package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the service registry.
type Metrics struct {
	ServicesCreated       prometheus.Counter
	ChecklistStepsUpdated *prometheus.CounterVec
	GoLiveRequests        prometheus.Counter
	OperationDuration     *prometheus.HistogramVec
}

// New registers the registry metrics with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ServicesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "selfservice_services_created_total",
			Help: "Total number of services created",
		}),
		ChecklistStepsUpdated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "selfservice_checklist_steps_updated_total",
			Help: "Go-live checklist step submissions by step and resulting value",
		}, []string{"step", "done"}),
		GoLiveRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "selfservice_go_live_requests_total",
			Help: "Total number of go-live requests submitted",
		}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "selfservice_registry_operation_duration_seconds",
			Help:    "Duration of registry operations, including the store round trip",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"operation"}),
	}
}

// IncrementServicesCreated records a successful service creation.
func (m *Metrics) IncrementServicesCreated() {
	m.ServicesCreated.Inc()
}

// IncrementChecklistStep records a checklist submission.
func (m *Metrics) IncrementChecklistStep(step string, done bool) {
	value := "false"
	if done {
		value = "true"
	}
	m.ChecklistStepsUpdated.WithLabelValues(step, value).Inc()
}

// IncrementGoLiveRequests records a submitted go-live request.
func (m *Metrics) IncrementGoLiveRequests() {
	m.GoLiveRequests.Inc()
}

// ObserveOperation records how long operation took.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
