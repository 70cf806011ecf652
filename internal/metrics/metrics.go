package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gestionfct", Name: "assignment_transitions_total", Help: "Assignment lifecycle operations by outcome",
	}, []string{"op", "result"})
	ActiveAssignments = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gestionfct", Name: "assignments_active", Help: "Assignments currently ACTIVE",
	})
	OverdueAssignments = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gestionfct", Name: "assignments_overdue", Help: "ACTIVE assignments past their end date",
	})
	YearSweeps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gestionfct", Name: "year_activation_sweeps_total", Help: "Academic year activation sweeps",
	}, []string{"result"})
	BlockedDeletes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gestionfct", Name: "blocked_deletes_total", Help: "Deletes refused because dependents exist",
	}, []string{"entity"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gestionfct", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Transitions, ActiveAssignments, OverdueAssignments, YearSweeps, BlockedDeletes, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

// Outcome labels an operation result: "ok" or the error kind.
func Outcome(kind string) string {
	if kind == "none" {
		return "ok"
	}
	return kind
}
