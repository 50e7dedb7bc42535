package insights

import "github.com/prometheus/client_golang/prometheus"

const (
	lookupCompare  = "compare"
	lookupFallback = "fallback"
	lookupFailed   = "failed"
)

// Metrics counts aggregation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	lookups      *prometheus.CounterVec
	feedFailures prometheus.Counter
}

// NewMetrics creates the aggregation counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "insights",
			Name:      "push_lookups_total",
			Help:      "Push events resolved to commits, by lookup path.",
		}, []string{"path"}),
		feedFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "insights",
			Name:      "event_feed_failures_total",
			Help:      "User event feed fetches that failed.",
		}),
	}
	reg.MustRegister(m.lookups, m.feedFailures)
	return m
}

func (m *Metrics) lookup(path string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(path).Inc()
}

func (m *Metrics) feedFailed() {
	if m == nil {
		return
	}
	m.feedFailures.Inc()
}
