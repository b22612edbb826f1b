package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/arbor/pkg/domain"
)

// Metrics holds the Prometheus collectors of the decision core.
type Metrics struct {
	GoalChanges       *prometheus.CounterVec
	StateChanges      *prometheus.CounterVec
	TransitionsQueued *prometheus.CounterVec
	TreeTicks         *prometheus.CounterVec
	UpdateDuration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GoalChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_goal_changes_total",
				Help: "Total number of goals fired by goal arbitration",
			},
			[]string{"agent", "goal"},
		),
		StateChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_state_changes_total",
				Help: "Total number of executor state switches",
			},
			[]string{"agent", "state"},
		),
		TransitionsQueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_transitions_queued_total",
				Help: "Total number of transition hops queued for activation",
			},
			[]string{"agent", "from", "to"},
		),
		TreeTicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_tree_ticks_total",
				Help: "Total number of behavior tree ticks by result",
			},
			[]string{"agent", "tree", "status"},
		),
		UpdateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arbor_update_duration_seconds",
				Help:    "Duration of agent updates",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"agent"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.GoalChanges, m.StateChanges, m.TransitionsQueued, m.TreeTicks, m.UpdateDuration)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m under the agent label.
func (m *Metrics) Hooks(agent string) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGoalChange: func(e *domain.GoalEvent) {
			m.GoalChanges.WithLabelValues(agent, e.To).Inc()
		},
		OnStateChange: func(e *domain.StateEvent) {
			m.StateChanges.WithLabelValues(agent, e.To).Inc()
		},
		OnTransitionQueued: func(e *domain.TransitionEvent) {
			m.TransitionsQueued.WithLabelValues(agent, e.From, e.To).Inc()
		},
		OnTreeTick: func(e *domain.TickEvent) {
			m.TreeTicks.WithLabelValues(agent, e.State, e.Status).Inc()
		},
	}
}

// ObserveUpdate records the duration of one agent update.
func (m *Metrics) ObserveUpdate(agent string, d time.Duration) {
	m.UpdateDuration.WithLabelValues(agent).Observe(d.Seconds())
}
