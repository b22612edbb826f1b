package observability

import (
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
)

// Combine returns hooks calling every hook set in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGoalChange: func(e *domain.GoalEvent) {
			for _, h := range sets {
				h.EmitGoalChange(e)
			}
		},
		OnStateChange: func(e *domain.StateEvent) {
			for _, h := range sets {
				h.EmitStateChange(e)
			}
		},
		OnTransitionQueued: func(e *domain.TransitionEvent) {
			for _, h := range sets {
				h.EmitTransitionQueued(e)
			}
		},
		OnTreeTick: func(e *domain.TickEvent) {
			for _, h := range sets {
				h.EmitTreeTick(e)
			}
		},
	}
}

// LoggingHooks logs every event. Tree ticks are logged at debug level since
// they happen every frame.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGoalChange: func(e *domain.GoalEvent) {
			logger.Info("goal_change", "machine", e.Machine, "from", e.From, "to", e.To, "score", e.Score)
		},
		OnStateChange: func(e *domain.StateEvent) {
			logger.Info("state_change", "machine", e.Machine, "from", e.From, "to", e.To)
		},
		OnTransitionQueued: func(e *domain.TransitionEvent) {
			logger.Debug("transition_queued", "machine", e.Machine, "from", e.From, "to", e.To, "priority", e.Priority)
		},
		OnTreeTick: func(e *domain.TickEvent) {
			logger.Debug("tree_tick", "machine", e.Machine, "state", e.State, "status", e.Status)
		},
	}
}
