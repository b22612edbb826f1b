package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycleHooks_EmitNilSafe(t *testing.T) {
	var h LifecycleHooks
	assert.NotPanics(t, func() {
		h.EmitGoalChange(&GoalEvent{})
		h.EmitStateChange(&StateEvent{})
		h.EmitTransitionQueued(&TransitionEvent{})
		h.EmitTreeTick(&TickEvent{})
	})
}

func TestLifecycleHooks_Emit(t *testing.T) {
	var goals, states, queued, ticks int
	h := LifecycleHooks{
		OnGoalChange:       func(*GoalEvent) { goals++ },
		OnStateChange:      func(*StateEvent) { states++ },
		OnTransitionQueued: func(*TransitionEvent) { queued++ },
		OnTreeTick:         func(*TickEvent) { ticks++ },
	}

	h.EmitGoalChange(&GoalEvent{EventBase: NewBase(EventGoalChange, "m")})
	h.EmitStateChange(&StateEvent{})
	h.EmitStateChange(&StateEvent{})
	h.EmitTransitionQueued(&TransitionEvent{})
	h.EmitTreeTick(&TickEvent{})

	assert.Equal(t, 1, goals)
	assert.Equal(t, 2, states)
	assert.Equal(t, 1, queued)
	assert.Equal(t, 1, ticks)
}
