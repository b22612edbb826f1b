package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventGoalChange       EventType = "goal_change"
	EventStateChange      EventType = "state_change"
	EventTransitionQueued EventType = "transition_queued"
	EventTreeTick         EventType = "tree_tick"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine"`
}

// GoalEvent is emitted when goal arbitration fires a new goal.
type GoalEvent struct {
	EventBase
	From  string  `json:"from"`
	To    string  `json:"to"`
	Score float32 `json:"score"`
}

// StateEvent is emitted when the active state changes.
type StateEvent struct {
	EventBase
	From string `json:"from"`
	To   string `json:"to"`
}

// TransitionEvent is emitted when a hop is queued for a later tick.
type TransitionEvent struct {
	EventBase
	From     string `json:"from"`
	To       string `json:"to"`
	Priority int    `json:"priority"`
}

// TickEvent is emitted after a behavior tree bound to a state is ticked.
type TickEvent struct {
	EventBase
	State  string `json:"state"`
	Status string `json:"status"`
}

// LifecycleHooks defines callbacks for decision-core observability.
// Every field is optional.
type LifecycleHooks struct {
	OnGoalChange       func(*GoalEvent)
	OnStateChange      func(*StateEvent)
	OnTransitionQueued func(*TransitionEvent)
	OnTreeTick         func(*TickEvent)
}

// NewBase stamps an EventBase with the current time.
func NewBase(t EventType, machine string) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t, Machine: machine}
}

// EmitGoalChange calls OnGoalChange if set.
func (h LifecycleHooks) EmitGoalChange(e *GoalEvent) {
	if h.OnGoalChange != nil {
		h.OnGoalChange(e)
	}
}

// EmitStateChange calls OnStateChange if set.
func (h LifecycleHooks) EmitStateChange(e *StateEvent) {
	if h.OnStateChange != nil {
		h.OnStateChange(e)
	}
}

// EmitTransitionQueued calls OnTransitionQueued if set.
func (h LifecycleHooks) EmitTransitionQueued(e *TransitionEvent) {
	if h.OnTransitionQueued != nil {
		h.OnTransitionQueued(e)
	}
}

// EmitTreeTick calls OnTreeTick if set.
func (h LifecycleHooks) EmitTreeTick(e *TickEvent) {
	if h.OnTreeTick != nil {
		h.OnTreeTick(e)
	}
}
