package bt

import "github.com/aretw0/arbor/pkg/utility"

// UtilityAction is one candidate of a UtilitySelector.
type UtilityAction struct {
	Name   string
	Scorer utility.Scorer
	Do     func()
}

// UtilitySelector scores every candidate on each tick and runs the
// highest-scoring one. Ties go to the earliest candidate. It always succeeds
// and keeps no state between ticks.
type UtilitySelector struct {
	actions []UtilityAction
	last    int
}

// NewUtilitySelector creates a UtilitySelector over actions.
func NewUtilitySelector(actions ...UtilityAction) *UtilitySelector {
	return &UtilitySelector{actions: actions, last: -1}
}

// Tick implements Node.
func (u *UtilitySelector) Tick() Status {
	best := -1
	var bestScore float32
	for i, a := range u.actions {
		s := utility.Eval(a.Scorer)
		if best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}
	u.last = best
	if best >= 0 && u.actions[best].Do != nil {
		u.actions[best].Do()
	}
	return Success
}

// Reset implements Node.
func (u *UtilitySelector) Reset() { u.last = -1 }

// LastChoice returns the name of the action run by the most recent tick,
// or "" if nothing ran since the last reset.
func (u *UtilitySelector) LastChoice() string {
	if u.last < 0 {
		return ""
	}
	return u.actions[u.last].Name
}
