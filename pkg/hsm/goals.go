package hsm

import "github.com/aretw0/arbor/pkg/utility"

// Goal is a registered goal evaluator and the score it produced last.
type Goal[S comparable] struct {
	State     S
	Scorer    utility.Scorer
	LastScore float32
}

type goalTable[S comparable] struct {
	entries []Goal[S]
	index   map[S]int
}

// set registers or replaces the scorer of state, keeping its original position.
func (g *goalTable[S]) set(state S, scorer utility.Scorer) {
	if g.index == nil {
		g.index = make(map[S]int)
	}
	if i, ok := g.index[state]; ok {
		g.entries[i].Scorer = scorer
		return
	}
	g.index[state] = len(g.entries)
	g.entries = append(g.entries, Goal[S]{State: state, Scorer: scorer})
}

// arbitrate scores every goal in registration order. The first strictly
// highest positive score wins.
func (g *goalTable[S]) arbitrate() (Ref[S], float32) {
	best := Invalid[S]()
	var bestScore float32
	for i := range g.entries {
		e := &g.entries[i]
		e.LastScore = utility.Eval(e.Scorer)
		if e.LastScore > bestScore {
			best, bestScore = Some(e.State), e.LastScore
		}
	}
	return best, bestScore
}

func (g *goalTable[S]) lastScore(state S) float32 {
	if i, ok := g.index[state]; ok {
		return g.entries[i].LastScore
	}
	return 0
}

// AddGoal registers the goal evaluator of state. Registering the same state
// again replaces its scorer.
func (m *Machine[S]) AddGoal(state S, scorer utility.Scorer) {
	m.goals.set(state, scorer)
	m.logger.Debug("goal registered", "state", m.label(state))
}

// Goals returns the goal evaluators in registration order.
func (m *Machine[S]) Goals() []Goal[S] {
	return append([]Goal[S](nil), m.goals.entries...)
}
