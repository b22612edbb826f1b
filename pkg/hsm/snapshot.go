package hsm

// Snapshot is a JSON friendly view of a machine and its children.
type Snapshot struct {
	Name        string               `json:"name"`
	Initial     string               `json:"initial"`
	Primary     string               `json:"primary"`
	Active      string               `json:"active"`
	Built       bool                 `json:"built"`
	Pending     []string             `json:"pending,omitempty"`
	Goals       []GoalSnapshot       `json:"goals,omitempty"`
	Transitions []TransitionSnapshot `json:"transitions,omitempty"`
	SubMachines []SubMachineSnapshot `json:"sub_machines,omitempty"`
}

// GoalSnapshot is a goal evaluator and its last score.
type GoalSnapshot struct {
	State string  `json:"state"`
	Score float32 `json:"score"`
}

// TransitionSnapshot is a transition without its evaluator.
type TransitionSnapshot struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Priority int    `json:"priority"`
}

// SubMachineSnapshot is a child machine keyed by its owning state.
type SubMachineSnapshot struct {
	State   string   `json:"state"`
	Machine Snapshot `json:"machine"`
}

// Snapshot captures the current state of m. It must be called between ticks.
func (m *Machine[S]) Snapshot() Snapshot {
	snap := Snapshot{
		Name:    m.name,
		Initial: m.label(m.initial),
		Primary: m.label(m.primary),
		Active:  m.label(m.active),
		Built:   m.built,
	}
	for _, s := range m.pending {
		snap.Pending = append(snap.Pending, m.label(s))
	}
	for _, g := range m.goals.entries {
		snap.Goals = append(snap.Goals, GoalSnapshot{State: m.label(g.State), Score: g.LastScore})
	}
	for _, t := range m.Transitions() {
		snap.Transitions = append(snap.Transitions, TransitionSnapshot{
			From:     m.label(t.From),
			To:       m.label(t.To),
			Priority: t.Priority,
		})
	}
	for _, e := range m.SubMachines() {
		snap.SubMachines = append(snap.SubMachines, SubMachineSnapshot{
			State:   m.label(e.State),
			Machine: e.Machine.Snapshot(),
		})
	}
	return snap
}
