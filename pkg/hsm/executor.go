package hsm

// Executor is the low-level state driver a machine sequences. It owns the
// enter/update/exit callbacks of each state; the machine only decides which
// state id is active.
type Executor interface {
	AddState(name string, id int, onUpdate, onEnter, onExit func()) error
	SwitchState(id int) error
	Update()
	IsInTransition() bool
	HasState(id int) bool
}

// Callbacks are the optional executor callbacks of a state.
type Callbacks struct {
	OnUpdate func()
	OnEnter  func()
	OnExit   func()
}
