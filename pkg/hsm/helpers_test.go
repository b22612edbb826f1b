package hsm

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/aretw0/arbor/pkg/utility"
)

type state int

const (
	idle state = iota
	patrol
	chase
	approach
	attack
	flee
	ghost
)

var stateNames = map[state]string{
	idle:     "idle",
	patrol:   "patrol",
	chase:    "chase",
	approach: "approach",
	attack:   "attack",
	flee:     "flee",
	ghost:    "ghost",
}

// fakeExecutor records every switch and never stays in transition.
type fakeExecutor struct {
	names        map[int]string
	current      int
	switches     []int
	updates      int
	inTransition bool
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{names: map[int]string{}, current: -1}
}

func (f *fakeExecutor) AddState(name string, id int, _, _, _ func()) error {
	if _, ok := f.names[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateState, id)
	}
	f.names[id] = name
	return nil
}

func (f *fakeExecutor) SwitchState(id int) error {
	if _, ok := f.names[id]; !ok {
		return ErrUnknownState
	}
	f.current = id
	f.switches = append(f.switches, id)
	return nil
}

func (f *fakeExecutor) Update()              { f.updates++ }
func (f *fakeExecutor) IsInTransition() bool { return f.inTransition }

func (f *fakeExecutor) HasState(id int) bool {
	_, ok := f.names[id]
	return ok
}

// mockExecutor is a testify mock of Executor.
type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) AddState(name string, id int, onUpdate, onEnter, onExit func()) error {
	args := m.Called(name, id)
	return args.Error(0)
}

func (m *mockExecutor) SwitchState(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockExecutor) Update() { m.Called() }

func (m *mockExecutor) IsInTransition() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockExecutor) HasState(id int) bool {
	args := m.Called(id)
	return args.Bool(0)
}

// newMachine registers every state except ghost with exec.
func newMachine(exec Executor, initial state, opts ...Option) *Machine[state] {
	m := New(exec, initial, opts...)
	for s := idle; s < ghost; s++ {
		if err := m.AddState(s, stateNames[s], Callbacks{}); err != nil {
			panic(err)
		}
	}
	return m
}

func always(v float32) utility.Scorer { return utility.Constant(v) }
