package bt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_SucceedsAfterEveryChild(t *testing.T) {
	a, b, c := &always{status: Success}, &always{status: Success}, &always{status: Success}
	seq := NewSequence(a, b, c)

	assert.Equal(t, []Status{Running, Running, Success}, tickN(seq, 3))
	assert.Equal(t, 1, a.ticks)
	assert.Equal(t, 1, b.ticks)
	assert.Equal(t, 1, c.ticks)
}

func TestSequence_FailureRestarts(t *testing.T) {
	a := &always{status: Success}
	b := script(Failure, Success)
	seq := NewSequence(a, b)

	assert.Equal(t, Running, seq.Tick())
	assert.Equal(t, Failure, seq.Tick())
	// progress was dropped: the next tick starts at the first child again
	assert.Equal(t, Running, seq.Tick())
	assert.Equal(t, 2, a.ticks)
	assert.Equal(t, Success, seq.Tick())
}

func TestSequence_RunningKeepsIndex(t *testing.T) {
	a := &always{status: Success}
	b := script(Running, Running, Success)
	seq := NewSequence(a, b)

	assert.Equal(t, []Status{Running, Running, Running, Success}, tickN(seq, 4))
	assert.Equal(t, 1, a.ticks)
}

func TestSelector_MirrorsSequence(t *testing.T) {
	a, b := &always{status: Failure}, &always{status: Failure}
	sel := NewSelector(a, b)
	assert.Equal(t, []Status{Running, Failure}, tickN(sel, 2))

	x := &always{status: Failure}
	y := script(Success)
	sel = NewSelector(x, y)
	assert.Equal(t, []Status{Running, Success, Running}, tickN(sel, 3))
	assert.Equal(t, 2, x.ticks)
}

func TestEmptyComposites(t *testing.T) {
	assert.Equal(t, Success, NewSequence().Tick())
	assert.Equal(t, Failure, NewSelector().Tick())
	assert.Equal(t, Failure, NewPrioritySelector().Tick())
	assert.Equal(t, Success, NewParallel(RequireAll).Tick())
	assert.Equal(t, Failure, NewParallel(SucceedOnFirst).Tick())
}

func TestPrioritySelector_Preemption(t *testing.T) {
	first := script(Failure, Running)
	second := &always{status: Running}
	ps := NewPrioritySelector(first, second)

	assert.Equal(t, Running, ps.Tick())
	assert.Equal(t, 1, ps.RunningIndex())
	assert.Equal(t, 0, second.resets)

	assert.Equal(t, Running, ps.Tick())
	assert.Equal(t, 0, ps.RunningIndex())
	assert.Equal(t, 1, second.resets, "preempted child is reset")
}

func TestPrioritySelector_RescansEveryTick(t *testing.T) {
	first := &always{status: Failure}
	second := &always{status: Running}
	ps := NewPrioritySelector(first, second)

	tickN(ps, 3)
	assert.Equal(t, 3, first.ticks)
	assert.Equal(t, 3, first.resets)
}

func TestPrioritySelector_AllFail(t *testing.T) {
	a, b := &always{status: Failure}, &always{status: Failure}
	ps := NewPrioritySelector(a, b)

	assert.Equal(t, Failure, ps.Tick())
	assert.Equal(t, -1, ps.RunningIndex())
	assert.Equal(t, 2, a.resets)
}

func TestParallel_RequireAll(t *testing.T) {
	a := script(Running, Success)
	b := &always{status: Success}
	p := NewParallel(RequireAll, a, b)

	assert.Equal(t, Running, p.Tick())
	assert.Equal(t, Success, p.Tick())
	assert.Equal(t, 1, b.ticks, "finished children are not ticked again")

	f := &always{status: Failure}
	r := &always{status: Running}
	p = NewParallel(RequireAll, r, f)
	assert.Equal(t, Failure, p.Tick())
}

func TestParallel_SucceedOnFirst(t *testing.T) {
	a := &always{status: Failure}
	b := script(Running, Success)
	p := NewParallel(SucceedOnFirst, a, b)

	assert.Equal(t, Running, p.Tick())
	assert.Equal(t, Success, p.Tick())

	p = NewParallel(SucceedOnFirst, &always{status: Failure}, &always{status: Failure})
	assert.Equal(t, Failure, p.Tick())
}

func TestParallel_AbandonPolicy(t *testing.T) {
	tests := []struct {
		name       string
		policy     AbandonPolicy
		wantResets int
	}{
		{"retain", RetainAbandoned, 0},
		{"reset", ResetAbandoned, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slow := &always{status: Running}
			fast := &always{status: Success}
			p := NewParallel(SucceedOnFirst, slow, fast).WithPolicy(tt.policy)

			assert.Equal(t, Success, p.Tick())
			assert.Equal(t, tt.wantResets, slow.resets)
			assert.Equal(t, 1, fast.resets)
		})
	}
}
