package bt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInverter(t *testing.T) {
	assert.Equal(t, Failure, NewInverter(&always{status: Success}).Tick())
	assert.Equal(t, Success, NewInverter(&always{status: Failure}).Tick())
	assert.Equal(t, Running, NewInverter(&always{status: Running}).Tick())
}

func TestRepeater_NeverTerminates(t *testing.T) {
	child := script(Success, Failure, Running)
	r := NewRepeater(child)

	assert.Equal(t, []Status{Running, Running, Running}, tickN(r, 3))
	assert.Equal(t, 2, child.resets)
}

func TestRepeatUntil(t *testing.T) {
	child := script(Failure, Failure, Success)
	r := NewRepeatUntil(true, child)

	assert.Equal(t, []Status{Running, Running, Success}, tickN(r, 3))
	assert.Equal(t, 3, child.resets)

	running := script(Running, Failure)
	r = NewRepeatUntil(false, running)
	assert.Equal(t, []Status{Running, Failure}, tickN(r, 2))
	assert.Equal(t, 1, running.resets)
}

func TestLimiter(t *testing.T) {
	child := &always{status: Success}
	l := NewLimiter(2, child)

	assert.Equal(t, []Status{Success, Success, Failure}, tickN(l, 3))
	assert.Equal(t, 2, child.ticks, "exhausted limiter does not tick the child")
	assert.Equal(t, 0, l.Remaining())

	l.Reset()
	assert.Equal(t, 2, l.Remaining())
	assert.Equal(t, Success, l.Tick())
}

func TestCooldown(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	child := &always{status: Success}
	c := NewCooldown(time.Second, child, WithClock(clock))

	assert.Equal(t, Success, c.Tick())
	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, Running, c.Tick())
	assert.Equal(t, 1, child.ticks)

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, Success, c.Tick())
	assert.Equal(t, 2, child.ticks)

	c.Reset()
	assert.Equal(t, Success, c.Tick())
}
