package blackboard

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Frame is the per-tick snapshot of a Blackboard that scorers read.
// The facts map is replaced on every Refresh and never mutated in place, so
// a map returned by Facts stays valid for the whole tick.
type Frame struct {
	mu    sync.RWMutex
	facts map[string]any
	tick  uint64
}

// NewFrame creates an empty Frame.
func NewFrame() *Frame {
	return &Frame{facts: map[string]any{}}
}

// Refresh copies bb into the frame and advances the tick counter.
func (f *Frame) Refresh(ctx context.Context, bb Blackboard) error {
	facts, err := bb.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("refresh frame: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.facts = facts
	f.tick++
	return nil
}

// Tick returns how many times the frame was refreshed.
func (f *Frame) Tick() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.tick
}

// Facts returns the current facts. The map must not be modified.
func (f *Frame) Facts() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.facts
}

// Get returns the fact key.
func (f *Frame) Get(key string) (any, bool) {
	v, ok := f.Facts()[key]
	return v, ok
}

// Float returns the fact key as a float32. Missing or non-numeric facts are 0.
func (f *Frame) Float(key string) float32 {
	v, _ := f.Get(key)
	switch n := v.(type) {
	case float64:
		return float32(n)
	case float32:
		return n
	case int:
		return float32(n)
	case int64:
		return float32(n)
	case uint64:
		return float32(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		p, err := strconv.ParseFloat(n, 32)
		if err != nil {
			return 0
		}
		return float32(p)
	default:
		return 0
	}
}

// Bool returns the fact key as a bool. Non-zero numbers are true.
func (f *Frame) Bool(key string) bool {
	v, _ := f.Get(key)
	if b, ok := v.(bool); ok {
		return b
	}
	return f.Float(key) != 0
}
