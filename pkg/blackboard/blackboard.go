// Package blackboard provides the fact stores agents score against.
//
// A Blackboard holds the shared facts of one agent or squad. Scorers never
// read it directly: once per tick the agent copies it into a Frame, so
// expressions evaluated many times per tick read local memory only.
package blackboard

import "context"

// Blackboard is a key/value fact store.
type Blackboard interface {
	// Get returns the value of key and whether it exists.
	Get(ctx context.Context, key string) (any, bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	// Snapshot returns a copy of every fact.
	Snapshot(ctx context.Context) (map[string]any, error)
}

// SetAll writes every fact of facts into bb.
func SetAll(ctx context.Context, bb Blackboard, facts map[string]any) error {
	for k, v := range facts {
		if err := bb.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}
