/*
Package arbor is a decision core for autonomous game agents.

It combines two layers. A hierarchical utility state machine (package hsm)
decides which goal an agent pursues, and behavior trees (package bt) carry
out the active goal. Both layers rank their options with the same weighted
utility score (package utility).

# Concept

An Agent owns one machine. Every state is registered with Define, which
binds a behavior tree to the state: the tree is ticked while the state is
active and abandoned when the state is left. Goals and transitions are
authored with the fluent builder returned by Author (package dsl), or loaded
from a YAML file (package definition).

Each call to Update runs one frame:

 1. the fact frame is refreshed from the blackboard;
 2. goal evaluators are scored and the best goal is fired;
 3. one queued transition hop is activated;
 4. the active state's tree is ticked;
 5. the transition graph is resolved from the primary goal.

# Usage

	type State int

	const (
		Idle State = iota
		Chase
	)

	agent := arbor.NewAgent("grunt", Idle)
	_ = agent.Define(Idle, "idle", bt.NewAction(rest))
	_ = agent.Define(Chase, "chase", bt.NewSequence(aim, move))

	agent.Author().
		Goal(Idle, utility.Constant(0.1)).
		Goal(Chase, seesPlayer).
		From(Idle).To(Chase).When(seesPlayer).
		End()

	for range ticker.C {
		if err := agent.Update(ctx); err != nil {
			log.Println(err)
		}
	}

Agents are driven by a single goroutine. Snapshot may be called from other
goroutines between updates.
*/
package arbor
