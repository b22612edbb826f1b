/*
Package bt implements the behavior tree engine of arbor.

Every node satisfies the same two-method contract:

	type Node interface {
		Tick() Status // advance exactly one logical step
		Reset()       // return to the freshly constructed state, recursively
	}

Running is a returned status, not a suspension: a node that reports Running
simply expects to be ticked again next frame. Nothing in this package spawns
goroutines or blocks.

# Node Families

  - Composites: Sequence, Selector, PrioritySelector, Parallel.
  - Decorators: Inverter, Repeater, RepeatUntil, Cooldown, Limiter.
  - Leaves: Action, Condition, Wait, UtilitySelector.

# Abandoned Branches

A branch that reported Running and is then no longer ticked keeps its
progress until it is explicitly reset. AbandonPolicy makes that choice
explicit: RetainAbandoned (default) leaves the stale progress in place so the
branch resumes where it stopped, ResetAbandoned discards it. The policy is
honored by Parallel when it decides before every child finished, and by Tree
when the state owning the tree is exited.

# Interop

ToBehaviorTree and FromBehaviorTree bridge nodes to and from
github.com/joeycumines/go-behaviortree so its combinators (Memorize, Fork,
Ticker) can be mixed with arbor nodes.
*/
package bt
