/*
Package domain contains the shared vocabulary of the arbor decision core.

It defines the events emitted while an agent decides and acts, the lifecycle
hooks that observe them, and the sentinel errors shared by the state machine,
the authoring DSL and the executor. The package is kept pure: no I/O, no
logging and no third-party dependencies.

# Key Entities

  - GoalEvent: a goal was fired by goal arbitration.
  - StateEvent: the executor entered a new low-level state.
  - TransitionEvent: a hop was queued for activation on a later tick.
  - TickEvent: a behavior tree bound to a state was ticked.
  - LifecycleHooks: optional callbacks for all of the above.
*/
package domain
