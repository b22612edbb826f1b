/*
Package dsl provides the fluent authoring surface for hierarchical utility
state machines.

A Builder threads an implicit source state through a chain of calls. Each
To declares a new edge, committing the previous one, and End commits the
last edge of a block and returns to the enclosing block.

Example usage:

	b := dsl.New(machine)
	b.Goal(Idle, utility.Constant(0.1)).
		Goal(Chase, seesEnemy).SubGoals().
		To(Approach).When(farFromEnemy).Priority(1).
		To(Attack).When(inRange).Priority(0).
		From(Approach).To(Attack).When(inRange).
		End().
		Goal(Flee, lowHealth)
	if err := b.Err(); err != nil {
		// authoring errors are collected, authoring continues
	}
*/
package dsl
