// Package hsm implements the hierarchical utility state machine that decides
// which goal an agent pursues.
//
// A Machine scores its goal evaluators every Update and fires the best one,
// then resolves the transition graph from that goal to a fixed point. Hops
// found during resolution are activated one per tick through the injected
// Executor. States that own a sub-machine delegate their evaluation to it.
//
// Machines are single-threaded: all calls must come from the tick loop.
package hsm
