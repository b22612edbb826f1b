package hsm

import "fmt"

type refKind uint8

const (
	refInvalid refKind = iota
	refSome
	refAny
)

// Ref is a state reference that is either a real state, the wildcard used
// while authoring, or the invalid marker returned when nothing applies.
// The zero value is Invalid.
type Ref[S comparable] struct {
	kind  refKind
	state S
}

// Some refers to s.
func Some[S comparable](s S) Ref[S] {
	return Ref[S]{kind: refSome, state: s}
}

// Any is the wildcard. It never becomes part of the transition graph.
func Any[S comparable]() Ref[S] {
	return Ref[S]{kind: refAny}
}

// Invalid means "no applicable state".
func Invalid[S comparable]() Ref[S] {
	return Ref[S]{}
}

// Get returns the referenced state and whether r is Some.
func (r Ref[S]) Get() (S, bool) {
	return r.state, r.kind == refSome
}

func (r Ref[S]) IsSome() bool    { return r.kind == refSome }
func (r Ref[S]) IsAny() bool     { return r.kind == refAny }
func (r Ref[S]) IsInvalid() bool { return r.kind == refInvalid }

func (r Ref[S]) String() string {
	switch r.kind {
	case refSome:
		return fmt.Sprint(r.state)
	case refAny:
		return "*"
	default:
		return "<invalid>"
	}
}
