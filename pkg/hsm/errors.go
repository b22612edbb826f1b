package hsm

import "github.com/aretw0/arbor/pkg/domain"

var (
	ErrDuplicateTransition = domain.ErrDuplicateTransition
	ErrDuplicateSubMachine = domain.ErrDuplicateSubMachine
	ErrNoTransitions       = domain.ErrNoTransitions
	ErrUnknownState        = domain.ErrUnknownState
	ErrDuplicateState      = domain.ErrDuplicateState
	ErrBuilt               = domain.ErrBuilt
)
