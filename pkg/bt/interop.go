package bt

import (
	"log/slog"

	behaviortree "github.com/joeycumines/go-behaviortree"
)

// ToBehaviorTree exposes n as a go-behaviortree node, so it can be composed
// with that package's combinators and tickers.
func ToBehaviorTree(n Node) behaviortree.Node {
	return behaviortree.New(func([]behaviortree.Node) (behaviortree.Status, error) {
		switch n.Tick() {
		case Running:
			return behaviortree.Running, nil
		case Success:
			return behaviortree.Success, nil
		default:
			return behaviortree.Failure, nil
		}
	})
}

// external adapts a go-behaviortree node to Node.
type external struct {
	node   behaviortree.Node
	logger *slog.Logger
}

// FromBehaviorTree wraps a go-behaviortree node. Tick errors are logged and
// reported as Failure. Reset is a no-op since external nodes keep their
// state in closures.
func FromBehaviorTree(n behaviortree.Node, opts ...Option) Node {
	cfg := newConfig(opts)
	return &external{node: n, logger: cfg.logger}
}

func (e *external) Tick() Status {
	if e.node == nil {
		return Failure
	}
	s, err := e.node.Tick()
	if err != nil {
		e.logger.Warn("external behavior tree tick failed", "err", err)
		return Failure
	}
	switch s {
	case behaviortree.Running:
		return Running
	case behaviortree.Success:
		return Success
	default:
		return Failure
	}
}

func (e *external) Reset() {}
