package definition

import (
	"errors"
	"fmt"
	"slices"
)

// Validate reports every structural problem of d at once.
func (d *Definition) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	known := make(map[string]bool, len(d.States))
	for _, s := range d.States {
		switch {
		case s == "":
			errs = append(errs, errors.New("state name is empty"))
		case known[s]:
			errs = append(errs, fmt.Errorf("state %q declared twice", s))
		}
		known[s] = true
	}
	switch {
	case d.Initial == "":
		errs = append(errs, errors.New("initial state is missing"))
	case !known[d.Initial]:
		errs = append(errs, fmt.Errorf("initial state %q is not declared", d.Initial))
	}

	v := validator{known: known}
	v.level("root", "", d.Goals, d.Transitions, d.SubGoals)
	errs = append(errs, v.errs...)
	if v.transitions == 0 {
		errs = append(errs, errors.New("no transitions declared"))
	}
	return errors.Join(errs...)
}

type validator struct {
	known       map[string]bool
	transitions int
	errs        []error
}

func (v *validator) state(where, role, s string) {
	if !v.known[s] {
		v.errs = append(v.errs, fmt.Errorf("%s: %s %q is not declared", where, role, s))
	}
}

func (v *validator) expr(where, src string) {
	if _, err := compileExpr(src); err != nil {
		v.errs = append(v.errs, fmt.Errorf("%s: %w", where, err))
	}
}

func (v *validator) factors(where string, fs []Factor) {
	for i, f := range fs {
		v.expr(fmt.Sprintf("%s factor %d", where, i), f.Expr)
	}
}

func (v *validator) level(where, owner string, goals []Goal, transitions []Transition, blocks []Block) {
	for _, g := range goals {
		v.state(where, "goal", g.State)
		at := fmt.Sprintf("%s goal %q", where, g.State)
		if g.Score == "" && len(g.Factors) == 0 {
			v.errs = append(v.errs, fmt.Errorf("%s: needs a score or factors", at))
		}
		if g.Score != "" {
			v.expr(at, g.Score)
		}
		v.factors(at, g.Factors)
	}

	pairs := map[[2]string]bool{}
	for _, t := range transitions {
		v.transitions++
		from := t.From
		if from == "" {
			from = owner
		}
		at := fmt.Sprintf("%s transition %s -> %s", where, from, t.To)
		if pairs[[2]string{from, t.To}] {
			v.errs = append(v.errs, fmt.Errorf("%s: declared twice", at))
		}
		pairs[[2]string{from, t.To}] = true
		if from == "" {
			v.errs = append(v.errs, fmt.Errorf("%s: source state is missing", at))
		} else {
			v.state(where, "transition source", from)
		}
		v.state(where, "transition target", t.To)
		if t.Score != "" {
			v.expr(at, t.Score)
		}
		v.factors(at, t.Factors)
	}

	var seen []string
	for _, b := range blocks {
		v.state(where, "sub-goal owner", b.State)
		if slices.Contains(seen, b.State) {
			v.errs = append(v.errs, fmt.Errorf("%s: sub-goals of %q declared twice", where, b.State))
		}
		seen = append(seen, b.State)
		v.level(where+"/"+b.State, b.State, b.Goals, b.Transitions, b.SubGoals)
	}
}

// Unreachable returns the declared states that neither goal arbitration nor
// any transition can ever activate.
func (d *Definition) Unreachable() []string {
	edges := map[string][]string{}
	var seeds []string
	if d.Initial != "" {
		seeds = append(seeds, d.Initial)
	}
	var walk func(owner string, goals []Goal, transitions []Transition, blocks []Block)
	walk = func(owner string, goals []Goal, transitions []Transition, blocks []Block) {
		for _, g := range goals {
			seeds = append(seeds, g.State)
		}
		for _, t := range transitions {
			from := t.From
			if from == "" {
				from = owner
			}
			edges[from] = append(edges[from], t.To)
		}
		for _, b := range blocks {
			walk(b.State, b.Goals, b.Transitions, b.SubGoals)
		}
	}
	walk("", d.Goals, d.Transitions, d.SubGoals)

	visited := map[string]bool{}
	queue := seeds
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if visited[s] {
			continue
		}
		visited[s] = true
		queue = append(queue, edges[s]...)
	}

	var out []string
	for _, s := range d.States {
		if !visited[s] {
			out = append(out, s)
		}
	}
	return out
}
