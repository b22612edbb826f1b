package bt

// scripted replays a fixed list of results, repeating the last one.
type scripted struct {
	results []Status
	ticks   int
	resets  int
}

func script(results ...Status) *scripted {
	return &scripted{results: results}
}

func (s *scripted) Tick() Status {
	i := s.ticks
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.ticks++
	return s.results[i]
}

func (s *scripted) Reset() { s.resets++ }

// always returns the same status and counts how it is driven.
type always struct {
	status Status
	ticks  int
	resets int
}

func (a *always) Tick() Status {
	a.ticks++
	return a.status
}

func (a *always) Reset() { a.resets++ }

func tickN(n Node, times int) []Status {
	out := make([]Status, 0, times)
	for i := 0; i < times; i++ {
		out = append(out, n.Tick())
	}
	return out
}
