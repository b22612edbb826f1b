package utility

// Scorer is a cheap, side-effect free function returning a relative desirability.
type Scorer func() float32

// Factor is one weighted input of a composite score.
type Factor struct {
	Name   string
	Value  func() float32
	Weight float32
}

// Constant returns a Scorer that always reports v.
func Constant(v float32) Scorer {
	return func() float32 { return v }
}

// Weighted combines factors into a single Scorer through Score.
// The factor and weight buffers are allocated once and reused on every call.
func Weighted(factors ...Factor) Scorer {
	values := make([]float32, len(factors))
	weights := make([]float32, len(factors))
	for i, f := range factors {
		weights[i] = f.Weight
	}
	return func() float32 {
		for i, f := range factors {
			if f.Value == nil {
				values[i] = 0
				continue
			}
			values[i] = f.Value()
		}
		return Score(values, weights)
	}
}

// Clamp01 bounds a scorer's output to [0, 1].
func Clamp01(s Scorer) Scorer {
	return func() float32 {
		v := s()
		switch {
		case v < 0:
			return 0
		case v > 1:
			return 1
		default:
			return v
		}
	}
}

// Eval calls s, treating a nil scorer as 0.
func Eval(s Scorer) float32 {
	if s == nil {
		return 0
	}
	return s()
}
