package core

import "math"

// DefaultSeed is the starting state used when a render does not pick one.
const DefaultSeed = 0.7

// Next advances the pseudo-random state by one step.
// The recurrence is (201.7*s + 12.3*s^3 + 0.9) mod 1 and is bit-reproducible
// on every platform that implements IEEE-754 doubles.
func Next(seed float64) float64 {
	return math.Mod(201.7*seed+12.3*seed*seed*seed+0.9, 1.0)
}

// Hash3 maps three coordinates to a value in [0,1) without any carried state.
// Equal inputs always give equal outputs. Integer inputs are fine: each
// coordinate is spread by an irrational-ish factor before its fractional part
// is fed through Next.
func Hash3(a, b, c float64) float64 {
	h := Next(fract(a * 0.1031))
	h = Next(fract(h + b*0.11369))
	return Next(fract(h + c*0.13787))
}

// fract returns the non-negative fractional part of v
func fract(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1.0 || math.IsNaN(f) {
		return 0
	}
	return f
}
