package core

// Sampler provides sample values in [0,1) for rendering algorithms
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
}

// Sequence is a Sampler driven by the Next recurrence.
// It replaces math/rand wherever renders must be repeatable.
type Sequence struct {
	state float64
}

// NewSequence creates a sequence starting from seed
func NewSequence(seed float64) *Sequence {
	return &Sequence{state: seed}
}

// Get1D advances the sequence and returns the new state
func (s *Sequence) Get1D() float64 {
	s.state = Next(s.state)
	return s.state
}

// Get2D returns two consecutive draws, in draw order
func (s *Sequence) Get2D() (float64, float64) {
	u := s.Get1D()
	v := s.Get1D()
	return u, v
}

// TileSeed derives an independent starting state for the tile at (tileX, tileY).
// Renders that split work across goroutines use it so the result does not
// depend on scheduling.
func TileSeed(base float64, tileX, tileY int) float64 {
	return Hash3(base*977.0, float64(tileX), float64(tileY))
}
