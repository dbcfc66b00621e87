package testutil

import "fmt"

// SequenceSource is a dice.Source that replays scripted Intn results in order.
// Each value is the raw Intn result, so a die showing f is scripted as f-1.
// It panics when a value falls outside the requested bound or the script runs out.
type SequenceSource struct {
	vals []int
	next int
}

// NewSequenceSource returns a SequenceSource replaying vals.
func NewSequenceSource(vals ...int) *SequenceSource {
	return &SequenceSource{vals: vals}
}

// Intn returns the next scripted value.
func (s *SequenceSource) Intn(n int) int {
	if s.next >= len(s.vals) {
		panic(fmt.Sprintf("testutil: SequenceSource exhausted after %d draws (bound %d)", len(s.vals), n))
	}
	v := s.vals[s.next]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("testutil: scripted value %d at draw %d outside [0, %d)", v, s.next, n))
	}
	s.next++
	return v
}

// Remaining reports how many scripted values are left.
func (s *SequenceSource) Remaining() int {
	return len(s.vals) - s.next
}
