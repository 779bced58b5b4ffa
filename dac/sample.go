package dac

import "math"

/**
  A Sample is one value on the audio interface: a signed integer of
  Bits bits, full scale at 1 << (Bits-1).
*/

type Sample struct {
	Value int32
	Bits  int
}

func NewSample(bits int) *Sample {
	return &Sample{Bits: bits}
}

func (s *Sample) scale() float64 { return float64(int64(1) << (s.Bits - 1)) }
func (s *Sample) max() int64 { return int64(1)<<(s.Bits-1) - 1 }
func (s *Sample) min() int64 { return -(int64(1) << (s.Bits - 1)) }

// SetFloat64 rounds f to the nearest step. Returns TRUE if the value
// had to be clamped to full scale.
func (s *Sample) SetFloat64(f float64) (*Sample, bool) {
	scaled := math.Round(f * s.scale())
	switch {
	case scaled > float64(s.max()):
		s.Value = int32(s.max())
		return s, true
	case scaled < float64(s.min()):
		s.Value = int32(s.min())
		return s, true
	}
	s.Value = int32(scaled)
	return s, false
}

func (s *Sample) ToFloat64() float64 {
	return float64(s.Value) / s.scale()
}
