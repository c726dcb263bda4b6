package chart

// Scale converts between domain space (data units, e.g. price or
// timestamp) and range space (the units a chart surface draws in,
// typically pixels).
//
// The store and query packages never construct scales; the host's axis
// layer owns them and passes them into pointer queries.
type Scale interface {
	// Scale maps a domain value to a range coordinate.
	Scale(v float64) float64

	// Invert maps a range coordinate back to a domain value.
	Invert(px float64) float64
}

// Linear is an affine domain-to-range mapping.
//
// A degenerate domain (min == max) scales every value to RangeMin and a
// degenerate range inverts every coordinate to DomainMin, so a collapsed
// axis never produces NaN.
type Linear struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
}

// NewLinear creates a linear scale mapping [domainMin, domainMax] onto
// [rangeMin, rangeMax].
func NewLinear(domainMin, domainMax, rangeMin, rangeMax float64) *Linear {
	return &Linear{
		DomainMin: domainMin,
		DomainMax: domainMax,
		RangeMin:  rangeMin,
		RangeMax:  rangeMax,
	}
}

// Scale maps a domain value to a range coordinate.
func (s *Linear) Scale(v float64) float64 {
	d := s.DomainMax - s.DomainMin
	if d == 0 {
		return s.RangeMin
	}
	return s.RangeMin + (v-s.DomainMin)/d*(s.RangeMax-s.RangeMin)
}

// Invert maps a range coordinate back to a domain value.
func (s *Linear) Invert(px float64) float64 {
	r := s.RangeMax - s.RangeMin
	if r == 0 {
		return s.DomainMin
	}
	return s.DomainMin + (px-s.RangeMin)/r*(s.DomainMax-s.DomainMin)
}

var _ Scale = (*Linear)(nil)
