package chart

// Candle is a single OHLC entry keyed by timestamp.
//
// T is in the axis's domain units (typically epoch milliseconds). The
// body spans Open to Close; High and Low describe the wicks, which are
// excluded from hit-testing.
type Candle struct {
	T     float64
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Candles is an ordered OHLC container. It implements XSeries with the
// candle timestamp as the x key, so sortedness detection and range
// queries work identically to point containers.
type Candles struct {
	gen     uint64
	candles []Candle
}

// NewCandles creates a container over a candle slice.
// The slice is not copied; use Invalidate after mutating it in place.
func NewCandles(candles []Candle) *Candles {
	return &Candles{gen: nextGeneration(), candles: candles}
}

// Len returns the number of candles.
func (c *Candles) Len() int { return len(c.candles) }

// XAt returns the timestamp of candle i.
func (c *Candles) XAt(i int) float64 { return c.candles[i].T }

// At returns candle i.
func (c *Candles) At(i int) Candle { return c.candles[i] }

// Generation returns the container's identity token.
func (c *Candles) Generation() uint64 { return c.gen }

// Invalidate renews the identity token after in-place mutation.
func (c *Candles) Invalidate() { c.gen = nextGeneration() }

// Slice returns the sub-range [start, end) as a view over the same
// backing slice.
func (c *Candles) Slice(start, end int) *Candles {
	return &Candles{gen: nextGeneration(), candles: c.candles[start:end]}
}

var _ XSeries = (*Candles)(nil)
