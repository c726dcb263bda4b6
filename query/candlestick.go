package query

import (
	"math"
	"sort"

	"github.com/gogpu/chart"
)

// CandleSeries is one series participating in a candlestick query.
type CandleSeries struct {
	Data *chart.Candles
}

// CandleMatch identifies the candle whose body is under the pointer.
type CandleMatch struct {
	// SeriesIndex is the position in the queried series slice.
	SeriesIndex int

	// DataIndex is the candle's index within its series.
	DataIndex int

	// Candle is the matched entry.
	Candle chart.Candle

	// XDistance is the horizontal range-space distance between the
	// pointer and the candle's center.
	XDistance float64
}

// NearestCandle resolves a pointer position to the candlestick body
// under it.
//
// px, py are range-space coordinates; xs scales timestamps and ys scales
// prices. bodyWidth is the rendered body width in range units: a candle
// is a candidate when the pointer is within half the body width of its
// center, and a hit additionally requires py to fall between the scaled
// open and close, inclusive — wicks are excluded from hit-testing.
//
// The search uses the same binary-search-then-expand strategy as
// NearestPoint, keyed on timestamp, over series with monotonic finite
// timestamps, and a full scan otherwise. The closest match by horizontal
// distance wins; ties are broken by lower data index, then lower series
// index. Returns false when no body is under the pointer.
func NearestCandle(series []CandleSeries, px, py float64, xs, ys chart.Scale, bodyWidth float64) (CandleMatch, bool) {
	targetT := xs.Invert(px)
	halfWidth := bodyWidth / 2

	best := CandleMatch{SeriesIndex: -1}
	found := false

	better := func(xd float64, si, di int) bool {
		if !found {
			return true
		}
		if xd != best.XDistance {
			return xd < best.XDistance
		}
		if di != best.DataIndex {
			return di < best.DataIndex
		}
		return si < best.SeriesIndex
	}

	for si, s := range series {
		c := s.Data
		if c == nil || c.Len() == 0 {
			continue
		}

		consider := func(i int) {
			candle := c.At(i)
			if !isFinite(candle.T) {
				return
			}
			xd := math.Abs(xs.Scale(candle.T) - px)
			if xd > halfWidth {
				return
			}
			yOpen := ys.Scale(candle.Open)
			yClose := ys.Scale(candle.Close)
			top, bottom := yOpen, yClose
			if top > bottom {
				top, bottom = bottom, top
			}
			if py < top || py > bottom {
				return
			}
			if better(xd, si, i) {
				best = CandleMatch{
					SeriesIndex: si,
					DataIndex:   i,
					Candle:      candle,
					XDistance:   xd,
				}
				found = true
			}
		}

		if !MonotonicX(c) {
			for i := 0; i < c.Len(); i++ {
				consider(i)
			}
			continue
		}

		n := c.Len()
		seed := sort.Search(n, func(i int) bool { return c.XAt(i) >= targetT })

		// A sorted side stops once its horizontal distance can no
		// longer beat both the acceptance width and the current best.
		beyond := func(i int) bool {
			xd := math.Abs(xs.Scale(c.XAt(i)) - px)
			if xd <= halfWidth {
				return false
			}
			return !found || xd > best.XDistance
		}

		left, right := seed-1, seed
		leftOpen, rightOpen := left >= 0, right < n
		for leftOpen || rightOpen {
			if leftOpen {
				if beyond(left) {
					leftOpen = false
				} else {
					consider(left)
					left--
					leftOpen = left >= 0
				}
			}
			if rightOpen {
				if beyond(right) {
					rightOpen = false
				} else {
					consider(right)
					right++
					rightOpen = right < n
				}
			}
		}
	}

	if !found {
		return CandleMatch{}, false
	}
	return best, true
}
