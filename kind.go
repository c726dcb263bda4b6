package chart

import "fmt"

// SeriesKind identifies how a series is rendered and hit-tested.
//
// The set is closed: switches over SeriesKind should cover every constant
// and treat the default branch as unreachable.
type SeriesKind int

const (
	// KindLine renders the series as a polyline.
	KindLine SeriesKind = iota

	// KindArea renders the series as a filled region under the line.
	KindArea

	// KindScatter renders each point as a symbol with its own size.
	KindScatter

	// KindBar renders each point as a bar within a category cluster.
	KindBar

	// KindCandlestick renders OHLC candles keyed by timestamp.
	KindCandlestick
)

// String returns the string representation of SeriesKind.
func (k SeriesKind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindArea:
		return "Area"
	case KindScatter:
		return "Scatter"
	case KindBar:
		return "Bar"
	case KindCandlestick:
		return "Candlestick"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}
