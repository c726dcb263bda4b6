package chart

import "sync/atomic"

// generationCounter issues identity tokens for data containers.
// Never reset; 0 is reserved as "no generation".
var generationCounter atomic.Uint64

func nextGeneration() uint64 {
	return generationCounter.Add(1)
}

// XSeries is the minimal view of a series: an ordered sequence of x keys
// (coordinates or timestamps) with an identity token. Sortedness checks
// and index-range queries need nothing more, which lets point containers
// and OHLC candles share the same query machinery.
type XSeries interface {
	// Len returns the number of logical elements.
	Len() int

	// XAt returns the x key of element i.
	XAt(i int) float64

	// Generation returns the container's identity token.
	//
	// The token is assigned at construction and renewed by Invalidate,
	// never reused. Caches key derived verdicts (such as sortedness) by
	// this token: a structurally new container always recomputes, while
	// repeated queries against the same unchanged container are O(1).
	Generation() uint64
}

// SeriesData is the adapter interface over the accepted input shapes.
//
// Every shape — record sequence (Points), parallel arrays (Parallel), or
// flat interleaved buffer (Interleaved) — is accessed exclusively through
// this interface. Packing, range slicing, and hit-testing never touch the
// raw shapes directly.
type SeriesData interface {
	XSeries

	// YAt returns the y coordinate of point i.
	YAt(i int) float64

	// SizeAt returns the rendered symbol size of point i, or 0 when the
	// container carries no sizes.
	SizeAt(i int) float64

	// HasSize reports whether the container carries per-point sizes.
	HasSize() bool

	// Slice returns the sub-range [start, end) as a container of the
	// same shape. The result is a view sharing backing storage; it
	// carries its own generation.
	Slice(start, end int) SeriesData
}

// Points is a record-sequence container: an ordered list of (x, y) points
// with optional per-point symbol sizes.
type Points struct {
	gen   uint64
	pts   []Point
	sizes []float64
}

// NewPoints creates a container over a record sequence.
// The slice is not copied; use Invalidate after mutating it in place.
func NewPoints(pts []Point) *Points {
	return &Points{gen: nextGeneration(), pts: pts}
}

// NewSizedPoints creates a container over a record sequence with
// per-point symbol sizes. Missing trailing sizes read as 0.
func NewSizedPoints(pts []Point, sizes []float64) *Points {
	return &Points{gen: nextGeneration(), pts: pts, sizes: sizes}
}

// Len returns the number of points.
func (p *Points) Len() int { return len(p.pts) }

// XAt returns the x coordinate of point i.
func (p *Points) XAt(i int) float64 { return p.pts[i].X }

// YAt returns the y coordinate of point i.
func (p *Points) YAt(i int) float64 { return p.pts[i].Y }

// SizeAt returns the symbol size of point i, or 0 when absent.
func (p *Points) SizeAt(i int) float64 {
	if i < len(p.sizes) {
		return p.sizes[i]
	}
	return 0
}

// HasSize reports whether per-point sizes are present.
func (p *Points) HasSize() bool { return p.sizes != nil }

// Generation returns the container's identity token.
func (p *Points) Generation() uint64 { return p.gen }

// Invalidate renews the identity token after in-place mutation of the
// underlying slice, forcing derived caches to recompute.
func (p *Points) Invalidate() { p.gen = nextGeneration() }

// Slice returns the sub-range [start, end) as a view.
func (p *Points) Slice(start, end int) SeriesData {
	out := &Points{gen: nextGeneration(), pts: p.pts[start:end]}
	if p.sizes != nil {
		hi := min(end, len(p.sizes))
		lo := min(start, hi)
		out.sizes = p.sizes[lo:hi]
	}
	return out
}

// Parallel is a parallel-array container: separate x and y slices with an
// optional size slice. The logical point count is the shorter of the two
// coordinate slices; a length mismatch is a data-quality condition, not
// an error.
type Parallel struct {
	gen   uint64
	xs    []float64
	ys    []float64
	sizes []float64
	n     int
}

// NewParallel creates a container over parallel x and y slices.
func NewParallel(xs, ys []float64) *Parallel {
	return NewSizedParallel(xs, ys, nil)
}

// NewSizedParallel creates a container over parallel x, y, and size
// slices. sizes may be nil; missing trailing sizes read as 0.
func NewSizedParallel(xs, ys, sizes []float64) *Parallel {
	n := min(len(xs), len(ys))
	return &Parallel{gen: nextGeneration(), xs: xs, ys: ys, sizes: sizes, n: n}
}

// Len returns the number of points.
func (p *Parallel) Len() int { return p.n }

// XAt returns the x coordinate of point i.
func (p *Parallel) XAt(i int) float64 { return p.xs[i] }

// YAt returns the y coordinate of point i.
func (p *Parallel) YAt(i int) float64 { return p.ys[i] }

// SizeAt returns the symbol size of point i, or 0 when absent.
func (p *Parallel) SizeAt(i int) float64 {
	if i < len(p.sizes) {
		return p.sizes[i]
	}
	return 0
}

// HasSize reports whether per-point sizes are present.
func (p *Parallel) HasSize() bool { return p.sizes != nil }

// Generation returns the container's identity token.
func (p *Parallel) Generation() uint64 { return p.gen }

// Invalidate renews the identity token after in-place mutation.
func (p *Parallel) Invalidate() { p.gen = nextGeneration() }

// Slice returns the sub-range [start, end) as a view.
func (p *Parallel) Slice(start, end int) SeriesData {
	out := &Parallel{
		gen: nextGeneration(),
		xs:  p.xs[start:end],
		ys:  p.ys[start:end],
		n:   end - start,
	}
	if p.sizes != nil {
		hi := min(end, len(p.sizes))
		lo := min(start, hi)
		out.sizes = p.sizes[lo:hi]
	}
	return out
}

// Interleaved is a flat numeric container: [x0, y0, x1, y1, ...] as
// float32 words, matching the packed device layout. A sub-view into a
// larger buffer is expressed by slicing before construction:
//
//	base := []float32{999, 888, 0, 10, 1, 11}
//	d := chart.NewInterleaved(base[2:6]) // points (0,10), (1,11)
//
// The point count is len(values)/2; a trailing odd value is ignored.
type Interleaved struct {
	gen  uint64
	vals []float32
}

// NewInterleaved creates a container over a flat interleaved buffer.
// The slice is not copied; use Invalidate after mutating it in place.
func NewInterleaved(vals []float32) *Interleaved {
	return &Interleaved{gen: nextGeneration(), vals: vals}
}

// Len returns the number of points.
func (p *Interleaved) Len() int { return len(p.vals) / 2 }

// XAt returns the x coordinate of point i.
func (p *Interleaved) XAt(i int) float64 { return float64(p.vals[2*i]) }

// YAt returns the y coordinate of point i.
func (p *Interleaved) YAt(i int) float64 { return float64(p.vals[2*i+1]) }

// SizeAt returns 0; interleaved buffers carry no sizes.
func (p *Interleaved) SizeAt(int) float64 { return 0 }

// HasSize reports false; interleaved buffers carry no sizes.
func (p *Interleaved) HasSize() bool { return false }

// Generation returns the container's identity token.
func (p *Interleaved) Generation() uint64 { return p.gen }

// Invalidate renews the identity token after in-place mutation.
func (p *Interleaved) Invalidate() { p.gen = nextGeneration() }

// Values returns the underlying flat buffer.
func (p *Interleaved) Values() []float32 { return p.vals }

// Slice returns the sub-range [start, end) as a view over the same
// backing buffer.
func (p *Interleaved) Slice(start, end int) SeriesData {
	return &Interleaved{gen: nextGeneration(), vals: p.vals[2*start : 2*end]}
}

var (
	_ SeriesData = (*Points)(nil)
	_ SeriesData = (*Parallel)(nil)
	_ SeriesData = (*Interleaved)(nil)
)
