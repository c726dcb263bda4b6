// Package store owns the device-resident vertex data of every chart
// series.
//
// Each series index maps to one growable GPU buffer plus a byte-exact CPU
// mirror. SetSeries replaces a series' content and uploads only the bytes
// that changed; AppendSeries extends it and uploads only the appended
// range when it fits in capacity. Buffers grow geometrically and never
// shrink, so a series that oscillates in size (trimming old candles, then
// refilling) does not churn allocations.
//
// The store assumes the chart's single-threaded frame model: one writer
// (data ingestion) and one reader (the render pass) per series per frame,
// with writes completing before the pass is submitted. A mutex still
// guards all state so accidental cross-goroutine use stays memory-safe.
package store

import (
	"errors"
	"fmt"
	"hash"
	"math/bits"
	"sync"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/gpucore"
)

// Store errors.
var (
	// ErrStoreDisposed is returned when operating on a disposed store.
	ErrStoreDisposed = errors.New("store: store has been disposed")

	// ErrSeriesNotSet is returned when querying or appending to a series
	// index that was never set.
	ErrSeriesNotSet = errors.New("store: series has not been set")

	// ErrBufferLimit is returned when a series would require a buffer
	// larger than the device's maximum buffer size.
	ErrBufferLimit = errors.New("store: series exceeds device buffer size limit")
)

// minCapacityBytes is the smallest buffer ever allocated for a series.
// Small enough to be negligible, large enough that the first few appends
// to a tiny series stay on the fast path.
const minCapacityBytes = 64

// seriesEntry is the per-series state: one device buffer and its CPU
// mirror, kept in lockstep.
type seriesEntry struct {
	// buffer is the device-resident block, capacity bytes large.
	buffer gpucore.BufferID

	// capacity is the device buffer size in bytes. Monotonic
	// non-decreasing over the entry's lifetime.
	capacity int

	// mirror holds the packed logical content (len = pointCount*stride).
	// Appends pack into the mirror first and upload the delta, so the
	// device buffer is never read back.
	mirror []byte

	// pointCount is the number of valid (x, y[, size]) points.
	pointCount int

	// contentHash is the FNV-1a checksum over the packed bit patterns.
	contentHash uint32

	// hasher is the running hash state; appends fold only new bytes.
	hasher hash.Hash32

	// xOffset is the origin subtracted from x during packing.
	// Fixed at set time; appends reuse it.
	xOffset float64

	// stride is the packed bytes per point, fixed at set time.
	stride int
}

// PointStore owns one device buffer and one CPU mirror per series index.
//
// All methods are safe for concurrent use, but the intended model is a
// single writer and a single reader per series per frame; see the package
// documentation.
type PointStore struct {
	mu       sync.Mutex
	adapter  gpucore.DeviceAdapter
	series   map[int]*seriesEntry
	disposed bool
}

// New creates a PointStore allocating series buffers on the given device
// adapter.
func New(adapter gpucore.DeviceAdapter) *PointStore {
	return &PointStore{
		adapter: adapter,
		series:  make(map[int]*seriesEntry),
	}
}

// SetOption configures SetSeries.
type SetOption func(*setConfig)

type setConfig struct {
	xOffset float64
}

// WithXOffset sets the origin subtracted from every x coordinate during
// packing. Use the first timestamp of a time series so that
// epoch-millisecond domains survive the float32 narrowing. The offset is
// fixed for the series until the next SetSeries.
func WithXOffset(v float64) SetOption {
	return func(c *setConfig) { c.xOffset = v }
}

// SetSeries replaces the content of a series.
//
// The data is normalized to the packed layout and hashed; if the series
// already holds bit-identical content with the same point count, the call
// is a complete no-op (no upload, no reallocation). Otherwise the device
// buffer is reallocated only when the packed size exceeds the current
// capacity, growing to the next power of two and never shrinking, and
// only the changed byte region is uploaded (the full region on first
// set).
//
// Returns ErrStoreDisposed after Dispose, or ErrBufferLimit when the
// packed size exceeds the device's maximum buffer size; in the latter
// case the previous content of the series is left intact.
func (s *PointStore) SetSeries(index int, data chart.SeriesData, opts ...SetOption) error {
	var cfg setConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrStoreDisposed
	}

	stride := packedStride(data.HasSize())
	packed := packSeries(nil, data, cfg.xOffset, stride)
	hasher, contentHash := hashBytes(packed)

	entry := s.series[index]
	if entry != nil && entry.pointCount == data.Len() && entry.contentHash == contentHash {
		// Bit-identical content: nothing to upload, nothing to grow.
		return nil
	}

	required := len(packed)
	if entry == nil || required > entry.capacity {
		capacity, err := s.nextCapacity(required, entry)
		if err != nil {
			return err
		}

		buffer, err := s.adapter.CreateBuffer(capacity, gpucore.SeriesBufferUsage)
		if err != nil {
			return fmt.Errorf("store: series %d buffer allocation failed: %w", index, err)
		}

		if entry != nil {
			s.adapter.DestroyBuffer(entry.buffer)
		} else {
			entry = &seriesEntry{}
			s.series[index] = entry
		}
		entry.buffer = buffer
		entry.capacity = capacity
		s.adapter.WriteBuffer(entry.buffer, 0, packed)
		chart.Logger().Debug("store: series buffer allocated",
			"index", index, "capacity", capacity, "bytes", required)
	} else if start := changedOffset(entry.mirror, packed); start < required {
		// Reuse the existing buffer; upload from the first changed byte.
		s.adapter.WriteBuffer(entry.buffer, uint64(start), packed[start:])
		chart.Logger().Debug("store: series delta upload",
			"index", index, "offset", start, "bytes", required-start)
	}

	mirror := make([]byte, required, entry.capacity)
	copy(mirror, packed)
	entry.mirror = mirror
	entry.pointCount = data.Len()
	entry.contentHash = contentHash
	entry.hasher = hasher
	entry.xOffset = cfg.xOffset
	entry.stride = stride
	return nil
}

// AppendSeries appends points to an existing series.
//
// A zero-length append is a no-op. When the new total fits the current
// capacity, the points are packed into the mirror at the prior end, only
// the appended byte range is uploaded, and the content hash is extended
// by folding just the new bytes into the running state. When capacity is
// exceeded, a larger buffer is allocated per the growth policy, the
// retained prefix is copied, the entire new region is uploaded once, and
// the hash is recomputed over the full content. Both paths keep the
// series' original x offset.
//
// Returns ErrSeriesNotSet if the series was never set, ErrStoreDisposed
// after Dispose, or ErrBufferLimit when growth would exceed the device
// limit (the series is left unchanged).
func (s *PointStore) AppendSeries(index int, data chart.SeriesData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrStoreDisposed
	}
	entry := s.series[index]
	if entry == nil {
		return fmt.Errorf("%w: index %d", ErrSeriesNotSet, index)
	}
	if data.Len() == 0 {
		return nil
	}

	appended := packSeries(nil, data, entry.xOffset, entry.stride)
	prevBytes := entry.pointCount * entry.stride
	required := prevBytes + len(appended)

	if required <= entry.capacity {
		// Fast path: extend in place, upload only the new range.
		entry.mirror = append(entry.mirror, appended...)
		s.adapter.WriteBuffer(entry.buffer, uint64(prevBytes), appended)
		_, _ = entry.hasher.Write(appended)
		entry.contentHash = entry.hasher.Sum32()
		entry.pointCount += data.Len()
		return nil
	}

	// Slow path: regrow, re-upload everything once.
	capacity, err := s.nextCapacity(required, entry)
	if err != nil {
		return err
	}
	buffer, err := s.adapter.CreateBuffer(capacity, gpucore.SeriesBufferUsage)
	if err != nil {
		return fmt.Errorf("store: series %d buffer growth failed: %w", index, err)
	}
	s.adapter.DestroyBuffer(entry.buffer)

	mirror := make([]byte, 0, capacity)
	mirror = append(mirror, entry.mirror[:prevBytes]...)
	mirror = append(mirror, appended...)

	entry.buffer = buffer
	entry.capacity = capacity
	entry.mirror = mirror
	entry.pointCount += data.Len()
	entry.hasher, entry.contentHash = hashBytes(mirror)
	s.adapter.WriteBuffer(entry.buffer, 0, mirror)
	chart.Logger().Debug("store: series buffer regrown",
		"index", index, "capacity", capacity, "bytes", required)
	return nil
}

// RemoveSeries releases the device buffer of a series.
//
// Removing a missing index is a no-op, and release is best-effort: by the
// time a series is removed its buffer is being abandoned regardless, so
// failures from the device are swallowed.
func (s *PointStore) RemoveSeries(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.series[index]
	if entry == nil {
		return
	}
	delete(s.series, index)
	s.releaseBuffer(entry.buffer, index)
}

// SeriesBuffer returns the device buffer handle for a series, for the
// render coordinator to bind in its draw call.
func (s *PointStore) SeriesBuffer(index int) (gpucore.BufferID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return gpucore.InvalidID, ErrStoreDisposed
	}
	entry := s.series[index]
	if entry == nil {
		return gpucore.InvalidID, fmt.Errorf("%w: index %d", ErrSeriesNotSet, index)
	}
	return entry.buffer, nil
}

// SeriesPointCount returns the number of valid points in a series.
func (s *PointStore) SeriesPointCount(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return 0, ErrStoreDisposed
	}
	entry := s.series[index]
	if entry == nil {
		return 0, fmt.Errorf("%w: index %d", ErrSeriesNotSet, index)
	}
	return entry.pointCount, nil
}

// SeriesContentHash returns the content hash of a series' packed data.
// Render-side caches compare it across frames to detect changes without
// touching the data itself.
func (s *PointStore) SeriesContentHash(index int) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return 0, ErrStoreDisposed
	}
	entry := s.series[index]
	if entry == nil {
		return 0, fmt.Errorf("%w: index %d", ErrSeriesNotSet, index)
	}
	return entry.contentHash, nil
}

// Dispose releases all device buffers and marks the store unusable.
// Further SetSeries/AppendSeries/Series* calls fail with
// ErrStoreDisposed. Dispose is idempotent.
func (s *PointStore) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.disposed = true
	for index, entry := range s.series {
		s.releaseBuffer(entry.buffer, index)
	}
	s.series = nil
}

// releaseBuffer destroys a device buffer, swallowing any panic from the
// backend: release failures on an abandoned buffer are not actionable.
// Caller must hold s.mu.
func (s *PointStore) releaseBuffer(buffer gpucore.BufferID, index int) {
	defer func() {
		if r := recover(); r != nil {
			chart.Logger().Warn("store: buffer release failed",
				"index", index, "error", r)
		}
	}()
	s.adapter.DestroyBuffer(buffer)
}

// nextCapacity computes the buffer size for a series needing required
// bytes: the next power of two of the 4-byte-aligned requirement, never
// below the current capacity, clamped to the device's maximum buffer
// size. Returns ErrBufferLimit when even the aligned requirement exceeds
// the device limit.
func (s *PointStore) nextCapacity(required int, entry *seriesEntry) (int, error) {
	aligned := (required + 3) &^ 3
	capacity := nextPowerOfTwo(aligned)
	if capacity < minCapacityBytes {
		capacity = minCapacityBytes
	}
	if entry != nil && capacity < entry.capacity {
		capacity = entry.capacity
	}

	limit := s.adapter.MaxBufferSize()
	if uint64(capacity) > limit {
		if uint64(aligned) > limit {
			return 0, fmt.Errorf("%w: need %d bytes, device limit %d", ErrBufferLimit, aligned, limit)
		}
		capacity = int(limit)
	}
	return capacity, nil
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// changedOffset returns the index of the first byte where the new packed
// content differs from the mirror, or len(packed) when the mirrored
// prefix already matches (content that only shrank needs no upload).
func changedOffset(mirror, packed []byte) int {
	n := min(len(mirror), len(packed))
	for i := 0; i < n; i++ {
		if mirror[i] != packed[i] {
			return i
		}
	}
	return n
}
