package store

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"

	"github.com/gogpu/chart"
)

// Packed layout strides in bytes. Every point packs to little-endian
// float32 words: (x, y) or (x, y, size).
const (
	strideXY     = 8
	strideXYSize = 12
)

// packedStride returns the byte stride for a series, fixed at set time.
func packedStride(hasSize bool) int {
	if hasSize {
		return strideXYSize
	}
	return strideXY
}

// appendWord appends the raw bit pattern of a float32 word.
func appendWord(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

// packSeries appends the packed form of d to dst and returns the result.
//
// xOffset is subtracted from every x before the float32 narrowing so that
// large-magnitude domains (epoch-millisecond time axes) keep precision.
// Points are packed as given: non-finite values keep their bit patterns,
// which is what makes the content hash sensitive to NaN changes.
//
// When the stride carries sizes but d does not, sizes pack as 0. When d
// carries sizes but the stride does not, they are dropped. Both are
// data-quality conditions, never errors.
func packSeries(dst []byte, d chart.SeriesData, xOffset float64, stride int) []byte {
	n := d.Len()
	if grow := n * stride; cap(dst)-len(dst) < grow {
		next := make([]byte, len(dst), len(dst)+grow)
		copy(next, dst)
		dst = next
	}
	for i := 0; i < n; i++ {
		dst = appendWord(dst, float32(d.XAt(i)-xOffset))
		dst = appendWord(dst, float32(d.YAt(i)))
		if stride == strideXYSize {
			dst = appendWord(dst, float32(d.SizeAt(i)))
		}
	}
	return dst
}

// newContentHasher returns the running hash used for content change
// detection: 32-bit FNV-1a folded over the packed bytes, i.e. over the
// raw float32 bit patterns. The same state is kept per series so appends
// fold only the new bytes.
func newContentHasher() hash.Hash32 {
	return fnv.New32a()
}

// hashBytes computes the content hash of a full packed buffer.
func hashBytes(packed []byte) (hash.Hash32, uint32) {
	h := newContentHasher()
	_, _ = h.Write(packed) // fnv.Write never returns an error
	return h, h.Sum32()
}
