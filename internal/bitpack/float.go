package bitpack

import (
	"math"

	"github.com/go-e57/e57fmt/endian"
	"github.com/go-e57/e57fmt/format"
)

// FloatCodec is the passthrough codec for Float leaves: 4 bytes (single) or
// 8 bytes (double) per record, little-endian, no bit-packing (spec §4.3).
type FloatCodec struct {
	precision format.Precision
	engine    endian.EndianEngine
}

// NewFloatCodec creates a passthrough float codec at the given precision.
func NewFloatCodec(precision format.Precision, engine endian.EndianEngine) *FloatCodec {
	return &FloatCodec{precision: precision, engine: engine}
}

// ByteSize returns the per-record width: 4 for single, 8 for double.
func (c *FloatCodec) ByteSize() int {
	return c.precision.ByteSize()
}

// AppendTo appends one value's encoded bytes to dst and returns the result.
func (c *FloatCodec) AppendTo(dst []byte, value float64) []byte {
	if c.precision == format.Single {
		return c.engine.AppendUint32(dst, math.Float32bits(float32(value)))
	}

	return c.engine.AppendUint64(dst, math.Float64bits(value))
}

// Decode reads as many complete records as fit in data (which need not be a
// multiple of the record width) and returns them plus the bytes consumed.
func (c *FloatCodec) Decode(data []byte, count int) (values []float64, consumed int, err error) {
	width := c.ByteSize()
	maxByCount := count * width
	avail := len(data)
	if avail > maxByCount {
		avail = maxByCount
	}
	n := avail / width

	values = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		off := i * width
		if c.precision == format.Single {
			bits32 := c.engine.Uint32(data[off : off+width])
			values = append(values, float64(math.Float32frombits(bits32)))
		} else {
			bits64 := c.engine.Uint64(data[off : off+width])
			values = append(values, math.Float64frombits(bits64))
		}
	}

	return values, n * width, nil
}
