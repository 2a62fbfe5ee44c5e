package bitpack

// IntegerDecoder decodes a little-endian (LSB-first) bit-packed integer
// bitstream produced by IntegerEncoder. It is resumable: Decode may be
// called repeatedly with successive windows of the same bytestream and will
// pick up any partial value left over from the previous call (spec §4.3
// "Decoder contract"). Each data packet's bytestream is a separate, complete
// bitstream (package vector builds a fresh decoder per packet), so the zero
// padding still buffered after a packet's last record is dropped with the
// decoder and never read as part of a value.
type IntegerDecoder struct {
	min, max int64
	bits     uint

	pending   []byte // bytes carrying bits not yet consumed
	bitOffset uint   // bits already consumed from pending[0], in [0,8)
}

// NewIntegerDecoder creates a decoder for values in [min, max].
func NewIntegerDecoder(min, max int64) *IntegerDecoder {
	return &IntegerDecoder{
		min:  min,
		max:  max,
		bits: BitsNeeded(min, max),
	}
}

// Decode produces up to count values from data, returning the values
// decoded and the number of input bytes fully consumed. If data runs out
// mid-value, the partial value is deferred (kept in internal state) and
// decoding resumes on the next call once more bytes are fed.
func (d *IntegerDecoder) Decode(data []byte, count int) (values []int64, consumed int, err error) {
	if count <= 0 {
		return nil, 0, nil
	}

	if d.bits == 0 {
		values = make([]int64, count)
		for i := range values {
			values[i] = d.min
		}

		return values, 0, nil
	}

	var src []byte
	if len(d.pending) == 0 {
		src = data
	} else {
		src = make([]byte, 0, len(d.pending)+len(data))
		src = append(src, d.pending...)
		src = append(src, data...)
	}

	totalBits := uint(len(src)) * 8
	bitPos := d.bitOffset
	values = make([]int64, 0, count)

	for len(values) < count && bitPos+d.bits <= totalBits {
		raw := readBits(src, bitPos, d.bits)
		bitPos += d.bits
		values = append(values, int64(raw+uint64(d.min)))
	}

	consumedBytesTotal := int(bitPos / 8)
	newBitOffset := bitPos % 8

	consumedFromData := consumedBytesTotal - len(d.pending)
	if consumedFromData < 0 {
		consumedFromData = 0
	}
	if consumedFromData > len(data) {
		consumedFromData = len(data)
	}

	d.pending = append([]byte(nil), src[consumedBytesTotal:]...)
	d.bitOffset = newBitOffset

	return values, consumedFromData, nil
}

// Pending reports whether input bytes holding unconsumed bits are carried
// across calls: the start of a partial value, or the zero padding after the
// last value of a flushed bitstream, which Pending does not tell apart.
func (d *IntegerDecoder) Pending() bool {
	return len(d.pending) > 0
}

// readBits reads n (<=64) bits from data starting at the absolute bit
// position bitPos, LSB-first within each byte, bytes taken in order.
func readBits(data []byte, bitPos, n uint) uint64 {
	var result uint64
	var got uint

	for got < n {
		byteIdx := bitPos / 8
		bitIdx := bitPos % 8
		avail := 8 - bitIdx
		take := n - got
		if take > avail {
			take = avail
		}

		chunkMask := byte((1 << take) - 1)
		chunk := (data[byteIdx] >> bitIdx) & chunkMask

		result |= uint64(chunk) << got
		got += take
		bitPos += take
	}

	return result
}
